package handlers

import (
	"net/http"

	"github.com/nill-home/face-insight/internal/search"
)

// SearchHandler serves the metadata and identity search endpoints.
type SearchHandler struct {
	service *search.Service
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(svc *search.Service) *SearchHandler {
	return &SearchHandler{service: svc}
}

// Known returns observations whose matched persons contain the given
// name. Matching is exact and case-sensitive.
func (h *SearchHandler) Known(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	records, err := h.service.FindKnownByName(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"query_id":     newQueryID(),
		"count":        len(records),
		"observations": toObservationItems(records),
	})
}

// Unknown returns observations where face detection found more faces
// than identities were matched. Metadata only, no vector math.
func (h *SearchHandler) Unknown(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.FindUnknownByCount(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"query_id":     newQueryID(),
		"count":        len(records),
		"observations": toObservationItems(records),
	})
}

// Similar returns every observation matching the named identity with
// similarity at or above the threshold. An unenrolled name is a normal
// empty result.
func (h *SearchHandler) Similar(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	threshold, err := parseThreshold(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	matches, err := h.service.FindMatchesForIdentity(r.Context(), name, threshold)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	items := make([]matchItem, len(matches))
	for i, m := range matches {
		items[i] = matchItem{
			Filename:       m.Record.Filename,
			Similarity:     m.Similarity,
			Timestamp:      m.Record.Timestamp,
			CameraLocation: m.Record.CameraLocation,
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"query_id": newQueryID(),
		"count":    len(items),
		"matches":  items,
	})
}

// Rank embeds the uploaded photo and returns the top-K most similar
// observations, best first.
func (h *SearchHandler) Rank(w http.ResponseWriter, r *http.Request) {
	topK, err := parseTopK(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, msg, err := readUploadedPhoto(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	results, err := h.service.RankByPhoto(r.Context(), data, topK)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"query_id": newQueryID(),
		"count":    len(results),
		"results":  results,
	})
}
