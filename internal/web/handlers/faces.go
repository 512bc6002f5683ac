package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/nill-home/face-insight/internal/search"
)

// FacesHandler serves the face query endpoints.
type FacesHandler struct {
	service *search.Service
}

// NewFacesHandler creates a new faces handler.
func NewFacesHandler(svc *search.Service) *FacesHandler {
	return &FacesHandler{service: svc}
}

// unknownFace is the wire form of a similarity-based unknown.
type unknownFace struct {
	Filename       string  `json:"filename"`
	MaxSimilarity  float64 `json:"max_similarity"`
	CameraLocation string  `json:"camera_location"`
}

// Unknown returns observations whose best similarity against every
// enrolled reference stays below the threshold.
func (h *FacesHandler) Unknown(w http.ResponseWriter, r *http.Request) {
	threshold, err := parseThreshold(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	unknown, err := h.service.FindUnknownBySimilarity(r.Context(), threshold)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	faces := make([]unknownFace, len(unknown))
	for i, u := range unknown {
		faces[i] = unknownFace{
			Filename:       u.Record.Filename,
			MaxSimilarity:  u.MaxSimilarity,
			CameraLocation: u.Record.CameraLocation,
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"query_id":      newQueryID(),
		"count":         len(faces),
		"unknown_faces": faces,
	})
}

// Known returns the union of observations matching any of the posted
// names, de-duplicated by filename.
func (h *FacesHandler) Known(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Names []string `json:"names"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	records, err := h.service.FindKnownByAny(r.Context(), req.Names)
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

// readUploadedPhoto extracts the "file" part from a multipart upload.
func readUploadedPhoto(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, "failed to parse multipart form", err
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "file is required", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "failed to read uploaded file", err
	}
	log.Printf("photo query: %s (%d bytes)", sanitizeForLog(header.Filename), len(data))
	return data, "", nil
}

// Search embeds the uploaded photo and returns every observation with
// similarity at or above the threshold. An empty upload is a normal
// empty result.
func (h *FacesHandler) Search(w http.ResponseWriter, r *http.Request) {
	threshold, err := parseThreshold(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, msg, err := readUploadedPhoto(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	matches, err := h.service.SearchByPhoto(r.Context(), data, threshold)
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
