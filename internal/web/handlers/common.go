package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nill-home/face-insight/internal/store"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// maxUploadSize bounds multipart photo uploads (50 MB).
const maxUploadSize = 50 << 20

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps a search service failure onto an HTTP status.
// An unavailable upstream (database or embedding server) is a 502 so
// callers can tell infrastructure failure apart from an empty result.
func respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrUpstreamUnavailable) {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}

// newQueryID returns the identifier echoed in every response envelope.
func newQueryID() string {
	return uuid.NewString()
}

// parseThreshold reads the optional threshold query parameter. Absent or
// empty means 0, which the service maps to its configured default.
func parseThreshold(r *http.Request) (float64, error) {
	s := r.URL.Query().Get("threshold")
	if s == "" {
		return 0, nil
	}
	threshold, err := strconv.ParseFloat(s, 64)
	if err != nil || threshold <= 0 || threshold > 1 {
		return 0, errors.New("threshold must be a number in (0, 1]")
	}
	return threshold, nil
}

// parseTopK reads the optional top_k query parameter. Absent or empty
// means 0, which the service maps to its configured default.
func parseTopK(r *http.Request) (int, error) {
	s := r.URL.Query().Get("top_k")
	if s == "" {
		return 0, nil
	}
	topK, err := strconv.Atoi(s)
	if err != nil || topK <= 0 {
		return 0, errors.New("top_k must be a positive integer")
	}
	return topK, nil
}

// observationItem is the wire form of an observation; embeddings never
// leave the service.
type observationItem struct {
	Filename       string    `json:"filename"`
	FaceCount      int       `json:"face_count"`
	MatchedPersons []string  `json:"matched_persons"`
	Timestamp      time.Time `json:"timestamp"`
	CameraLocation string    `json:"camera_location"`
}

func toObservationItems(records []store.ObservationRecord) []observationItem {
	items := make([]observationItem, len(records))
	for i, rec := range records {
		items[i] = observationItem{
			Filename:       rec.Filename,
			FaceCount:      rec.FaceCount,
			MatchedPersons: rec.MatchedPersons,
			Timestamp:      rec.Timestamp,
			CameraLocation: rec.CameraLocation,
		}
	}
	return items
}

// matchItem is the wire form of a similarity match.
type matchItem struct {
	Filename       string    `json:"filename"`
	Similarity     float64   `json:"similarity"`
	Timestamp      time.Time `json:"timestamp"`
	CameraLocation string    `json:"camera_location"`
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
