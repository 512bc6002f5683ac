package handlers

import (
	"log"
	"net/http"

	"github.com/nill-home/face-insight/internal/search"
)

// IndexHandler manages the in-memory similarity index.
type IndexHandler struct {
	service *search.Service
}

// NewIndexHandler creates a new index handler.
func NewIndexHandler(svc *search.Service) *IndexHandler {
	return &IndexHandler{service: svc}
}

// Rebuild rebuilds the similarity index from the current corpus.
// Ranked photo search uses the index once one has been built.
func (h *IndexHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	indexed, err := h.service.RebuildIndex(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("similarity index rebuilt with %d observations", indexed)
	respondJSON(w, http.StatusOK, map[string]any{
		"indexed": indexed,
	})
}
