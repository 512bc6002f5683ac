package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/nill-home/face-insight/internal/search"
)

const statsCacheTTL = 10 * time.Minute

// statsCache holds cached stats with expiry
type statsCache struct {
	mu        sync.RWMutex
	data      *search.CorpusStats
	expiresAt time.Time
}

func (c *statsCache) get() (*search.CorpusStats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil || time.Now().After(c.expiresAt) {
		return nil, false
	}
	return c.data, true
}

func (c *statsCache) set(data *search.CorpusStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
	c.expiresAt = time.Now().Add(statsCacheTTL)
}

func (c *statsCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
}

// StatsHandler serves corpus statistics.
type StatsHandler struct {
	service *search.Service
	cache   statsCache
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(svc *search.Service) *StatsHandler {
	return &StatsHandler{service: svc}
}

// InvalidateCache clears the cached stats so the next request fetches fresh data.
func (h *StatsHandler) InvalidateCache() {
	h.cache.invalidate()
}

// Get returns aggregated corpus statistics. Results are cached briefly
// since the aggregation walks the full corpus.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.cache.get(); ok {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.cache.set(&stats)
	respondJSON(w, http.StatusOK, &stats)
}
