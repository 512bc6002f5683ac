package search

import (
	"log"
	"sort"
	"time"

	"github.com/nill-home/face-insight/internal/store"
	"github.com/nill-home/face-insight/internal/vectormath"
)

// MatchResult is one entry of a ranked similarity search.
type MatchResult struct {
	Filename       string    `json:"filename"`
	Similarity     float64   `json:"similarity"`
	Rank           int       `json:"rank"`
	Timestamp      time.Time `json:"timestamp,omitempty"`
	CameraLocation string    `json:"camera_location,omitempty"`
}

// RankBySimilarity scores every corpus embedding against the query and
// returns the topK highest, sorted by descending similarity. Ties keep
// corpus order (first seen wins). topK <= 0 yields an empty result;
// topK beyond the corpus size yields the full sorted corpus.
func RankBySimilarity(query []float32, corpus []store.ObservationRecord, topK int) []MatchResult {
	if topK <= 0 {
		return nil
	}

	var results []MatchResult
	for _, obs := range corpus {
		if !obs.HasEmbedding() {
			continue
		}

		similarity, err := vectormath.Cosine(query, obs.Embedding)
		if err != nil {
			log.Printf("skipping %q: %v", obs.Filename, err)
			continue
		}

		results = append(results, MatchResult{
			Filename:       obs.Filename,
			Similarity:     similarity,
			Timestamp:      obs.Timestamp,
			CameraLocation: obs.CameraLocation,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if topK < len(results) {
		results = results[:topK]
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}
