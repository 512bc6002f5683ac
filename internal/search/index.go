package search

import (
	"log"
	"sync"

	"github.com/coder/hnsw"

	"github.com/nill-home/face-insight/internal/store"
	"github.com/nill-home/face-insight/internal/vectormath"
)

// hnswMaxNeighbors is the M parameter for the HNSW graph.
const hnswMaxNeighbors = 16

// CorpusIndex is an in-memory HNSW graph over the observation corpus,
// keyed by filename. It accelerates ranked search on large corpora while
// keeping the RankBySimilarity contract: scores returned are exact
// cosine similarities, only the candidate selection is approximate.
// The index is a snapshot; it must be rebuilt after the corpus changes.
type CorpusIndex struct {
	mu         sync.RWMutex
	graph      *hnsw.Graph[string]
	byFilename map[string]*store.ObservationRecord
}

// BuildCorpusIndex builds an index from the given corpus snapshot.
// Observations without an embedding are skipped.
func BuildCorpusIndex(corpus []store.ObservationRecord) *CorpusIndex {
	g := hnsw.NewGraph[string]()
	g.M = hnswMaxNeighbors
	g.Ml = 1.0 / float64(hnswMaxNeighbors) // Standard HNSW formula
	g.Distance = hnsw.CosineDistance

	idx := &CorpusIndex{
		graph:      g,
		byFilename: make(map[string]*store.ObservationRecord, len(corpus)),
	}

	for i := range corpus {
		obs := &corpus[i]
		if !obs.HasEmbedding() {
			continue
		}
		g.Add(hnsw.MakeNode(obs.Filename, obs.Embedding))
		idx.byFilename[obs.Filename] = obs
	}

	return idx
}

// Len returns the number of indexed observations.
func (idx *CorpusIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.byFilename)
}

// Search returns the topK nearest observations to the query, ordered by
// descending exact cosine similarity.
func (idx *CorpusIndex) Search(query []float32, topK int) []MatchResult {
	if topK <= 0 {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	neighbors := idx.graph.Search(query, topK)

	results := make([]MatchResult, 0, len(neighbors))
	for _, n := range neighbors {
		obs, ok := idx.byFilename[n.Key]
		if !ok {
			continue
		}

		similarity, err := vectormath.Cosine(query, n.Value)
		if err != nil {
			log.Printf("skipping indexed %q: %v", n.Key, err)
			continue
		}

		results = append(results, MatchResult{
			Filename:       obs.Filename,
			Similarity:     similarity,
			Timestamp:      obs.Timestamp,
			CameraLocation: obs.CameraLocation,
		})
	}

	// The graph returns neighbors by distance already, but re-rank on
	// the exact scores to keep parity with the brute-force path.
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && results[j].Similarity > results[j-1].Similarity; j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}
