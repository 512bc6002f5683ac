package search

import (
	"log"

	"github.com/nill-home/face-insight/internal/store"
	"github.com/nill-home/face-insight/internal/vectormath"
)

// Match pairs an observation with its similarity to a query or
// reference vector. Computed fresh per query, never persisted.
type Match struct {
	Record     store.ObservationRecord
	Similarity float64
}

// Unknown reports an observation whose best similarity against every
// reference stayed below the unknown threshold.
type Unknown struct {
	Record        store.ObservationRecord
	MaxSimilarity float64
}

// MatchesForQuery returns every observation whose similarity to the
// query vector is at least threshold, annotated with its score.
// Results keep corpus iteration order; this is a filter, not a ranking.
// Observations without an embedding are ignored; observations whose
// embedding dimension does not match the query are logged and skipped
// so one bad record cannot fail the whole search.
func MatchesForQuery(query []float32, corpus []store.ObservationRecord, threshold float64) []Match {
	var matches []Match
	for _, obs := range corpus {
		if !obs.HasEmbedding() {
			continue
		}

		similarity, err := vectormath.Cosine(query, obs.Embedding)
		if err != nil {
			log.Printf("skipping %q: %v", obs.Filename, err)
			continue
		}

		if similarity >= threshold {
			matches = append(matches, Match{Record: obs, Similarity: similarity})
		}
	}
	return matches
}

// MatchesForReference classifies the corpus against one reference
// identity under the given threshold.
func MatchesForReference(ref store.ReferenceRecord, corpus []store.ObservationRecord, threshold float64) []Match {
	return MatchesForQuery(ref.Embedding, corpus, threshold)
}

// UnknownBySimilarity reports every observation whose maximum similarity
// against all references is below threshold. With no references every
// observation's maximum is defined as 0.0, so everything with an
// embedding is trivially unknown.
func UnknownBySimilarity(corpus []store.ObservationRecord, refs []store.ReferenceRecord, threshold float64) []Unknown {
	var unknown []Unknown
	for _, obs := range corpus {
		if !obs.HasEmbedding() {
			continue
		}

		maxSimilarity := 0.0
		comparable := true
		for _, ref := range refs {
			similarity, err := vectormath.Cosine(ref.Embedding, obs.Embedding)
			if err != nil {
				log.Printf("skipping %q: %v", obs.Filename, err)
				comparable = false
				break
			}
			if similarity > maxSimilarity {
				maxSimilarity = similarity
			}
		}
		if !comparable {
			continue
		}

		if maxSimilarity < threshold {
			unknown = append(unknown, Unknown{Record: obs, MaxSimilarity: maxSimilarity})
		}
	}
	return unknown
}

// resolveReference finds the reference record for an identity name.
// Exact match wins; otherwise the lookup falls back to normalized
// comparison so slugs like "jan-novak" resolve to "Jan Novák".
// A missing identity is a normal empty result, not an error.
func resolveReference(refs []store.ReferenceRecord, name string) *store.ReferenceRecord {
	for i := range refs {
		if refs[i].Name == name {
			return &refs[i]
		}
	}

	normalized := store.NormalizePersonName(name)
	for i := range refs {
		if store.NormalizePersonName(refs[i].Name) == normalized {
			return &refs[i]
		}
	}
	return nil
}
