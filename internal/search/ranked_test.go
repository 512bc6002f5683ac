package search

import (
	"testing"

	"github.com/nill-home/face-insight/internal/store"
)

func rankedCorpus(dim int) []store.ObservationRecord {
	// Scores against basisVec(dim, 0): 1.0, ~0.707, 0.0
	return []store.ObservationRecord{
		observation("exact.jpg", basisVec(dim, 0)),
		observation("close.jpg", append([]float32{1, 1}, make([]float32, dim-2)...)),
		observation("far.jpg", basisVec(dim, 1)),
	}
}

func TestRankBySimilarity_Order(t *testing.T) {
	const dim = 8
	results := RankBySimilarity(basisVec(dim, 0), rankedCorpus(dim), 10)

	if len(results) != 3 {
		t.Fatalf("got %d results; want 3", len(results))
	}

	want := []string{"exact.jpg", "close.jpg", "far.jpg"}
	for i, w := range want {
		if results[i].Filename != w {
			t.Errorf("rank %d = %q; want %q", i+1, results[i].Filename, w)
		}
		if results[i].Rank != i+1 {
			t.Errorf("rank field = %d; want %d", results[i].Rank, i+1)
		}
	}

	for i := 1; i < len(results); i++ {
		if results[i].Similarity > results[i-1].Similarity {
			t.Errorf("scores not non-increasing at %d: %f > %f",
				i, results[i].Similarity, results[i-1].Similarity)
		}
	}
}

func TestRankBySimilarity_TopKBound(t *testing.T) {
	const dim = 8
	corpus := rankedCorpus(dim)
	query := basisVec(dim, 0)

	tests := []struct {
		name     string
		topK     int
		expected int
	}{
		{"zero", 0, 0},
		{"negative", -1, 0},
		{"one", 1, 1},
		{"exact corpus size", 3, 3},
		{"beyond corpus size", 100, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			results := RankBySimilarity(query, corpus, tc.topK)
			if len(results) != tc.expected {
				t.Errorf("got %d results; want %d", len(results), tc.expected)
			}
		})
	}
}

func TestRankBySimilarity_StableTies(t *testing.T) {
	const dim = 4
	// Identical embeddings: tie on score, first-seen corpus order wins.
	corpus := []store.ObservationRecord{
		observation("first.jpg", basisVec(dim, 0)),
		observation("second.jpg", basisVec(dim, 0)),
		observation("third.jpg", basisVec(dim, 0)),
	}

	results := RankBySimilarity(basisVec(dim, 0), corpus, 3)

	want := []string{"first.jpg", "second.jpg", "third.jpg"}
	for i, w := range want {
		if results[i].Filename != w {
			t.Errorf("rank %d = %q; want %q (ties must keep corpus order)", i+1, results[i].Filename, w)
		}
	}
}

func TestRankBySimilarity_EmptyCorpus(t *testing.T) {
	if results := RankBySimilarity(basisVec(4, 0), nil, 5); len(results) != 0 {
		t.Errorf("empty corpus produced %d results; want 0", len(results))
	}
}

func TestRankBySimilarity_CarriesMetadata(t *testing.T) {
	const dim = 4
	results := RankBySimilarity(basisVec(dim, 0), []store.ObservationRecord{
		observation("a.jpg", basisVec(dim, 0)),
	}, 1)

	if len(results) != 1 {
		t.Fatalf("got %d results; want 1", len(results))
	}
	if results[0].CameraLocation != "entrance" {
		t.Errorf("camera location = %q; want entrance", results[0].CameraLocation)
	}
	if results[0].Timestamp.IsZero() {
		t.Error("timestamp not carried into result")
	}
}
