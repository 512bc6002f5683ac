package search

import (
	"testing"

	"github.com/nill-home/face-insight/internal/store"
)

func TestIsUnknown(t *testing.T) {
	tests := []struct {
		name      string
		faceCount int
		matched   []string
		expected  bool
	}{
		{"two faces one matched", 2, []string{"Alice"}, true},
		{"one face two matched", 1, []string{"Alice", "Bob"}, false},
		{"all matched", 2, []string{"Alice", "Bob"}, false},
		{"no faces no matches", 0, nil, false},
		{"faces but nothing matched", 3, []string{}, true},
		{"duplicates count once", 2, []string{"Alice", "Alice"}, true},
		{"matched exceeds count", 1, []string{"Alice", "Bob", "Carol"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUnknown(tc.faceCount, tc.matched); got != tc.expected {
				t.Errorf("IsUnknown(%d, %v) = %v; want %v", tc.faceCount, tc.matched, got, tc.expected)
			}
		})
	}
}

func metaObservation(filename string, matched ...string) store.ObservationRecord {
	return store.ObservationRecord{
		Filename:       filename,
		HasFaces:       true,
		FaceCount:      len(matched) + 1,
		MatchedPersons: matched,
	}
}

func TestKnownByName(t *testing.T) {
	corpus := []store.ObservationRecord{
		metaObservation("a.jpg", "Alice"),
		metaObservation("b.jpg", "Bob"),
		metaObservation("c.jpg", "Alice", "Bob"),
	}

	got := KnownByName(corpus, "Alice")

	if len(got) != 2 {
		t.Fatalf("got %d observations; want 2", len(got))
	}
	if got[0].Filename != "a.jpg" || got[1].Filename != "c.jpg" {
		t.Errorf("got %q, %q; want a.jpg, c.jpg", got[0].Filename, got[1].Filename)
	}
}

func TestKnownByName_CaseSensitive(t *testing.T) {
	corpus := []store.ObservationRecord{metaObservation("a.jpg", "Alice")}

	if got := KnownByName(corpus, "alice"); len(got) != 0 {
		t.Errorf("lowercase query matched %d records; matching is case-sensitive", len(got))
	}
}

func TestKnownByAny(t *testing.T) {
	corpus := []store.ObservationRecord{
		metaObservation("a.jpg", "Alice"),
		metaObservation("b.jpg", "Bob"),
		metaObservation("c.jpg", "Alice", "Bob"), // matches both names, appears once
		metaObservation("d.jpg", "Carol"),
	}

	got := KnownByAny(corpus, []string{"Alice", "Bob"})

	if len(got) != 3 {
		t.Fatalf("got %d observations; want 3", len(got))
	}
	want := []string{"a.jpg", "b.jpg", "c.jpg"}
	for i, w := range want {
		if got[i].Filename != w {
			t.Errorf("got[%d] = %q; want %q", i, got[i].Filename, w)
		}
	}
}

func TestKnownByAny_EmptyNames(t *testing.T) {
	corpus := []store.ObservationRecord{metaObservation("a.jpg", "Alice")}

	if got := KnownByAny(corpus, nil); len(got) != 0 {
		t.Errorf("empty name list matched %d records; want 0", len(got))
	}
}
