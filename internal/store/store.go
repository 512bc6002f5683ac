// Package store defines the typed records and access contracts for the
// embedding store. Concrete backends live in subpackages (postgres for
// production, mock for tests); the search core only sees these interfaces.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrUpstreamUnavailable marks failures of the external store or
// embedder. Callers must be able to tell "searched and found nothing"
// apart from "could not search", so backends wrap transport-level
// failures with this sentinel.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// MalformedEmbeddingError reports a stored embedding that does not
// decode to a valid fixed-length float vector. The offending record is
// skipped rather than aborting the whole query.
type MalformedEmbeddingError struct {
	Filename string
	Size     int // raw buffer size in bytes
	Dim      int // expected vector dimension
}

func (e *MalformedEmbeddingError) Error() string {
	return fmt.Sprintf("malformed embedding for %q: %d bytes, expected %d (dim %d)",
		e.Filename, e.Size, e.Dim*4, e.Dim)
}

// ReferenceSource provides read access to reference records. All
// references in a corpus share one fixed dimension; backends must
// reject corpora violating this before the core ever sees them.
type ReferenceSource interface {
	FetchReferences(ctx context.Context) ([]ReferenceRecord, error)
}

// ObservationSource provides read access to observation records.
// Returned slices are snapshots; no consistency is promised across calls.
type ObservationSource interface {
	FetchObservations(ctx context.Context, filter Filter) ([]ObservationRecord, error)
}

// Store combines the read contracts the search core depends on with the
// write side used by the enrollment/import tooling.
type Store interface {
	ReferenceSource
	ObservationSource

	SaveReference(ctx context.Context, ref ReferenceRecord) error
	SaveObservations(ctx context.Context, obs []ObservationRecord) error
}
