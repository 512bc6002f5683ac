package store

import (
	"time"
)

// ReferenceRecord is a stored embedding for one known identity, used as
// a comparison target. References are created by an external enrollment
// process; the search core only reads them.
type ReferenceRecord struct {
	Name      string
	Embedding []float32
	CreatedAt time.Time
}

// ObservationRecord is a processed photo produced by the external
// detection pipeline. MatchedPersons is filled in as matches are
// discovered; the search core never mutates persisted records.
type ObservationRecord struct {
	Filename       string
	HasFaces       bool
	FaceCount      int
	MatchedPersons []string
	Embedding      []float32 // nil when no embedding was extracted
	Timestamp      time.Time
	CameraLocation string
}

// HasEmbedding reports whether the observation can participate in
// similarity comparisons.
func (o *ObservationRecord) HasEmbedding() bool {
	return o.HasFaces && len(o.Embedding) > 0
}

// Filter narrows the observation set returned by FetchObservations.
type Filter struct {
	// OnlyWithFaces restricts results to records where face detection
	// found at least one face.
	OnlyWithFaces bool
	// OnlyWithEmbedding restricts results to records that carry an
	// embedding vector.
	OnlyWithEmbedding bool
}
