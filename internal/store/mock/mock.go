// Package mock provides an in-memory store implementation for testing.
package mock

import (
	"context"
	"sync"

	"github.com/nill-home/face-insight/internal/store"
)

// Store is an in-memory implementation of store.Store. Records are
// returned in insertion order so tests can assert on corpus order.
type Store struct {
	mu           sync.RWMutex
	references   []store.ReferenceRecord
	observations []store.ObservationRecord

	// Error injection
	FetchReferencesError   error
	FetchObservationsError error
	SaveReferenceError     error
	SaveObservationsError  error
}

// NewStore creates an empty mock store.
func NewStore() *Store {
	return &Store{}
}

// AddReference adds a reference record to the mock store.
func (m *Store) AddReference(ref store.ReferenceRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.references = append(m.references, ref)
}

// AddObservation adds an observation record to the mock store.
func (m *Store) AddObservation(obs store.ObservationRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observations = append(m.observations, obs)
}

// FetchReferences returns a snapshot of all reference records.
func (m *Store) FetchReferences(ctx context.Context) ([]store.ReferenceRecord, error) {
	if m.FetchReferencesError != nil {
		return nil, m.FetchReferencesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]store.ReferenceRecord, len(m.references))
	copy(out, m.references)
	return out, nil
}

// FetchObservations returns a snapshot of observation records matching the filter.
func (m *Store) FetchObservations(ctx context.Context, filter store.Filter) ([]store.ObservationRecord, error) {
	if m.FetchObservationsError != nil {
		return nil, m.FetchObservationsError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []store.ObservationRecord
	for _, obs := range m.observations {
		if filter.OnlyWithFaces && !obs.HasFaces {
			continue
		}
		if filter.OnlyWithEmbedding && len(obs.Embedding) == 0 {
			continue
		}
		out = append(out, obs)
	}
	return out, nil
}

// SaveReference stores a reference record, replacing any record with the same name.
func (m *Store) SaveReference(ctx context.Context, ref store.ReferenceRecord) error {
	if m.SaveReferenceError != nil {
		return m.SaveReferenceError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.references {
		if m.references[i].Name == ref.Name {
			m.references[i] = ref
			return nil
		}
	}
	m.references = append(m.references, ref)
	return nil
}

// SaveObservations stores observation records, replacing existing records
// with the same filename.
func (m *Store) SaveObservations(ctx context.Context, obs []store.ObservationRecord) error {
	if m.SaveObservationsError != nil {
		return m.SaveObservationsError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

outer:
	for _, o := range obs {
		for i := range m.observations {
			if m.observations[i].Filename == o.Filename {
				m.observations[i] = o
				continue outer
			}
		}
		m.observations = append(m.observations, o)
	}
	return nil
}

// ObservationCount returns the number of stored observations.
func (m *Store) ObservationCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.observations)
}
