package postgres

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"github.com/nill-home/face-insight/internal/store"
	"github.com/nill-home/face-insight/internal/vectormath"
)

// Store is the PostgreSQL-backed implementation of store.Store.
type Store struct {
	pool *Pool
	dim  int
}

// NewStore creates a PostgreSQL store. dim is the fixed embedding
// dimension every record in the corpus must carry.
func NewStore(pool *Pool, dim int) *Store {
	return &Store{pool: pool, dim: dim}
}

// FetchReferences returns all reference records ordered by name.
// A reference whose embedding does not match the configured dimension is
// a data-integrity error and fails the whole fetch: references are the
// comparison targets for every query, so a broken one cannot be skipped
// silently.
func (s *Store) FetchReferences(ctx context.Context) ([]store.ReferenceRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, embedding, created_at
		FROM reference_faces
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query references: %v", store.ErrUpstreamUnavailable, err)
	}
	defer rows.Close()

	var refs []store.ReferenceRecord
	for rows.Next() {
		var ref store.ReferenceRecord
		var vec pgvector.Vector
		if err := rows.Scan(&ref.Name, &vec, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan reference: %v", store.ErrUpstreamUnavailable, err)
		}
		ref.Embedding = vec.Slice()
		if len(ref.Embedding) != s.dim {
			return nil, fmt.Errorf("reference %q has dimension %d, expected %d: %w",
				ref.Name, len(ref.Embedding), s.dim, vectormath.ErrDimensionMismatch)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate references: %v", store.ErrUpstreamUnavailable, err)
	}

	return refs, nil
}

// SaveReference upserts a reference record by identity name.
func (s *Store) SaveReference(ctx context.Context, ref store.ReferenceRecord) error {
	if len(ref.Embedding) != s.dim {
		return fmt.Errorf("reference %q has dimension %d, expected %d: %w",
			ref.Name, len(ref.Embedding), s.dim, vectormath.ErrDimensionMismatch)
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO reference_faces (name, embedding, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET embedding = EXCLUDED.embedding
	`, ref.Name, pgvector.NewVector(ref.Embedding))
	if err != nil {
		return fmt.Errorf("%w: save reference %q: %v", store.ErrUpstreamUnavailable, ref.Name, err)
	}
	return nil
}
