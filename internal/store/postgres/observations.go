package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/nill-home/face-insight/internal/store"
)

// FetchObservations returns observation records matching the filter,
// ordered by filename so corpus iteration order is stable across calls.
// An observation whose embedding has the wrong dimension is logged and
// returned without an embedding instead of failing the query: one bad
// record must not fail an entire search.
func (s *Store) FetchObservations(ctx context.Context, filter store.Filter) ([]store.ObservationRecord, error) {
	query := `
		SELECT filename, has_faces, face_count, matched_persons, embedding, captured_at, camera_location
		FROM observations
	`

	var conditions []string
	if filter.OnlyWithFaces {
		conditions = append(conditions, "has_faces = TRUE")
	}
	if filter.OnlyWithEmbedding {
		conditions = append(conditions, "embedding IS NOT NULL")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY filename"

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query observations: %v", store.ErrUpstreamUnavailable, err)
	}
	defer rows.Close()

	var obs []store.ObservationRecord
	for rows.Next() {
		var o store.ObservationRecord
		var vec *pgvector.Vector
		var capturedAt sql.NullTime
		if err := rows.Scan(&o.Filename, &o.HasFaces, &o.FaceCount,
			pq.Array(&o.MatchedPersons), &vec, &capturedAt, &o.CameraLocation); err != nil {
			return nil, fmt.Errorf("%w: scan observation: %v", store.ErrUpstreamUnavailable, err)
		}
		if capturedAt.Valid {
			o.Timestamp = capturedAt.Time
		}
		if vec != nil {
			emb := vec.Slice()
			if len(emb) != s.dim {
				log.Printf("skipping malformed embedding for %q: dimension %d, expected %d",
					o.Filename, len(emb), s.dim)
			} else {
				o.Embedding = emb
			}
		}
		obs = append(obs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate observations: %v", store.ErrUpstreamUnavailable, err)
	}

	return obs, nil
}

// SaveObservations upserts observation records by filename in a single
// transaction.
func (s *Store) SaveObservations(ctx context.Context, obs []store.ObservationRecord) error {
	if len(obs) == 0 {
		return nil
	}

	tx, err := s.pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", store.ErrUpstreamUnavailable, err)
	}
	defer tx.Rollback()

	for _, o := range obs {
		var vec any
		if len(o.Embedding) > 0 {
			if len(o.Embedding) != s.dim {
				return &store.MalformedEmbeddingError{
					Filename: o.Filename,
					Size:     len(o.Embedding) * 4,
					Dim:      s.dim,
				}
			}
			vec = pgvector.NewVector(o.Embedding)
		}

		matched := o.MatchedPersons
		if matched == nil {
			matched = []string{}
		}

		var capturedAt any
		if !o.Timestamp.IsZero() {
			capturedAt = o.Timestamp
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO observations (filename, has_faces, face_count, matched_persons, embedding, captured_at, camera_location)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (filename) DO UPDATE SET
				has_faces = EXCLUDED.has_faces,
				face_count = EXCLUDED.face_count,
				matched_persons = EXCLUDED.matched_persons,
				embedding = EXCLUDED.embedding,
				captured_at = EXCLUDED.captured_at,
				camera_location = EXCLUDED.camera_location
		`, o.Filename, o.HasFaces, o.FaceCount, pq.Array(matched), vec, capturedAt, o.CameraLocation)
		if err != nil {
			return fmt.Errorf("%w: save observation %q: %v", store.ErrUpstreamUnavailable, o.Filename, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit observations: %v", store.ErrUpstreamUnavailable, err)
	}
	return nil
}
