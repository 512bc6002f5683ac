//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nill-home/face-insight/internal/config"
	"github.com/nill-home/face-insight/internal/store"
)

const testDim = 128

func setupTestContainer(t *testing.T) (*Pool, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "pgvector/pgvector:pg16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Docker not available or container failed to start, skipping integration test: %v", err)
		return nil, func() {}
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	dbURL := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	cfg := &config.DatabaseConfig{
		URL:          dbURL,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	}

	pool, err := NewPool(cfg)
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("Failed to create pool: %v", err)
	}

	if err := pool.Migrate(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		t.Fatalf("Failed to run migrations: %v", err)
	}

	cleanup := func() {
		pool.Close()
		container.Terminate(ctx)
	}

	return pool, cleanup
}

func testEmbedding(seed float32) []float32 {
	vec := make([]float32, testDim)
	for i := range vec {
		vec[i] = seed * float32(i+1) / testDim
	}
	return vec
}

func TestStore_References(t *testing.T) {
	pool, cleanup := setupTestContainer(t)
	if pool == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()
	s := NewStore(pool, testDim)

	t.Run("SaveAndFetch", func(t *testing.T) {
		if err := s.SaveReference(ctx, store.ReferenceRecord{
			Name:      "Alice",
			Embedding: testEmbedding(1),
		}); err != nil {
			t.Fatalf("SaveReference failed: %v", err)
		}

		refs, err := s.FetchReferences(ctx)
		if err != nil {
			t.Fatalf("FetchReferences failed: %v", err)
		}
		if len(refs) != 1 {
			t.Fatalf("got %d references; want 1", len(refs))
		}
		if refs[0].Name != "Alice" {
			t.Errorf("name = %q; want Alice", refs[0].Name)
		}
		if len(refs[0].Embedding) != testDim {
			t.Errorf("embedding dimension = %d; want %d", len(refs[0].Embedding), testDim)
		}
	})

	t.Run("UpsertReplaces", func(t *testing.T) {
		if err := s.SaveReference(ctx, store.ReferenceRecord{
			Name:      "Alice",
			Embedding: testEmbedding(2),
		}); err != nil {
			t.Fatalf("SaveReference failed: %v", err)
		}

		refs, err := s.FetchReferences(ctx)
		if err != nil {
			t.Fatalf("FetchReferences failed: %v", err)
		}
		if len(refs) != 1 {
			t.Fatalf("got %d references after upsert; want 1", len(refs))
		}
	})

	t.Run("WrongDimensionRejected", func(t *testing.T) {
		err := s.SaveReference(ctx, store.ReferenceRecord{
			Name:      "Bob",
			Embedding: make([]float32, 64),
		})
		if err == nil {
			t.Fatal("expected error for wrong dimension, got nil")
		}
	})
}

func TestStore_Observations(t *testing.T) {
	pool, cleanup := setupTestContainer(t)
	if pool == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()
	s := NewStore(pool, testDim)

	obs := []store.ObservationRecord{
		{
			Filename:       "cam1_001.jpg",
			HasFaces:       true,
			FaceCount:      2,
			MatchedPersons: []string{"Alice"},
			Embedding:      testEmbedding(1),
			Timestamp:      time.Now().UTC().Truncate(time.Second),
			CameraLocation: "entrance",
		},
		{
			Filename:       "cam1_002.jpg",
			HasFaces:       false,
			CameraLocation: "entrance",
		},
		{
			Filename:       "cam2_001.jpg",
			HasFaces:       true,
			FaceCount:      1,
			CameraLocation: "lobby",
		},
	}
	if err := s.SaveObservations(ctx, obs); err != nil {
		t.Fatalf("SaveObservations failed: %v", err)
	}

	t.Run("FetchAll", func(t *testing.T) {
		got, err := s.FetchObservations(ctx, store.Filter{})
		if err != nil {
			t.Fatalf("FetchObservations failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("got %d observations; want 3", len(got))
		}
	})

	t.Run("FilterWithFaces", func(t *testing.T) {
		got, err := s.FetchObservations(ctx, store.Filter{OnlyWithFaces: true})
		if err != nil {
			t.Fatalf("FetchObservations failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d observations with faces; want 2", len(got))
		}
	})

	t.Run("FilterWithEmbedding", func(t *testing.T) {
		got, err := s.FetchObservations(ctx, store.Filter{OnlyWithFaces: true, OnlyWithEmbedding: true})
		if err != nil {
			t.Fatalf("FetchObservations failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d observations with embedding; want 1", len(got))
		}
		if got[0].Filename != "cam1_001.jpg" {
			t.Errorf("filename = %q; want cam1_001.jpg", got[0].Filename)
		}
		if len(got[0].MatchedPersons) != 1 || got[0].MatchedPersons[0] != "Alice" {
			t.Errorf("matched_persons = %v; want [Alice]", got[0].MatchedPersons)
		}
	})
}
