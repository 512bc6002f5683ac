package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/nill-home/face-insight/internal/config"
	"github.com/nill-home/face-insight/internal/embedder"
	"github.com/nill-home/face-insight/internal/search"
	"github.com/nill-home/face-insight/internal/store/postgres"
)

// newEmbedder picks the embedding collaborator. Without EMBEDDER_URL the
// deterministic stub is used so photo queries still work end to end in
// development, just without recognition power.
func newEmbedder(cfg *config.Config) embedder.Embedder {
	if cfg.Embedder.URL == "" {
		fmt.Println("EMBEDDER_URL not set, using deterministic stub embedder")
		return embedder.NewStatic(cfg.Embedder.Dim)
	}
	return embedder.NewClient(cfg.Embedder.URL, cfg.Embedder.Model)
}

// setupStore connects to the database, runs pending migrations and
// returns the embedding store. The caller owns the returned pool.
func setupStore(ctx context.Context, cfg *config.Config) (*postgres.Store, *postgres.Pool, error) {
	if cfg.Database.URL == "" {
		return nil, nil, errors.New("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if err := pool.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return postgres.NewStore(pool, cfg.Embedder.Dim), pool, nil
}

// setupService wires the embedding store and embedder into the search
// service. The caller owns the returned pool.
func setupService(ctx context.Context, cfg *config.Config) (*search.Service, *postgres.Pool, error) {
	st, pool, err := setupStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	svc := search.NewService(st, st, newEmbedder(cfg), cfg.Search)
	return svc, pool, nil
}
