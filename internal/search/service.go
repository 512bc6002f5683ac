// Package search implements the face search core: similarity
// classification against enrolled identities, metadata-based unknown
// detection, and ranked top-K retrieval. Every operation works on its
// own corpus snapshot fetched at call start; the package holds no state
// besides the optional, explicitly rebuilt HNSW index, so independent
// queries can run concurrently without coordination.
package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/nill-home/face-insight/internal/config"
	"github.com/nill-home/face-insight/internal/embedder"
	"github.com/nill-home/face-insight/internal/store"
)

// Service wires the search core to its collaborators. Both the store
// and the embedder are injected; the service never reaches for ambient
// global state.
type Service struct {
	refs store.ReferenceSource
	obs  store.ObservationSource
	emb  embedder.Embedder
	cfg  config.SearchConfig

	indexMu sync.RWMutex
	index   *CorpusIndex
}

// NewService creates a search service.
func NewService(refs store.ReferenceSource, obs store.ObservationSource, emb embedder.Embedder, cfg config.SearchConfig) *Service {
	return &Service{refs: refs, obs: obs, emb: emb, cfg: cfg}
}

// comparableCorpus fetches the observations that can participate in
// similarity comparisons.
func (s *Service) comparableCorpus(ctx context.Context) ([]store.ObservationRecord, error) {
	corpus, err := s.obs.FetchObservations(ctx, store.Filter{
		OnlyWithFaces:     true,
		OnlyWithEmbedding: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching observations: %w", err)
	}
	return corpus, nil
}

// FindMatchesForIdentity returns every observation matching the named
// identity with similarity >= threshold. An unenrolled identity is a
// normal empty result. threshold <= 0 selects the configured default.
func (s *Service) FindMatchesForIdentity(ctx context.Context, name string, threshold float64) ([]Match, error) {
	if threshold <= 0 {
		threshold = s.cfg.MatchThreshold
	}

	refs, err := s.refs.FetchReferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching references: %w", err)
	}

	ref := resolveReference(refs, name)
	if ref == nil {
		return nil, nil
	}

	corpus, err := s.comparableCorpus(ctx)
	if err != nil {
		return nil, err
	}

	return MatchesForReference(*ref, corpus, threshold), nil
}

// FindUnknownBySimilarity returns observations whose best similarity
// against every enrolled reference stays below threshold. threshold <= 0
// selects the configured default.
func (s *Service) FindUnknownBySimilarity(ctx context.Context, threshold float64) ([]Unknown, error) {
	if threshold <= 0 {
		threshold = s.cfg.UnknownThreshold
	}

	refs, err := s.refs.FetchReferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching references: %w", err)
	}

	corpus, err := s.comparableCorpus(ctx)
	if err != nil {
		return nil, err
	}

	return UnknownBySimilarity(corpus, refs, threshold), nil
}

// SearchByPhoto embeds the uploaded image and returns every observation
// with similarity >= threshold, in corpus order. Empty image bytes
// short-circuit to an empty result without touching the embedder or the
// store. threshold <= 0 selects the configured default.
func (s *Service) SearchByPhoto(ctx context.Context, imageData []byte, threshold float64) ([]Match, error) {
	if len(imageData) == 0 {
		return nil, nil
	}
	if threshold <= 0 {
		threshold = s.cfg.MatchThreshold
	}

	query, err := s.emb.Embed(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("embedding query image: %w", err)
	}

	corpus, err := s.comparableCorpus(ctx)
	if err != nil {
		return nil, err
	}

	return MatchesForQuery(query, corpus, threshold), nil
}

// RankByPhoto embeds the uploaded image and returns the topK most
// similar observations. Uses the HNSW index when one has been built,
// otherwise scores the full corpus. topK <= 0 selects the configured
// default; empty image bytes short-circuit to an empty result.
func (s *Service) RankByPhoto(ctx context.Context, imageData []byte, topK int) ([]MatchResult, error) {
	if len(imageData) == 0 {
		return nil, nil
	}
	if topK <= 0 {
		topK = s.cfg.TopK
	}

	query, err := s.emb.Embed(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("embedding query image: %w", err)
	}

	s.indexMu.RLock()
	index := s.index
	s.indexMu.RUnlock()

	if index != nil {
		return index.Search(query, topK), nil
	}

	corpus, err := s.comparableCorpus(ctx)
	if err != nil {
		return nil, err
	}
	return RankBySimilarity(query, corpus, topK), nil
}

// FindUnknownByCount returns observations whose face count exceeds the
// number of distinct matched identities. Metadata only, no vectors.
func (s *Service) FindUnknownByCount(ctx context.Context) ([]store.ObservationRecord, error) {
	corpus, err := s.obs.FetchObservations(ctx, store.Filter{OnlyWithFaces: true})
	if err != nil {
		return nil, fmt.Errorf("fetching observations: %w", err)
	}

	var unknown []store.ObservationRecord
	for _, obs := range corpus {
		if IsUnknown(obs.FaceCount, obs.MatchedPersons) {
			unknown = append(unknown, obs)
		}
	}
	return unknown, nil
}

// FindKnownByName returns observations whose matched persons contain
// name (exact, case-sensitive).
func (s *Service) FindKnownByName(ctx context.Context, name string) ([]store.ObservationRecord, error) {
	corpus, err := s.obs.FetchObservations(ctx, store.Filter{OnlyWithFaces: true})
	if err != nil {
		return nil, fmt.Errorf("fetching observations: %w", err)
	}
	return KnownByName(corpus, name), nil
}

// FindKnownByAny returns the union of observations matching any of the
// given names, de-duplicated by filename.
func (s *Service) FindKnownByAny(ctx context.Context, names []string) ([]store.ObservationRecord, error) {
	corpus, err := s.obs.FetchObservations(ctx, store.Filter{OnlyWithFaces: true})
	if err != nil {
		return nil, fmt.Errorf("fetching observations: %w", err)
	}
	return KnownByAny(corpus, names), nil
}

// Stats aggregates metadata over the full corpus snapshot.
func (s *Service) Stats(ctx context.Context) (CorpusStats, error) {
	corpus, err := s.obs.FetchObservations(ctx, store.Filter{})
	if err != nil {
		return CorpusStats{}, fmt.Errorf("fetching observations: %w", err)
	}
	return ComputeStats(corpus), nil
}

// RebuildIndex rebuilds the in-memory HNSW index from the current
// corpus snapshot and returns the number of indexed observations.
func (s *Service) RebuildIndex(ctx context.Context) (int, error) {
	corpus, err := s.comparableCorpus(ctx)
	if err != nil {
		return 0, err
	}

	index := BuildCorpusIndex(corpus)

	s.indexMu.Lock()
	s.index = index
	s.indexMu.Unlock()

	return index.Len(), nil
}

// IndexSize returns the number of observations in the HNSW index, or 0
// when no index has been built.
func (s *Service) IndexSize() int {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	if s.index == nil {
		return 0
	}
	return s.index.Len()
}
