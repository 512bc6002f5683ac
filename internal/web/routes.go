package web

import (
	"github.com/nill-home/face-insight/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	facesHandler := handlers.NewFacesHandler(s.service)
	searchHandler := handlers.NewSearchHandler(s.service)
	statsHandler := handlers.NewStatsHandler(s.service)
	indexHandler := handlers.NewIndexHandler(s.service)

	// Health check
	s.router.Get("/health", handlers.HealthCheck)

	// Similarity queries
	s.router.Get("/faces/unknown", facesHandler.Unknown)
	s.router.Post("/faces/known", facesHandler.Known)
	s.router.Post("/faces/search", facesHandler.Search)

	// Metadata and identity queries
	s.router.Get("/search/known", searchHandler.Known)
	s.router.Get("/search/unknown", searchHandler.Unknown)
	s.router.Get("/search/similar", searchHandler.Similar)
	s.router.Post("/search/rank", searchHandler.Rank)

	// Corpus statistics and index management
	s.router.Get("/stats", statsHandler.Get)
	s.router.Post("/index/rebuild", indexHandler.Rebuild)
}
