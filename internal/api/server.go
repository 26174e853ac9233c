package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/baxromumarov/warlords/internal/scraper"
)

// DocumentReader returns the persisted document bytes.
type DocumentReader interface {
	Read(path string) ([]byte, error)
}

// Refresher runs the pipeline once.
type Refresher interface {
	Run(ctx context.Context) (*scraper.Document, error)
}

type Server struct {
	router     *chi.Mux
	reader     DocumentReader
	refresher  Refresher
	outputPath string
}

func NewServer(reader DocumentReader, refresher Refresher, outputPath string) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		reader:     reader,
		refresher:  refresher,
		outputPath: outputPath,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/warlords", s.handleWarlords)
	s.router.Get("/stats", s.handleStats)
	s.router.Post("/refresh", s.handleRefresh)
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
