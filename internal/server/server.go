// Package server provides the HTTP API for Portico.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Philosophiser/teams-agent-portico/internal/config"
	"github.com/Philosophiser/teams-agent-portico/internal/corpus"
	"github.com/Philosophiser/teams-agent-portico/internal/library"
	"github.com/Philosophiser/teams-agent-portico/internal/source"
)

// RootWatcher is the part of the filesystem watcher the server drives when
// corpus paths change at runtime.
type RootWatcher interface {
	AddRoot(path string) error
	RemoveRoot(path string) error
}

// Server is the HTTP server for the Portico API.
type Server struct {
	corpus     *corpus.Manager
	library    *library.Library
	dir        *source.Dir
	watch      RootWatcher
	cfg        *config.Config
	configPath string
	configMu   sync.Mutex
	logger     *zap.Logger
	server     *http.Server
}

// NewServer creates a server with the given dependencies. library, dir and
// watch may be nil when the corresponding subsystem is disabled; configPath
// may be empty when corpus path changes should not be persisted.
func NewServer(
	mgr *corpus.Manager,
	lib *library.Library,
	dir *source.Dir,
	watch RootWatcher,
	cfg *config.Config,
	configPath string,
	logger *zap.Logger,
) *Server {
	return &Server{
		corpus:     mgr,
		library:    lib,
		dir:        dir,
		watch:      watch,
		cfg:        cfg,
		configPath: configPath,
		logger:     logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/search", s.handleSearch)
	r.Post("/api/v1/context", s.handleContext)
	r.Get("/api/v1/documents", s.handleListDocuments)
	r.Post("/api/v1/documents", s.handleAddDocument)
	r.Get("/api/v1/documents/{id}", s.handleGetDocument)
	r.Delete("/api/v1/documents/{id}", s.handleDeleteDocument)
	r.Get("/api/v1/corpus/paths", s.handleCorpusPathsList)
	r.Post("/api/v1/corpus/paths", s.handleCorpusPathsAdd)
	r.Delete("/api/v1/corpus/paths", s.handleCorpusPathsRemove)
	r.Post("/api/v1/reload", s.handleReload)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
