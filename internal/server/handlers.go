package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Philosophiser/teams-agent-portico/internal/config"
	"github.com/Philosophiser/teams-agent-portico/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.String("query", req.Query))

	start := time.Now()
	results := s.corpus.Search(req.Query)
	s.respondJSON(w, http.StatusOK, models.SearchResponse{
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
		Query:     req.Query,
	})
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("context request", zap.String("query", req.Query))

	s.respondJSON(w, http.StatusOK, s.corpus.RenderContext(req.Query))
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := s.corpus.Documents()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docs,
		"total":     len(docs),
	})
}

func (s *Server) handleAddDocument(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		s.respondError(w, http.StatusServiceUnavailable, "document library is disabled")
		return
	}

	var input models.DocumentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := input.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.library.Add(r.Context(), input)
	if err != nil {
		s.logger.Error("add document failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Debug("document added",
		zap.String("id", doc.ID),
		zap.String("citation", doc.Citation))

	if _, err := s.corpus.Reload(r.Context()); err != nil {
		s.logger.Warn("reload after document add failed", zap.Error(err))
	}

	s.respondJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		s.respondError(w, http.StatusServiceUnavailable, "document library is disabled")
		return
	}

	id := chi.URLParam(r, "id")
	doc, err := s.library.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}
	s.respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		s.respondError(w, http.StatusServiceUnavailable, "document library is disabled")
		return
	}

	id := chi.URLParam(r, "id")
	s.logger.Debug("delete document request", zap.String("id", id))
	if err := s.library.Remove(r.Context(), id); err != nil {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}

	if _, err := s.corpus.Reload(r.Context()); err != nil {
		s.logger.Warn("reload after document delete failed", zap.Error(err))
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	response, err := s.corpus.Reload(r.Context())
	if err != nil {
		s.logger.Error("reload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, models.StatusResponse{
		Documents:    s.corpus.DocumentCount(),
		Chunks:       s.corpus.ChunkCount(),
		Sources:      s.corpus.SourceNames(),
		MaxChunkSize: s.cfg.Retrieval.MaxChunkSize,
		TopK:         s.cfg.Retrieval.TopK,
		MinScore:     s.cfg.Retrieval.MinScore,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCorpusPathsList(w http.ResponseWriter, r *http.Request) {
	if s.dir == nil {
		s.respondError(w, http.StatusNotImplemented, "filesystem source not enabled")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"paths": s.dir.Roots()})
}

type corpusPathRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleCorpusPathsAdd(w http.ResponseWriter, r *http.Request) {
	if s.dir == nil {
		s.respondError(w, http.StatusNotImplemented, "filesystem source not enabled")
		return
	}

	var req corpusPathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required")
		return
	}
	abs, err := filepath.Abs(req.Path)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid path")
		return
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			s.respondError(w, http.StatusNotFound, "path not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Debug("corpus path add request", zap.String("path", abs))
	s.dir.AddRoot(abs)
	if s.watch != nil {
		if err := s.watch.AddRoot(abs); err != nil {
			s.logger.Warn("failed to watch new corpus path", zap.Error(err))
		}
	}
	s.persistCorpusPaths()

	if _, err := s.corpus.Reload(r.Context()); err != nil {
		s.logger.Warn("reload after corpus path add failed", zap.Error(err))
	}

	s.respondJSON(w, http.StatusCreated, map[string]string{"path": abs, "status": "added"})
}

func (s *Server) handleCorpusPathsRemove(w http.ResponseWriter, r *http.Request) {
	if s.dir == nil {
		s.respondError(w, http.StatusNotImplemented, "filesystem source not enabled")
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		var body corpusPathRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.Path != "" {
			path = body.Path
		}
	}
	if path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required (query or body)")
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid path")
		return
	}

	s.logger.Debug("corpus path remove request", zap.String("path", abs))
	if !s.dir.RemoveRoot(abs) {
		s.respondError(w, http.StatusNotFound, "path not in corpus")
		return
	}
	if s.watch != nil {
		if err := s.watch.RemoveRoot(abs); err != nil {
			s.logger.Warn("failed to unwatch corpus path", zap.Error(err))
		}
	}
	s.persistCorpusPaths()

	if _, err := s.corpus.Reload(r.Context()); err != nil {
		s.logger.Warn("reload after corpus path remove failed", zap.Error(err))
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"path": abs, "status": "removed"})
}

// persistCorpusPaths writes the current roots back to the config file so
// runtime changes survive restarts.
func (s *Server) persistCorpusPaths() {
	if s.configPath == "" || s.cfg == nil {
		return
	}

	s.configMu.Lock()
	s.cfg.Corpus.Paths = s.dir.Roots()
	err := config.Save(s.configPath, s.cfg)
	s.configMu.Unlock()
	if err != nil {
		s.logger.Warn("failed to persist corpus paths", zap.Error(err))
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
