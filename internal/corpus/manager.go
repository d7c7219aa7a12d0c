// Package corpus assembles documents from all configured sources into the
// search index and serializes access to it.
package corpus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Philosophiser/teams-agent-portico/internal/config"
	"github.com/Philosophiser/teams-agent-portico/internal/models"
	"github.com/Philosophiser/teams-agent-portico/internal/search"
	"github.com/Philosophiser/teams-agent-portico/internal/source"
)

// Manager reloads the index from its sources and answers queries against it.
// The index itself is not safe for concurrent use; the manager's lock is the
// only path to it.
type Manager struct {
	sources []source.Source
	index   *search.Index
	mu      sync.RWMutex
	logger  *zap.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for reload events.
func WithLogger(l *zap.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager creates a manager over sources. Documents keep source order
// across reloads, so earlier sources take precedence in fallback answers.
func NewManager(cfg *config.RetrievalConfig, sources []source.Source, opts ...ManagerOption) *Manager {
	m := &Manager{
		sources: sources,
		index:   search.NewIndex(cfg),
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Reload gathers documents from every source and rebuilds the index
// wholesale. A failing source is logged and skipped; only context
// cancellation aborts the reload, leaving the current index in place.
func (m *Manager) Reload(ctx context.Context) (models.ReloadResponse, error) {
	start := time.Now()

	var docs []models.Document
	for _, src := range m.sources {
		if err := ctx.Err(); err != nil {
			return models.ReloadResponse{}, err
		}

		loaded, err := src.Load(ctx)
		if err != nil {
			m.logger.Warn("source failed to load, skipping",
				zap.String("source", src.Name()),
				zap.Error(err))
			continue
		}

		m.logger.Debug("loaded source",
			zap.String("source", src.Name()),
			zap.Int("documents", len(loaded)))
		docs = append(docs, loaded...)
	}

	m.mu.Lock()
	m.index.Load(docs)
	response := models.ReloadResponse{
		Documents: m.index.DocumentCount(),
		Chunks:    m.index.ChunkCount(),
	}
	m.mu.Unlock()

	m.logger.Info("corpus reloaded",
		zap.Int("documents", response.Documents),
		zap.Int("chunks", response.Chunks),
		zap.Duration("took", time.Since(start)))

	return response, nil
}

// Search runs a query against the current index.
func (m *Manager) Search(query string) []models.SearchResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.index.Search(query)
}

// RenderContext runs a query and renders the results as citation-tagged
// context blocks.
func (m *Manager) RenderContext(query string) models.RenderedContext {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.index.RenderContext(query)
}

// Documents returns a copy of the currently indexed documents.
func (m *Manager) Documents() []models.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.index.Documents()
}

// DocumentCount returns the number of indexed documents.
func (m *Manager) DocumentCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.index.DocumentCount()
}

// ChunkCount returns the number of indexed chunks.
func (m *Manager) ChunkCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.index.ChunkCount()
}

// SourceNames returns the names of the configured sources in load order.
func (m *Manager) SourceNames() []string {
	names := make([]string, 0, len(m.sources))
	for _, src := range m.sources {
		names = append(names, src.Name())
	}
	return names
}
