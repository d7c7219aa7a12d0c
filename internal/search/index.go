// Package search provides the retrieval index: chunk scoring, ranked
// selection, and context rendering over a loaded document set.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Philosophiser/teams-agent-portico/internal/chunker"
	"github.com/Philosophiser/teams-agent-portico/internal/config"
	"github.com/Philosophiser/teams-agent-portico/internal/keyword"
	"github.com/Philosophiser/teams-agent-portico/internal/models"
	"github.com/Philosophiser/teams-agent-portico/internal/ranking"
)

// fallbackScore is reported when a query has no usable keywords and the whole
// first document is returned instead of scored chunks.
const fallbackScore = 0.5

// Index holds loaded documents and their derived chunks and answers search
// and context-rendering requests. An Index does no locking of its own: Load
// replaces all state wholesale, and hosts that reload while serving reads
// must serialize externally.
type Index struct {
	cfg    *config.RetrievalConfig
	docs   []models.Document
	chunks []models.Chunk
}

// NewIndex creates an empty index with the given retrieval settings.
func NewIndex(cfg *config.RetrievalConfig) *Index {
	return &Index{cfg: cfg}
}

// Load replaces the document store and rebuilds the chunk store. Documents
// with blank content are dropped; an unreadable source entry arrives as empty
// content and must not produce chunks.
func (ix *Index) Load(docs []models.Document) {
	kept := make([]models.Document, 0, len(docs))
	for _, doc := range docs {
		if strings.TrimSpace(doc.Content) == "" {
			continue
		}
		kept = append(kept, doc)
	}
	ix.docs = kept
	ix.chunks = chunker.ChunkDocuments(kept, ix.cfg.MaxChunkSize)
}

// Search returns the highest-scoring chunks for query, most relevant first,
// at most TopK of them and none below MinScore. An empty query yields no
// results. A query whose words are all stop words falls back to the first
// loaded document at a fixed score.
func (ix *Index) Search(query string) []models.SearchResult {
	if strings.TrimSpace(query) == "" {
		return []models.SearchResult{}
	}

	keywords := keyword.Extract(query)
	if len(keywords) == 0 {
		if len(ix.docs) == 0 {
			return []models.SearchResult{}
		}
		first := ix.docs[0]
		return []models.SearchResult{{
			Content:  first.Content,
			Citation: first.Citation,
			Score:    fallbackScore,
		}}
	}

	results := make([]models.SearchResult, 0, len(ix.chunks))
	for _, chunk := range ix.chunks {
		score := ranking.Score(chunk.Content, keywords)
		if score < ix.cfg.MinScore {
			continue
		}
		results = append(results, models.SearchResult{
			Content:  chunk.Content,
			Citation: chunk.Citation,
			Score:    score,
		})
	}

	// Stable sort keeps chunk order among equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > ix.cfg.TopK {
		results = results[:ix.cfg.TopK]
	}
	return results
}

// RenderContext searches for query and renders the results as citation-tagged
// blocks for a downstream prompt. Blocks appear in rank order, each wrapped as
// <context source="CITATION">, separated by blank lines. Sources lists the
// citations in the same order; a document contributing several chunks appears
// once per chunk.
func (ix *Index) RenderContext(query string) models.RenderedContext {
	results := ix.Search(query)
	if len(results) == 0 {
		return models.RenderedContext{Content: "", Sources: []string{}}
	}

	blocks := make([]string, 0, len(results))
	sources := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, fmt.Sprintf("<context source=\"%s\">\n%s\n</context>", r.Citation, r.Content))
		sources = append(sources, r.Citation)
	}

	return models.RenderedContext{
		Content: strings.TrimSpace(strings.Join(blocks, "\n\n")),
		Sources: sources,
	}
}

// Documents returns a copy of the loaded document set.
func (ix *Index) Documents() []models.Document {
	out := make([]models.Document, len(ix.docs))
	copy(out, ix.docs)
	return out
}

// DocumentCount returns the number of loaded documents.
func (ix *Index) DocumentCount() int {
	return len(ix.docs)
}

// ChunkCount returns the number of derived chunks.
func (ix *Index) ChunkCount() int {
	return len(ix.chunks)
}
