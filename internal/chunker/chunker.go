// Package chunker splits document text into paragraph-aligned chunks under an
// approximate token budget.
package chunker

import (
	"regexp"
	"strings"

	"github.com/Philosophiser/teams-agent-portico/internal/models"
)

// charsPerToken is the fixed size approximation: one token is roughly four
// characters of text.
const charsPerToken = 4

// paragraphSep matches the blank-line boundaries between paragraphs.
var paragraphSep = regexp.MustCompile(`\n{2,}`)

// EstimateTokens returns the approximate token count of text, rounding up.
func EstimateTokens(text string) int {
	return (len(text) + charsPerToken - 1) / charsPerToken
}

// Split breaks text into chunks of roughly maxTokens tokens each. Chunks are
// built from whole paragraphs: consecutive paragraphs are packed into one
// chunk until the budget would be exceeded. A single paragraph over the budget
// becomes its own oversized chunk rather than being cut, so the budget is a
// soft target, not a hard cap.
func Split(text string, maxTokens int) []string {
	paragraphs := splitParagraphs(text)

	chunks := make([]string, 0, len(paragraphs))
	var current string
	for _, para := range paragraphs {
		if current != "" && EstimateTokens(current)+EstimateTokens(para) > maxTokens {
			chunks = append(chunks, current)
			current = para
			continue
		}
		if current == "" {
			current = para
		} else {
			current += "\n\n" + para
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}

	if len(chunks) == 0 {
		// Whitespace-only input yields no paragraphs; keep the text verbatim
		// as a single chunk.
		return []string{text}
	}
	return chunks
}

// ChunkDocuments derives the chunk sequence for a document set, carrying each
// document's citation and enumerating chunk positions within the document.
func ChunkDocuments(docs []models.Document, maxTokens int) []models.Chunk {
	chunks := make([]models.Chunk, 0, len(docs))
	for _, doc := range docs {
		pieces := Split(doc.Content, maxTokens)
		for i, piece := range pieces {
			chunks = append(chunks, models.Chunk{
				Content:     piece,
				Citation:    doc.Citation,
				ChunkIndex:  i,
				TotalChunks: len(pieces),
			})
		}
	}
	return chunks
}

// splitParagraphs cuts text on runs of two or more newlines, trimming each
// paragraph and dropping empty ones.
func splitParagraphs(text string) []string {
	parts := paragraphSep.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		paragraphs = append(paragraphs, trimmed)
	}
	return paragraphs
}
