// Package models defines core data structures for documents, chunks, and search results.
package models

// Document is a single corpus entry: the text of one source file or library record.
// Documents are immutable once loaded; a reload replaces them wholesale.
type Document struct {
	// ID is set only for library documents. Filesystem documents are
	// addressed by citation alone.
	ID       string `json:"id,omitempty" db:"id"`
	Citation string `json:"citation" db:"citation"`
	Content  string `json:"content" db:"content"`
}

// Chunk is a paragraph-aligned slice of a document and the unit of scoring.
// Chunks are derived from documents on every load, never stored.
type Chunk struct {
	Content     string `json:"content"`
	Citation    string `json:"citation"`
	ChunkIndex  int    `json:"chunk_index"`
	TotalChunks int    `json:"total_chunks"`
}
