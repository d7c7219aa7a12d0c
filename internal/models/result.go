package models

// SearchResult is a scored chunk surfaced to a caller. The keyword-less
// fallback path returns a whole document in the same shape.
type SearchResult struct {
	Content  string  `json:"content"`
	Citation string  `json:"citation"`
	Score    float64 `json:"score"`
}

// RenderedContext is the annotated context block handed to a downstream
// generation component, plus the citations it was built from in rank order.
// Sources may contain duplicates when multiple chunks of one document rank.
type RenderedContext struct {
	Content string   `json:"content"`
	Sources []string `json:"sources"`
}

// SearchResponse is the envelope for a search request.
type SearchResponse struct {
	Results   []SearchResult `json:"results"`
	Total     int            `json:"total"`
	QueryTime int64          `json:"query_time_ms"`
	Query     string         `json:"query"`
}

// StatusResponse reports corpus and retrieval configuration state.
type StatusResponse struct {
	Documents    int      `json:"documents"`
	Chunks       int      `json:"chunks"`
	Sources      []string `json:"sources"`
	MaxChunkSize int      `json:"max_chunk_size"`
	TopK         int      `json:"top_k"`
	MinScore     float64  `json:"min_score"`
}

// ReloadResponse reports the corpus size after a wholesale reload.
type ReloadResponse struct {
	Documents int `json:"documents"`
	Chunks    int `json:"chunks"`
}
