package models

import (
	"fmt"
	"strings"
)

// SearchRequest is the body of a search or context request.
// An empty query is valid and yields an empty result, not an error.
type SearchRequest struct {
	Query string `json:"query"`
}

// DocumentInput is the input for adding a document to the library.
type DocumentInput struct {
	Citation string `json:"citation"`
	Content  string `json:"content"`
}

// Validate ensures the input can be stored and fills defaults.
// Returns an error for empty content; an empty citation defaults to "untitled".
func (d *DocumentInput) Validate() error {
	if strings.TrimSpace(d.Content) == "" {
		return fmt.Errorf("content cannot be empty")
	}
	d.Citation = strings.TrimSpace(d.Citation)
	if d.Citation == "" {
		d.Citation = "untitled"
	}
	return nil
}
