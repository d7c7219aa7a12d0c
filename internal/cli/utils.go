// Package cli provides output formatting for the Portico command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Philosophiser/teams-agent-portico/internal/models"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

const separator = "─────────────────────────────────────────────────────────"

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d results in %dms\n\n", response.Total, response.QueryTime)
	for i, result := range response.Results {
		fmt.Fprintln(w, separator)
		fmt.Fprintf(w, "Rank: %d | Score: %.4f | Source: %s\n", i+1, result.Score, result.Citation)
		fmt.Fprintf(w, "\n%s\n", Truncate(result.Content, 300))
		fmt.Fprintln(w)
	}
}

// WriteContext writes a rendered context block to w in the given format.
func WriteContext(w io.Writer, rendered *models.RenderedContext, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rendered)
	default:
		if rendered.Content == "" {
			fmt.Fprintln(w, "No matching context.")
			return nil
		}
		fmt.Fprintln(w, rendered.Content)
		return nil
	}
}

// WriteDocuments writes a document listing to w in the given format.
func WriteDocuments(w io.Writer, docs []models.Document, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	default:
		fmt.Fprintf(w, "\n%d documents\n\n", len(docs))
		for _, doc := range docs {
			fmt.Fprintln(w, separator)
			if doc.ID != "" {
				fmt.Fprintf(w, "ID: %s\n", doc.ID)
			}
			fmt.Fprintf(w, "Source: %s\n", doc.Citation)
			fmt.Fprintf(w, "\n%s\n", Truncate(doc.Content, 200))
			fmt.Fprintln(w)
		}
		return nil
	}
}

// WriteStatus writes corpus status to w in the given format.
func WriteStatus(w io.Writer, status *models.StatusResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	default:
		fmt.Fprintf(w, "Documents:      %d\n", status.Documents)
		fmt.Fprintf(w, "Chunks:         %d\n", status.Chunks)
		fmt.Fprintf(w, "Sources:        %s\n", strings.Join(status.Sources, ", "))
		fmt.Fprintf(w, "Max chunk size: %d tokens\n", status.MaxChunkSize)
		fmt.Fprintf(w, "Top K:          %d\n", status.TopK)
		fmt.Fprintf(w, "Min score:      %.2f\n", status.MinScore)
		return nil
	}
}

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
