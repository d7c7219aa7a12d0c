// Package source supplies documents to the corpus from filesystem roots, the
// document library, and (as a placeholder) a remote provider.
package source

import (
	"context"

	"github.com/Philosophiser/teams-agent-portico/internal/models"
)

// Source yields documents for a corpus load.
type Source interface {
	// Name identifies the source in logs and status output.
	Name() string
	// Load returns every document the source currently has. Per-entry
	// failures are handled inside the source; a returned error means the
	// source as a whole could not be read.
	Load(ctx context.Context) ([]models.Document, error)
}
