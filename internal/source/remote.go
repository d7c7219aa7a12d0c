package source

import (
	"context"

	"go.uber.org/zap"

	"github.com/Philosophiser/teams-agent-portico/internal/models"
)

// Remote is a placeholder for a remote document provider. The fetch protocol
// is not designed yet; an enabled remote source only records that it was
// asked for documents.
type Remote struct {
	endpoint string
	logger   *zap.Logger
}

// NewRemote creates the placeholder source for endpoint.
func NewRemote(endpoint string, logger *zap.Logger) *Remote {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Remote{endpoint: endpoint, logger: logger}
}

// Name implements Source.
func (r *Remote) Name() string {
	return "remote"
}

// Load implements Source. It contributes no documents.
func (r *Remote) Load(ctx context.Context) ([]models.Document, error) {
	r.logger.Info("remote document provider not implemented, contributing no documents",
		zap.String("endpoint", r.endpoint))
	return nil, nil
}
