package ports

import (
	"context"

	"github.com/eleven-am/forge/internal/domain"
)

// ContentStore is the persistence collaborator for published artifacts.
type ContentStore interface {
	Save(ctx context.Context, artifact *domain.Artifact) (*domain.Artifact, error)
	UpdateStatus(ctx context.Context, id string, status string, metadata map[string]string) error
}
