package ports

import (
	"context"

	"github.com/eleven-am/forge/internal/domain"
)

// Generator produces a content artifact from a generation request. It may call
// an external completion service; the orchestrator does not know or care.
// Generation failure is always fatal to the workflow instance.
type Generator interface {
	Generate(ctx context.Context, request domain.ContentRequest) (*domain.GenerationResult, error)
}
