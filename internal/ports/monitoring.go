package ports

import (
	"context"

	"github.com/eleven-am/forge/internal/domain"
)

// Monitor is the best-effort post-publication hook. Errors returned here are
// logged as warnings and never fail the workflow.
type Monitor interface {
	Observe(ctx context.Context, instance *domain.WorkflowInstance) error
}
