package ports

import (
	"context"

	"github.com/eleven-am/forge/internal/domain"
)

type StoreCounts struct {
	Active     int `json:"active"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Terminated int `json:"terminated"`
}

// WorkflowStore keeps workflow instances in status-keyed collections. The
// orchestrator creates an instance in the active collection, updates it in
// place while it owns it, and moves it to its terminal collection exactly once
// via Finalize (ownership transfer, not copy).
type WorkflowStore interface {
	Create(ctx context.Context, instance *domain.WorkflowInstance) error
	Update(ctx context.Context, instance *domain.WorkflowInstance) error
	// Finalize removes the instance from the active collection and files it
	// under its terminal status. Finalizing an instance that is no longer
	// active returns domain.ErrNotFound.
	Finalize(ctx context.Context, instance *domain.WorkflowInstance) error
	Get(ctx context.Context, id string) (*domain.WorkflowInstance, error)
	List(ctx context.Context, status domain.WorkflowStatus) ([]*domain.WorkflowInstance, error)
	Counts(ctx context.Context) (StoreCounts, error)
}
