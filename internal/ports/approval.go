package ports

import (
	"context"

	"github.com/eleven-am/forge/internal/domain"
)

// Approver supplies the approval decision for workflows whose request sets
// RequireApproval. Implementations range from auto-approval to a full
// human-in-the-loop reviewer integration.
type Approver interface {
	Decide(ctx context.Context, instance *domain.WorkflowInstance) (*domain.ApprovalDecision, error)
}
