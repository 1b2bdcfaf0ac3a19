package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/eleven-am/forge/internal/domain"
)

// AutoApprover approves everything that reaches the approval stage. It stands
// in until a real reviewer integration is injected; the quality gate has
// already run by the time it decides.
type AutoApprover struct {
	logger *slog.Logger
}

func NewAutoApprover(logger *slog.Logger) *AutoApprover {
	if logger == nil {
		logger = slog.Default()
	}
	return &AutoApprover{logger: logger.With("component", "auto-approver")}
}

func (a *AutoApprover) Decide(_ context.Context, instance *domain.WorkflowInstance) (*domain.ApprovalDecision, error) {
	a.logger.Info("auto-approving workflow", "workflow_id", instance.ID)

	return &domain.ApprovalDecision{
		Approved:  true,
		Approver:  "system",
		Basis:     "auto-approval: no reviewer integration configured",
		DecidedAt: time.Now(),
	}, nil
}
