package ports

import (
	"github.com/eleven-am/forge/internal/domain"
)

// EventManager dispatches workflow lifecycle events to registered handlers.
// Dispatch is synchronous so stage transitions are observable in tests without
// implicit fan-out.
type EventManager interface {
	EmitWorkflowStarted(event *domain.WorkflowStartedEvent)
	EmitWorkflowCompleted(event *domain.WorkflowCompletedEvent)
	EmitWorkflowFailed(event *domain.WorkflowFailedEvent)
	EmitStageChanged(event *domain.StageChangedEvent)

	OnWorkflowStarted(handler func(*domain.WorkflowStartedEvent))
	OnWorkflowCompleted(handler func(*domain.WorkflowCompletedEvent))
	OnWorkflowFailed(handler func(*domain.WorkflowFailedEvent))
	OnStageChanged(handler func(*domain.StageChangedEvent))
}
