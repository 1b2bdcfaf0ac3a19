package events

import (
	"log/slog"
	"os"
	"testing"

	"github.com/eleven-am/forge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestManager_SynchronousDispatch(t *testing.T) {
	m := NewManager(testLogger())

	var seen []string
	m.OnStageChanged(func(event *domain.StageChangedEvent) {
		seen = append(seen, string(event.To))
	})

	m.EmitStageChanged(&domain.StageChangedEvent{To: domain.StageGeneration})
	m.EmitStageChanged(&domain.StageChangedEvent{To: domain.StageValidation})

	assert.Equal(t, []string{"generation", "validation"}, seen)
}

func TestManager_MultipleHandlers(t *testing.T) {
	m := NewManager(testLogger())

	calls := 0
	m.OnWorkflowCompleted(func(*domain.WorkflowCompletedEvent) { calls++ })
	m.OnWorkflowCompleted(func(*domain.WorkflowCompletedEvent) { calls++ })

	m.EmitWorkflowCompleted(&domain.WorkflowCompletedEvent{WorkflowID: "w-1"})

	assert.Equal(t, 2, calls)
}

func TestManager_PanickingHandlerIsContained(t *testing.T) {
	m := NewManager(testLogger())

	var received *domain.WorkflowFailedEvent
	m.OnWorkflowFailed(func(*domain.WorkflowFailedEvent) { panic("handler bug") })
	m.OnWorkflowFailed(func(event *domain.WorkflowFailedEvent) { received = event })

	require.NotPanics(t, func() {
		m.EmitWorkflowFailed(&domain.WorkflowFailedEvent{WorkflowID: "w-1"})
	})
	require.NotNil(t, received)
	assert.Equal(t, "w-1", received.WorkflowID)
}

func TestManager_EmitWithoutHandlers(t *testing.T) {
	m := NewManager(testLogger())

	assert.NotPanics(t, func() {
		m.EmitWorkflowStarted(&domain.WorkflowStartedEvent{WorkflowID: "w-1"})
	})
}
