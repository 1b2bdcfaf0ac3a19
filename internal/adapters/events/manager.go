package events

import (
	"log/slog"
	"sync"

	"github.com/eleven-am/forge/internal/domain"
)

// Manager dispatches workflow lifecycle events synchronously to registered
// handlers, so stage transitions are observable at the call site. A panicking
// handler is contained and logged; it never disturbs the emitting workflow.
type Manager struct {
	logger *slog.Logger

	mu                        sync.RWMutex
	workflowStartedHandlers   []func(*domain.WorkflowStartedEvent)
	workflowCompletedHandlers []func(*domain.WorkflowCompletedEvent)
	workflowFailedHandlers    []func(*domain.WorkflowFailedEvent)
	stageChangedHandlers      []func(*domain.StageChangedEvent)
}

func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		logger: logger.With("component", "event-manager"),
	}
}

func (m *Manager) OnWorkflowStarted(handler func(*domain.WorkflowStartedEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workflowStartedHandlers = append(m.workflowStartedHandlers, handler)
}

func (m *Manager) OnWorkflowCompleted(handler func(*domain.WorkflowCompletedEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workflowCompletedHandlers = append(m.workflowCompletedHandlers, handler)
}

func (m *Manager) OnWorkflowFailed(handler func(*domain.WorkflowFailedEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workflowFailedHandlers = append(m.workflowFailedHandlers, handler)
}

func (m *Manager) OnStageChanged(handler func(*domain.StageChangedEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stageChangedHandlers = append(m.stageChangedHandlers, handler)
}

func (m *Manager) EmitWorkflowStarted(event *domain.WorkflowStartedEvent) {
	m.mu.RLock()
	handlers := make([]func(*domain.WorkflowStartedEvent), len(m.workflowStartedHandlers))
	copy(handlers, m.workflowStartedHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		m.dispatch(func() { handler(event) })
	}
}

func (m *Manager) EmitWorkflowCompleted(event *domain.WorkflowCompletedEvent) {
	m.mu.RLock()
	handlers := make([]func(*domain.WorkflowCompletedEvent), len(m.workflowCompletedHandlers))
	copy(handlers, m.workflowCompletedHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		m.dispatch(func() { handler(event) })
	}
}

func (m *Manager) EmitWorkflowFailed(event *domain.WorkflowFailedEvent) {
	m.mu.RLock()
	handlers := make([]func(*domain.WorkflowFailedEvent), len(m.workflowFailedHandlers))
	copy(handlers, m.workflowFailedHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		m.dispatch(func() { handler(event) })
	}
}

func (m *Manager) EmitStageChanged(event *domain.StageChangedEvent) {
	m.mu.RLock()
	handlers := make([]func(*domain.StageChangedEvent), len(m.stageChangedHandlers))
	copy(handlers, m.stageChangedHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		m.dispatch(func() { handler(event) })
	}
}

func (m *Manager) dispatch(invoke func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("event handler panicked", "reason", r)
		}
	}()

	invoke()
}
