package domain

import (
	"sync/atomic"
)

// PipelineMetrics holds monotonically increasing counters accumulated across
// all workflow instances processed by one orchestrator.
type PipelineMetrics struct {
	WorkflowsStarted    int64 `json:"workflows_started"`
	WorkflowsCompleted  int64 `json:"workflows_completed"`
	WorkflowsFailed     int64 `json:"workflows_failed"`
	WorkflowsTerminated int64 `json:"workflows_terminated"`

	ValidationsRun    int64 `json:"validations_run"`
	ValidationsPassed int64 `json:"validations_passed"`

	FixAttempts  int64 `json:"fix_attempts"`
	FixSuccesses int64 `json:"fix_successes"`

	ContentPublished int64 `json:"content_published"`
}

func NewPipelineMetrics() *PipelineMetrics {
	return &PipelineMetrics{}
}

func (m *PipelineMetrics) IncrementWorkflowsStarted() {
	atomic.AddInt64(&m.WorkflowsStarted, 1)
}

func (m *PipelineMetrics) IncrementWorkflowsCompleted() {
	atomic.AddInt64(&m.WorkflowsCompleted, 1)
}

func (m *PipelineMetrics) IncrementWorkflowsFailed() {
	atomic.AddInt64(&m.WorkflowsFailed, 1)
}

func (m *PipelineMetrics) IncrementWorkflowsTerminated() {
	atomic.AddInt64(&m.WorkflowsTerminated, 1)
}

func (m *PipelineMetrics) IncrementValidationsRun() {
	atomic.AddInt64(&m.ValidationsRun, 1)
}

func (m *PipelineMetrics) IncrementValidationsPassed() {
	atomic.AddInt64(&m.ValidationsPassed, 1)
}

func (m *PipelineMetrics) IncrementFixAttempts() {
	atomic.AddInt64(&m.FixAttempts, 1)
}

func (m *PipelineMetrics) IncrementFixSuccesses() {
	atomic.AddInt64(&m.FixSuccesses, 1)
}

func (m *PipelineMetrics) IncrementContentPublished() {
	atomic.AddInt64(&m.ContentPublished, 1)
}

func (m *PipelineMetrics) Snapshot() PipelineMetrics {
	return PipelineMetrics{
		WorkflowsStarted:    atomic.LoadInt64(&m.WorkflowsStarted),
		WorkflowsCompleted:  atomic.LoadInt64(&m.WorkflowsCompleted),
		WorkflowsFailed:     atomic.LoadInt64(&m.WorkflowsFailed),
		WorkflowsTerminated: atomic.LoadInt64(&m.WorkflowsTerminated),
		ValidationsRun:      atomic.LoadInt64(&m.ValidationsRun),
		ValidationsPassed:   atomic.LoadInt64(&m.ValidationsPassed),
		FixAttempts:         atomic.LoadInt64(&m.FixAttempts),
		FixSuccesses:        atomic.LoadInt64(&m.FixSuccesses),
		ContentPublished:    atomic.LoadInt64(&m.ContentPublished),
	}
}
