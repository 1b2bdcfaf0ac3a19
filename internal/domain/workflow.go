package domain

import (
	"time"
)

type Stage string

const (
	StageTrigger     Stage = "trigger"
	StageGeneration  Stage = "generation"
	StageValidation  Stage = "validation"
	StageFixing      Stage = "fixing"
	StageQualityGate Stage = "quality_gating"
	StageApproval    Stage = "approval"
	StagePublication Stage = "publication"
	StageMonitoring  Stage = "monitoring"
	StageComplete    Stage = "complete"
	StageFailed      Stage = "failed"
)

type WorkflowStatus string

const (
	WorkflowStatusActive     WorkflowStatus = "active"
	WorkflowStatusCompleted  WorkflowStatus = "completed"
	WorkflowStatusFailed     WorkflowStatus = "failed"
	WorkflowStatusTerminated WorkflowStatus = "terminated"
)

func (s WorkflowStatus) Terminal() bool {
	return s == WorkflowStatusCompleted || s == WorkflowStatusFailed || s == WorkflowStatusTerminated
}

type HistoryLevel string

const (
	HistoryInfo    HistoryLevel = "info"
	HistorySuccess HistoryLevel = "success"
	HistoryWarning HistoryLevel = "warning"
	HistoryError   HistoryLevel = "error"
)

// HistoryEntry is one line of the append-only stage log. Entries are never
// mutated after being appended.
type HistoryEntry struct {
	Stage     Stage        `json:"stage"`
	Message   string       `json:"message"`
	Level     HistoryLevel `json:"level"`
	Timestamp time.Time    `json:"timestamp"`
}

// WorkflowInstance is one execution of the content pipeline for one request.
// It is owned exclusively by the orchestrator until it reaches a terminal
// status, after which it is immutable.
type WorkflowInstance struct {
	ID           string          `json:"id"`
	Request      ContentRequest  `json:"request"`
	CurrentStage Stage           `json:"current_stage"`
	History      []HistoryEntry  `json:"history"`
	Results      StageResults    `json:"results"`
	Metrics      InstanceMetrics `json:"metrics"`
	Status       WorkflowStatus  `json:"status"`
	StartedAt    time.Time       `json:"started_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
	Error        string          `json:"error,omitempty"`
}

func (w *WorkflowInstance) AppendHistory(stage Stage, level HistoryLevel, message string) {
	w.History = append(w.History, HistoryEntry{
		Stage:     stage,
		Message:   message,
		Level:     level,
		Timestamp: time.Now(),
	})
}

func (w *WorkflowInstance) RecordStageDuration(stage Stage, duration time.Duration) {
	if w.Metrics.StageDurations == nil {
		w.Metrics.StageDurations = make(map[Stage]time.Duration)
	}
	w.Metrics.StageDurations[stage] += duration
}

// StageResults collects the write-once outputs of each stage.
type StageResults struct {
	Generation  *GenerationResult  `json:"generation,omitempty"`
	Validation  *ValidationResult  `json:"validation,omitempty"`
	FixAttempts []FixAttempt       `json:"fix_attempts,omitempty"`
	Approval    *ApprovalDecision  `json:"approval,omitempty"`
	Publication *PublicationResult `json:"publication,omitempty"`
}

type InstanceMetrics struct {
	StageDurations map[Stage]time.Duration `json:"stage_durations,omitempty"`
	QualityScore   float64                 `json:"quality_score"`
	TotalDuration  time.Duration           `json:"total_duration"`
}

type FixAttempt struct {
	Attempt      int       `json:"attempt"`
	AppliedFixes []string  `json:"applied_fixes"`
	ScoreBefore  float64   `json:"score_before"`
	ScoreAfter   float64   `json:"score_after"`
	Passed       bool      `json:"passed"`
	AttemptedAt  time.Time `json:"attempted_at"`
}
