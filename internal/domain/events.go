package domain

import (
	"time"
)

type WorkflowStartedEvent struct {
	WorkflowID string         `json:"workflow_id"`
	Request    ContentRequest `json:"request"`
	StartedAt  time.Time      `json:"started_at"`
}

type WorkflowCompletedEvent struct {
	WorkflowID   string        `json:"workflow_id"`
	QualityScore float64       `json:"quality_score"`
	ContentID    string        `json:"content_id,omitempty"`
	Duration     time.Duration `json:"duration"`
	CompletedAt  time.Time     `json:"completed_at"`
}

type WorkflowFailedEvent struct {
	WorkflowID string    `json:"workflow_id"`
	Stage      Stage     `json:"stage"`
	Error      string    `json:"error"`
	FailedAt   time.Time `json:"failed_at"`
}

type StageChangedEvent struct {
	WorkflowID string    `json:"workflow_id"`
	From       Stage     `json:"from"`
	To         Stage     `json:"to"`
	ChangedAt  time.Time `json:"changed_at"`
}
