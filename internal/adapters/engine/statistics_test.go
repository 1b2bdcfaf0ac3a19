package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/eleven-am/forge/internal/domain"
)

func terminalInstance(status domain.WorkflowStatus, duration time.Duration, validation *domain.ValidationResult) *domain.WorkflowInstance {
	return &domain.WorkflowInstance{
		ID:     "w",
		Status: status,
		Metrics: domain.InstanceMetrics{
			TotalDuration: duration,
		},
		Results: domain.StageResults{
			Validation: validation,
		},
	}
}

func TestStatistics_RatesAndAverages(t *testing.T) {
	stats := NewStatistics()

	stats.RecordTerminal(terminalInstance(domain.WorkflowStatusCompleted, 2*time.Second,
		&domain.ValidationResult{OverallScore: 0.9, Passed: true}))
	stats.RecordTerminal(terminalInstance(domain.WorkflowStatusFailed, 4*time.Second,
		&domain.ValidationResult{OverallScore: 0.5, Passed: false}))
	stats.RecordTerminal(terminalInstance(domain.WorkflowStatusTerminated, 6*time.Second, nil))

	got := stats.GetStatistics()
	assert.Equal(t, int64(3), got.TotalProcessed)
	assert.Equal(t, int64(1), got.Completed)
	assert.Equal(t, int64(1), got.Failed)
	assert.Equal(t, int64(1), got.Terminated)
	assert.InDelta(t, 1.0/3.0, got.SuccessRate, 1e-9)
	assert.Equal(t, 4*time.Second, got.AverageDuration)

	// Only the two validated instances count toward validation rates.
	assert.InDelta(t, 0.5, got.ValidationPassRate, 1e-9)
	assert.InDelta(t, 0.7, got.AverageQualityScore, 1e-9)
}

func TestStatistics_AutoFixTracking(t *testing.T) {
	stats := NewStatistics()

	improved := terminalInstance(domain.WorkflowStatusCompleted, time.Second,
		&domain.ValidationResult{OverallScore: 0.85, Passed: true})
	improved.Results.FixAttempts = []domain.FixAttempt{
		{Attempt: 1, ScoreBefore: 0.55, ScoreAfter: 0.70, Passed: false},
		{Attempt: 2, ScoreBefore: 0.70, ScoreAfter: 0.85, Passed: true},
	}
	stats.RecordTerminal(improved)

	stuck := terminalInstance(domain.WorkflowStatusFailed, time.Second,
		&domain.ValidationResult{OverallScore: 0.55, Passed: false})
	stuck.Results.FixAttempts = []domain.FixAttempt{
		{Attempt: 1, ScoreBefore: 0.55, ScoreAfter: 0.55, Passed: false},
	}
	stats.RecordTerminal(stuck)

	got := stats.GetStatistics()
	assert.InDelta(t, 0.5, got.AutoFixSuccessRate, 1e-9)
	// Improvements: +0.30 and 0.00, averaged.
	assert.InDelta(t, 0.15, got.AverageQualityImprovement, 1e-9)
}

func TestStatistics_EmptySnapshot(t *testing.T) {
	got := NewStatistics().GetStatistics()

	assert.Zero(t, got.TotalProcessed)
	assert.Zero(t, got.SuccessRate)
	assert.Zero(t, got.ValidationPassRate)
	assert.Zero(t, got.AutoFixSuccessRate)
}
