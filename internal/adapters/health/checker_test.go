package health

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleven-am/forge/internal/adapters/memory"
	"github.com/eleven-am/forge/internal/domain"
	"github.com/eleven-am/forge/internal/ports"
)

type stubStats struct {
	stats ports.PipelineStatistics
}

func (s *stubStats) GetStatistics() ports.PipelineStatistics {
	return s.stats
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestChecker_HealthyWithSmallSample(t *testing.T) {
	// Two failures out of two is not enough data to call it unhealthy.
	checker := NewChecker(&stubStats{stats: ports.PipelineStatistics{
		TotalProcessed: 2,
		SuccessRate:    0,
	}}, memory.NewStore(testLogger()), testLogger())

	status, err := checker.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.Equal(t, "healthy", status.Status)
}

func TestChecker_DegradedAndUnhealthy(t *testing.T) {
	store := memory.NewStore(testLogger())
	require.NoError(t, store.Create(context.Background(), &domain.WorkflowInstance{
		ID: "w-1", Status: domain.WorkflowStatusActive,
	}))

	checker := NewChecker(&stubStats{stats: ports.PipelineStatistics{
		TotalProcessed: 20,
		SuccessRate:    0.7,
	}}, store, testLogger())

	status, err := checker.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, 1, status.ActiveWorkflows)

	checker = NewChecker(&stubStats{stats: ports.PipelineStatistics{
		TotalProcessed: 20,
		SuccessRate:    0.4,
	}}, store, testLogger())

	status, err = checker.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Healthy)
	assert.Equal(t, "unhealthy", status.Status)
}
