// Package health derives an operational health verdict from pipeline
// statistics and store counts.
package health

import (
	"context"
	"log/slog"

	"github.com/eleven-am/forge/internal/ports"
)

const (
	degradedSuccessRate  = 0.8
	unhealthySuccessRate = 0.5

	// Success rates are meaningless on a handful of workflows.
	minSampleSize = 10
)

type Checker struct {
	stats  ports.StatisticsProvider
	store  ports.WorkflowStore
	logger *slog.Logger
}

func NewChecker(stats ports.StatisticsProvider, store ports.WorkflowStore, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}

	return &Checker{
		stats:  stats,
		store:  store,
		logger: logger.With("component", "health-checker"),
	}
}

func (c *Checker) Check(ctx context.Context) (ports.HealthStatus, error) {
	counts, err := c.store.Counts(ctx)
	if err != nil {
		return ports.HealthStatus{Status: "unhealthy"}, err
	}

	stats := c.stats.GetStatistics()
	status := ports.HealthStatus{
		Healthy:         true,
		Status:          "healthy",
		ActiveWorkflows: counts.Active,
		SuccessRate:     stats.SuccessRate,
		TotalProcessed:  stats.TotalProcessed,
	}

	if stats.TotalProcessed >= minSampleSize {
		switch {
		case stats.SuccessRate < unhealthySuccessRate:
			status.Healthy = false
			status.Status = "unhealthy"
		case stats.SuccessRate < degradedSuccessRate:
			status.Status = "degraded"
		}
	}

	return status, nil
}
