package engine

import (
	"context"
	"log/slog"

	"github.com/eleven-am/forge/internal/domain"
)

// LogMonitor is the default post-publication monitor. It records the outcome
// to the structured log so downstream tooling can pick it up.
type LogMonitor struct {
	logger *slog.Logger
}

func NewLogMonitor(logger *slog.Logger) *LogMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMonitor{logger: logger.With("component", "log-monitor")}
}

func (m *LogMonitor) Observe(_ context.Context, instance *domain.WorkflowInstance) error {
	contentID := ""
	if instance.Results.Publication != nil {
		contentID = instance.Results.Publication.ContentID
	}

	m.logger.Info("content published",
		"workflow_id", instance.ID,
		"content_id", contentID,
		"content_type", instance.Request.ContentType,
		"quality_score", instance.Metrics.QualityScore)

	return nil
}
