package ports

import (
	"time"
)

// PipelineStatistics is the aggregate view exposed for operational dashboards.
// Averages are running averages recomputed as (oldAvg*(n-1)+new)/n from every
// terminal instance.
type PipelineStatistics struct {
	TotalProcessed            int64         `json:"total_processed"`
	Completed                 int64         `json:"completed"`
	Failed                    int64         `json:"failed"`
	Terminated                int64         `json:"terminated"`
	SuccessRate               float64       `json:"success_rate"`
	AverageDuration           time.Duration `json:"average_duration"`
	ValidationPassRate        float64       `json:"validation_pass_rate"`
	AutoFixSuccessRate        float64       `json:"auto_fix_success_rate"`
	AverageQualityScore       float64       `json:"average_quality_score"`
	AverageQualityImprovement float64       `json:"average_quality_improvement"`
}

type HealthStatus struct {
	Healthy         bool    `json:"healthy"`
	Status          string  `json:"status"`
	ActiveWorkflows int     `json:"active_workflows"`
	SuccessRate     float64 `json:"success_rate"`
	TotalProcessed  int64   `json:"total_processed"`
}

type StatisticsProvider interface {
	GetStatistics() PipelineStatistics
}
