package engine

import (
	"sync"
	"time"

	"github.com/eleven-am/forge/internal/domain"
	"github.com/eleven-am/forge/internal/ports"
)

// Statistics accumulates per-instance outcomes into running aggregates. Every
// terminal instance is recorded exactly once; averages are recomputed
// incrementally so no per-instance history is retained.
type Statistics struct {
	mu sync.Mutex

	totalProcessed int64
	completed      int64
	failed         int64
	terminated     int64

	validated      int64
	validationPass int64
	fixAttempted   int64
	fixSucceeded   int64

	averageDuration    time.Duration
	averageScore       float64
	scoredInstances    int64
	averageImprovement float64
	improvedInstances  int64
}

func NewStatistics() *Statistics {
	return &Statistics{}
}

// RecordTerminal folds one finished instance into the aggregates.
func (s *Statistics) RecordTerminal(instance *domain.WorkflowInstance) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalProcessed++
	switch instance.Status {
	case domain.WorkflowStatusCompleted:
		s.completed++
	case domain.WorkflowStatusTerminated:
		s.terminated++
	default:
		s.failed++
	}

	s.averageDuration = time.Duration(runningAverage(
		float64(s.averageDuration), float64(instance.Metrics.TotalDuration), s.totalProcessed))

	if validation := instance.Results.Validation; validation != nil {
		s.validated++
		if validation.Passed {
			s.validationPass++
		}

		s.scoredInstances++
		s.averageScore = runningAverage(s.averageScore, validation.OverallScore, s.scoredInstances)
	}

	if attempts := instance.Results.FixAttempts; len(attempts) > 0 {
		s.fixAttempted++
		last := attempts[len(attempts)-1]
		if last.Passed {
			s.fixSucceeded++
		}

		improvement := last.ScoreAfter - attempts[0].ScoreBefore
		s.improvedInstances++
		s.averageImprovement = runningAverage(s.averageImprovement, improvement, s.improvedInstances)
	}
}

func (s *Statistics) GetStatistics() ports.PipelineStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ports.PipelineStatistics{
		TotalProcessed:            s.totalProcessed,
		Completed:                 s.completed,
		Failed:                    s.failed,
		Terminated:                s.terminated,
		SuccessRate:               ratio(s.completed, s.totalProcessed),
		AverageDuration:           s.averageDuration,
		ValidationPassRate:        ratio(s.validationPass, s.validated),
		AutoFixSuccessRate:        ratio(s.fixSucceeded, s.fixAttempted),
		AverageQualityScore:       s.averageScore,
		AverageQualityImprovement: s.averageImprovement,
	}
}

func runningAverage(oldAvg, value float64, n int64) float64 {
	return (oldAvg*float64(n-1) + value) / float64(n)
}

func ratio(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
