package engine

import (
	"context"
	"sync"
	"time"

	"github.com/eleven-am/forge/internal/adapters/semaphore"
	"github.com/eleven-am/forge/internal/domain"
)

// ProcessBatch runs a set of requests as independent workflow instances. A
// failing item records its error in the batch result and never disturbs its
// siblings. When parallel mode is enabled, concurrency is bounded by the
// configured group size.
func (o *Orchestrator) ProcessBatch(ctx context.Context, requests []domain.ContentRequest) (*domain.BatchResult, error) {
	if len(requests) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := o.ctx.Err(); err != nil {
		return nil, domain.ErrShutdown
	}

	started := time.Now()
	result := &domain.BatchResult{
		Total: len(requests),
		Items: make([]domain.BatchItemResult, len(requests)),
	}

	o.logger.Info("batch started",
		"size", len(requests),
		"parallel", o.batch.Parallel,
		"group_size", o.batch.GroupSize)

	if o.batch.Parallel {
		o.processBatchParallel(ctx, requests, result)
	} else {
		for i, request := range requests {
			result.Items[i] = o.processBatchItem(ctx, i, request)
		}
	}

	for _, item := range result.Items {
		if item.Status == domain.WorkflowStatusCompleted {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}
	result.Duration = time.Since(started)

	o.logger.Info("batch finished",
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"duration", result.Duration)

	return result, nil
}

func (o *Orchestrator) processBatchParallel(ctx context.Context, requests []domain.ContentRequest, result *domain.BatchResult) {
	sem := semaphore.NewAdapter(o.batch.GroupSize, o.logger)

	var wg sync.WaitGroup
	for i, request := range requests {
		if err := sem.Acquire(ctx); err != nil {
			result.Items[i] = domain.BatchItemResult{
				Index:  i,
				Status: domain.WorkflowStatusFailed,
				Error:  err.Error(),
			}
			continue
		}

		wg.Add(1)
		go func(index int, request domain.ContentRequest) {
			defer wg.Done()
			defer sem.Release()
			result.Items[index] = o.processBatchItem(ctx, index, request)
		}(i, request)
	}
	wg.Wait()
}

func (o *Orchestrator) processBatchItem(ctx context.Context, index int, request domain.ContentRequest) domain.BatchItemResult {
	item := domain.BatchItemResult{Index: index}

	instance, err := o.Process(ctx, request)
	if instance != nil {
		item.WorkflowID = instance.ID
		item.Status = instance.Status
	} else {
		item.Status = domain.WorkflowStatusFailed
	}
	if err != nil {
		item.Error = err.Error()
	}

	return item
}
