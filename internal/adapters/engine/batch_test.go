package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eleven-am/forge/internal/domain"
)

func TestProcessBatch_ItemFailureIsIsolated(t *testing.T) {
	f := newFixture(t, domain.DefaultEngineConfig())

	good := domain.ContentRequest{ContentType: domain.ContentTypeNewsletter}
	bad := domain.ContentRequest{ContentType: domain.ContentTypeBlogPost}

	f.generator.On("Generate", mock.Anything, good).Return(generated("body"), nil)
	f.generator.On("Generate", mock.Anything, bad).Return(nil, errors.New("completion service unavailable"))
	f.validator.On("Validate", mock.Anything, mock.Anything, mock.Anything).Return(passingValidation(0.9), nil)
	f.contents.On("Save", mock.Anything, mock.Anything).Return(&domain.Artifact{ID: "content-1"}, nil)
	f.contents.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.monitor.On("Observe", mock.Anything, mock.Anything).Return(nil)

	result, err := f.orchestrator.ProcessBatch(context.Background(), []domain.ContentRequest{good, bad, good})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Items, 3)

	assert.Equal(t, domain.WorkflowStatusCompleted, result.Items[0].Status)
	assert.Equal(t, domain.WorkflowStatusFailed, result.Items[1].Status)
	assert.Contains(t, result.Items[1].Error, "completion service unavailable")
	assert.Equal(t, domain.WorkflowStatusCompleted, result.Items[2].Status)

	// Every item got its own workflow instance.
	ids := map[string]bool{}
	for _, item := range result.Items {
		require.NotEmpty(t, item.WorkflowID)
		ids[item.WorkflowID] = true
	}
	assert.Len(t, ids, 3)
}

func TestProcessBatch_ParallelPreservesItemOrder(t *testing.T) {
	f := newFixture(t, domain.DefaultEngineConfig())
	f.orchestrator.batch = domain.BatchConfig{Parallel: true, GroupSize: 2}

	request := domain.ContentRequest{ContentType: domain.ContentTypeNewsletter}
	f.generator.On("Generate", mock.Anything, mock.Anything).Return(generated("body"), nil)
	f.validator.On("Validate", mock.Anything, mock.Anything, mock.Anything).Return(passingValidation(0.9), nil)
	f.contents.On("Save", mock.Anything, mock.Anything).Return(&domain.Artifact{ID: "content-1"}, nil)
	f.contents.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.monitor.On("Observe", mock.Anything, mock.Anything).Return(nil)

	requests := []domain.ContentRequest{request, request, request, request, request}
	result, err := f.orchestrator.ProcessBatch(context.Background(), requests)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Succeeded)
	for i, item := range result.Items {
		assert.Equal(t, i, item.Index)
		assert.Equal(t, domain.WorkflowStatusCompleted, item.Status)
	}
}

func TestProcessBatch_EmptyInputRejected(t *testing.T) {
	f := newFixture(t, domain.DefaultEngineConfig())

	_, err := f.orchestrator.ProcessBatch(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
