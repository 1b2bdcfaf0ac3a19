package forge

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newsletterTemplate() *Template {
	return &Template{
		Name:    "launch-newsletter",
		Type:    ContentTypeNewsletter,
		Content: "# {{title}}\n\n{{intro}}\n\n## Highlights\n\n{{#each highlights}}- {{this}}\n{{/each}}",
	}
}

func newsletterRequest() ContentRequest {
	return ContentRequest{
		ContentType:  ContentTypeNewsletter,
		TemplateName: "launch-newsletter",
		Audience:     "customers",
		Variables: map[string]interface{}{
			"title":   "August product launch recap for our customers",
			"intro":   "This month we shipped a faster sync engine, a redesigned dashboard, and a set of reliability fixes that cut error rates across every region we operate in.",
			"summary": "Faster sync, a new dashboard, and reliability fixes shipped in August.",
			"tags":    []interface{}{"launch", "august"},
		},
		SourceData: map[string]interface{}{
			"highlights": []string{"Sync engine is twice as fast", "Dashboard redesign is live", "Error rates down across regions"},
		},
	}
}

func startedManager(t *testing.T, config *Config) *Manager {
	t.Helper()

	var (
		manager *Manager
		err     error
	)
	if config != nil {
		config.Logger = testLogger()
		manager, err = NewWithConfig(config)
	} else {
		manager, err = New(testLogger())
	}
	require.NoError(t, err)

	require.NoError(t, manager.RegisterTemplate(newsletterTemplate()))
	require.NoError(t, manager.Start(context.Background()))
	t.Cleanup(func() { manager.Stop(context.Background()) })

	return manager
}

func TestPipeline_EndToEnd(t *testing.T) {
	manager := startedManager(t, nil)
	ctx := context.Background()

	var stages []Stage
	manager.OnStageChanged(func(event *StageChangedEvent) {
		stages = append(stages, event.To)
	})

	instance, err := manager.Process(ctx, newsletterRequest())
	require.NoError(t, err)

	assert.Equal(t, WorkflowStatusCompleted, instance.Status)
	assert.Equal(t, StageComplete, instance.CurrentStage)

	require.NotNil(t, instance.Results.Generation)
	assert.Contains(t, instance.Results.Generation.Artifact.Body, "- Sync engine is twice as fast")

	require.NotNil(t, instance.Results.Validation)
	assert.True(t, instance.Results.Validation.Passed)
	assert.GreaterOrEqual(t, instance.Results.Validation.OverallScore, 0.8)

	require.NotNil(t, instance.Results.Publication)
	assert.NotEmpty(t, instance.Results.Publication.ContentID)

	assert.Contains(t, stages, StageGeneration)
	assert.Contains(t, stages, StagePublication)

	got, err := manager.GetInstance(ctx, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, instance.ID, got.ID)

	stats, err := manager.GetStatistics()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalProcessed)
	assert.Equal(t, 1.0, stats.SuccessRate)

	health, err := manager.GetHealth(ctx)
	require.NoError(t, err)
	assert.True(t, health.Healthy)
}

func TestPipeline_MissingTemplateFailsWorkflow(t *testing.T) {
	manager := startedManager(t, nil)

	request := newsletterRequest()
	request.TemplateName = "does-not-exist"

	instance, err := manager.Process(context.Background(), request)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, WorkflowStatusFailed, instance.Status)
}

func TestPipeline_QualityGateRejectsThinContent(t *testing.T) {
	manager := startedManager(t, nil)

	request := newsletterRequest()
	// Strip everything the validation battery rewards.
	request.Variables = map[string]interface{}{"title": "x", "intro": "Too short."}
	request.SourceData = nil
	request.Audience = ""

	instance, err := manager.Process(context.Background(), request)
	require.Error(t, err)
	assert.True(t, IsQualityGateViolation(err))
	assert.Equal(t, WorkflowStatusFailed, instance.Status)
	assert.Nil(t, instance.Results.Publication)
}

func TestPipeline_BatchProcessing(t *testing.T) {
	manager := startedManager(t, NewConfigBuilder().WithBatchParallelism(2).Build())

	requests := []ContentRequest{newsletterRequest(), newsletterRequest(), newsletterRequest()}
	result, err := manager.ProcessBatch(context.Background(), requests)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Succeeded)
	assert.Zero(t, result.Failed)
}

func TestPipeline_DurableStorage(t *testing.T) {
	config := NewConfigBuilder().WithDurableStore(t.TempDir()).Build()
	manager := startedManager(t, config)

	instance, err := manager.Process(context.Background(), newsletterRequest())
	require.NoError(t, err)

	got, err := manager.GetInstance(context.Background(), instance.ID)
	require.NoError(t, err)
	assert.Equal(t, WorkflowStatusCompleted, got.Status)
}

func TestManager_LifecycleGuards(t *testing.T) {
	manager, err := New(testLogger())
	require.NoError(t, err)

	_, err = manager.Process(context.Background(), newsletterRequest())
	assert.ErrorIs(t, err, ErrNotStarted)

	require.NoError(t, manager.Start(context.Background()))
	assert.ErrorIs(t, manager.Start(context.Background()), ErrAlreadyStarted)

	require.NoError(t, manager.Stop(context.Background()))

	_, err = manager.Process(context.Background(), newsletterRequest())
	assert.ErrorIs(t, err, ErrShutdown)
}

func TestConfigBuilder_Defaults(t *testing.T) {
	config := NewConfigBuilder().
		WithQualityThreshold(0.9).
		WithAutoFix(false).
		Build()

	assert.InDelta(t, 0.9, config.Engine.QualityThreshold, 1e-9)
	assert.False(t, config.Engine.AutoFixEnabled())
	// Untouched sections keep their defaults.
	assert.InDelta(t, 0.8, config.Validation.PassingThreshold, 1e-9)
	assert.Equal(t, 4, config.Batch.GroupSize)
}
