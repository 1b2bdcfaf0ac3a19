package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eleven-am/forge/internal/domain"
	"github.com/eleven-am/forge/internal/ports"
)

// Orchestrator drives a workflow instance through the fixed stage sequence:
// trigger, generation, validation with a bounded fix loop, quality gating,
// conditional approval, publication, monitoring. Stages within one instance
// run strictly in sequence; instances are independent and may run
// concurrently.
type Orchestrator struct {
	config    domain.EngineConfig
	batch     domain.BatchConfig
	generator ports.Generator
	validator ports.Validator
	contents  ports.ContentStore
	approver  ports.Approver
	monitor   ports.Monitor
	store     ports.WorkflowStore
	events    ports.EventManager
	stats     *Statistics
	metrics   *domain.PipelineMetrics
	logger    *slog.Logger

	mu       sync.Mutex
	inFlight sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

type Dependencies struct {
	Generator    ports.Generator
	Validator    ports.Validator
	ContentStore ports.ContentStore
	Approver     ports.Approver
	Monitor      ports.Monitor
	Store        ports.WorkflowStore
	Events       ports.EventManager
}

func NewOrchestrator(config domain.EngineConfig, batch domain.BatchConfig, deps Dependencies, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "orchestrator")

	if deps.Approver == nil {
		deps.Approver = NewAutoApprover(logger)
	}
	if deps.Monitor == nil {
		deps.Monitor = NewLogMonitor(logger)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Orchestrator{
		config:    config,
		batch:     batch,
		generator: deps.Generator,
		validator: deps.Validator,
		contents:  deps.ContentStore,
		approver:  deps.Approver,
		monitor:   deps.Monitor,
		store:     deps.Store,
		events:    deps.Events,
		stats:     NewStatistics(),
		metrics:   domain.NewPipelineMetrics(),
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Process runs one workflow instance to a terminal state. The returned
// instance always carries the full stage history; err is non-nil exactly when
// the instance failed.
func (o *Orchestrator) Process(ctx context.Context, request domain.ContentRequest) (*domain.WorkflowInstance, error) {
	if err := o.register(); err != nil {
		return nil, err
	}
	defer o.inFlight.Done()

	instance := o.newInstance(request)
	if err := o.store.Create(ctx, instance); err != nil {
		return nil, err
	}

	o.metrics.IncrementWorkflowsStarted()
	o.events.EmitWorkflowStarted(&domain.WorkflowStartedEvent{
		WorkflowID: instance.ID,
		Request:    request,
		StartedAt:  instance.StartedAt,
	})
	o.logger.Info("workflow started",
		"workflow_id", instance.ID,
		"content_type", request.ContentType,
		"require_approval", request.RequireApproval)

	wctx := ctx
	if o.config.WorkflowTimeout > 0 {
		var cancel context.CancelFunc
		wctx, cancel = context.WithTimeout(ctx, o.config.WorkflowTimeout)
		defer cancel()
	}

	if err := o.runPipeline(wctx, instance); err != nil {
		return o.fail(instance, err)
	}

	return o.complete(instance), nil
}

func (o *Orchestrator) runPipeline(ctx context.Context, instance *domain.WorkflowInstance) error {
	artifact, err := o.runGeneration(ctx, instance)
	if err != nil {
		return err
	}

	artifact, validation, err := o.runValidationLoop(ctx, instance, artifact)
	if err != nil {
		return err
	}

	if err := o.runQualityGate(instance, validation); err != nil {
		return err
	}

	if err := o.runApproval(ctx, instance); err != nil {
		return err
	}

	if err := o.runPublication(ctx, instance, artifact, validation); err != nil {
		return err
	}

	o.runMonitoring(ctx, instance)
	return nil
}

func (o *Orchestrator) runGeneration(ctx context.Context, instance *domain.WorkflowInstance) (*domain.Artifact, error) {
	if err := o.stageBoundary(ctx, instance, domain.StageGeneration); err != nil {
		return nil, err
	}
	defer o.timeStage(instance, domain.StageGeneration)()

	result, err := o.generator.Generate(ctx, instance.Request)
	if err != nil {
		return nil, domain.NewCollaboratorError(domain.StageGeneration, "generate", err)
	}
	if result == nil || result.Artifact == nil {
		return nil, domain.NewCollaboratorError(domain.StageGeneration, "generate", domain.ErrInvalidInput)
	}

	instance.Results.Generation = result
	instance.AppendHistory(domain.StageGeneration, domain.HistorySuccess,
		fmt.Sprintf("content generated (%d characters, ai_enhanced=%t)", len(result.Artifact.Body), result.AIEnhanced))

	return result.Artifact, nil
}

// runValidationLoop validates the artifact and, while it fails and auto-fix is
// enabled, alternates fixing and re-validation up to MaxRetryAttempts times.
// It returns the best artifact and validation achieved; exhausting the fix
// attempts is not an error, the quality gate makes the final call.
func (o *Orchestrator) runValidationLoop(ctx context.Context, instance *domain.WorkflowInstance, artifact *domain.Artifact) (*domain.Artifact, *domain.ValidationResult, error) {
	opts := domain.ValidationOptions{
		Strict:   o.config.StrictValidation,
		Audience: instance.Request.Audience,
	}

	best, err := o.runValidation(ctx, instance, artifact, opts)
	if err != nil {
		return nil, nil, err
	}
	bestArtifact := artifact

	if !best.Passed && o.config.AutoFixEnabled() {
		for attempt := 1; attempt <= o.config.MaxRetryAttempts && !best.Passed; attempt++ {
			if err := o.stageBoundary(ctx, instance, domain.StageFixing); err != nil {
				return nil, nil, err
			}

			fixable := best.FixableIssues(o.validator.RuleOrder())
			if len(fixable) == 0 {
				instance.AppendHistory(domain.StageFixing, domain.HistoryInfo, "no fixable issues remain")
				break
			}

			fixStop := o.timeStage(instance, domain.StageFixing)
			fixed, applied, err := o.validator.ApplyFixes(ctx, bestArtifact, fixable)
			fixStop()
			if err != nil {
				return nil, nil, domain.NewCollaboratorError(domain.StageFixing, "apply_fixes", err)
			}
			o.metrics.IncrementFixAttempts()

			revalidated, err := o.runValidation(ctx, instance, fixed, opts)
			if err != nil {
				return nil, nil, err
			}

			names := make([]string, len(applied))
			for i, fix := range applied {
				names[i] = string(fix.Type)
			}
			instance.Results.FixAttempts = append(instance.Results.FixAttempts, domain.FixAttempt{
				Attempt:      attempt,
				AppliedFixes: names,
				ScoreBefore:  best.OverallScore,
				ScoreAfter:   revalidated.OverallScore,
				Passed:       revalidated.Passed,
				AttemptedAt:  time.Now(),
			})
			instance.AppendHistory(domain.StageFixing, domain.HistoryInfo,
				fmt.Sprintf("fix attempt %d applied %d fixes, score %.2f -> %.2f",
					attempt, len(applied), best.OverallScore, revalidated.OverallScore))

			if revalidated.OverallScore >= best.OverallScore || revalidated.Passed {
				best = revalidated
				bestArtifact = fixed
			}
			if revalidated.Passed {
				o.metrics.IncrementFixSuccesses()
			}
		}
	}

	instance.Results.Validation = best
	return bestArtifact, best, nil
}

func (o *Orchestrator) runValidation(ctx context.Context, instance *domain.WorkflowInstance, artifact *domain.Artifact, opts domain.ValidationOptions) (*domain.ValidationResult, error) {
	if err := o.stageBoundary(ctx, instance, domain.StageValidation); err != nil {
		return nil, err
	}
	defer o.timeStage(instance, domain.StageValidation)()

	result, err := o.validator.Validate(ctx, artifact, opts)
	if err != nil {
		return nil, domain.NewCollaboratorError(domain.StageValidation, "validate", err)
	}

	o.metrics.IncrementValidationsRun()
	if result.Passed {
		o.metrics.IncrementValidationsPassed()
	}

	level := domain.HistorySuccess
	if !result.Passed {
		level = domain.HistoryWarning
	}
	instance.AppendHistory(domain.StageValidation, level,
		fmt.Sprintf("validation scored %.2f (passed=%t, critical_issues=%d)",
			result.OverallScore, result.Passed, len(result.CriticalIssues)))

	return result, nil
}

// runQualityGate evaluates all three gate conditions; the first failing
// condition supplies the surfaced message but the outcome is their
// conjunction.
func (o *Orchestrator) runQualityGate(instance *domain.WorkflowInstance, validation *domain.ValidationResult) error {
	from := instance.CurrentStage
	instance.CurrentStage = domain.StageQualityGate
	o.emitStageChanged(instance, from, domain.StageQualityGate)

	var reasons []string
	if validation.OverallScore < o.config.QualityThreshold {
		reasons = append(reasons, fmt.Sprintf("overall score %.2f is below the quality threshold %.2f",
			validation.OverallScore, o.config.QualityThreshold))
	}
	if len(validation.CriticalIssues) > 0 {
		reasons = append(reasons, fmt.Sprintf("%d critical issues present", len(validation.CriticalIssues)))
	}
	if o.config.RequireValidationPass && !validation.Passed {
		reasons = append(reasons, "validation pass is required but was not achieved")
	}

	if len(reasons) > 0 {
		return &domain.QualityGateViolation{Reasons: reasons, Score: validation.OverallScore}
	}

	instance.AppendHistory(domain.StageQualityGate, domain.HistorySuccess,
		fmt.Sprintf("quality gate cleared with score %.2f", validation.OverallScore))
	return nil
}

func (o *Orchestrator) runApproval(ctx context.Context, instance *domain.WorkflowInstance) error {
	if !instance.Request.RequireApproval {
		return nil
	}

	if err := o.stageBoundary(ctx, instance, domain.StageApproval); err != nil {
		return err
	}
	defer o.timeStage(instance, domain.StageApproval)()

	decision, err := o.approver.Decide(ctx, instance)
	if err != nil {
		return domain.NewCollaboratorError(domain.StageApproval, "decide", err)
	}

	instance.Results.Approval = decision
	if !decision.Approved {
		instance.AppendHistory(domain.StageApproval, domain.HistoryError,
			fmt.Sprintf("approval rejected by %s: %s", decision.Approver, decision.Basis))
		return fmt.Errorf("approval rejected by %s: %s", decision.Approver, decision.Basis)
	}

	instance.AppendHistory(domain.StageApproval, domain.HistorySuccess,
		fmt.Sprintf("approved by %s (%s)", decision.Approver, decision.Basis))
	return nil
}

func (o *Orchestrator) runPublication(ctx context.Context, instance *domain.WorkflowInstance, artifact *domain.Artifact, validation *domain.ValidationResult) error {
	if err := o.stageBoundary(ctx, instance, domain.StagePublication); err != nil {
		return err
	}
	defer o.timeStage(instance, domain.StagePublication)()

	saved, err := o.contents.Save(ctx, artifact)
	if err != nil {
		return domain.NewCollaboratorError(domain.StagePublication, "save", err)
	}

	metadata := map[string]string{
		"workflow_id":   instance.ID,
		"quality_score": fmt.Sprintf("%.3f", validation.OverallScore),
	}
	if err := o.contents.UpdateStatus(ctx, saved.ID, "published", metadata); err != nil {
		return domain.NewCollaboratorError(domain.StagePublication, "update_status", err)
	}

	instance.Results.Publication = &domain.PublicationResult{
		ContentID:    saved.ID,
		WorkflowID:   instance.ID,
		QualityScore: validation.OverallScore,
		PublishedAt:  time.Now(),
	}
	o.metrics.IncrementContentPublished()
	instance.AppendHistory(domain.StagePublication, domain.HistorySuccess,
		fmt.Sprintf("published as %s with score %.2f", saved.ID, validation.OverallScore))

	return nil
}

// runMonitoring is best-effort: a failing hook is logged and recorded as a
// warning, never surfaced as a workflow failure.
func (o *Orchestrator) runMonitoring(ctx context.Context, instance *domain.WorkflowInstance) {
	from := instance.CurrentStage
	instance.CurrentStage = domain.StageMonitoring
	o.emitStageChanged(instance, from, domain.StageMonitoring)
	defer o.timeStage(instance, domain.StageMonitoring)()

	if err := o.monitor.Observe(ctx, instance); err != nil {
		warning := &domain.MonitoringWarning{Err: err}
		instance.AppendHistory(domain.StageMonitoring, domain.HistoryWarning, warning.Error())
		o.logger.Warn("monitoring hook failed",
			"workflow_id", instance.ID,
			"error", err)
		return
	}

	instance.AppendHistory(domain.StageMonitoring, domain.HistorySuccess, "post-publication monitoring recorded")
}

func (o *Orchestrator) newInstance(request domain.ContentRequest) *domain.WorkflowInstance {
	instance := &domain.WorkflowInstance{
		ID:           uuid.NewString(),
		Request:      request,
		CurrentStage: domain.StageTrigger,
		Status:       domain.WorkflowStatusActive,
		StartedAt:    time.Now(),
		Metrics: domain.InstanceMetrics{
			StageDurations: make(map[domain.Stage]time.Duration),
		},
	}
	instance.AppendHistory(domain.StageTrigger, domain.HistoryInfo, "workflow instance created")
	return instance
}

// stageBoundary is the cancellation point between stages: it surfaces workflow
// timeouts, caller cancellation, and host shutdown before advancing.
func (o *Orchestrator) stageBoundary(ctx context.Context, instance *domain.WorkflowInstance, stage domain.Stage) error {
	if err := o.ctx.Err(); err != nil {
		return domain.ErrShutdown
	}
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.ErrTimeout
		}
		return err
	}

	from := instance.CurrentStage
	instance.CurrentStage = stage
	instance.AppendHistory(stage, domain.HistoryInfo, fmt.Sprintf("entering %s", stage))
	o.emitStageChanged(instance, from, stage)
	return nil
}

func (o *Orchestrator) emitStageChanged(instance *domain.WorkflowInstance, from, to domain.Stage) {
	o.events.EmitStageChanged(&domain.StageChangedEvent{
		WorkflowID: instance.ID,
		From:       from,
		To:         to,
		ChangedAt:  time.Now(),
	})
}

func (o *Orchestrator) timeStage(instance *domain.WorkflowInstance, stage domain.Stage) func() {
	started := time.Now()
	return func() {
		instance.RecordStageDuration(stage, time.Since(started))
	}
}

func (o *Orchestrator) complete(instance *domain.WorkflowInstance) *domain.WorkflowInstance {
	now := time.Now()
	instance.CurrentStage = domain.StageComplete
	instance.Status = domain.WorkflowStatusCompleted
	instance.CompletedAt = &now
	instance.Metrics.TotalDuration = now.Sub(instance.StartedAt)
	if instance.Results.Validation != nil {
		instance.Metrics.QualityScore = instance.Results.Validation.OverallScore
	}
	instance.AppendHistory(domain.StageComplete, domain.HistorySuccess,
		fmt.Sprintf("workflow completed in %s", instance.Metrics.TotalDuration))

	if o.finalize(instance) {
		o.metrics.IncrementWorkflowsCompleted()
		o.events.EmitWorkflowCompleted(&domain.WorkflowCompletedEvent{
			WorkflowID:   instance.ID,
			QualityScore: instance.Metrics.QualityScore,
			ContentID:    instance.Results.Publication.ContentID,
			Duration:     instance.Metrics.TotalDuration,
			CompletedAt:  now,
		})
	}

	o.logger.Info("workflow completed",
		"workflow_id", instance.ID,
		"quality_score", instance.Metrics.QualityScore,
		"duration", instance.Metrics.TotalDuration)

	return instance
}

// fail records the terminal state for an unsuccessful instance. A workflow
// cut short by host shutdown ends terminated rather than failed.
func (o *Orchestrator) fail(instance *domain.WorkflowInstance, cause error) (*domain.WorkflowInstance, error) {
	now := time.Now()
	failedStage := instance.CurrentStage
	terminated := errors.Is(cause, domain.ErrShutdown)

	instance.CurrentStage = domain.StageFailed
	instance.Status = domain.WorkflowStatusFailed
	if terminated {
		instance.Status = domain.WorkflowStatusTerminated
	}
	instance.CompletedAt = &now
	instance.Metrics.TotalDuration = now.Sub(instance.StartedAt)
	if instance.Results.Validation != nil {
		instance.Metrics.QualityScore = instance.Results.Validation.OverallScore
	}
	instance.Error = cause.Error()
	instance.AppendHistory(failedStage, domain.HistoryError, cause.Error())

	if o.finalize(instance) {
		if terminated {
			o.metrics.IncrementWorkflowsTerminated()
		} else {
			o.metrics.IncrementWorkflowsFailed()
		}
		o.events.EmitWorkflowFailed(&domain.WorkflowFailedEvent{
			WorkflowID: instance.ID,
			Stage:      failedStage,
			Error:      cause.Error(),
			FailedAt:   now,
		})
	}

	o.logger.Error("workflow failed",
		"workflow_id", instance.ID,
		"stage", failedStage,
		"error", cause)

	return instance, cause
}

// finalize moves the instance into its terminal collection and records
// statistics exactly once. It reports false when the instance was already
// finalized elsewhere, e.g. terminated by Shutdown.
func (o *Orchestrator) finalize(instance *domain.WorkflowInstance) bool {
	if err := o.store.Finalize(context.Background(), instance); err != nil {
		o.logger.Debug("instance already finalized",
			"workflow_id", instance.ID,
			"error", err)
		return false
	}

	o.stats.RecordTerminal(instance)
	return true
}

// register admits one Process call. Admission and cancellation share a mutex
// so the in-flight count can never grow after Shutdown has started waiting.
func (o *Orchestrator) register() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ctx.Err() != nil {
		return domain.ErrShutdown
	}
	o.inFlight.Add(1)
	return nil
}

// Shutdown stops the orchestrator. In-flight Process calls observe the
// cancellation at their next stage boundary and terminate their own instances;
// Shutdown waits for them, then sweeps any active instance no goroutine owns
// (e.g. reloaded from a durable store). It never mutates an instance another
// goroutine is still working on.
func (o *Orchestrator) Shutdown(ctx context.Context) error {
	o.mu.Lock()
	o.cancel()
	o.mu.Unlock()

	done := make(chan struct{})
	go func() {
		o.inFlight.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	active, err := o.store.List(ctx, domain.WorkflowStatusActive)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, instance := range active {
		instance.Status = domain.WorkflowStatusTerminated
		instance.Error = domain.ErrShutdown.Error()
		instance.CompletedAt = &now
		instance.Metrics.TotalDuration = now.Sub(instance.StartedAt)
		instance.AppendHistory(instance.CurrentStage, domain.HistoryError, "workflow terminated by host shutdown")

		if o.finalize(instance) {
			o.metrics.IncrementWorkflowsTerminated()
			o.events.EmitWorkflowFailed(&domain.WorkflowFailedEvent{
				WorkflowID: instance.ID,
				Stage:      instance.CurrentStage,
				Error:      instance.Error,
				FailedAt:   now,
			})
		}
	}

	o.logger.Info("orchestrator shut down", "terminated", len(active))
	return nil
}

func (o *Orchestrator) GetInstance(ctx context.Context, id string) (*domain.WorkflowInstance, error) {
	return o.store.Get(ctx, id)
}

func (o *Orchestrator) GetStatistics() ports.PipelineStatistics {
	return o.stats.GetStatistics()
}

func (o *Orchestrator) Metrics() domain.PipelineMetrics {
	return o.metrics.Snapshot()
}

func (o *Orchestrator) Store() ports.WorkflowStore {
	return o.store
}
