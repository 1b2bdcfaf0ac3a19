package forge

import (
	"github.com/eleven-am/forge/internal/domain"
	"github.com/eleven-am/forge/internal/ports"
)

// ContentRequest describes one piece of content to produce.
type ContentRequest = domain.ContentRequest

// WorkflowInstance is one pipeline execution with its stage history, results,
// and metrics.
type WorkflowInstance = domain.WorkflowInstance

// Artifact is a generated piece of content.
type Artifact = domain.Artifact

// Template is a named content template with {{var}} substitution and
// single-level {{#if}}/{{#each}} blocks.
type Template = domain.Template

type GenerationResult = domain.GenerationResult
type ValidationResult = domain.ValidationResult
type ValidationOptions = domain.ValidationOptions
type ApprovalDecision = domain.ApprovalDecision
type PublicationResult = domain.PublicationResult
type BatchResult = domain.BatchResult
type BatchItemResult = domain.BatchItemResult
type FixAttempt = domain.FixAttempt
type HistoryEntry = domain.HistoryEntry

// PipelineStatistics is the aggregate view over all terminal workflows.
type PipelineStatistics = ports.PipelineStatistics

// HealthStatus is the operational health verdict derived from statistics.
type HealthStatus = ports.HealthStatus

// Collaborator ports. Implementations are injected on the manager before
// Start.
type Generator = ports.Generator
type Validator = ports.Validator
type ContentStore = ports.ContentStore
type Approver = ports.Approver
type Monitor = ports.Monitor

// Workflow lifecycle events.
type WorkflowStartedEvent = domain.WorkflowStartedEvent
type WorkflowCompletedEvent = domain.WorkflowCompletedEvent
type WorkflowFailedEvent = domain.WorkflowFailedEvent
type StageChangedEvent = domain.StageChangedEvent

type ContentType = domain.ContentType

const (
	ContentTypeNewsletter   = domain.ContentTypeNewsletter
	ContentTypeBattlecard   = domain.ContentTypeBattlecard
	ContentTypeReleaseNotes = domain.ContentTypeReleaseNotes
	ContentTypeCaseStudy    = domain.ContentTypeCaseStudy
	ContentTypeBlogPost     = domain.ContentTypeBlogPost
)

type Priority = domain.Priority

const (
	PriorityLow    = domain.PriorityLow
	PriorityNormal = domain.PriorityNormal
	PriorityHigh   = domain.PriorityHigh
)

type Stage = domain.Stage

const (
	StageTrigger     = domain.StageTrigger
	StageGeneration  = domain.StageGeneration
	StageValidation  = domain.StageValidation
	StageFixing      = domain.StageFixing
	StageQualityGate = domain.StageQualityGate
	StageApproval    = domain.StageApproval
	StagePublication = domain.StagePublication
	StageMonitoring  = domain.StageMonitoring
	StageComplete    = domain.StageComplete
	StageFailed      = domain.StageFailed
)

type WorkflowStatus = domain.WorkflowStatus

const (
	WorkflowStatusActive     = domain.WorkflowStatusActive
	WorkflowStatusCompleted  = domain.WorkflowStatusCompleted
	WorkflowStatusFailed     = domain.WorkflowStatusFailed
	WorkflowStatusTerminated = domain.WorkflowStatusTerminated
)
