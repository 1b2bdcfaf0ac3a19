package domain

import (
	"time"
)

type ContentType string

const (
	ContentTypeNewsletter   ContentType = "newsletter"
	ContentTypeBattlecard   ContentType = "battlecard"
	ContentTypeReleaseNotes ContentType = "release_notes"
	ContentTypeCaseStudy    ContentType = "case_study"
	ContentTypeBlogPost     ContentType = "blog_post"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ContentRequest is the immutable generation request a workflow instance is
// created for. SourceData carries the raw business signals (meeting notes,
// competitive signals, ticket payloads) the generator works from.
type ContentRequest struct {
	ContentType     ContentType            `json:"content_type"`
	TemplateName    string                 `json:"template_name"`
	Variables       map[string]interface{} `json:"variables,omitempty"`
	SourceData      map[string]interface{} `json:"source_data,omitempty"`
	Audience        string                 `json:"audience,omitempty"`
	RequireApproval bool                   `json:"require_approval"`
	Priority        Priority               `json:"priority,omitempty"`
	Metadata        map[string]string      `json:"metadata,omitempty"`
}

// Artifact is one piece of generated content as it moves through validation,
// fixing, and publication.
type Artifact struct {
	ID       string            `json:"id,omitempty"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Summary  string            `json:"summary,omitempty"`
	Tags     []string          `json:"tags,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (a *Artifact) Clone() *Artifact {
	clone := *a
	clone.Tags = append([]string(nil), a.Tags...)
	if a.Metadata != nil {
		clone.Metadata = make(map[string]string, len(a.Metadata))
		for k, v := range a.Metadata {
			clone.Metadata[k] = v
		}
	}
	return &clone
}

type GenerationResult struct {
	Artifact    *Artifact     `json:"artifact"`
	AIEnhanced  bool          `json:"ai_enhanced"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`
}

type ApprovalDecision struct {
	Approved  bool      `json:"approved"`
	Approver  string    `json:"approver"`
	Basis     string    `json:"basis"`
	DecidedAt time.Time `json:"decided_at"`
}

type PublicationResult struct {
	ContentID    string    `json:"content_id"`
	WorkflowID   string    `json:"workflow_id"`
	QualityScore float64   `json:"quality_score"`
	PublishedAt  time.Time `json:"published_at"`
}

type BatchResult struct {
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Items     []BatchItemResult `json:"items"`
	Duration  time.Duration     `json:"duration"`
}

type BatchItemResult struct {
	Index      int            `json:"index"`
	WorkflowID string         `json:"workflow_id,omitempty"`
	Status     WorkflowStatus `json:"status"`
	Error      string         `json:"error,omitempty"`
}
