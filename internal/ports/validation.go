package ports

import (
	"context"

	"github.com/eleven-am/forge/internal/domain"
)

// Validator scores an artifact against the rule battery and applies bounded
// automatic repairs for fixable defects.
type Validator interface {
	Validate(ctx context.Context, artifact *domain.Artifact, opts domain.ValidationOptions) (*domain.ValidationResult, error)
	ApplyFixes(ctx context.Context, artifact *domain.Artifact, fixable []domain.FixableIssue) (*domain.Artifact, []domain.AppliedFix, error)
	RuleOrder() []string
}
