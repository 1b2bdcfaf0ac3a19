package domain

import (
	"time"
)

type ValidationOptions struct {
	Strict    bool   `json:"strict"`
	SkipCache bool   `json:"-"`
	Audience  string `json:"audience,omitempty"`
}

type IssueSeverity string

const (
	SeverityInfo    IssueSeverity = "info"
	SeverityWarning IssueSeverity = "warning"
	SeverityError   IssueSeverity = "error"
)

type Issue struct {
	Type     string        `json:"type"`
	Message  string        `json:"message"`
	Severity IssueSeverity `json:"severity"`
}

type FixType string

const (
	FixAddTitle           FixType = "add_title"
	FixTrimContent        FixType = "trim_content"
	FixCollapseWhitespace FixType = "collapse_whitespace"
	FixReplaceTerm        FixType = "replace_term"
	FixAddAltText         FixType = "add_alt_text"
)

// FixableIssue is a validation issue carrying enough structured data to drive
// an automatic repair.
type FixableIssue struct {
	Type         FixType `json:"type"`
	Message      string  `json:"message"`
	TargetLength int     `json:"target_length,omitempty"`
	Term         string  `json:"term,omitempty"`
	Replacement  string  `json:"replacement,omitempty"`
}

type AppliedFix struct {
	Type        FixType `json:"type"`
	Description string  `json:"description"`
}

type RuleResult struct {
	Score         float64        `json:"score"`
	Weight        float64        `json:"weight"`
	Critical      bool           `json:"critical"`
	Passed        bool           `json:"passed"`
	Issues        []Issue        `json:"issues,omitempty"`
	FixableIssues []FixableIssue `json:"fixable_issues,omitempty"`
}

// ValidationResult is the output of one full run of the validation engine
// against one artifact. OverallScore is the weight-normalized sum of rule
// scores; a rule that failed internally contributes score 0 with full weight.
type ValidationResult struct {
	OverallScore   float64               `json:"overall_score"`
	Passed         bool                  `json:"passed"`
	RuleResults    map[string]RuleResult `json:"rule_results"`
	CriticalIssues []Issue               `json:"critical_issues,omitempty"`
	Cached         bool                  `json:"cached,omitempty"`
	ValidatedAt    time.Time             `json:"validated_at"`
}

// FixableIssues flattens the fixable issues of every rule, preserving rule
// evaluation order.
func (r *ValidationResult) FixableIssues(order []string) []FixableIssue {
	var fixable []FixableIssue
	for _, name := range order {
		if rr, ok := r.RuleResults[name]; ok {
			fixable = append(fixable, rr.FixableIssues...)
		}
	}
	return fixable
}
