package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrAlreadyStarted = errors.New("manager already started")
	ErrNotStarted     = errors.New("manager not started")
	ErrShutdown       = errors.New("manager is shutting down")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrInvalidInput   = errors.New("invalid input")
	ErrTimeout        = errors.New("workflow timeout exceeded")
)

// CollaboratorError wraps a failure from an external collaborator (generation,
// approval, publication backend). It is always fatal to the workflow instance.
type CollaboratorError struct {
	Stage Stage
	Op    string
	Err   error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator[%s] %s: %v", e.Stage, e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func NewCollaboratorError(stage Stage, op string, err error) *CollaboratorError {
	return &CollaboratorError{Stage: stage, Op: op, Err: err}
}

// ValidationRuleError records a failure inside one rule evaluator. It is
// contained to that rule: the rule contributes score 0 and evaluation of all
// other rules continues.
type ValidationRuleError struct {
	Rule   string
	Reason string
}

func (e *ValidationRuleError) Error() string {
	return fmt.Sprintf("rule[%s]: %s", e.Rule, e.Reason)
}

// QualityGateViolation is raised when the quality gate rejects an artifact
// after the fix loop has run its course. Reasons lists every failed condition;
// the first one supplies the surfaced message.
type QualityGateViolation struct {
	Reasons []string
	Score   float64
}

func (e *QualityGateViolation) Error() string {
	if len(e.Reasons) == 0 {
		return "quality gate violation"
	}
	return fmt.Sprintf("quality gate: %s", strings.Join(e.Reasons, "; "))
}

// MonitoringWarning wraps a post-publication monitoring failure. It is logged
// and recorded in history but never fails the workflow.
type MonitoringWarning struct {
	Err error
}

func (e *MonitoringWarning) Error() string {
	return fmt.Sprintf("monitoring: %v", e.Err)
}

func (e *MonitoringWarning) Unwrap() error {
	return e.Err
}

func IsCollaboratorError(err error) bool {
	var ce *CollaboratorError
	return errors.As(err, &ce)
}

func IsQualityGateViolation(err error) bool {
	var qv *QualityGateViolation
	return errors.As(err, &qv)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
