// Package forge provides an embeddable content pipeline workflow engine.
//
// Forge takes a content request (a newsletter, battlecard, release notes, and
// so on), renders it from a registered template, validates it against a
// weighted rule battery with automatic repair of fixable defects, enforces a
// quality gate, and publishes the surviving artifact. Each request runs as an
// isolated workflow instance with a full stage history.
//
// Basic usage:
//
//	manager, err := forge.New(logger)
//	if err != nil { ... }
//	manager.RegisterTemplate(&forge.Template{
//	    Name:    "newsletter",
//	    Type:    forge.ContentTypeNewsletter,
//	    Content: "# {{title}}\n\n{{intro}}",
//	})
//	manager.Start(context.Background())
//
//	instance, err := manager.Process(ctx, forge.ContentRequest{
//	    ContentType:  forge.ContentTypeNewsletter,
//	    TemplateName: "newsletter",
//	    Variables:    map[string]interface{}{"title": "August recap"},
//	})
package forge

import (
	"log/slog"

	"github.com/eleven-am/forge/internal/core"
	"github.com/eleven-am/forge/internal/domain"
)

// Manager is the pipeline's entry point. It owns the orchestrator and its
// collaborators and exposes workflow processing, statistics, and lifecycle
// events.
type Manager = core.Manager

// New creates a manager with the default configuration: in-memory stores,
// template-backed generation, the full validation rule battery, and
// auto-approval.
func New(logger *slog.Logger) (*Manager, error) {
	config := DefaultConfig()
	config.Logger = logger
	return core.NewWithConfig(config)
}

// NewWithConfig creates a manager from an explicit configuration. Zero-valued
// fields are filled from DefaultConfig.
func NewWithConfig(config *Config) (*Manager, error) {
	return core.NewWithConfig(withDefaults(config))
}

// Sentinel errors surfaced by the public API.
var (
	ErrNotFound       = domain.ErrNotFound
	ErrAlreadyStarted = domain.ErrAlreadyStarted
	ErrNotStarted     = domain.ErrNotStarted
	ErrShutdown       = domain.ErrShutdown
	ErrInvalidConfig  = domain.ErrInvalidConfig
	ErrInvalidInput   = domain.ErrInvalidInput
	ErrTimeout        = domain.ErrTimeout
)

// QualityGateViolation is returned when a workflow fails the quality gate.
type QualityGateViolation = domain.QualityGateViolation

func IsQualityGateViolation(err error) bool {
	return domain.IsQualityGateViolation(err)
}

func IsNotFound(err error) bool {
	return domain.IsNotFound(err)
}

func IsTimeout(err error) bool {
	return domain.IsTimeout(err)
}
