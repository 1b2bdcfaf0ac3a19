package forge

import (
	"log/slog"
	"time"

	"dario.cat/mergo"

	"github.com/eleven-am/forge/internal/domain"
)

type Config = domain.Config

type EngineConfig = domain.EngineConfig

type ValidationConfig = domain.ValidationConfig

type BatchConfig = domain.BatchConfig

type StorageConfig = domain.StorageConfig

func DefaultConfig() *Config {
	return domain.DefaultConfig()
}

func DefaultEngineConfig() EngineConfig {
	return domain.DefaultEngineConfig()
}

func DefaultValidationConfig() ValidationConfig {
	return domain.DefaultValidationConfig()
}

func DefaultBatchConfig() BatchConfig {
	return domain.DefaultBatchConfig()
}

// withDefaults fills zero-valued fields from DefaultConfig, leaving everything
// the caller set untouched.
func withDefaults(config *Config) *Config {
	if config == nil {
		return DefaultConfig()
	}
	if err := mergo.Merge(config, DefaultConfig()); err != nil {
		return config
	}
	return config
}

// ConfigBuilder assembles a Config fluently. Unset fields keep their
// defaults.
type ConfigBuilder struct {
	config *Config
}

func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{config: DefaultConfig()}
}

func (cb *ConfigBuilder) WithLogger(logger *slog.Logger) *ConfigBuilder {
	cb.config.Logger = logger
	return cb
}

func (cb *ConfigBuilder) WithQualityThreshold(threshold float64) *ConfigBuilder {
	cb.config.Engine.QualityThreshold = threshold
	return cb
}

func (cb *ConfigBuilder) WithMaxRetryAttempts(attempts int) *ConfigBuilder {
	cb.config.Engine.MaxRetryAttempts = attempts
	return cb
}

func (cb *ConfigBuilder) WithAutoFix(enabled bool) *ConfigBuilder {
	cb.config.Engine.DisableAutoFix = !enabled
	return cb
}

func (cb *ConfigBuilder) WithRequireValidationPass(required bool) *ConfigBuilder {
	cb.config.Engine.RequireValidationPass = required
	return cb
}

func (cb *ConfigBuilder) WithStrictValidation(strict bool) *ConfigBuilder {
	cb.config.Engine.StrictValidation = strict
	return cb
}

func (cb *ConfigBuilder) WithWorkflowTimeout(timeout time.Duration) *ConfigBuilder {
	cb.config.Engine.WorkflowTimeout = timeout
	return cb
}

func (cb *ConfigBuilder) WithPassingThreshold(threshold float64) *ConfigBuilder {
	cb.config.Validation.PassingThreshold = threshold
	return cb
}

func (cb *ConfigBuilder) WithBannedTerms(terms map[string]string) *ConfigBuilder {
	cb.config.Validation.BannedTerms = terms
	return cb
}

func (cb *ConfigBuilder) WithBatchParallelism(groupSize int) *ConfigBuilder {
	cb.config.Batch.Parallel = true
	cb.config.Batch.GroupSize = groupSize
	return cb
}

func (cb *ConfigBuilder) WithDurableStore(dataDir string) *ConfigBuilder {
	cb.config.Storage.Durable = true
	cb.config.Storage.DataDir = dataDir
	return cb
}

func (cb *ConfigBuilder) Build() *Config {
	return cb.config
}
