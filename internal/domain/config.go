package domain

import (
	"log/slog"
	"time"
)

type Config struct {
	DataDir string       `json:"data_dir" yaml:"data_dir"`
	Logger  *slog.Logger `json:"-" yaml:"-"`

	Engine     EngineConfig     `json:"engine" yaml:"engine"`
	Validation ValidationConfig `json:"validation" yaml:"validation"`
	Batch      BatchConfig      `json:"batch" yaml:"batch"`
	Storage    StorageConfig    `json:"storage" yaml:"storage"`
}

type EngineConfig struct {
	QualityThreshold      float64       `json:"quality_threshold" yaml:"quality_threshold"`
	MaxRetryAttempts      int           `json:"max_retry_attempts" yaml:"max_retry_attempts"`
	DisableAutoFix        bool          `json:"disable_auto_fix" yaml:"disable_auto_fix"`
	RequireValidationPass bool          `json:"require_validation_pass" yaml:"require_validation_pass"`
	StrictValidation      bool          `json:"strict_validation" yaml:"strict_validation"`
	WorkflowTimeout       time.Duration `json:"workflow_timeout" yaml:"workflow_timeout"`
}

// AutoFixEnabled reports whether the fix loop may run. The inverted flag keeps
// the zero value of EngineConfig meaning "auto-fix on", which is the default.
func (c EngineConfig) AutoFixEnabled() bool {
	return !c.DisableAutoFix
}

type ValidationConfig struct {
	PassingThreshold float64           `json:"passing_threshold" yaml:"passing_threshold"`
	StrictThreshold  float64           `json:"strict_threshold" yaml:"strict_threshold"`
	MinTitleLength   int               `json:"min_title_length" yaml:"min_title_length"`
	MaxTitleLength   int               `json:"max_title_length" yaml:"max_title_length"`
	MinContentLength int               `json:"min_content_length" yaml:"min_content_length"`
	MaxContentLength int               `json:"max_content_length" yaml:"max_content_length"`
	CacheTTL         time.Duration     `json:"cache_ttl" yaml:"cache_ttl"`
	CacheMaxEntries  int64             `json:"cache_max_entries" yaml:"cache_max_entries"`
	BannedTerms      map[string]string `json:"banned_terms,omitempty" yaml:"banned_terms,omitempty"`
}

// Validate rejects configurations that would misbehave silently at runtime.
func (c *Config) Validate() error {
	if c.Engine.QualityThreshold < 0 || c.Engine.QualityThreshold > 1 {
		return ErrInvalidConfig
	}
	if c.Engine.MaxRetryAttempts < 0 {
		return ErrInvalidConfig
	}
	if c.Validation.PassingThreshold < 0 || c.Validation.PassingThreshold > 1 {
		return ErrInvalidConfig
	}
	if c.Validation.StrictThreshold < c.Validation.PassingThreshold {
		return ErrInvalidConfig
	}
	if c.Batch.GroupSize < 0 {
		return ErrInvalidConfig
	}
	return nil
}

type BatchConfig struct {
	Parallel  bool `json:"parallel" yaml:"parallel"`
	GroupSize int  `json:"group_size" yaml:"group_size"`
}

type StorageConfig struct {
	Durable bool   `json:"durable" yaml:"durable"`
	DataDir string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`
}
