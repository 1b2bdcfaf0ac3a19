package domain

import (
	"time"
)

func DefaultConfig() *Config {
	return &Config{
		Engine:     DefaultEngineConfig(),
		Validation: DefaultValidationConfig(),
		Batch:      DefaultBatchConfig(),
		Storage:    StorageConfig{},
	}
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		QualityThreshold: 0.7,
		MaxRetryAttempts: 3,
		WorkflowTimeout:  5 * time.Minute,
	}
}

func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		PassingThreshold: 0.8,
		StrictThreshold:  0.9,
		MinTitleLength:   5,
		MaxTitleLength:   120,
		MinContentLength: 100,
		MaxContentLength: 2000,
		CacheTTL:         5 * time.Minute,
		CacheMaxEntries:  1024,
		BannedTerms:      DefaultBannedTerms(),
	}
}

// DefaultBannedTerms maps disfavored marketing terms to their approved
// replacements.
func DefaultBannedTerms() map[string]string {
	return map[string]string{
		"cheap":         "cost-effective",
		"killer":        "leading",
		"revolutionary": "innovative",
		"world-class":   "proven",
	}
}

func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		GroupSize: 4,
	}
}
