package validation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eleven-am/forge/internal/domain"
)

// rulePassScore is the per-rule pass mark. A critical rule scoring below 0.5,
// or failing its own pass mark, gates publication regardless of the overall
// score.
const rulePassScore = 0.7

type Rule struct {
	Name     string
	Weight   float64
	Critical bool
	Evaluate func(artifact *domain.Artifact, opts domain.ValidationOptions, cfg domain.ValidationConfig) domain.RuleResult
}

// Engine runs a fixed, ordered battery of independently weighted rules against
// an artifact and can attempt bounded automatic repair of fixable defects.
// Rule weights and critical flags are fixed at construction time.
type Engine struct {
	config domain.ValidationConfig
	rules  []Rule
	cache  *resultCache
	logger *slog.Logger
}

func NewEngine(config domain.ValidationConfig, logger *slog.Logger) *Engine {
	return NewEngineWithRules(config, defaultRules(), logger)
}

func NewEngineWithRules(config domain.ValidationConfig, rules []Rule, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "validation-engine")

	return &Engine{
		config: config,
		rules:  rules,
		cache:  newResultCache(config.CacheMaxEntries, config.CacheTTL, logger),
		logger: logger,
	}
}

// RuleOrder returns rule names in evaluation order.
func (e *Engine) RuleOrder() []string {
	order := make([]string, len(e.rules))
	for i, rule := range e.rules {
		order[i] = rule.Name
	}
	return order
}

func (e *Engine) Validate(ctx context.Context, artifact *domain.Artifact, opts domain.ValidationOptions) (*domain.ValidationResult, error) {
	if artifact == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := fingerprint(artifact, opts)
	if !opts.SkipCache {
		if cached, ok := e.cache.get(key); ok {
			e.logger.Debug("validation served from cache", "fingerprint", key)
			return cached, nil
		}
	}

	result := &domain.ValidationResult{
		RuleResults: make(map[string]domain.RuleResult, len(e.rules)),
		ValidatedAt: time.Now(),
	}

	var weightedSum, totalWeight float64
	for _, rule := range e.rules {
		ruleResult := e.evaluateRule(rule, artifact, opts)
		ruleResult.Weight = rule.Weight
		ruleResult.Critical = rule.Critical
		ruleResult.Passed = ruleResult.Score >= rulePassScore

		result.RuleResults[rule.Name] = ruleResult
		weightedSum += ruleResult.Score * rule.Weight
		totalWeight += rule.Weight

		if rule.Critical && (ruleResult.Score < 0.5 || !ruleResult.Passed) {
			if len(ruleResult.Issues) == 0 {
				result.CriticalIssues = append(result.CriticalIssues, domain.Issue{
					Type:     rule.Name + "_failed",
					Message:  fmt.Sprintf("critical rule %s failed with score %.2f", rule.Name, ruleResult.Score),
					Severity: domain.SeverityError,
				})
			} else {
				result.CriticalIssues = append(result.CriticalIssues, ruleResult.Issues...)
			}
		}
	}

	if totalWeight > 0 {
		result.OverallScore = weightedSum / totalWeight
	}

	threshold := e.config.PassingThreshold
	if opts.Strict {
		threshold = e.config.StrictThreshold
	}
	result.Passed = result.OverallScore >= threshold

	if !opts.SkipCache {
		e.cache.set(key, result)
	}

	e.logger.Debug("artifact validated",
		"overall_score", result.OverallScore,
		"passed", result.Passed,
		"critical_issues", len(result.CriticalIssues))

	return result, nil
}

// evaluateRule contains a panic inside one evaluator: the rule contributes
// score 0 with its full weight and every other rule still runs.
func (e *Engine) evaluateRule(rule Rule, artifact *domain.Artifact, opts domain.ValidationOptions) (result domain.RuleResult) {
	defer func() {
		if r := recover(); r != nil {
			reason := fmt.Sprint(r)
			e.logger.Warn("rule evaluator panicked",
				"rule", rule.Name,
				"reason", reason)
			result = domain.RuleResult{
				Score: 0,
				Issues: []domain.Issue{{
					Type:     "rule_error",
					Message:  (&domain.ValidationRuleError{Rule: rule.Name, Reason: reason}).Error(),
					Severity: domain.SeverityError,
				}},
			}
		}
	}()

	return rule.Evaluate(artifact, opts, e.config)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
