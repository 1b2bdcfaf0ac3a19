package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/eleven-am/forge/internal/domain"
)

var (
	doubledWhitespacePattern = regexp.MustCompile(`[ \t]{2,}`)
	placeholderPattern       = regexp.MustCompile(`\[[a-z_][\w.-]*\]`)
	shoutingPattern          = regexp.MustCompile(`\b[A-Z]{4,}\b`)
	bareImagePattern         = regexp.MustCompile(`!\[\]\(`)
	headingPattern           = regexp.MustCompile(`(?m)^#{1,6}\s`)
)

var unsubstantiatedClaims = []string{
	"guaranteed",
	"risk-free",
	"100%",
	"best in the world",
	"no. 1",
}

// defaultRules is the fixed battery: structure and factual consistency gate
// publication on their own; everything else is weighted advice.
func defaultRules() []Rule {
	return []Rule{
		{Name: "structure", Weight: 0.20, Critical: true, Evaluate: evaluateStructure},
		{Name: "language", Weight: 0.15, Evaluate: evaluateLanguage},
		{Name: "factual", Weight: 0.20, Critical: true, Evaluate: evaluateFactual},
		{Name: "brand", Weight: 0.15, Evaluate: evaluateBrand},
		{Name: "accessibility", Weight: 0.10, Evaluate: evaluateAccessibility},
		{Name: "seo", Weight: 0.10, Evaluate: evaluateSEO},
		{Name: "compliance", Weight: 0.10, Evaluate: evaluateCompliance},
	}
}

func evaluateStructure(artifact *domain.Artifact, _ domain.ValidationOptions, cfg domain.ValidationConfig) domain.RuleResult {
	result := domain.RuleResult{Score: 1.0}

	switch {
	case artifact.Title == "":
		result.Score -= 0.4
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "missing_title",
			Message:  "artifact has no title",
			Severity: domain.SeverityError,
		})
		result.FixableIssues = append(result.FixableIssues, domain.FixableIssue{
			Type:    domain.FixAddTitle,
			Message: "derive a title from the first line of the body",
		})
	case len(artifact.Title) < cfg.MinTitleLength:
		result.Score -= 0.1
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "short_title",
			Message:  fmt.Sprintf("title is %d characters, minimum is %d", len(artifact.Title), cfg.MinTitleLength),
			Severity: domain.SeverityWarning,
		})
	case len(artifact.Title) > cfg.MaxTitleLength:
		result.Score -= 0.1
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "long_title",
			Message:  fmt.Sprintf("title is %d characters, maximum is %d", len(artifact.Title), cfg.MaxTitleLength),
			Severity: domain.SeverityWarning,
		})
	}

	if len(artifact.Body) < cfg.MinContentLength {
		result.Score -= 0.3
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "content_too_short",
			Message:  fmt.Sprintf("body is %d characters, minimum is %d", len(artifact.Body), cfg.MinContentLength),
			Severity: domain.SeverityError,
		})
	} else if len(artifact.Body) > cfg.MaxContentLength {
		result.Score -= 0.2
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "content_too_long",
			Message:  fmt.Sprintf("body is %d characters, maximum is %d", len(artifact.Body), cfg.MaxContentLength),
			Severity: domain.SeverityError,
		})
		result.FixableIssues = append(result.FixableIssues, domain.FixableIssue{
			Type:         domain.FixTrimContent,
			Message:      fmt.Sprintf("trim body to %d characters", cfg.MaxContentLength),
			TargetLength: cfg.MaxContentLength,
		})
	}

	if artifact.Summary == "" {
		result.Score -= 0.1
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "missing_summary",
			Message:  "artifact has no summary",
			Severity: domain.SeverityWarning,
		})
	}

	result.Score = clampScore(result.Score)
	return result
}

func evaluateLanguage(artifact *domain.Artifact, _ domain.ValidationOptions, _ domain.ValidationConfig) domain.RuleResult {
	result := domain.RuleResult{Score: 1.0}

	if doubledWhitespacePattern.MatchString(artifact.Body) {
		result.Score -= 0.2
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "doubled_whitespace",
			Message:  "body contains runs of doubled whitespace",
			Severity: domain.SeverityWarning,
		})
		result.FixableIssues = append(result.FixableIssues, domain.FixableIssue{
			Type:    domain.FixCollapseWhitespace,
			Message: "collapse doubled whitespace to single spaces",
		})
	}

	for _, sentence := range strings.Split(artifact.Body, ". ") {
		if len(strings.Fields(sentence)) > 40 {
			result.Score -= 0.2
			result.Issues = append(result.Issues, domain.Issue{
				Type:     "long_sentence",
				Message:  "body contains a sentence longer than 40 words",
				Severity: domain.SeverityWarning,
			})
			break
		}
	}

	if strings.Contains(artifact.Body, "!!") {
		result.Score -= 0.1
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "excessive_emphasis",
			Message:  "body uses repeated exclamation marks",
			Severity: domain.SeverityWarning,
		})
	}

	if len(shoutingPattern.FindAllString(artifact.Body, 4)) >= 4 {
		result.Score -= 0.1
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "shouting",
			Message:  "body contains several fully capitalized words",
			Severity: domain.SeverityWarning,
		})
	}

	result.Score = clampScore(result.Score)
	return result
}

func evaluateFactual(artifact *domain.Artifact, _ domain.ValidationOptions, _ domain.ValidationConfig) domain.RuleResult {
	result := domain.RuleResult{Score: 1.0}

	placeholders := placeholderPattern.FindAllString(artifact.Body, -1)
	if len(placeholders) > 0 {
		penalty := 0.2 * float64(len(placeholders))
		if penalty > 0.6 {
			penalty = 0.6
		}
		result.Score -= penalty
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "unresolved_placeholder",
			Message:  fmt.Sprintf("body contains %d unresolved data placeholders (e.g. %s)", len(placeholders), placeholders[0]),
			Severity: domain.SeverityError,
		})
	}

	for _, marker := range []string{"TBD", "TODO", "XXX"} {
		if strings.Contains(artifact.Body, marker) {
			result.Score -= 0.3
			result.Issues = append(result.Issues, domain.Issue{
				Type:     "unverified_content",
				Message:  fmt.Sprintf("body contains the %q marker", marker),
				Severity: domain.SeverityError,
			})
			break
		}
	}

	result.Score = clampScore(result.Score)
	return result
}

func evaluateBrand(artifact *domain.Artifact, _ domain.ValidationOptions, cfg domain.ValidationConfig) domain.RuleResult {
	result := domain.RuleResult{Score: 1.0}
	lowerBody := strings.ToLower(artifact.Body)

	for term, replacement := range cfg.BannedTerms {
		if strings.Contains(lowerBody, strings.ToLower(term)) {
			result.Score -= 0.15
			result.Issues = append(result.Issues, domain.Issue{
				Type:     "disfavored_term",
				Message:  fmt.Sprintf("body uses the disfavored term %q", term),
				Severity: domain.SeverityWarning,
			})
			result.FixableIssues = append(result.FixableIssues, domain.FixableIssue{
				Type:        domain.FixReplaceTerm,
				Message:     fmt.Sprintf("replace %q with %q", term, replacement),
				Term:        term,
				Replacement: replacement,
			})
		}
	}

	for _, phrase := range []string{"I think", "I believe"} {
		if strings.Contains(artifact.Body, phrase) {
			result.Score -= 0.1
			result.Issues = append(result.Issues, domain.Issue{
				Type:     "informal_voice",
				Message:  fmt.Sprintf("body uses first-person hedging (%q)", phrase),
				Severity: domain.SeverityWarning,
			})
			break
		}
	}

	result.Score = clampScore(result.Score)
	return result
}

func evaluateAccessibility(artifact *domain.Artifact, _ domain.ValidationOptions, _ domain.ValidationConfig) domain.RuleResult {
	result := domain.RuleResult{Score: 1.0}

	if bareImagePattern.MatchString(artifact.Body) {
		result.Score -= 0.3
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "missing_alt_text",
			Message:  "body contains images without alt text",
			Severity: domain.SeverityWarning,
		})
		result.FixableIssues = append(result.FixableIssues, domain.FixableIssue{
			Type:    domain.FixAddAltText,
			Message: "add a generic alt text to bare images",
		})
	}

	if len(artifact.Body) > 800 && !headingPattern.MatchString(artifact.Body) {
		result.Score -= 0.2
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "missing_headings",
			Message:  "long body has no section headings",
			Severity: domain.SeverityWarning,
		})
	}

	result.Score = clampScore(result.Score)
	return result
}

func evaluateSEO(artifact *domain.Artifact, opts domain.ValidationOptions, _ domain.ValidationConfig) domain.RuleResult {
	result := domain.RuleResult{Score: 1.0}

	if len(artifact.Title) < 30 || len(artifact.Title) > 60 {
		result.Score -= 0.2
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "title_length",
			Message:  "title length is outside the 30-60 character discoverability window",
			Severity: domain.SeverityInfo,
		})
	}

	if len(artifact.Tags) == 0 {
		result.Score -= 0.2
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "missing_tags",
			Message:  "artifact has no tags",
			Severity: domain.SeverityWarning,
		})
	}

	if artifact.Summary == "" {
		result.Score -= 0.2
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "missing_description",
			Message:  "artifact has no summary to use as a meta description",
			Severity: domain.SeverityWarning,
		})
	}

	if opts.Audience != "" && !strings.Contains(strings.ToLower(artifact.Body), strings.ToLower(opts.Audience)) {
		result.Score -= 0.1
		result.Issues = append(result.Issues, domain.Issue{
			Type:     "audience_mismatch",
			Message:  fmt.Sprintf("body never mentions the target audience %q", opts.Audience),
			Severity: domain.SeverityInfo,
		})
	}

	result.Score = clampScore(result.Score)
	return result
}

func evaluateCompliance(artifact *domain.Artifact, _ domain.ValidationOptions, _ domain.ValidationConfig) domain.RuleResult {
	result := domain.RuleResult{Score: 1.0}
	lowerBody := strings.ToLower(artifact.Body)

	for _, claim := range unsubstantiatedClaims {
		if strings.Contains(lowerBody, claim) {
			result.Score -= 0.25
			result.Issues = append(result.Issues, domain.Issue{
				Type:     "unsubstantiated_claim",
				Message:  fmt.Sprintf("body makes an unsubstantiated claim (%q)", claim),
				Severity: domain.SeverityWarning,
			})
		}
	}

	result.Score = clampScore(result.Score)
	return result
}
