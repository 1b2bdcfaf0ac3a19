package validation

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/eleven-am/forge/internal/domain"
)

// ApplyFixes applies the given fixable issues sequentially to a copy of the
// artifact. Each fix is a narrow, idempotent transform; a fix whose
// precondition no longer holds is silently skipped so one stale fix never
// blocks the rest.
func (e *Engine) ApplyFixes(ctx context.Context, artifact *domain.Artifact, fixable []domain.FixableIssue) (*domain.Artifact, []domain.AppliedFix, error) {
	if artifact == nil {
		return nil, nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	fixed := artifact.Clone()
	var applied []domain.AppliedFix

	for _, issue := range fixable {
		var description string

		switch issue.Type {
		case domain.FixAddTitle:
			description = e.fixAddTitle(fixed)
		case domain.FixTrimContent:
			description = e.fixTrimContent(fixed, issue.TargetLength)
		case domain.FixCollapseWhitespace:
			description = e.fixCollapseWhitespace(fixed)
		case domain.FixReplaceTerm:
			description = e.fixReplaceTerm(fixed, issue.Term, issue.Replacement)
		case domain.FixAddAltText:
			description = e.fixAddAltText(fixed)
		default:
			e.logger.Warn("unknown fix type skipped", "fix_type", issue.Type)
		}

		if description == "" {
			continue
		}

		applied = append(applied, domain.AppliedFix{Type: issue.Type, Description: description})
		e.logger.Debug("fix applied", "fix_type", issue.Type, "description", description)
	}

	return fixed, applied, nil
}

func (e *Engine) fixAddTitle(artifact *domain.Artifact) string {
	if artifact.Title != "" {
		return ""
	}

	line := artifact.Body
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimLeft(strings.TrimSpace(line), "# ")

	words := strings.Fields(line)
	if len(words) > 8 {
		words = words[:8]
	}

	title := strings.Join(words, " ")
	if title == "" {
		title = "Untitled draft"
	}

	artifact.Title = title
	return fmt.Sprintf("set title %q from body", title)
}

func (e *Engine) fixTrimContent(artifact *domain.Artifact, targetLength int) string {
	if targetLength <= 0 || len(artifact.Body) <= targetLength {
		return ""
	}

	// Never cut in the middle of a multibyte rune.
	cut := targetLength
	for cut > 0 && !utf8.RuneStart(artifact.Body[cut]) {
		cut--
	}

	trimmed := artifact.Body[:cut]
	if idx := strings.LastIndexByte(trimmed, ' '); idx > 0 {
		trimmed = trimmed[:idx]
	}

	artifact.Body = strings.TrimRight(trimmed, " \n\t")
	return fmt.Sprintf("trimmed body to %d characters", len(artifact.Body))
}

func (e *Engine) fixCollapseWhitespace(artifact *domain.Artifact) string {
	collapsed := doubledWhitespacePattern.ReplaceAllString(artifact.Body, " ")
	if collapsed == artifact.Body {
		return ""
	}

	artifact.Body = collapsed
	return "collapsed doubled whitespace"
}

func (e *Engine) fixReplaceTerm(artifact *domain.Artifact, term, replacement string) string {
	if term == "" || replacement == "" {
		return ""
	}

	replaced := replaceFold(artifact.Body, term, replacement)
	if replaced == artifact.Body {
		return ""
	}

	artifact.Body = replaced
	artifact.Title = replaceFold(artifact.Title, term, replacement)
	return fmt.Sprintf("replaced %q with %q", term, replacement)
}

func (e *Engine) fixAddAltText(artifact *domain.Artifact) string {
	replaced := bareImagePattern.ReplaceAllString(artifact.Body, "![image](")
	if replaced == artifact.Body {
		return ""
	}

	artifact.Body = replaced
	return "added generic alt text to bare images"
}

// replaceFold replaces every case-insensitive occurrence of term. Matching is
// done with a case-folding regexp so offsets stay valid in bodies whose runes
// change byte length under case conversion.
func replaceFold(s, term, replacement string) string {
	if term == "" {
		return s
	}

	pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))
	return pattern.ReplaceAllLiteralString(s, replacement)
}
