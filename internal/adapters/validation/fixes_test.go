package validation

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/eleven-am/forge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFixes_AddTitleAndTrimContent(t *testing.T) {
	cfg := testConfig()
	engine := NewEngine(cfg, testLogger())

	artifact := &domain.Artifact{
		Title: "",
		Body:  strings.Repeat("Signals from recent customer meetings point to steady expansion. ", 62),
	}
	require.Greater(t, len(artifact.Body), cfg.MaxContentLength)

	result, err := engine.Validate(context.Background(), artifact, domain.ValidationOptions{SkipCache: true})
	require.NoError(t, err)

	fixable := result.FixableIssues(engine.RuleOrder())
	types := make([]domain.FixType, 0, len(fixable))
	for _, f := range fixable {
		types = append(types, f.Type)
	}
	assert.Contains(t, types, domain.FixAddTitle)
	assert.Contains(t, types, domain.FixTrimContent)

	fixed, applied, err := engine.ApplyFixes(context.Background(), artifact, fixable)
	require.NoError(t, err)

	assert.NotEmpty(t, fixed.Title)
	assert.LessOrEqual(t, len(fixed.Body), cfg.MaxContentLength)
	assert.NotEmpty(t, applied)

	// The original artifact is never mutated.
	assert.Empty(t, artifact.Title)
	assert.Greater(t, len(artifact.Body), cfg.MaxContentLength)
}

func TestApplyFixes_CollapseWhitespace(t *testing.T) {
	engine := NewEngine(testConfig(), testLogger())

	artifact := &domain.Artifact{Title: "Weekly digest", Body: "Too  many   spaces\t\there."}

	fixed, applied, err := engine.ApplyFixes(context.Background(), artifact, []domain.FixableIssue{
		{Type: domain.FixCollapseWhitespace},
	})

	require.NoError(t, err)
	assert.Equal(t, "Too many spaces here.", fixed.Body)
	require.Len(t, applied, 1)
	assert.Equal(t, domain.FixCollapseWhitespace, applied[0].Type)
}

func TestApplyFixes_CollapseWhitespaceLeavesSingleTab(t *testing.T) {
	engine := NewEngine(testConfig(), testLogger())

	// A lone tab is not a doubled-whitespace defect, so there is nothing to
	// collapse and no fix is recorded.
	artifact := &domain.Artifact{Title: "Weekly digest", Body: "Column one\tcolumn two."}

	fixed, applied, err := engine.ApplyFixes(context.Background(), artifact, []domain.FixableIssue{
		{Type: domain.FixCollapseWhitespace},
	})

	require.NoError(t, err)
	assert.Equal(t, "Column one\tcolumn two.", fixed.Body)
	assert.Empty(t, applied)
}

func TestApplyFixes_ReplaceTerm(t *testing.T) {
	engine := NewEngine(testConfig(), testLogger())

	artifact := &domain.Artifact{Title: "A cheap plan", Body: "Our Cheap tier is cheap and fast."}

	fixed, applied, err := engine.ApplyFixes(context.Background(), artifact, []domain.FixableIssue{
		{Type: domain.FixReplaceTerm, Term: "cheap", Replacement: "cost-effective"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Our cost-effective tier is cost-effective and fast.", fixed.Body)
	assert.Equal(t, "A cost-effective plan", fixed.Title)
	require.Len(t, applied, 1)
}

func TestApplyFixes_ReplaceTermMultibyteBody(t *testing.T) {
	engine := NewEngine(testConfig(), testLogger())

	// Runes that change byte length under case conversion must not shift the
	// match offsets.
	bodies := []string{
		strings.Repeat("Ⱥ", 20) + " our cheap tier wins",
		strings.Repeat("İ", 10) + " a cheap deal",
	}

	for _, body := range bodies {
		fixed, applied, err := engine.ApplyFixes(context.Background(),
			&domain.Artifact{Title: "Pricing", Body: body},
			[]domain.FixableIssue{
				{Type: domain.FixReplaceTerm, Term: "cheap", Replacement: "cost-effective"},
			})

		require.NoError(t, err)
		require.Len(t, applied, 1)
		assert.True(t, utf8.ValidString(fixed.Body))
		assert.Contains(t, fixed.Body, "cost-effective")
		assert.NotContains(t, strings.ToLower(fixed.Body), "cheap")
	}
}

func TestApplyFixes_TrimContentKeepsRuneBoundary(t *testing.T) {
	engine := NewEngine(testConfig(), testLogger())

	// No spaces before the target length, so the cut lands inside the run of
	// two-byte runes and must back off to a rune boundary.
	artifact := &domain.Artifact{Title: "Notes", Body: strings.Repeat("é", 200)}

	fixed, applied, err := engine.ApplyFixes(context.Background(), artifact, []domain.FixableIssue{
		{Type: domain.FixTrimContent, TargetLength: 151},
	})

	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.True(t, utf8.ValidString(fixed.Body))
	assert.LessOrEqual(t, len(fixed.Body), 151)
}

func TestApplyFixes_AddAltText(t *testing.T) {
	engine := NewEngine(testConfig(), testLogger())

	artifact := &domain.Artifact{Title: "Launch recap", Body: "See chart: ![](chart.png)"}

	fixed, applied, err := engine.ApplyFixes(context.Background(), artifact, []domain.FixableIssue{
		{Type: domain.FixAddAltText},
	})

	require.NoError(t, err)
	assert.Equal(t, "See chart: ![image](chart.png)", fixed.Body)
	require.Len(t, applied, 1)
}

func TestApplyFixes_SkipsFixesWhosePreconditionNoLongerHolds(t *testing.T) {
	engine := NewEngine(testConfig(), testLogger())

	artifact := &domain.Artifact{Title: "Already titled", Body: "Short and tidy body."}

	fixed, applied, err := engine.ApplyFixes(context.Background(), artifact, []domain.FixableIssue{
		{Type: domain.FixAddTitle},
		{Type: domain.FixTrimContent, TargetLength: 2000},
		{Type: domain.FixCollapseWhitespace},
	})

	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.Equal(t, artifact.Body, fixed.Body)
	assert.Equal(t, artifact.Title, fixed.Title)
}

func TestApplyFixes_Idempotent(t *testing.T) {
	engine := NewEngine(testConfig(), testLogger())

	artifact := &domain.Artifact{Body: "First line of the recap.\nMore detail follows  here."}
	fixable := []domain.FixableIssue{
		{Type: domain.FixAddTitle},
		{Type: domain.FixCollapseWhitespace},
	}

	once, _, err := engine.ApplyFixes(context.Background(), artifact, fixable)
	require.NoError(t, err)

	twice, applied, err := engine.ApplyFixes(context.Background(), once, fixable)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Empty(t, applied)
}
