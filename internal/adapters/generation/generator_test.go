package generation

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleven-am/forge/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newGenerator(t *testing.T, templates ...*domain.Template) *Generator {
	t.Helper()
	g := NewGenerator(testLogger())
	for _, tmpl := range templates {
		require.NoError(t, g.RegisterTemplate(tmpl))
	}
	return g
}

func TestGenerator_RendersRegisteredTemplate(t *testing.T) {
	g := newGenerator(t, &domain.Template{
		Name:    "launch-newsletter",
		Type:    domain.ContentTypeNewsletter,
		Content: "# {{title}}\n\n{{intro}}\n\n{{#each highlights}}- {{this}}\n{{/each}}",
	})

	result, err := g.Generate(context.Background(), domain.ContentRequest{
		ContentType:  domain.ContentTypeNewsletter,
		TemplateName: "launch-newsletter",
		Variables: map[string]interface{}{
			"title": "August launch recap",
			"intro": "Everything that shipped this month.",
		},
		SourceData: map[string]interface{}{
			"highlights": []string{"faster sync", "new dashboard"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "August launch recap", result.Artifact.Title)
	assert.Contains(t, result.Artifact.Body, "- faster sync")
	assert.Contains(t, result.Artifact.Body, "- new dashboard")
	assert.Equal(t, "Everything that shipped this month.", result.Artifact.Summary)
	assert.False(t, result.AIEnhanced)
	assert.Equal(t, "launch-newsletter", result.Artifact.Metadata["template"])
}

func TestGenerator_VariablesOverrideSourceData(t *testing.T) {
	g := newGenerator(t, &domain.Template{
		Name:    "note",
		Content: "{{status}}",
	})

	result, err := g.Generate(context.Background(), domain.ContentRequest{
		TemplateName: "note",
		Variables:    map[string]interface{}{"status": "final"},
		SourceData:   map[string]interface{}{"status": "draft"},
	})
	require.NoError(t, err)
	assert.Contains(t, result.Artifact.Body, "final")
	assert.NotContains(t, result.Artifact.Body, "draft")
}

func TestGenerator_FallsBackToContentTypeTemplate(t *testing.T) {
	g := newGenerator(t, &domain.Template{
		Name:    "battlecard",
		Type:    domain.ContentTypeBattlecard,
		Content: "# Against {{competitor}}\n\nLead with speed.",
	})

	result, err := g.Generate(context.Background(), domain.ContentRequest{
		ContentType: domain.ContentTypeBattlecard,
		Variables:   map[string]interface{}{"competitor": "Acme"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Against Acme", result.Artifact.Title)
}

func TestGenerator_UnknownTemplate(t *testing.T) {
	g := newGenerator(t)

	_, err := g.Generate(context.Background(), domain.ContentRequest{TemplateName: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerator_DerivedTitleAndTags(t *testing.T) {
	g := newGenerator(t, &domain.Template{
		Name:    "release_notes",
		Content: "# Release {{version}}\n\nBug fixes and polish.",
	})

	result, err := g.Generate(context.Background(), domain.ContentRequest{
		ContentType:  domain.ContentTypeReleaseNotes,
		TemplateName: "release_notes",
		Audience:     "customers",
		Variables: map[string]interface{}{
			"version": "2.4.0",
			"tags":    []interface{}{"release", "customers"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Release 2.4.0", result.Artifact.Title)
	assert.Equal(t, []string{"release_notes", "customers", "release"}, result.Artifact.Tags)
}

func TestGenerator_RegisterValidation(t *testing.T) {
	g := NewGenerator(testLogger())

	assert.ErrorIs(t, g.RegisterTemplate(nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, g.RegisterTemplate(&domain.Template{}), domain.ErrInvalidInput)
}
