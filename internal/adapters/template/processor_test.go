package template

import (
	"log/slog"
	"os"
	"testing"

	"github.com/eleven-am/forge/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestProcessor_Render_Substitution(t *testing.T) {
	p := NewProcessor(testLogger())

	tmpl := &domain.Template{Name: "greeting", Content: "Hi {{name}}"}
	out := p.Render(tmpl, map[string]interface{}{"name": "Ana"})

	assert.Equal(t, "Hi Ana", out)
}

func TestProcessor_Render_MissingVariablePlaceholder(t *testing.T) {
	p := NewProcessor(testLogger())

	out := p.RenderString("Hi {{name}}, welcome to {{company}}", map[string]interface{}{"name": "Ana"})

	assert.Equal(t, "Hi Ana, welcome to [company]", out)
}

func TestProcessor_Render_ConditionalBlocks(t *testing.T) {
	p := NewProcessor(testLogger())

	out := p.RenderString("{{#if x}}Y{{/if}}", map[string]interface{}{"x": ""})
	assert.Equal(t, "", out)

	out = p.RenderString("{{#if x}}Y{{/if}}", map[string]interface{}{"x": "go"})
	assert.Equal(t, "Y", out)

	out = p.RenderString("{{#if x}}Y{{/if}}", map[string]interface{}{"x": "false"})
	assert.Equal(t, "", out)

	out = p.RenderString("{{#if x}}Y{{/if}}", map[string]interface{}{"x": false})
	assert.Equal(t, "", out)

	out = p.RenderString("{{#if x}}Y{{/if}}", nil)
	assert.Equal(t, "", out)

	out = p.RenderString("{{#if items}}has items{{/if}}", map[string]interface{}{"items": []interface{}{}})
	assert.Equal(t, "", out)
}

func TestProcessor_Render_ConditionalKeepsBodyMarkup(t *testing.T) {
	p := NewProcessor(testLogger())

	out := p.RenderString("{{#if show}}Hello {{name}}{{/if}}", map[string]interface{}{
		"show": true,
		"name": "Ana",
	})

	assert.Equal(t, "Hello Ana", out)
}

func TestProcessor_Render_EachBlocks(t *testing.T) {
	p := NewProcessor(testLogger())

	out := p.RenderString("{{#each wins}}- {{this}}\n{{/each}}", map[string]interface{}{
		"wins": []interface{}{"fast onboarding", "lower churn"},
	})
	assert.Equal(t, "- fast onboarding\n- lower churn\n", out)

	out = p.RenderString("{{#each wins}}- {{this}}\n{{/each}}", map[string]interface{}{
		"wins": []string{"typed slice"},
	})
	assert.Equal(t, "- typed slice\n", out)

	out = p.RenderString("{{#each wins}}- {{this}}\n{{/each}}", map[string]interface{}{
		"wins": []interface{}{},
	})
	assert.Equal(t, "", out)

	out = p.RenderString("{{#each wins}}- {{this}}\n{{/each}}", nil)
	assert.Equal(t, "", out)
}

func TestProcessor_Render_CleanupStripsUnresolvedMarkup(t *testing.T) {
	p := NewProcessor(testLogger())

	out := p.RenderString("start {{#if orphan}} end", nil)
	assert.Equal(t, "start  end", out)
}

func TestProcessor_Render_CollapsesNewlineRuns(t *testing.T) {
	p := NewProcessor(testLogger())

	out := p.RenderString("a\n\n\n\n\nb", nil)
	assert.Equal(t, "a\n\nb", out)
}

func TestProcessor_Render_SingleLevelOnly(t *testing.T) {
	p := NewProcessor(testLogger())

	// Nested block markers are not re-evaluated; the cleanup pass strips them
	// and the inner body survives as plain text.
	out := p.RenderString("{{#if a}}x{{#if b}}y{{/if}}", map[string]interface{}{
		"a": true,
		"b": true,
	})
	assert.Equal(t, "xy", out)
}

func TestProcessor_Render_Idempotent(t *testing.T) {
	p := NewProcessor(testLogger())

	tmpl := &domain.Template{
		Name:    "digest",
		Content: "{{title}}\n{{#if highlights}}Highlights:\n{{#each items}}* {{this}}\n{{/each}}{{/if}}\n{{missing}}",
	}
	vars := map[string]interface{}{
		"title":      "Q3 Digest",
		"highlights": true,
		"items":      []interface{}{"a", "b"},
	}

	first := p.Render(tmpl, vars)
	second := p.Render(tmpl, vars)

	assert.Equal(t, first, second)
}

func TestProcessor_Render_NonStringValues(t *testing.T) {
	p := NewProcessor(testLogger())

	out := p.RenderString("{{count}} deals worth {{value}}", map[string]interface{}{
		"count": 3,
		"value": 12.5,
	})

	assert.Equal(t, "3 deals worth 12.5", out)
}
