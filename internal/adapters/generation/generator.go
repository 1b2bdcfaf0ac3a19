// Package generation provides the default template-backed content generator.
package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"

	"github.com/eleven-am/forge/internal/adapters/template"
	"github.com/eleven-am/forge/internal/domain"
)

// Generator renders registered templates into content artifacts. Request
// variables are overlaid on source data before rendering so explicit variables
// always win. It carries no external completion service; AIEnhanced is false
// for everything it produces.
type Generator struct {
	mu        sync.RWMutex
	templates map[string]*domain.Template
	processor *template.Processor
	logger    *slog.Logger
}

func NewGenerator(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		templates: make(map[string]*domain.Template),
		processor: template.NewProcessor(logger),
		logger:    logger.With("component", "generator"),
	}
}

// RegisterTemplate makes a template available under its name. Re-registering
// a name replaces the previous template.
func (g *Generator) RegisterTemplate(tmpl *domain.Template) error {
	if tmpl == nil || tmpl.Name == "" {
		return domain.ErrInvalidInput
	}

	g.mu.Lock()
	g.templates[tmpl.Name] = tmpl
	g.mu.Unlock()

	g.logger.Debug("template registered", "name", tmpl.Name, "type", tmpl.Type)
	return nil
}

func (g *Generator) Template(name string) (*domain.Template, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	tmpl, ok := g.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q: %w", name, domain.ErrNotFound)
	}
	return tmpl, nil
}

func (g *Generator) Generate(ctx context.Context, request domain.ContentRequest) (*domain.GenerationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := request.TemplateName
	if name == "" {
		name = string(request.ContentType)
	}

	tmpl, err := g.Template(name)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	vars := mergeVariables(request)
	body := g.processor.Render(tmpl, vars)

	artifact := &domain.Artifact{
		Title:   deriveTitle(vars, body),
		Body:    body,
		Summary: deriveSummary(vars, body),
		Tags:    deriveTags(request, vars),
		Metadata: map[string]string{
			"template":     tmpl.Name,
			"content_type": string(request.ContentType),
		},
	}

	g.logger.Info("content rendered",
		"template", tmpl.Name,
		"content_type", request.ContentType,
		"body_length", len(artifact.Body))

	return &domain.GenerationResult{
		Artifact:    artifact,
		AIEnhanced:  false,
		GeneratedAt: started,
		Duration:    time.Since(started),
	}, nil
}

// mergeVariables overlays request variables on source data. Variables take
// precedence on key collision.
func mergeVariables(request domain.ContentRequest) map[string]interface{} {
	merged := make(map[string]interface{}, len(request.SourceData)+len(request.Variables)+1)
	for k, v := range request.SourceData {
		merged[k] = v
	}
	if err := mergo.Map(&merged, request.Variables, mergo.WithOverride); err != nil {
		for k, v := range request.Variables {
			merged[k] = v
		}
	}
	if request.Audience != "" {
		if _, ok := merged["audience"]; !ok {
			merged["audience"] = request.Audience
		}
	}
	return merged
}

func deriveTitle(vars map[string]interface{}, body string) string {
	if title, ok := vars["title"].(string); ok && title != "" {
		return title
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return strings.TrimSpace(strings.TrimLeft(line, "# "))
	}
	return ""
}

func deriveSummary(vars map[string]interface{}, body string) string {
	if summary, ok := vars["summary"].(string); ok && summary != "" {
		return summary
	}

	// First paragraph after the title line, truncated to a sentence-ish length.
	paragraphs := strings.Split(body, "\n\n")
	for i, paragraph := range paragraphs {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" || (i == 0 && strings.HasPrefix(paragraph, "#")) {
			continue
		}
		if len(paragraph) > 200 {
			if cut := strings.LastIndex(paragraph[:200], " "); cut > 0 {
				paragraph = paragraph[:cut]
			} else {
				paragraph = paragraph[:200]
			}
		}
		return paragraph
	}
	return ""
}

func deriveTags(request domain.ContentRequest, vars map[string]interface{}) []string {
	tags := []string{string(request.ContentType)}
	if request.Audience != "" {
		tags = append(tags, request.Audience)
	}

	switch raw := vars["tags"].(type) {
	case []string:
		tags = append(tags, raw...)
	case []interface{}:
		for _, tag := range raw {
			if s, ok := tag.(string); ok {
				tags = append(tags, s)
			}
		}
	}

	seen := make(map[string]bool, len(tags))
	unique := tags[:0]
	for _, tag := range tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		unique = append(unique, tag)
	}
	return unique
}
