package template

import (
	"fmt"
	"log/slog"
	"reflect"
	"regexp"
	"strings"

	"github.com/eleven-am/forge/internal/domain"
)

var (
	ifBlockPattern   = regexp.MustCompile(`(?s)\{\{#if\s+([\w.-]+)\}\}(.*?)\{\{/if\}\}`)
	eachBlockPattern = regexp.MustCompile(`(?s)\{\{#each\s+([\w.-]+)\}\}(.*?)\{\{/each\}\}`)
	tokenPattern     = regexp.MustCompile(`\{\{\s*([\w.-]+)\s*\}\}`)
	leftoverPattern  = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	newlinePattern   = regexp.MustCompile(`\n{3,}`)
)

// Processor renders template markup against a variable map. Rendering never
// fails: missing variables become visible [name] placeholders, unresolved
// markup is stripped, and an internal panic falls back to the raw template
// content. The quality gate, not the renderer, rejects incomplete content.
//
// Conditional and loop blocks are evaluated in a single pass at a single
// nesting level; block markers nested inside a block body are not re-evaluated
// and get stripped by the cleanup pass.
type Processor struct {
	logger *slog.Logger
}

func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Processor{
		logger: logger.With("component", "template-processor"),
	}
}

func (p *Processor) Render(tmpl *domain.Template, vars map[string]interface{}) (out string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("template rendering panicked, returning raw content",
				"template", tmpl.Name,
				"reason", fmt.Sprint(r))
			out = tmpl.Content
		}
	}()

	return p.renderContent(tmpl.Content, vars)
}

// RenderString renders bare markup without a named template wrapper.
func (p *Processor) RenderString(content string, vars map[string]interface{}) (out string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("template rendering panicked, returning raw content",
				"reason", fmt.Sprint(r))
			out = content
		}
	}()

	return p.renderContent(content, vars)
}

func (p *Processor) renderContent(content string, vars map[string]interface{}) string {
	result := ifBlockPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := ifBlockPattern.FindStringSubmatch(match)
		if truthy(vars[groups[1]]) {
			return groups[2]
		}
		return ""
	})

	result = eachBlockPattern.ReplaceAllStringFunc(result, func(match string) string {
		groups := eachBlockPattern.FindStringSubmatch(match)
		elements := sequence(vars[groups[1]])
		if len(elements) == 0 {
			return ""
		}

		var b strings.Builder
		for _, element := range elements {
			b.WriteString(strings.ReplaceAll(groups[2], "{{this}}", stringify(element)))
		}
		return b.String()
	})

	result = tokenPattern.ReplaceAllStringFunc(result, func(match string) string {
		name := tokenPattern.FindStringSubmatch(match)[1]
		if value, ok := vars[name]; ok && value != nil {
			return stringify(value)
		}
		return "[" + name + "]"
	})

	result = leftoverPattern.ReplaceAllString(result, "")
	result = newlinePattern.ReplaceAllString(result, "\n\n")

	return result
}

// truthy mirrors the renderer's conditional semantics: non-empty strings other
// than the literal "false", non-empty sequences, true booleans, and any other
// non-nil value.
func truthy(value interface{}) bool {
	if value == nil {
		return false
	}

	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != "" && v != "false"
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	}

	return true
}

func sequence(value interface{}) []interface{} {
	if value == nil {
		return nil
	}

	if elements, ok := value.([]interface{}); ok {
		return elements
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}

	elements := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elements[i] = rv.Index(i).Interface()
	}
	return elements
}

func stringify(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
