package domain

// Template is a named piece of content markup. Content supports {{var}}
// substitution plus single-level {{#if cond}}...{{/if}} and
// {{#each arr}}...{{/each}} blocks. Templates are immutable once handed to a
// render call.
type Template struct {
	Name      string      `json:"name"`
	Type      ContentType `json:"type"`
	Content   string      `json:"content"`
	Variables []string    `json:"variables,omitempty"`
}
