// Package mcp implements the Model Context Protocol server logic.
// This file contains the prompt registry and its template renderer.
package mcp

// file: internal/mcp/prompts.go

import (
	"fmt"
	"regexp"

	"github.com/cockroachdb/errors"
)

// ErrPromptNotFound marks a get of a prompt name nobody registered.
var ErrPromptNotFound = errors.New("prompt not found")

// placeholderPattern matches {{identifier}} occurrences in templates.
// No escaping, no nested expansion, no conditionals.
var placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

// promptEntry pairs a prompt definition with its template string.
type promptEntry struct {
	def      Prompt
	template string
}

// PromptRegistry is an in-memory index of prompt definitions and templates.
type PromptRegistry struct {
	entries map[string]*promptEntry
	order   []string
}

// NewPromptRegistry creates an empty prompt registry.
func NewPromptRegistry() *PromptRegistry {
	return &PromptRegistry{entries: make(map[string]*promptEntry)}
}

// Register adds a prompt. Registering a name again silently replaces the
// earlier entry.
func (r *PromptRegistry) Register(def Prompt, template string) {
	if _, exists := r.entries[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.entries[def.Name] = &promptEntry{def: def, template: template}
}

// List returns a snapshot of the registered definitions in registration
// order.
func (r *PromptRegistry) List() []Prompt {
	defs := make([]Prompt, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.entries[name].def)
	}
	return defs
}

// Get renders the named prompt with the given variables. Every
// {{identifier}} occurrence is replaced by the string form of
// variables[identifier], or by the empty string when the key is absent.
func (r *PromptRegistry) Get(name string, variables map[string]any) (*RenderedPrompt, error) {
	entry, ok := r.entries[name]
	if !ok {
		return nil, errors.Wrapf(ErrPromptNotFound, "%q", name)
	}
	content := renderTemplate(entry.template, variables)
	return &RenderedPrompt{Name: name, Content: content}, nil
}

// renderTemplate performs the placeholder substitution.
func renderTemplate(template string, variables map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := variables[key]
		if !ok || value == nil {
			return ""
		}
		if s, isString := value.(string); isString {
			return s
		}
		return fmt.Sprintf("%v", value)
	})
}
