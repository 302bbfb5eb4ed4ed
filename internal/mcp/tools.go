// Package mcp implements the Model Context Protocol server logic.
// This file contains the tool registry.
package mcp

// file: internal/mcp/tools.go

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/evasystems/eva-mcp/internal/logging"
	"github.com/evasystems/eva-mcp/internal/schema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// toolEntry pairs a tool definition with its handler and, when the
// definition carried a usable input schema, the compiled form of it.
type toolEntry struct {
	def      Tool
	handler  ToolHandler
	compiled *jsonschema.Schema
}

// ToolRegistry is an in-memory index of tool definitions and handlers.
// It is populated during construction and read-only afterwards; no locking
// is needed under the single-threaded server loop.
type ToolRegistry struct {
	entries map[string]*toolEntry
	order   []string
	clock   func() time.Time
	logger  logging.Logger
}

// NewToolRegistry creates an empty tool registry using the given clock for
// handler contexts. A nil clock defaults to time.Now.
func NewToolRegistry(clock func() time.Time, logger logging.Logger) *ToolRegistry {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	return &ToolRegistry{
		entries: make(map[string]*toolEntry),
		clock:   clock,
		logger:  logger.WithField("component", "tool_registry"),
	}
}

// Register adds a tool. Registering a name again silently replaces the
// earlier entry; that is how built-ins may be customized. A schema that
// fails to compile disables argument checking for the tool but is still
// forwarded verbatim to clients.
func (r *ToolRegistry) Register(def Tool, handler ToolHandler) {
	entry := &toolEntry{def: def, handler: handler}
	if len(def.InputSchema) > 0 {
		compiled, err := schema.Compile(def.Name, def.InputSchema)
		if err != nil {
			r.logger.Warn("Tool schema failed to compile; argument checking disabled.",
				"tool", def.Name, "error", err)
		} else {
			entry.compiled = compiled
		}
	}
	if _, exists := r.entries[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.entries[def.Name] = entry
}

// List returns a snapshot of the registered definitions in registration
// order. Callers may retain the slice.
func (r *ToolRegistry) List() []Tool {
	defs := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.entries[name].def)
	}
	return defs
}

// Call invokes the named tool. A missing name is not a dispatch error: the
// result reports the failure with IsError set. Likewise for arguments that
// violate the tool's input schema. Only a handler failure propagates as an
// error, which the dispatcher turns into a -32000 response.
func (r *ToolRegistry) Call(ctx context.Context, name string, args json.RawMessage) (*ToolResult, error) {
	entry, ok := r.entries[name]
	if !ok {
		return ErrorResult(fmt.Sprintf("Tool not found: %s", name)), nil
	}
	if err := schema.ValidateArgs(entry.compiled, args); err != nil {
		return ErrorResult(fmt.Sprintf("Invalid arguments for %s: %v", name, err)), nil
	}
	return entry.handler(ctx, args, ToolContext{Now: r.clock})
}
