// Package mcp tests the three capability registries.
package mcp

// file: internal/mcp/registries_test.go

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/evasystems/eva-mcp/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
}

func textResult(text string) *ToolResult {
	return &ToolResult{Content: []ToolContent{TextContent(text)}}
}

func TestToolRegistryListAndOverwrite(t *testing.T) {
	reg := NewToolRegistry(fixedClock, logging.GetNoopLogger())
	reg.Register(Tool{Name: "first"}, func(context.Context, json.RawMessage, ToolContext) (*ToolResult, error) {
		return textResult("one"), nil
	})
	reg.Register(Tool{Name: "second"}, func(context.Context, json.RawMessage, ToolContext) (*ToolResult, error) {
		return textResult("two"), nil
	})
	// Same-key registration silently replaces the earlier handler.
	reg.Register(Tool{Name: "first", Description: "replaced"}, func(context.Context, json.RawMessage, ToolContext) (*ToolResult, error) {
		return textResult("replaced"), nil
	})

	defs := reg.List()
	require.Len(t, defs, 2)
	assert.Equal(t, "first", defs[0].Name, "Registration order is kept through replacement.")
	assert.Equal(t, "replaced", defs[0].Description)

	result, err := reg.Call(context.Background(), "first", nil)
	require.NoError(t, err)
	assert.Equal(t, "replaced", result.Content[0].Text)
}

func TestToolRegistryUnknownToolIsGraceful(t *testing.T) {
	reg := NewToolRegistry(fixedClock, logging.GetNoopLogger())

	result, err := reg.Call(context.Background(), "nope", json.RawMessage(`{}`))
	require.NoError(t, err, "A missing tool is a tool-level failure, never a thrown one.")
	assert.True(t, result.IsError)
	require.NotEmpty(t, result.Content)
	assert.Contains(t, result.Content[0].Text, "Tool not found: nope")
}

func TestToolRegistrySchemaViolationIsToolLevel(t *testing.T) {
	reg := NewToolRegistry(fixedClock, logging.GetNoopLogger())
	RegisterBuiltinTools(reg)

	result, err := reg.Call(context.Background(), "echo", json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.True(t, result.IsError, "Arguments violating the tool schema report a tool-level error.")
	assert.Contains(t, result.Content[0].Text, "Invalid arguments for echo")
}

func TestBuiltinTools(t *testing.T) {
	reg := NewToolRegistry(fixedClock, logging.GetNoopLogger())
	RegisterBuiltinTools(reg)

	t.Run("ping with message", func(t *testing.T) {
		result, err := reg.Call(context.Background(), "ping", json.RawMessage(`{"message":"hello"}`))
		require.NoError(t, err)
		assert.Equal(t, "hello", result.Content[0].Text)
	})

	t.Run("ping without message", func(t *testing.T) {
		result, err := reg.Call(context.Background(), "ping", nil)
		require.NoError(t, err)
		assert.Equal(t, "pong", result.Content[0].Text)
	})

	t.Run("echo", func(t *testing.T) {
		result, err := reg.Call(context.Background(), "echo", json.RawMessage(`{"text":"hi"}`))
		require.NoError(t, err)
		assert.Equal(t, "hi", result.Content[0].Text)
		assert.False(t, result.IsError)
	})

	t.Run("time uses the injected clock", func(t *testing.T) {
		result, err := reg.Call(context.Background(), "time", json.RawMessage(`{}`))
		require.NoError(t, err)
		assert.Equal(t, "2024-11-01T12:00:00Z", result.Content[0].Text)
	})
}

func TestResourceRegistryResolution(t *testing.T) {
	reg := NewResourceRegistry()
	reg.Register(Resource{URI: "file:///"}, func(_ context.Context, uri string) (*ResourceContent, error) {
		return &ResourceContent{URI: uri, Text: "prefix"}, nil
	})
	reg.Register(Resource{URI: "file:///special.txt"}, func(_ context.Context, uri string) (*ResourceContent, error) {
		return &ResourceContent{URI: uri, Text: "exact"}, nil
	})

	t.Run("exact match wins over prefix", func(t *testing.T) {
		content, err := reg.Read(context.Background(), "file:///special.txt")
		require.NoError(t, err)
		assert.Equal(t, "exact", content.Text)
	})

	t.Run("prefix match", func(t *testing.T) {
		content, err := reg.Read(context.Background(), "file:///other.txt")
		require.NoError(t, err)
		assert.Equal(t, "prefix", content.Text)
	})

	t.Run("nothing matches", func(t *testing.T) {
		_, err := reg.Read(context.Background(), "memo://x")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrResourceNotFound))
	})
}

func TestResourceRegistryOverwrite(t *testing.T) {
	reg := NewResourceRegistry()
	reg.Register(Resource{URI: "file:///", Name: "old"}, func(_ context.Context, uri string) (*ResourceContent, error) {
		return &ResourceContent{URI: uri, Text: "old"}, nil
	})
	reg.Register(Resource{URI: "file:///", Name: "new"}, func(_ context.Context, uri string) (*ResourceContent, error) {
		return &ResourceContent{URI: uri, Text: "new"}, nil
	})

	defs := reg.List()
	require.Len(t, defs, 1)
	assert.Equal(t, "new", defs[0].Name)

	content, err := reg.Read(context.Background(), "file:///")
	require.NoError(t, err)
	assert.Equal(t, "new", content.Text)
}

func TestPromptRegistryRendering(t *testing.T) {
	reg := NewPromptRegistry()
	RegisterBuiltinPrompts(reg)

	t.Run("substitutes provided variables", func(t *testing.T) {
		rendered, err := reg.Get("summarize", map[string]any{"text": "the quick brown fox"})
		require.NoError(t, err)
		assert.Equal(t, "Summarize the following text:\n\nthe quick brown fox\n\nReturn a concise summary.", rendered.Content)
	})

	t.Run("absent variables render empty", func(t *testing.T) {
		rendered, err := reg.Get("system-instructions", nil)
		require.NoError(t, err)
		assert.Equal(t, "You are a helpful assistant. Persona: ", rendered.Content)
	})

	t.Run("non-string variables are coerced", func(t *testing.T) {
		reg.Register(Prompt{Name: "count"}, "There are {{n}} items.")
		rendered, err := reg.Get("count", map[string]any{"n": float64(3)})
		require.NoError(t, err)
		assert.Equal(t, "There are 3 items.", rendered.Content)
	})

	t.Run("unknown prompt", func(t *testing.T) {
		_, err := reg.Get("nope", nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPromptNotFound))
	})
}

func TestPromptRegistryOverwrite(t *testing.T) {
	reg := NewPromptRegistry()
	reg.Register(Prompt{Name: "p"}, "old {{x}}")
	reg.Register(Prompt{Name: "p"}, "new {{x}}")

	rendered, err := reg.Get("p", map[string]any{"x": "v"})
	require.NoError(t, err)
	assert.Equal(t, "new v", rendered.Content)
	assert.Len(t, reg.List(), 1)
}
