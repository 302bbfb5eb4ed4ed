// Package mcp implements the Model Context Protocol server logic.
// This file registers the built-in capability surface: the ping/echo/time
// tools, the workspace file resource, and the stock prompts. All of them
// may be replaced by registering the same key again.
package mcp

// file: internal/mcp/builtins.go

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/evasystems/eva-mcp/internal/sandbox"
)

// FileRootURI is the URI of the workspace root resource. Reading it yields
// the recursive file listing; file:///<relpath> yields a single file.
const FileRootURI = "file:///"

// RegisterBuiltinTools adds ping, echo, and time.
func RegisterBuiltinTools(reg *ToolRegistry) {
	reg.Register(Tool{
		Name:        "ping",
		Description: "Returns the given message, or pong when none is given.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"message":{"type":"string"}}}`),
	}, pingTool)

	reg.Register(Tool{
		Name:        "echo",
		Description: "Returns the given text unchanged.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"text":{"type":"string"}},"required":["text"]}`),
	}, echoTool)

	reg.Register(Tool{
		Name:        "time",
		Description: "Returns the current time as an ISO-8601 instant.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
	}, timeTool)
}

func pingTool(_ context.Context, args json.RawMessage, _ ToolContext) (*ToolResult, error) {
	var params struct {
		Message string `json:"message"`
	}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return ErrorResult("ping: " + err.Error()), nil
		}
	}
	text := params.Message
	if text == "" {
		text = "pong"
	}
	return &ToolResult{Content: []ToolContent{TextContent(text)}}, nil
}

func echoTool(_ context.Context, args json.RawMessage, _ ToolContext) (*ToolResult, error) {
	var params struct {
		Text string `json:"text"`
	}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return ErrorResult("echo: " + err.Error()), nil
		}
	}
	return &ToolResult{Content: []ToolContent{TextContent(params.Text)}}, nil
}

func timeTool(_ context.Context, _ json.RawMessage, tc ToolContext) (*ToolResult, error) {
	now := tc.Now().UTC().Format(time.RFC3339)
	return &ToolResult{Content: []ToolContent{TextContent(now)}}, nil
}

// RegisterFileResource wires the sandbox into the resource registry under
// the file:/// prefix. Reading the root URI returns the newline-separated
// recursive listing; reading file:///<relpath> returns the file's UTF-8
// contents as text/plain.
func RegisterFileResource(reg *ResourceRegistry, sb *sandbox.Sandbox, maxList int) {
	def := Resource{
		URI:         FileRootURI,
		Name:        "workspace",
		Description: "Files under the workspace root",
		MimeType:    "text/plain",
	}
	reg.Register(def, func(_ context.Context, uri string) (*ResourceContent, error) {
		if uri == FileRootURI {
			entries, err := sb.List(maxList)
			if err != nil {
				return nil, err
			}
			return &ResourceContent{
				URI:      uri,
				MimeType: "text/plain",
				Text:     strings.Join(entries, "\n"),
			}, nil
		}
		rel := strings.TrimPrefix(uri, FileRootURI)
		content, err := sb.Read(rel)
		if err != nil {
			return nil, err
		}
		return &ResourceContent{
			URI:      uri,
			MimeType: "text/plain",
			Text:     content.Content,
		}, nil
	})
}

// RegisterBuiltinPrompts adds summarize and system-instructions.
func RegisterBuiltinPrompts(reg *PromptRegistry) {
	reg.Register(Prompt{
		Name:        "summarize",
		Description: "Summarize a block of text.",
		Arguments: []PromptArgument{
			{Name: "text", Description: "The text to summarize.", Required: true},
		},
	}, "Summarize the following text:\n\n{{text}}\n\nReturn a concise summary.")

	reg.Register(Prompt{
		Name:        "system-instructions",
		Description: "Base system instructions with an optional persona.",
		Arguments: []PromptArgument{
			{Name: "persona", Description: "Persona the assistant should adopt."},
		},
	}, "You are a helpful assistant. Persona: {{persona}}")
}
