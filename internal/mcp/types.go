// Package mcp implements the Model Context Protocol server: the capability
// registries, the method dispatcher, the session lifecycle, and the server
// loop that drives them over a framed transport.
package mcp

// file: internal/mcp/types.go

import (
	"context"
	"encoding/json"
	"time"
)

// ProtocolVersion is the literal version string returned on initialize.
// No negotiation occurs.
const ProtocolVersion = "2024-11-01"

// Tool describes a callable operation exposed to clients. InputSchema is an
// opaque JSON Schema forwarded verbatim in tools/list.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// ToolContent is one typed content part of a tool result. Only text parts
// are produced by this server.
type ToolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// TextContent builds a text content part.
func TextContent(text string) ToolContent {
	return ToolContent{Type: "text", Text: text}
}

// ToolResult is what a tool call returns: an ordered list of content parts
// and an error flag. A true IsError is a tool-level failure carried inside a
// successful response, not a protocol error.
type ToolResult struct {
	Content []ToolContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// ErrorResult builds a tool-level failure result with a single text part.
func ErrorResult(text string) *ToolResult {
	return &ToolResult{Content: []ToolContent{TextContent(text)}, IsError: true}
}

// ToolContext carries the ambient facilities a tool handler may use.
// Injecting the clock keeps time-dependent tools testable.
type ToolContext struct {
	Now func() time.Time
}

// ToolHandler executes a tool call. Arguments arrive as raw JSON; a returned
// error is surfaced to the client as a -32000 server error, while expected
// failures should be reported in the result with IsError set.
type ToolHandler func(ctx context.Context, args json.RawMessage, tc ToolContext) (*ToolResult, error)

// Resource describes a URI-addressable readable blob.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceContent is the payload of a resource read.
type ResourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

// ResourceReader produces the content of a resource for a concrete URI.
// One reader may serve a whole URI prefix.
type ResourceReader func(ctx context.Context, uri string) (*ResourceContent, error)

// Prompt describes a named template and its variable declarations.
type Prompt struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Arguments   []PromptArgument `json:"arguments,omitempty"`
}

// PromptArgument declares one template variable.
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// RenderedPrompt is the outcome of rendering a prompt template with
// variables.
type RenderedPrompt struct {
	Name    string
	Content string
}

// ServerInfo identifies this server to clients on initialize.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolsCapability advertises the tool surface.
type ToolsCapability struct {
	List bool `json:"list"`
	Call bool `json:"call"`
}

// ResourcesCapability advertises the resource surface.
type ResourcesCapability struct {
	List             bool     `json:"list"`
	Read             bool     `json:"read"`
	SupportedSchemes []string `json:"supportedSchemes"`
}

// PromptsCapability advertises the prompt surface.
type PromptsCapability struct {
	List bool `json:"list"`
	Get  bool `json:"get"`
}

// ServerCapabilities is the capability block returned on initialize.
type ServerCapabilities struct {
	Tools     ToolsCapability     `json:"tools"`
	Resources ResourcesCapability `json:"resources"`
	Prompts   PromptsCapability   `json:"prompts"`
}

// InitializeResult is the result payload of the initialize method.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
	Capabilities    ServerCapabilities `json:"capabilities"`
}

// ListToolsResult is the result payload of tools/list.
type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

// ListResourcesResult is the result payload of resources/list.
type ListResourcesResult struct {
	Resources []Resource `json:"resources"`
}

// ListPromptsResult is the result payload of prompts/list.
type ListPromptsResult struct {
	Prompts []Prompt `json:"prompts"`
}

// PromptMessage is one message of a rendered prompt.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PromptPayload is the prompt object inside a prompts/get result.
type PromptPayload struct {
	Name     string          `json:"name"`
	Messages []PromptMessage `json:"messages"`
}

// GetPromptResult is the result payload of prompts/get.
type GetPromptResult struct {
	Prompt PromptPayload `json:"prompt"`
}
