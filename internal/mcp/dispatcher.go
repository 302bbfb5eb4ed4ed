// Package mcp implements the Model Context Protocol server logic.
// This file maps JSON-RPC method names onto registry operations and turns
// handler failures into JSON-RPC error envelopes.
package mcp

// file: internal/mcp/dispatcher.go

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/evasystems/eva-mcp/internal/jsonrpc"
	"github.com/evasystems/eva-mcp/internal/logging"
)

// method is the tagged enumeration of dispatched request kinds. Keeping the
// switch exhaustive over this type leaves the unknown variant as the only
// method-not-found path.
type method int

const (
	methodUnknown method = iota
	methodInitialize
	methodShutdown
	methodToolsList
	methodToolsCall
	methodResourcesList
	methodResourcesRead
	methodPromptsList
	methodPromptsGet
	methodParseError
)

// parseMethod classifies a wire method name.
func parseMethod(name string) method {
	switch name {
	case "initialize":
		return methodInitialize
	case "shutdown":
		return methodShutdown
	case "tools/list":
		return methodToolsList
	case "tools/call":
		return methodToolsCall
	case "resources/list":
		return methodResourcesList
	case "resources/read":
		return methodResourcesRead
	case "prompts/list":
		return methodPromptsList
	case "prompts/get":
		return methodPromptsGet
	case jsonrpc.MethodParseError:
		return methodParseError
	default:
		return methodUnknown
	}
}

// dispatchError carries an explicit JSON-RPC error code through the handler
// boundary. Handler failures without one default to the -32000 server error.
type dispatchError struct {
	code    int
	message string
	data    any
}

// Error implements the error interface.
func (e *dispatchError) Error() string {
	return e.message
}

// Dispatcher owns the three registries and the session state, and maps each
// request onto them.
type Dispatcher struct {
	tools     *ToolRegistry
	resources *ResourceRegistry
	prompts   *PromptRegistry
	state     *SessionState
	info      ServerInfo
	logger    logging.Logger
}

// NewDispatcher wires a dispatcher over the given registries and session
// state.
func NewDispatcher(tools *ToolRegistry, resources *ResourceRegistry, prompts *PromptRegistry,
	state *SessionState, info ServerInfo, logger logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	return &Dispatcher{
		tools:     tools,
		resources: resources,
		prompts:   prompts,
		state:     state,
		info:      info,
		logger:    logger.WithField("component", "dispatcher"),
	}
}

// Dispatch processes one request and returns the response to write, or nil
// for a notification. Handler failures never escape: they are converted to
// error envelopes here and logged to the diagnostic sink.
func (d *Dispatcher) Dispatch(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	result, err := d.call(ctx, req)
	if req.Notif {
		if err != nil {
			d.logger.Warn("Notification handler failed; nothing to answer.", "method", req.Method, "error", err)
		}
		return nil
	}
	if err != nil {
		var de *dispatchError
		if errors.As(err, &de) {
			if de.code == jsonrpc.CodeServerError {
				d.logger.Error("Handler failed.", "method", req.Method, "error", err)
			}
			return jsonrpc.NewErrorResponse(req.ID, de.code, de.message, de.data)
		}
		d.logger.Error("Handler failed.", "method", req.Method, "error", err)
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.CodeServerError, err.Error(), nil)
	}
	return jsonrpc.NewResponse(req.ID, result)
}

// call executes the request against the matching registry operation.
func (d *Dispatcher) call(ctx context.Context, req *jsonrpc.Request) (any, error) {
	switch parseMethod(req.Method) {
	case methodInitialize:
		return d.handleInitialize(ctx)
	case methodShutdown:
		return d.handleShutdown(ctx)
	case methodToolsList:
		return ListToolsResult{Tools: d.tools.List()}, nil
	case methodToolsCall:
		return d.handleToolsCall(ctx, req.Params)
	case methodResourcesList:
		return ListResourcesResult{Resources: d.resources.List()}, nil
	case methodResourcesRead:
		return d.handleResourcesRead(ctx, req.Params)
	case methodPromptsList:
		return ListPromptsResult{Prompts: d.prompts.List()}, nil
	case methodPromptsGet:
		return d.handlePromptsGet(req.Params)
	case methodParseError:
		return nil, d.handleParseError(req.Params)
	case methodUnknown:
		fallthrough
	default:
		return nil, &dispatchError{
			code:    jsonrpc.CodeMethodNotFound,
			message: "Method not found",
			data:    map[string]string{"method": req.Method},
		}
	}
}

// handleInitialize reports identity and capabilities. Params are ignored;
// clients advertising other protocol versions are accepted without
// negotiation.
func (d *Dispatcher) handleInitialize(ctx context.Context) (any, error) {
	if err := d.state.Initialize(ctx); err != nil {
		d.logger.Debug("Initialize after shutdown; state unchanged.", "state", d.state.Current())
	}
	return InitializeResult{
		ProtocolVersion: ProtocolVersion,
		ServerInfo:      d.info,
		Capabilities: ServerCapabilities{
			Tools:     ToolsCapability{List: true, Call: true},
			Resources: ResourcesCapability{List: true, Read: true, SupportedSchemes: []string{"file"}},
			Prompts:   PromptsCapability{List: true, Get: true},
		},
	}, nil
}

// handleShutdown enters the terminal state. The null result is the
// acknowledgment; the loop exits after writing it.
func (d *Dispatcher) handleShutdown(ctx context.Context) (any, error) {
	if err := d.state.Shutdown(ctx); err != nil {
		return nil, err
	}
	d.logger.Info("Shutdown requested.")
	return nil, nil
}

// handleToolsCall invokes a tool. Tool-level failures (unknown name, bad
// arguments, a handler-reported error) ride back as successful responses
// with isError set; only undecodable params or a handler returning a Go
// error become -32000.
func (d *Dispatcher) handleToolsCall(ctx context.Context, params json.RawMessage) (any, error) {
	var callParams struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &callParams); err != nil {
			return nil, &dispatchError{code: jsonrpc.CodeServerError, message: "invalid params for tools/call"}
		}
	}
	return d.tools.Call(ctx, callParams.Name, callParams.Arguments)
}

// handleResourcesRead reads a resource by URI.
func (d *Dispatcher) handleResourcesRead(ctx context.Context, params json.RawMessage) (any, error) {
	var readParams struct {
		URI string `json:"uri"`
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &readParams); err != nil {
			return nil, &dispatchError{code: jsonrpc.CodeServerError, message: "invalid params for resources/read"}
		}
	}
	if readParams.URI == "" {
		return nil, &dispatchError{code: jsonrpc.CodeServerError, message: "uri required"}
	}
	return d.resources.Read(ctx, readParams.URI)
}

// handlePromptsGet renders a prompt with variables.
func (d *Dispatcher) handlePromptsGet(params json.RawMessage) (any, error) {
	var getParams struct {
		Name      string         `json:"name"`
		Variables map[string]any `json:"variables"`
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &getParams); err != nil {
			return nil, &dispatchError{code: jsonrpc.CodeServerError, message: "invalid params for prompts/get"}
		}
	}
	if getParams.Name == "" {
		return nil, &dispatchError{code: jsonrpc.CodeServerError, message: "name required"}
	}
	rendered, err := d.prompts.Get(getParams.Name, getParams.Variables)
	if err != nil {
		return nil, err
	}
	return GetPromptResult{
		Prompt: PromptPayload{
			Name:     rendered.Name,
			Messages: []PromptMessage{{Role: "system", Content: rendered.Content}},
		},
	}, nil
}

// handleParseError answers the transport's synthetic request for an
// undecodable frame body.
func (d *Dispatcher) handleParseError(params json.RawMessage) error {
	var data any
	if len(params) > 0 {
		if err := json.Unmarshal(params, &data); err != nil {
			data = nil
		}
	}
	return &dispatchError{code: jsonrpc.CodeParseError, message: "Parse error", data: data}
}
