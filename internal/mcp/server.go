// Package mcp implements the Model Context Protocol server logic.
// This file contains the server loop: read, dispatch, write, repeat, until
// end-of-input or a terminal shutdown.
package mcp

// file: internal/mcp/server.go

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/evasystems/eva-mcp/internal/config"
	"github.com/evasystems/eva-mcp/internal/logging"
	"github.com/evasystems/eva-mcp/internal/sandbox"
	"github.com/evasystems/eva-mcp/internal/transport"
	"github.com/google/uuid"
)

// Server owns the transport, the capability registries, and the session
// state, and drives them from a single loop. Requests are processed to
// completion in arrival order; there is no pipelining and responses appear
// on the wire in request order.
type Server struct {
	transport transport.Transport
	tools     *ToolRegistry
	resources *ResourceRegistry
	prompts   *PromptRegistry
	state     *SessionState
	dispatch  *Dispatcher
	logger    logging.Logger
	sessionID string
}

// ServerOption customizes server construction.
type ServerOption func(*serverOptions)

type serverOptions struct {
	clock func() time.Time
}

// WithClock overrides the clock handed to tool handlers. Tests use this to
// pin the time tool's output.
func WithClock(clock func() time.Time) ServerOption {
	return func(o *serverOptions) {
		o.clock = clock
	}
}

// NewServer builds a server with the built-in tools, prompts, and the
// workspace file resource already registered. Additional registrations may
// follow before Serve; same-key registration replaces the built-in.
func NewServer(cfg *config.Settings, t transport.Transport, sb *sandbox.Sandbox,
	logger logging.Logger, opts ...ServerOption) (*Server, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if t == nil {
		return nil, errors.New("transport is required")
	}
	if sb == nil {
		return nil, errors.New("sandbox is required")
	}
	if logger == nil {
		logger = logging.GetNoopLogger()
	}

	options := &serverOptions{clock: time.Now}
	for _, opt := range opts {
		opt(options)
	}

	sessionID := uuid.NewString()
	logger = logger.WithField("session", sessionID)

	tools := NewToolRegistry(options.clock, logger)
	resources := NewResourceRegistry()
	prompts := NewPromptRegistry()
	RegisterBuiltinTools(tools)
	RegisterFileResource(resources, sb, cfg.Workspace.MaxList)
	RegisterBuiltinPrompts(prompts)

	state := NewSessionState(logger)
	info := ServerInfo{Name: cfg.Server.Name, Version: cfg.Server.Version}

	s := &Server{
		transport: t,
		tools:     tools,
		resources: resources,
		prompts:   prompts,
		state:     state,
		dispatch:  NewDispatcher(tools, resources, prompts, state, info, logger),
		logger:    logger.WithField("component", "server"),
		sessionID: sessionID,
	}
	s.logger.Info("MCP server created.", "name", info.Name, "version", info.Version, "workspace", sb.Root())
	return s, nil
}

// Tools exposes the tool registry for pre-serve customization.
func (s *Server) Tools() *ToolRegistry { return s.tools }

// Resources exposes the resource registry for pre-serve customization.
func (s *Server) Resources() *ResourceRegistry { return s.resources }

// Prompts exposes the prompt registry for pre-serve customization.
func (s *Server) Prompts() *PromptRegistry { return s.prompts }

// Serve runs the loop until end-of-input, a terminal shutdown, or a failure
// of the byte streams themselves. Handler failures never stop the loop; an
// error response is written and the next frame is read.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("Server loop started.")
	for {
		req, err := s.transport.Read(ctx)
		if err != nil {
			if transport.IsSkipError(err) {
				// Frame without a usable Content-Length; nothing to answer.
				s.logger.Debug("Skipped malformed frame.")
				continue
			}
			if transport.IsClosedError(err) {
				s.logger.Info("Input exhausted; server loop ending.")
				return nil
			}
			return errors.Wrap(err, "transport read failed")
		}

		resp := s.dispatch.Dispatch(ctx, req)
		if resp != nil {
			if err := s.transport.Write(ctx, resp); err != nil {
				return errors.Wrap(err, "transport write failed")
			}
		}

		if s.state.ShuttingDown() {
			s.logger.Info("Shutdown complete; server loop ending.")
			return nil
		}
	}
}
