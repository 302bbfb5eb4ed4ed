// Package mcp implements the Model Context Protocol server logic.
// This file manages the session lifecycle state machine.
package mcp

// file: internal/mcp/state.go

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/evasystems/eva-mcp/internal/logging"
	lfsm "github.com/looplab/fsm"
)

// Session lifecycle states.
const (
	StateUninitialized = "uninitialized"
	StateInitialized   = "initialized"
	StateShuttingDown  = "shuttingDown"
)

// Session lifecycle events.
const (
	eventInitialize = "initialize"
	eventShutdown   = "shutdown"
)

// SessionState tracks the lifecycle of one MCP session. Shutdown is the
// terminal transition: once entered, the server loop exits after completing
// the current response. The state machine never gates request dispatch; a
// client may call tools before initialize.
type SessionState struct {
	machine *lfsm.FSM
	logger  logging.Logger
}

// NewSessionState creates a session in the uninitialized state.
func NewSessionState(logger logging.Logger) *SessionState {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	machine := lfsm.NewFSM(
		StateUninitialized,
		lfsm.Events{
			{Name: eventInitialize, Src: []string{StateUninitialized, StateInitialized}, Dst: StateInitialized},
			{Name: eventShutdown, Src: []string{StateUninitialized, StateInitialized, StateShuttingDown}, Dst: StateShuttingDown},
		},
		lfsm.Callbacks{},
	)
	return &SessionState{
		machine: machine,
		logger:  logger.WithField("component", "session_state"),
	}
}

// Initialize records the initialize handshake. Repeated initialization is
// accepted.
func (s *SessionState) Initialize(ctx context.Context) error {
	return s.fire(ctx, eventInitialize)
}

// Shutdown enters the terminal state. Accepted from any state and
// idempotent.
func (s *SessionState) Shutdown(ctx context.Context) error {
	return s.fire(ctx, eventShutdown)
}

// ShuttingDown reports whether the terminal state has been entered.
func (s *SessionState) ShuttingDown() bool {
	return s.machine.Is(StateShuttingDown)
}

// Current returns the current state name.
func (s *SessionState) Current() string {
	return s.machine.Current()
}

// fire triggers an event, treating a self-transition as success.
func (s *SessionState) fire(ctx context.Context, event string) error {
	err := s.machine.Event(ctx, event)
	if err == nil {
		return nil
	}
	var noTransition lfsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return nil
	}
	s.logger.Warn("Rejected lifecycle transition.", "event", event, "state", s.machine.Current(), "error", err)
	return errors.Wrapf(err, "lifecycle event %q rejected in state %q", event, s.machine.Current())
}
