// Package jsonrpc defines the JSON-RPC 2.0 wire types spoken on the MCP
// byte stream, along with the standard error codes the server emits.
package jsonrpc

// file: internal/jsonrpc/types.go

import (
	"encoding/json"
	"fmt"
)

// Version is the protocol tag carried by every message.
const Version = "2.0"

// Standard JSON-RPC 2.0 error codes used by the server.
const (
	// CodeParseError indicates invalid JSON was received.
	CodeParseError = -32700
	// CodeInvalidRequest indicates the JSON sent is not a valid Request object.
	CodeInvalidRequest = -32600
	// CodeMethodNotFound indicates the method does not exist.
	CodeMethodNotFound = -32601
	// CodeInvalidParams indicates invalid method parameters.
	CodeInvalidParams = -32602
	// CodeInternalError indicates an internal JSON-RPC error.
	CodeInternalError = -32603
	// CodeServerError is the implementation-defined code for handler failures,
	// including missing required parameters.
	CodeServerError = -32000
)

// MethodParseError is the synthetic method name the transport substitutes
// when a frame body fails to decode as JSON. The dispatcher answers it with
// a CodeParseError response correlated to a null id.
const MethodParseError = "__internal_parse_error__"

// Request is an incoming JSON-RPC 2.0 request or notification.
// ID is the raw identifier bytes exactly as received; Notif is true when the
// id field was absent, in which case no response may be written.
type Request struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
	ID     json.RawMessage `json:"id,omitempty"`
	Notif  bool            `json:"-"`
}

// UnmarshalJSON decodes a request while distinguishing a missing id from an
// explicit null. Encoding the request back is not symmetric (Notif is
// derived state); nothing in this module encodes a Request.
func (r *Request) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if m, ok := raw["method"]; ok {
		if err := json.Unmarshal(m, &r.Method); err != nil {
			return fmt.Errorf("invalid method field: %w", err)
		}
	}
	if p, ok := raw["params"]; ok {
		r.Params = p
	}
	if id, ok := raw["id"]; ok {
		r.ID = id
		r.Notif = false
	} else {
		r.ID = nil
		r.Notif = true
	}
	return nil
}

// Error is a JSON-RPC 2.0 response error record.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc: code %d: %s", e.Code, e.Message)
}

// Response is an outgoing JSON-RPC 2.0 response. Exactly one of Result and
// Error is set. A nil ID marshals as null, which is the correct identifier
// when the triggering request could not be correlated.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result"`
	Error   *Error          `json:"error,omitempty"`
}

// MarshalJSON emits exactly one of result and error. A success response with
// a nil Result still carries an explicit "result": null, which is how a
// method like shutdown reports completion.
func (r *Response) MarshalJSON() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(struct {
			JSONRPC string          `json:"jsonrpc"`
			ID      json.RawMessage `json:"id"`
			Error   *Error          `json:"error"`
		}{r.JSONRPC, r.ID, r.Error})
	}
	return json.Marshal(struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Result  any             `json:"result"`
	}{r.JSONRPC, r.ID, r.Result})
}

// UnmarshalJSON decodes a response, keeping the result as raw JSON so tests
// and clients can decode it into the shape they expect.
func (r *Response) UnmarshalJSON(data []byte) error {
	var raw struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Result  json.RawMessage `json:"result"`
		Error   *Error          `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.JSONRPC = raw.JSONRPC
	r.ID = raw.ID
	if raw.Result != nil {
		r.Result = raw.Result
	} else {
		r.Result = nil
	}
	r.Error = raw.Error
	return nil
}

// NewResponse builds a success response echoing the request identifier.
func NewResponse(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: Version, ID: id, Result: result}
}

// NewErrorResponse builds an error response echoing the request identifier,
// or carrying a null id when the request could not be identified.
func NewErrorResponse(id json.RawMessage, code int, message string, data any) *Response {
	return &Response{
		JSONRPC: Version,
		ID:      id,
		Error:   &Error{Code: code, Message: message, Data: data},
	}
}
