// Package jsonrpc tests wire-type decoding and the response envelope rules.
package jsonrpc

// file: internal/jsonrpc/types_test.go

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestDecodingDistinguishesNotifications(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		wantNotif bool
		wantID    string
	}{
		{"integer id", `{"jsonrpc":"2.0","id":1,"method":"m"}`, false, `1`},
		{"string id", `{"jsonrpc":"2.0","id":"abc","method":"m"}`, false, `"abc"`},
		{"explicit null id", `{"jsonrpc":"2.0","id":null,"method":"m"}`, false, `null`},
		{"no id", `{"jsonrpc":"2.0","method":"m"}`, true, ``},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req Request
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &req))
			assert.Equal(t, "m", req.Method)
			assert.Equal(t, tc.wantNotif, req.Notif)
			assert.Equal(t, tc.wantID, string(req.ID))
		})
	}
}

func TestRequestDecodingKeepsRawParams(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":1,"method":"m","params":{"a":[1,2]}}`), &req))
	assert.JSONEq(t, `{"a":[1,2]}`, string(req.Params))
}

func TestResponseMarshalCarriesExplicitNullResult(t *testing.T) {
	resp := NewResponse(json.RawMessage(`2`), nil)
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":2,"result":null}`, string(data))
}

func TestResponseMarshalNullIDWhenUncorrelated(t *testing.T) {
	resp := NewErrorResponse(nil, CodeParseError, "Parse error", nil)
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":null,"error":{"code":-32700,"message":"Parse error"}}`, string(data))
}

func TestResponseMarshalErrorExcludesResult(t *testing.T) {
	resp := NewErrorResponse(json.RawMessage(`5`), CodeMethodNotFound, "Method not found", map[string]string{"method": "x"})
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	_, hasResult := raw["result"]
	assert.False(t, hasResult, "An error response must not also carry a result.")
	assert.Contains(t, string(raw["error"]), `-32601`)
}

func TestResponseRoundTrip(t *testing.T) {
	resp := NewResponse(json.RawMessage(`"id-9"`), map[string]int{"n": 3})
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var got Response
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, Version, got.JSONRPC)
	assert.JSONEq(t, `"id-9"`, string(got.ID))
	raw, ok := got.Result.(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"n":3}`, string(raw))
}
