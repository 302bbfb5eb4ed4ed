// Package schema compiles JSON Schemas attached to tool definitions and
// validates call arguments against them. Schemas are compiled once at
// registration; validation failures are reported to the client as
// tool-level errors, not protocol errors.
package schema

// file: internal/schema/schema.go

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Compile compiles a raw JSON Schema under a synthetic resource URL derived
// from name. The raw bytes are forwarded to clients verbatim elsewhere;
// compilation only serves server-side argument checking.
func Compile(name string, raw json.RawMessage) (*jsonschema.Schema, error) {
	if len(raw) == 0 {
		return nil, errors.New("empty schema")
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	url := fmt.Sprintf("inmemory://tool/%s.json", name)
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, errors.Wrapf(err, "failed to add schema resource for tool %q", name)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compile schema for tool %q", name)
	}
	return compiled, nil
}

// ValidateArgs checks the JSON-encoded arguments against a compiled schema.
// Absent arguments validate as an empty object.
func ValidateArgs(compiled *jsonschema.Schema, args json.RawMessage) error {
	if compiled == nil {
		return nil
	}
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	var value any
	if err := json.Unmarshal(args, &value); err != nil {
		return errors.Wrap(err, "arguments are not valid JSON")
	}
	if err := compiled.Validate(value); err != nil {
		return errors.Wrap(err, "arguments do not match tool schema")
	}
	return nil
}
