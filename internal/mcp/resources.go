// Package mcp implements the Model Context Protocol server logic.
// This file contains the resource registry.
package mcp

// file: internal/mcp/resources.go

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrResourceNotFound marks a read of a URI no registered resource serves.
var ErrResourceNotFound = errors.New("resource not found")

// resourceEntry pairs a resource definition with its reader.
type resourceEntry struct {
	def    Resource
	reader ResourceReader
}

// ResourceRegistry is an in-memory index of resource definitions and
// readers, keyed by URI. Entries keep registration order because prefix
// resolution picks the first match.
type ResourceRegistry struct {
	entries []resourceEntry
}

// NewResourceRegistry creates an empty resource registry.
func NewResourceRegistry() *ResourceRegistry {
	return &ResourceRegistry{}
}

// Register adds a resource. Registering a URI again silently replaces the
// earlier entry in place.
func (r *ResourceRegistry) Register(def Resource, reader ResourceReader) {
	for i := range r.entries {
		if r.entries[i].def.URI == def.URI {
			r.entries[i] = resourceEntry{def: def, reader: reader}
			return
		}
	}
	r.entries = append(r.entries, resourceEntry{def: def, reader: reader})
}

// List returns a snapshot of the registered definitions.
func (r *ResourceRegistry) List() []Resource {
	defs := make([]Resource, 0, len(r.entries))
	for _, e := range r.entries {
		defs = append(defs, e.def)
	}
	return defs
}

// Read resolves uri to a reader and returns its content. Resolution policy:
// exact URI match first, then the first definition whose URI is a prefix of
// the requested URI. ErrResourceNotFound when nothing matches.
func (r *ResourceRegistry) Read(ctx context.Context, uri string) (*ResourceContent, error) {
	for _, e := range r.entries {
		if e.def.URI == uri {
			return e.reader(ctx, uri)
		}
	}
	for _, e := range r.entries {
		if strings.HasPrefix(uri, e.def.URI) {
			return e.reader(ctx, uri)
		}
	}
	return nil, errors.Wrapf(ErrResourceNotFound, "%q", uri)
}
