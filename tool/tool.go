//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

// Package tool defines typed tools, their type-erased form, the declarations
// advertised to a model, and the values that flow through a dispatch.
package tool

import (
	"context"
	"encoding/json"
)

// Schema is a JSON-schema-like description of a value shape.
type Schema struct {
	Type                 string             `json:"type,omitempty"`
	Description          string             `json:"description,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	Enum                 []any              `json:"enum,omitempty"`
	Format               string             `json:"format,omitempty"`
	Default              any                `json:"default,omitempty"`
	Ref                  string             `json:"$ref,omitempty"`
	Defs                 map[string]*Schema `json:"$defs,omitempty"`
}

// Declaration advertises a tool to the upstream model.
//
// Note: Tool names should match ^[a-zA-Z0-9_-]+$ for compatibility with
// providers that enforce strict naming (e.g. Kimi, DeepSeek).
type Declaration struct {
	// Name is the dispatch key of the tool.
	Name string `json:"name"`
	// Description tells the model when and how to use the tool.
	Description string `json:"description,omitempty"`
	// InputSchema describes the arguments the tool accepts.
	InputSchema *Schema `json:"inputSchema"`
	// OutputSchema describes the value the tool returns.
	OutputSchema *Schema `json:"outputSchema,omitempty"`
}

// Clone returns a deep copy of the declaration, schemas included.
func (d *Declaration) Clone() *Declaration {
	if d == nil {
		return nil
	}
	c := *d
	c.InputSchema = d.InputSchema.Clone()
	c.OutputSchema = d.OutputSchema.Clone()
	return &c
}

// Clone returns a deep copy of s. Enum and Default values are copied by
// reference.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	c := *s
	c.Properties = cloneSchemaMap(s.Properties)
	c.Defs = cloneSchemaMap(s.Defs)
	c.Items = s.Items.Clone()
	if s.Required != nil {
		c.Required = append([]string(nil), s.Required...)
	}
	if s.Enum != nil {
		c.Enum = append([]any(nil), s.Enum...)
	}
	if ap, ok := s.AdditionalProperties.(*Schema); ok {
		c.AdditionalProperties = ap.Clone()
	}
	return &c
}

func cloneSchemaMap(m map[string]*Schema) map[string]*Schema {
	if m == nil {
		return nil
	}
	out := make(map[string]*Schema, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}

// Typed is a tool with statically typed input I and output O.
//
// Two Typed values with different I or O are distinct types; the only place
// where they are converted to and from JSON is the erasure adapter.
type Typed[I, O any] interface {
	// Name returns the stable, non-empty dispatch key.
	Name() string
	// Description returns a human readable description for the model.
	Description() string
	// Call executes the tool. Implementations own cancellation handling
	// through ctx.
	Call(ctx context.Context, in I) (O, error)
}

// InputSchemaProvider is implemented by typed tools that supply their own
// input schema instead of having one generated from I.
type InputSchemaProvider interface {
	InputSchema() *Schema
}

// OutputSchemaProvider is implemented by typed tools that supply their own
// output schema instead of having one generated from O.
type OutputSchemaProvider interface {
	OutputSchema() *Schema
}

// Erased is the JSON-in, JSON-out form of a typed tool. It is the only shape
// the registry stores.
type Erased interface {
	// Name returns the dispatch key.
	Name() string
	// Declaration returns the declaration computed when the tool was wrapped.
	Declaration() *Declaration
	// Call decodes args, executes the tool and encodes its output, blocking
	// the caller until done.
	Call(ctx context.Context, args json.RawMessage) Result
	// CallAsync runs the same steps as Call on another goroutine. The
	// returned channel yields exactly one Result and is then closed.
	CallAsync(ctx context.Context, args json.RawMessage) <-chan Result
}
