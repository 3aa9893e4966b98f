//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

// Package function wraps plain Go functions as typed tools.
package function

import (
	"context"
	"errors"

	"trpc.group/trpc-go/trpc-tool-go/log"
	"trpc.group/trpc-go/trpc-tool-go/tool"
)

var errNilFunction = errors.New("function tool has no implementation")

// FunctionTool adapts a func(context.Context, I) (O, error) to tool.Typed.
type FunctionTool[I, O any] struct {
	name         string
	description  string
	inputSchema  *tool.Schema
	outputSchema *tool.Schema
	fn           func(context.Context, I) (O, error)
}

// Option is a function that configures a FunctionTool.
type Option func(*functionToolOptions)

type functionToolOptions struct {
	name         string
	description  string
	inputSchema  *tool.Schema
	outputSchema *tool.Schema
}

// WithName sets the name of the function tool.
//
// Note: Tool names must comply with LLM API requirements for compatibility.
// Some APIs enforce the pattern ^[a-zA-Z0-9_-]+$, so prefer English letters,
// numbers, underscores and hyphens.
func WithName(name string) Option {
	return func(opts *functionToolOptions) {
		opts.name = name
	}
}

// WithDescription sets the description of the function tool.
func WithDescription(description string) Option {
	return func(opts *functionToolOptions) {
		opts.description = description
	}
}

// WithInputSchema sets a custom input schema for the function tool.
// When provided, the automatic schema generation will be skipped.
func WithInputSchema(schema *tool.Schema) Option {
	return func(opts *functionToolOptions) {
		opts.inputSchema = schema
	}
}

// WithOutputSchema sets a custom output schema for the function tool.
// When provided, the automatic schema generation will be skipped.
func WithOutputSchema(schema *tool.Schema) Option {
	return func(opts *functionToolOptions) {
		opts.outputSchema = schema
	}
}

// NewFunctionTool creates a FunctionTool backed by fn.
//
// Schemas are only attached when set through options; otherwise they are
// generated from I and O when the tool is registered.
func NewFunctionTool[I, O any](fn func(context.Context, I) (O, error), opts ...Option) *FunctionTool[I, O] {
	options := &functionToolOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.name == "" {
		log.Warnf("FunctionTool: name is empty")
	}
	if options.description == "" {
		log.Warnf("FunctionTool: description is empty")
	}
	return &FunctionTool[I, O]{
		name:         options.name,
		description:  options.description,
		inputSchema:  options.inputSchema,
		outputSchema: options.outputSchema,
		fn:           fn,
	}
}

// Name implements tool.Typed.
func (ft *FunctionTool[I, O]) Name() string {
	return ft.name
}

// Description implements tool.Typed.
func (ft *FunctionTool[I, O]) Description() string {
	return ft.description
}

// Call runs the wrapped function.
func (ft *FunctionTool[I, O]) Call(ctx context.Context, in I) (O, error) {
	if ft.fn == nil {
		var zero O
		return zero, errNilFunction
	}
	return ft.fn(ctx, in)
}

// InputSchema returns the schema set with WithInputSchema, or nil.
func (ft *FunctionTool[I, O]) InputSchema() *tool.Schema {
	return ft.inputSchema
}

// OutputSchema returns the schema set with WithOutputSchema, or nil.
func (ft *FunctionTool[I, O]) OutputSchema() *tool.Schema {
	return ft.outputSchema
}
