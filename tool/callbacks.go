//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package tool

import (
	"context"
	"encoding/json"
)

// BeforeToolArgs contains all parameters for a before tool callback.
type BeforeToolArgs struct {
	// ToolName is the name of the tool.
	ToolName string
	// CallID is the ID of the call being dispatched.
	CallID string
	// Declaration is the tool declaration.
	Declaration *Declaration
	// Arguments is the JSON argument payload (can be modified).
	Arguments json.RawMessage
}

// BeforeToolResult contains the return value of a before tool callback.
type BeforeToolResult struct {
	// Context if not nil, will be used for subsequent operations.
	Context context.Context
	// CustomResult if not nil, skips tool execution and is encoded as the result.
	CustomResult any
	// ModifiedArguments if not nil, replaces the arguments passed to the tool.
	ModifiedArguments json.RawMessage
}

// BeforeToolCallback is called before a tool is executed.
// A non-nil error stops the dispatch and is reported as an execution error.
type BeforeToolCallback = func(ctx context.Context, args *BeforeToolArgs) (*BeforeToolResult, error)

// AfterToolArgs contains all parameters for an after tool callback.
type AfterToolArgs struct {
	// ToolName is the name of the tool.
	ToolName string
	// CallID is the ID of the call being dispatched.
	CallID string
	// Declaration is the tool declaration.
	Declaration *Declaration
	// Arguments is the final JSON argument payload.
	Arguments json.RawMessage
	// Result is the outcome produced by the tool.
	Result Result
}

// AfterToolResult contains the return value of an after tool callback.
type AfterToolResult struct {
	// Context if not nil, will be used for subsequent operations.
	Context context.Context
	// CustomResult if not nil, replaces the tool result with a success
	// carrying its JSON encoding.
	CustomResult any
}

// AfterToolCallback is called after a tool is executed, whether it failed or not.
type AfterToolCallback = func(ctx context.Context, args *AfterToolArgs) (*AfterToolResult, error)

// Callbacks holds the callbacks run around every dispatch.
type Callbacks struct {
	// BeforeTool is a list of callbacks called before the tool is executed.
	BeforeTool []BeforeToolCallback
	// AfterTool is a list of callbacks called after the tool is executed.
	AfterTool []AfterToolCallback
	// continueOnError controls whether to continue executing callbacks when an error occurs.
	// Default: false (stop on first error)
	continueOnError bool
	// continueOnResponse controls whether to continue executing callbacks when a CustomResult is returned.
	// Default: false (stop on first CustomResult)
	continueOnResponse bool
}

// CallbacksOption configures Callbacks behavior.
type CallbacksOption func(*Callbacks)

// WithContinueOnError sets whether to continue executing callbacks when an error occurs.
// The first error is still returned once all callbacks ran.
func WithContinueOnError(continueOnError bool) CallbacksOption {
	return func(c *Callbacks) {
		c.continueOnError = continueOnError
	}
}

// WithContinueOnResponse sets whether to continue executing callbacks when a CustomResult is returned.
// The last CustomResult wins.
func WithContinueOnResponse(continueOnResponse bool) CallbacksOption {
	return func(c *Callbacks) {
		c.continueOnResponse = continueOnResponse
	}
}

// NewCallbacks creates a new Callbacks instance.
func NewCallbacks(opts ...CallbacksOption) *Callbacks {
	c := &Callbacks{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterBeforeTool registers a before tool callback.
func (c *Callbacks) RegisterBeforeTool(cb BeforeToolCallback) *Callbacks {
	c.BeforeTool = append(c.BeforeTool, cb)
	return c
}

// RegisterAfterTool registers an after tool callback.
func (c *Callbacks) RegisterAfterTool(cb AfterToolCallback) *Callbacks {
	c.AfterTool = append(c.AfterTool, cb)
	return c
}

// handleCallbackError records err and reports whether to stop.
func (c *Callbacks) handleCallbackError(err error, firstErr *error) (shouldStop bool) {
	if err == nil {
		return false
	}
	if !c.continueOnError {
		return true
	}
	if *firstErr == nil {
		*firstErr = err
	}
	return false
}

// RunBeforeTool runs all before tool callbacks in order.
// ModifiedArguments are applied to args so later callbacks observe them.
// If a callback returns a non-nil Context, it is passed to subsequent callbacks.
func (c *Callbacks) RunBeforeTool(ctx context.Context, args *BeforeToolArgs) (*BeforeToolResult, error) {
	var (
		merged   *BeforeToolResult
		firstErr error
	)
	for _, cb := range c.BeforeTool {
		result, err := cb(ctx, args)
		if c.handleCallbackError(err, &firstErr) {
			return nil, err
		}
		if result == nil {
			continue
		}
		if merged == nil {
			merged = &BeforeToolResult{}
		}
		if result.Context != nil {
			ctx = result.Context
			merged.Context = result.Context
		}
		if result.ModifiedArguments != nil {
			args.Arguments = result.ModifiedArguments
			merged.ModifiedArguments = result.ModifiedArguments
		}
		if result.CustomResult != nil {
			merged.CustomResult = result.CustomResult
			if !c.continueOnResponse {
				break
			}
		}
	}
	return merged, firstErr
}

// RunAfterTool runs all after tool callbacks in order.
// If a callback returns a non-nil Context, it is passed to subsequent callbacks.
func (c *Callbacks) RunAfterTool(ctx context.Context, args *AfterToolArgs) (*AfterToolResult, error) {
	var (
		merged   *AfterToolResult
		firstErr error
	)
	for _, cb := range c.AfterTool {
		result, err := cb(ctx, args)
		if c.handleCallbackError(err, &firstErr) {
			return nil, err
		}
		if result == nil {
			continue
		}
		if merged == nil {
			merged = &AfterToolResult{}
		}
		if result.Context != nil {
			ctx = result.Context
			merged.Context = result.Context
		}
		if result.CustomResult != nil {
			merged.CustomResult = result.CustomResult
			if !c.continueOnResponse {
				break
			}
		}
	}
	return merged, firstErr
}
