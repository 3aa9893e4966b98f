//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package registry

import (
	"github.com/go-playground/validator/v10"

	"trpc.group/trpc-go/trpc-tool-go/tool"
	"trpc.group/trpc-go/trpc-tool-go/tool/adapter"
	"trpc.group/trpc-go/trpc-tool-go/tool/schema"
)

type options struct {
	strict         bool
	concurrency    int
	callbacks      *tool.Callbacks
	adapterOptions []adapter.Option
}

// Option configures a Registry.
type Option func(*options)

// WithStrictRegistration makes registering an existing name fail with
// ErrDuplicateTool. By default the last registration wins.
func WithStrictRegistration(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithConcurrency sets how many calls of one DispatchAll batch may run at
// the same time. Values below 2 keep batches sequential.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithCallbacks sets the callbacks run around every dispatched call.
func WithCallbacks(callbacks *tool.Callbacks) Option {
	return func(o *options) {
		o.callbacks = callbacks
	}
}

// WithSchemaGenerator sets the schema generator used by Register.
func WithSchemaGenerator(g schema.Generator) Option {
	return WithAdapterOptions(adapter.WithSchemaGenerator(g))
}

// WithValidator sets the argument validator used by Register.
func WithValidator(v *validator.Validate) Option {
	return WithAdapterOptions(adapter.WithValidator(v))
}

// WithAdapterOptions appends options applied to every adapter built by
// Register, before the options passed to Register itself.
func WithAdapterOptions(opts ...adapter.Option) Option {
	return func(o *options) {
		o.adapterOptions = append(o.adapterOptions, opts...)
	}
}
