//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package adapter

import (
	"github.com/go-playground/validator/v10"

	"trpc.group/trpc-go/trpc-tool-go/tool/schema"
)

type options struct {
	generator             schema.Generator
	validator             *validator.Validate
	validate              bool
	requiredCheck         bool
	disallowUnknownFields bool
}

// Option configures an Adapter.
type Option func(*options)

// WithSchemaGenerator sets the generator used for input and output schemas.
// Tools implementing tool.InputSchemaProvider or tool.OutputSchemaProvider
// keep their own schema.
func WithSchemaGenerator(g schema.Generator) Option {
	return func(o *options) {
		if g != nil {
			o.generator = g
		}
	}
}

// WithValidator sets the validator run on decoded struct arguments.
func WithValidator(v *validator.Validate) Option {
	return func(o *options) {
		o.validator = v
		o.validate = true
	}
}

// WithoutValidation disables `validate` tag checks on decoded arguments.
func WithoutValidation() Option {
	return func(o *options) {
		o.validate = false
	}
}

// WithDisallowUnknownFields rejects arguments carrying properties the input
// type does not declare.
func WithDisallowUnknownFields() Option {
	return func(o *options) {
		o.disallowUnknownFields = true
	}
}

// WithoutRequiredCheck skips the presence check of required properties.
func WithoutRequiredCheck() Option {
	return func(o *options) {
		o.requiredCheck = false
	}
}
