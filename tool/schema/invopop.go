//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"trpc.group/trpc-go/trpc-tool-go/tool"
)

// InvopopGenerator generates schemas with github.com/invopop/jsonschema.
// It understands the full invopop `jsonschema` tag vocabulary and
// `jsonschema_description` tags.
type InvopopGenerator struct {
	reflector *jsonschema.Reflector
}

// InvopopOption configures an InvopopGenerator.
type InvopopOption func(*InvopopGenerator)

// WithReflector replaces the default reflector.
func WithReflector(r *jsonschema.Reflector) InvopopOption {
	return func(g *InvopopGenerator) {
		if r != nil {
			g.reflector = r
		}
	}
}

// NewInvopopGenerator creates an InvopopGenerator. By default the root struct
// is expanded inline and no $schema/$id is emitted.
func NewInvopopGenerator(opts ...InvopopOption) *InvopopGenerator {
	g := &InvopopGenerator{
		reflector: &jsonschema.Reflector{
			ExpandedStruct: true,
			Anonymous:      true,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate implements Generator.
func (g *InvopopGenerator) Generate(t reflect.Type) (*tool.Schema, error) {
	if t == nil {
		return nil, errors.New("schema: nil type")
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	reflected := g.reflector.ReflectFromType(t)
	bts, err := json.Marshal(reflected)
	if err != nil {
		return nil, fmt.Errorf("schema: marshal reflected schema for %s: %w", t, err)
	}
	var out tool.Schema
	if err := json.Unmarshal(bts, &out); err != nil {
		return nil, fmt.Errorf("schema: convert reflected schema for %s: %w", t, err)
	}
	return &out, nil
}
