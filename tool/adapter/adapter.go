//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

// Package adapter erases the input and output types of a tool.Typed so that
// tools of different shapes can be stored and dispatched uniformly.
//
// The adapter is the only place where tool payloads cross between Go values
// and JSON.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"

	"github.com/go-playground/validator/v10"

	"trpc.group/trpc-go/trpc-tool-go/log"
	"trpc.group/trpc-go/trpc-tool-go/tool"
	"trpc.group/trpc-go/trpc-tool-go/tool/schema"
)

var (
	// ErrEmptyName is returned by New when the tool reports an empty name.
	ErrEmptyName = errors.New("adapter: tool name is empty")
	// ErrNilTool is returned by New for a nil tool, including an interface
	// holding a nil pointer.
	ErrNilTool = errors.New("adapter: nil tool")
)

// IsNil reports whether t is nil or holds a nil pointer, map, slice,
// func, chan or interface.
func IsNil(t any) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// defaultValidate is shared by adapters without a custom validator.
// validator.Validate caches struct metadata and is safe for concurrent use.
var defaultValidate = validator.New(validator.WithRequiredStructEnabled())

// Adapter wraps a tool.Typed[I, O] and implements tool.Erased.
type Adapter[I, O any] struct {
	typed    tool.Typed[I, O]
	decl     *tool.Declaration
	validate *validator.Validate
	opts     options
}

var _ tool.Erased = (*Adapter[struct{}, struct{}])(nil)

// New wraps t. The declaration is computed here, from the types alone.
func New[I, O any](t tool.Typed[I, O], opts ...Option) (*Adapter[I, O], error) {
	if IsNil(t) {
		return nil, ErrNilTool
	}
	if t.Name() == "" {
		return nil, ErrEmptyName
	}
	o := options{generator: schema.Default, validate: true, requiredCheck: true}
	for _, opt := range opts {
		opt(&o)
	}

	decl, err := declare(t, o.generator)
	if err != nil {
		return nil, err
	}
	a := &Adapter[I, O]{typed: t, decl: decl, opts: o}
	if o.validate {
		a.validate = o.validator
		if a.validate == nil {
			a.validate = defaultValidate
		}
	}
	return a, nil
}

func declare[I, O any](t tool.Typed[I, O], g schema.Generator) (*tool.Declaration, error) {
	decl := &tool.Declaration{Name: t.Name(), Description: t.Description()}

	if p, ok := t.(tool.InputSchemaProvider); ok {
		decl.InputSchema = p.InputSchema().Clone()
	}
	if decl.InputSchema == nil {
		s, err := schema.For[I](g)
		if err != nil {
			return nil, fmt.Errorf("adapter: input schema for tool %s: %w", t.Name(), err)
		}
		decl.InputSchema = s
	}

	if p, ok := t.(tool.OutputSchemaProvider); ok {
		decl.OutputSchema = p.OutputSchema().Clone()
	}
	if decl.OutputSchema == nil {
		s, err := schema.For[O](g)
		if err != nil {
			return nil, fmt.Errorf("adapter: output schema for tool %s: %w", t.Name(), err)
		}
		decl.OutputSchema = s
	}
	return decl, nil
}

// Name implements tool.Erased.
func (a *Adapter[I, O]) Name() string {
	return a.decl.Name
}

// Declaration implements tool.Erased. The returned value is a copy; the
// adapter keeps its own for argument checks.
func (a *Adapter[I, O]) Declaration() *tool.Declaration {
	return a.decl.Clone()
}

// Typed returns the wrapped tool.
func (a *Adapter[I, O]) Typed() tool.Typed[I, O] {
	return a.typed
}

// Call implements tool.Erased.
func (a *Adapter[I, O]) Call(ctx context.Context, args json.RawMessage) tool.Result {
	in, err := a.decode(args)
	if err != nil {
		return tool.Failure(err)
	}
	out, err := a.invoke(ctx, in)
	if err != nil {
		return tool.Failure(err)
	}
	return a.encode(out)
}

// CallAsync implements tool.Erased. The channel is buffered so the worker
// goroutine never blocks on a caller that stopped listening.
func (a *Adapter[I, O]) CallAsync(ctx context.Context, args json.RawMessage) <-chan tool.Result {
	ch := make(chan tool.Result, 1)
	go func() {
		defer close(ch)
		ch <- a.Call(ctx, args)
	}()
	return ch
}

func (a *Adapter[I, O]) decode(args json.RawMessage) (I, error) {
	var in I
	args = tool.NormalizeArguments(args)

	dec := json.NewDecoder(bytes.NewReader(args))
	if a.opts.disallowUnknownFields {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&in); err != nil {
		return in, tool.NewArgumentDecodeError(a.Name(), err)
	}
	if dec.More() {
		return in, tool.NewArgumentDecodeError(a.Name(), errors.New("unexpected data after arguments"))
	}
	if a.opts.requiredCheck {
		if err := checkRequired(args, a.decl.InputSchema); err != nil {
			return in, tool.NewArgumentDecodeError(a.Name(), err)
		}
	}
	if a.validate != nil && isStruct(reflect.TypeOf(&in).Elem()) {
		if err := a.validateValue(in); err != nil {
			return in, tool.NewArgumentDecodeError(a.Name(), err)
		}
	}
	return in, nil
}

func (a *Adapter[I, O]) validateValue(in I) error {
	v := reflect.ValueOf(in)
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return nil
	}
	return a.validate.Struct(in)
}

// invoke runs the tool, turning a returned error or a panic into an
// execution error.
func (a *Adapter[I, O]) invoke(ctx context.Context, in I) (out O, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorfContext(ctx, "tool %s panicked: %v\n%s", a.Name(), r, debug.Stack())
			err = tool.NewExecutionError(a.Name(), fmt.Errorf("panic: %v", r))
		}
	}()
	out, err = a.typed.Call(ctx, in)
	if err != nil {
		return out, tool.NewExecutionError(a.Name(), err)
	}
	return out, nil
}

func (a *Adapter[I, O]) encode(out O) tool.Result {
	bts, err := json.Marshal(out)
	if err != nil {
		return tool.Failure(tool.NewResultEncodeError(a.Name(), err))
	}
	return tool.Success(bts)
}

// checkRequired reports the first top-level required property missing from
// args. encoding/json leaves missing fields at their zero value, so the
// decode step alone cannot tell "absent" from "zero".
func checkRequired(args json.RawMessage, s *tool.Schema) error {
	if s == nil || len(s.Required) == 0 {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(args, &obj); err != nil {
		return fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	for _, name := range s.Required {
		if _, ok := obj[name]; !ok {
			return fmt.Errorf("missing required field %q", name)
		}
	}
	return nil
}

func isStruct(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}
