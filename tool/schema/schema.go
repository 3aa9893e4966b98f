//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

// Package schema turns Go types into the JSON-schema-like values advertised
// in tool declarations.
//
// Generators work on types only; they never need a value and never execute
// tool logic. Output is deterministic for a given type.
package schema

import (
	"reflect"

	"trpc.group/trpc-go/trpc-tool-go/tool"
)

// Generator produces a schema describing values of a type.
type Generator interface {
	Generate(t reflect.Type) (*tool.Schema, error)
}

// TypeOf returns the reflect.Type of T. Unlike reflect.TypeOf on a zero value,
// it also works when T is an interface type.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// For generates the schema of T with g.
func For[T any](g Generator) (*tool.Schema, error) {
	return g.Generate(TypeOf[T]())
}

// Default is the generator used when none is configured.
var Default Generator = NewReflectGenerator()

// NoParams is the schema of a tool that takes no arguments.
func NoParams() *tool.Schema {
	return &tool.Schema{Type: "object", Properties: map[string]*tool.Schema{}}
}
