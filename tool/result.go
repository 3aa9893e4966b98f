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
	"encoding/json"
	"errors"
)

// Result is the outcome of one dispatch: either a JSON Value or an Err.
// Exactly one of the two is set.
type Result struct {
	// CallID echoes the ID of the Call that produced the result.
	CallID string
	// Name echoes the tool name of the Call.
	Name string
	// Value is the encoded tool output on success.
	Value json.RawMessage
	// Err is the dispatch failure, normally a *DispatchError.
	Err error
}

// Success returns a successful Result.
func Success(value json.RawMessage) Result {
	return Result{Value: value}
}

// Failure returns a failed Result.
func Failure(err error) Result {
	return Result{Err: err}
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Err == nil
}

// Decode unmarshals the success value into v.
func (r Result) Decode(v any) error {
	if r.Err != nil {
		return r.Err
	}
	if len(r.Value) == 0 {
		return errors.New("result has no value")
	}
	return json.Unmarshal(r.Value, v)
}

// Kind returns the failure kind, or "" for a success.
func (r Result) Kind() ErrorKind {
	kind, _ := KindOf(r.Err)
	return kind
}
