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
	"errors"
	"fmt"
)

// ErrorKind classifies a dispatch failure.
type ErrorKind string

// Dispatch failure kinds.
const (
	KindNotFound       ErrorKind = "not_found"
	KindArgumentDecode ErrorKind = "argument_decode"
	KindExecution      ErrorKind = "execution"
	KindResultEncode   ErrorKind = "result_encode"
	KindInvalidCall    ErrorKind = "invalid_call"
)

// Sentinels matched by errors.Is against a *DispatchError of the same kind.
var (
	ErrNotFound       = errors.New("tool not found")
	ErrArgumentDecode = errors.New("failed to decode arguments")
	ErrExecution      = errors.New("execution error")
	ErrResultEncode   = errors.New("failed to encode result")
	ErrInvalidCall    = errors.New("invalid tool call")
)

var kindSentinels = map[ErrorKind]error{
	KindNotFound:       ErrNotFound,
	KindArgumentDecode: ErrArgumentDecode,
	KindExecution:      ErrExecution,
	KindResultEncode:   ErrResultEncode,
	KindInvalidCall:    ErrInvalidCall,
}

// DispatchError is the failure carried by a Result.
type DispatchError struct {
	// Kind classifies the failure.
	Kind ErrorKind
	// Name is the tool name the call referenced.
	Name string
	// Detail is a human readable explanation.
	Detail string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements error.
func (e *DispatchError) Error() string {
	sentinel := kindSentinels[e.Kind]
	msg := string(e.Kind)
	if sentinel != nil {
		msg = sentinel.Error()
	}
	if e.Name != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Name)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return msg
}

// Is reports whether target is the sentinel for e's kind.
func (e *DispatchError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// Unwrap returns the underlying cause.
func (e *DispatchError) Unwrap() error {
	return e.Err
}

func newDispatchError(kind ErrorKind, name string, cause error) *DispatchError {
	e := &DispatchError{Kind: kind, Name: name, Err: cause}
	if cause != nil {
		e.Detail = cause.Error()
	}
	return e
}

// NewNotFoundError reports a call to a name absent from the registry.
func NewNotFoundError(name string) *DispatchError {
	return &DispatchError{Kind: KindNotFound, Name: name}
}

// NewArgumentDecodeError reports arguments that do not match the input shape.
func NewArgumentDecodeError(name string, cause error) *DispatchError {
	return newDispatchError(KindArgumentDecode, name, cause)
}

// NewExecutionError reports a failure returned by the tool itself.
func NewExecutionError(name string, cause error) *DispatchError {
	return newDispatchError(KindExecution, name, cause)
}

// NewResultEncodeError reports an output value that cannot be encoded as JSON.
func NewResultEncodeError(name string, cause error) *DispatchError {
	return newDispatchError(KindResultEncode, name, cause)
}

// NewInvalidCallError reports a call request that names no function.
func NewInvalidCallError(detail string) *DispatchError {
	return &DispatchError{Kind: KindInvalidCall, Detail: detail}
}

// KindOf returns the kind of err if it is, or wraps, a *DispatchError.
func KindOf(err error) (ErrorKind, bool) {
	var de *DispatchError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}
