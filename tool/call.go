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
	"bytes"
	"encoding/json"
)

// emptyObject is substituted for absent or null arguments.
var emptyObject = json.RawMessage(`{}`)

// Call is a request to invoke a tool, usually parsed from a model response.
type Call struct {
	// ID pairs the result with the model's tool call. Optional.
	ID string `json:"id,omitempty"`
	// Name is the dispatch key.
	Name string `json:"name"`
	// Arguments is the JSON argument payload.
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// NewCall builds a Call by encoding args. A nil args yields an empty object.
func NewCall(name string, args any) (Call, error) {
	if args == nil {
		return Call{Name: name}, nil
	}
	bts, err := json.Marshal(args)
	if err != nil {
		return Call{}, err
	}
	return Call{Name: name, Arguments: bts}, nil
}

// NormalizeArguments returns args, or {} when args is empty or JSON null.
func NormalizeArguments(args json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return emptyObject
	}
	return args
}
