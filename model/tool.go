//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"trpc.group/trpc-go/trpc-tool-go/tool"
	"trpc.group/trpc-go/trpc-tool-go/tool/schema"
)

// ToolTypeFunction is the only tool type upstream models accept.
const ToolTypeFunction = "function"

// ToolCall is a tool call requested by the model.
type ToolCall struct {
	// ID is set by servers that pair calls and results explicitly.
	ID       string            `json:"id,omitempty"`
	Function *ToolCallFunction `json:"function,omitempty"`
}

// ToolCallFunction names the tool and carries its arguments.
type ToolCallFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Arguments   json.RawMessage `json:"arguments,omitempty"`
}

// NewToolCall builds a ToolCall whose arguments are the JSON encoding of args.
func NewToolCall(name string, args any) (ToolCall, error) {
	fn := &ToolCallFunction{Name: name}
	if args != nil {
		bts, err := json.Marshal(args)
		if err != nil {
			return ToolCall{}, fmt.Errorf("encode arguments of %s: %w", name, err)
		}
		fn.Arguments = bts
	}
	return ToolCall{Function: fn}, nil
}

// FunctionName returns the called tool name, or "" when there is no function.
func (tc ToolCall) FunctionName() string {
	if tc.Function == nil {
		return ""
	}
	return tc.Function.Name
}

// IsValid reports whether the call names a function.
func (tc ToolCall) IsValid() bool {
	return tc.Function != nil && tc.Function.Name != ""
}

// Call converts tc into a dispatchable tool.Call.
//
// Some OpenAI compatible servers send arguments as a JSON string holding
// the JSON object; such arguments are unwrapped. Any other string is passed
// through unchanged.
func (tc ToolCall) Call() (tool.Call, error) {
	if !tc.IsValid() {
		return tool.Call{ID: tc.ID}, tool.NewInvalidCallError("tool call has no function name")
	}
	args := tc.Function.Arguments
	if inner, ok := encodedObject(args); ok {
		args = inner
	}
	return tool.Call{ID: tc.ID, Name: tc.Function.Name, Arguments: args}, nil
}

// encodedObject reports whether args is a JSON string whose content is a
// JSON object, and returns that object.
func encodedObject(args json.RawMessage) (json.RawMessage, bool) {
	if len(args) == 0 || args[0] != '"' {
		return nil, false
	}
	var encoded string
	if err := json.Unmarshal(args, &encoded); err != nil {
		return nil, false
	}
	inner := bytes.TrimSpace([]byte(encoded))
	if len(inner) == 0 || inner[0] != '{' || !json.Valid(inner) {
		return nil, false
	}
	return inner, true
}

// ToolDefinition advertises a tool in a chat request.
type ToolDefinition struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction describes a callable function.
type ToolFunction struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Parameters  *tool.Schema `json:"parameters"`
}

// NewToolDefinition creates a function definition.
func NewToolDefinition(name, description string, parameters *tool.Schema) ToolDefinition {
	if parameters == nil {
		parameters = schema.NoParams()
	}
	return ToolDefinition{
		Type:     ToolTypeFunction,
		Function: ToolFunction{Name: name, Description: description, Parameters: parameters},
	}
}

// NoParamsDefinition creates a definition for a tool without arguments.
func NoParamsDefinition(name, description string) ToolDefinition {
	return NewToolDefinition(name, description, nil)
}

// ToolDefinitionFrom converts a declaration into its wire shape.
func ToolDefinitionFrom(decl *tool.Declaration) ToolDefinition {
	return NewToolDefinition(decl.Name, decl.Description, decl.InputSchema)
}

// toolError is the content of a tool message reporting a failed call.
type toolError struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// ToolResultMessage folds a dispatch result into a tool message. Failures
// become {"error": ..., "kind": ...} so the model can react to them.
func ToolResultMessage(res tool.Result) ChatMessage {
	content := string(res.Value)
	if res.Err != nil {
		bts, _ := json.Marshal(toolError{Error: res.Err.Error(), Kind: string(res.Kind())})
		content = string(bts)
	}
	return NewToolMessage(res.CallID, res.Name, content)
}

// ToolResultMessages folds results into tool messages, preserving order.
func ToolResultMessages(results []tool.Result) []ChatMessage {
	msgs := make([]ChatMessage, 0, len(results))
	for _, res := range results {
		msgs = append(msgs, ToolResultMessage(res))
	}
	return msgs
}
