//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

// Package openai converts between tool dispatch values and the
// chat completion types of github.com/openai/openai-go.
package openai

import (
	"encoding/json"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"

	"trpc.group/trpc-go/trpc-tool-go/log"
	"trpc.group/trpc-go/trpc-tool-go/model"
	"trpc.group/trpc-go/trpc-tool-go/tool"
)

const functionToolType string = "function"

// Tools converts declarations into chat completion tool params. A
// declaration whose schema cannot be converted is logged and skipped.
func Tools(decls []*tool.Declaration) []openai.ChatCompletionToolParam {
	result := make([]openai.ChatCompletionToolParam, 0, len(decls))
	for _, decl := range decls {
		parameters, err := functionParameters(decl.InputSchema)
		if err != nil {
			log.Errorf("failed to convert tool schema for %s: %v", decl.Name, err)
			continue
		}
		result = append(result, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        decl.Name,
				Description: openai.String(buildToolDescription(decl)),
				Parameters:  parameters,
			},
		})
	}
	return result
}

func functionParameters(s *tool.Schema) (shared.FunctionParameters, error) {
	if s == nil {
		return shared.FunctionParameters{"type": "object", "properties": map[string]any{}}, nil
	}
	// Round trip through JSON to map onto the expected format.
	schemaBytes, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var parameters shared.FunctionParameters
	if err := json.Unmarshal(schemaBytes, &parameters); err != nil {
		return nil, err
	}
	return parameters, nil
}

// buildToolDescription builds the description for a tool.
// It appends the output schema to the description.
func buildToolDescription(decl *tool.Declaration) string {
	desc := decl.Description
	if decl.OutputSchema == nil {
		return desc
	}
	schemaJSON, err := json.Marshal(decl.OutputSchema)
	if err != nil {
		log.Errorf("failed to marshal output schema for tool %s: %v", decl.Name, err)
		return desc
	}
	return desc + " Output schema: " + string(schemaJSON)
}

// Calls extracts the tool calls of an assistant message in order.
// Providers that omit the call ID get a stable one derived from the index.
func Calls(msg openai.ChatCompletionMessage) []tool.Call {
	calls := make([]tool.Call, 0, len(msg.ToolCalls))
	for i, tc := range msg.ToolCalls {
		if tc.Function.Name == "" && tc.ID == "" {
			continue
		}
		id := tc.ID
		if id == "" {
			id = fmt.Sprintf("auto_call_%d", i)
		}
		calls = append(calls, tool.Call{
			ID:        id,
			Name:      tc.Function.Name,
			Arguments: json.RawMessage(tc.Function.Arguments),
		})
	}
	return calls
}

// ToolCallParams converts model tool calls into the params of an assistant
// message, e.g. to replay a conversation.
func ToolCallParams(toolCalls []model.ToolCall) []openai.ChatCompletionMessageToolCallParam {
	var result []openai.ChatCompletionMessageToolCallParam
	for _, tc := range toolCalls {
		if !tc.IsValid() {
			continue
		}
		result = append(result, openai.ChatCompletionMessageToolCallParam{
			ID: tc.ID,
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      tc.Function.Name,
				Arguments: string(tc.Function.Arguments),
			},
		})
	}
	return result
}

// ToolMessages folds dispatch results into tool messages, preserving order.
func ToolMessages(results []tool.Result) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(results))
	for _, res := range results {
		msg := model.ToolResultMessage(res)
		msgs = append(msgs, openai.ChatCompletionMessageParamUnion{
			OfTool: &openai.ChatCompletionToolMessageParam{
				Content: openai.ChatCompletionToolMessageParamContentUnion{
					OfString: openai.String(msg.Content),
				},
				ToolCallID: msg.ToolCallID,
			},
		})
	}
	return msgs
}
