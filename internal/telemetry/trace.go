//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry holds the span and metric helpers shared by the
// dispatch path. Providers are configured through telemetry/trace and
// telemetry/metric.
package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	semconvtrace "trpc.group/trpc-go/trpc-tool-go/telemetry/semconv/trace"
	"trpc.group/trpc-go/trpc-tool-go/tool"
)

// telemetry service constants.
const (
	InstrumentName = "trpc.tool.go"

	OperationExecuteTool = "execute_tool"

	// ToolTypeFunction is the gen_ai.tool.type of every registered tool.
	ToolTypeFunction = "function"
)

// Telemetry attribute keys aliases from semconv package.
var (
	KeyGenAIOperationName = semconvtrace.KeyGenAIOperationName
	KeyGenAISystem        = semconvtrace.KeyGenAISystem

	KeyGenAIToolName          = semconvtrace.KeyGenAIToolName
	KeyGenAIToolDescription   = semconvtrace.KeyGenAIToolDescription
	KeyGenAIToolType          = semconvtrace.KeyGenAIToolType
	KeyGenAIToolCallID        = semconvtrace.KeyGenAIToolCallID
	KeyGenAIToolCallArguments = semconvtrace.KeyGenAIToolCallArguments
	KeyGenAIToolCallResult    = semconvtrace.KeyGenAIToolCallResult

	KeyErrorType          = semconvtrace.KeyErrorType
	KeyErrorMessage       = semconvtrace.KeyErrorMessage
	ValueDefaultErrorType = semconvtrace.ValueDefaultErrorType

	SystemTRPCToolGo = semconvtrace.SystemTRPCToolGo

	KeyTRPCToolGoRegistrySize = semconvtrace.KeyTRPCToolGoRegistrySize
)

// NewExecuteToolSpanName creates a new execute tool span name.
func NewExecuteToolSpanName(toolName string) string {
	return fmt.Sprintf("%s %s", OperationExecuteTool, toolName)
}

// ToErrorType maps a dispatch failure to an error.type value.
func ToErrorType(err error) string {
	if err == nil {
		return ""
	}
	if kind, ok := tool.KindOf(err); ok {
		return string(kind)
	}
	return ValueDefaultErrorType
}

// TraceToolCall records a finished dispatch on span.
func TraceToolCall(span trace.Span, decl *tool.Declaration, call tool.Call, res tool.Result) {
	span.SetAttributes(
		attribute.String(KeyGenAISystem, SystemTRPCToolGo),
		attribute.String(KeyGenAIOperationName, OperationExecuteTool),
		attribute.String(KeyGenAIToolName, call.Name),
		attribute.String(KeyGenAIToolType, ToolTypeFunction),
		attribute.String(KeyGenAIToolCallID, res.CallID),
		// args is json-encoded.
		attribute.String(KeyGenAIToolCallArguments, string(call.Arguments)),
	)
	if decl != nil {
		span.SetAttributes(attribute.String(KeyGenAIToolDescription, decl.Description))
	}
	if res.Err != nil {
		span.SetStatus(codes.Error, res.Err.Error())
		span.SetAttributes(
			attribute.String(KeyErrorType, ToErrorType(res.Err)),
			attribute.String(KeyErrorMessage, res.Err.Error()),
		)
		return
	}
	span.SetAttributes(attribute.String(KeyGenAIToolCallResult, string(res.Value)))
}
