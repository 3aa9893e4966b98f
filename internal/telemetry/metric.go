//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"trpc.group/trpc-go/trpc-tool-go/telemetry/semconv/metrics"
)

var (
	MeterProvider metric.MeterProvider = noop.NewMeterProvider()

	// ExecuteToolMeter is the meter used for recording tool execution metrics.
	ExecuteToolMeter metric.Meter = MeterProvider.Meter(metrics.MeterNameExecuteTool)
	// ExecuteToolMetricTRPCToolGoClientRequestCnt records the number of dispatched calls.
	ExecuteToolMetricTRPCToolGoClientRequestCnt metric.Int64Counter = noop.Int64Counter{}
	// ExecuteToolMetricGenAIClientOperationDuration records dispatch durations in seconds.
	ExecuteToolMetricGenAIClientOperationDuration metric.Float64Histogram = noop.Float64Histogram{}
)

// ExecuteToolAttributes is the attributes for tool execution metrics.
type ExecuteToolAttributes struct {
	ToolName string
	Error    error
}

func (a ExecuteToolAttributes) toAttributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(KeyGenAIOperationName, OperationExecuteTool),
		attribute.String(KeyGenAISystem, SystemTRPCToolGo),
		attribute.String(KeyGenAIToolName, a.ToolName),
	}
	if a.Error != nil {
		attrs = append(attrs, attribute.String(KeyErrorType, ToErrorType(a.Error)))
	}
	return attrs
}

// ReportExecuteToolMetrics reports the tool execution metrics.
func ReportExecuteToolMetrics(ctx context.Context, attrs ExecuteToolAttributes, duration time.Duration) {
	as := metric.WithAttributes(attrs.toAttributes()...)
	ExecuteToolMetricTRPCToolGoClientRequestCnt.Add(ctx, 1, as)
	ExecuteToolMetricGenAIClientOperationDuration.Record(ctx, duration.Seconds(), as)
}
