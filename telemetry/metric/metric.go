//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

// Package metric configures the meter provider used for dispatch metrics.
// It integrates with OpenTelemetry; the default provider is a no-op.
package metric

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	itelemetry "trpc.group/trpc-go/trpc-tool-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-tool-go/telemetry/semconv/metrics"
)

// InitMeterProvider initializes the meter provider and the execute tool
// instruments. A nil provider restores the no-op default.
func InitMeterProvider(mp metric.MeterProvider) error {
	if mp == nil {
		mp = noop.NewMeterProvider()
	}
	meter := mp.Meter(metrics.MeterNameExecuteTool)

	cnt, err := meter.Int64Counter(
		metrics.MetricTRPCToolGoClientRequestCnt,
		metric.WithDescription("Total number of client requests"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create execute tool metric TRPCToolGoClientRequestCnt: %w", err)
	}
	dur, err := meter.Float64Histogram(
		metrics.MetricGenAIClientOperationDuration,
		metric.WithDescription("Duration of client operation"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create execute tool metric GenAIClientOperationDuration: %w", err)
	}

	itelemetry.MeterProvider = mp
	itelemetry.ExecuteToolMeter = meter
	itelemetry.ExecuteToolMetricTRPCToolGoClientRequestCnt = cnt
	itelemetry.ExecuteToolMetricGenAIClientOperationDuration = dur
	return nil
}

// GetMeterProvider returns the meter provider.
func GetMeterProvider() metric.MeterProvider {
	return itelemetry.MeterProvider
}
