//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

// Package trace configures the tracer used for dispatch spans.
// It defaults to a no-op provider.
package trace

import (
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	itelemetry "trpc.group/trpc-go/trpc-tool-go/internal/telemetry"
)

var (
	// TracerProvider is the provider dispatch spans come from.
	TracerProvider trace.TracerProvider = noop.NewTracerProvider()
	// Tracer is the tracer used for dispatch spans.
	Tracer trace.Tracer = TracerProvider.Tracer(itelemetry.InstrumentName)
)

// SetTracerProvider replaces the provider and the tracer. A nil provider
// restores the no-op default.
func SetTracerProvider(tp trace.TracerProvider) {
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	TracerProvider = tp
	Tracer = tp.Tracer(itelemetry.InstrumentName)
}
