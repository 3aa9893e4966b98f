//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package registry_test

import (
	"context"

	"trpc.group/trpc-go/trpc-tool-go/tool/function"
)

func newCityEcho(got *string) *function.FunctionTool[weatherIn, weatherOut] {
	return function.NewFunctionTool(
		func(_ context.Context, in weatherIn) (weatherOut, error) {
			*got = in.City
			return weatherOut{TemperatureC: 20}, nil
		},
		function.WithName("get_weather"),
		function.WithDescription("Records the requested city."),
	)
}

func newContextProbe(probe func(context.Context)) *function.FunctionTool[struct{}, string] {
	return function.NewFunctionTool(
		func(ctx context.Context, _ struct{}) (string, error) {
			probe(ctx)
			return "ok", nil
		},
		function.WithName("probe"),
		function.WithDescription("Inspects its context."),
	)
}

func newGreeter() *function.FunctionTool[string, string] {
	return function.NewFunctionTool(
		func(_ context.Context, name string) (string, error) {
			return "hi " + name, nil
		},
		function.WithName("greet"),
		function.WithDescription("Greets a person by name."),
	)
}
