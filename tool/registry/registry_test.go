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
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-tool-go/tool"
	"trpc.group/trpc-go/trpc-tool-go/tool/adapter"
	"trpc.group/trpc-go/trpc-tool-go/tool/function"
	"trpc.group/trpc-go/trpc-tool-go/tool/registry"
	"trpc.group/trpc-go/trpc-tool-go/tool/schema"
)

type weatherIn struct {
	City string `json:"city"`
}

type weatherOut struct {
	TemperatureC float64 `json:"temperature_c"`
}

type calcIn struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	Op string  `json:"op" validate:"oneof=add sub"`
}

type calcOut struct {
	Result float64 `json:"result"`
}

// recorder counts executions of the tools built by newWeatherTool.
type recorder struct {
	calls atomic.Int32
}

func (r *recorder) newWeatherTool(name string, temp float64) *function.FunctionTool[weatherIn, weatherOut] {
	return function.NewFunctionTool(
		func(_ context.Context, in weatherIn) (weatherOut, error) {
			r.calls.Add(1)
			if in.City == "Atlantis" {
				return weatherOut{}, errors.New("unknown city")
			}
			return weatherOut{TemperatureC: temp}, nil
		},
		function.WithName(name),
		function.WithDescription("Returns the current temperature of a city."),
	)
}

func newCalcTool() *function.FunctionTool[calcIn, calcOut] {
	return function.NewFunctionTool(
		func(_ context.Context, in calcIn) (calcOut, error) {
			if in.Op == "sub" {
				return calcOut{Result: in.A - in.B}, nil
			}
			return calcOut{Result: in.A + in.B}, nil
		},
		function.WithName("calculator"),
		function.WithDescription("Adds or subtracts two numbers."),
	)
}

func newRegistry(t *testing.T, rec *recorder, opts ...registry.Option) *registry.Registry {
	t.Helper()
	r := registry.New(opts...)
	t.Cleanup(r.Close)
	require.NoError(t, registry.Register[weatherIn, weatherOut](r, rec.newWeatherTool("get_weather", 23.5)))
	require.NoError(t, registry.Register[calcIn, calcOut](r, newCalcTool()))
	return r
}

func call(t *testing.T, name string, args any) tool.Call {
	t.Helper()
	c, err := tool.NewCall(name, args)
	require.NoError(t, err)
	return c
}

func TestDispatch_GetWeather(t *testing.T) {
	rec := &recorder{}
	r := newRegistry(t, rec)

	res := r.Dispatch(context.Background(), call(t, "get_weather", map[string]any{"city": "Lisbon"}))

	require.NoError(t, res.Err)
	assert.JSONEq(t, `{"temperature_c": 23.5}`, string(res.Value))
	assert.Equal(t, "get_weather", res.Name)
	assert.NotEmpty(t, res.CallID)
	assert.EqualValues(t, 1, rec.calls.Load())

	var out weatherOut
	require.NoError(t, res.Decode(&out))
	assert.Equal(t, weatherOut{TemperatureC: 23.5}, out)
}

func TestDispatch_Failures(t *testing.T) {
	tests := []struct {
		name     string
		call     tool.Call
		wantErr  error
		wantKind tool.ErrorKind
		executed int32
	}{
		{
			name:     "not found",
			call:     tool.Call{Name: "get_time", Arguments: json.RawMessage(`{}`)},
			wantErr:  tool.ErrNotFound,
			wantKind: tool.KindNotFound,
		},
		{
			name:     "empty name",
			call:     tool.Call{Arguments: json.RawMessage(`{"city":"Lisbon"}`)},
			wantErr:  tool.ErrInvalidCall,
			wantKind: tool.KindInvalidCall,
		},
		{
			name:     "wrong value type",
			call:     tool.Call{Name: "get_weather", Arguments: json.RawMessage(`{"city": 7}`)},
			wantErr:  tool.ErrArgumentDecode,
			wantKind: tool.KindArgumentDecode,
		},
		{
			name:     "missing required field",
			call:     tool.Call{Name: "get_weather", Arguments: json.RawMessage(`{"town":"Lisbon"}`)},
			wantErr:  tool.ErrArgumentDecode,
			wantKind: tool.KindArgumentDecode,
		},
		{
			name:     "tool failure",
			call:     tool.Call{Name: "get_weather", Arguments: json.RawMessage(`{"city":"Atlantis"}`)},
			wantErr:  tool.ErrExecution,
			wantKind: tool.KindExecution,
			executed: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			r := newRegistry(t, rec)

			res := r.Dispatch(context.Background(), tt.call)

			assert.ErrorIs(t, res.Err, tt.wantErr)
			assert.Equal(t, tt.wantKind, res.Kind())
			assert.Nil(t, res.Value)
			assert.Equal(t, tt.executed, rec.calls.Load())
		})
	}
}

func TestDispatch_Validation(t *testing.T) {
	r := newRegistry(t, &recorder{})

	res := r.Dispatch(context.Background(), call(t, "calculator", calcIn{A: 1, B: 2, Op: "mul"}))
	assert.ErrorIs(t, res.Err, tool.ErrArgumentDecode)

	res = r.Dispatch(context.Background(), call(t, "calculator", calcIn{A: 5, B: 2, Op: "sub"}))
	require.NoError(t, res.Err)
	assert.JSONEq(t, `{"result":3}`, string(res.Value))
}

func TestDispatch_CallID(t *testing.T) {
	r := registry.New()
	var seen string
	echo := function.NewFunctionTool(
		func(ctx context.Context, _ struct{}) (string, error) {
			seen, _ = tool.CallIDFromContext(ctx)
			return seen, nil
		},
		function.WithName("echo_id"),
	)
	require.NoError(t, registry.Register[struct{}, string](r, echo))

	res := r.Dispatch(context.Background(), tool.Call{ID: "call_42", Name: "echo_id"})
	require.NoError(t, res.Err)
	assert.Equal(t, "call_42", res.CallID)
	assert.Equal(t, "call_42", seen)

	res = r.Dispatch(context.Background(), tool.Call{Name: "echo_id"})
	require.NoError(t, res.Err)
	assert.NotEmpty(t, res.CallID)
	assert.Equal(t, res.CallID, seen)

	res = r.Dispatch(context.Background(), tool.Call{Name: "missing"})
	assert.NotEmpty(t, res.CallID, "failures carry a call ID too")
}

func TestDispatchAll_PreservesOrder(t *testing.T) {
	for _, concurrency := range []int{0, 4} {
		t.Run(fmt.Sprintf("concurrency=%d", concurrency), func(t *testing.T) {
			rec := &recorder{}
			r := newRegistry(t, rec, registry.WithConcurrency(concurrency))

			calls := []tool.Call{
				call(t, "get_weather", weatherIn{City: "Lisbon"}),
				call(t, "get_time", nil),
				call(t, "calculator", calcIn{A: 1, B: 2, Op: "add"}),
			}
			results := r.DispatchAll(context.Background(), calls)

			require.Len(t, results, 3)
			require.NoError(t, results[0].Err)
			assert.JSONEq(t, `{"temperature_c":23.5}`, string(results[0].Value))
			assert.ErrorIs(t, results[1].Err, tool.ErrNotFound)
			assert.Equal(t, "get_time", results[1].Name)
			require.NoError(t, results[2].Err)
			assert.JSONEq(t, `{"result":3}`, string(results[2].Value))
			assert.EqualValues(t, 1, rec.calls.Load())
		})
	}
}

func TestDispatchAll_ConcurrentOrderUnderLoad(t *testing.T) {
	r := registry.New(registry.WithConcurrency(8))
	t.Cleanup(r.Close)
	require.NoError(t, registry.Register[calcIn, calcOut](r, newCalcTool()))

	calls := make([]tool.Call, 100)
	for i := range calls {
		calls[i] = call(t, "calculator", calcIn{A: float64(i), B: 0, Op: "add"})
	}
	results := r.DispatchAll(context.Background(), calls)
	require.Len(t, results, len(calls))
	for i, res := range results {
		require.NoError(t, res.Err)
		var out calcOut
		require.NoError(t, res.Decode(&out))
		assert.Equal(t, float64(i), out.Result)
	}
}

func TestDispatchAll_AfterClose(t *testing.T) {
	r := newRegistry(t, &recorder{}, registry.WithConcurrency(2))
	r.Close()

	results := r.DispatchAll(context.Background(), []tool.Call{
		call(t, "get_weather", weatherIn{City: "Porto"}),
		call(t, "get_weather", weatherIn{City: "Faro"}),
	})
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err)
}

func TestDispatchAll_Empty(t *testing.T) {
	r := newRegistry(t, &recorder{})
	assert.Empty(t, r.DispatchAll(context.Background(), nil))
}

func TestDispatchAsync(t *testing.T) {
	r := newRegistry(t, &recorder{})

	ch := r.DispatchAsync(context.Background(), call(t, "get_weather", weatherIn{City: "Lisbon"}))
	res, ok := <-ch
	require.True(t, ok)
	assert.JSONEq(t, `{"temperature_c":23.5}`, string(res.Value))
	_, ok = <-ch
	assert.False(t, ok)

	res = <-r.DispatchAsync(context.Background(), tool.Call{Name: "nope"})
	assert.ErrorIs(t, res.Err, tool.ErrNotFound)
}

func TestRegister_LastWriteWins(t *testing.T) {
	rec := &recorder{}
	r := newRegistry(t, rec)
	require.NoError(t, registry.Register[weatherIn, weatherOut](r, rec.newWeatherTool("get_weather", 30)))

	assert.Equal(t, 2, r.Len())
	decls := r.Declarations()
	require.Len(t, decls, 2)
	assert.Equal(t, "calculator", decls[0].Name)
	assert.Equal(t, "get_weather", decls[1].Name)

	res := r.Dispatch(context.Background(), call(t, "get_weather", weatherIn{City: "Lisbon"}))
	assert.JSONEq(t, `{"temperature_c":30}`, string(res.Value))
}

func TestRegister_Strict(t *testing.T) {
	rec := &recorder{}
	r := newRegistry(t, rec, registry.WithStrictRegistration(true))

	err := registry.Register[weatherIn, weatherOut](r, rec.newWeatherTool("get_weather", 30))
	assert.ErrorIs(t, err, registry.ErrDuplicateTool)

	res := r.Dispatch(context.Background(), call(t, "get_weather", weatherIn{City: "Lisbon"}))
	assert.JSONEq(t, `{"temperature_c":23.5}`, string(res.Value), "original tool kept")
}

func TestRegister_Errors(t *testing.T) {
	r := registry.New()
	rec := &recorder{}

	err := registry.Register[weatherIn, weatherOut](r, rec.newWeatherTool("", 1))
	assert.ErrorIs(t, err, registry.ErrInvalidName)

	err = registry.Register[weatherIn, weatherOut](r, nil)
	assert.ErrorIs(t, err, adapter.ErrNilTool)

	var typedNil *function.FunctionTool[weatherIn, weatherOut]
	err = registry.Register[weatherIn, weatherOut](r, typedNil)
	assert.ErrorIs(t, err, adapter.ErrNilTool)

	var erasedNil *adapter.Adapter[weatherIn, weatherOut]
	assert.ErrorIs(t, r.Add(erasedNil), adapter.ErrNilTool)

	assert.Error(t, r.Add(nil))
	assert.Zero(t, r.Len())

	assert.Panics(t, func() {
		registry.MustRegister[weatherIn, weatherOut](r, rec.newWeatherTool("", 1))
	})
}

func TestRegister_AdapterOptions(t *testing.T) {
	r := registry.New(
		registry.WithSchemaGenerator(schema.NewInvopopGenerator()),
		registry.WithAdapterOptions(adapter.WithDisallowUnknownFields()),
	)
	require.NoError(t, registry.Register[calcIn, calcOut](r, newCalcTool()))

	decls := r.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, "number", decls[0].InputSchema.Properties["a"].Type)

	res := r.Dispatch(context.Background(), tool.Call{
		Name:      "calculator",
		Arguments: json.RawMessage(`{"a":1,"b":2,"op":"add","extra":true}`),
	})
	assert.ErrorIs(t, res.Err, tool.ErrArgumentDecode)

	require.NoError(t, registry.Register[calcIn, calcOut](r, newCalcTool(), adapter.WithoutValidation()))
	res = r.Dispatch(context.Background(), call(t, "calculator", calcIn{A: 1, B: 2, Op: "mul"}))
	assert.NoError(t, res.Err)
}

func TestRegistry_Lookup(t *testing.T) {
	r := newRegistry(t, &recorder{})

	assert.Equal(t, []string{"calculator", "get_weather"}, r.Names())
	assert.True(t, r.Contains("get_weather"))
	assert.False(t, r.Contains("get_time"))

	erased, ok := r.Get("calculator")
	require.True(t, ok)
	assert.Equal(t, "calculator", erased.Name())
	_, ok = r.Get("get_time")
	assert.False(t, ok)

	assert.True(t, r.Remove("calculator"))
	assert.False(t, r.Remove("calculator"))
	assert.Equal(t, 1, r.Len())
	res := r.Dispatch(context.Background(), call(t, "calculator", calcIn{Op: "add"}))
	assert.ErrorIs(t, res.Err, tool.ErrNotFound)
}

func TestDeclarations_Snapshot(t *testing.T) {
	r := newRegistry(t, &recorder{})

	decls := r.Declarations()
	decls[0].Name = "mutated"
	decls[0].Description = "mutated"

	again := r.Declarations()
	assert.Equal(t, "calculator", again[0].Name)
	assert.Equal(t, "Adds or subtracts two numbers.", again[0].Description)

	filtered := r.Declarations(tool.IncludeNames("get_weather"))
	require.Len(t, filtered, 1)
	assert.Equal(t, "get_weather", filtered[0].Name)
	assert.Len(t, r.Declarations(tool.ExcludeNames("get_weather")), 1)
}

func TestDeclarations_UniquePerName(t *testing.T) {
	rec := &recorder{}
	r := registry.New()
	for i := 0; i < 5; i++ {
		require.NoError(t, registry.Register[weatherIn, weatherOut](r, rec.newWeatherTool("get_weather", float64(i))))
	}
	decls := r.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, "get_weather", decls[0].Name)
	assert.Equal(t, []string{"city"}, decls[0].InputSchema.Required)
	assert.Zero(t, rec.calls.Load(), "registration must not execute tools")
}

func TestDeclarations_SnapshotMutation(t *testing.T) {
	r := newRegistry(t, &recorder{})

	snap := r.Declarations(tool.IncludeNames("get_weather"))
	require.Len(t, snap, 1)
	snap[0].InputSchema.Properties["city"].Type = "integer"
	snap[0].InputSchema.Required = []string{"hacked"}
	snap[0].Description = "changed"

	fresh := r.Declarations(tool.IncludeNames("get_weather"))
	require.Len(t, fresh, 1)
	assert.Equal(t, "string", fresh[0].InputSchema.Properties["city"].Type)
	assert.Equal(t, []string{"city"}, fresh[0].InputSchema.Required)
	assert.NotEqual(t, "changed", fresh[0].Description)

	res := r.Dispatch(context.Background(), call(t, "get_weather", weatherIn{City: "Lisbon"}))
	require.NoError(t, res.Err)
	assert.JSONEq(t, `{"temperature_c":23.5}`, string(res.Value))
}

func TestToolDefinitions(t *testing.T) {
	r := newRegistry(t, &recorder{})

	defs := r.ToolDefinitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "function", defs[0].Type)
	assert.Equal(t, "calculator", defs[0].Function.Name)
	assert.Equal(t, "get_weather", defs[1].Function.Name)
	assert.Equal(t, "string", defs[1].Function.Parameters.Properties["city"].Type)
}

func TestConcurrentRegisterAndDispatch(t *testing.T) {
	rec := &recorder{}
	r := newRegistry(t, rec)

	const workers = 8
	lisbon := call(t, "get_weather", weatherIn{City: "Lisbon"})
	var wg sync.WaitGroup
	errs := make(chan error, workers*50)
	for w := 0; w < workers; w++ {
		wg.Add(2)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if err := registry.Register[weatherIn, weatherOut](r, rec.newWeatherTool("get_weather", float64(w))); err != nil {
					errs <- err
				}
			}
		}(w)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				res := r.Dispatch(context.Background(), lisbon)
				if res.Err != nil {
					errs <- res.Err
					continue
				}
				var out weatherOut
				if err := json.Unmarshal(res.Value, &out); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
	assert.Equal(t, 2, r.Len())
}

func TestInFlightCallKeepsSnapshot(t *testing.T) {
	r := registry.New()
	started := make(chan struct{})
	release := make(chan struct{})
	slow := function.NewFunctionTool(
		func(context.Context, struct{}) (string, error) {
			close(started)
			<-release
			return "old", nil
		},
		function.WithName("versioned"),
	)
	fast := function.NewFunctionTool(
		func(context.Context, struct{}) (string, error) { return "new", nil },
		function.WithName("versioned"),
	)
	require.NoError(t, registry.Register[struct{}, string](r, slow))

	ch := r.DispatchAsync(context.Background(), tool.Call{Name: "versioned"})
	<-started
	// Registration proceeds while the old tool is still running.
	require.NoError(t, registry.Register[struct{}, string](r, fast))
	res := r.Dispatch(context.Background(), tool.Call{Name: "versioned"})
	assert.JSONEq(t, `"new"`, string(res.Value))

	close(release)
	res = <-ch
	assert.JSONEq(t, `"old"`, string(res.Value))
}
