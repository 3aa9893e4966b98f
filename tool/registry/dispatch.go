//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	itelemetry "trpc.group/trpc-go/trpc-tool-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-tool-go/log"
	"trpc.group/trpc-go/trpc-tool-go/model"
	"trpc.group/trpc-go/trpc-tool-go/telemetry/trace"
	"trpc.group/trpc-go/trpc-tool-go/tool"
)

// Dispatch runs one call and returns its result. It never panics on a bad
// call or a failing tool; every failure is reported in Result.Err as a
// *tool.DispatchError.
//
// A call without ID gets a generated one, which is echoed in the result and
// available to the tool through tool.CallIDFromContext.
func (r *Registry) Dispatch(ctx context.Context, call tool.Call) tool.Result {
	if call.ID == "" {
		call.ID = uuid.NewString()
	}
	if call.Name == "" {
		return finish(call, tool.Failure(tool.NewInvalidCallError("tool call has no name")))
	}
	e, ok := r.lookup(call.Name)
	if !ok {
		log.DebugfContext(ctx, "registry: tool %s not found", call.Name)
		return finish(call, tool.Failure(tool.NewNotFoundError(call.Name)))
	}

	ctx = tool.ContextWithCallID(ctx, call.ID)
	ctx, span := trace.Tracer.Start(ctx, itelemetry.NewExecuteToolSpanName(call.Name))
	defer span.End()
	start := time.Now()

	span.SetAttributes(attribute.Int(itelemetry.KeyTRPCToolGoRegistrySize, r.Len()))
	res := finish(call, r.execute(ctx, e, call))

	itelemetry.TraceToolCall(span, e.decl, call, res)
	itelemetry.ReportExecuteToolMetrics(ctx, itelemetry.ExecuteToolAttributes{
		ToolName: call.Name,
		Error:    res.Err,
	}, time.Since(start))
	return res
}

// DispatchAsync runs Dispatch on another goroutine. The channel yields
// exactly one Result and is then closed.
func (r *Registry) DispatchAsync(ctx context.Context, call tool.Call) <-chan tool.Result {
	ch := make(chan tool.Result, 1)
	go func() {
		defer close(ch)
		ch <- r.Dispatch(ctx, call)
	}()
	return ch
}

// DispatchAll dispatches every call and returns the results in the order of
// calls. A failing call does not prevent the others from running.
//
// Calls run sequentially unless the registry was created WithConcurrency.
func (r *Registry) DispatchAll(ctx context.Context, calls []tool.Call) []tool.Result {
	results := make([]tool.Result, len(calls))
	if r.pool == nil || len(calls) < 2 {
		for i, call := range calls {
			results[i] = r.Dispatch(ctx, call)
		}
		return results
	}

	var wg sync.WaitGroup
	for idx, call := range calls {
		wg.Add(1)
		param := dispatchParamPool.Get().(*dispatchParam)
		param.idx = idx
		param.ctx = ctx
		param.call = call
		param.registry = r
		param.results = results
		param.wg = &wg
		if err := r.pool.Invoke(param); err != nil {
			log.DebugfContext(ctx, "registry: submit call %s to pool: %v, running inline", call.Name, err)
			param.reset()
			dispatchParamPool.Put(param)
			results[idx] = r.Dispatch(ctx, call)
			wg.Done()
		}
	}
	wg.Wait()
	return results
}

// DispatchResponse dispatches every tool call of rsp in order. Tool calls
// without a function name fail with tool.ErrInvalidCall.
func (r *Registry) DispatchResponse(ctx context.Context, rsp *model.ChatResponse) []tool.Result {
	toolCalls := rsp.ToolCalls()
	calls := make([]tool.Call, 0, len(toolCalls))
	for _, tc := range toolCalls {
		// An invalid call keeps an empty name and is reported by Dispatch.
		call, _ := tc.Call()
		calls = append(calls, call)
	}
	return r.DispatchAll(ctx, calls)
}

// execute runs the callbacks and the tool. Callback failures, panics
// included, are reported as execution errors.
func (r *Registry) execute(ctx context.Context, e *entry, call tool.Call) (res tool.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			log.ErrorfContext(ctx, "registry: dispatch of tool %s panicked: %v\n%s", call.Name, rec, debug.Stack())
			res = tool.Failure(tool.NewExecutionError(call.Name, fmt.Errorf("panic: %v", rec)))
		}
	}()
	callbacks := r.opts.callbacks
	args := call.Arguments
	if callbacks != nil && len(callbacks.BeforeTool) > 0 {
		before := &tool.BeforeToolArgs{
			ToolName:    call.Name,
			CallID:      call.ID,
			Declaration: e.decl.Clone(),
			Arguments:   args,
		}
		out, err := callbacks.RunBeforeTool(ctx, before)
		if err != nil {
			return tool.Failure(tool.NewExecutionError(call.Name, fmt.Errorf("before tool callback: %w", err)))
		}
		args = before.Arguments
		if out != nil {
			if out.Context != nil {
				ctx = out.Context
			}
			if out.CustomResult != nil {
				return customResult(call.Name, out.CustomResult)
			}
		}
	}

	res = e.tool.Call(ctx, args)

	if callbacks != nil && len(callbacks.AfterTool) > 0 {
		out, err := callbacks.RunAfterTool(ctx, &tool.AfterToolArgs{
			ToolName:    call.Name,
			CallID:      call.ID,
			Declaration: e.decl.Clone(),
			Arguments:   args,
			Result:      res,
		})
		if err != nil {
			return tool.Failure(tool.NewExecutionError(call.Name, fmt.Errorf("after tool callback: %w", err)))
		}
		if out != nil && out.CustomResult != nil {
			res = customResult(call.Name, out.CustomResult)
		}
	}
	return res
}

func customResult(name string, v any) tool.Result {
	bts, err := json.Marshal(v)
	if err != nil {
		return tool.Failure(tool.NewResultEncodeError(name, err))
	}
	return tool.Success(bts)
}

func finish(call tool.Call, res tool.Result) tool.Result {
	res.CallID = call.ID
	res.Name = call.Name
	return res
}
