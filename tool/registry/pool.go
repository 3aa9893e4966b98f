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
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-tool-go/tool"
)

type dispatchParam struct {
	idx      int
	ctx      context.Context
	call     tool.Call
	registry *Registry
	results  []tool.Result
	wg       *sync.WaitGroup
}

func (p *dispatchParam) reset() {
	p.idx = 0
	p.ctx = nil
	p.call = tool.Call{}
	p.registry = nil
	p.results = nil
	p.wg = nil
}

var dispatchParamPool = &sync.Pool{
	New: func() any { return new(dispatchParam) },
}

func createDispatchPool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*dispatchParam)
		if !ok {
			panic("dispatch pool args type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			dispatchParamPool.Put(param)
		}()
		param.results[param.idx] = param.registry.Dispatch(param.ctx, param.call)
	})
	if err != nil {
		return nil, fmt.Errorf("create dispatch pool: %w", err)
	}
	return pool, nil
}
