//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

// Package registry maps tool names to type-erased tools and dispatches
// calls to them.
//
// Registering a name that already exists replaces the previous tool unless
// the registry was created with WithStrictRegistration. Lookups copy the tool
// handle under a read lock and run the tool without holding any lock, so a
// slow tool never blocks registration or other dispatches, and an in-flight
// call keeps using the tool it looked up even if the name is replaced.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-tool-go/log"
	"trpc.group/trpc-go/trpc-tool-go/model"
	"trpc.group/trpc-go/trpc-tool-go/tool"
	"trpc.group/trpc-go/trpc-tool-go/tool/adapter"
)

var (
	// ErrDuplicateTool is returned by strict registries for a name that is
	// already registered.
	ErrDuplicateTool = errors.New("registry: duplicate tool name")
	// ErrInvalidName is returned for tools with an empty name.
	ErrInvalidName = errors.New("registry: invalid tool name")
)

// entry is never mutated after insertion.
type entry struct {
	tool tool.Erased
	decl *tool.Declaration
}

// Registry is a concurrency-safe collection of tools keyed by name.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry

	opts options
	pool *ants.PoolWithFunc
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{entries: make(map[string]*entry)}
	for _, opt := range opts {
		opt(&r.opts)
	}
	if r.opts.concurrency > 1 {
		pool, err := createDispatchPool(r.opts.concurrency)
		if err != nil {
			log.Errorf("registry: %v, batches run sequentially", err)
		} else {
			r.pool = pool
		}
	}
	return r
}

// Register wraps t in an adapter and adds it to r. Schemas are generated
// here, once; the tool is not executed.
func Register[I, O any](r *Registry, t tool.Typed[I, O], opts ...adapter.Option) error {
	if adapter.IsNil(t) {
		return fmt.Errorf("registry: %w", adapter.ErrNilTool)
	}
	if t.Name() == "" {
		return ErrInvalidName
	}
	all := make([]adapter.Option, 0, len(r.opts.adapterOptions)+len(opts))
	all = append(all, r.opts.adapterOptions...)
	all = append(all, opts...)
	a, err := adapter.New(t, all...)
	if err != nil {
		return fmt.Errorf("registry: register %s: %w", t.Name(), err)
	}
	return r.Add(a)
}

// MustRegister is like Register but panics on error.
func MustRegister[I, O any](r *Registry, t tool.Typed[I, O], opts ...adapter.Option) {
	if err := Register(r, t, opts...); err != nil {
		panic(err)
	}
}

// Add registers an already erased tool.
func (r *Registry) Add(t tool.Erased) error {
	if adapter.IsNil(t) {
		return fmt.Errorf("registry: %w", adapter.ErrNilTool)
	}
	name := t.Name()
	if name == "" {
		return ErrInvalidName
	}
	decl := t.Declaration().Clone()
	if decl == nil {
		decl = &tool.Declaration{Name: name}
	}
	e := &entry{tool: t, decl: decl}

	r.mu.Lock()
	_, exists := r.entries[name]
	if exists && r.opts.strict {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateTool, name)
	}
	r.entries[name] = e
	r.mu.Unlock()

	if exists {
		log.Warnf("registry: tool %s replaced by a new registration", name)
	} else {
		log.Debugf("registry: tool %s registered", name)
	}
	return nil
}

// Remove unregisters name and reports whether it was registered. Calls
// already dispatched to it run to completion.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; !ok {
		return false
	}
	delete(r.entries, name)
	return true
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Contains reports whether name is registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (tool.Erased, bool) {
	e, ok := r.lookup(name)
	if !ok {
		return nil, false
	}
	return e.tool, true
}

// Names returns the registered names in ascending order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Declarations returns a snapshot of the declarations accepted by filters,
// sorted by name. Each element is a copy owned by the caller.
func (r *Registry) Declarations(filters ...tool.FilterFunc) []*tool.Declaration {
	r.mu.RLock()
	decls := make([]*tool.Declaration, 0, len(r.entries))
	for _, e := range r.entries {
		decls = append(decls, e.decl.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(decls, func(i, j int) bool { return decls[i].Name < decls[j].Name })
	return tool.FilterDeclarations(decls, filters...)
}

// ToolDefinitions returns the declarations in chat request wire shape.
func (r *Registry) ToolDefinitions(filters ...tool.FilterFunc) []model.ToolDefinition {
	decls := r.Declarations(filters...)
	defs := make([]model.ToolDefinition, 0, len(decls))
	for _, decl := range decls {
		defs = append(defs, model.ToolDefinitionFrom(decl))
	}
	return defs
}

// Close releases the batch worker pool. The registry stays usable and runs
// later batches sequentially.
func (r *Registry) Close() {
	if r.pool != nil {
		r.pool.Release()
	}
}

func (r *Registry) lookup(name string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}
