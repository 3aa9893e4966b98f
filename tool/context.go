//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package tool

import "context"

// ContextKeyCallID is the context key under which the registry stores the ID
// of the call being dispatched.
type ContextKeyCallID struct{}

// ContextWithCallID returns a context carrying the call ID.
func ContextWithCallID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeyCallID{}, id)
}

// CallIDFromContext retrieves the call ID from context.
// Returns the call ID and true if found, empty string and false otherwise.
func CallIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextKeyCallID{}).(string)
	return id, ok
}
