//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package tool

// FilterFunc selects declarations, e.g. when building the tool list for a request.
type FilterFunc func(decl *Declaration) bool

// FilterDeclarations returns the declarations accepted by every filter.
func FilterDeclarations(decls []*Declaration, filters ...FilterFunc) []*Declaration {
	if len(filters) == 0 {
		return decls
	}
	filtered := make([]*Declaration, 0, len(decls))
	for _, decl := range decls {
		if acceptAll(decl, filters) {
			filtered = append(filtered, decl)
		}
	}
	return filtered
}

func acceptAll(decl *Declaration, filters []FilterFunc) bool {
	for _, f := range filters {
		if f != nil && !f(decl) {
			return false
		}
	}
	return true
}

// IncludeNames creates a FilterFunc that includes only the specified tool names.
func IncludeNames(names ...string) FilterFunc {
	allowed := make(map[string]struct{}, len(names))
	for _, name := range names {
		allowed[name] = struct{}{}
	}
	return func(decl *Declaration) bool {
		if decl == nil {
			return false
		}
		_, ok := allowed[decl.Name]
		return ok
	}
}

// ExcludeNames creates a FilterFunc that excludes the specified tool names.
func ExcludeNames(names ...string) FilterFunc {
	excluded := make(map[string]struct{}, len(names))
	for _, name := range names {
		excluded[name] = struct{}{}
	}
	return func(decl *Declaration) bool {
		if decl == nil {
			return false
		}
		_, ok := excluded[decl.Name]
		return !ok
	}
}
