//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package schema

import (
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchInput struct {
	Query string `json:"query" jsonschema:"description=Search terms"`
	Limit int    `json:"limit,omitempty"`
}

func TestInvopopGenerator_ExpandsRoot(t *testing.T) {
	s, err := NewInvopopGenerator().Generate(TypeOf[searchInput]())
	require.NoError(t, err)

	assert.Equal(t, "object", s.Type)
	assert.Empty(t, s.Ref)
	require.Contains(t, s.Properties, "query")
	assert.Equal(t, "string", s.Properties["query"].Type)
	assert.Equal(t, "Search terms", s.Properties["query"].Description)
	assert.Equal(t, "integer", s.Properties["limit"].Type)
	assert.Equal(t, []string{"query"}, s.Required)
}

func TestInvopopGenerator_PointerRoot(t *testing.T) {
	s, err := NewInvopopGenerator().Generate(TypeOf[*searchInput]())
	require.NoError(t, err)
	assert.Equal(t, "object", s.Type)
}

func TestInvopopGenerator_CustomReflector(t *testing.T) {
	g := NewInvopopGenerator(WithReflector(&jsonschema.Reflector{
		ExpandedStruct:             true,
		Anonymous:                  true,
		RequiredFromJSONSchemaTags: true,
	}))
	s, err := g.Generate(TypeOf[searchInput]())
	require.NoError(t, err)
	assert.Empty(t, s.Required)
}

func TestInvopopGenerator_NilType(t *testing.T) {
	_, err := NewInvopopGenerator().Generate(nil)
	assert.Error(t, err)
}
