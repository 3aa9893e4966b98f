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
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"trpc.group/trpc-go/trpc-tool-go/log"
	"trpc.group/trpc-go/trpc-tool-go/tool"
)

var (
	timeType       = reflect.TypeOf(time.Time{})
	rawMessageType = reflect.TypeOf(json.RawMessage(nil))
)

// ReflectGenerator builds schemas by walking a type with reflection.
//
// Field names follow `json` tags. A field is required unless it is a pointer
// or tagged omitempty, or when tagged `jsonschema:"required"`. The
// `jsonschema` tag also accepts description=..., enum=... (repeatable) and
// format=... . Self-referencing structs are emitted once under $defs and
// referenced with $ref.
type ReflectGenerator struct{}

// NewReflectGenerator creates a ReflectGenerator.
func NewReflectGenerator() *ReflectGenerator {
	return &ReflectGenerator{}
}

// Generate implements Generator.
func (g *ReflectGenerator) Generate(t reflect.Type) (*tool.Schema, error) {
	if t == nil {
		return nil, errors.New("schema: nil type")
	}
	b := &builder{
		visiting:  make(map[reflect.Type]bool),
		recursive: make(map[reflect.Type]string),
		defs:      make(map[string]*tool.Schema),
		usedNames: make(map[string]reflect.Type),
	}
	root := b.schemaFor(t, true)
	if len(b.defs) > 0 {
		root.Defs = b.defs
	}
	return root, nil
}

// builder tracks state for one Generate call.
type builder struct {
	visiting  map[reflect.Type]bool   // structs currently being expanded
	recursive map[reflect.Type]string // structs that reference themselves -> def name
	defs      map[string]*tool.Schema // emitted $defs
	usedNames map[string]reflect.Type // def name ownership
}

func (b *builder) schemaFor(t reflect.Type, isRoot bool) *tool.Schema {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch {
	case t == timeType:
		return &tool.Schema{Type: "string", Format: "date-time"}
	case t == rawMessageType:
		return &tool.Schema{}
	}

	switch t.Kind() {
	case reflect.String:
		return &tool.Schema{Type: "string"}
	case reflect.Bool:
		return &tool.Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &tool.Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &tool.Schema{Type: "number"}
	case reflect.Slice, reflect.Array:
		if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
			// encoding/json writes []byte as base64.
			return &tool.Schema{Type: "string", Format: "byte"}
		}
		return &tool.Schema{Type: "array", Items: b.schemaFor(t.Elem(), false)}
	case reflect.Map:
		return &tool.Schema{Type: "object", AdditionalProperties: b.schemaFor(t.Elem(), false)}
	case reflect.Struct:
		return b.structSchema(t, isRoot)
	case reflect.Interface:
		return &tool.Schema{}
	default:
		log.Warnf("schema: unsupported kind %s for type %s, emitting an empty schema", t.Kind(), t)
		return &tool.Schema{}
	}
}

func (b *builder) structSchema(t reflect.Type, isRoot bool) *tool.Schema {
	if name, ok := b.recursive[t]; ok {
		return refTo(name)
	}
	if b.visiting[t] {
		// Reached t again while expanding it.
		name := b.defName(t)
		b.recursive[t] = name
		return refTo(name)
	}

	b.visiting[t] = true
	s := &tool.Schema{Type: "object", Properties: make(map[string]*tool.Schema)}
	b.collectFields(t, s, map[reflect.Type]bool{t: true})
	delete(b.visiting, t)

	name, isRecursive := b.recursive[t]
	if !isRecursive {
		return s
	}
	def := *s
	b.defs[name] = &def
	if isRoot {
		return s
	}
	return refTo(name)
}

// collectFields adds the fields of t to s. flattened holds the struct types
// already merged into s; an embedded type is flattened at most once, so
// self-embedding types terminate.
func (b *builder) collectFields(t reflect.Type, s *tool.Schema, flattened map[reflect.Type]bool) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name, omitEmpty := parseJSONTag(jsonTag)

		// Untagged embedded structs are flattened, as encoding/json does.
		if field.Anonymous && name == "" {
			ft := field.Type
			for ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if !flattened[ft] {
					flattened[ft] = true
					b.collectFields(ft, s, flattened)
				}
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}

		fieldSchema := b.schemaFor(field.Type, false)
		required := field.Type.Kind() != reflect.Ptr && !omitEmpty
		if fieldSchema.Ref == "" {
			requiredByTag, err := applyJSONSchemaTag(field.Type, field.Tag, fieldSchema)
			if err != nil {
				log.Errorf("schema: jsonschema tag on field %s.%s: %v", t.Name(), field.Name, err)
			}
			required = required || requiredByTag
		}

		if _, dup := s.Properties[name]; !dup && required {
			s.Required = append(s.Required, name)
		}
		s.Properties[name] = fieldSchema
	}
}

func (b *builder) defName(t reflect.Type) string {
	base := "anonymousStruct"
	if t.Name() != "" {
		base = strings.ToLower(t.Name())
	}
	name := base
	for i := 2; ; i++ {
		owner, taken := b.usedNames[name]
		if !taken || owner == t {
			break
		}
		name = base + strconv.Itoa(i)
	}
	b.usedNames[name] = t
	return name
}

func refTo(name string) *tool.Schema {
	return &tool.Schema{Ref: "#/$defs/" + name}
}

func parseJSONTag(tag string) (name string, omitEmpty bool) {
	if tag == "" {
		return "", false
	}
	parts := strings.Split(tag, ",")
	for _, opt := range parts[1:] {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	return parts[0], omitEmpty
}

// applyJSONSchemaTag applies a `jsonschema` struct tag to s and reports
// whether the tag marks the field as required.
//
// Enum values are converted to the field's kind; enum is supported for
// string, integer, float and bool fields.
func applyJSONSchemaTag(fieldType reflect.Type, tag reflect.StructTag, s *tool.Schema) (bool, error) {
	raw := tag.Get("jsonschema")
	if raw == "" {
		return false, nil
	}
	for fieldType.Kind() == reflect.Ptr {
		fieldType = fieldType.Elem()
	}

	required := false
	for _, item := range strings.Split(raw, ",") {
		key, value, hasValue := strings.Cut(item, "=")
		if !hasValue {
			if key == "required" {
				required = true
			}
			continue
		}
		switch key {
		case "description":
			s.Description = value
		case "format":
			s.Format = value
		case "enum":
			v, err := enumValue(fieldType, value)
			if err != nil {
				return required, err
			}
			s.Enum = append(s.Enum, v)
		}
	}
	return required, nil
}

func enumValue(t reflect.Type, value string) (any, error) {
	switch t.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to int64 failed: %w", value, err)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to float64 failed: %w", value, err)
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to bool failed: %w", value, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("enum tag unsupported for field type: %v", t)
	}
}
