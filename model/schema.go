package model

// Type coerces a raw decoded JSON value into a richer value. A Schema is
// itself a Type: raw objects become Models of that schema.
type Type interface {
	Coerce(raw any) any
}

// attribute is a single declared schema entry
type attribute struct {
	name   string
	nested Type
}

// Schema declares which attributes a model has and how their raw values are
// coerced. Schemas are built once with a SchemaBuilder and never change.
type Schema struct {
	name  string
	attrs []attribute
	index map[string]int
}

// SchemaBuilder collects attribute declarations for a Schema
type SchemaBuilder struct {
	name  string
	attrs []attribute
	index map[string]int
}

// NewSchema starts a schema declaration for the named model type
func NewSchema(name string) *SchemaBuilder {
	return &SchemaBuilder{
		name:  name,
		index: make(map[string]int),
	}
}

// Declare registers an attribute. An optional nested type coerces the raw
// value (or each element of a raw sequence). Declaring the same name again
// replaces its nested type but keeps its original position.
func (b *SchemaBuilder) Declare(name string, nested ...Type) *SchemaBuilder {
	var t Type
	if len(nested) > 0 {
		t = nested[0]
	}

	if i, ok := b.index[name]; ok {
		b.attrs[i].nested = t
		return b
	}

	b.index[name] = len(b.attrs)
	b.attrs = append(b.attrs, attribute{name: name, nested: t})
	return b
}

// Build returns the immutable schema. The builder may keep being used
// without affecting schemas it already built.
func (b *SchemaBuilder) Build() *Schema {
	s := &Schema{
		name:  b.name,
		attrs: make([]attribute, len(b.attrs)),
		index: make(map[string]int, len(b.attrs)),
	}
	copy(s.attrs, b.attrs)
	for i, a := range s.attrs {
		s.index[a.name] = i
	}
	return s
}

// Name returns the model type name
func (s *Schema) Name() string {
	return s.name
}

// Attributes returns the declared attribute names in declaration order
func (s *Schema) Attributes() []string {
	names := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		names[i] = a.name
	}
	return names
}

// Declared reports whether name is an attribute of the schema
func (s *Schema) Declared(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Nested returns the nested type of an attribute, or nil when the attribute
// is primitive or not declared.
func (s *Schema) Nested(name string) Type {
	if i, ok := s.index[name]; ok {
		return s.attrs[i].nested
	}
	return nil
}

// Materialize builds a Model from a decoded JSON object. Only declared
// attributes present in raw are set. Raw values are not validated, and the
// model keeps no references into raw.
func (s *Schema) Materialize(raw map[string]any) *Model {
	m := &Model{
		schema: s,
		values: make(map[string]any, len(s.attrs)),
	}

	for _, a := range s.attrs {
		v, ok := raw[a.name]
		if !ok {
			continue
		}
		m.values[a.name] = coerce(a.nested, v)
	}

	return m
}

// Coerce implements Type. Values that are not JSON objects are returned
// unchanged.
func (s *Schema) Coerce(raw any) any {
	obj, ok := raw.(map[string]any)
	if !ok {
		return raw
	}
	return s.Materialize(obj)
}

// coerce returns a value that shares no maps or slices with v
func coerce(t Type, v any) any {
	if t == nil || v == nil {
		return clone(v)
	}

	if seq, ok := v.([]any); ok {
		out := make([]any, len(seq))
		for i, elem := range seq {
			if elem == nil {
				continue
			}
			out[i] = clone(t.Coerce(elem))
		}
		return out
	}

	return clone(t.Coerce(v))
}

// clone deep-copies decoded JSON objects and arrays. Other values,
// including Models, are returned as is.
func clone(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = clone(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = clone(elem)
		}
		return out
	}
	return v
}
