package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Model is a read-only set of attribute values materialized from a Schema
type Model struct {
	schema *Schema
	values map[string]any
}

// Schema returns the schema the model was built from
func (m *Model) Schema() *Schema {
	return m.schema
}

// Get returns the value of an attribute and whether it was set. Sequences
// and objects are returned as copies.
func (m *Model) Get(name string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[name]
	return clone(v), ok
}

// Has reports whether the attribute was present in the raw data
func (m *Model) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Attributes returns the names of set attributes in schema order
func (m *Model) Attributes() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.values))
	for _, a := range m.schema.attrs {
		if _, ok := m.values[a.name]; ok {
			names = append(names, a.name)
		}
	}
	return names
}

// String returns a primitive attribute formatted as a string. Unset and nil
// attributes yield "".
func (m *Model) String(name string) string {
	v, ok := m.Get(name)
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case uuid.UUID:
		return val.String()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// Float returns a numeric attribute, or 0 when unset or not a number
func (m *Model) Float(name string) float64 {
	v, _ := m.Get(name)
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	}
	return 0
}

// UUID returns a uuid-typed attribute, or uuid.Nil when unset or unparseable
func (m *Model) UUID(name string) uuid.UUID {
	v, _ := m.Get(name)
	if id, ok := v.(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// Model returns a single nested model attribute
func (m *Model) Model(name string) *Model {
	v, _ := m.Get(name)
	nested, _ := v.(*Model)
	return nested
}

// Models returns a sequence of nested model attributes. A single nested
// model is returned as a one-element slice.
func (m *Model) Models(name string) []*Model {
	v, _ := m.Get(name)
	switch val := v.(type) {
	case *Model:
		return []*Model{val}
	case []any:
		out := make([]*Model, 0, len(val))
		for _, elem := range val {
			if nested, ok := elem.(*Model); ok {
				out = append(out, nested)
			}
		}
		return out
	}
	return nil
}

// Map returns a copy of the set attributes with nested models converted back
// to plain maps, suitable for JSON output and filter environments.
func (m *Model) Map() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m.values))
	for k, v := range m.values {
		out[k] = plain(v)
	}
	return out
}

func plain(v any) any {
	switch val := v.(type) {
	case *Model:
		return val.Map()
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = plain(elem)
		}
		return out
	case uuid.UUID:
		return val.String()
	default:
		return clone(val)
	}
}

// uuidType coerces string identifiers into uuid.UUID values
type uuidType struct{}

// UUID is the nested type for identifier attributes. Strings that do not
// parse as UUIDs are kept unchanged.
var UUID Type = uuidType{}

func (uuidType) Coerce(raw any) any {
	s, ok := raw.(string)
	if !ok {
		return raw
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return raw
	}
	return id
}
