package query

// Inputs holds query inputs keyed by logical parameter name. Scalar values
// feed simple parameters; string lists feed negatable parameters. The zero
// value is ready to use.
type Inputs struct {
	values map[string]string
	lists  map[string][]string
}

// Set stores a scalar input
func (in *Inputs) Set(name, value string) *Inputs {
	if in.values == nil {
		in.values = make(map[string]string)
	}
	in.values[name] = value
	return in
}

// SetList stores a list input. An empty list is ignored.
func (in *Inputs) SetList(name string, values ...string) *Inputs {
	if len(values) == 0 {
		return in
	}
	if in.lists == nil {
		in.lists = make(map[string][]string)
	}
	in.lists[name] = append([]string(nil), values...)
	return in
}

// Value returns a scalar input
func (in Inputs) Value(name string) (string, bool) {
	v, ok := in.values[name]
	return v, ok
}

// List returns a list input
func (in Inputs) List(name string) ([]string, bool) {
	v, ok := in.lists[name]
	return v, ok
}

// Has reports whether any input is stored under name
func (in Inputs) Has(name string) bool {
	if _, ok := in.values[name]; ok {
		return true
	}
	_, ok := in.lists[name]
	return ok
}

// Len returns the number of stored inputs
func (in Inputs) Len() int {
	return len(in.values) + len(in.lists)
}
