// Package filter narrows query results client side with expr-lang
// expressions.
//
// An expression sees every attribute of the model by name, the whole
// attribute map as Attrs, and these helpers:
//
//	hasTag(name)          story carries a tag with that name (case-insensitive)
//	icontains(s, substr)  case-insensitive substring match
//	present(name)         the attribute was present in the response
//
// Native operators such as contains, startsWith, endsWith, matches and
// the lower/upper builtins are available as well:
//
//	title contains "fire" and not hasTag("sponsored")
//	state_abbrev == "NY" and category.name == "nabe"
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/outsidein/model"
)

// Filter is a compiled filter expression. A nil Filter matches everything.
type Filter struct {
	program *vm.Program
	expr    string
}

// Compile compiles a filter expression. An empty expression yields a nil
// Filter that matches everything.
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, nil
	}

	program, err := expr.Compile(expression,
		expr.Env(helpers(nil)),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Err: err}
	}

	return &Filter{program: program, expr: expression}, nil
}

// Match reports whether the model satisfies the expression. Evaluation
// errors, such as comparing a missing attribute, count as no match.
func (f *Filter) Match(m *model.Model) bool {
	if f == nil {
		return true
	}

	attrs := m.Map()
	env := helpers(m)
	for name, value := range attrs {
		if _, reserved := env[name]; !reserved {
			env[name] = value
		}
	}
	env["Attrs"] = attrs

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}
	matched, ok := result.(bool)
	return ok && matched
}

// String returns the original expression
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.expr
}

// Stories returns the stories matching f, in order
func Stories(f *Filter, stories []model.Story) []model.Story {
	if f == nil {
		return stories
	}
	out := make([]model.Story, 0, len(stories))
	for _, s := range stories {
		if f.Match(s.Model) {
			out = append(out, s)
		}
	}
	return out
}

// Locations returns the locations matching f, in order
func Locations(f *Filter, locations []model.Location) []model.Location {
	if f == nil {
		return locations
	}
	out := make([]model.Location, 0, len(locations))
	for _, l := range locations {
		if f.Match(l.Model) {
			out = append(out, l)
		}
	}
	return out
}

// helpers builds the function table bound to m. A nil m yields the same
// signatures for type checking at compile time.
func helpers(m *model.Model) map[string]any {
	return map[string]any{
		"Attrs": map[string]any{},
		"hasTag": func(name string) bool {
			if m == nil {
				return false
			}
			for _, tag := range m.Models("tags") {
				if strings.EqualFold(tag.String("name"), name) {
					return true
				}
			}
			return false
		},
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"present": func(name string) bool {
			return m != nil && m.Has(name)
		},
	}
}

// Compiler compiles expressions and keeps the most recently used programs
type Compiler struct {
	cache *lruCache
}

// NewCompiler creates a Compiler caching up to size programs
func NewCompiler(size int) *Compiler {
	if size <= 0 {
		size = 100
	}
	return &Compiler{cache: newLRUCache(size)}
}

// Compile returns the cached Filter for expression, compiling it on a miss
func (c *Compiler) Compile(expression string) (*Filter, error) {
	if cached, ok := c.cache.Get(expression); ok {
		return cached, nil
	}

	f, err := Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	c.cache.Put(expression, f)
	return f, nil
}

// Len returns the number of cached programs
func (c *Compiler) Len() int {
	return c.cache.Size()
}
