// Package query composes query strings for the hyperlocal API's query
// resources.
//
// Parameters come in two flavors. A simple parameter adds a single
// api=value fragment when its logical input is present. A negatable
// parameter has include and exclude variants: the plain input adds one
// api=value fragment per element, while the exclude input adds one
// no-api=value fragment per element. Exclude inputs are accepted under two
// spellings, "no-<input>" and "wo-<input>", and both emit no-api fragments.
package query

import (
	"net/url"
	"strings"
)

// Exclude input prefixes, in the order they are read
const (
	WithoutPrefix = "wo-"
	NoPrefix      = "no-"
)

// Mapping binds a logical input name to its wire parameter name
type Mapping struct {
	Input string
	API   string
}

// Params is a fixed parameter declaration for one resource type
type Params struct {
	simple    []Mapping
	negatable []Mapping
}

// NewParams declares simple and negatable parameters. Fragments are emitted
// in declaration order, simple parameters first.
func NewParams(simple, negatable []Mapping) *Params {
	return &Params{
		simple:    append([]Mapping(nil), simple...),
		negatable: append([]Mapping(nil), negatable...),
	}
}

// Fragments returns the encoded name=value fragments for in
func (p *Params) Fragments(in Inputs) []string {
	var frags []string

	for _, m := range p.simple {
		if v, ok := in.Value(m.Input); ok {
			frags = append(frags, fragment(m.API, v))
		}
	}

	for _, m := range p.negatable {
		if values, ok := in.List(m.Input); ok {
			for _, v := range values {
				frags = append(frags, fragment(m.API, v))
			}
		}
		for _, prefix := range []string{WithoutPrefix, NoPrefix} {
			values, ok := in.List(prefix + m.Input)
			if !ok {
				continue
			}
			for _, v := range values {
				frags = append(frags, fragment(NoPrefix+m.API, v))
			}
		}
	}

	return frags
}

// Build attaches the fragments for in to rawURL. The URL is returned
// unchanged when no fragments are produced.
func (p *Params) Build(rawURL string, in Inputs) string {
	return Append(rawURL, p.Fragments(in)...)
}

// Append joins fragments onto rawURL's query string, using "?" when the URL
// has no query yet and "&" otherwise.
func Append(rawURL string, frags ...string) string {
	if len(frags) == 0 {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + strings.Join(frags, "&")
}

func fragment(name, value string) string {
	return name + "=" + url.QueryEscape(value)
}
