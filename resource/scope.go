package resource

import (
	"net/url"
	"strings"

	"github.com/s0up4200/outsidein/query"
)

// PublicationInput is the input key that scopes a query to a publication
const PublicationInput = "publication-id"

// Scoper rewrites a resource URL to restrict results to a tenant context
type Scoper interface {
	Scope(rawURL string, in query.Inputs) string
}

// ScoperFunc adapts a function to the Scoper interface
type ScoperFunc func(rawURL string, in query.Inputs) string

// Scope implements Scoper
func (f ScoperFunc) Scope(rawURL string, in query.Inputs) string {
	return f(rawURL, in)
}

// Unscoped leaves URLs unchanged
var Unscoped Scoper = ScoperFunc(func(rawURL string, _ query.Inputs) string {
	return rawURL
})

// PublicationSuffix appends /publications/{id} to the URL. Location queries
// scope this way.
var PublicationSuffix Scoper = ScoperFunc(func(rawURL string, in query.Inputs) string {
	id, ok := in.Value(PublicationInput)
	if !ok {
		return rawURL
	}
	return rawURL + publicationSegment(id)
})

// PublicationBeforeStories inserts /publications/{id} before a trailing
// /stories segment. Story queries scope this way; URLs without the trailing
// segment are left unchanged.
var PublicationBeforeStories Scoper = ScoperFunc(func(rawURL string, in query.Inputs) string {
	id, ok := in.Value(PublicationInput)
	if !ok {
		return rawURL
	}
	const stories = "/stories"
	base, found := strings.CutSuffix(rawURL, stories)
	if !found {
		return rawURL
	}
	return base + publicationSegment(id) + stories
})

func publicationSegment(id string) string {
	return "/publications/" + url.PathEscape(id)
}
