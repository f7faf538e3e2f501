// Package finder exposes typed queries over the hyperlocal API's location
// and story resources.
//
// Each finder binds a resource.Client to an endpoint descriptor: the
// scoping rule and the parameter declaration for that resource. Query
// methods build the resource path from their arguments, issue one request
// and materialize the envelope into model values.
package finder

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/s0up4200/outsidein/query"
	"github.com/s0up4200/outsidein/resource"
)

// Getter performs resource requests; *resource.Client implements it
type Getter interface {
	Get(ctx context.Context, ep resource.Endpoint, path string, in query.Inputs) (map[string]any, error)
}

// LocationEndpoint scopes by appending the publication to the path
var LocationEndpoint = resource.Endpoint{
	Name:   "locations",
	Scoper: resource.PublicationSuffix,
	Params: query.NewParams(
		[]query.Mapping{{Input: inputLimit, API: "limit"}},
		[]query.Mapping{{Input: inputCategory, API: "category"}},
	),
}

// StoryEndpoint scopes by inserting the publication before /stories
var StoryEndpoint = resource.Endpoint{
	Name:   "stories",
	Scoper: resource.PublicationBeforeStories,
	Params: query.NewParams(
		[]query.Mapping{
			{Input: inputLimit, API: "limit"},
			{Input: inputMaxAge, API: "max_age"},
		},
		[]query.Mapping{
			{Input: inputKeyword, API: "keyword"},
			{Input: inputVertical, API: "vertical"},
			{Input: inputFormat, API: "format"},
			{Input: inputAuthorType, API: "author-type"},
		},
	),
}

// LocationFinder queries locations
type LocationFinder struct {
	client Getter
}

// NewLocationFinder creates a LocationFinder
func NewLocationFinder(client Getter) *LocationFinder {
	return &LocationFinder{client: client}
}

// Named returns the locations matching name
func (f *LocationFinder) Named(ctx context.Context, name string, opts LocationOptions) (*LocationResult, error) {
	data, err := f.client.Get(ctx, LocationEndpoint, "/locations/named/"+url.PathEscape(name), opts.Inputs())
	if err != nil {
		return nil, err
	}
	return locationResult(data)
}

// StoryFinder queries stories
type StoryFinder struct {
	client Getter
}

// NewStoryFinder creates a StoryFinder
func NewStoryFinder(client Getter) *StoryFinder {
	return &StoryFinder{client: client}
}

// ForState returns the stories attached to a state, by name or postal
// abbreviation
func (f *StoryFinder) ForState(ctx context.Context, state string, opts StoryOptions) (*StoryResult, error) {
	return f.find(ctx, opts, "states", state)
}

// ForCity returns the stories attached to a city in a state
func (f *StoryFinder) ForCity(ctx context.Context, state, city string, opts StoryOptions) (*StoryResult, error) {
	return f.find(ctx, opts, "states", state, "cities", city)
}

// ForNabe returns the stories attached to a neighborhood of a city
func (f *StoryFinder) ForNabe(ctx context.Context, state, city, nabe string, opts StoryOptions) (*StoryResult, error) {
	return f.find(ctx, opts, "states", state, "cities", city, "nabes", nabe)
}

// ForZipCode returns the stories attached to a zip code
func (f *StoryFinder) ForZipCode(ctx context.Context, zip string, opts StoryOptions) (*StoryResult, error) {
	return f.find(ctx, opts, "zipcodes", zip)
}

// ForUUIDs returns the stories attached to any of the identified locations.
// The result carries one scoping location per identifier.
func (f *StoryFinder) ForUUIDs(ctx context.Context, ids []uuid.UUID, opts StoryOptions) (*StoryResult, error) {
	if len(ids) == 0 {
		return nil, ErrNoLocations
	}
	guids := make([]string, len(ids))
	for i, id := range ids {
		guids[i] = url.PathEscape(id.String())
	}
	return f.get(ctx, "/locations/"+strings.Join(guids, ",")+"/stories", opts)
}

// find escapes each segment and appends the trailing /stories segment
func (f *StoryFinder) find(ctx context.Context, opts StoryOptions, segments ...string) (*StoryResult, error) {
	var sb strings.Builder
	for i, seg := range segments {
		sb.WriteString("/")
		if i%2 == 1 {
			seg = url.PathEscape(seg)
		}
		sb.WriteString(seg)
	}
	sb.WriteString("/stories")
	return f.get(ctx, sb.String(), opts)
}

func (f *StoryFinder) get(ctx context.Context, path string, opts StoryOptions) (*StoryResult, error) {
	data, err := f.client.Get(ctx, StoryEndpoint, path, opts.Inputs())
	if err != nil {
		return nil, err
	}
	return storyResult(data)
}
