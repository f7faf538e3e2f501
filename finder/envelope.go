package finder

import (
	"errors"
	"fmt"

	"github.com/s0up4200/outsidein/model"
)

// ErrMalformedEnvelope indicates a success response that does not have the
// documented envelope shape
var ErrMalformedEnvelope = errors.New("malformed response envelope")

// ErrNoLocations is returned by ForUUIDs when no identifiers are given
var ErrNoLocations = errors.New("at least one location uuid is required")

// LocationResult is the outcome of a location query
type LocationResult struct {
	// Total is the number of matching locations, which may exceed len(Locations)
	Total     int
	Locations []model.Location
}

// StoryResult is the outcome of a story query. Location is set for queries
// scoped to a single place; Locations is set only for queries by a list of
// location identifiers.
type StoryResult struct {
	// Total is the number of matching stories, which may exceed len(Stories)
	Total     int
	Stories   []model.Story
	Location  *model.Location
	Locations []model.Location
}

func locationResult(data map[string]any) (*LocationResult, error) {
	total, err := envelopeTotal(data)
	if err != nil {
		return nil, err
	}
	raw, err := envelopeList(data, "locations")
	if err != nil {
		return nil, err
	}

	result := &LocationResult{Total: total, Locations: make([]model.Location, len(raw))}
	for i, obj := range raw {
		result.Locations[i] = model.NewLocation(obj)
	}
	return result, nil
}

func storyResult(data map[string]any) (*StoryResult, error) {
	total, err := envelopeTotal(data)
	if err != nil {
		return nil, err
	}
	raw, err := envelopeList(data, "stories")
	if err != nil {
		return nil, err
	}

	result := &StoryResult{Total: total, Stories: make([]model.Story, len(raw))}
	for i, obj := range raw {
		result.Stories[i] = model.NewStory(obj)
	}

	if _, ok := data["locations"]; ok {
		locs, err := envelopeList(data, "locations")
		if err != nil {
			return nil, err
		}
		result.Locations = make([]model.Location, len(locs))
		for i, obj := range locs {
			result.Locations[i] = model.NewLocation(obj)
		}
		return result, nil
	}

	obj, ok := data["location"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing location object", ErrMalformedEnvelope)
	}
	loc := model.NewLocation(obj)
	result.Location = &loc
	return result, nil
}

func envelopeTotal(data map[string]any) (int, error) {
	total, ok := data["total"].(float64)
	if !ok {
		return 0, fmt.Errorf("%w: missing total", ErrMalformedEnvelope)
	}
	return int(total), nil
}

func envelopeList(data map[string]any, key string) ([]map[string]any, error) {
	seq, ok := data[key].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a list", ErrMalformedEnvelope, key)
	}
	out := make([]map[string]any, len(seq))
	for i, elem := range seq {
		obj, ok := elem.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is not an object", ErrMalformedEnvelope, key, i)
		}
		out[i] = obj
	}
	return out, nil
}
