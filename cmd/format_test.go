package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/outsidein/finder"
	"github.com/s0up4200/outsidein/model"
)

func TestFormatLocations(t *testing.T) {
	locations := []model.Location{
		model.NewLocation(map[string]any{
			"display_name": "Park Slope",
			"uuid":         "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			"city":         "Brooklyn",
			"state_abbrev": "NY",
			"lat":          40.671,
			"lng":          -73.977,
			"category":     map[string]any{"name": "nabe", "display_name": "Neighborhood"},
		}),
		model.NewLocation(map[string]any{
			"display_name": "11215",
			"uuid":         "6ba7b811-9dad-11d1-80b4-00c04fd430c8",
		}),
	}

	want := "\nLocations (2 of 5):\n\n" +
		"├── Park Slope (6ba7b810-9dad-11d1-80b4-00c04fd430c8)\n" +
		"│   Category: Neighborhood\n" +
		"│   Place: Brooklyn, NY\n" +
		"│   Coordinates: 40.6710, -73.9770\n" +
		"│\n" +
		"╰── 11215 (6ba7b811-9dad-11d1-80b4-00c04fd430c8)\n" +
		"\n"
	assert.Equal(t, want, consoleFormatter{}.FormatLocations(locations, 5))

	assert.Equal(t, "No locations found\n", consoleFormatter{}.FormatLocations(nil, 0))
}

func TestFormatStories(t *testing.T) {
	loc := model.NewLocation(map[string]any{"display_name": "Park Slope"})
	result := &finder.StoryResult{Total: 1, Location: &loc}
	stories := []model.Story{model.NewStory(map[string]any{
		"title":      "Parade on Fifth",
		"feed_title": "Brooklyn Paper",
		"story_url":  "http://example.com/parade",
		"tags":       []any{map[string]any{"name": "events"}, map[string]any{"name": "parade"}},
	})}

	want := "\nStory (1) for Park Slope:\n\n" +
		"╰── Parade on Fifth\n" +
		"    Feed: Brooklyn Paper\n" +
		"    Tags: events, parade\n" +
		"    URL: http://example.com/parade\n" +
		"\n"
	assert.Equal(t, want, consoleFormatter{}.FormatStories(result, stories))

	multi := &finder.StoryResult{Locations: []model.Location{
		model.NewLocation(map[string]any{"display_name": "Park Slope"}),
		model.NewLocation(map[string]any{"display_name": "Gowanus"}),
	}}
	assert.Equal(t, "No stories found for Park Slope, Gowanus\n", consoleFormatter{}.FormatStories(multi, nil))
	assert.Equal(t, "No stories found for this location\n", consoleFormatter{}.FormatStories(&finder.StoryResult{}, nil))
}

func TestWriteStoriesJSON(t *testing.T) {
	saved := outputFormat
	outputFormat = "json"
	t.Cleanup(func() { outputFormat = saved })

	loc := model.NewLocation(map[string]any{"display_name": "Park Slope", "uuid": "6ba7b810-9dad-11d1-80b4-00c04fd430c8"})
	result := &finder.StoryResult{
		Total:    3,
		Location: &loc,
		Stories:  []model.Story{model.NewStory(map[string]any{"title": "a"}), model.NewStory(map[string]any{"title": "b"})},
	}

	var buf bytes.Buffer
	require.NoError(t, writeStories(&buf, result, result.Stories[1:]))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, float64(3), got["total"])
	assert.Equal(t, map[string]any{"display_name": "Park Slope", "uuid": "6ba7b810-9dad-11d1-80b4-00c04fd430c8"}, got["location"])
	assert.Equal(t, []any{map[string]any{"title": "b"}}, got["stories"])
	assert.NotContains(t, got, "locations")
}

func TestWriteLocationsText(t *testing.T) {
	saved := outputFormat
	outputFormat = "text"
	t.Cleanup(func() { outputFormat = saved })

	var buf bytes.Buffer
	require.NoError(t, writeLocations(&buf, &finder.LocationResult{}, nil))
	assert.Equal(t, "No locations found\n", buf.String())
}
