package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/s0up4200/outsidein/finder"
	"github.com/s0up4200/outsidein/model"
)

// consoleFormatter renders query results as a tree
type consoleFormatter struct{}

// treeNode writes the branch for one item and returns the indent for its
// detail lines
func treeNode(sb *strings.Builder, title string, isLast bool) string {
	prefix := "\u251c"
	indent := "\u2502   "
	if isLast {
		prefix = "\u2570"
		indent = "    "
	}
	fmt.Fprintf(sb, "%s\u2500\u2500 %s\n", prefix, title)
	return indent
}

// countHeader renders "Nouns (shown)", or "Nouns (shown of total)" when
// the server reported more matches than are listed
func countHeader(singular, plural string, shown, total int) string {
	noun := plural
	if shown == 1 {
		noun = singular
	}
	if total > shown {
		return fmt.Sprintf("%s (%d of %d)", noun, shown, total)
	}
	return fmt.Sprintf("%s (%d)", noun, shown)
}

// FormatLocations formats locations for console display
func (f consoleFormatter) FormatLocations(locations []model.Location, total int) string {
	if len(locations) == 0 {
		return "No locations found\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s:\n\n", countHeader("Location", "Locations", len(locations), total))

	for i, loc := range locations {
		isLast := i == len(locations)-1
		indent := treeNode(&sb, loc.String(), isLast)

		if cat := loc.Category(); cat.Model != nil {
			fmt.Fprintf(&sb, "%sCategory: %s\n", indent, cat)
		}

		var place []string
		if loc.City() != "" {
			place = append(place, loc.City())
		}
		if loc.StateAbbrev() != "" {
			place = append(place, loc.StateAbbrev())
		} else if loc.State() != "" {
			place = append(place, loc.State())
		}
		if len(place) > 0 {
			fmt.Fprintf(&sb, "%sPlace: %s\n", indent, strings.Join(place, ", "))
		}

		if loc.Has("lat") && loc.Has("lng") {
			fmt.Fprintf(&sb, "%sCoordinates: %.4f, %.4f\n", indent, loc.Lat(), loc.Lng())
		}
		if loc.URL() != "" {
			fmt.Fprintf(&sb, "%sURL: %s\n", indent, loc.URL())
		}

		if !isLast {
			sb.WriteString("\u2502\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatStories formats stories for console display, headed by the place
// they were found for
func (f consoleFormatter) FormatStories(result *finder.StoryResult, stories []model.Story) string {
	place := storyPlace(result)
	if len(stories) == 0 {
		if place == "" {
			place = "this location"
		}
		return fmt.Sprintf("No stories found for %s\n", place)
	}

	var sb strings.Builder
	header := countHeader("Story", "Stories", len(stories), result.Total)
	if place != "" {
		header += " for " + place
	}
	fmt.Fprintf(&sb, "\n%s:\n\n", header)

	for i, story := range stories {
		isLast := i == len(stories)-1
		indent := treeNode(&sb, story.Title(), isLast)

		if story.FeedTitle() != "" {
			fmt.Fprintf(&sb, "%sFeed: %s\n", indent, story.FeedTitle())
		}
		if tags := story.Tags(); len(tags) > 0 {
			names := make([]string, len(tags))
			for j, tag := range tags {
				names[j] = tag.Name()
			}
			fmt.Fprintf(&sb, "%sTags: %s\n", indent, strings.Join(names, ", "))
		}
		if story.StoryURL() != "" {
			fmt.Fprintf(&sb, "%sURL: %s\n", indent, story.StoryURL())
		}

		if !isLast {
			sb.WriteString("\u2502\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func storyPlace(result *finder.StoryResult) string {
	if result.Location != nil {
		return result.Location.DisplayName()
	}
	names := make([]string, 0, len(result.Locations))
	for _, loc := range result.Locations {
		names = append(names, loc.DisplayName())
	}
	return strings.Join(names, ", ")
}

type locationsJSON struct {
	Total     int              `json:"total"`
	Locations []map[string]any `json:"locations"`
}

type storiesJSON struct {
	Total     int              `json:"total"`
	Location  map[string]any   `json:"location,omitempty"`
	Locations []map[string]any `json:"locations,omitempty"`
	Stories   []map[string]any `json:"stories"`
}

func locationMaps(locations []model.Location) []map[string]any {
	out := make([]map[string]any, len(locations))
	for i, loc := range locations {
		out[i] = loc.Map()
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeLocations prints locations in the selected output format
func writeLocations(w io.Writer, result *finder.LocationResult, shown []model.Location) error {
	if outputFormat == "json" {
		return writeJSON(w, locationsJSON{Total: result.Total, Locations: locationMaps(shown)})
	}
	_, err := io.WriteString(w, consoleFormatter{}.FormatLocations(shown, result.Total))
	return err
}

// writeStories prints stories in the selected output format
func writeStories(w io.Writer, result *finder.StoryResult, shown []model.Story) error {
	if outputFormat == "json" {
		out := storiesJSON{Total: result.Total, Stories: make([]map[string]any, len(shown))}
		for i, s := range shown {
			out.Stories[i] = s.Map()
		}
		if result.Location != nil {
			out.Location = result.Location.Map()
		}
		if result.Locations != nil {
			out.Locations = locationMaps(result.Locations)
		}
		return writeJSON(w, out)
	}
	_, err := io.WriteString(w, consoleFormatter{}.FormatStories(result, shown))
	return err
}
