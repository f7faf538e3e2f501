package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Schemas for the hyperlocal content models
var (
	CategorySchema = NewSchema("category").
			Declare("name").
			Declare("display_name").
			Build()

	TagSchema = NewSchema("tag").
			Declare("name").
			Build()

	LocationSchema = NewSchema("location").
			Declare("city").
			Declare("display_name").
			Declare("lat").
			Declare("lng").
			Declare("state").
			Declare("state_abbrev").
			Declare("url").
			Declare("url_name").
			Declare("category", CategorySchema).
			Declare("uuid", UUID).
			Build()

	StorySchema = NewSchema("story").
			Declare("feed_title").
			Declare("feed_url").
			Declare("story_url").
			Declare("summary").
			Declare("title").
			Declare("uuid", UUID).
			Declare("tags", TagSchema).
			Build()
)

// Category describes a location's place in the location hierarchy, e.g.
// state, city, neighborhood or zip code.
type Category struct {
	*Model
}

// Name returns the category's machine name
func (c Category) Name() string { return c.Model.String("name") }

// DisplayName returns the category's human readable name
func (c Category) DisplayName() string { return c.Model.String("display_name") }

// String returns the display name
func (c Category) String() string { return c.DisplayName() }

// Tag is a topic tag attached to a story
type Tag struct {
	*Model
}

// Name returns the tag name
func (t Tag) Name() string { return t.Model.String("name") }

// String returns the tag name
func (t Tag) String() string { return t.Name() }

// Location is a place stories can be attached to
type Location struct {
	*Model
}

// NewLocation materializes a location from a decoded JSON object
func NewLocation(raw map[string]any) Location {
	return Location{LocationSchema.Materialize(raw)}
}

func (l Location) City() string        { return l.Model.String("city") }
func (l Location) DisplayName() string { return l.Model.String("display_name") }
func (l Location) Lat() float64        { return l.Float("lat") }
func (l Location) Lng() float64        { return l.Float("lng") }
func (l Location) State() string       { return l.Model.String("state") }
func (l Location) StateAbbrev() string { return l.Model.String("state_abbrev") }
func (l Location) URL() string         { return l.Model.String("url") }
func (l Location) URLName() string     { return l.Model.String("url_name") }
func (l Location) ID() uuid.UUID       { return l.UUID("uuid") }

// Category returns the location's category, or a zero Category when unset
func (l Location) Category() Category {
	return Category{l.Model.Model("category")}
}

// String returns the display name and uuid
func (l Location) String() string {
	return fmt.Sprintf("%s (%s)", l.DisplayName(), l.Model.String("uuid"))
}

// Story is a piece of hyperlocal content
type Story struct {
	*Model
}

// NewStory materializes a story from a decoded JSON object
func NewStory(raw map[string]any) Story {
	return Story{StorySchema.Materialize(raw)}
}

func (s Story) FeedTitle() string { return s.Model.String("feed_title") }
func (s Story) FeedURL() string   { return s.Model.String("feed_url") }
func (s Story) StoryURL() string  { return s.Model.String("story_url") }
func (s Story) Summary() string   { return s.Model.String("summary") }
func (s Story) Title() string     { return s.Model.String("title") }
func (s Story) ID() uuid.UUID     { return s.UUID("uuid") }

// Tags returns the story's tags in response order
func (s Story) Tags() []Tag {
	nested := s.Models("tags")
	tags := make([]Tag, len(nested))
	for i, m := range nested {
		tags[i] = Tag{m}
	}
	return tags
}

// String returns the title and uuid
func (s Story) String() string {
	return fmt.Sprintf("%s (%s)", s.Title(), s.Model.String("uuid"))
}
