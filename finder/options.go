package finder

import (
	"strconv"

	"github.com/s0up4200/outsidein/query"
	"github.com/s0up4200/outsidein/resource"
)

// Logical input names
const (
	inputLimit      = "limit"
	inputMaxAge     = "max-age"
	inputCategory   = "category"
	inputKeyword    = "keyword"
	inputVertical   = "vertical"
	inputFormat     = "format"
	inputAuthorType = "author-type"
)

// LocationOptions are the optional inputs of a location query
type LocationOptions struct {
	// PublicationID scopes the query to a publication when non-zero
	PublicationID int64
	// Limit caps the number of returned locations when positive
	Limit int

	Categories        []string
	ExcludeCategories []string
}

// Inputs converts the options to query inputs
func (o LocationOptions) Inputs() query.Inputs {
	var in query.Inputs
	setCommon(&in, o.PublicationID, o.Limit)
	in.SetList(inputCategory, o.Categories...)
	in.SetList(query.NoPrefix+inputCategory, o.ExcludeCategories...)
	return in
}

// StoryOptions are the optional inputs of a story query
type StoryOptions struct {
	// PublicationID scopes the query to a publication when non-zero
	PublicationID int64
	// Limit caps the number of returned stories when positive
	Limit int
	// MaxAge restricts stories to those newer than the given age, e.g. "2d"
	MaxAge string

	Keywords           []string
	ExcludeKeywords    []string
	Verticals          []string
	ExcludeVerticals   []string
	Formats            []string
	ExcludeFormats     []string
	AuthorTypes        []string
	ExcludeAuthorTypes []string
}

// Inputs converts the options to query inputs
func (o StoryOptions) Inputs() query.Inputs {
	var in query.Inputs
	setCommon(&in, o.PublicationID, o.Limit)
	if o.MaxAge != "" {
		in.Set(inputMaxAge, o.MaxAge)
	}
	in.SetList(inputKeyword, o.Keywords...)
	in.SetList(query.NoPrefix+inputKeyword, o.ExcludeKeywords...)
	in.SetList(inputVertical, o.Verticals...)
	in.SetList(query.NoPrefix+inputVertical, o.ExcludeVerticals...)
	in.SetList(inputFormat, o.Formats...)
	in.SetList(query.NoPrefix+inputFormat, o.ExcludeFormats...)
	in.SetList(inputAuthorType, o.AuthorTypes...)
	in.SetList(query.NoPrefix+inputAuthorType, o.ExcludeAuthorTypes...)
	return in
}

func setCommon(in *query.Inputs, publicationID int64, limit int) {
	if publicationID != 0 {
		in.Set(resource.PublicationInput, strconv.FormatInt(publicationID, 10))
	}
	if limit > 0 {
		in.Set(inputLimit, strconv.Itoa(limit))
	}
}
