package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/outsidein/query"
)

func TestScopers(t *testing.T) {
	var scoped query.Inputs
	scoped.Set(PublicationInput, "42")

	tests := []struct {
		name   string
		scoper Scoper
		url    string
		in     query.Inputs
		want   string
	}{
		{
			name:   "suffix appends publication",
			scoper: PublicationSuffix,
			url:    "http://host/v1.1/locations/named/Park%20Slope",
			in:     scoped,
			want:   "http://host/v1.1/locations/named/Park%20Slope/publications/42",
		},
		{
			name:   "suffix without publication",
			scoper: PublicationSuffix,
			url:    "http://host/v1.1/locations/named/x",
			want:   "http://host/v1.1/locations/named/x",
		},
		{
			name:   "stories rewrite inserts before trailing segment",
			scoper: PublicationBeforeStories,
			url:    "http://host/v1.1/states/NY/stories",
			in:     scoped,
			want:   "http://host/v1.1/states/NY/publications/42/stories",
		},
		{
			name:   "stories rewrite only touches trailing segment",
			scoper: PublicationBeforeStories,
			url:    "http://host/v1.1/states/stories/cities/x",
			in:     scoped,
			want:   "http://host/v1.1/states/stories/cities/x",
		},
		{
			name:   "stories rewrite without publication",
			scoper: PublicationBeforeStories,
			url:    "http://host/v1.1/zipcodes/11215/stories",
			want:   "http://host/v1.1/zipcodes/11215/stories",
		},
		{
			name:   "unscoped",
			scoper: Unscoped,
			url:    "http://host/v1.1/x",
			in:     scoped,
			want:   "http://host/v1.1/x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scoper.Scope(tt.url, tt.in))
		})
	}
}
