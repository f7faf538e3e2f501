package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/outsidein/filter"
	"github.com/s0up4200/outsidein/finder"
)

var storyFlags struct {
	publicationID int64
	limit         int
	maxAge        string

	keywords, excludeKeywords, withoutKeywords          []string
	verticals, excludeVerticals, withoutVerticals       []string
	formats, excludeFormats, withoutFormats             []string
	authorTypes, excludeAuthorTypes, withoutAuthorTypes []string
}

// storiesCmd groups the story queries
var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "Find news stories for a place",
	Long: `Find the hyperlocal news stories attached to a state, city, neighborhood,
zip code or a list of location uuids.`,
}

var storiesStateCmd = &cobra.Command{
	Use:   "state STATE",
	Short: "Stories for a state, by name or postal abbreviation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStories(cmd, func(ctx context.Context, opts finder.StoryOptions) (*finder.StoryResult, error) {
			return storyFinder.ForState(ctx, args[0], opts)
		})
	},
}

var storiesCityCmd = &cobra.Command{
	Use:   "city STATE CITY",
	Short: "Stories for a city",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStories(cmd, func(ctx context.Context, opts finder.StoryOptions) (*finder.StoryResult, error) {
			return storyFinder.ForCity(ctx, args[0], args[1], opts)
		})
	},
}

var storiesNabeCmd = &cobra.Command{
	Use:     "nabe STATE CITY NABE",
	Short:   "Stories for a neighborhood",
	Example: `  outsidein stories nabe NY Brooklyn "Park Slope" --keyword fire`,
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStories(cmd, func(ctx context.Context, opts finder.StoryOptions) (*finder.StoryResult, error) {
			return storyFinder.ForNabe(ctx, args[0], args[1], args[2], opts)
		})
	},
}

var storiesZipCmd = &cobra.Command{
	Use:   "zip ZIP...",
	Short: "Stories for one or more zip codes",
	Long: `Stories for one or more zip codes. Several zip codes are queried concurrently
and printed in the order given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStoriesZip,
}

var storiesUUIDsCmd = &cobra.Command{
	Use:   "uuids UUID...",
	Short: "Stories for any of the given location uuids",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseUUIDs(args)
		if err != nil {
			return err
		}
		return runStories(cmd, func(ctx context.Context, opts finder.StoryOptions) (*finder.StoryResult, error) {
			return storyFinder.ForUUIDs(ctx, ids, opts)
		})
	},
}

func init() {
	rootCmd.AddCommand(storiesCmd)
	storiesCmd.AddCommand(storiesStateCmd, storiesCityCmd, storiesNabeCmd, storiesZipCmd, storiesUUIDsCmd)

	flags := storiesCmd.PersistentFlags()
	flags.Int64Var(&storyFlags.publicationID, "publication", 0, "scope the query to a publication id")
	flags.IntVar(&storyFlags.limit, "limit", 0, "maximum number of stories to return")
	flags.StringVar(&storyFlags.maxAge, "max-age", "", "only stories newer than this age, e.g. 2d")

	negatable := []struct {
		name                    string
		include, exclude, alias *[]string
	}{
		{"keyword", &storyFlags.keywords, &storyFlags.excludeKeywords, &storyFlags.withoutKeywords},
		{"vertical", &storyFlags.verticals, &storyFlags.excludeVerticals, &storyFlags.withoutVerticals},
		{"format", &storyFlags.formats, &storyFlags.excludeFormats, &storyFlags.withoutFormats},
		{"author-type", &storyFlags.authorTypes, &storyFlags.excludeAuthorTypes, &storyFlags.withoutAuthorTypes},
	}
	for _, n := range negatable {
		flags.StringSliceVar(n.include, n.name, nil, "only include stories with this "+n.name)
		flags.StringSliceVar(n.exclude, "no-"+n.name, nil, "exclude stories with this "+n.name)
		flags.StringSliceVar(n.alias, "wo-"+n.name, nil, "alias for --no-"+n.name)
	}
}

func storyOptions() finder.StoryOptions {
	return finder.StoryOptions{
		PublicationID:      storyFlags.publicationID,
		Limit:              storyFlags.limit,
		MaxAge:             storyFlags.maxAge,
		Keywords:           storyFlags.keywords,
		ExcludeKeywords:    concat(storyFlags.excludeKeywords, storyFlags.withoutKeywords),
		Verticals:          storyFlags.verticals,
		ExcludeVerticals:   concat(storyFlags.excludeVerticals, storyFlags.withoutVerticals),
		Formats:            storyFlags.formats,
		ExcludeFormats:     concat(storyFlags.excludeFormats, storyFlags.withoutFormats),
		AuthorTypes:        storyFlags.authorTypes,
		ExcludeAuthorTypes: concat(storyFlags.excludeAuthorTypes, storyFlags.withoutAuthorTypes),
	}
}

type storyQuery func(ctx context.Context, opts finder.StoryOptions) (*finder.StoryResult, error)

func runStories(cmd *cobra.Command, find storyQuery) error {
	f, err := resultFilter()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	logger.Info().Str("query", cmd.Name()).Msg("Searching stories")

	result, err := find(ctx, storyOptions())
	if err != nil {
		return fmt.Errorf("failed to find stories: %w", err)
	}

	shown := filter.Stories(f, result.Stories)
	logger.Debug().Int("total", result.Total).Int("received", len(result.Stories)).Int("shown", len(shown)).Msg("Stories found")

	return writeStories(cmd.OutOrStdout(), result, shown)
}

func runStoriesZip(cmd *cobra.Command, args []string) error {
	f, err := resultFilter()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	logger.Info().Strs("zips", args).Int("concurrency", cfg.HTTP.Concurrency).Msg("Searching stories")

	results, err := fetchZips(ctx, storyFinder, args, storyOptions(), cfg.HTTP.Concurrency)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, result := range results {
		if err := writeStories(out, result, filter.Stories(f, result.Stories)); err != nil {
			return err
		}
	}
	return nil
}

// fetchZips queries each zip code with at most limit requests in flight.
// Results are returned in the order of zips; the first failure cancels the
// remaining requests.
func fetchZips(ctx context.Context, sf *finder.StoryFinder, zips []string, opts finder.StoryOptions, limit int) ([]*finder.StoryResult, error) {
	results := make([]*finder.StoryResult, len(zips))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, zip := range zips {
		i, zip := i, zip
		g.Go(func() error {
			result, err := sf.ForZipCode(ctx, zip, opts)
			if err != nil {
				return fmt.Errorf("failed to find stories for zip %s: %w", zip, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func parseUUIDs(args []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(args))
	for i, arg := range args {
		id, err := uuid.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid location uuid %q: %w", arg, err)
		}
		ids[i] = id
	}
	return ids, nil
}
