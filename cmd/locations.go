package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/outsidein/filter"
	"github.com/s0up4200/outsidein/finder"
)

var locationFlags struct {
	publicationID     int64
	limit             int
	categories        []string
	excludeCategories []string
	withoutCategories []string
}

// locationsCmd groups the location queries
var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Find locations",
}

// locationsNamedCmd represents the locations named command
var locationsNamedCmd = &cobra.Command{
	Use:   "named NAME",
	Short: "Find locations matching a name",
	Long: `Find the locations whose name matches NAME, such as a neighborhood,
city or zip code.`,
	Example: `  outsidein locations named "Park Slope"
  outsidein locations named Brooklyn --category nabe --no-category zip`,
	Args: cobra.ExactArgs(1),
	RunE: runLocationsNamed,
}

func init() {
	rootCmd.AddCommand(locationsCmd)
	locationsCmd.AddCommand(locationsNamedCmd)

	flags := locationsNamedCmd.Flags()
	flags.Int64Var(&locationFlags.publicationID, "publication", 0, "scope the query to a publication id")
	flags.IntVar(&locationFlags.limit, "limit", 0, "maximum number of locations to return")
	flags.StringSliceVar(&locationFlags.categories, "category", nil, "only include these categories")
	flags.StringSliceVar(&locationFlags.excludeCategories, "no-category", nil, "exclude these categories")
	flags.StringSliceVar(&locationFlags.withoutCategories, "wo-category", nil, "alias for --no-category")
}

func locationOptions() finder.LocationOptions {
	return finder.LocationOptions{
		PublicationID:     locationFlags.publicationID,
		Limit:             locationFlags.limit,
		Categories:        locationFlags.categories,
		ExcludeCategories: concat(locationFlags.excludeCategories, locationFlags.withoutCategories),
	}
}

func runLocationsNamed(cmd *cobra.Command, args []string) error {
	f, err := resultFilter()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	logger.Info().Str("name", args[0]).Msg("Searching locations")

	result, err := locationFinder.Named(ctx, args[0], locationOptions())
	if err != nil {
		return fmt.Errorf("failed to find locations: %w", err)
	}

	shown := filter.Locations(f, result.Locations)
	logger.Debug().Int("total", result.Total).Int("received", len(result.Locations)).Int("shown", len(shown)).Msg("Locations found")

	return writeLocations(cmd.OutOrStdout(), result, shown)
}

// concat joins the values of an exclude flag and its alias
func concat(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
