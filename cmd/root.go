package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/outsidein/config"
	"github.com/s0up4200/outsidein/filter"
	"github.com/s0up4200/outsidein/finder"
	"github.com/s0up4200/outsidein/metrics"
	"github.com/s0up4200/outsidein/resource"
)

var (
	cfgFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *resource.Client
	registry *prometheus.Registry

	locationFinder *finder.LocationFinder
	storyFinder    *finder.StoryFinder
	compiler       = filter.NewCompiler(32)

	// Command flags
	filterExpr      string
	preset          string
	outputFormat    string
	metricsTextfile string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "outsidein",
	Short: "Query hyperlocal locations and news stories",
	Long: `outsidein queries the Outside.in hyperlocal API for locations and the
news stories attached to states, cities, neighborhoods and zip codes.

Credentials are read from the config file or from the OUTSIDEIN_API_KEY and
OUTSIDEIN_API_SECRET environment variables.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: writeMetrics,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format (text/json)")
	rootCmd.PersistentFlags().StringVarP(&filterExpr, "where", "w", "", "filter results with an expression")
	rootCmd.PersistentFlags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	rootCmd.PersistentFlags().StringVar(&metricsTextfile, "metrics-textfile", "", "write request metrics to this file on exit")
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Name() == versionCmd.Name() {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, isatty.IsTerminal(os.Stderr.Fd()))

	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("invalid output format: %s (must be 'text' or 'json')", outputFormat)
	}

	registry = prometheus.NewRegistry()
	client, err = resource.NewClient(resource.Config{
		Host:    cfg.API.Host,
		Version: cfg.API.Version,
		Key:     cfg.API.Key,
		Secret:  cfg.API.Secret,
	}, logger, resource.WithMetrics(metrics.New(registry)))
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	locationFinder = finder.NewLocationFinder(client)
	storyFinder = finder.NewStoryFinder(client)

	logger.Debug().Str("base_url", client.BaseURL()).Msg("API client ready")
	return nil
}

func writeMetrics(cmd *cobra.Command, args []string) error {
	if metricsTextfile == "" || registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(metricsTextfile, registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// setupLogger configures the zerolog logger. Color is used only when
// enabled and stderr is a terminal.
func setupLogger(cfg config.LoggingConfig, terminal bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !terminal,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// commandContext bounds a command's requests by the configured timeout
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, cfg.HTTP.Timeout)
}

// resultFilter compiles the filter expression to use.
// Priority: --where > --preset > none
func resultFilter() (*filter.Filter, error) {
	expression := filterExpr
	if expression == "" && preset != "" {
		presetExpr, ok := cfg.Filter.Presets[strings.ToLower(preset)]
		if !ok {
			return nil, fmt.Errorf("preset '%s' not found in config", preset)
		}
		expression = presetExpr
	}

	f, err := compiler.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	if f != nil {
		logger.Debug().Str("filter", f.String()).Msg("Filtering results")
	}
	return f, nil
}
