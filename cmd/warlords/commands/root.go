package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/baxromumarov/warlords/internal/config"
	"github.com/baxromumarov/warlords/internal/core"
	"github.com/baxromumarov/warlords/internal/httpx"
	"github.com/baxromumarov/warlords/internal/schema"
	"github.com/baxromumarov/warlords/internal/store"
)

var (
	configPath string
	logFormat  string
	verbose    bool

	flagURL       string
	flagOutput    string
	flagSchema    string
	flagTimeout   string
	flagTransport string
)

var rootCmd = &cobra.Command{
	Use:   "warlords",
	Short: "warlords scrapes the MUME war status page into a validated JSON file.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initSlog(logFormat, verbose)
	},
	RunE:          runFetch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultFile, "Path to a json5 config file.")
	flags.StringVar(&logFormat, "log-format", "json", "Log format: json or text.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	flags.StringVar(&flagURL, "url", "", "Status page URL.")
	flags.StringVarP(&flagOutput, "output", "o", "", "Output JSON path.")
	flags.StringVar(&flagSchema, "schema", "", "Schema file (defaults to the embedded v1 schema).")
	flags.StringVar(&flagTimeout, "timeout", "", "Fetch timeout, e.g. 10s.")
	flags.StringVar(&flagTransport, "transport", "", "HTTP transport: colly or resty.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initSlog(format string, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	var handler slog.Handler
	if format == "text" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

// loadConfig applies command line flags over the file and environment config.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	override := func(dst *string, name, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	override(&cfg.URL, "url", flagURL)
	override(&cfg.OutputPath, "output", flagOutput)
	override(&cfg.SchemaPath, "schema", flagSchema)
	override(&cfg.Timeout, "timeout", flagTimeout)
	override(&cfg.Transport, "transport", flagTransport)
	err = cfg.Validate()
	return cfg, err
}

func newPipeline(cfg config.Config) (*core.Pipeline, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	fetcher, err := httpx.NewFetcher(cfg.Transport, cfg.UserAgent, timeout)
	if err != nil {
		return nil, err
	}
	return core.NewPipeline(fetcher, schema.NewGate(), store.NewFileStore(), core.PipelineOptions{
		URL:        cfg.URL,
		OutputPath: cfg.OutputPath,
		SchemaPath: cfg.SchemaPath,
	}), nil
}
