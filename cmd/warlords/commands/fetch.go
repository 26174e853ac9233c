package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [--url <url>] [--output <path>]",
	Short: "Fetches the war status page once and writes the validated JSON document.",
	Args:  cobra.NoArgs,
	RunE:  runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pipeline, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	slog.Info("fetching war status", "url", cfg.URL, "transport", cfg.Transport)
	_, err = pipeline.Run(cmd.Context())
	return err
}
