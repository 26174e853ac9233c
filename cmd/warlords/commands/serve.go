package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/baxromumarov/warlords/internal/api"
	"github.com/baxromumarov/warlords/internal/core"
	"github.com/baxromumarov/warlords/internal/store"
)

var (
	serveListen  string
	serveRefresh string
	serveInitial bool
)

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address, e.g. :8080.")
	serveCmd.Flags().StringVar(&serveRefresh, "refresh", "", "Re-run the pipeline on this interval, e.g. 30m.")
	serveCmd.Flags().BoolVar(&serveInitial, "fetch-on-start", false, "Run the pipeline once before serving.")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--listen :8080] [--refresh 30m]",
	Short: "Serves the saved document over HTTP and optionally keeps it fresh.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("listen") {
			cfg.ListenAddr = serveListen
		}
		if cmd.Flags().Changed("refresh") {
			cfg.Refresh = serveRefresh
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		interval, err := cfg.RefreshInterval()
		if err != nil {
			return err
		}

		pipeline, err := newPipeline(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if serveInitial {
			if _, err := pipeline.Run(ctx); err != nil {
				slog.Error("initial fetch failed", "error", err)
			}
		}

		runner := core.RunnerFunc(func(ctx context.Context) error {
			_, err := pipeline.Run(ctx)
			return err
		})
		core.NewSchedulerService(runner, interval).Start(ctx)

		srv := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           api.NewServer(store.NewFileStore(), pipeline, cfg.OutputPath).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		slog.Info("starting server", "addr", cfg.ListenAddr, "refresh", interval.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}
