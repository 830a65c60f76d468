package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aging-dashboard/internal/assets"
	"aging-dashboard/internal/config"
	"aging-dashboard/internal/engine"
	"aging-dashboard/internal/handler"
	"aging-dashboard/internal/loader"
	"aging-dashboard/internal/logging"
	"aging-dashboard/internal/metrics"
	"aging-dashboard/internal/model"
	"aging-dashboard/internal/page"
	"aging-dashboard/internal/server"
	"aging-dashboard/internal/summary"
)

var (
	cfg    config.Config
	logger *zap.Logger

	dataPath string
	outPath  string
)

var rootCmd = &cobra.Command{
	Use:           "aging-dashboard",
	Short:         "Population ageing dashboard for the Czech Republic",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.FromEnv()
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot := assets.Snapshot
		if cfg.DataFile != "" {
			raw, err := os.ReadFile(cfg.DataFile)
			if err != nil {
				return fmt.Errorf("read data file: %w", err)
			}
			snapshot = raw
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := metrics.New(reg)

		fetcher := loader.NewHTTPFetcher(cfg.DataBaseURL, nil)
		h := handler.New(loader.New(fetcher, logger, m), snapshot, logger, m, reg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("dashboard starting",
			zap.String("addr", cfg.Addr()),
			zap.String("data_url", fetcher.URL()),
		)
		return server.New(h.Handle, logger).ListenAndServe(ctx, cfg.Addr())
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the dashboard page to a static HTML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := loadView(cmd)
		if err != nil {
			return err
		}

		var out io.Writer = cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return page.Render(out, view)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the headline numbers in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := loadView(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), summary.Render(view))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&dataPath, "data", "", "snapshot file (default: embedded snapshot)")
	renderCmd.Flags().StringVar(&outPath, "out", "", "output file (default: stdout)")
	summaryCmd.Flags().StringVar(&dataPath, "data", "", "snapshot file (default: embedded snapshot)")

	rootCmd.AddCommand(serveCmd, renderCmd, summaryCmd)
}

// loadView runs one activation against --data or the embedded snapshot.
func loadView(cmd *cobra.Command) (*model.View, error) {
	var fetcher loader.Fetcher = loader.BytesFetcher(assets.Snapshot)
	if dataPath != "" {
		fetcher = loader.FileFetcher{Path: dataPath}
	}

	a := loader.New(fetcher, logger, nil).Activate(cmd.Context())
	if a.State() != loader.StateReady {
		return nil, errors.New("error loading data")
	}
	return engine.Derive(a.Snapshot())
}
