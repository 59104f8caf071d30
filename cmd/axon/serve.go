package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/axon/internal/config"
	"github.com/vango-dev/axon/internal/errors"
	"github.com/vango-dev/axon/pkg/bind"
	"github.com/vango-dev/axon/pkg/middleware"
	"github.com/vango-dev/axon/pkg/reactive"
	"github.com/vango-dev/axon/pkg/server"
)

type serveOptions struct {
	configPath string
	demo       string
	port       int
	host       string
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a demo to browsers",
		Long: `Start the live server with one of the bundled demos.

Every browser tab gets its own session with its own observables.
Configuration is read from axon.json or axon.yaml in the working
directory when present, then from AXON_* environment variables,
then from flags.

Examples:
  axon serve
  axon serve --demo=counter --port=8080
  axon serve --config=deploy/axon.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default axon.json or axon.yaml)")
	cmd.Flags().StringVarP(&opts.demo, "demo", "d", "todo", "Demo to serve")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&opts.host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

// loadConfig resolves configuration from file, environment and flags.
func loadConfig(opts serveOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case opts.configPath != "":
		cfg, err = config.LoadFile(opts.configPath)
	case config.Exists("."):
		cfg, err = config.Load(".")
	default:
		cfg = config.New()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if opts.port > 0 {
		cfg.Server.Port = opts.port
	}
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	return cfg, nil
}

// newServer builds a server for app per cfg.
func newServer(cfg *config.Config, app func() bind.NodeProducer, logger *slog.Logger) *server.Server {
	srv := server.New(app, &server.ServerConfig{
		Address:        cfg.Address(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SessionConfig: &server.SessionConfig{
			MaxEventQueue: cfg.Session.EventQueueSize,
		},
	})
	srv.SetLogger(logger.With("component", "server"))

	if cfg.Metrics.Enabled {
		middleware.NewMetrics(middleware.WithNamespace(cfg.Metrics.Namespace)).Instrument(srv)
	}
	if cfg.Tracing.Enabled {
		srv.Use(middleware.OpenTelemetry(middleware.WithTracerName(cfg.Tracing.TracerName)))
	}
	return srv
}

func runServe(ctx context.Context, cmd *cobra.Command, opts serveOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	app, err := lookupDemo(opts.demo)
	if err != nil {
		return err
	}

	logger := cfg.Logger(cmd.ErrOrStderr())
	slog.SetDefault(logger)
	bind.SetLogger(logger)
	reactive.SetMaxCascadeDepth(cfg.Session.MaxCascadeDepth)

	srv := newServer(cfg, app, logger)

	printBanner(cmd)
	success(cmd, "Serving %q at %s", opts.demo, cfg.URL())
	if cfg.Metrics.Enabled {
		info(cmd, "Metrics at %s%s", cfg.URL(), middleware.MetricsPath)
	}

	if err := srv.Run(ctx); err != nil {
		return errors.FromError(err, "E140")
	}
	return nil
}
