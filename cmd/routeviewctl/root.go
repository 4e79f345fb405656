package main

import (
	"io"
	"log/slog"
	"time"

	"routeview/config"
	logs "routeview/internal/infra/log"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Terminal styles
var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	warn   = color.New(color.FgYellow)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

type rootOptions struct {
	backendURL string
	timeout    time.Duration
	debug      bool
}

func newRootCmd() *cobra.Command {
	defaults := &config.Config{}
	defaults.ApplyDefaults()

	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "routeviewctl",
		Short:         "Query a route-planning backend from the terminal",
		Long:          brand.Sprint("routeviewctl") + " lists locations and finds paths through the same map session the web view uses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.backendURL, "backend", defaults.Backend.BaseURL, "Route-planning backend base URL")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout (0 waits indefinitely)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log backend traffic to stderr")

	cmd.AddCommand(
		locationsCmd(opts),
		findCmd(opts),
	)

	return cmd
}

// config returns the application configuration with the command line overrides applied.
func (o *rootOptions) config() *config.Config {
	cfg := &config.Config{
		Backend: &config.BackendConfig{BaseURL: o.backendURL, Timeout: o.timeout},
	}
	cfg.Env.ServiceName = "routeviewctl"
	cfg.Env.Debug = o.debug
	cfg.ApplyDefaults()

	return cfg
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := "warn"
	if o.debug {
		level = "debug"
	}

	logger, err := logs.NewWithWriter(w, config.Log{Level: level, Pretty: true}, "routeviewctl")
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return logger
}
