package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/spanmask/internal/logger"
	"github.com/samcharles93/spanmask/internal/version"
)

// loadedConfig is read once by the root command before any subcommand runs.
var loadedConfig Config

func main() {
	app := &cli.Command{
		Name:    "spanmask",
		Usage:   "Span masking for padded sequence batches",
		Version: version.String(),
		Flags:   loggingFlags(),
		Before:  setup,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			sampleCmd(),
			applyCmd(),
			benchCmd(),
			scheduleCmd(),
			serveCmd(),
			versionCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config file and installs the logger in the context.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := LoadConfig(configPath())
	if err != nil {
		return ctx, err
	}
	loadedConfig = cfg
	applyLoggingConfig(cmd, cfg)

	level := logger.ParseLevel(logLevel)
	if debug {
		level = logger.ParseLevel("debug")
	}
	log := logger.ForFormat(os.Stderr, logFormat, level, isTerminal(os.Stderr.Fd()))
	return logger.WithContext(ctx, log), nil
}
