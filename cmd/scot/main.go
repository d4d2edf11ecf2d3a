package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cartchunk/internal/logger"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:   "scot",
		Usage:  "Inspect, validate and edit broadcast cart chunks",
		Flags:  append(loggingFlags(), configFlag()),
		Before: setup,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			inspectCmd(),
			validateCmd(),
			exportCmd(),
			importCmd(),
			setCmd(),
			newCmd(),
			serveCmd(),
			versionCmd(),
		},
	}
}

// setup loads the config file, applies it under any explicit flags and
// installs the logger on the context.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := LoadConfig(configPath())
	if err != nil {
		return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	applyRootConfig(cmd, cfg)
	config = cfg

	level := logLevel
	if debug {
		level = "debug"
	}
	log := logger.ForFormat(logFormat, os.Stderr, logger.ParseLevel(level))
	return logger.WithContext(ctx, log), nil
}
