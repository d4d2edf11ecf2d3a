package main

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cartchunk/internal/cartstore"
	"github.com/samcharles93/cartchunk/pkg/cart"
)

var (
	logLevel   string
	logFormat  string
	debug      bool
	configFile string

	// config is the loaded config file, set by setup.
	config Config
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Usage:       "path to config.yaml (default $" + envConfig + " or the user config dir)",
		Destination: &configFile,
	}
}

func sizeFlag(dest *int64) cli.Flag {
	return &cli.Int64Flag{
		Name:        "size",
		Usage:       "record size in bytes (424 embedded, 512 stand-alone)",
		Destination: dest,
	}
}

// resolveSize returns the --size flag when set and fallback otherwise.
func resolveSize(cmd *cli.Command, flag int64, fallback int) (int, error) {
	size := fallback
	if cmd.IsSet("size") {
		size = int(flag)
	}
	if !cart.ValidSize(size) {
		return 0, cli.Exit(fmt.Sprintf("error: size %d, want %d or %d", size, cart.SizeEmbedded, cart.SizeStandalone), 1)
	}
	return size, nil
}

// configuredSize is the size for a fresh record at path: the config
// default for stand-alone files, otherwise the natural size of the target.
func configuredSize(path string) int {
	if config.DefaultSize != nil && !cartstore.IsWAVE(path) {
		return *config.DefaultSize
	}
	return cartstore.DefaultSize(path)
}
