package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cartchunk/internal/api"
	"github.com/samcharles93/cartchunk/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		size        int64
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the cart codec over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			sizeFlag(&size),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyServeConfig(cmd, config, &addr)
			n, err := resolveSize(cmd, size, configuredSize(""))
			if err != nil {
				return err
			}

			server := api.NewServer(n)
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "default_size", n)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: withReadTimeout(readTimeout),
			}
			return sc.Start(ctx, e)
		},
	}
}

// withReadTimeout bounds reading of the whole request, headers included.
func withReadTimeout(d time.Duration) func(*http.Server) error {
	return func(srv *http.Server) error {
		srv.ReadTimeout = d
		srv.ReadHeaderTimeout = d
		return nil
	}
}
