package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cartchunk/internal/cartstore"
	"github.com/samcharles93/cartchunk/internal/logger"
)

const (
	exitFindings = 1
	exitErrors   = 2
)

func validateCmd() *cli.Command {
	var strict bool

	return &cli.Command{
		Name:      "validate",
		Usage:     "Check cart records; exit 2 on errors, 1 on warnings with --strict",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "strict",
				Usage:       "treat warnings as failures",
				Destination: &strict,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return cli.Exit("error: validate needs at least one file", 1)
			}
			applyValidateConfig(cmd, config, &strict)
			log := logger.FromContext(ctx)
			w := cmd.Root().Writer

			var errs, warns int
			for _, path := range cmd.Args().Slice() {
				f, err := cartstore.Open(path)
				if err != nil {
					// Unreadable tag or size is an error-severity finding.
					_, _ = fmt.Fprintf(w, "%s: error: %v\n", path, err)
					errs++
					continue
				}
				rep := f.Report
				log.Debug("validated", "path", path, "errors", len(rep.Errors()), "warnings", len(rep.Warnings()))
				if len(rep.Violations) == 0 {
					_, _ = fmt.Fprintf(w, "%s: ok\n", path)
					continue
				}
				for _, v := range rep.Violations {
					_, _ = fmt.Fprintf(w, "%s: %s\n", path, v)
				}
				errs += len(rep.Errors())
				warns += len(rep.Warnings())
			}

			switch {
			case errs > 0:
				return cli.Exit(fmt.Sprintf("validate: %d error(s), %d warning(s)", errs, warns), exitErrors)
			case strict && warns > 0:
				return cli.Exit(fmt.Sprintf("validate: %d warning(s)", warns), exitFindings)
			}
			return nil
		},
	}
}
