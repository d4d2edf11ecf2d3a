package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cartchunk/internal/cartstore"
	"github.com/samcharles93/cartchunk/internal/logger"
	"github.com/samcharles93/cartchunk/pkg/cart"
)

// edits holds the values of the record editing flags.
type edits struct {
	title, cartNum, artist, trivia, category string
	startDate, killDate                      string
	startHour, killHour                      string
}

func editFlags(e *edits) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "title (43 bytes)", Destination: &e.title},
		&cli.StringFlag{Name: "cart", Usage: "cart number (4 bytes)", Destination: &e.cartNum},
		&cli.StringFlag{Name: "artist", Usage: "artist (34 bytes)", Destination: &e.artist},
		&cli.StringFlag{Name: "trivia", Usage: "trivia (34 bytes)", Destination: &e.trivia},
		&cli.StringFlag{Name: "category", Usage: "category code (4 bytes)", Destination: &e.category},
		&cli.StringFlag{Name: "start-date", Usage: "first air date, YYYY-MM-DD or none", Destination: &e.startDate},
		&cli.StringFlag{Name: "kill-date", Usage: "last air date, YYYY-MM-DD or none", Destination: &e.killDate},
		&cli.StringFlag{Name: "start-hour", Usage: "hour of the start date, 0-23 or all", Destination: &e.startHour},
		&cli.StringFlag{Name: "kill-hour", Usage: "hour of the kill date, 0-23 or all", Destination: &e.killHour},
	}
}

// apply writes every flag the user set into r.
func (e *edits) apply(cmd *cli.Command, r *cart.Record) error {
	text := []struct {
		flag string
		val  string
		set  func(string) error
	}{
		{"title", e.title, r.SetTitle},
		{"cart", e.cartNum, r.SetCartNumber},
		{"artist", e.artist, r.SetArtist},
		{"trivia", e.trivia, r.SetTrivia},
		{"category", e.category, r.SetCategory},
	}
	for _, t := range text {
		if !cmd.IsSet(t.flag) {
			continue
		}
		if err := t.set(t.val); err != nil {
			return fmt.Errorf("--%s: %w", t.flag, err)
		}
	}

	var err error
	if cmd.IsSet("start-date") {
		if r.StartDate, err = parseDate(e.startDate, cart.StartDateUnset); err != nil {
			return fmt.Errorf("--start-date: %w", err)
		}
	}
	if cmd.IsSet("kill-date") {
		if r.KillDate, err = parseDate(e.killDate, cart.KillDateUnset); err != nil {
			return fmt.Errorf("--kill-date: %w", err)
		}
	}
	if cmd.IsSet("start-hour") {
		if r.StartHour, err = parseHour(e.startHour); err != nil {
			return fmt.Errorf("--start-hour: %w", err)
		}
	}
	if cmd.IsSet("kill-hour") {
		if r.KillHour, err = parseHour(e.killHour); err != nil {
			return fmt.Errorf("--kill-hour: %w", err)
		}
	}
	return nil
}

// parseDate reads YYYY-MM-DD; "none" or an empty value store the sentinel.
func parseDate(s, unset string) (cart.Date, error) {
	var d cart.Date
	if s = strings.TrimSpace(s); s == "" || strings.EqualFold(s, "none") {
		copy(d[:], unset)
		return d, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return d, err
	}
	return cart.DateOf(t), nil
}

func parseHour(s string) (cart.Hour, error) {
	if s = strings.TrimSpace(s); s == "" || strings.EqualFold(s, "all") {
		return cart.HourAll, nil
	}
	h, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return cart.HourOf(h)
}

func setCmd() *cli.Command {
	var e edits

	return &cli.Command{
		Name:      "set",
		Usage:     "Edit fields of an existing cart record",
		ArgsUsage: "<file>",
		Flags:     editFlags(&e),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("error: set takes exactly one file", 1)
			}
			f, err := cartstore.Open(cmd.Args().First())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			rec := f.Record
			if err := e.apply(cmd, &rec); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if rec == f.Record {
				logger.FromContext(ctx).Info("nothing to change", "path", f.Path)
				return nil
			}
			return save(ctx, f.Path, rec)
		},
	}
}

func newCmd() *cli.Command {
	var (
		e    edits
		size int64
	)

	return &cli.Command{
		Name:      "new",
		Usage:     "Create a fresh cart record (WAV targets must already exist)",
		ArgsUsage: "<target>",
		Flags:     append(editFlags(&e), sizeFlag(&size)),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("error: new takes exactly one target", 1)
			}
			target := cmd.Args().First()
			n, err := resolveSize(cmd, size, configuredSize(target))
			if err != nil {
				return err
			}
			rec, err := cart.New(n)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if err := e.apply(cmd, &rec); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			return save(ctx, target, rec)
		},
	}
}

// save writes rec through the checked path and logs any warnings.
func save(ctx context.Context, path string, rec cart.Record) error {
	log := logger.FromContext(ctx)
	rep, err := cartstore.Save(path, rec)
	for _, v := range rep.Violations {
		log.Warn("finding", "path", path, "field", v.Field, "severity", v.Severity.String(), "message", v.Message)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %s: %v", path, err), 1)
	}
	log.Info("saved", "path", path, "size", rec.Size, "warnings", len(rep.Warnings()))
	return nil
}
