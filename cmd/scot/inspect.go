package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cartchunk/internal/api"
	"github.com/samcharles93/cartchunk/internal/cartstore"
	"github.com/samcharles93/cartchunk/pkg/cart"
)

func inspectCmd() *cli.Command {
	var raw bool

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print a cart record and its resolved values",
		ArgsUsage: "<file.wav|file.cart>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "also print the stored layout field by field",
				Destination: &raw,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("error: inspect takes exactly one file", 1)
			}
			path := cmd.Args().First()
			f, err := cartstore.Open(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			w := cmd.Root().Writer
			printSummary(w, f)
			if raw {
				printRaw(w, f.Record)
			}
			printReport(w, f.Report)
			return nil
		},
	}
}

func printSummary(w io.Writer, f *cartstore.File) {
	placement := "stand-alone"
	if f.Embedded {
		placement = "embedded"
	}
	r := f.Record
	_, _ = fmt.Fprintf(w, "file:      %s (%s, %d bytes)\n", f.Path, placement, f.Size)
	_, _ = fmt.Fprintf(w, "cart:      %s\n", r.CartNumber())
	_, _ = fmt.Fprintf(w, "title:     %s\n", r.Title())
	if a := r.ArtistName(); a != "" {
		_, _ = fmt.Fprintf(w, "artist:    %s\n", a)
	}
	if t := r.TriviaText(); t != "" {
		_, _ = fmt.Fprintf(w, "trivia:    %s\n", t)
	}
	if c := r.CategoryCode(); c != "" {
		_, _ = fmt.Fprintf(w, "category:  %s\n", c)
	}
	_, _ = fmt.Fprintf(w, "attrib:    %#02x  attrib2: %#08x\n", uint8(r.Attrib), uint32(r.Attrib2))

	_, _ = fmt.Fprintln(w, "\nresolved:")
	for _, fld := range cart.Fields() {
		_, _ = fmt.Fprintf(w, "  %-16s %s\n", fld, api.RenderValue(r.Effective(fld)))
	}
}

func printRaw(w io.Writer, r cart.Record) {
	buf, err := cart.Encode(r, int(r.Size))
	if err != nil {
		// Size is only invalid on records Validate already reports.
		_, _ = fmt.Fprintf(w, "\nraw: %v\n", err)
		return
	}
	_, _ = fmt.Fprintln(w, "\nlayout:")
	for _, fs := range cart.Layout {
		end := min(fs.Offset+fs.Width, len(buf))
		_, _ = fmt.Fprintf(w, "  %3d %-16s %-9s % x\n", fs.Offset, fs.Name, fs.Kind, buf[fs.Offset:end])
	}
}

func printReport(w io.Writer, rep cart.Report) {
	_, _ = fmt.Fprintf(w, "\nfindings: %d error(s), %d warning(s)\n", len(rep.Errors()), len(rep.Warnings()))
	for _, v := range rep.Violations {
		_, _ = fmt.Fprintf(w, "  %s\n", v)
	}
}
