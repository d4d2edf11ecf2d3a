package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cartchunk/internal/api"
	"github.com/samcharles93/cartchunk/internal/cartstore"
	"github.com/samcharles93/cartchunk/internal/logger"
)

// Document is the JSON form written by export and read by import.
type Document struct {
	Path      string           `json:"path,omitempty"`
	Size      int              `json:"size,omitempty"`
	Embedded  bool             `json:"embedded,omitempty"`
	Record    api.CartDTO      `json:"record"`
	Effective api.EffectiveDTO `json:"effective,omitempty"`
	Report    *api.ReportDTO   `json:"report,omitempty"`
}

func exportCmd() *cli.Command {
	var out string

	return &cli.Command{
		Name:      "export",
		Usage:     "Write a cart record as JSON",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output path (default stdout)",
				Destination: &out,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("error: export takes exactly one file", 1)
			}
			f, err := cartstore.Open(cmd.Args().First())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			rep := api.FromReport(f.Report)
			doc := Document{
				Path:      f.Path,
				Size:      f.Size,
				Embedded:  f.Embedded,
				Record:    api.FromRecord(f.Record),
				Effective: api.Effective(f.Record),
				Report:    &rep,
			}
			b, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: encode json: %v", err), 1)
			}
			b = append(b, '\n')
			if out == "" {
				_, err = cmd.Root().Writer.Write(b)
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			logger.FromContext(ctx).Info("exported", "path", f.Path, "out", out)
			return nil
		},
	}
}

func importCmd() *cli.Command {
	var size int64

	return &cli.Command{
		Name:      "import",
		Usage:     "Write a JSON record into a WAV file or a stand-alone record file",
		ArgsUsage: "<record.json> <target>",
		Flags:     []cli.Flag{sizeFlag(&size)},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return cli.Exit("error: import takes a JSON file and a target", 1)
			}
			src, target := cmd.Args().Get(0), cmd.Args().Get(1)
			data, err := os.ReadFile(src)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			dto, err := decodeDocument(data)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %s: %v", src, err), 1)
			}
			rec, err := dto.ToRecord()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %s: %v", src, err), 1)
			}
			natural := int(rec.Size)
			if natural == 0 {
				natural = cartstore.DefaultSize(target)
			}
			n, err := resolveSize(cmd, size, natural)
			if err != nil {
				return err
			}
			rec.Size = int32(n)
			return save(ctx, target, rec)
		},
	}
}

// decodeDocument accepts an export document or a bare record.
func decodeDocument(data []byte) (api.CartDTO, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return api.CartDTO{}, err
	}
	if rec, ok := probe["record"]; ok {
		data = rec
	}
	var dto api.CartDTO
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dto); err != nil {
		return api.CartDTO{}, err
	}
	return dto, nil
}
