package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/npyz/format"
	"github.com/arloliu/npyz/npz"
)

func packCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "manifest",
			Aliases:  []string{"m"},
			Usage:    "YAML or JSON manifest listing the arrays",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o", "out"},
			Usage:    "output .npz path or object name",
			Required: true,
		},
		&cli.BoolFlag{
			Name:    "compress",
			Usage:   "compress archive entries",
			Sources: cli.EnvVars("NPYZ_COMPRESS"),
		},
		&cli.StringFlag{
			Name:    "method",
			Usage:   "entry compression method (deflate, zstd)",
			Value:   "deflate",
			Sources: cli.EnvVars("NPYZ_METHOD"),
		},
	}
	flags = append(flags, compressionFlags()...)
	flags = append(flags, destinationFlags()...)

	return &cli.Command{
		Name:  "pack",
		Usage: "Pack the arrays listed in a manifest into an .npz archive",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			manifestPath := cmd.String("manifest")
			m, err := LoadManifest(manifestPath)
			if err != nil {
				return err
			}

			arrays, err := loadArrays(ctx, m.Arrays, filepath.Dir(manifestPath))
			if err != nil {
				return err
			}

			set, err := buildSet(m.Arrays, arrays)
			if err != nil {
				return err
			}

			opts, err := packOptions(cmd)
			if err != nil {
				return err
			}

			w, err := npz.NewWriter(opts...)
			if err != nil {
				return err
			}

			s, err := openSink(ctx, cmd)
			if err != nil {
				return err
			}

			report, err := w.WriteTo(ctx, s, cmd.String("output"), set)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.Root().Writer, "wrote %d arrays to %s (%d bytes encoded, %d bytes stored)\n",
				len(report.Entries), report.Destination, report.OriginalSize(), report.CompressedSize())

			return err
		},
	}
}

func packOptions(cmd *cli.Command) ([]npz.WriterOption, error) {
	log, err := stderrLogger()
	if err != nil {
		return nil, err
	}

	opts := []npz.WriterOption{npz.WithLogger(log)}
	if !cmd.Bool("compress") {
		return opts, nil
	}

	ct, err := parseCompression(cmd.String("method"))
	if err != nil {
		return nil, err
	}
	if !slices.Contains([]format.CompressionType{format.CompressionDeflate, format.CompressionZstd}, ct) {
		return nil, fmt.Errorf("--method must be deflate or zstd, got %q", cmd.String("method"))
	}

	return append(opts,
		npz.WithCompressionMethod(ct),
		npz.WithCompressionLevel(int(cmd.Int("level"))),
	), nil
}
