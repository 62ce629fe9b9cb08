package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/npyz/dtype"
	"github.com/arloliu/npyz/format"
	"github.com/arloliu/npyz/ndarray"
	"github.com/arloliu/npyz/npy"
)

func convertCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i", "in"},
			Usage:    "raw element bytes in the byte order of --dtype",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "dtype",
			Usage:    "NPY type descriptor, e.g. <f8, >i4, |u1, <U16",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "shape",
			Usage: "comma separated dimensions; empty for a scalar",
		},
		&cli.StringFlag{
			Name:  "order",
			Usage: "memory order of the input (F or C)",
			Value: "F",
		},
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o", "out"},
			Usage:    "output .npy path or object name",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "byte-order",
			Usage: "byte order of the output (native, little, big)",
			Value: "native",
		},
		&cli.StringFlag{
			Name:    "stream-compression",
			Usage:   "compress the whole file (none, zstd, s2, lz4, deflate)",
			Value:   "none",
			Sources: cli.EnvVars("NPYZ_STREAM_COMPRESSION"),
		},
	}
	flags = append(flags, compressionFlags()...)
	flags = append(flags, destinationFlags()...)

	return &cli.Command{
		Name:  "convert",
		Usage: "Convert a raw binary file into an .npy file",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := readRaw(cmd.String("input"), cmd.String("dtype"), cmd.String("shape"), cmd.String("order"))
			if err != nil {
				return err
			}

			opts, err := convertOptions(cmd)
			if err != nil {
				return err
			}

			enc, err := npy.NewEncoder(opts...)
			if err != nil {
				return err
			}

			s, err := openSink(ctx, cmd)
			if err != nil {
				return err
			}

			output := cmd.String("output")
			if err := enc.WriteTo(ctx, s, output, a); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.Root().Writer, "wrote %s to %s\n", a, output)

			return err
		},
	}
}

func readRaw(path, descr, shapeStr, order string) (*ndarray.Array, error) {
	typ, err := dtype.Parse(descr)
	if err != nil {
		return nil, err
	}

	shape, err := parseShape(shapeStr)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch order {
	case "F", "f":
		return ndarray.FromBytes(typ, shape, data)
	case "C", "c":
		return ndarray.FromRowMajor(typ, shape, data)
	default:
		return nil, fmt.Errorf("--order must be F or C, got %q", order)
	}
}

func convertOptions(cmd *cli.Command) ([]npy.EncoderOption, error) {
	var opts []npy.EncoderOption

	switch cmd.String("byte-order") {
	case "", "native":
		opts = append(opts, npy.WithNativeEndian())
	case "little":
		opts = append(opts, npy.WithLittleEndian())
	case "big":
		opts = append(opts, npy.WithBigEndian())
	default:
		return nil, fmt.Errorf("unknown byte order %q", cmd.String("byte-order"))
	}

	ct, err := parseCompression(cmd.String("stream-compression"))
	if err != nil {
		return nil, err
	}
	if ct != format.CompressionNone {
		opts = append(opts, npy.WithStreamCompression(ct, int(cmd.Int("level"))))
	}

	return opts, nil
}
