package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/arloliu/npyz/format"
	"github.com/arloliu/npyz/npy"
	"github.com/arloliu/npyz/npz"
	"github.com/arloliu/npyz/section"
)

// fileInfo is the JSON document printed by inspect.
type fileInfo struct {
	Path   string      `json:"path"`
	Format string      `json:"format"`
	Arrays []arrayInfo `json:"arrays"`
}

type arrayInfo struct {
	Name         string `json:"name,omitempty"`
	Version      string `json:"version"`
	Descr        string `json:"descr"`
	FortranOrder bool   `json:"fortran_order"`
	Shape        []int  `json:"shape"`

	Origin         string `json:"origin,omitempty"`
	Method         string `json:"method,omitempty"`
	OriginalSize   int64  `json:"original_size,omitempty"`
	CompressedSize int64  `json:"compressed_size,omitempty"`
	CRC32          string `json:"crc32,omitempty"`
	Checksum       string `json:"xxhash64,omitempty"`
}

var zipMagic = []byte("PK")

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the headers of an .npy file or the entries of an .npz archive as JSON",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "stream-compression",
				Usage:   "decompress an .npy file written with stream compression",
				Value:   "none",
				Sources: cli.EnvVars("NPYZ_STREAM_COMPRESSION"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("inspect needs exactly one FILE argument")
			}

			ct, err := parseCompression(cmd.String("stream-compression"))
			if err != nil {
				return err
			}

			info, err := inspectFile(cmd.Args().First(), ct)
			if err != nil {
				return err
			}

			return writeJSON(cmd.Root().Writer, info)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(out, '\n'))

	return err
}

func inspectFile(path string, ct format.CompressionType) (*fileInfo, error) {
	if ct == format.CompressionNone {
		isZip, err := hasZipMagic(path)
		if err != nil {
			return nil, err
		}
		if isZip {
			return inspectArchive(path)
		}
	}

	h, err := npy.ReadHeader(path, npy.WithStreamDecompression(ct))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &fileInfo{Path: path, Format: "npy", Arrays: []arrayInfo{headerInfo(h)}}, nil
}

func hasZipMagic(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	prefix := make([]byte, len(zipMagic))
	if _, err := io.ReadFull(f, prefix); err != nil {
		return false, nil //nolint: nilerr // too short for either format; the NPY reader reports it
	}

	return bytes.Equal(prefix, zipMagic), nil
}

func inspectArchive(path string) (*fileInfo, error) {
	r, err := npz.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	info := &fileInfo{Path: path, Format: "npz", Arrays: make([]arrayInfo, 0, r.Len())}
	for _, name := range r.Names() {
		h, err := r.Header(name)
		if err != nil {
			return nil, err
		}
		st, err := r.Stat(name)
		if err != nil {
			return nil, err
		}

		ai := headerInfo(h)
		ai.Name = name
		ai.Origin = st.Origin.String()
		ai.Method = st.Algorithm.String()
		ai.OriginalSize = st.OriginalSize
		ai.CompressedSize = st.CompressedSize
		ai.CRC32 = fmt.Sprintf("%08x", st.CRC32)
		ai.Checksum = strconv.FormatUint(st.Checksum, 16)
		info.Arrays = append(info.Arrays, ai)
	}

	return info, nil
}

func headerInfo(h *section.Header) arrayInfo {
	shape := h.Shape
	if shape == nil {
		shape = []int{}
	}

	return arrayInfo{
		Version:      h.Version.String(),
		Descr:        h.Descr,
		FortranOrder: h.FortranOrder,
		Shape:        shape,
	}
}
