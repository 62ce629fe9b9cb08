package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/npyz/dtype"
	"github.com/arloliu/npyz/endian"
	"github.com/arloliu/npyz/format"
	"github.com/arloliu/npyz/ndarray"
	"github.com/arloliu/npyz/npz"
)

// Manifest lists the arrays packed into one archive.
type Manifest struct {
	Arrays []ArraySpec `yaml:"arrays" json:"arrays"`
}

// ArraySpec describes one array. Arrays without a name are positional and
// become arr_0, arr_1, ... in manifest order.
//
// The payload comes either from File, holding the raw element bytes in the
// byte order of DType, or from inline Values. Order is "F" (column-major,
// the default) or "C" (row-major) and applies to both.
type ArraySpec struct {
	Name   string `yaml:"name,omitempty" json:"name,omitempty"`
	DType  string `yaml:"dtype" json:"dtype"`
	Shape  []int  `yaml:"shape" json:"shape"`
	Order  string `yaml:"order,omitempty" json:"order,omitempty"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
	Values []any  `yaml:"values,omitempty" json:"values,omitempty"`
}

var errManifest = errors.New("invalid manifest")

// LoadManifest reads a manifest. Files ending in .json are parsed as JSON,
// anything else as YAML. Unknown fields are rejected.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m, err := parseManifest(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

func parseManifest(data []byte, isJSON bool) (*Manifest, error) {
	var m Manifest
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		// keep integers above 2^53 exact
		dec.UseNumber()
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("%w: %w", errManifest, err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// an empty document is an empty manifest
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", errManifest, err)
		}
	}

	if err := m.validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *Manifest) validate() error {
	seen := make(map[string]int, len(m.Arrays))
	for i, spec := range m.Arrays {
		if spec.DType == "" {
			return fmt.Errorf("%w: array %d: missing dtype", errManifest, i)
		}
		if spec.File != "" && spec.Values != nil {
			return fmt.Errorf("%w: array %d: file and values are mutually exclusive", errManifest, i)
		}
		switch spec.Order {
		case "", "F", "C":
		default:
			return fmt.Errorf("%w: array %d: order must be F or C, got %q", errManifest, i, spec.Order)
		}
		if spec.Name == "" {
			continue
		}
		if j, dup := seen[spec.Name]; dup {
			return fmt.Errorf("%w: arrays %d and %d are both named %q", errManifest, j, i, spec.Name)
		}
		seen[spec.Name] = i
	}

	return nil
}

// loadArrays builds every array of specs concurrently. Relative file paths are
// resolved against baseDir.
func loadArrays(ctx context.Context, specs []ArraySpec, baseDir string) ([]*ndarray.Array, error) {
	arrays := make([]*ndarray.Array, len(specs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range specs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			a, err := specs[i].build(baseDir)
			if err != nil {
				return fmt.Errorf("array %d (%s): %w", i, specs[i].label(), err)
			}
			arrays[i] = a

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return arrays, nil
}

// buildSet splits the loaded arrays into positional and keyword arrays and
// merges them.
func buildSet(specs []ArraySpec, arrays []*ndarray.Array) (*npz.ArraySet, error) {
	var positional []*ndarray.Array
	named := make(map[string]*ndarray.Array)
	for i, spec := range specs {
		if spec.Name == "" {
			positional = append(positional, arrays[i])
			continue
		}
		named[spec.Name] = arrays[i]
	}

	return npz.Merge(positional, named)
}

func (s *ArraySpec) label() string {
	if s.Name == "" {
		return "positional"
	}

	return s.Name
}

func (s *ArraySpec) build(baseDir string) (*ndarray.Array, error) {
	typ, err := dtype.Parse(s.DType)
	if err != nil {
		return nil, err
	}

	shape := s.Shape
	if shape == nil {
		shape = []int{}
	}

	var data []byte
	if s.File != "" {
		path := s.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		if data, err = os.ReadFile(path); err != nil {
			return nil, err
		}
	} else {
		if data, err = encodeValues(typ, s.Values); err != nil {
			return nil, err
		}
	}

	if s.Order == "C" {
		return ndarray.FromRowMajor(typ, shape, data)
	}

	return ndarray.FromBytes(typ, shape, data)
}

// encodeValues converts inline manifest values into element bytes of typ.
func encodeValues(typ dtype.Type, values []any) ([]byte, error) {
	width := typ.Width
	engine := typ.Order.Engine()
	data := make([]byte, len(values)*width)

	for i, v := range values {
		el := data[i*width : (i+1)*width]

		switch typ.Kind {
		case format.KindInt:
			x, err := toInt(v, width)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			putUint(engine, el, uint64(x))
		case format.KindUint:
			x, err := toUint(v, width)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			putUint(engine, el, x)
		case format.KindFloat:
			x, err := toFloat(v)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			putFloat(engine, el, x)
		case format.KindComplex:
			re, im, err := toComplex(v)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			putFloat(engine, el[:width/2], re)
			putFloat(engine, el[width/2:], im)
		case format.KindBool:
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("value %d: %v is not a boolean", i, v)
			}
			if b {
				el[0] = 1
			}
		case format.KindBytes:
			str, ok := v.(string)
			if !ok || len(str) > width {
				return nil, fmt.Errorf("value %d: %v is not a string of at most %d bytes", i, v, width)
			}
			copy(el, str)
		case format.KindUnicode:
			str, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("value %d: %v is not a string", i, v)
			}
			off := 0
			for _, r := range str {
				if off+4 > width {
					return nil, fmt.Errorf("value %d: %q exceeds %d characters", i, str, width/4)
				}
				engine.PutUint32(el[off:], uint32(r))
				off += 4
			}
		default:
			return nil, fmt.Errorf("unsupported element type %s", typ)
		}
	}

	return data, nil
}

func putUint(engine endian.EndianEngine, el []byte, x uint64) {
	switch len(el) {
	case 1:
		el[0] = byte(x)
	case 2:
		engine.PutUint16(el, uint16(x))
	case 4:
		engine.PutUint32(el, uint32(x))
	default:
		engine.PutUint64(el, x)
	}
}

func putFloat(engine endian.EndianEngine, el []byte, x float64) {
	if len(el) == 4 {
		engine.PutUint32(el, math.Float32bits(float32(x)))
		return
	}
	engine.PutUint64(el, math.Float64bits(x))
}

// toFloat accepts the number types produced by the YAML and JSON decoders.
func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case float64:
		return x, nil
	case json.Number:
		return x.Float64()
	default:
		return 0, fmt.Errorf("%v is not a number", v)
	}
}

func toInt(v any, width int) (int64, error) {
	var x int64
	switch n := v.(type) {
	case int:
		x = int64(n)
	case int64:
		x = n
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int%d", n, width*8)
		}
		x = int64(n)
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		x = int64(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, fmt.Errorf("%v is not an integer", n)
			}
			return toInt(f, width)
		}
		x = i
	default:
		return 0, fmt.Errorf("%v is not an integer", v)
	}

	bits := uint(width * 8)
	if bits < 64 {
		lim := int64(1) << (bits - 1)
		if x < -lim || x >= lim {
			return 0, fmt.Errorf("%d overflows int%d", x, bits)
		}
	}

	return x, nil
}

func toUint(v any, width int) (uint64, error) {
	var x uint64
	switch n := v.(type) {
	case int:
		if n < 0 {
			return 0, fmt.Errorf("%d is negative", n)
		}
		x = uint64(n)
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("%d is negative", n)
		}
		x = uint64(n)
	case uint64:
		x = n
	case float64:
		if n != math.Trunc(n) || n < 0 || n >= math.MaxUint64 {
			return 0, fmt.Errorf("%v is not an unsigned integer", n)
		}
		x = uint64(n)
	case json.Number:
		u, err := strconv.ParseUint(n.String(), 10, 64)
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, fmt.Errorf("%v is not an unsigned integer", n)
			}
			return toUint(f, width)
		}
		x = u
	default:
		return 0, fmt.Errorf("%v is not an unsigned integer", v)
	}

	bits := uint(width * 8)
	if bits < 64 && x >= uint64(1)<<bits {
		return 0, fmt.Errorf("%d overflows uint%d", x, bits)
	}

	return x, nil
}

// toComplex accepts a real number or a [real, imag] pair.
func toComplex(v any) (float64, float64, error) {
	pair, ok := v.([]any)
	if !ok {
		re, err := toFloat(v)
		return re, 0, err
	}
	if len(pair) != 2 {
		return 0, 0, fmt.Errorf("complex value needs [real, imag], got %v", v)
	}

	re, err := toFloat(pair[0])
	if err != nil {
		return 0, 0, err
	}
	im, err := toFloat(pair[1])
	if err != nil {
		return 0, 0, err
	}

	return re, im, nil
}
