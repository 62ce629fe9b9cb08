package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/npyz/compress"
	"github.com/arloliu/npyz/format"
	"github.com/arloliu/npyz/internal/logger"
)

var (
	logLevel  string
	logFormat string
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("NPYZ_LOG_LEVEL"),
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Sources:     cli.EnvVars("NPYZ_LOG_FORMAT"),
			Destination: &logFormat,
		},
	}
}

func newLogger(w io.Writer) (*slog.Logger, error) {
	level := logger.ParseLevel(logLevel)

	switch logFormat {
	case "", "text":
		return logger.Text(w, level).Logger, nil
	case "json":
		return logger.JSON(w, level).Logger, nil
	default:
		return nil, fmt.Errorf("unknown log format %q", logFormat)
	}
}

func stderrLogger() (*slog.Logger, error) {
	return newLogger(os.Stderr)
}

// parseShape parses "2,3" into []int{2, 3}. An empty string is a scalar.
func parseShape(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}

	parts := strings.Split(s, ",")
	shape := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid dimension %q in shape %q", p, s)
		}
		shape = append(shape, n)
	}

	return shape, nil
}

func parseCompression(name string) (format.CompressionType, error) {
	ct, ok := format.ParseCompression(strings.ToLower(name))
	if !ok {
		return 0, fmt.Errorf("unknown compression %q", name)
	}

	return ct, nil
}

func compressionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "level",
			Usage:   "compression level (-1 selects the codec default)",
			Value:   compress.LevelDefault,
			Sources: cli.EnvVars("NPYZ_LEVEL"),
		},
	}
}
