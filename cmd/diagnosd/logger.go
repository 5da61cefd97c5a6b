package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"diagnosd/internal/config"
)

// newLogger builds the process logger. When cfg.LogFile is set, output is
// duplicated into a size-rotated file. The returned func closes that file.
func newLogger(cfg config.Config, stderr io.Writer) (zerolog.Logger, func(), error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer
	switch cfg.LogFormat {
	case "console":
		out = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}
	case "json", "":
		out = stderr
	default:
		return zerolog.Nop(), func() {}, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}

	closeFn := func() {}
	if cfg.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(out, lj)
		closeFn = func() { _ = lj.Close() }
	}

	l := zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "diagnosd").Logger()
	return l, closeFn, nil
}
