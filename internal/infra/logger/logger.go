// Package logger provides structured logging using zerolog.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Config represents logger configuration.
type Config struct {
	Output string // "stdout", "stderr", or file path
	Level  string // "debug", "info", "warn", "error"
	File   string // log file path (used when Output is not stdout/stderr)
}

// console reports whether output goes to a terminal stream.
func (c Config) console() bool {
	switch strings.ToLower(c.Output) {
	case "stdout", "stderr", "":
		return true
	}
	return false
}

// Init initializes the global zerolog logger with the given configuration.
func Init(cfg Config) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	writer, err := openWriter(cfg)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.TimeOnly
	zerolog.TimestampFieldName = "time"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.CallerMarshalFunc = shortCaller

	logger := newLogger(writer, cfg.console(), level)
	zerolog.DefaultContextLogger = &logger
	zlog.Logger = logger

	return nil
}

func openWriter(cfg Config) (io.Writer, error) {
	switch strings.ToLower(cfg.Output) {
	case "stdout", "":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open log file %s", cfg.File)
	}
	return f, nil
}

// newLogger uses a colored ConsoleWriter for terminals and JSON otherwise.
// Caller info is attached only at debug level.
func newLogger(w io.Writer, console bool, level zerolog.Level) zerolog.Logger {
	debug := level == zerolog.DebugLevel

	if console {
		cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
		if debug {
			cw.PartsOrder = []string{"time", "level", "message", "caller"}
			cw.FormatCaller = func(i interface{}) string {
				s, _ := i.(string)
				return "(" + s + ")"
			}
		}
		w = cw
	}

	ctx := zerolog.New(w).With().Timestamp()
	if debug {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// shortCaller trims the caller path to its last directory and file name.
func shortCaller(_ uintptr, file string, line int) string {
	parts := strings.Split(file, string(filepath.Separator))
	if len(parts) > 1 {
		return filepath.Join(parts[len(parts)-2:]...) + ":" + strconv.Itoa(line)
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}

// ParseLevel parses a log level name. An empty name means info.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, errors.Newf("unknown log level %q", level)
	}
}
