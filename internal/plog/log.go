// Package plog wraps zerolog with the handful of structured fields a
// scheduler log line carries: colour round and SCC id — grounded on jhkimqd-chaos-utils/pkg/reporting's
// Logger wrapper shape (configurable level/format, a child-logger
// WithField/WithFields builder), adapted from chaos-injection fields
// to scheduling fields.
package plog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level mirrors zerolog's level set under scheduler-neutral names.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Config configures a Logger.
type Config struct {
	Level  Level
	Pretty bool // console-writer output instead of JSON
	Output io.Writer
}

// Logger is a thin structured-logging wrapper around zerolog.Logger.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger from cfg, defaulting to JSON-on-stdout at info
// level when fields are left zero.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	z := zerolog.New(out).With().Timestamp().Logger()
	switch cfg.Level {
	case LevelDebug:
		z = z.Level(zerolog.DebugLevel)
	case LevelWarn:
		z = z.Level(zerolog.WarnLevel)
	case LevelError:
		z = z.Level(zerolog.ErrorLevel)
	default:
		z = z.Level(zerolog.InfoLevel)
	}
	return &Logger{z: z}
}

// WithColour returns a child logger tagging every event with the
// current colour round.
func (l *Logger) WithColour(c int) *Logger {
	return &Logger{z: l.z.With().Int("colour", c).Logger()}
}

// WithSCC returns a child logger tagging every event with an SCC id.
func (l *Logger) WithSCC(id int) *Logger {
	return &Logger{z: l.z.With().Int("scc", id).Logger()}
}

func (l *Logger) Debug(msg string) { l.z.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.z.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.z.Warn().Msg(msg) }

// Error logs msg at error level with the triggering error attached.
func (l *Logger) Error(msg string, err error) {
	l.z.Error().Err(err).Msg(msg)
}

// Bug logs a BugError-class abort: the design-invariant violations of
// §7 that the driver surfaces rather than retries.
func (l *Logger) Bug(msg string, err error) {
	l.z.Error().Err(err).Bool("bug", true).Msg(msg)
}
