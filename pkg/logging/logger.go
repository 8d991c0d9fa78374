package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level is ordered coarsest to finest: a logger configured at some level
// lets through every message at that level or any coarser one.
type Level int8

const (
	LevelNone Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
	LevelAll
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	case LevelAll:
		return "all"
	default:
		return fmt.Sprintf("level(%d)", int8(l))
	}
}

func (l Level) zerologLevel() zerolog.Level {
	switch {
	case l <= LevelNone:
		return zerolog.Disabled
	case l == LevelWarn:
		return zerolog.WarnLevel
	case l == LevelInfo:
		return zerolog.InfoLevel
	case l == LevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off", "":
		return LevelNone, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	case "all":
		return LevelAll, nil
	}
	return LevelNone, fmt.Errorf("unknown log level %q", s)
}

type Format int

const (
	// Human readable lines, through zerolog's console writer
	FormatText Format = iota
	// One JSON object per event
	FormatJSON
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "console", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("unknown log format %q", s)
}

// Logger couples a level threshold with an output. Structured events go
// through zerolog; multi-line reports ask for the raw sink with Writer.
type Logger struct {
	level Level
	out   io.Writer
	zl    zerolog.Logger
}

func New(level Level, out io.Writer, format Format) *Logger {
	sink := out
	if format == FormatText {
		sink = zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.TimeOnly}
	}

	return &Logger{
		level: level,
		out:   out,
		zl:    zerolog.New(sink).Level(level.zerologLevel()).With().Timestamp().Logger(),
	}
}

// Logger that lets nothing through
func Nop() *Logger {
	return &Logger{level: LevelNone, out: io.Discard, zl: zerolog.Nop()}
}

func (l *Logger) Level() Level {
	return l.level
}

// Whether a message at 'level' passes the configured threshold.
// None never passes, All passes only a logger configured at All.
func (l *Logger) Allows(level Level) bool {
	if level <= LevelNone {
		return false
	}
	return level <= l.level
}

// The raw sink for messages at 'level', if they pass the threshold
func (l *Logger) Writer(level Level) (io.Writer, bool) {
	if !l.Allows(level) {
		return nil, false
	}
	return l.out, true
}

// Write a single formatted line at 'level'
func (l *Logger) Printf(level Level, format string, args ...any) {
	if w, ok := l.Writer(level); ok {
		fmt.Fprintf(w, format+"\n", args...)
	}
}

// Child logger attaching 'key'='value' to every structured event
func (l *Logger) With(key, value string) *Logger {
	return &Logger{
		level: l.level,
		out:   l.out,
		zl:    l.zl.With().Str(key, value).Logger(),
	}
}

func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
