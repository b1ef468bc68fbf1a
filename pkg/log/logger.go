// Package log provides the structured, leveled logger used across tms.
//
// Core packages never reach for a process-wide logger: the CLI builds one
// Registry at start-up and hands named loggers to every component.
package log

import (
	"time"
)

// Level represents the severity level of a log message. Levels are ordered
// by their numeric code; a message is emitted iff its level is greater than
// or equal to the logger's threshold.
type Level int

// Log levels
const (
	DebugLevel Level = 10
	InfoLevel  Level = 20
	WarnLevel  Level = 30
	ErrorLevel Level = 40
	FatalLevel Level = 50
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Enabled reports whether a message at msgLevel passes the threshold l.
func (l Level) Enabled(msgLevel Level) bool {
	return msgLevel >= l
}

// Fields is a map of field names to values.
type Fields map[string]interface{}

// ComponentKey is the field carrying the logger name.
const ComponentKey = "component"

// Entry represents a single log entry.
type Entry struct {
	Level     Level
	Message   string
	Fields    Fields
	Timestamp time.Time
	Caller    string
}

// Logger defines the logging capability handed to tms components.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	// Printf-style variants. Arguments are formatted into the message.
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	With(fields ...Field) Logger
	WithComponent(component string) Logger

	// IsEnabled reports whether messages at level would be emitted.
	IsEnabled(level Level) bool

	SetLevel(level Level)
	GetLevel() Level
}

// Formatter defines the interface for formatting log entries.
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// Output defines the interface for log outputs.
type Output interface {
	Write(entry *Entry, formattedEntry []byte) error
	Close() error
}

// LoggerOption is a function that configures a logger.
type LoggerOption func(*BaseLogger)

// BaseLogger implements the Logger interface.
type BaseLogger struct {
	level     Level
	fields    Fields
	formatter Formatter
	outputs   []Output
	exit      func(int)
}

// NewLogger creates a new logger with the given options. Without options it
// logs INFO and above as text to the console.
func NewLogger(options ...LoggerOption) Logger {
	logger := &BaseLogger{
		level:     InfoLevel,
		fields:    Fields{},
		formatter: NewTextFormatter(),
		outputs:   []Output{},
	}

	for _, option := range options {
		option(logger)
	}

	if len(logger.outputs) == 0 {
		logger.outputs = append(logger.outputs, NewConsoleOutput(WithErrorToStderr()))
	}

	return logger
}

// Discard returns a logger that drops every entry.
func Discard() Logger {
	return NewLogger(WithLevel(FatalLevel+1), WithOutput(NewNullOutput()))
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) LoggerOption {
	return func(l *BaseLogger) {
		l.level = level
	}
}

// WithFormatter sets the log formatter.
func WithFormatter(formatter Formatter) LoggerOption {
	return func(l *BaseLogger) {
		l.formatter = formatter
	}
}

// WithOutput adds an output to the logger.
func WithOutput(output Output) LoggerOption {
	return func(l *BaseLogger) {
		l.outputs = append(l.outputs, output)
	}
}

// WithExitFunc replaces os.Exit for Fatal. Used by tests.
func WithExitFunc(exit func(int)) LoggerOption {
	return func(l *BaseLogger) {
		l.exit = exit
	}
}
