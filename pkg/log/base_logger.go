package log

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"
)

// Debug logs a message at the debug level with fields.
func (l *BaseLogger) Debug(msg string, fields ...Field) {
	if l.IsEnabled(DebugLevel) {
		l.logWithFields(DebugLevel, msg, fields)
	}
}

// Info logs a message at the info level with fields.
func (l *BaseLogger) Info(msg string, fields ...Field) {
	if l.IsEnabled(InfoLevel) {
		l.logWithFields(InfoLevel, msg, fields)
	}
}

// Warn logs a message at the warn level with fields.
func (l *BaseLogger) Warn(msg string, fields ...Field) {
	if l.IsEnabled(WarnLevel) {
		l.logWithFields(WarnLevel, msg, fields)
	}
}

// Error logs a message at the error level with fields.
func (l *BaseLogger) Error(msg string, fields ...Field) {
	if l.IsEnabled(ErrorLevel) {
		l.logWithFields(ErrorLevel, msg, fields)
	}
}

// Fatal logs a message at the fatal level with fields and then exits.
func (l *BaseLogger) Fatal(msg string, fields ...Field) {
	if l.IsEnabled(FatalLevel) {
		l.logWithFields(FatalLevel, msg, fields)
	}
	if l.exit != nil {
		l.exit(1)
		return
	}
	os.Exit(1)
}

// Debugf logs a formatted message at the debug level.
func (l *BaseLogger) Debugf(format string, args ...interface{}) {
	if l.IsEnabled(DebugLevel) {
		l.logWithFields(DebugLevel, fmt.Sprintf(format, args...), nil)
	}
}

// Infof logs a formatted message at the info level.
func (l *BaseLogger) Infof(format string, args ...interface{}) {
	if l.IsEnabled(InfoLevel) {
		l.logWithFields(InfoLevel, fmt.Sprintf(format, args...), nil)
	}
}

// Warnf logs a formatted message at the warn level.
func (l *BaseLogger) Warnf(format string, args ...interface{}) {
	if l.IsEnabled(WarnLevel) {
		l.logWithFields(WarnLevel, fmt.Sprintf(format, args...), nil)
	}
}

// Errorf logs a formatted message at the error level.
func (l *BaseLogger) Errorf(format string, args ...interface{}) {
	if l.IsEnabled(ErrorLevel) {
		l.logWithFields(ErrorLevel, fmt.Sprintf(format, args...), nil)
	}
}

// WithField returns a new logger with the field added to it.
func (l *BaseLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(Fields{key: value})
}

// WithFields returns a new logger with the fields added to it.
func (l *BaseLogger) WithFields(fields Fields) Logger {
	newLogger := l.clone()
	for k, v := range fields {
		newLogger.fields[k] = v
	}
	return newLogger
}

// With adds fields to the logger.
func (l *BaseLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}

	newLogger := l.clone()
	for _, field := range fields {
		newLogger.fields[field.Key] = field.Value
	}
	return newLogger
}

// WithError returns a new logger with the error added as a field.
func (l *BaseLogger) WithError(err error) Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

// WithComponent returns a new logger with the component field added.
func (l *BaseLogger) WithComponent(component string) Logger {
	return l.WithField(ComponentKey, component)
}

// IsEnabled reports whether messages at level pass the threshold.
func (l *BaseLogger) IsEnabled(level Level) bool {
	return l.level.Enabled(level)
}

// SetLevel sets the minimum log level.
func (l *BaseLogger) SetLevel(level Level) {
	l.level = level
}

// GetLevel returns the current minimum log level.
func (l *BaseLogger) GetLevel() Level {
	return l.level
}

// Outputs returns the configured log outputs.
func (l *BaseLogger) Outputs() []Output {
	return l.outputs
}

func (l *BaseLogger) clone() *BaseLogger {
	newLogger := &BaseLogger{
		level:     l.level,
		formatter: l.formatter,
		outputs:   l.outputs,
		exit:      l.exit,
		fields:    make(Fields, len(l.fields)),
	}
	for k, v := range l.fields {
		newLogger.fields[k] = v
	}
	return newLogger
}

// logWithFields creates a log entry from Field structs and writes it to all outputs.
func (l *BaseLogger) logWithFields(level Level, msg string, fields []Field) {
	entryFields := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		entryFields[k] = v
	}
	for _, field := range fields {
		entryFields[field.Key] = field.Value
	}

	l.writeEntry(level, msg, entryFields)
}

func (l *BaseLogger) writeEntry(level Level, msg string, fields Fields) {
	_, file, line, ok := runtime.Caller(3)
	caller := "unknown"
	if ok {
		parts := strings.Split(file, "/")
		if len(parts) > 2 {
			caller = fmt.Sprintf("%s:%d", strings.Join(parts[len(parts)-2:], "/"), line)
		} else {
			caller = fmt.Sprintf("%s:%d", file, line)
		}
	}

	entry := &Entry{
		Level:     level,
		Message:   msg,
		Fields:    fields,
		Timestamp: time.Now(),
		Caller:    caller,
	}

	formattedEntry, err := l.formatter.Format(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting log entry: %v\n", err)
		return
	}

	for _, output := range l.outputs {
		if err := output.Write(entry, formattedEntry); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to log output: %v\n", err)
		}
	}
}
