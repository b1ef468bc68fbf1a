package log

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Config defines logging configuration.
type Config struct {
	// Level sets the minimum log level (debug, info, warn, error)
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format sets the output format (text, json)
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// File, when set, adds a file output next to the console.
	File string `json:"file" yaml:"file" mapstructure:"file"`

	// NoColor disables ANSI colors in text output
	NoColor bool `json:"no_color" yaml:"no_color" mapstructure:"no_color"`

	// EnableCaller enables adding caller information to logs
	EnableCaller bool `json:"enable_caller" yaml:"enable_caller" mapstructure:"enable_caller"`

	// Writer overrides the console destination (stderr by default).
	Writer io.Writer `json:"-" yaml:"-" mapstructure:"-"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "text",
	}
}

// ApplyConfig creates a logger from a configuration.
func ApplyConfig(config *Config) (Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	level, err := ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}

	options := []LoggerOption{WithLevel(level)}

	switch strings.ToLower(config.Format) {
	case "json":
		options = append(options, WithFormatter(&JSONFormatter{
			EnableCaller: config.EnableCaller,
		}))
	case "text", "":
		options = append(options, WithFormatter(&TextFormatter{
			EnableCaller:  config.EnableCaller,
			DisableColors: config.NoColor,
		}))
	default:
		return nil, fmt.Errorf("invalid log format: %s", config.Format)
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}
	options = append(options, WithOutput(NewConsoleOutput(WithCustomWriter(writer))))

	if config.File != "" {
		options = append(options, WithOutput(NewFileOutput(os.ExpandEnv(config.File))))
	}

	return NewLogger(options...), nil
}

// ParseLevel parses a level name, case-insensitively, into a Level.
// An empty name yields InfoLevel.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level: %s", level)
	}
}
