package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level Level) (Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewLogger(
		WithLevel(level),
		WithFormatter(&TextFormatter{DisableColors: true, DisableTimestamp: true}),
		WithOutput(NewConsoleOutput(WithCustomWriter(buf))),
	)
	return logger, buf
}

func TestLevelOrdering(t *testing.T) {
	assert.Equal(t, Level(10), DebugLevel)
	assert.Equal(t, Level(20), InfoLevel)
	assert.Equal(t, Level(30), WarnLevel)
	assert.Equal(t, Level(40), ErrorLevel)

	assert.True(t, WarnLevel.Enabled(ErrorLevel))
	assert.True(t, WarnLevel.Enabled(WarnLevel))
	assert.False(t, WarnLevel.Enabled(InfoLevel))
}

func TestThresholdFiltering(t *testing.T) {
	logger, buf := newBufferLogger(WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Errorf("error %d", 42)

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "WARN  warn message")
	assert.Contains(t, out, "ERROR error 42")
	assert.False(t, logger.IsEnabled(InfoLevel))
	assert.True(t, logger.IsEnabled(ErrorLevel))
}

func TestTextFormatterFieldsSorted(t *testing.T) {
	logger, buf := newBufferLogger(DebugLevel)

	logger.WithComponent("workspace").Info("copied", Str("to", "/b"), Str("from", "/a"))

	assert.Equal(t, "INFO  [workspace] copied from=/a to=/b\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(
		WithLevel(InfoLevel),
		WithFormatter(&JSONFormatter{}),
		WithOutput(NewConsoleOutput(WithCustomWriter(buf))),
	)

	logger.Info("hello", Int("port", 8080))

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, "INFO", data["level"])
	assert.Equal(t, "hello", data["message"])
	assert.Equal(t, float64(8080), data["port"])
}

func TestWithDoesNotMutateParent(t *testing.T) {
	logger, buf := newBufferLogger(InfoLevel)

	child := logger.With(Str("project", "web"))
	child.Info("child")
	logger.Info("parent")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "project=web")
	assert.NotContains(t, lines[1], "project=web")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.False(t, logger.IsEnabled(ErrorLevel))
	logger.Error("nothing happens")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"INFO", InfoLevel, false},
		{"Warn", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"", InfoLevel, false},
		{"close", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyConfig(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := ApplyConfig(&Config{Level: "error", Format: "text", NoColor: true, Writer: buf})
	require.NoError(t, err)
	assert.Equal(t, ErrorLevel, logger.GetLevel())

	logger.Warn("dropped")
	logger.Error("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")

	_, err = ApplyConfig(&Config{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	root, buf := newBufferLogger(InfoLevel)
	registry := NewRegistry(root)

	a := registry.Get("config")
	b := registry.Get("config")
	assert.Same(t, a.(*BaseLogger), b.(*BaseLogger))

	registry.Get("workspace").Debug("hidden")
	assert.Empty(t, buf.String())

	registry.SetLevel(DebugLevel)
	registry.Get("workspace").Debug("visible")
	registry.Get("later").Debug("also visible")
	assert.Contains(t, buf.String(), "[workspace] visible")
	assert.Contains(t, buf.String(), "[later] also visible")
	assert.Equal(t, []string{"config", "later", "workspace"}, registry.Names())
}

func TestTestLoggerSharesEntries(t *testing.T) {
	logger := NewTestLogger()
	logger.WithComponent("ini").Warn("syntax error", Int("line", 3))

	assert.True(t, logger.AssertLogged(WarnLevel, "syntax error"))
	assert.True(t, logger.AssertLoggedWithField(WarnLevel, "syntax", "line", 3))
	assert.Len(t, logger.GetEntries(), 1)
}

func TestFatalCallsExitFunc(t *testing.T) {
	buf := &bytes.Buffer{}
	var code int
	logger := NewLogger(
		WithFormatter(&TextFormatter{DisableColors: true, DisableTimestamp: true}),
		WithOutput(NewConsoleOutput(WithCustomWriter(buf))),
		WithExitFunc(func(c int) { code = c }),
	)

	logger.Fatal("cannot continue", Str("reason", "test"))
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "cannot continue")
}
