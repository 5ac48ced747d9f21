package logging

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "unknown"} {
		l := New(Config{Level: level, Output: "stdout"})
		require.NotNil(t, l)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	l := New(Config{Level: "info", Format: "json", Output: "stdout"})
	assert.NotNil(t, l)
}

func TestNew_TextFormat(t *testing.T) {
	l := New(Config{Level: "info", Format: "text", Output: "stderr"})
	assert.NotNil(t, l)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	l := New(Config{Level: "info", Format: "json", Output: "file", FilePath: path})
	require.NotNil(t, l)
	l.Info("test message")
}

func TestNew_FileOutputInvalidDirFallsBackToStdout(t *testing.T) {
	l := New(Config{Level: "info", Format: "json", Output: "file", FilePath: "/nonexistent/deeply/nested/dir/run.log"})
	require.NotNil(t, l)
	l.Info("still logs")
}

func TestWithRun_TagsEveryLine(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	tagged := WithRun(base, "run-123")
	tagged.Info("hello")

	assert.Contains(t, buf.String(), `"run_id":"run-123"`)
}
