package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConsole(t *testing.T, min Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf, min, false)
	t.Cleanup(func() {
		SetOutput(os.Stderr, LevelWarn, true)
		Close()
	})
	return &buf
}

func TestConsoleThreshold(t *testing.T) {
	buf := withConsole(t, LevelWarn)

	Info("hidden %d", 1)
	Warn("shown %s", "warn")
	Error("shown %s", "error")

	out := buf.String()
	assert.NotContains(t, out, "hidden 1")
	assert.Contains(t, out, "[WARN] shown warn")
	assert.Contains(t, out, "[EROR] shown error")
	assert.NotContains(t, out, "\033[", "colour disabled")
}

func TestFileLogRecordsAllLevels(t *testing.T) {
	_ = withConsole(t, LevelError)
	dir := t.TempDir()

	fixed := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	orig := nowFn
	nowFn = func() time.Time { return fixed }
	t.Cleanup(func() { nowFn = orig })

	require.NoError(t, Init(dir))
	Info("login user=%s", "alice")
	Warn("session not persisted")
	Close()

	b, err := os.ReadFile(filepath.Join(dir, "logs", "2026-10-18.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2026/10/18 09:30:00 [INFO] login user=alice", lines[0])
	assert.Equal(t, "2026/10/18 09:30:00 [WARN] session not persisted", lines[1])
}

func TestInitKeepsExplicitLogsDir(t *testing.T) {
	_ = withConsole(t, LevelError)
	dir := filepath.Join(t.TempDir(), "logs")

	require.NoError(t, Init(dir))
	Info("x")
	Close()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	_, err = os.Stat(filepath.Join(dir, "logs"))
	assert.True(t, os.IsNotExist(err))
}

func TestInitEmptyIsNoop(t *testing.T) {
	require.NoError(t, Init(""))
}
