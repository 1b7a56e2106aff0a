package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLBeforeInitIsNoop(t *testing.T) {
	logger = nil
	l := L()
	assert.NotNil(t, l)
	l.Infow("dropped", "k", "v")
	assert.NotNil(t, l.With("k", "v"))

	var nilLogger *Logger
	assert.Same(t, noopLogger, nilLogger.With("k", "v"))
}

func TestSelectLogPathPrefersOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SPOTLIGHT_LOG_DIR", dir)
	assert.Equal(t, filepath.Join(dir, "app-debug.log"), selectLogPath("spotlight", "dev"))
	assert.Equal(t, filepath.Join(dir, "app.log"), selectLogPath("spotlight", "prod"))
}

func TestDetectLogLevel(t *testing.T) {
	t.Setenv("SPOTLIGHT_ENV", "dev")
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, zap.DebugLevel, detectLogLevel())

	t.Setenv("SPOTLIGHT_ENV", "prod")
	assert.Equal(t, zap.InfoLevel, detectLogLevel())

	t.Setenv("LOG_LEVEL", "warning")
	assert.Equal(t, zap.WarnLevel, detectLogLevel())
}

func TestInitWritesToLogDir(t *testing.T) {
	t.Setenv("SPOTLIGHT_LOG_DIR", t.TempDir())
	t.Setenv("SPOTLIGHT_ENV", "prod")
	Init("spotlight")
	t.Cleanup(func() { logger = nil })

	L().Infow("hello", "view", "about")
	Sync()
	SetLevel(zap.ErrorLevel)
	assert.False(t, L().Desugar().Core().Enabled(zap.InfoLevel))
}

func TestInitFileOnlyKeepsStderrClean(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SPOTLIGHT_LOG_DIR", dir)
	t.Setenv("SPOTLIGHT_ENV", "dev")

	stderr, err := os.CreateTemp(t.TempDir(), "stderr")
	require.NoError(t, err)
	orig := os.Stderr
	os.Stderr = stderr
	t.Cleanup(func() {
		os.Stderr = orig
		logger = nil
	})

	Init("spotlight-tui", FileOnly())
	L().Infow("view changed", "to", "projects")
	Sync()

	out, err := os.ReadFile(stderr.Name())
	require.NoError(t, err)
	assert.Empty(t, out)

	logged, err := os.ReadFile(filepath.Join(dir, "app-debug.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logged), "view changed")
}

func TestInitDevTeesToStderr(t *testing.T) {
	t.Setenv("SPOTLIGHT_LOG_DIR", t.TempDir())
	t.Setenv("SPOTLIGHT_ENV", "dev")

	stderr, err := os.CreateTemp(t.TempDir(), "stderr")
	require.NoError(t, err)
	orig := os.Stderr
	os.Stderr = stderr
	t.Cleanup(func() {
		os.Stderr = orig
		logger = nil
	})

	Init("spotlight")
	L().Info("serving")
	Sync()

	out, err := os.ReadFile(stderr.Name())
	require.NoError(t, err)
	assert.Contains(t, string(out), "serving")
}

func TestInitTestInstallsLogger(t *testing.T) {
	t.Cleanup(func() { logger = nil })
	InitTest()
	assert.NotSame(t, noopLogger, L())
	assert.True(t, L().Desugar().Core().Enabled(zap.DebugLevel))
}
