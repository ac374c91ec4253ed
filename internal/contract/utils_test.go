package contract

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/doralens/schema"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorBand(t *testing.T) {
	tests := []struct {
		name string
		band schema.PerformanceBand
	}{
		{"elite", schema.EliteBand},
		{"high", schema.HighBand},
		{"medium", schema.MediumBand},
		{"low", schema.LowBand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Should contain the plain label
			assert.Contains(t, GetColorBand(tt.band), string(tt.band))
		})
	}

	assert.Empty(t, GetColorBand(schema.NoBand))
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		// Verify file was created
		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "alice", TruncateName("alice", 10))
	assert.Equal(t, "dependa...", TruncateName("dependabot[bot]", 10))
	assert.Equal(t, "abcdef", TruncateName("abcdef", 3), "tiny widths leave names intact")
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestConfigureLogging(t *testing.T) {
	defer func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.TextFormatter{})
	}()

	var buf bytes.Buffer
	require.NoError(t, ConfigureLogging("debug", JSONLogFormat, &buf))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	Logger("fetch").Debug("hello")
	assert.Contains(t, buf.String(), `"component":"fetch"`)
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	assert.Error(t, ConfigureLogging("loud", TextLogFormat, nil))
	assert.Error(t, ConfigureLogging("info", "xml", nil))
}

func TestLogFatalExits(t *testing.T) {
	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	defer logrus.SetOutput(os.Stderr)

	code := -1
	exitFunc = func(c int) { code = c }
	defer func() { exitFunc = os.Exit }()

	LogFatal("Cannot fetch", errors.New("boom"))
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "Fatal Cannot fetch")
	assert.Contains(t, buf.String(), "boom")

	buf.Reset()
	LogWarn("Slow upstream", errors.New("timeout"))
	assert.Contains(t, buf.String(), "Slow upstream")
}
