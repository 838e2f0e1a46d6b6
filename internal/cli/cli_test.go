package cli

import (
	"bytes"
	"context"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer

	logger := newLogger(&out, false)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	logger.Info("hello", "size", 1024)
	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "size=1024")
	// Buffers are not terminals, so no escape codes.
	assert.NotContains(t, out.String(), "\x1b[")

	assert.True(t, newLogger(&out, true).Enabled(context.Background(), slog.LevelDebug))
}

// TestRootCommand runs a tiny sweep end to end through cobra.
func TestRootCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{
		"--min-size", "10", "--max-size", "11",
		"--start-stride", "1", "--end-stride", "3", "--stride-interval", "2",
		"--samples", "2", "--max-samples", "10", "--base-spread", "100000",
	})
	t.Cleanup(func() { rootCmd.SetArgs(nil); cfg = defaultConfig() })

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	row := regexp.MustCompile(`^(1|3) (2048|1024) \d+$`)
	groups := strings.Split(strings.TrimSuffix(out.String(), "\n\n"), "\n\n")
	require.Len(t, groups, 2)
	for _, group := range groups {
		lines := strings.Split(group, "\n")
		require.Len(t, lines, 2)
		for _, line := range lines {
			assert.Regexp(t, row, line)
		}
	}
}
