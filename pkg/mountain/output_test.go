package mountain_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivanshkc/mountain/pkg/mountain"
)

// writeSmallSweep feeds two groups of two rows to w.
func writeSmallSweep(t *testing.T, w mountain.RowWriter) {
	t.Helper()
	for _, size := range []uint64{2048, 1024} {
		for _, stride := range []uint{1, 3} {
			require.NoError(t, w.WriteRow(mountain.Row{Stride: stride, Size: size, Nanoseconds: size/1024*10 + uint64(stride)}))
		}
		require.NoError(t, w.EndGroup())
	}
	require.NoError(t, w.Flush())
}

func TestNewRowWriter(t *testing.T) {
	for _, format := range mountain.Formats() {
		w, err := mountain.NewRowWriter(format, &bytes.Buffer{}, 0)
		require.NoError(t, err)
		assert.NotNil(t, w)
	}

	_, err := mountain.NewRowWriter("yaml", &bytes.Buffer{}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plain, table, csv, markdown")
}

func TestPlainWriter(t *testing.T) {
	var out bytes.Buffer
	writeSmallSweep(t, mountain.NewPlainWriter(&out))
	assert.Equal(t, "1 2048 21\n3 2048 23\n\n1 1024 11\n3 1024 13\n\n", out.String())
}

func TestTableWriter(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		var out bytes.Buffer
		writeSmallSweep(t, mountain.NewTableWriter(&out, mountain.FormatCSV, 0))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasSuffix(lines[0], ",1,3"))
		assert.Equal(t, "2K,21,23", lines[1])
		assert.Equal(t, "1K,11,13", lines[2])
	})

	t.Run("Table", func(t *testing.T) {
		var out bytes.Buffer
		writeSmallSweep(t, mountain.NewTableWriter(&out, mountain.FormatTable, 120))
		assert.Contains(t, out.String(), "2K")
		assert.Contains(t, out.String(), "23")
		assert.Contains(t, out.String(), "size \\ stride")
	})

	t.Run("Markdown", func(t *testing.T) {
		var out bytes.Buffer
		writeSmallSweep(t, mountain.NewTableWriter(&out, mountain.FormatMarkdown, 0))
		assert.True(t, strings.HasPrefix(out.String(), "|"))
		assert.Contains(t, out.String(), "1K")
	})

	t.Run("Empty", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, mountain.NewTableWriter(&out, mountain.FormatTable, 0).Flush())
		assert.Empty(t, out.String())
	})
}
