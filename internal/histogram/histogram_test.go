package histogram

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fpawel/hexfloat/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
)

func counts(h Histogram) (xs []int) {
	for _, b := range h.Bins {
		xs = append(xs, b.Count)
	}
	return
}

func TestCompute(t *testing.T) {
	h, err := Compute([]float64{0, 1, 2, 3, 4}, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 2}, counts(h))
	assert.Equal(t, Bin{Lo: 0, Hi: 1, Count: 1}, h.Bins[0])
	assert.Equal(t, 4.0, h.Bins[3].Hi)
	assert.Equal(t, 5, h.Total())
	assert.Equal(t, 2, h.MaxCount())

	t.Run("single value", func(t *testing.T) {
		h, err := Compute([]float64{5, 5}, 2)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2}, counts(h))
		assert.Equal(t, 4.5, h.Bins[0].Lo)
		assert.Equal(t, 5.5, h.Bins[1].Hi)
	})

	t.Run("single large value", func(t *testing.T) {
		for _, v := range []float64{math.MaxFloat32, -1e20, 1e20, math.MaxFloat64} {
			h, err := Compute([]float64{v, v}, 50)
			require.NoError(t, err, v)
			assert.Equal(t, 2, h.Total(), v)
			assert.Equal(t, 2, h.MaxCount(), v)
		}
		var buf bytes.Buffer
		require.NoError(t, Text{W: &buf}.Render([]float64{1e20}, 50))
		assert.Contains(t, buf.String(), "values: 1, skipped: 0")
	})

	t.Run("no values", func(t *testing.T) {
		h, err := Compute(nil, 50)
		require.NoError(t, err)
		assert.Len(t, h.Bins, 50)
		assert.Equal(t, 0, h.Total())
		assert.Equal(t, 0.0, h.Bins[0].Lo)
		assert.Equal(t, 1.0, h.Bins[49].Hi)
	})

	t.Run("non finite values are skipped", func(t *testing.T) {
		h, err := Compute([]float64{math.NaN(), math.Inf(-1), 1, 2, math.Inf(1)}, 1)
		require.NoError(t, err)
		assert.Equal(t, []int{2}, counts(h))
		assert.Equal(t, 3, h.Skipped)
	})

	t.Run("negative bins", func(t *testing.T) {
		_, err := Compute([]float64{1}, 0)
		assert.Error(t, err)
	})
}

func TestFinite(t *testing.T) {
	xs, n := Finite([]float64{3, math.NaN(), -1})
	assert.Equal(t, []float64{3, -1}, xs)
	assert.Equal(t, 1, n)
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text{W: &buf, Title: "nums"}.Render([]float64{1, 1, 2}, 2))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "nums", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], " 2 "+strings.Repeat("#", 50)), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], " 1 "+strings.Repeat("#", 25)), lines[2])
	assert.Equal(t, "values: 3, skipped: 0", lines[3])
}

func TestCSV(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "hist.csv")
	require.NoError(t, CSV{Filename: filename}.Render([]float64{0, 1, 2, 3, 4}, 4))
	b, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "from,to,count\n0,1,1\n1,2,1\n2,3,1\n3,4,2\n", string(b))
}

func TestFileRenderers(t *testing.T) {
	dir := t.TempDir()
	values := []float64{-2, -1, 0, 0.5, 1, 2, math.NaN()}
	for _, c := range []config.Histogram{
		{Format: config.FormatText, Output: filepath.Join(dir, "hist.txt")},
		{Format: config.FormatPNG, Output: filepath.Join(dir, "hist.png"), Title: "decoded"},
		{Format: config.FormatXLSX, Output: filepath.Join(dir, "hist.xlsx")},
	} {
		r, err := NewRenderer(c, nil)
		require.NoError(t, err)
		require.NoError(t, r.Render(values, 5), c.Format)
		fi, err := os.Stat(c.Output)
		require.NoError(t, err)
		assert.NotZero(t, fi.Size(), c.Format)
	}
}

func TestXLSXValues(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "hist.xlsx")
	require.NoError(t, XLSX{Filename: filename}.Render([]float64{1.5, math.NaN()}, 2))

	wb, err := xlsx.OpenFile(filename)
	require.NoError(t, err)
	sh, ok := wb.Sheet["values"]
	require.True(t, ok)

	c, err := sh.Cell(1, 1)
	require.NoError(t, err)
	assert.Equal(t, xlsx.CellTypeNumeric, c.Type())
	v, err := c.Float()
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	c, err = sh.Cell(2, 1)
	require.NoError(t, err)
	assert.Equal(t, xlsx.CellTypeString, c.Type())
	assert.Equal(t, "NaN", c.Value)
}

func TestNewRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(config.Histogram{Format: config.FormatText}, &buf)
	require.NoError(t, err)
	assert.Equal(t, Text{W: &buf}, r)

	_, err = NewRenderer(config.Histogram{Format: "svg"}, &buf)
	assert.Error(t, err)
}
