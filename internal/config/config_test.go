package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fpawel/hexfloat/internal/ieee754"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, "nums.txt", c.Input)
	assert.Equal(t, 50, c.Histogram.Bins)
	assert.Equal(t, ieee754.ModeStandard, c.Mode)
	assert.Equal(t, FormatText, c.Histogram.Format)
	assert.False(t, c.SkipInvalid)
	assert.NoError(t, c.Validate())
}

func TestLoadOrDefaultWritesDefaults(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "hexfloat.yaml")
	c, err := LoadOrDefault(filename)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	b, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(b), "bins: 50")

	c, err = LoadOrDefault(filename)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadOrDefaultFillsMissingFields(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "hexfloat.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(`
input: data/samples.txt
mode: uniform
histogram:
  format: png
  output: hist.png
`), 0666))
	c, err := LoadOrDefault(filename)
	require.NoError(t, err)
	assert.Equal(t, "data/samples.txt", c.Input)
	assert.Equal(t, ieee754.ModeUniform, c.Mode)
	assert.Equal(t, DefaultBins, c.Histogram.Bins)
	assert.Equal(t, FormatPNG, c.Histogram.Format)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	_, err := Parse([]byte(`
mode: double
histogram:
  bins: -3
  format: svg
`))
	require.Error(t, err)
	mulErr, ok := err.(*multierror.Error)
	require.True(t, ok, "%T", err)
	assert.Len(t, mulErr.Errors, 4)
	assert.Contains(t, err.Error(), "unknown decode mode")
	assert.Contains(t, err.Error(), "histogram.bins=-3")
	assert.Contains(t, err.Error(), `histogram.format="svg"`)
	assert.Contains(t, err.Error(), "histogram.output must be set")
}

func TestParseBadYaml(t *testing.T) {
	_, err := Parse([]byte("histogram: ["))
	assert.Error(t, err)
}
