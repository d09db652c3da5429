package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTokens(t *testing.T) {
	xs, err := ReadTokens(context.Background(), strings.NewReader("3F800000\r\n  40000000 \n\n\tC0000000\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"3F800000", "40000000", "C0000000"}, xs)
}

func TestReadTokensByteOrderMark(t *testing.T) {
	xs, err := ReadTokens(context.Background(), strings.NewReader("\uFEFF3F800000\n40000000\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"3F800000", "40000000"}, xs)
}

func TestReadTokensEmpty(t *testing.T) {
	xs, err := Reader{R: strings.NewReader("")}.Tokens(context.Background())
	require.NoError(t, err)
	assert.Empty(t, xs)
}

func TestReadTokensCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadTokens(ctx, strings.NewReader("3F800000\n"))
	require.Error(t, err)
	assert.True(t, merry.Is(err, context.Canceled))
}

func TestFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nums.txt")
	require.NoError(t, os.WriteFile(filename, []byte("3F000000\n00000000"), 0666))

	xs, err := File(filename).Tokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"3F000000", "00000000"}, xs)
}

func TestFileMissing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing.txt")).Tokens(context.Background())
	require.Error(t, err)
	assert.True(t, os.IsNotExist(merry.Unwrap(err)))
	assert.Contains(t, err.Error(), "open input")
}
