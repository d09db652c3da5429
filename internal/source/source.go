// Package source provides the hex tokens to decode, one token per line.
package source

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/ansel1/merry"
)

// Provider returns tokens in input order.
type Provider interface {
	Tokens(ctx context.Context) ([]string, error)
}

// File reads tokens from a text file.
type File string

// Reader reads tokens from an already opened stream.
type Reader struct {
	R io.Reader
}

var _ Provider = File("")
var _ Provider = Reader{}

func (x File) Tokens(ctx context.Context) ([]string, error) {
	f, err := os.Open(string(x))
	if err != nil {
		return nil, merry.Prepend(err, "open input")
	}
	defer func() {
		_ = f.Close()
	}()
	xs, err := ReadTokens(ctx, f)
	if err != nil {
		return nil, merry.Prependf(err, "read %s", string(x))
	}
	return xs, nil
}

func (x Reader) Tokens(ctx context.Context) ([]string, error) {
	return ReadTokens(ctx, x.R)
}

const bom = "\uFEFF"

// ReadTokens trims every line and skips the blank ones. A byte order mark
// opening the stream is dropped.
func ReadTokens(ctx context.Context, r io.Reader) ([]string, error) {
	var xs []string
	sc := bufio.NewScanner(r)
	for first := true; sc.Scan(); first = false {
		if err := ctx.Err(); err != nil {
			return nil, merry.Wrap(err)
		}
		s := sc.Text()
		if first {
			s = strings.TrimPrefix(s, bom)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		xs = append(xs, s)
	}
	if err := sc.Err(); err != nil {
		return nil, merry.Wrap(err)
	}
	return xs, nil
}
