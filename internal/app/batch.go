package app

import (
	"context"
	"time"

	"github.com/ansel1/merry"
	"github.com/fpawel/hexfloat/internal/config"
	"github.com/fpawel/hexfloat/internal/data"
	"github.com/fpawel/hexfloat/internal/histogram"
	"github.com/fpawel/hexfloat/internal/ieee754"
	"github.com/fpawel/hexfloat/internal/luafilter"
	"github.com/fpawel/hexfloat/internal/source"
	"github.com/hashicorp/go-multierror"
	"github.com/jmoiron/sqlx"
)

// Batch decodes every token of Source and hands the values to Renderer.
// Script and DB are optional.
type Batch struct {
	Name      string
	Source    source.Provider
	Mode      ieee754.Mode
	Skip      bool
	Histogram config.Histogram
	Renderer  histogram.Renderer
	Script    *luafilter.Script
	DB        *sqlx.DB
}

type Result struct {
	Samples []data.Sample
	// Invalid holds the tokens dropped when Batch.Skip is set.
	Invalid *multierror.Error
	RunID   int64
}

func (r Result) Skipped() int {
	if r.Invalid == nil {
		return 0
	}
	return len(r.Invalid.Errors)
}

func (r Result) Values() []float64 {
	xs := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		xs[i] = s.Value
	}
	return xs
}

// Run journals the batch only after the histogram has been rendered.
func (b Batch) Run(ctx context.Context) (Result, error) {
	tokens, err := b.Source.Tokens(ctx)
	if err != nil {
		return Result{}, err
	}
	log.Debug("read tokens", "source", b.Name, "count", len(tokens))

	var r Result
	r.Samples, r.Invalid, err = Decode(ctx, tokens, b.Mode, b.Skip)
	if err != nil {
		return Result{}, err
	}
	if r.Invalid != nil {
		log.Warn("invalid tokens skipped", "count", r.Skipped(), "first", r.Invalid.Errors[0])
	}

	if b.Script != nil {
		n := len(r.Samples)
		if r.Samples, err = b.Script.Filter(r.Samples); err != nil {
			return Result{}, err
		}
		log.Debug("script filter", "accepted", len(r.Samples), "dropped", n-len(r.Samples))
	}

	if len(r.Samples) == 0 {
		log.Warn("no values to render", "source", b.Name)
	}
	if err := b.Renderer.Render(r.Values(), b.Histogram.Bins); err != nil {
		return Result{}, merry.Prependf(err, "render %s histogram", b.Histogram.Format)
	}

	if b.DB != nil {
		r.RunID, err = data.SaveRun(ctx, b.DB, data.Run{
			CreatedAt: time.Now(),
			Source:    b.Name,
			Mode:      string(b.Mode),
			Bins:      b.Histogram.Bins,
			Skipped:   r.Skipped(),
		}, r.Samples)
		if err != nil {
			return Result{}, log.Err(merry.Prepend(err, "save run"), "source", b.Name)
		}
	}
	return r, nil
}

// Decode turns tokens into samples keeping input order. The first invalid
// token fails the whole batch unless skip is set; then the failures are
// collected and returned next to the decoded samples.
func Decode(ctx context.Context, tokens []string, mode ieee754.Mode, skip bool) ([]data.Sample, *multierror.Error, error) {
	if err := mode.Validate(); err != nil {
		return nil, nil, err
	}
	var (
		xs      = make([]data.Sample, 0, len(tokens))
		invalid *multierror.Error
	)
	for i, token := range tokens {
		if err := ctx.Err(); err != nil {
			return nil, nil, merry.Wrap(err)
		}
		v, err := ieee754.DecodeHex(token, mode)
		if err != nil {
			err = merry.Prependf(err, "token %d", i)
			if !skip {
				return nil, nil, err
			}
			invalid = multierror.Append(invalid, err)
			continue
		}
		xs = append(xs, data.Sample{Index: i, Token: token, Value: v})
	}
	return xs, invalid, nil
}
