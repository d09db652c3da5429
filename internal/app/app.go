package app

import (
	"context"
	"os"

	"github.com/ansel1/merry"
	"github.com/fpawel/hexfloat/internal/config"
	"github.com/fpawel/hexfloat/internal/data"
	"github.com/fpawel/hexfloat/internal/histogram"
	"github.com/fpawel/hexfloat/internal/luafilter"
	"github.com/fpawel/hexfloat/internal/pkg"
	"github.com/fpawel/hexfloat/internal/pkg/logfile"
	"github.com/fpawel/hexfloat/internal/pkg/must"
	"github.com/fpawel/hexfloat/internal/source"
	"github.com/powerman/structlog"
)

// Main loads the configuration from configFilename, wires the collaborators
// it names and runs one batch.
func Main(ctx context.Context, configFilename string) error {
	log.Debug("load config", "file", configFilename)
	c, err := config.LoadOrDefault(configFilename)
	if err != nil {
		return err
	}

	if c.LogDir != "" {
		f, err := logfile.New(c.LogDir, ".hexfloat")
		if err != nil {
			return merry.Prepend(err, "open log file")
		}
		defer log.ErrIfFail(f.Close)
		defer pkg.LogTee(log, f)()
	}

	b := Batch{
		Name:   c.Input,
		Source: source.File(c.Input),
		Mode:   c.Mode,
		Skip:   c.SkipInvalid,
	}

	if c.Script != "" {
		log.Debug("load script", "file", c.Script)
		b.Script, err = luafilter.Load(c.Script)
		if err != nil {
			return err
		}
		defer b.Script.Close()
		if err := b.Script.Histogram(&c.Histogram); err != nil {
			return err
		}
		if err := c.Histogram.Validate(); err != nil {
			return merry.Prepend(err, c.Script)
		}
	}
	b.Histogram = c.Histogram
	log.Debug("effective config", "yaml", string(must.MarshalYaml(c)))

	if c.Database != "" {
		log.Debug("open database", "file", c.Database)
		b.DB, err = data.Open(c.Database)
		if err != nil {
			return err
		}
		defer log.ErrIfFail(b.DB.Close)
	}

	b.Renderer, err = histogram.NewRenderer(c.Histogram, os.Stdout)
	if err != nil {
		return err
	}

	r, err := b.Run(ctx)
	if err != nil {
		return err
	}
	log.Info("done", "source", c.Input, "values", len(r.Samples), "skipped", r.Skipped(), "run", r.RunID)
	return nil
}

var log = structlog.New()
