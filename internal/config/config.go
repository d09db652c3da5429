package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ansel1/merry"
	"github.com/fpawel/hexfloat/internal/ieee754"
	"github.com/fpawel/hexfloat/internal/pkg/cfgfile"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

const (
	DefaultInput  = "nums.txt"
	DefaultBins   = 50
	DefaultMode   = ieee754.ModeStandard
	DefaultFormat = FormatText
)

type Config struct {
	// Input is the text file with one hex token per line.
	Input string       `yaml:"input"`
	Mode  ieee754.Mode `yaml:"mode"`
	// SkipInvalid drops bad tokens instead of failing the whole batch.
	SkipInvalid bool      `yaml:"skip_invalid"`
	Histogram   Histogram `yaml:"histogram"`
	// Database is an sqlite file journaling every run; empty disables it.
	Database string `yaml:"database"`
	// Script is a Lua file filtering samples; empty disables it.
	Script string `yaml:"script"`
	LogDir string `yaml:"log_dir"`
}

type Histogram struct {
	Bins   int    `yaml:"bins"`
	Title  string `yaml:"title"`
	Format Format `yaml:"format"`
	// Output is the file to render to; text goes to stdout when empty.
	Output string `yaml:"output"`
}

type Format string

const (
	FormatText Format = "text"
	FormatPNG  Format = "png"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

func Default() Config {
	return Config{
		Input: DefaultInput,
		Mode:  DefaultMode,
		Histogram: Histogram{
			Bins:   DefaultBins,
			Format: DefaultFormat,
		},
	}
}

// DefaultFilename is hexfloat.yaml next to the executable.
func DefaultFilename() string {
	return filepath.Join(filepath.Dir(os.Args[0]), "hexfloat.yaml")
}

// LoadOrDefault reads the file, writing the defaults there first if it does
// not exist yet.
func LoadOrDefault(filename string) (Config, error) {
	f := cfgfile.New(filename, yaml.Marshal, yaml.Unmarshal)
	if !f.Exists() {
		c := Default()
		if err := f.Set(c); err != nil {
			return c, err
		}
		return c, nil
	}
	var c Config
	if err := f.Get(&c); err != nil {
		return c, err
	}
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return c, merry.Prependf(err, "%s", filename)
	}
	return c, nil
}

func Parse(b []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, merry.Wrap(err)
	}
	c.setDefaults()
	return c, c.Validate()
}

func (c Config) Validate() error {
	var mulErr *multierror.Error
	if c.Input == "" {
		mulErr = multierror.Append(mulErr, merry.New("input must be set"))
	}
	if err := c.Mode.Validate(); err != nil {
		mulErr = multierror.Append(mulErr, err)
	}
	if err := c.Histogram.Validate(); err != nil {
		mulErr = multierror.Append(mulErr, err)
	}
	return mulErr.ErrorOrNil()
}

func (h Histogram) Validate() error {
	var mulErr *multierror.Error
	if h.Bins < 1 {
		mulErr = multierror.Append(mulErr, fmt.Errorf("histogram.bins=%d: must be greater than zero", h.Bins))
	}
	if err := h.Format.Validate(); err != nil {
		mulErr = multierror.Append(mulErr, err)
	}
	if h.Output == "" && h.Format != FormatText {
		mulErr = multierror.Append(mulErr, fmt.Errorf("histogram.output must be set for format %q", h.Format))
	}
	return mulErr.ErrorOrNil()
}

func (f Format) Validate() error {
	switch f {
	case FormatText, FormatPNG, FormatXLSX, FormatCSV:
		return nil
	}
	return fmt.Errorf("histogram.format=%q: expected one of text, png, xlsx, csv", f)
}

func (c *Config) setDefaults() {
	if c.Input == "" {
		c.Input = DefaultInput
	}
	if c.Mode == "" {
		c.Mode = DefaultMode
	}
	if c.Histogram.Bins == 0 {
		c.Histogram.Bins = DefaultBins
	}
	if c.Histogram.Format == "" {
		c.Histogram.Format = DefaultFormat
	}
}
