package histogram

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strings"

	"github.com/ansel1/merry"
	"github.com/fpawel/hexfloat/internal/config"
	"github.com/fpawel/hexfloat/internal/pkg"
	"github.com/tealeg/xlsx/v3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// NewRenderer picks the renderer for c.Format. Text goes to stdout unless
// c.Output names a file.
func NewRenderer(c config.Histogram, stdout io.Writer) (Renderer, error) {
	switch c.Format {
	case config.FormatText:
		if c.Output == "" {
			return Text{W: stdout, Title: c.Title}, nil
		}
		return TextFile{Filename: c.Output, Title: c.Title}, nil
	case config.FormatPNG:
		return PNG{Filename: c.Output, Title: c.Title}, nil
	case config.FormatXLSX:
		return XLSX{Filename: c.Output}, nil
	case config.FormatCSV:
		return CSV{Filename: c.Output}, nil
	}
	return nil, merry.Errorf("unknown histogram format %q", c.Format)
}

const barWidth = 50

// Text draws one bar per bin.
type Text struct {
	W     io.Writer
	Title string
}

func (x Text) Render(values []float64, bins int) error {
	h, err := Compute(values, bins)
	if err != nil {
		return err
	}
	if x.Title != "" {
		if _, err := fmt.Fprintln(x.W, x.Title); err != nil {
			return merry.Wrap(err)
		}
	}
	maxCount := h.MaxCount()
	for _, b := range h.Bins {
		n := 0
		if maxCount > 0 {
			n = b.Count * barWidth / maxCount
		}
		_, err := fmt.Fprintf(x.W, "%14s %14s %6d %s\n",
			pkg.FormatValue(b.Lo), pkg.FormatValue(b.Hi), b.Count, strings.Repeat("#", n))
		if err != nil {
			return merry.Wrap(err)
		}
	}
	_, err = fmt.Fprintf(x.W, "values: %d, skipped: %d\n", h.Total(), h.Skipped)
	return merry.Wrap(err)
}

type TextFile struct {
	Filename string
	Title    string
}

func (x TextFile) Render(values []float64, bins int) error {
	f, err := os.Create(x.Filename)
	if err != nil {
		return merry.Wrap(err)
	}
	if err := (Text{W: f, Title: x.Title}).Render(values, bins); err != nil {
		_ = f.Close()
		return err
	}
	return merry.Wrap(f.Close())
}

// PNG draws the histogram with gonum/plot.
type PNG struct {
	Filename string
	Title    string
	Width    vg.Length
	Height   vg.Length
}

func (x PNG) Render(values []float64, bins int) error {
	h, err := Compute(values, bins)
	if err != nil {
		return err
	}
	width, height := x.Width, x.Height
	if width == 0 {
		width = 16 * vg.Centimeter
	}
	if height == 0 {
		height = 10 * vg.Centimeter
	}

	p := plot.New()
	p.Title.Text = x.Title
	p.X.Label.Text = "value"
	p.Y.Label.Text = "count"

	hist := &plotter.Histogram{
		Bins:      make([]plotter.HistogramBin, len(h.Bins)),
		Width:     h.Bins[0].Hi - h.Bins[0].Lo,
		FillColor: color.Gray{Y: 128},
		LineStyle: plotter.DefaultLineStyle,
	}
	for i, b := range h.Bins {
		hist.Bins[i] = plotter.HistogramBin{Min: b.Lo, Max: b.Hi, Weight: float64(b.Count)}
	}
	p.Add(hist)

	if err := p.Save(width, height, x.Filename); err != nil {
		return merry.Prepend(err, x.Filename)
	}
	return nil
}

// XLSX writes a workbook with the bins and the values sheets.
type XLSX struct {
	Filename string
}

func (x XLSX) Render(values []float64, bins int) error {
	h, err := Compute(values, bins)
	if err != nil {
		return err
	}
	wb := xlsx.NewFile()

	sh, err := wb.AddSheet("histogram")
	if err != nil {
		return merry.Prepend(err, x.Filename)
	}
	defer sh.Close()
	row := sh.AddRow()
	for _, s := range []string{"from", "to", "count"} {
		row.AddCell().SetValue(s)
	}
	for _, b := range h.Bins {
		r := sh.AddRow()
		r.AddCell().SetFloat(b.Lo)
		r.AddCell().SetFloat(b.Hi)
		r.AddCell().SetInt(b.Count)
	}

	shValues, err := wb.AddSheet("values")
	if err != nil {
		return merry.Prepend(err, x.Filename)
	}
	defer shValues.Close()
	row = shValues.AddRow()
	row.AddCell().SetValue("#")
	row.AddCell().SetValue("value")
	for i, v := range values {
		r := shValues.AddRow()
		r.AddCell().SetInt(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			r.AddCell().SetString(pkg.FormatValue(v))
		} else {
			r.AddCell().SetFloat(v)
		}
	}

	if err := wb.Save(x.Filename); err != nil {
		return merry.Prepend(err, x.Filename)
	}
	return nil
}

// CSV writes one line per bin.
type CSV struct {
	Filename string
}

func (x CSV) Render(values []float64, bins int) error {
	h, err := Compute(values, bins)
	if err != nil {
		return err
	}
	f, err := os.Create(x.Filename)
	if err != nil {
		return merry.Wrap(err)
	}
	if err := writeCSV(f, h); err != nil {
		_ = f.Close()
		return merry.Prepend(err, x.Filename)
	}
	return merry.Wrap(f.Close())
}

func writeCSV(w io.Writer, h Histogram) error {
	if _, err := io.WriteString(w, "from,to,count\n"); err != nil {
		return err
	}
	for _, b := range h.Bins {
		if _, err := fmt.Fprintf(w, "%v,%v,%d\n", b.Lo, b.Hi, b.Count); err != nil {
			return err
		}
	}
	return nil
}
