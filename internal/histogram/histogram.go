// Package histogram bins decoded values and renders the frequency
// histogram in several formats.
package histogram

import (
	"math"

	"github.com/ansel1/merry"
)

// Bin covers [Lo, Hi); the last bin of a histogram also includes Hi.
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

type Histogram struct {
	Bins []Bin
	// Skipped counts NaN and infinite values left out of the bins.
	Skipped int
}

// Renderer consumes decoded values in input order.
type Renderer interface {
	Render(values []float64, bins int) error
}

// Compute splits [min, max] of the finite values into n equal bins.
// A single distinct value v is binned over [v-d, v+d] where d is 0.5 or a
// relative step for magnitudes where 0.5 is below the precision; no values
// are binned over [0, 1].
func Compute(values []float64, n int) (Histogram, error) {
	if n < 1 {
		return Histogram{}, merry.Errorf("bins=%d: must be greater than zero", n)
	}
	finite, skipped := Finite(values)
	lo, hi := 0.0, 1.0
	if len(finite) > 0 {
		lo, hi = finite[0], finite[0]
		for _, v := range finite[1:] {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo == hi {
		d := math.Max(0.5, math.Abs(lo)*1e-9)
		lo, hi = lo-d, hi+d
	}

	width := (hi - lo) / float64(n)
	h := Histogram{
		Bins:    make([]Bin, n),
		Skipped: skipped,
	}
	for i := range h.Bins {
		h.Bins[i].Lo = lo + float64(i)*width
		h.Bins[i].Hi = lo + float64(i+1)*width
	}
	h.Bins[n-1].Hi = hi

	for _, v := range finite {
		h.Bins[binIndex(v, lo, width, n)].Count++
	}
	return h, nil
}

func binIndex(v, lo, width float64, n int) int {
	x := (v - lo) / width
	switch {
	case math.IsNaN(x) || x < 0:
		return 0
	case x >= float64(n):
		return n - 1
	}
	return int(x)
}

// Finite returns the values that are neither NaN nor infinite, keeping
// their order, and how many were dropped.
func Finite(values []float64) ([]float64, int) {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xs = append(xs, v)
	}
	return xs, len(values) - len(xs)
}

func (h Histogram) Total() (n int) {
	for _, b := range h.Bins {
		n += b.Count
	}
	return
}

func (h Histogram) MaxCount() (n int) {
	for _, b := range h.Bins {
		if b.Count > n {
			n = b.Count
		}
	}
	return
}
