// Package plot renders fingerprint data as heatmap images.
package plot

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
)

// Options controls the layout of a heatmap.
type Options struct {
	// Width and Height are the size in pixels of the data area.
	Width, Height int
	// OriginLower draws the first row at the bottom.
	OriginLower bool
	// Min and Max fix the colour scale. When both are zero the data range
	// is used.
	Min, Max float64
	// BarWidth is the width of the colour bar; zero hides it.
	BarWidth int
}

const (
	margin = 10
	barGap = 10
)

// Heatmap renders grid, a slice of equally long rows, with cmap.
func Heatmap(grid [][]float64, cmap Colormap, opts Options) (*image.RGBA, error) {
	rows := len(grid)
	if rows == 0 || len(grid[0]) == 0 {
		return nil, errors.New("plot: empty grid")
	}
	cols := len(grid[0])
	for _, row := range grid {
		if len(row) != cols {
			return nil, errors.New("plot: ragged grid")
		}
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.New("plot: image size must be positive")
	}

	lo, hi := opts.Min, opts.Max
	if lo == 0 && hi == 0 {
		lo, hi = valueRange(grid)
	}
	scale := func(v float64) float64 {
		if hi <= lo {
			return 0.5
		}
		return (v - lo) / (hi - lo)
	}

	total := margin + opts.Width + margin
	if opts.BarWidth > 0 {
		total += barGap + opts.BarWidth
	}
	img := image.NewRGBA(image.Rect(0, 0, total, margin+opts.Height+margin))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for py := 0; py < opts.Height; py++ {
		r := py * rows / opts.Height
		if opts.OriginLower {
			r = rows - 1 - r
		}
		for px := 0; px < opts.Width; px++ {
			c := px * cols / opts.Width
			img.SetRGBA(margin+px, margin+py, cmap.At(scale(grid[r][c])))
		}
	}

	if opts.BarWidth > 0 {
		x0 := margin + opts.Width + barGap
		for py := 0; py < opts.Height; py++ {
			t := 1 - float64(py)/float64(max(opts.Height-1, 1))
			col := cmap.At(t)
			for px := 0; px < opts.BarWidth; px++ {
				img.SetRGBA(x0+px, margin+py, col)
			}
		}
	}
	return img, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func valueRange(grid [][]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range grid {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}
