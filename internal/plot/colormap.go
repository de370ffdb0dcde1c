package plot

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Colormap maps values in [0, 1] to colours by linear interpolation between
// evenly spaced stops.
type Colormap struct {
	Name  string
	stops []colorful.Color
}

// NewColormap builds a colormap from hex stops such as "#440154".
func NewColormap(name string, hexStops ...string) Colormap {
	stops := make([]colorful.Color, len(hexStops))
	for i, h := range hexStops {
		c, err := colorful.Hex(h)
		if err != nil {
			panic("plot: invalid colour " + h)
		}
		stops[i] = c
	}
	return Colormap{Name: name, stops: stops}
}

var (
	// Seismic is a diverging blue, white and red map.
	Seismic = NewColormap("seismic", "#00004c", "#0000ff", "#ffffff", "#ff0000", "#7f0000")
	// Viridis is a perceptually uniform sequential map.
	Viridis = NewColormap("viridis",
		"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
		"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725")
)

// NaNColor is used for cells without a value.
var NaNColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// At returns the colour at t. Values outside [0, 1] are clamped.
func (c Colormap) At(t float64) color.RGBA {
	if math.IsNaN(t) || len(c.stops) == 0 {
		return NaNColor
	}
	t = math.Max(0, math.Min(1, t))
	if len(c.stops) == 1 {
		return toRGBA(c.stops[0])
	}
	pos := t * float64(len(c.stops)-1)
	i := int(pos)
	if i >= len(c.stops)-1 {
		return toRGBA(c.stops[len(c.stops)-1])
	}
	return toRGBA(c.stops[i].BlendRgb(c.stops[i+1], pos-float64(i)))
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
