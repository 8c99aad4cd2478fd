package charts

import (
	"image/color"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Theme holds every visual parameter applied to the rendered charts. It is
// passed explicitly to the Renderer; there is no process-wide styling state.
type Theme struct {
	Background color.Color
	Foreground color.Color
	Grid       color.Color

	TitleSize vg.Length
	LabelSize vg.Length
	TickSize  vg.Length

	Bar      color.Color
	Line     color.Color
	Rolling  color.Color
	HistFill color.Color
	HistLine color.Color
	Point    color.Color

	// PieColors are cycled over the pie chart slices.
	PieColors []drawing.Color
}

// DefaultTheme is the dark navy theme: #0a1a2f background, white text and
// axes, translucent gray grid.
func DefaultTheme() Theme {
	return Theme{
		Background: color.RGBA{R: 0x0a, G: 0x1a, B: 0x2f, A: 0xff},
		Foreground: color.White,
		Grid:       color.RGBA{R: 128, G: 128, B: 128, A: 77},

		TitleSize: vg.Points(16),
		LabelSize: vg.Points(14),
		TickSize:  vg.Points(12),

		Bar:      color.RGBA{R: 70, G: 130, B: 180, A: 255},
		Line:     color.RGBA{R: 0, G: 255, B: 255, A: 255},
		Rolling:  color.RGBA{R: 255, G: 165, B: 0, A: 255},
		HistFill: color.RGBA{R: 135, G: 206, B: 235, A: 255},
		HistLine: color.RGBA{R: 0, G: 0, B: 0, A: 255},
		Point:    color.White,

		PieColors: []drawing.Color{
			{R: 0xff, G: 0x6f, B: 0x61, A: 0xff},
			{R: 0x6e, G: 0xc6, B: 0xff, A: 0xff},
			{R: 0xff, G: 0xd1, B: 0x66, A: 0xff},
			{R: 0x06, G: 0xd6, B: 0xa0, A: 0xff},
		},
	}
}

// apply styles a plot with the theme's background, text colors and sizes.
func (t Theme) apply(p *plot.Plot) {
	p.BackgroundColor = t.Background

	p.Title.TextStyle.Color = t.Foreground
	p.Title.TextStyle.Font.Size = t.TitleSize

	t.styleAxis(&p.X)
	t.styleAxis(&p.Y)

	p.Legend.TextStyle.Color = t.Foreground
	p.Legend.TextStyle.Font.Size = t.TickSize
}

func (t Theme) styleAxis(axis *plot.Axis) {
	axis.Color = t.Foreground
	axis.Label.TextStyle.Color = t.Foreground
	axis.Label.TextStyle.Font.Size = t.LabelSize
	axis.Tick.Color = t.Foreground
	axis.Tick.Label.Color = t.Foreground
	axis.Tick.Label.Font.Size = t.TickSize
}
