package charts

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"crimelens/internal/dataset"
	"crimelens/internal/stats"
)

// ageHistogram renders a 20-bin histogram over valid victim ages, ages
// outside (0, 120) excluded. With no valid ages the chart is skipped.
func (r *Renderer) ageHistogram(table *dataset.Table, path string) error {
	ages := stats.ValidAges(table)
	if len(ages) == 0 {
		r.logger.Debug("age histogram skipped, no valid ages")
		return nil
	}

	p := plot.New()
	r.theme.apply(p)
	p.Title.Text = "Victim Age Distribution"
	p.X.Label.Text = "Age"
	p.Y.Label.Text = "Count"

	hist, err := plotter.NewHist(plotter.Values(ages), 20)
	if err != nil {
		return err
	}
	hist.FillColor = r.theme.HistFill
	hist.LineStyle.Color = r.theme.HistLine
	p.Add(hist, r.grid())

	return p.Save(9*vg.Inch, 4*vg.Inch, path)
}

// sexPie renders the victim sex breakdown as a pie chart. Slices are ordered
// by descending count with ties broken alphabetically, so repeated runs over
// the same data produce the same image.
func (r *Renderer) sexPie(table *dataset.Table, path string) error {
	counts := stats.SexCounts(table)
	top := stats.TopCounts(counts, len(counts))
	if len(top) == 0 {
		r.logger.Debug("sex pie skipped, no victim sex values")
		return nil
	}

	values := make([]chart.Value, len(top))
	for i, lc := range top {
		color := r.theme.PieColors[i%len(r.theme.PieColors)]
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s (%d)", lc.Label, lc.Count),
			Value: float64(lc.Count),
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color,
				FontColor:   drawing.ColorWhite,
			},
		}
	}

	bg := drawing.Color{R: 0x0a, G: 0x1a, B: 0x2f, A: 0xff}
	pie := chart.PieChart{
		Title:  "Victim Sex Distribution",
		Width:  600,
		Height: 600,
		Background: chart.Style{
			FillColor: bg,
			FontColor: drawing.ColorWhite,
		},
		Canvas: chart.Style{
			FillColor: bg,
		},
		TitleStyle: chart.Style{
			FontColor: drawing.ColorWhite,
			FontSize:  16,
		},
		Values: values,
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return pie.Render(chart.PNG, f)
}
