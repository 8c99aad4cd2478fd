package charts

import (
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"crimelens/internal/dataset"
	"crimelens/internal/stats"
)

// rollingWindow is the number of trailing periods averaged in the overlay.
const rollingWindow = 12

// monthlyTrend renders the per-month incident counts with a 12-period
// rolling mean overlay.
func (r *Renderer) monthlyTrend(table *dataset.Table, path string) error {
	monthly := stats.MonthlyCounts(table)

	counts := make(plotter.XYs, len(monthly))
	values := make([]float64, len(monthly))
	for i, pc := range monthly {
		t, err := time.Parse("2006-01", pc.Period)
		if err != nil {
			return err
		}
		counts[i].X = float64(t.Unix())
		counts[i].Y = float64(pc.Count)
		values[i] = float64(pc.Count)
	}

	means := stats.RollingMean(values, rollingWindow)
	rolling := make(plotter.XYs, len(monthly))
	for i := range monthly {
		rolling[i].X = counts[i].X
		rolling[i].Y = means[i]
	}

	p := plot.New()
	r.theme.apply(p)
	p.Title.Text = "Crimes per Month"
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "Count"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}

	countLine, err := plotter.NewLine(counts)
	if err != nil {
		return err
	}
	countLine.Color = r.theme.Line

	rollingLine, err := plotter.NewLine(rolling)
	if err != nil {
		return err
	}
	rollingLine.Color = r.theme.Rolling
	rollingLine.Width = vg.Points(2)

	p.Add(r.grid(), countLine, rollingLine)
	p.Legend.Add("Monthly Crimes", countLine)
	p.Legend.Add("12-Month Rolling Avg", rollingLine)
	p.Legend.Top = true

	return p.Save(12*vg.Inch, 4*vg.Inch, path)
}

// grid returns a background grid styled for the theme.
func (r *Renderer) grid() *plotter.Grid {
	g := plotter.NewGrid()
	g.Vertical.Color = r.theme.Grid
	g.Horizontal.Color = r.theme.Grid
	return g
}
