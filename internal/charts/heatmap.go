package charts

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"crimelens/internal/dataset"
	"crimelens/internal/stats"
)

// heatGrid adapts a dense count matrix to plotter.GridXYZ. Rows index Y,
// columns index X.
type heatGrid struct {
	z  [][]float64
	xs []float64
	ys []float64
}

func (g heatGrid) Dims() (c, r int)   { return len(g.xs), len(g.ys) }
func (g heatGrid) Z(c, r int) float64 { return g.z[r][c] }
func (g heatGrid) X(c int) float64    { return g.xs[c] }
func (g heatGrid) Y(r int) float64    { return g.ys[r] }

// hourWeekdayHeatmap renders the 24×7 count heatmap: hour rows 0–23,
// weekday columns Monday…Sunday, absent combinations drawn as zero.
func (r *Renderer) hourWeekdayHeatmap(table *dataset.Table, path string) error {
	pivot := stats.HourWeekdayPivot(table)

	grid := heatGrid{
		z:  make([][]float64, 24),
		xs: make([]float64, 7),
		ys: make([]float64, 24),
	}
	for hour := 0; hour < 24; hour++ {
		row := make([]float64, 7)
		for day := 0; day < 7; day++ {
			row[day] = float64(pivot[hour][day])
		}
		grid.z[hour] = row
		grid.ys[hour] = float64(hour)
	}
	for day := range grid.xs {
		grid.xs[day] = float64(day)
	}

	labels := make([]string, len(stats.WeekdayOrder))
	for i, day := range stats.WeekdayOrder {
		labels[i] = day.String()
	}

	p := plot.New()
	r.theme.apply(p)
	p.Title.Text = "Heatmap: Crimes by Hour and Weekday"
	p.Y.Label.Text = "Hour"

	p.Add(plotter.NewHeatMap(grid, palette.Heat(128, 1)))
	p.NominalX(labels...)

	return p.Save(9*vg.Inch, 6*vg.Inch, path)
}

// yearMonthHeatmap renders the year-by-month count heatmap with
// three-letter month labels.
func (r *Renderer) yearMonthHeatmap(table *dataset.Table, path string) error {
	pivot := stats.YearMonthCounts(table)

	grid := heatGrid{
		z:  make([][]float64, len(pivot.Years)),
		xs: make([]float64, 12),
		ys: make([]float64, len(pivot.Years)),
	}
	for i, year := range pivot.Years {
		row := make([]float64, 12)
		for month := 0; month < 12; month++ {
			row[month] = float64(pivot.Counts[i][month])
		}
		grid.z[i] = row
		grid.ys[i] = float64(year)
	}
	for month := range grid.xs {
		grid.xs[month] = float64(month)
	}

	labels := make([]string, 12)
	for i := range labels {
		labels[i] = monthAbbr(i + 1)
	}

	p := plot.New()
	r.theme.apply(p)
	p.Title.Text = "Heatmap: Crimes by Year and Month"
	p.Y.Label.Text = "Year"

	p.Add(plotter.NewHeatMap(grid, palette.Heat(128, 1)))
	p.NominalX(labels...)

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

// monthAbbr returns the fixed three-letter abbreviation for month 1–12.
func monthAbbr(month int) string {
	return [...]string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}[month-1]
}
