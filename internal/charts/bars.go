package charts

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"crimelens/internal/dataset"
	"crimelens/internal/stats"
)

// weekdayBars renders the weekday distribution in the fixed Monday…Sunday
// order; days absent from the data show as zero-height bars.
func (r *Renderer) weekdayBars(table *dataset.Table, path string) error {
	counts := stats.WeekdayCounts(table)

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, day := range stats.WeekdayOrder {
		values[i] = float64(counts[i])
		labels[i] = day.String()
	}

	return r.barChart(barChartSpec{
		title:  "Crimes by Weekday",
		yLabel: "Count",
		values: values,
		labels: labels,
		width:  8 * vg.Inch,
		height: 4 * vg.Inch,
	}, path)
}

// hourlyBars renders the hour-of-day distribution for hours 0–23.
func (r *Renderer) hourlyBars(table *dataset.Table, path string) error {
	counts := stats.HourlyCounts(table)

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for hour := range counts {
		values[hour] = float64(counts[hour])
		labels[hour] = strconv.Itoa(hour)
	}

	return r.barChart(barChartSpec{
		title:  "Crimes by Hour",
		yLabel: "Count",
		values: values,
		labels: labels,
		width:  10 * vg.Inch,
		height: 4 * vg.Inch,
	}, path)
}

// topAreas renders the ten busiest reporting areas as horizontal bars.
func (r *Renderer) topAreas(table *dataset.Table, path string) error {
	top := stats.TopCounts(stats.AreaCounts(table), 10)

	values := make(plotter.Values, len(top))
	labels := make([]string, len(top))
	// Reverse so the largest area sits at the top of the axis.
	for i, lc := range top {
		j := len(top) - 1 - i
		values[j] = float64(lc.Count)
		labels[j] = lc.Label
	}

	p := plot.New()
	r.theme.apply(p)
	p.Title.Text = "Top 10 Areas by Crime Count"
	p.X.Label.Text = "Count"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	bars.Horizontal = true
	bars.Color = r.theme.Bar
	bars.LineStyle.Width = 0

	p.Add(r.grid(), bars)
	p.NominalY(labels...)

	return p.Save(10*vg.Inch, 5*vg.Inch, path)
}

// topCrimes renders the fifteen most frequent crime descriptions with
// rotated category labels.
func (r *Renderer) topCrimes(table *dataset.Table, path string) error {
	top := stats.TopCounts(stats.CrimeTypeCounts(table), 15)

	values := make(plotter.Values, len(top))
	labels := make([]string, len(top))
	for i, lc := range top {
		values[i] = float64(lc.Count)
		labels[i] = lc.Label
	}

	return r.barChart(barChartSpec{
		title:        "Top 15 Crimes",
		yLabel:       "Count",
		values:       values,
		labels:       labels,
		rotateLabels: true,
		width:        10 * vg.Inch,
		height:       6 * vg.Inch,
	}, path)
}

// descentBars renders the ten most frequent victim-descent groups by
// translated label.
func (r *Renderer) descentBars(table *dataset.Table, path string) error {
	top := stats.TopCounts(stats.DescentCounts(table), 10)

	values := make(plotter.Values, len(top))
	labels := make([]string, len(top))
	for i, lc := range top {
		values[i] = float64(lc.Count)
		labels[i] = lc.Label
	}

	return r.barChart(barChartSpec{
		title:        "Top 10 Victim Descent Groups",
		xLabel:       "Descent",
		yLabel:       "Count",
		values:       values,
		labels:       labels,
		rotateLabels: true,
		width:        9 * vg.Inch,
		height:       5 * vg.Inch,
	}, path)
}

// barChartSpec describes a themed vertical bar chart.
type barChartSpec struct {
	title        string
	xLabel       string
	yLabel       string
	values       plotter.Values
	labels       []string
	rotateLabels bool
	width        vg.Length
	height       vg.Length
}

func (r *Renderer) barChart(spec barChartSpec, path string) error {
	p := plot.New()
	r.theme.apply(p)
	p.Title.Text = spec.title
	p.X.Label.Text = spec.xLabel
	p.Y.Label.Text = spec.yLabel

	bars, err := plotter.NewBarChart(spec.values, vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = r.theme.Bar
	bars.LineStyle.Width = 0

	p.Add(r.grid(), bars)
	p.NominalX(spec.labels...)

	if spec.rotateLabels {
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}

	return p.Save(spec.width, spec.height, path)
}
