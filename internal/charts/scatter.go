package charts

import (
	"math/rand"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"crimelens/internal/dataset"
)

// Viewport bounds for the scatter plot, roughly the city of Los Angeles.
const (
	scatterLonMin = -118.7
	scatterLonMax = -118.1
	scatterLatMin = 33.7
	scatterLatMax = 34.3
)

// spatialScatter renders geocoded incidents as a longitude/latitude point
// cloud. When more rows are geocoded than the configured sample size, a
// seeded random sample keeps rendering bounded and the output reproducible.
func (r *Renderer) spatialScatter(table *dataset.Table, path string) error {
	var pts plotter.XYs
	for _, inc := range table.Incidents {
		if !inc.Geocoded() {
			continue
		}
		pts = append(pts, plotter.XY{X: inc.Lon, Y: inc.Lat})
	}
	if len(pts) == 0 {
		r.logger.Debug("spatial scatter skipped, no geocoded rows")
		return nil
	}

	if len(pts) > r.config.SampleSize {
		rng := rand.New(rand.NewSource(r.config.Seed))
		sampled := make(plotter.XYs, r.config.SampleSize)
		for i, idx := range rng.Perm(len(pts))[:r.config.SampleSize] {
			sampled[i] = pts[idx]
		}
		pts = sampled
	}

	p := plot.New()
	r.theme.apply(p)
	p.Title.Text = "Crime Locations in Los Angeles"
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.X.Min, p.X.Max = scatterLonMin, scatterLonMax
	p.Y.Min, p.Y.Max = scatterLatMin, scatterLatMax

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle = draw.GlyphStyle{
		Color:  r.theme.Point,
		Radius: vg.Points(1),
		Shape:  draw.CircleGlyph{},
	}
	p.Add(scatter)

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
