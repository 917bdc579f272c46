// Package diagnostics renders training histories and cluster assignments as PNG images.
package diagnostics

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/classicml/pkg/errors"
)

const size = 5 * vg.Inch

var palette = []color.RGBA{
	{R: 220, G: 50, B: 47, A: 255},
	{R: 38, G: 139, B: 210, A: 255},
	{R: 133, G: 153, B: 0, A: 255},
	{R: 181, G: 137, B: 0, A: 255},
	{R: 108, G: 113, B: 196, A: 255},
}

// LearningCurve plots history (one value per iteration or epoch) and saves
// it to path. The image format follows the file extension.
func LearningCurve(history []float64, title, yLabel, path string) error {
	if len(history) == 0 {
		return errors.NewValueError("LearningCurve", "empty history")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = yLabel

	pts := make(plotter.XYs, len(history))
	for i, v := range history {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "failed to build learning curve")
	}
	l.Color = palette[1]
	l.LineStyle.Width = vg.Points(2)
	p.Add(l)

	if err := p.Save(size, size*3/4, path); err != nil {
		return errors.Wrapf(err, "failed to save %s", path)
	}
	return nil
}

// ClusterScatter plots the first two features of rows coloured by label,
// with centroids drawn as crosses.
func ClusterScatter(rows [][]float64, labels []int, centroids [][]float64, path string) error {
	if len(rows) == 0 || len(rows[0]) < 2 {
		return errors.NewValueError("ClusterScatter", "need at least two features")
	}
	if len(labels) != len(rows) {
		return errors.NewDimensionError("ClusterScatter", len(rows), len(labels), 0)
	}

	p := plot.New()
	p.Title.Text = "K-Means"
	p.X.Label.Text = "Feature 1"
	p.Y.Label.Text = "Feature 2"

	for k := range centroids {
		var pts plotter.XYs
		for i, label := range labels {
			if label == k {
				pts = append(pts, plotter.XY{X: rows[i][0], Y: rows[i][1]})
			}
		}
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return errors.Wrap(err, "failed to build cluster scatter")
		}
		s.Color = palette[k%len(palette)]
		p.Add(s)
	}

	centers := make(plotter.XYs, len(centroids))
	for i, c := range centroids {
		centers[i] = plotter.XY{X: c[0], Y: c[1]}
	}
	c, err := plotter.NewScatter(centers)
	if err != nil {
		return errors.Wrap(err, "failed to build centroid scatter")
	}
	c.Color = color.RGBA{A: 255}
	c.Shape = draw.CrossGlyph{}
	c.Radius = vg.Points(5)
	p.Add(c)

	if err := p.Save(size, size, path); err != nil {
		return errors.Wrapf(err, "failed to save %s", path)
	}
	return nil
}
