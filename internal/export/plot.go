package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/odelab/odelab/internal/analysis"
)

// PlotSeries renders every state component against x into an image file.
// The format follows the extension (.png, .svg, .pdf).
func PlotSeries(path, title string, xs []float64, ys [][]float64) error {
	if len(xs) == 0 || len(ys) != len(xs) {
		return fmt.Errorf("export: trajectory is empty or ragged")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	for c := 0; c < len(ys[0]); c++ {
		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i].X = xs[i]
			pts[i].Y = ys[i][c]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(c)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("y%d", c), line)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// PlotPhase renders one state component against another.
func PlotPhase(path, title string, ys [][]float64, xi, yi int) error {
	if len(ys) == 0 {
		return fmt.Errorf("export: trajectory is empty")
	}
	if xi < 0 || yi < 0 || xi >= len(ys[0]) || yi >= len(ys[0]) {
		return fmt.Errorf("export: components %d,%d out of range for dimension %d", xi, yi, len(ys[0]))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = fmt.Sprintf("y%d", xi)
	p.Y.Label.Text = fmt.Sprintf("y%d", yi)
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(ys))
	for i := range ys {
		pts[i].X = ys[i][xi]
		pts[i].Y = ys[i][yi]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

// PlotConvergence renders a convergence study on log-log axes: one marker
// per step size, with the fitted order in the title.
func PlotConvergence(path, title string, est analysis.OrderEstimate) error {
	if len(est.Steps) == 0 || len(est.Errors) != len(est.Steps) {
		return fmt.Errorf("export: convergence study is empty or ragged")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (order %.2f)", title, est.Order)
	p.X.Label.Text = "h"
	p.Y.Label.Text = "error"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(est.Steps))
	for i := range est.Steps {
		pts[i].X = est.Steps[i]
		pts[i].Y = est.Errors[i]
	}

	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	p.Add(line, scatter)

	return p.Save(6*vg.Inch, 5*vg.Inch, path)
}
