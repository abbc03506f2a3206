package main

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/goscf/goscf/scf"
)

// plotConvergence writes the SCF convergence trajectory as a png:
// log10 of the density error norm against the iteration number.
func plotConvergence(traj []scf.IterationStat, path string) error {
	p := plot.New()
	p.Title.Text = "SCF convergence"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "log10 error norm"

	pts := make(plotter.XYs, 0, len(traj))
	for _, it := range traj {
		if it.ErrorNorm <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{
			X: float64(it.Iteration),
			Y: math.Log10(it.ErrorNorm),
		})
	}

	if err := plotutil.AddLinePoints(p, "error", pts); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
