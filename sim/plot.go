package sim

import (
	"fmt"
	"path"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/minimum-LaytonC/rddlsim/util"
)

// PlotReturns renders the per-trial discounted returns of one or more
// batches as a line plot saved under plotPath.
func PlotReturns(plotPath string, names []string, returns [][]float64) error {
	if err := util.EnsureDir(plotPath); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Discounted return per trial"
	p.X.Label.Text = "Trial"
	p.Y.Label.Text = "Return"

	for i, rs := range returns {
		points := make(plotter.XYs, len(rs))
		for j, r := range rs {
			points[j] = plotter.XY{
				X: float64(j + 1),
				Y: r,
			}
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			continue
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(names[i], line)
	}

	out := path.Join(plotPath, "returns.png")
	if err := p.Save(8*vg.Inch, 8*vg.Inch, out); err != nil {
		return fmt.Errorf("saving returns plot: %w", err)
	}
	return nil
}
