/* Copyright (C) 2021 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */


package main

/* -------------------------------------------------------------------------- */

import   "fmt"
import   "image/color"
import   "log"
import   "path/filepath"

import . "github.com/pbenner/hicbench"

import   "gonum.org/v1/plot"
import   "gonum.org/v1/plot/palette/moreland"
import   "gonum.org/v1/plot/plotter"
import   "gonum.org/v1/plot/vg"

/* -------------------------------------------------------------------------- */

// Square array as a grid for heat maps, row zero is drawn at the top.
type graphGrid [][]float64

func (g graphGrid) Dims() (int, int) {
  if len(g) == 0 {
    return 0, 0
  }
  return len(g[0]), len(g)
}

func (g graphGrid) Z(c, r int) float64 {
  return g[len(g)-1-r][c]
}

func (g graphGrid) X(c int) float64 {
  return float64(c)
}

func (g graphGrid) Y(r int) float64 {
  return float64(r)
}

/* -------------------------------------------------------------------------- */

func plotPRCurve(filename, name string, pr PRCurveResult) error {
  xy := make(plotter.XYs, len(pr.Recall))
  for i := range pr.Recall {
    xy[i].X = pr.Recall[i]
    xy[i].Y = pr.Precision[i]
  }
  p := plot.New()
  p.Title.Text  = fmt.Sprintf("%s PR Curve, AUC = %.10f", name, pr.AUC)
  p.X.Label.Text = "Recall"
  p.Y.Label.Text = "Precision"
  p.Add(plotter.NewGrid())

  line, err := plotter.NewLine(xy)
  if err != nil {
    return err
  }
  p.Add(line)
  return p.Save(6*vg.Inch, 6*vg.Inch, filename)
}

func plotNullDistribution(filename string, d NullDistribution) error {
  if len(d.Random) == 0 {
    return nil
  }
  values := make(plotter.Values, len(d.Random))
  for i, k := range d.Random {
    values[i] = float64(k)
  }
  p := plot.New()
  p.Title.Text = "Real vs Random Ectopic Intersections"

  h, err := plotter.NewHist(values, 200)
  if err != nil {
    return err
  }
  p.Add(h)
  ymax := 0.0
  for _, bin := range h.Bins {
    if bin.Weight > ymax {
      ymax = bin.Weight
    }
  }
  line, err := plotter.NewLine(plotter.XYs{{X: float64(d.Real), Y: 0}, {X: float64(d.Real), Y: ymax}})
  if err != nil {
    return err
  }
  line.LineStyle.Color = color.RGBA{R: 255, A: 255}
  p.Add(line)
  return p.Save(8*vg.Inch, 6*vg.Inch, filename)
}

func plotEctopicGraph(filename string, graph [][]float64) error {
  if len(graph) == 0 {
    return nil
  }
  colors := moreland.SmoothBlueRed()
  colors.SetMin(-8)
  colors.SetMax( 8)

  h := plotter.NewHeatMap(graphGrid(graph), colors.Palette(255))
  h.Min = -8
  h.Max =  8
  h.NaN = color.White

  p := plot.New()
  p.Title.Text = "Ectopic Interactions"
  p.Add(h)
  return p.Save(6*vg.Inch, 6*vg.Inch, filename)
}

/* -------------------------------------------------------------------------- */

func savePlots(config Config, metrics Metrics) {
  filename := func(name string) string {
    return filepath.Join(config.PlotDir, fmt.Sprintf("%s-%s.png", config.UnitID, name))
  }
  PrintStderr(config, 1, "Saving plots to `%s'... ", config.PlotDir)
  if metrics.Insulation != nil {
    if err := plotPRCurve(filename("EctopicInsulationPRCurve"), "Ectopic Insulation", metrics.Insulation.PRCurve); err != nil {
      log.Fatal(err)
    }
  }
  if err := plotPRCurve(filename("EctopicInteractionsPRCurve"), "Ectopic Interactions", metrics.EctopicInteractions); err != nil {
    log.Fatal(err)
  }
  if metrics.Random != nil {
    if err := plotNullDistribution(filename("RealVsRandomEctopicInteractions"), *metrics.Random); err != nil {
      log.Fatal(err)
    }
  }
  for name, a := range map[string]EctopicArray{"EXP": metrics.EctopicExp, "PRED": metrics.EctopicPred} {
    graph := a.Graph(metrics.GraphFrom, metrics.GraphTo, metrics.Sigma)
    if err := plotEctopicGraph(filename("EctopicArray"+name), graph); err != nil {
      log.Fatal(err)
    }
  }
  PrintStderr(config, 1, "done\n")
}
