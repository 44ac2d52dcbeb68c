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


package hicbench

/* -------------------------------------------------------------------------- */

import "math"
import "sort"

import "gonum.org/v1/gonum/stat"

/* -------------------------------------------------------------------------- */

// Percentile p in [0, 100] of x, computed by linear interpolation between
// the closest ranks k = p/100*(n-1) of the sorted data.
func percentile(x []float64, p float64) float64 {
  if len(x) == 0 {
    return math.NaN()
  }
  y := make([]float64, len(x))
  copy(y, x)
  sort.Float64s(y)
  return percentileSorted(y, p)
}

func percentileSorted(y []float64, p float64) float64 {
  k  := p/100.0*float64(len(y)-1)
  lo := int(math.Floor(k))
  hi := int(math.Ceil (k))
  if lo == hi {
    return y[lo]
  }
  return y[lo] + (y[hi]-y[lo])*(k-float64(lo))
}

// Mean and population standard deviation of all nonzero values of x that
// lie strictly between the lower and upper percentiles of the nonzero
// values. The number of values that survived trimming is returned as well.
func trimmedMeanStdDev(x []float64, lower, upper float64) (float64, float64, int) {
  nonzero := make([]float64, 0, len(x))
  for _, v := range x {
    if v != 0.0 {
      nonzero = append(nonzero, v)
    }
  }
  if len(nonzero) == 0 {
    return 0.0, 0.0, 0
  }
  sorted := make([]float64, len(nonzero))
  copy(sorted, nonzero)
  sort.Float64s(sorted)
  pBottom := percentileSorted(sorted, lower)
  pTop    := percentileSorted(sorted, upper)

  trimmed := make([]float64, 0, len(nonzero))
  for _, v := range nonzero {
    if pBottom < v && v < pTop {
      trimmed = append(trimmed, v)
    }
  }
  if len(trimmed) == 0 {
    return 0.0, 0.0, 0
  }
  mean, std := stat.PopMeanStdDev(trimmed, nil)
  return mean, std, len(trimmed)
}

/* -------------------------------------------------------------------------- */

// Pearson correlation of x and y. Pairs where one of the values is not
// finite are ignored. NaN is returned if less than two pairs remain.
func PearsonCorrelation(x, y []float64) float64 {
  if len(x) != len(y) {
    panic("PearsonCorrelation(): vectors have different lengths")
  }
  a := make([]float64, 0, len(x))
  b := make([]float64, 0, len(y))
  for i := range x {
    if isFinite(x[i]) && isFinite(y[i]) {
      a = append(a, x[i])
      b = append(b, y[i])
    }
  }
  if len(a) < 2 {
    return math.NaN()
  }
  return stat.Correlation(a, b, nil)
}
