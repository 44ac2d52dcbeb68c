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

import "fmt"
import "sort"

/* -------------------------------------------------------------------------- */

// Precision-recall curve. Thresholds are increasing, Precision and Recall
// have one more element than Thresholds: the final point (recall 0,
// precision 1) has no threshold. Recall is non-increasing.
type PRCurveResult struct {
  Precision  []float64
  Recall     []float64
  Thresholds []float64
  AUC        float64
}

/* -------------------------------------------------------------------------- */

// Compute the precision-recall curve of scores against binary labels. All
// distinct score values are used as decision thresholds, non-finite scores
// are treated as zero. If there are no positive labels the recall is one at
// every threshold and the area under the curve is zero.
func NewPRCurve(yTrue []bool, scores []float64) (PRCurveResult, error) {
  if len(yTrue) != len(scores) {
    return PRCurveResult{}, fmt.Errorf("%w: %d labels and %d scores", ErrShapeMismatch, len(yTrue), len(scores))
  }
  if len(yTrue) == 0 {
    return PRCurveResult{}, fmt.Errorf("cannot compute precision-recall curve of empty input")
  }
  n := len(scores)
  s := make([]float64, n)
  for i, v := range scores {
    s[i] = finiteOrZero(v)
  }
  idx := make([]int, n)
  for i := range idx {
    idx[i] = i
  }
  sort.SliceStable(idx, func(i, j int) bool { return s[idx[i]] > s[idx[j]] })

  // true and false positives at each distinct threshold, thresholds are
  // decreasing
  tps := []float64{}
  fps := []float64{}
  thr := []float64{}
  tp  := 0.0
  for k, i := range idx {
    if yTrue[i] {
      tp++
    }
    if k == n-1 || s[idx[k+1]] != s[i] {
      tps = append(tps, tp)
      fps = append(fps, float64(k+1) - tp)
      thr = append(thr, s[i])
    }
  }
  m := len(tps)
  r := PRCurveResult{}
  r.Precision  = make([]float64, m+1)
  r.Recall     = make([]float64, m+1)
  r.Thresholds = make([]float64, m)
  positives   := tps[m-1]
  // reverse order so that thresholds are increasing
  for i := 0; i < m; i++ {
    j := m-1-i
    r.Precision [i] = safeDiv(tps[j], tps[j]+fps[j])
    r.Thresholds[i] = thr[j]
    if positives == 0.0 {
      r.Recall[i] = 1.0
    } else {
      r.Recall[i] = tps[j]/positives
    }
  }
  r.Precision[m] = 1.0
  r.Recall   [m] = 0.0
  if positives == 0.0 {
    r.AUC = 0.0
  } else {
    r.AUC = trapezoid(r.Recall, r.Precision)
  }
  return r, nil
}

// Area under the curve (x, y) by the trapezoid rule. The sign is chosen such
// that the area is positive for monotonically increasing or decreasing x.
func trapezoid(x, y []float64) float64 {
  a := 0.0
  for i := 1; i < len(x); i++ {
    a += (x[i] - x[i-1])*(y[i] + y[i-1])/2.0
  }
  if a < 0.0 {
    return -a
  }
  return a
}
