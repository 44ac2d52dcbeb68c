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

import   "errors"
import   "math"
import   "math/rand"
import   "testing"

/* -------------------------------------------------------------------------- */

func equalFloats(a, b []float64, eps float64) bool {
  if len(a) != len(b) {
    return false
  }
  for i := range a {
    if math.Abs(a[i] - b[i]) > eps {
      return false
    }
  }
  return true
}

/* -------------------------------------------------------------------------- */

func TestPRCurve1(t *testing.T) {
  yTrue  := []bool{false, false, true, true}
  scores := []float64{0.1, 0.4, 0.35, 0.8}

  r, err := NewPRCurve(yTrue, scores)
  if err != nil {
    t.Fatal(err)
  }
  if !equalFloats(r.Precision, []float64{0.5, 2.0/3.0, 0.5, 1.0, 1.0}, 1e-12) {
    t.Errorf("test failed: %v", r.Precision)
  }
  if !equalFloats(r.Recall, []float64{1.0, 1.0, 0.5, 0.5, 0.0}, 1e-12) {
    t.Errorf("test failed: %v", r.Recall)
  }
  if !equalFloats(r.Thresholds, []float64{0.1, 0.35, 0.4, 0.8}, 1e-12) {
    t.Errorf("test failed: %v", r.Thresholds)
  }
  if math.Abs(r.AUC - 0.7916666666666666) > 1e-12 {
    t.Errorf("test failed: %v", r.AUC)
  }
}

func TestPRCurve2(t *testing.T) {
  // no positives
  r, err := NewPRCurve([]bool{false, false, false}, []float64{0.3, math.NaN(), 0.3})
  if err != nil {
    t.Fatal(err)
  }
  if r.AUC != 0.0 {
    t.Error("test failed")
  }
  if !equalFloats(r.Recall, []float64{1.0, 1.0, 0.0}, 0.0) {
    t.Errorf("test failed: %v", r.Recall)
  }
  // NaN is treated as zero
  if !equalFloats(r.Thresholds, []float64{0.0, 0.3}, 0.0) {
    t.Errorf("test failed: %v", r.Thresholds)
  }
}

func TestPRCurve3(t *testing.T) {
  rng    := rand.New(rand.NewSource(42))
  yTrue  := make([]bool,    1000)
  scores := make([]float64, 1000)
  for i := range yTrue {
    yTrue [i] = rng.Float64() < 0.2
    scores[i] = math.Round(10*rng.NormFloat64())/10
    if yTrue[i] {
      scores[i] += 1.0
    }
  }
  r, err := NewPRCurve(yTrue, scores)
  if err != nil {
    t.Fatal(err)
  }
  if len(r.Precision) != len(r.Thresholds)+1 || len(r.Recall) != len(r.Thresholds)+1 {
    t.Error("test failed")
  }
  for i := 1; i < len(r.Recall); i++ {
    if r.Recall[i] > r.Recall[i-1] {
      t.Error("recall is not monotone")
    }
  }
  for i := 1; i < len(r.Thresholds); i++ {
    if r.Thresholds[i] <= r.Thresholds[i-1] {
      t.Error("thresholds are not increasing")
    }
  }
  if r.AUC < 0.0 || r.AUC > 1.0 {
    t.Errorf("test failed: %v", r.AUC)
  }
  if r.Recall[0] != 1.0 || r.Precision[len(r.Precision)-1] != 1.0 {
    t.Error("test failed")
  }
}

func TestPRCurve4(t *testing.T) {
  if _, err := NewPRCurve([]bool{true}, []float64{1, 2}); !errors.Is(err, ErrShapeMismatch) {
    t.Error("test failed")
  }
  if _, err := NewPRCurve(nil, nil); err == nil {
    t.Error("test failed")
  }
}
