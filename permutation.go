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
import "io"
import "math"
import "math/rand"

import "github.com/pbenner/threadpool"
import "github.com/sirupsen/logrus"
import "gonum.org/v1/gonum/stat"
import "gonum.org/v1/gonum/stat/distuv"

import "github.com/pbenner/hicbench/lib/progress"

/* -------------------------------------------------------------------------- */

const DefaultPermutations = 5000

type PermutationConfig struct {
  // number of random permutations
  N        int
  Sigma    float64
  Seed     int64
  Pool    *threadpool.ThreadPool
  // print a progress bar to this writer if not nil
  Progress io.Writer
  Logger   logrus.FieldLogger
}

func DefaultPermutationConfig() PermutationConfig {
  return PermutationConfig{N: DefaultPermutations, Sigma: DefaultSigma, Seed: 1}
}

// Overlap counts of randomly permuted predictions and the overlap count of
// the real predictions.
type NullDistribution struct {
  Random []int
  Real     int
  Sigma    float64
  Seed     int64
}

/* -------------------------------------------------------------------------- */

func (d NullDistribution) floats() []float64 {
  r := make([]float64, len(d.Random))
  for i, v := range d.Random {
    r[i] = float64(v)
  }
  return r
}

// Fraction of random overlaps that are at least as large as the real
// overlap, with the usual +1 correction.
func (d NullDistribution) EmpiricalPValue() float64 {
  k := 0
  for _, v := range d.Random {
    if v >= d.Real {
      k++
    }
  }
  return float64(k+1)/float64(len(d.Random)+1)
}

// Distance of the real overlap from the mean of the null distribution in
// units of its standard deviation. Zero if the null distribution has no
// variance.
func (d NullDistribution) ZScore() float64 {
  if len(d.Random) == 0 {
    return 0.0
  }
  mean, std := stat.PopMeanStdDev(d.floats(), nil)
  if std == 0.0 {
    return 0.0
  }
  return (float64(d.Real) - mean)/std
}

// One-sided p-value of the real overlap under a normal approximation of
// the null distribution.
func (d NullDistribution) NormalPValue() float64 {
  if len(d.Random) == 0 {
    return math.NaN()
  }
  mean, std := stat.PopMeanStdDev(d.floats(), nil)
  if std == 0.0 {
    if float64(d.Real) > mean {
      return 0.0
    }
    return 1.0
  }
  return distuv.Normal{Mu: mean, Sigma: std}.Survival(float64(d.Real))
}

/* -------------------------------------------------------------------------- */

func significantOverlap(a, b float64, sigma float64) bool {
  return isFinite(a) && isFinite(b) && IsSignificant(a, sigma) && IsSignificant(b, sigma)
}

// Number of cells that are finite and significant in both arrays.
func Overlap(a, b EctopicArray, sigma float64) (int, error) {
  if a.Size() != b.Size() {
    return 0, fmt.Errorf("%w: arrays have sizes %d and %d", ErrShapeMismatch, a.Size(), b.Size())
  }
  n := a.Size()
  k := 0
  for i := 0; i < n; i++ {
    for j := 0; j < n; j++ {
      if significantOverlap(a.At(i, j), b.At(i, j), sigma) {
        k++
      }
    }
  }
  return k, nil
}

// Compute the null distribution of overlaps between the experimental array
// and the predicted array. In each iteration the finite values of the
// predicted array are shuffled among its finite positions and the overlap
// with the fixed experimental array is recorded. Every iteration has its
// own random number generator, seeded in iteration order from the given
// seed, so that the result does not depend on the number of threads.
func NewNullDistribution(exp, pred EctopicArray, config PermutationConfig) (NullDistribution, error) {
  if exp.Size() != pred.Size() {
    return NullDistribution{}, fmt.Errorf("%w: arrays have sizes %d and %d", ErrShapeMismatch, exp.Size(), pred.Size())
  }
  if config.N < 0 {
    return NullDistribution{}, fmt.Errorf("invalid number of permutations `%d'", config.N)
  }
  logger := loggerOrDefault(config.Logger).WithFields(logrus.Fields{
    "n"    : config.N,
    "sigma": config.Sigma,
    "seed" : config.Seed })

  observed, _ := Overlap(exp, pred, config.Sigma)

  x := exp .Flatten()
  y := pred.Flatten()
  // finite predicted values and the significance of the experimental
  // array at their positions
  values := make([]float64, 0, len(y))
  expSig := make([]bool,    0, len(y))
  for i, v := range y {
    if isFinite(v) {
      values = append(values, v)
      expSig = append(expSig, isFinite(x[i]) && IsSignificant(x[i], config.Sigma))
    }
  }
  seeds  := make([]int64, config.N)
  master := rand.New(rand.NewSource(config.Seed))
  for i := range seeds {
    seeds[i] = master.Int63()
  }
  var bar *progress.Progress
  if config.Progress != nil {
    bar = progress.New(config.N, 100)
    bar.Writer = config.Progress
  }
  pool    := poolOrDefault(config.Pool)
  scratch := make([][]float64, pool.NumberOfThreads())
  random  := make([]int, config.N)
  if err := pool.RangeJob(0, config.N, func(i int, pool threadpool.ThreadPool, erf func() error) error {
    buf := scratch[pool.GetThreadId()]
    if buf == nil {
      buf = make([]float64, len(values))
      scratch[pool.GetThreadId()] = buf
    }
    copy(buf, values)
    rng := rand.New(rand.NewSource(seeds[i]))
    rng.Shuffle(len(buf), func(a, b int) { buf[a], buf[b] = buf[b], buf[a] })
    k := 0
    for j, v := range buf {
      if expSig[j] && IsSignificant(v, config.Sigma) {
        k++
      }
    }
    random[i] = k
    if bar != nil {
      bar.Increment()
    }
    return nil
  }); err != nil {
    return NullDistribution{}, err
  }
  r := NullDistribution{Random: random, Real: observed, Sigma: config.Sigma, Seed: config.Seed}
  logger.WithFields(logrus.Fields{
    "real"  : observed,
    "pvalue": r.EmpiricalPValue() }).Info("random ectopic intersections computed")
  return r, nil
}
