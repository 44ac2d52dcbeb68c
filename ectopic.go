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

import "errors"
import "fmt"
import "math"

import "github.com/sirupsen/logrus"
import "gonum.org/v1/gonum/mat"

/* -------------------------------------------------------------------------- */

var ErrShapeMismatch = errors.New("shape mismatch")

const (
  DiagonalLowerPercentile = 4.0
  DiagonalUpperPercentile = 96.0
  DiagonalMinSamples      = 10
)

/* -------------------------------------------------------------------------- */

type EctopicConfig struct {
  // region of the matrices that is compared
  Capture       Range
  // rearranged region which is masked in both matrices
  Rearrangement Range
  // scale the mutant matrix so that its total signal equals the total
  // wild-type signal
  Normalize     bool
  // use balanced values instead of raw counts
  Balanced      bool
  // write each z-score to both triangles instead of only the lower one
  Mirror        bool
  Logger        logrus.FieldLogger
}

// Per-cell z-scores of the diagonal-wise normalized difference between a
// mutant and a wild-type matrix. Cells without a confident call are zero.
type EctopicArray struct {
  Seqname  string
  Binsize  int
  Capture  Range
  // first and last (inclusive) masked bin relative to the capture region
  MaskFrom int
  MaskTo   int
  // number of diagonals that were skipped because they had too few
  // samples after trimming or zero variance
  SkippedDiagonals int
  data    *mat.Dense
}

/* -------------------------------------------------------------------------- */

// Create an ectopic array from row-major data.
func NewEctopicArrayFromData(n int, data []float64) (EctopicArray, error) {
  if n <= 0 || len(data) != n*n {
    return EctopicArray{}, fmt.Errorf("%w: %d values for a %dx%d array", ErrShapeMismatch, len(data), n, n)
  }
  x := make([]float64, len(data))
  copy(x, data)
  return EctopicArray{MaskFrom: -1, MaskTo: -1, data: mat.NewDense(n, n, x)}, nil
}

func (a EctopicArray) Size() int {
  if a.data == nil {
    return 0
  }
  n, _ := a.data.Dims()
  return n
}

func (a EctopicArray) At(i, j int) float64 {
  return a.data.At(i, j)
}

// Row-major copy of all cells.
func (a EctopicArray) Flatten() []float64 {
  n := a.Size()
  r := make([]float64, 0, n*n)
  for i := 0; i < n; i++ {
    r = append(r, a.data.RawRowView(i)...)
  }
  return r
}

// Square window [from, to) of the array where all cells that are not
// significant calls are replaced by NaN. The window is clamped to the
// size of the array.
func (a EctopicArray) Graph(from, to int, sigma float64) [][]float64 {
  from = iMax(from, 0)
  to   = iMin(to, a.Size())
  if to < from {
    to = from
  }
  r := make([][]float64, to-from)
  for i := from; i < to; i++ {
    r[i-from] = make([]float64, to-from)
    for j := from; j < to; j++ {
      if v := a.data.At(i, j); v < sigma && v > -sigma {
        r[i-from][j-from] = math.NaN()
      } else {
        r[i-from][j-from] = v
      }
    }
  }
  return r
}

/* -------------------------------------------------------------------------- */

// Extract the capture region of a matrix and zero all rows and columns
// of the rearranged region.
func prepareRegion(m ContactMatrix, config EctopicConfig) (*mat.Dense, int, int, error) {
  data, i0, err := m.DenseRegion(config.Capture, config.Balanced)
  if err != nil {
    return nil, 0, 0, err
  }
  n, _   := data.Dims()
  origin := m.Bins.Ranges[i0].From
  from   := divIntDown(config.Rearrangement.From - origin, m.Binsize())
  to     := divIntDown(config.Rearrangement.To   - origin, m.Binsize())
  from    = iMax(from, 0)
  to      = iMin(to, n-1)
  for i := from; i <= to; i++ {
    for j := 0; j < n; j++ {
      data.Set(i, j, 0.0)
      data.Set(j, i, 0.0)
    }
  }
  return data, from, to, nil
}

// Mean of the k-th upper diagonal.
func diagonalMean(m *mat.Dense, k int) float64 {
  n, _ := m.Dims()
  s := 0.0
  for i := 0; i+k < n; i++ {
    s += m.At(i, i+k)
  }
  return s/float64(n-k)
}

// Compute the ectopic interactions array of a wild-type and a mutant
// matrix. The difference mutant - wild-type is normalized on each diagonal
// by the mean wild-type contact frequency of that diagonal and converted
// into z-scores using the 4%-96% trimmed mean and standard deviation of the
// nonzero entries. Diagonals with fewer than ten trimmed samples or zero
// variance remain zero.
func NewEctopicArray(wt, mut ContactMatrix, config EctopicConfig) (EctopicArray, error) {
  logger := loggerOrDefault(config.Logger).WithFields(logrus.Fields{
    "capture"      : config.Capture.Region(wt.Seqname()),
    "rearrangement": config.Rearrangement.Region(wt.Seqname()),
    "normalize"    : config.Normalize })
  if wt.Seqname() != mut.Seqname() {
    return EctopicArray{}, fmt.Errorf("wild-type and mutant matrices are on different chromosomes (`%s' and `%s')", wt.Seqname(), mut.Seqname())
  }
  if wt.Binsize() != mut.Binsize() {
    return EctopicArray{}, fmt.Errorf("wild-type and mutant matrices have different bin sizes (`%d' and `%d')", wt.Binsize(), mut.Binsize())
  }
  if !config.Capture.Overlaps(config.Rearrangement) {
    return EctopicArray{}, fmt.Errorf("rearrangement %s is outside the capture region %s",
      config.Rearrangement.Region(wt.Seqname()), config.Capture.Region(wt.Seqname()))
  }
  dataWt, maskFrom, maskTo, err := prepareRegion(wt, config)
  if err != nil {
    return EctopicArray{}, err
  }
  dataMut, _, _, err := prepareRegion(mut, config)
  if err != nil {
    return EctopicArray{}, err
  }
  n, _ := dataWt.Dims()
  if m, _ := dataMut.Dims(); m != n {
    return EctopicArray{}, fmt.Errorf("%w: capture region has %d wild-type and %d mutant bins", ErrShapeMismatch, n, m)
  }
  if config.Normalize {
    if sumMut := mat.Sum(dataMut); sumMut != 0.0 {
      dataMut.Scale(mat.Sum(dataWt)/sumMut, dataMut)
    } else {
      logger.Warn("mutant matrix has no signal in the capture region, skipping normalization")
    }
  }
  diff := mat.NewDense(n, n, nil)
  diff.Sub(dataMut, dataWt)

  logger.Debug("diff array prepared")

  // normalize by local contact intensity
  for k := 0; k < n; k++ {
    if c := diagonalMean(dataWt, k); c != 0.0 {
      for i := 0; i+k < n; i++ {
        v := diff.At(i, i+k)/c
        diff.Set(i, i+k, v)
        diff.Set(i+k, i, v)
      }
    }
  }
  logger.Debug("diff matrix normalized")

  result := mat.NewDense(n, n, nil)
  skipped := 0
  diag    := make([]float64, n)
  for k := 0; k < n; k++ {
    diag = diag[0:n-k]
    for i := range diag {
      diag[i] = finiteOrZero(diff.At(i, i+k))
    }
    mean, std, m := trimmedMeanStdDev(diag, DiagonalLowerPercentile, DiagonalUpperPercentile)
    if m < DiagonalMinSamples || std == 0.0 {
      skipped++
      continue
    }
    for i, v := range diag {
      if v == 0.0 {
        continue
      }
      z := (v - mean)/std
      result.Set(i+k, i, z)
      if config.Mirror {
        result.Set(i, i+k, z)
      }
    }
  }
  logger.WithField("skipped", skipped).Info("ectopic interactions on diagonals found")

  r := EctopicArray{}
  r.Seqname          = wt.Seqname()
  r.Binsize          = wt.Binsize()
  r.Capture          = config.Capture
  r.MaskFrom         = maskFrom
  r.MaskTo           = maskTo
  r.SkippedDiagonals = skipped
  r.data             = result
  return r, nil
}
