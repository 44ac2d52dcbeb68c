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

import "gonum.org/v1/gonum/mat"

/* -------------------------------------------------------------------------- */

// A single entry of a sparse contact matrix. Bin indices refer to
// positions in the bin table of the matrix and satisfy Bin1 <= Bin2.
type Pixel struct {
  Bin1, Bin2 int
  Count      float64
}

type PixelKey struct {
  Bin1, Bin2 int
}

func (p Pixel) Key() PixelKey {
  return PixelKey{p.Bin1, p.Bin2}
}

/* -------------------------------------------------------------------------- */

// Symmetric sparse contact matrix of a single chromosome. Only the upper
// triangle is stored.
type ContactMatrix struct {
  Bins     BinTable
  Pixels []Pixel
}

/* constructors
 * -------------------------------------------------------------------------- */

// Create a new contact matrix. Pixels are moved to the upper triangle,
// sorted by key and duplicate keys are summed up.
func NewContactMatrix(bins BinTable, pixels []Pixel) (ContactMatrix, error) {
  n := bins.Length()
  r := make([]Pixel, len(pixels))
  for i, p := range pixels {
    if p.Bin1 > p.Bin2 {
      p.Bin1, p.Bin2 = p.Bin2, p.Bin1
    }
    if p.Bin1 < 0 || p.Bin2 >= n {
      return ContactMatrix{}, fmt.Errorf("pixel (%d, %d) is outside the bin table of `%s' with %d bins", p.Bin1, p.Bin2, bins.Seqname, n)
    }
    r[i] = p
  }
  sort.SliceStable(r, func(i, j int) bool {
    if r[i].Bin1 != r[j].Bin1 {
      return r[i].Bin1 < r[j].Bin1
    }
    return r[i].Bin2 < r[j].Bin2
  })
  // merge duplicates
  k := 0
  for i := 0; i < len(r); i++ {
    if k > 0 && r[k-1].Key() == r[i].Key() {
      r[k-1].Count += r[i].Count
    } else {
      r[k] = r[i]; k++
    }
  }
  return ContactMatrix{bins, r[0:k]}, nil
}

/* -------------------------------------------------------------------------- */

func (m ContactMatrix) Seqname() string {
  return m.Bins.Seqname
}

func (m ContactMatrix) Binsize() int {
  return m.Bins.Binsize
}

func (m ContactMatrix) Length() int {
  return len(m.Pixels)
}

// Value of the i-th pixel, either the raw count or the balanced value
// count * w1 * w2.
func (m ContactMatrix) Value(i int, balanced bool) float64 {
  p := m.Pixels[i]
  if balanced {
    return p.Count*m.Bins.Weight(p.Bin1)*m.Bins.Weight(p.Bin2)
  }
  return p.Count
}

func (m ContactMatrix) Values(balanced bool) []float64 {
  r := make([]float64, m.Length())
  for i := range r {
    r[i] = m.Value(i, balanced)
  }
  return r
}

/* -------------------------------------------------------------------------- */

// Extract a dense symmetric sub-matrix for all bins overlapping the given
// region. Missing or non-finite values are set to zero. The index of the
// first bin of the region within the bin table is returned as well.
func (m ContactMatrix) DenseRegion(region Range, balanced bool) (*mat.Dense, int, error) {
  i0, i1, err := m.Bins.FindRange(region)
  if err != nil {
    return nil, 0, err
  }
  n := i1-i0
  r := mat.NewDense(n, n, nil)
  for k, p := range m.Pixels {
    if p.Bin1 < i0 || p.Bin2 >= i1 {
      continue
    }
    v := finiteOrZero(m.Value(k, balanced))
    r.Set(p.Bin1-i0, p.Bin2-i0, v)
    r.Set(p.Bin2-i0, p.Bin1-i0, v)
  }
  return r, i0, nil
}

/* -------------------------------------------------------------------------- */

func (m ContactMatrix) String() string {
  return fmt.Sprintf("ContactMatrix(%s, binsize=%d, bins=%d, pixels=%d)",
    m.Seqname(), m.Binsize(), m.Bins.Length(), m.Length())
}
