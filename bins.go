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
import "sort"

/* -------------------------------------------------------------------------- */

var ErrUnknownBin = errors.New("unknown bin")

/* -------------------------------------------------------------------------- */

// Ordered sequence of bins of a single chromosome. Weights are optional
// balancing weights (NaN marks a bin that was filtered during balancing),
// Offset is the index of the first bin within a genome-wide bin table.
type BinTable struct {
  Seqname   string
  Binsize   int
  Ranges  []Range
  Weights []float64
  Offset    int
  index     map[int]int
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewBinTable(seqname string, binsize int, ranges []Range, weights []float64) (BinTable, error) {
  if binsize <= 0 {
    return BinTable{}, fmt.Errorf("invalid bin size `%d'", binsize)
  }
  if len(weights) != 0 && len(weights) != len(ranges) {
    return BinTable{}, fmt.Errorf("number of weights does not match number of bins")
  }
  for i := 1; i < len(ranges); i++ {
    if ranges[i].From < ranges[i-1].From {
      return BinTable{}, fmt.Errorf("bins are not sorted at position `%d'", i)
    }
  }
  bins := BinTable{Seqname: seqname, Binsize: binsize, Ranges: ranges, Weights: weights}
  bins.buildIndex()
  return bins, nil
}

// Bin table that covers a chromosome of the given length with bins of
// equal size. The last bin is truncated at the end of the chromosome.
func NewUniformBinTable(seqname string, length, binsize int) BinTable {
  n      := divIntUp(length, binsize)
  ranges := make([]Range, n)
  for i := 0; i < n; i++ {
    ranges[i] = NewRange(i*binsize, iMin((i+1)*binsize, length))
  }
  bins, err := NewBinTable(seqname, binsize, ranges, nil)
  if err != nil {
    panic(err)
  }
  return bins
}

func (bins *BinTable) buildIndex() {
  bins.index = make(map[int]int, len(bins.Ranges))
  for i, r := range bins.Ranges {
    bins.index[r.To] = i
  }
}

/* -------------------------------------------------------------------------- */

func (bins BinTable) Length() int {
  return len(bins.Ranges)
}

func (bins BinTable) Clone() BinTable {
  ranges  := make([]Range, len(bins.Ranges))
  copy(ranges, bins.Ranges)
  var weights []float64
  if bins.Weights != nil {
    weights = make([]float64, len(bins.Weights))
    copy(weights, bins.Weights)
  }
  r, _ := NewBinTable(bins.Seqname, bins.Binsize, ranges, weights)
  r.Offset = bins.Offset
  return r
}

// Balancing weight of bin i, unbalanced tables have weight one.
func (bins BinTable) Weight(i int) float64 {
  if bins.Weights == nil {
    return 1.0
  }
  return bins.Weights[i]
}

// Return a copy of the table where all bins carry the given weight.
func (bins BinTable) WithWeight(w float64) BinTable {
  r := bins.Clone()
  r.Weights = make([]float64, bins.Length())
  for i := range r.Weights {
    r.Weights[i] = w
  }
  return r
}

// Index of the bin with the given chromosome and end coordinate.
func (bins BinTable) Lookup(seqname string, end int) (int, error) {
  if seqname != bins.Seqname {
    return -1, fmt.Errorf("%w: %s:%d (expected chromosome `%s')", ErrUnknownBin, seqname, end, bins.Seqname)
  }
  if bins.index == nil {
    bins.buildIndex()
  }
  if i, ok := bins.index[end]; ok {
    return i, nil
  }
  return -1, fmt.Errorf("%w: %s:%d", ErrUnknownBin, seqname, end)
}

// Indices [i, j) of all bins overlapping r.
func (bins BinTable) FindRange(r Range) (int, int, error) {
  i := sort.Search(bins.Length(), func(k int) bool { return bins.Ranges[k].To   >  r.From })
  j := sort.Search(bins.Length(), func(k int) bool { return bins.Ranges[k].From >= r.To   })
  if i >= j {
    return 0, 0, fmt.Errorf("region %s does not overlap any bin", r.Region(bins.Seqname))
  }
  return i, j, nil
}
