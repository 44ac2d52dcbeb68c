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

/* -------------------------------------------------------------------------- */

type AlignmentStats struct {
  PixelsA int
  PixelsB int
  Shared  int
}

func (s AlignmentStats) RetainedA() float64 {
  return safeDiv(float64(s.Shared), float64(s.PixelsA))
}

func (s AlignmentStats) RetainedB() float64 {
  return safeDiv(float64(s.Shared), float64(s.PixelsB))
}

// Two contact matrices restricted to the pixels present in both of them.
// Both matrices have identical pixel key sets in identical order.
type AlignedMatrixPair struct {
  A, B  ContactMatrix
  Stats AlignmentStats
}

/* -------------------------------------------------------------------------- */

// Align two contact matrices of the same chromosome by computing the inner
// join of their pixel keys (bin1, bin2). Each matrix keeps its own bin table
// and its own values. Pixels whose key is missing in the other matrix are
// dropped, the fraction of retained pixels is reported in the statistics.
func AlignMatrices(a, b ContactMatrix) (AlignedMatrixPair, error) {
  if a.Seqname() != b.Seqname() {
    return AlignedMatrixPair{}, fmt.Errorf("cannot align matrices of chromosomes `%s' and `%s'", a.Seqname(), b.Seqname())
  }
  index := make(map[PixelKey]int, b.Length())
  for i, p := range b.Pixels {
    index[p.Key()] = i
  }
  pixelsA := []Pixel{}
  pixelsB := []Pixel{}
  for _, p := range a.Pixels {
    if j, ok := index[p.Key()]; ok {
      pixelsA = append(pixelsA, p)
      pixelsB = append(pixelsB, b.Pixels[j])
    }
  }
  r := AlignedMatrixPair{}
  r.A = ContactMatrix{a.Bins, pixelsA}
  r.B = ContactMatrix{b.Bins, pixelsB}
  r.Stats = AlignmentStats{
    PixelsA: a.Length(),
    PixelsB: b.Length(),
    Shared : len(pixelsA) }
  return r, nil
}
