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

import   "bytes"
import   "errors"
import   "math"
import   "strings"
import   "testing"

/* -------------------------------------------------------------------------- */

const binsTestTable = `chrom	start	end	weight
chr1	0	10	0.5
chr1	10	20	0.5
chr1	20	25	0.5
chr2	0	10	1.0
chr2	10	20	nan
chr2	20	30	2.0
`

func TestBins1(t *testing.T) {
  bins := BinTable{}
  if err := bins.ReadTable(strings.NewReader(binsTestTable), "chr2", 0); err != nil {
    t.Fatal(err)
  }
  if bins.Length() != 3 {
    t.Error("test failed")
  }
  if bins.Offset != 3 {
    t.Error("test failed")
  }
  if bins.Binsize != 10 {
    t.Error("test failed")
  }
  if !math.IsNaN(bins.Weight(1)) || bins.Weight(2) != 2.0 {
    t.Error("test failed")
  }
  if i, err := bins.Lookup("chr2", 20); err != nil || i != 1 {
    t.Error("test failed")
  }
  if _, err := bins.Lookup("chr2", 25); !errors.Is(err, ErrUnknownBin) {
    t.Error("test failed")
  }
  if _, err := bins.Lookup("chr1", 20); !errors.Is(err, ErrUnknownBin) {
    t.Error("test failed")
  }
}

func TestBins2(t *testing.T) {
  bins := NewUniformBinTable("chr1", 95, 10)
  if bins.Length() != 10 || bins.Ranges[9] != NewRange(90, 95) {
    t.Error("test failed")
  }
  if i, j, err := bins.FindRange(NewRange(15, 40)); err != nil || i != 1 || j != 4 {
    t.Error("test failed")
  }
  if _, _, err := bins.FindRange(NewRange(100, 200)); err == nil {
    t.Error("test failed")
  }
  if bins.Weight(3) != 1.0 {
    t.Error("test failed")
  }
  if w := bins.WithWeight(0.01); w.Weight(3) != 0.01 || bins.Weights != nil {
    t.Error("test failed")
  }
}

func TestBins3(t *testing.T) {
  bins := BinTable{}
  if err := bins.ReadTable(strings.NewReader(binsTestTable), "chr1", 0); err != nil {
    t.Fatal(err)
  }
  var buffer bytes.Buffer
  if err := bins.WriteTable(&buffer, true); err != nil {
    t.Fatal(err)
  }
  tmp := BinTable{}
  if err := tmp.ReadTable(&buffer, "chr1", 0); err != nil {
    t.Fatal(err)
  }
  if tmp.Length() != bins.Length() {
    t.Error("test failed")
  }
  for i := 0; i < bins.Length(); i++ {
    if tmp.Ranges[i] != bins.Ranges[i] || tmp.Weight(i) != bins.Weight(i) {
      t.Error("test failed")
    }
  }
}

func TestRange1(t *testing.T) {
  r := NewRange(100, 200)
  if r.Region("chr1") != "chr1:100-200" {
    t.Error("test failed")
  }
  if !r.Overlaps(NewRange(150, 300)) || r.Overlaps(NewRange(200, 300)) {
    t.Error("test failed")
  }
  if !r.Contains(NewRange(120, 200)) || r.Contains(NewRange(50, 120)) {
    t.Error("test failed")
  }
  if r.Intersection(NewRange(150, 300)) != NewRange(150, 200) {
    t.Error("test failed")
  }
}
