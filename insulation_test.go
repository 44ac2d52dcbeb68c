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

import   "math"
import   "strings"
import   "testing"

/* -------------------------------------------------------------------------- */

const insulationTestTable = `chrom	start	end	is_bad_bin	sum_balanced_50000	sum_counts_50000
chr1	0	10000	False	1.5	10
chr1	10000	20000	False	nan	12
chr1	20000	30000	True	2.0	14
`

func TestInsulationTable1(t *testing.T) {
  table := InsulationTable{}
  if err := table.ReadTable(strings.NewReader(insulationTestTable), ""); err != nil {
    t.Fatal(err)
  }
  if table.Length() != 3 {
    t.Fatal("test failed")
  }
  if table.Scores[0] != 1.5 || !math.IsNaN(table.Scores[1]) || table.Scores[2] != 2.0 {
    t.Errorf("test failed: %v", table.Scores)
  }
  if table.Ranges[2] != NewRange(20000, 30000) || table.Seqnames[2] != "chr1" {
    t.Error("test failed")
  }
  if err := table.ReadTable(strings.NewReader(insulationTestTable), "sum_counts_50000"); err != nil {
    t.Fatal(err)
  }
  if table.Scores[1] != 12 {
    t.Error("test failed")
  }
  if err := table.ReadTable(strings.NewReader(insulationTestTable), "log2_insulation_score_50000"); err == nil {
    t.Error("test failed")
  }
}

/* -------------------------------------------------------------------------- */

func newTestInsulationSet(n int) InsulationSet {
  set := InsulationSet{}
  for _, v := range Variants {
    // one additional bin that is not shared by all tables
    m        := n
    if v == MutPred {
      m = n+1
    }
    seqnames := make([]string,  m)
    from     := make([]int,     m)
    to       := make([]int,     m)
    scores   := make([]float64, m)
    for i := 0; i < m; i++ {
      seqnames[i] = "chr1"
      from    [i] = i*1000
      to      [i] = (i+1)*1000
      scores  [i] = 10.0 + math.Sin(float64(i))
      if v.SampleType() == Mutant && i % 10 == 3 {
        // insulation changes in the mutant
        scores[i] *= 2.0
      }
      if v.DataType() == Predicted {
        scores[i] += 0.1*math.Cos(float64(7*i))
      }
    }
    // wild-type score zero
    if v.SampleType() == WildType {
      scores[5] = 0.0
    }
    set[v] = NewInsulationTable(seqnames, from, to, scores)
  }
  return set
}

func TestInsulationRatio1(t *testing.T) {
  n := 100
  r, err := NewInsulationRatio(newTestInsulationSet(n), DefaultInsulationConfig())
  if err != nil {
    t.Fatal(err)
  }
  if len(r.Ranges) != n || len(r.YTrue) != n {
    t.Fatalf("test failed: %d rows", len(r.Ranges))
  }
  for _, d := range DataTypes {
    wt := r.Scores[NewVariant(WildType, d)]
    for i := range wt {
      if wt[i] == 0.0 {
        if r.Ratio[d][i] != 0.0 || !math.IsNaN(r.RatioZ[d][i]) {
          t.Error("ratio of zero wild-type score is not zero")
        }
        if d == Experimental && r.YTrue[i] {
          t.Error("undefined ratio is labeled as positive")
        }
      }
    }
  }
  // bins with changed insulation are positives
  positives := 0
  for i, y := range r.YTrue {
    if y {
      positives++
      if r.Ranges[i].From/1000 % 10 != 3 {
        t.Errorf("unexpected positive at bin %d", i)
      }
    }
  }
  if positives == 0 {
    t.Error("no positives found")
  }
  if r.PRCurve.AUC < 0.9 {
    t.Errorf("test failed: %v", r.PRCurve.AUC)
  }
  if r.PearsonWt < 0.9 || r.PearsonMut < 0.9 || r.PearsonRatio < 0.9 {
    t.Errorf("test failed: %v %v %v", r.PearsonWt, r.PearsonMut, r.PearsonRatio)
  }
}

func TestInsulationRatio2(t *testing.T) {
  x := nonzeroZScores([]float64{0, 2, 2, 2})
  if !math.IsNaN(x[0]) || x[1] != 0.0 {
    t.Errorf("test failed: %v", x)
  }
  if insulationRatio(1, 0) != 0.0 || insulationRatio(math.Inf(1), 1) != 0.0 {
    t.Error("test failed")
  }
  if insulationRatio(3, 2) != 1.5 {
    t.Error("test failed")
  }
}

func TestInsulationRatio3(t *testing.T) {
  // whole chromosome tables, the last one in reverse order and with a
  // duplicated bin
  n   := 200000
  set := newTestInsulationSet(n)
  rev := set[MutPred]
  m   := rev.Length()
  seqnames := make([]string,  m+1)
  from     := make([]int,     m+1)
  to       := make([]int,     m+1)
  scores   := make([]float64, m+1)
  for i := 0; i < m; i++ {
    seqnames[m-1-i] = rev.Seqnames[i]
    from    [m-1-i] = rev.Ranges[i].From
    to      [m-1-i] = rev.Ranges[i].To
    scores  [m-1-i] = rev.Scores[i]
  }
  seqnames[m], from[m], to[m], scores[m] = "chr1", 7000, 8000, -1.0
  set[MutPred] = NewInsulationTable(seqnames, from, to, scores)

  r, err := NewInsulationRatio(set, DefaultInsulationConfig())
  if err != nil {
    t.Fatal(err)
  }
  if len(r.Ranges) != n+1 {
    t.Fatalf("test failed: %d rows", len(r.Ranges))
  }
  // rows follow the first table, scores belong to the same bin
  if r.Ranges[7] != NewRange(7000, 8000) || r.Ranges[8] != NewRange(7000, 8000) || r.Ranges[9] != NewRange(8000, 9000) {
    t.Errorf("test failed: %v", r.Ranges[7:10])
  }
  if r.Scores[MutPred][7] != rev.Scores[7] || r.Scores[MutPred][8] != -1.0 {
    t.Errorf("test failed: %v", r.Scores[MutPred][7:9])
  }
  for _, i := range []int{0, 1234, n} {
    if r.Scores[MutPred][i] != rev.Scores[r.Ranges[i].From/1000] || r.Scores[WtExp][i] != set[WtExp].Scores[r.Ranges[i].From/1000] {
      t.Errorf("scores of bin %d are not aligned", i)
    }
  }
}
