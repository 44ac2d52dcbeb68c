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
import "strconv"
import "strings"

import "github.com/go-gota/gota/dataframe"
import "github.com/pbenner/threadpool"
import "github.com/sirupsen/logrus"
import "gonum.org/v1/gonum/stat"

/* -------------------------------------------------------------------------- */

// Insulation scores of genomic bins, computed by an external tool.
type InsulationTable struct {
  Seqnames []string
  Ranges   []Range
  Scores   []float64
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewInsulationTable(seqnames []string, from, to []int, scores []float64) InsulationTable {
  n := len(seqnames)
  if len(from) != n || len(to) != n || len(scores) != n {
    panic("NewInsulationTable(): invalid arguments!")
  }
  ranges := make([]Range, n)
  for i := 0; i < n; i++ {
    ranges[i] = NewRange(from[i], to[i])
  }
  return InsulationTable{seqnames, ranges, scores}
}

/* -------------------------------------------------------------------------- */

func (t InsulationTable) Length() int {
  return len(t.Ranges)
}

type insulationKey struct {
  Seqname  string
  From, To int
}

func (t InsulationTable) key(i int) insulationKey {
  return insulationKey{t.Seqnames[i], t.Ranges[i].From, t.Ranges[i].To}
}

/* -------------------------------------------------------------------------- */

/* i/o
 * -------------------------------------------------------------------------- */

func parseScore(s string) (float64, error) {
  switch strings.ToLower(s) {
  case "", "na", "nan", "none":
    return math.NaN(), nil
  }
  return strconv.ParseFloat(s, 64)
}

// Read an insulation table from a tab separated file with header. Columns
// chrom, start and end are required. The score is taken from the given
// column or, if column is empty, from the first column whose name starts
// with `sum_balanced'.
func (t *InsulationTable) ReadTable(r io.Reader, column string) error {
  df := dataframe.ReadCSV(r,
    dataframe.WithDelimiter('\t'),
    dataframe.HasHeader(true),
    dataframe.DetectTypes(false))
  if df.Err != nil {
    return df.Err
  }
  names := map[string]bool{}
  for _, name := range df.Names() {
    names[name] = true
    if column == "" && strings.HasPrefix(name, "sum_balanced") {
      column = name
    }
  }
  for _, name := range []string{"chrom", "start", "end", column} {
    if !names[name] {
      return fmt.Errorf("insulation table is missing column `%s'", name)
    }
  }
  seqnames := df.Col("chrom").Records()
  from     := make([]int,     df.Nrow())
  to       := make([]int,     df.Nrow())
  scores   := make([]float64, df.Nrow())
  for i, s := range df.Col("start").Records() {
    v, err := strconv.ParseInt(s, 10, 64)
    if err != nil {
      return fmt.Errorf("parsing `start' column failed at line `%d': %v", i+2, err)
    }
    from[i] = int(v)
  }
  for i, s := range df.Col("end").Records() {
    v, err := strconv.ParseInt(s, 10, 64)
    if err != nil {
      return fmt.Errorf("parsing `end' column failed at line `%d': %v", i+2, err)
    }
    to[i] = int(v)
    if to[i] < from[i] {
      return fmt.Errorf("invalid range at line `%d'", i+2)
    }
  }
  for i, s := range df.Col(column).Records() {
    v, err := parseScore(s)
    if err != nil {
      return fmt.Errorf("parsing `%s' column failed at line `%d': %v", column, i+2, err)
    }
    scores[i] = v
  }
  *t = NewInsulationTable(seqnames, from, to, scores)
  return nil
}

func (t *InsulationTable) ImportTable(filename, column string) error {
  r, err := openFile(filename)
  if err != nil {
    return err
  }
  if err := t.ReadTable(r, column); err != nil {
    return fmt.Errorf("reading insulation table `%s' failed: %w", filename, err)
  }
  return nil
}

/* ratio scorer
 * -------------------------------------------------------------------------- */

type InsulationConfig struct {
  Sigma  float64
  Pool  *threadpool.ThreadPool
  Logger logrus.FieldLogger
}

func DefaultInsulationConfig() InsulationConfig {
  return InsulationConfig{Sigma: DefaultSigma}
}

// Insulation scores of all four variants on the bins present in all
// tables, together with the mutant/wild-type ratios and their z-scores for
// both data types.
type InsulationRatioResult struct {
  Seqnames     []string
  Ranges       []Range
  Scores       [NVariants][]float64
  // mutant/wild-type ratio, zero if the wild-type score is zero
  Ratio        [2][]float64
  // z-score of nonzero ratios, NaN for zero ratios
  RatioZ       [2][]float64
  YTrue        []bool
  PRCurve        PRCurveResult
  PearsonWt      float64
  PearsonMut     float64
  PearsonRatio   float64
}

// Mutant/wild-type ratio of insulation scores. Zero if the wild-type score
// is zero or the ratio is not finite.
func insulationRatio(mut, wt float64) float64 {
  if wt == 0.0 {
    return 0.0
  }
  return finiteOrZero(mut/wt)
}

// z-scores of all nonzero values, computed with the mean and population
// standard deviation of the nonzero values. Zero values are undefined
// (NaN). If all nonzero values are equal their z-score is zero.
func nonzeroZScores(x []float64) []float64 {
  nonzero := []float64{}
  for _, v := range x {
    if v != 0.0 {
      nonzero = append(nonzero, v)
    }
  }
  r := make([]float64, len(x))
  if len(nonzero) == 0 {
    for i := range r {
      r[i] = math.NaN()
    }
    return r
  }
  mean, std := stat.PopMeanStdDev(nonzero, nil)
  for i, v := range x {
    switch {
    case v == 0.0:
      r[i] = math.NaN()
    case std == 0.0:
      r[i] = 0.0
    default:
      r[i] = (v - mean)/std
    }
  }
  return r
}

// Inner join of the insulation tables of all four variants on (chrom,
// start, end). Each returned row holds the row index of every table. Rows
// are in the order of the first table, duplicate keys give all
// combinations.
func joinInsulationTables(tables InsulationSet) [][NVariants]int {
  index := [NVariants]map[insulationKey][]int{}
  for _, v := range Variants[1:] {
    index[v] = make(map[insulationKey][]int, tables[v].Length())
    for i := 0; i < tables[v].Length(); i++ {
      k := tables[v].key(i)
      index[v][k] = append(index[v][k], i)
    }
  }
  rows  := [][NVariants]int{}
  first := tables[Variants[0]]
  for i := 0; i < first.Length(); i++ {
    k       := first.key(i)
    current := make([][NVariants]int, 1)
    current[0][Variants[0]] = i
    for _, v := range Variants[1:] {
      next := [][NVariants]int{}
      for _, row := range current {
        for _, j := range index[v][k] {
          row[v] = j
          next = append(next, row)
        }
      }
      current = next
    }
    rows = append(rows, current...)
  }
  return rows
}

// Join the insulation tables of all four variants on (chrom, start, end),
// compute mutant/wild-type ratios and their z-scores, and score predicted
// ratio z-scores against significant experimental ratio z-scores with a
// precision-recall curve.
func NewInsulationRatio(tables InsulationSet, config InsulationConfig) (InsulationRatioResult, error) {
  logger := loggerOrDefault(config.Logger)

  rows := joinInsulationTables(tables)
  if len(rows) == 0 {
    return InsulationRatioResult{}, fmt.Errorf("insulation tables have no bins in common")
  }
  logger.WithField("bins", len(rows)).Info("insulation tables joined")

  first := tables[Variants[0]]
  r     := InsulationRatioResult{}
  r.Seqnames = make([]string, len(rows))
  r.Ranges   = make([]Range,  len(rows))
  for i, row := range rows {
    r.Seqnames[i] = first.Seqnames[row[Variants[0]]]
    r.Ranges  [i] = first.Ranges  [row[Variants[0]]]
  }
  for _, v := range Variants {
    r.Scores[v] = make([]float64, len(rows))
    for i, row := range rows {
      r.Scores[v][i] = tables[v].Scores[row[v]]
    }
  }
  n    := len(rows)
  pool := poolOrDefault(config.Pool)
  for _, d := range DataTypes {
    wt  := r.Scores[NewVariant(WildType, d)]
    mut := r.Scores[NewVariant(Mutant,   d)]
    ratio := make([]float64, n)
    if err := pool.RangeJob(0, n, func(i int, pool threadpool.ThreadPool, erf func() error) error {
      ratio[i] = insulationRatio(mut[i], wt[i])
      return nil
    }); err != nil {
      return r, err
    }
    r.Ratio [d] = ratio
    r.RatioZ[d] = nonzeroZScores(ratio)
  }
  r.YTrue = ClassifySignificant(r.RatioZ[Experimental], config.Sigma)

  var err error
  if r.PRCurve, err = NewPRCurve(r.YTrue, r.RatioZ[Predicted]); err != nil {
    return r, err
  }
  r.PearsonWt    = PearsonCorrelation(r.Scores[WtExp],  r.Scores[WtPred])
  r.PearsonMut   = PearsonCorrelation(r.Scores[MutExp], r.Scores[MutPred])
  r.PearsonRatio = PearsonCorrelation(r.Ratio[Experimental], r.Ratio[Predicted])

  logger.WithField("auc", r.PRCurve.AUC).Info("ectopic insulation scored")
  return r, nil
}
