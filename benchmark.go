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

import "github.com/pbenner/threadpool"
import "github.com/sirupsen/logrus"

/* -------------------------------------------------------------------------- */

const (
  DefaultGraphFrom = 150
  DefaultGraphTo   = 350
)

type BenchmarkConfig struct {
  Sigma        float64
  // number of random permutations, no permutation test if zero
  Permutations int
  Seed         int64
  // use balanced values for the ectopic arrays
  Balanced     bool
  Mirror       bool
  // window of the ectopic array graphs
  GraphFrom    int
  GraphTo      int
  Pool        *threadpool.ThreadPool
  Progress     io.Writer
  Logger       logrus.FieldLogger
}

func DefaultBenchmarkConfig() BenchmarkConfig {
  return BenchmarkConfig{
    Sigma       : DefaultSigma,
    Permutations: DefaultPermutations,
    Seed        : 1,
    GraphFrom   : DefaultGraphFrom,
    GraphTo     : DefaultGraphTo }
}

// Inputs of a single benchmark unit.
type BenchmarkInputs struct {
  Matrices      MatrixSet
  // optional, insulation metrics are skipped if any table is empty
  Insulation    InsulationSet
  Capture       Range
  Rearrangement Range
}

func (inputs BenchmarkInputs) hasInsulation() bool {
  for _, v := range Variants {
    if inputs.Insulation[v].Length() == 0 {
      return false
    }
  }
  return true
}

/* -------------------------------------------------------------------------- */

// Results of all stages of a benchmark unit.
type Metrics struct {
  // statistics of experimental/predicted alignments indexed by sample type
  SampleTypeAlignment [2]AlignmentStats
  // statistics of wild-type/mutant alignments indexed by data type
  DataTypeAlignment   [2]AlignmentStats
  PearsonWt           float64
  PearsonMut          float64
  Insulation         *InsulationRatioResult
  EctopicExp          EctopicArray
  EctopicPred         EctopicArray
  EctopicInteractions PRCurveResult
  Random             *NullDistribution
  GraphFrom           int
  GraphTo             int
  Sigma               float64
}

func setPRCurve(r *MetricsRecord, prefix string, pr PRCurveResult) {
  r.Set(prefix+".AUC",        pr.AUC)
  r.Set(prefix+".Precision",  JSONFloats(pr.Precision))
  r.Set(prefix+".Recall",     JSONFloats(pr.Recall))
  r.Set(prefix+".Thresholds", JSONFloats(pr.Thresholds))
}

// Assemble the metrics record of a benchmark unit.
func (m Metrics) Record() *MetricsRecord {
  r := NewMetricsRecord()
  r.Set("Metrics.Pearson.WT",  m.PearsonWt)
  r.Set("Metrics.Pearson.MUT", m.PearsonMut)
  if m.Insulation != nil {
    r.Set("Metrics.InsulationScorePearson.WT",    m.Insulation.PearsonWt)
    r.Set("Metrics.InsulationScorePearson.MUT",   m.Insulation.PearsonMut)
    r.Set("Metrics.InsulationScoreMutVsWtPearson", m.Insulation.PearsonRatio)
    setPRCurve(r, "Metrics.EctopicInsulation", m.Insulation.PRCurve)
  }
  r.Set("Metrics.EctopicArrayGraph.EXP",  JSONMatrix(m.EctopicExp .Graph(m.GraphFrom, m.GraphTo, m.Sigma)))
  r.Set("Metrics.EctopicArrayGraph.PRED", JSONMatrix(m.EctopicPred.Graph(m.GraphFrom, m.GraphTo, m.Sigma)))
  setPRCurve(r, "Metrics.EctopicInteractions", m.EctopicInteractions)
  if m.Random != nil {
    r.Set("Metrics.RandomInteractions.Random", JSONInts(m.Random.Random))
    r.Set("Metrics.RandomInteractions.Real",   m.Random.Real)
  }
  return r
}

/* -------------------------------------------------------------------------- */

func logAlignment(logger logrus.FieldLogger, name string, pair AlignedMatrixPair) {
  logger.WithFields(logrus.Fields{
    "pixels"    : pair.Stats.Shared,
    "retained_a": pair.Stats.RetainedA(),
    "retained_b": pair.Stats.RetainedB() }).Info(name)
}

// Run all stages of a benchmark unit.
func RunBenchmark(inputs BenchmarkInputs, config BenchmarkConfig) (Metrics, error) {
  logger := loggerOrDefault(config.Logger)
  m := Metrics{GraphFrom: config.GraphFrom, GraphTo: config.GraphTo, Sigma: config.Sigma}

  // correlation of experimental and predicted contacts
  done := timer(logger, "sample type align")
  for _, s := range SampleTypes {
    pair, err := AlignMatrices(inputs.Matrices.Get(s, Experimental), inputs.Matrices.Get(s, Predicted))
    if err != nil {
      return m, fmt.Errorf("aligning %v matrices failed: %w", s, err)
    }
    logAlignment(logger.WithField("sample_type", s.String()), "experimental and predicted matrices aligned", pair)
    m.SampleTypeAlignment[s] = pair.Stats
    p := PearsonCorrelation(pair.A.Values(true), pair.B.Values(true))
    switch s {
    case WildType: m.PearsonWt  = p
    case Mutant  : m.PearsonMut = p
    }
  }
  done()

  if inputs.hasInsulation() {
    done := timer(logger, "insulation ratio")
    r, err := NewInsulationRatio(inputs.Insulation, InsulationConfig{
      Sigma : config.Sigma,
      Pool  : config.Pool,
      Logger: logger })
    if err != nil {
      return m, err
    }
    m.Insulation = &r
    done()
  } else {
    logger.Warn("insulation tables missing, skipping insulation metrics")
  }

  // ectopic arrays of experimental and predicted data
  done = timer(logger, "ectopic array")
  for _, d := range DataTypes {
    pair, err := AlignMatrices(inputs.Matrices.Get(WildType, d), inputs.Matrices.Get(Mutant, d))
    if err != nil {
      return m, fmt.Errorf("aligning %v matrices failed: %w", d, err)
    }
    logAlignment(logger.WithField("data_type", d.String()), "wild-type and mutant matrices aligned", pair)
    m.DataTypeAlignment[d] = pair.Stats
    a, err := NewEctopicArray(pair.A, pair.B, EctopicConfig{
      Capture      : inputs.Capture,
      Rearrangement: inputs.Rearrangement,
      // predictions are already on comparable scales
      Normalize    : d == Experimental,
      Balanced     : config.Balanced,
      Mirror       : config.Mirror,
      Logger       : logger.WithField("data_type", d.String()) })
    if err != nil {
      return m, err
    }
    switch d {
    case Experimental: m.EctopicExp  = a
    case Predicted   : m.EctopicPred = a
    }
  }
  done()

  done = timer(logger, "ectopic interactions pr curve")
  if pr, err := NewPRCurve(m.EctopicExp.Classify(config.Sigma), m.EctopicPred.Flatten()); err != nil {
    return m, err
  } else {
    m.EctopicInteractions = pr
  }
  done()

  if config.Permutations > 0 {
    done = timer(logger, "random interactions")
    r, err := NewNullDistribution(m.EctopicExp, m.EctopicPred, PermutationConfig{
      N       : config.Permutations,
      Sigma   : config.Sigma,
      Seed    : config.Seed,
      Pool    : config.Pool,
      Progress: config.Progress,
      Logger  : logger })
    if err != nil {
      return m, err
    }
    m.Random = &r
    done()
  }
  return m, nil
}
