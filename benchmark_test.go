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

import   "testing"

import   "github.com/pbenner/threadpool"

/* -------------------------------------------------------------------------- */

func newTestBenchmarkInputs(n int) BenchmarkInputs {
  inputs := BenchmarkInputs{}
  inputs.Matrices[WtExp],  inputs.Matrices[MutExp]  = newTestMatrices(n, 1, 50.0)
  inputs.Matrices[WtPred], inputs.Matrices[MutPred] = newTestMatrices(n, 2, 40.0)
  inputs.Capture       = NewRange(0, n*1000)
  inputs.Rearrangement = testRearrangement(n)
  return inputs
}

func TestBenchmark1(t *testing.T) {
  n      := 300
  inputs := newTestBenchmarkInputs(n)
  inputs.Insulation = newTestInsulationSet(100)

  pool   := threadpool.New(2, 200)
  config := DefaultBenchmarkConfig()
  config.Permutations = 20
  config.Pool         = &pool

  m, err := RunBenchmark(inputs, config)
  if err != nil {
    t.Fatal(err)
  }
  if m.PearsonWt < 0.5 || m.PearsonMut < 0.5 {
    t.Errorf("test failed: %v %v", m.PearsonWt, m.PearsonMut)
  }
  if m.SampleTypeAlignment[WildType].Shared != n*(n+1)/2 {
    t.Error("test failed")
  }
  if m.Insulation == nil || m.Random == nil || len(m.Random.Random) != 20 {
    t.Fatal("test failed")
  }
  if auc := m.EctopicInteractions.AUC; auc < 0.0 || auc > 1.0 {
    t.Errorf("test failed: %v", auc)
  }
  r := m.Record()
  expected := []string{
    "Metrics.Pearson.WT",
    "Metrics.Pearson.MUT",
    "Metrics.InsulationScorePearson.WT",
    "Metrics.InsulationScorePearson.MUT",
    "Metrics.InsulationScoreMutVsWtPearson",
    "Metrics.EctopicInsulation.AUC",
    "Metrics.EctopicInsulation.Precision",
    "Metrics.EctopicInsulation.Recall",
    "Metrics.EctopicInsulation.Thresholds",
    "Metrics.EctopicArrayGraph.EXP",
    "Metrics.EctopicArrayGraph.PRED",
    "Metrics.EctopicInteractions.AUC",
    "Metrics.EctopicInteractions.Precision",
    "Metrics.EctopicInteractions.Recall",
    "Metrics.EctopicInteractions.Thresholds",
    "Metrics.RandomInteractions.Random",
    "Metrics.RandomInteractions.Real" }
  names := r.Names()
  if len(names) != len(expected) {
    t.Fatalf("test failed: %v", names)
  }
  for i := range expected {
    if names[i] != expected[i] {
      t.Errorf("test failed: %s != %s", names[i], expected[i])
    }
  }
  // graph window is clamped to the size of the array
  v, _ := r.Get("Metrics.EctopicArrayGraph.EXP")
  graph, err := ParseJSONMatrix(v.(string))
  if err != nil {
    t.Fatal(err)
  }
  if len(graph) != n-DefaultGraphFrom || len(graph[0]) != n-DefaultGraphFrom {
    t.Errorf("test failed: %d", len(graph))
  }
  v, _ = r.Get("Metrics.RandomInteractions.Random")
  if random, err := ParseJSONInts(v.(string)); err != nil || len(random) != 20 {
    t.Error("test failed")
  }
  if _, err := r.MarshalJSON(); err != nil {
    t.Error(err)
  }
}

func TestBenchmark2(t *testing.T) {
  inputs := newTestBenchmarkInputs(100)
  config := DefaultBenchmarkConfig()
  config.Permutations = 0

  m, err := RunBenchmark(inputs, config)
  if err != nil {
    t.Fatal(err)
  }
  r := m.Record()
  if _, ok := r.Get("Metrics.InsulationScorePearson.WT"); ok {
    t.Error("test failed")
  }
  if _, ok := r.Get("Metrics.RandomInteractions.Real"); ok {
    t.Error("test failed")
  }
  if _, ok := r.Get("Metrics.EctopicInteractions.AUC"); !ok {
    t.Error("test failed")
  }
  // chromosome mismatch
  inputs.Matrices[MutPred], _ = NewContactMatrix(NewUniformBinTable("chr2", 100000, 1000), nil)
  if _, err := RunBenchmark(inputs, config); err == nil {
    t.Error("test failed")
  }
}
