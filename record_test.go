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
import   "testing"

/* -------------------------------------------------------------------------- */

func TestFormatJSONFloat1(t *testing.T) {
  for _, test := range []struct{ x float64; s string }{
    {1.0, "1.0"}, {0.1, "0.1"}, {-2.5, "-2.5"}, {1e-05, "1e-05"}, {1.5e-07, "1.5e-07"},
    {123456789.0, "123456789.0"}, {1e16, "1e+16"}, {2.5e20, "2.5e+20"},
    {math.NaN(), "NaN"}, {math.Inf(1), "Infinity"}, {math.Inf(-1), "-Infinity"} } {
    if s := formatJSONFloat(test.x); s != test.s {
      t.Errorf("formatting %v failed: %s", test.x, s)
    }
  }
}

func TestMetricsRecord1(t *testing.T) {
  r := NewMetricsRecord()
  r.Set("b", 1.0)
  r.Set("a", 2)
  r.Set("c", "x<y")
  r.Set("d", math.NaN())
  r.Set("b", 3.0)

  data, err := r.MarshalJSON()
  if err != nil {
    t.Fatal(err)
  }
  if s := string(data); s != `{"b": 3.0, "a": 2, "c": "x<y", "d": NaN}` {
    t.Errorf("test failed: %s", s)
  }
  s := NewMetricsRecord()
  if err := s.UnmarshalJSON(data); err != nil {
    t.Fatal(err)
  }
  if names := s.Names(); len(names) != 4 || names[0] != "b" || names[3] != "d" {
    t.Errorf("test failed: %v", names)
  }
  if v, _ := s.Get("a"); v != 2 {
    t.Error("test failed")
  }
  if v, _ := s.Get("b"); v != 3.0 {
    t.Error("test failed")
  }
  if v, _ := s.Get("d"); !math.IsNaN(v.(float64)) {
    t.Error("test failed")
  }
  r.Delete("a")
  if _, ok := r.Get("a"); ok || r.Length() != 3 {
    t.Error("test failed")
  }
  if v, _ := r.Get("c"); v != "x<y" {
    t.Error("test failed")
  }
}

func TestMetricsRecord2(t *testing.T) {
  x := []float64{1, math.NaN(), 0.5}
  s := JSONFloats(x)
  if s != "[1.0, NaN, 0.5]" {
    t.Errorf("test failed: %s", s)
  }
  y, err := ParseJSONFloats(s)
  if err != nil {
    t.Fatal(err)
  }
  if len(y) != 3 || y[0] != 1 || !math.IsNaN(y[1]) || y[2] != 0.5 {
    t.Error("test failed")
  }
  if s := JSONInts([]int{3, 1, 2}); s != "[3, 1, 2]" {
    t.Errorf("test failed: %s", s)
  }
  if z, err := ParseJSONInts("[3, 1, 2]"); err != nil || len(z) != 3 || z[0] != 3 {
    t.Error("test failed")
  }
  // null is accepted as well
  if y, err := ParseJSONFloats("[null, Infinity, -Infinity]"); err != nil || len(y) != 3 || !math.IsNaN(y[0]) || !math.IsInf(y[1], 1) || !math.IsInf(y[2], -1) {
    t.Error("test failed")
  }
  if _, err := ParseJSONFloats(`["NaN"]`); err == nil {
    t.Error("test failed")
  }
  m, err := ParseJSONMatrix(JSONMatrix([][]float64{{1, math.NaN()}, {2, 3}}))
  if err != nil {
    t.Fatal(err)
  }
  if len(m) != 2 || !math.IsNaN(m[0][1]) || m[1][1] != 3 {
    t.Error("test failed")
  }
}

/* -------------------------------------------------------------------------- */

func newTestRecord() *MetricsRecord {
  r := NewMetricsRecord()
  r.Set("Metrics.Pearson.WT", 0.5)
  r.Set("Metrics.RandomInteractions.Real", 3)
  r.Set("Metrics.EctopicInteractions.Recall", JSONFloats([]float64{1, 0.5, 0}))
  return r
}

func TestHash1(t *testing.T) {
  r := newTestRecord()
  h, err := r.Hash("secret")
  if err != nil {
    t.Fatal(err)
  }
  // sha256 of the python serialization
  if h != "2ef50770b11ae226eb36d2fdb836536210c5956b9b069e44b1063c9871a1db79" {
    t.Errorf("test failed: %s", h)
  }
  if err := r.AddHash("secret"); err != nil {
    t.Fatal(err)
  }
  if v, _ := r.Get(HashField); v != h {
    t.Error("test failed")
  }
  if ok, err := r.CheckHash("secret"); err != nil || !ok {
    t.Error("hash check failed on untouched record")
  }
  // the record is not modified by the check
  if _, ok := r.Get(HashField); !ok {
    t.Error("test failed")
  }
  if ok, _ := r.CheckHash("other"); ok {
    t.Error("hash check succeeded with wrong key")
  }
}

// Non-finite values are written as python does.
func TestHash3(t *testing.T) {
  r := NewMetricsRecord()
  r.Set("a", math.NaN())
  r.Set("b", JSONFloats([]float64{math.NaN(), 1}))
  r.Set("c", math.Inf(-1))

  data, err := r.MarshalJSON()
  if err != nil {
    t.Fatal(err)
  }
  if s := string(data); s != `{"a": NaN, "b": "[NaN, 1.0]", "c": -Infinity}` {
    t.Errorf("test failed: %s", s)
  }
  // sha256 of the python serialization
  if h, err := r.Hash("secret"); err != nil || h != "79d9222432aa0b95671186f28d6413554ad08f03ee430b691452723e6f890c1f" {
    t.Errorf("test failed: %s", h)
  }
  // a record written by python can be read and checked
  s := NewMetricsRecord()
  if err := s.UnmarshalJSON([]byte(`{"a": NaN, "b": "[NaN, 1.0]", "c": -Infinity, "__hash__": "79d9222432aa0b95671186f28d6413554ad08f03ee430b691452723e6f890c1f"}`)); err != nil {
    t.Fatal(err)
  }
  if v, _ := s.Get("a"); !math.IsNaN(v.(float64)) {
    t.Error("test failed")
  }
  if v, _ := s.Get("b"); v != "[NaN, 1.0]" {
    t.Error("test failed")
  }
  if v, _ := s.Get("c"); !math.IsInf(v.(float64), -1) {
    t.Error("test failed")
  }
  if ok, err := s.CheckHash("secret"); err != nil || !ok {
    t.Error("hash check failed on python record")
  }
}

func TestHash2(t *testing.T) {
  r := newTestRecord()
  r.AddHash("secret")

  filename := t.TempDir() + "/record.json"
  if err := r.Export(filename); err != nil {
    t.Fatal(err)
  }
  s := NewMetricsRecord()
  if err := s.Import(filename); err != nil {
    t.Fatal(err)
  }
  if ok, err := s.CheckHash("secret"); err != nil || !ok {
    t.Error("hash check failed after reading record")
  }
  s.Set("Metrics.RandomInteractions.Real", 4)
  if ok, _ := s.CheckHash("secret"); ok {
    t.Error("hash check succeeded on tampered record")
  }
  if _, err := newTestRecord().CheckHash("secret"); err == nil {
    t.Error("missing hash not detected")
  }
}
