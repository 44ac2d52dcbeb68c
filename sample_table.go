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
import "path/filepath"
import "strconv"

import "github.com/go-gota/gota/dataframe"
import "github.com/go-gota/gota/series"

/* -------------------------------------------------------------------------- */

var sampleTableColumns = []string{
  "rearrangement_ID",
  "chr",
  "start_capture",
  "end_capture",
  "start1",
  "end1",
  "capture_WT_data",
  "capture_Mut_data" }

// Description of a rearrangement sample: the chromosome, the capture region,
// the rearranged interval and the directories holding the experimental
// contact matrices.
type Sample struct {
  Name          string
  Seqname       string
  Capture       Range
  Rearrangement Range
  WildTypeData  string
  MutantData    string
}

// Base name of the experimental contact matrix tables of the given sample
// type at the given resolution, i.e. `<dir>/inter_<k>kb'. Bins and pixels are
// stored in `<base>.bins.txt' and `<base>.pixels.txt' respectively.
func (s Sample) ExperimentalBase(t SampleType, binsize int) string {
  dir := ""
  switch t {
  case WildType: dir = s.WildTypeData
  case Mutant  : dir = s.MutantData
  default:
    panic("invalid sample type")
  }
  return filepath.Join(dir, fmt.Sprintf("inter_%dkb", binsize/1000))
}

func (s Sample) ExperimentalFiles(t SampleType, binsize int) (string, string) {
  base := s.ExperimentalBase(t, binsize)
  return base + ".bins.txt", base + ".pixels.txt"
}

/* -------------------------------------------------------------------------- */

type SampleTable struct {
  df dataframe.DataFrame
}

func (t SampleTable) Length() int {
  return t.df.Nrow()
}

func (t SampleTable) Names() []string {
  return t.df.Col("rearrangement_ID").Records()
}

func (t *SampleTable) ReadTable(r io.Reader) error {
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
  }
  for _, name := range sampleTableColumns {
    if !names[name] {
      return fmt.Errorf("sample table is missing column `%s'", name)
    }
  }
  t.df = df
  return nil
}

func (t *SampleTable) ImportTable(filename string) error {
  r, err := openFile(filename)
  if err != nil {
    return err
  }
  if err := t.ReadTable(r); err != nil {
    return fmt.Errorf("reading sample table `%s' failed: %w", filename, err)
  }
  return nil
}

// Get the description of the sample with the given rearrangement ID.
func (t SampleTable) Get(name string) (Sample, error) {
  df := t.df.Filter(dataframe.F{
    Colname   : "rearrangement_ID",
    Comparator: series.Eq,
    Comparando: name })
  if df.Err != nil {
    return Sample{}, df.Err
  }
  if df.Nrow() == 0 {
    return Sample{}, fmt.Errorf("unknown sample name `%s'", name)
  }
  field := func(column string) string {
    return df.Col(column).Records()[0]
  }
  coord := make([]int, 4)
  for i, column := range []string{"start_capture", "end_capture", "start1", "end1"} {
    v, err := strconv.ParseInt(field(column), 10, 64)
    if err != nil {
      return Sample{}, fmt.Errorf("sample `%s' has invalid `%s': %v", name, column, err)
    }
    coord[i] = int(v)
  }
  if coord[0] > coord[1] || coord[2] > coord[3] {
    return Sample{}, fmt.Errorf("sample `%s' has invalid coordinates", name)
  }
  s := Sample{
    Name         : name,
    Seqname      : field("chr"),
    Capture      : NewRange(coord[0], coord[1]),
    Rearrangement: NewRange(coord[2], coord[3]),
    WildTypeData : field("capture_WT_data"),
    MutantData   : field("capture_Mut_data") }
  return s, nil
}
