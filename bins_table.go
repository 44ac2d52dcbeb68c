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

import "bufio"
import "bytes"
import "fmt"
import "io"
import "math"
import "strconv"
import "strings"

/* -------------------------------------------------------------------------- */

// Read bins of a single chromosome from a whitespace separated table with
// columns chrom, start, end and an optional weight column (the output of
// `cooler dump -t bins'). An optional header line is skipped. If binsize
// is zero it is set to the length of the first bin.
func (bins *BinTable) ReadTable(r io.Reader, seqname string, binsize int) error {
  scanner := bufio.NewScanner(r)
  scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

  ranges  := []Range{}
  weights := []float64{}
  offset  := -1
  hasWeights := false

  for i, k := 1, 0; scanner.Scan(); i++ {
    fields := strings.Fields(scanner.Text())
    if len(fields) == 0 {
      continue
    }
    if fields[0] == "chrom" {
      continue
    }
    if len(fields) < 3 {
      return fmt.Errorf("invalid bin table at line `%d'", i)
    }
    if fields[0] != seqname {
      if offset == -1 {
        k++
      }
      continue
    }
    if offset == -1 {
      offset = k
    }
    v1, err := strconv.ParseInt(fields[1], 10, 64)
    if err != nil {
      return fmt.Errorf("parsing `start' column failed at line `%d': %v", i, err)
    }
    v2, err := strconv.ParseInt(fields[2], 10, 64)
    if err != nil {
      return fmt.Errorf("parsing `end' column failed at line `%d': %v", i, err)
    }
    w := math.NaN()
    if len(fields) > 3 {
      hasWeights = true
      if fields[3] != "" && fields[3] != "NA" && fields[3] != "nan" {
        if w, err = strconv.ParseFloat(fields[3], 64); err != nil {
          return fmt.Errorf("parsing `weight' column failed at line `%d': %v", i, err)
        }
      }
    }
    if v2 < v1 {
      return fmt.Errorf("invalid bin at line `%d'", i)
    }
    ranges  = append(ranges,  NewRange(int(v1), int(v2)))
    weights = append(weights, w)
  }
  if err := scanner.Err(); err != nil {
    return err
  }
  if len(ranges) == 0 {
    return fmt.Errorf("bin table has no bins on chromosome `%s'", seqname)
  }
  if binsize == 0 {
    binsize = ranges[0].Length()
  }
  if !hasWeights {
    weights = nil
  }
  if r, err := NewBinTable(seqname, binsize, ranges, weights); err != nil {
    return err
  } else {
    r.Offset = offset
    *bins    = r
  }
  return nil
}

func (bins *BinTable) ImportTable(filename, seqname string, binsize int) error {
  r, err := openFile(filename)
  if err != nil {
    return err
  }
  if err := bins.ReadTable(r, seqname, binsize); err != nil {
    return fmt.Errorf("reading bin table `%s' failed: %w", filename, err)
  }
  return nil
}

/* -------------------------------------------------------------------------- */

func (bins BinTable) WriteTable(w io.Writer, header bool) error {
  if header {
    if _, err := fmt.Fprintf(w, "chrom\tstart\tend\tweight\n"); err != nil {
      return err
    }
  }
  for i, r := range bins.Ranges {
    if _, err := fmt.Fprintf(w, "%s\t%d\t%d", bins.Seqname, r.From, r.To); err != nil {
      return err
    }
    if bins.Weights != nil {
      if _, err := fmt.Fprintf(w, "\t%s", strconv.FormatFloat(bins.Weights[i], 'g', -1, 64)); err != nil {
        return err
      }
    }
    if _, err := fmt.Fprintf(w, "\n"); err != nil {
      return err
    }
  }
  return nil
}

func (bins BinTable) ExportTable(filename string, header, compress bool) error {
  var buffer bytes.Buffer

  w := bufio.NewWriter(&buffer)
  if err := bins.WriteTable(w, header); err != nil {
    return err
  }
  w.Flush()

  return writeFile(filename, &buffer, compress)
}
