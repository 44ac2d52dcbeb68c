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

import "github.com/pbenner/threadpool"

/* -------------------------------------------------------------------------- */

// Scaling constant used for converting balanced predictions into integer
// counts. Predicted pixels are stored as int(balanced*C^2) and each bin
// receives the weight 1/C.
const DefaultContactCoef = 100

/* -------------------------------------------------------------------------- */

// Read pixels from a whitespace separated table with columns bin1_id,
// bin2_id and count (the output of `cooler dump -t pixels'). Bin ids refer
// to the genome-wide bin table and are shifted by the offset of the bin
// table. Pixels not located on the chromosome of the bin table are skipped.
func (m *ContactMatrix) ReadTable(r io.Reader, bins BinTable) error {
  scanner := bufio.NewScanner(r)
  scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

  pixels := []Pixel{}
  for i := 1; scanner.Scan(); i++ {
    fields := strings.Fields(scanner.Text())
    if len(fields) == 0 {
      continue
    }
    if fields[0] == "bin1_id" {
      continue
    }
    if len(fields) < 3 {
      return fmt.Errorf("invalid pixel table at line `%d'", i)
    }
    v1, err := strconv.ParseInt(fields[0], 10, 64)
    if err != nil {
      return fmt.Errorf("parsing `bin1_id' column failed at line `%d': %v", i, err)
    }
    v2, err := strconv.ParseInt(fields[1], 10, 64)
    if err != nil {
      return fmt.Errorf("parsing `bin2_id' column failed at line `%d': %v", i, err)
    }
    v3, err := strconv.ParseFloat(fields[2], 64)
    if err != nil {
      return fmt.Errorf("parsing `count' column failed at line `%d': %v", i, err)
    }
    b1 := int(v1) - bins.Offset
    b2 := int(v2) - bins.Offset
    if b1 < 0 || b2 < 0 || b1 >= bins.Length() || b2 >= bins.Length() {
      continue
    }
    pixels = append(pixels, Pixel{b1, b2, v3})
  }
  if err := scanner.Err(); err != nil {
    return err
  }
  if r, err := NewContactMatrix(bins, pixels); err != nil {
    return err
  } else {
    *m = r
  }
  return nil
}

// Import a contact matrix from a bin table and a pixel table.
func (m *ContactMatrix) ImportTable(filenameBins, filenamePixels, seqname string, binsize int) error {
  bins := BinTable{}
  if err := bins.ImportTable(filenameBins, seqname, binsize); err != nil {
    return err
  }
  r, err := openFile(filenamePixels)
  if err != nil {
    return err
  }
  if err := m.ReadTable(r, bins); err != nil {
    return fmt.Errorf("reading pixel table `%s' failed: %w", filenamePixels, err)
  }
  return nil
}

/* -------------------------------------------------------------------------- */

func (m ContactMatrix) WriteTable(w io.Writer, header bool) error {
  if header {
    if _, err := fmt.Fprintf(w, "bin1_id\tbin2_id\tcount\n"); err != nil {
      return err
    }
  }
  for _, p := range m.Pixels {
    if _, err := fmt.Fprintf(w, "%d\t%d\t%s\n", p.Bin1+m.Bins.Offset, p.Bin2+m.Bins.Offset,
      strconv.FormatFloat(p.Count, 'g', -1, 64)); err != nil {
      return err
    }
  }
  return nil
}

// Export bins and pixels to separate tables. Only bins of the matrix
// chromosome are written, therefore pixel ids start at zero.
func (m ContactMatrix) ExportTable(filenameBins, filenamePixels string, compress bool) error {
  m.Bins.Offset = 0
  if err := m.Bins.ExportTable(filenameBins, true, compress); err != nil {
    return err
  }
  var buffer bytes.Buffer

  w := bufio.NewWriter(&buffer)
  if err := m.WriteTable(w, true); err != nil {
    return err
  }
  w.Flush()

  return writeFile(filenamePixels, &buffer, compress)
}

/* predictions
 * -------------------------------------------------------------------------- */

type PredictionConfig struct {
  // scaling constant for the conversion of balanced values to counts
  ContactCoef int
  Pool       *threadpool.ThreadPool
}

func DefaultPredictionConfig() PredictionConfig {
  return PredictionConfig{ContactCoef: DefaultContactCoef}
}

type predictionRow struct {
  seqname    string
  end1, end2 int
  balanced   float64
}

// Convert predicted contacts into a contact matrix on the bins of a
// template. The input is a tab separated table without header and columns
// chrom, end1, end2 and balanced, where end1 and end2 are the end
// coordinates of the two bins. Unknown bins are fatal.
func (m *ContactMatrix) ReadPredictions(r io.Reader, template BinTable, config PredictionConfig) error {
  if config.ContactCoef <= 0 {
    config.ContactCoef = DefaultContactCoef
  }
  scanner := bufio.NewScanner(r)
  scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

  rows  := []predictionRow{}
  lines := []int{}
  for i := 1; scanner.Scan(); i++ {
    fields := strings.Fields(scanner.Text())
    if len(fields) == 0 {
      continue
    }
    if len(fields) < 4 {
      return fmt.Errorf("invalid prediction table at line `%d'", i)
    }
    v1, err := strconv.ParseInt(fields[1], 10, 64)
    if err != nil {
      return fmt.Errorf("parsing `end1' column failed at line `%d': %v", i, err)
    }
    v2, err := strconv.ParseInt(fields[2], 10, 64)
    if err != nil {
      return fmt.Errorf("parsing `end2' column failed at line `%d': %v", i, err)
    }
    v3, err := strconv.ParseFloat(fields[3], 64)
    if err != nil {
      return fmt.Errorf("parsing `balanced' column failed at line `%d': %v", i, err)
    }
    rows  = append(rows,  predictionRow{fields[0], int(v1), int(v2), v3})
    lines = append(lines, i)
  }
  if err := scanner.Err(); err != nil {
    return err
  }
  c      := float64(config.ContactCoef)
  pixels := make([]Pixel, len(rows))
  errs   := make([]error, len(rows))
  pool   := poolOrDefault(config.Pool)
  jobErr := pool.RangeJob(0, len(rows), func(i int, pool threadpool.ThreadPool, erf func() error) error {
    if erf() != nil {
      return nil
    }
    b1, err := template.Lookup(rows[i].seqname, rows[i].end1)
    if err != nil {
      errs[i] = fmt.Errorf("line `%d': %w", lines[i], err)
      return errs[i]
    }
    b2, err := template.Lookup(rows[i].seqname, rows[i].end2)
    if err != nil {
      errs[i] = fmt.Errorf("line `%d': %w", lines[i], err)
      return errs[i]
    }
    pixels[i] = Pixel{b1, b2, math.Trunc(finiteOrZero(rows[i].balanced*c*c))}
    return nil
  })
  // lookup errors in input order
  for _, err := range errs {
    if err != nil {
      return err
    }
  }
  if jobErr != nil {
    return jobErr
  }
  if r, err := NewContactMatrix(template.WithWeight(1.0/c), pixels); err != nil {
    return err
  } else {
    *m = r
  }
  return nil
}

func (m *ContactMatrix) ImportPredictions(filename string, template BinTable, config PredictionConfig) error {
  r, err := openFile(filename)
  if err != nil {
    return err
  }
  if err := m.ReadPredictions(r, template, config); err != nil {
    return fmt.Errorf("reading predictions `%s' failed: %w", filename, err)
  }
  return nil
}
