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
import   "compress/gzip"
import   "errors"
import   "io"
import   "strings"
import   "testing"

/* -------------------------------------------------------------------------- */

var errTestWriter = errors.New("device full")

// Writer that accepts at most n bytes.
type limitedWriter struct {
  n int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
  if len(p) > w.n {
    return 0, errTestWriter
  }
  w.n -= len(p)
  return len(p), nil
}

/* -------------------------------------------------------------------------- */

func TestWriteData1(t *testing.T) {
  var buffer bytes.Buffer
  if err := writeData(&buffer, strings.NewReader("chr1\t0\t10\n"), true); err != nil {
    t.Fatal(err)
  }
  g, err := gzip.NewReader(&buffer)
  if err != nil {
    t.Fatal(err)
  }
  if data, err := io.ReadAll(g); err != nil || string(data) != "chr1\t0\t10\n" {
    t.Errorf("test failed: %q %v", data, err)
  }
}

func TestWriteData2(t *testing.T) {
  // the gzip header fits, the compressed data and footer written on
  // close do not
  if err := writeData(&limitedWriter{10}, strings.NewReader("chr1\t0\t10\n"), true); !errors.Is(err, errTestWriter) {
    t.Errorf("test failed: %v", err)
  }
  // buffered output is only written on flush
  if err := writeData(&limitedWriter{0}, strings.NewReader("chr1\t0\t10\n"), false); !errors.Is(err, errTestWriter) {
    t.Errorf("test failed: %v", err)
  }
}
