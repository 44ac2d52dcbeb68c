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
import "compress/gzip"
import "fmt"
import "io"
import "math"
import "net/http"
import "os"
import "strings"

import "github.com/pbenner/threadpool"

/* -------------------------------------------------------------------------- */

func iMin(a, b int) int {
  if a < b {
    return a
  } else {
    return b
  }
}

func iMax(a, b int) int {
  if a > b {
    return a
  } else {
    return b
  }
}

// Divide a by b, the result is rounded down (also for negative a).
func divIntDown(a, b int) int {
  q := a/b
  if (a % b != 0) && ((a < 0) != (b < 0)) {
    q--
  }
  return q
}

// Divide a by b, the result is rounded up.
func divIntUp(a, b int) int {
  return (a+b-1)/b
}

/* -------------------------------------------------------------------------- */

func isFinite(x float64) bool {
  return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Replace non-finite values by zero.
func finiteOrZero(x float64) float64 {
  if isFinite(x) {
    return x
  }
  return 0.0
}

/* -------------------------------------------------------------------------- */

// Copy r to w, optionally gzip compressed.
func writeData(w io.Writer, r io.Reader, compress bool) error {
  if compress {
    g := gzip.NewWriter(w)
    if _, err := io.Copy(g, r); err != nil {
      g.Close()
      return err
    }
    // writes the gzip footer
    return g.Close()
  } else {
    b := bufio.NewWriter(w)
    if _, err := io.Copy(b, r); err != nil {
      return err
    }
    return b.Flush()
  }
}

func writeFile(filename string, r io.Reader, compress bool) error {
  var buffer bytes.Buffer
  if err := writeData(&buffer, r, compress); err != nil {
    return err
  }
  return os.WriteFile(filename, buffer.Bytes(), 0666)
}

func isRemote(filename string) bool {
  return strings.HasPrefix(filename, "http://") || strings.HasPrefix(filename, "https://")
}

// Read a local file or download it if filename is an http(s) url. Gzip
// compressed content is decompressed transparently.
func readFile(filename string) ([]byte, error) {
  var data []byte
  if isRemote(filename) {
    resp, err := http.Get(filename)
    if err != nil {
      return nil, err
    }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK {
      return nil, fmt.Errorf("downloading `%s' failed: %s", filename, resp.Status)
    }
    if data, err = io.ReadAll(resp.Body); err != nil {
      return nil, err
    }
  } else {
    var err error
    if data, err = os.ReadFile(filename); err != nil {
      return nil, err
    }
  }
  if len(data) >= 2 && data[0] == 31 && data[1] == 139 {
    g, err := gzip.NewReader(bytes.NewReader(data))
    if err != nil {
      return nil, err
    }
    defer g.Close()
    return io.ReadAll(g)
  }
  return data, nil
}

// Open a (possibly remote or compressed) file and return a reader
// over its content.
func openFile(filename string) (io.Reader, error) {
  data, err := readFile(filename)
  if err != nil {
    return nil, err
  }
  return bytes.NewReader(data), nil
}

/* -------------------------------------------------------------------------- */

// Use the given thread pool or fall back to a pool with a single thread.
func poolOrDefault(pool *threadpool.ThreadPool) threadpool.ThreadPool {
  if pool == nil {
    return threadpool.New(1, 100)
  }
  return *pool
}

/* -------------------------------------------------------------------------- */

// Divide a by b and return zero if b is zero.
func safeDiv(a, b float64) float64 {
  if b == 0.0 {
    return 0.0
  }
  return a/b
}
