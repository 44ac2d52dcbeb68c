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


package progress

/* -------------------------------------------------------------------------- */

import "bytes"
import "bufio"
import "fmt"
import "io"
import "os"
import "sync"

/* -------------------------------------------------------------------------- */

// Progress bar for loops with N iterations that is redrawn every K
// iterations. Increment may be called from several goroutines.
type Progress struct {
  N, K, LineWidth int
  Writer          io.Writer
  mutex          *sync.Mutex
  i               int
}

/* -------------------------------------------------------------------------- */

func New(n, k int) *Progress {
  if k <= 0 {
    k = 1
  }
  progress := Progress{N: n, K: n/k, LineWidth: 40, Writer: os.Stderr, mutex: &sync.Mutex{}}
  if progress.K == 0 {
    progress.K = 1
  }
  return &progress
}

/* -------------------------------------------------------------------------- */

const __line_del__ = "\033[2K\r"

// Render the bar after i of N iterations.
func (progress *Progress) Exec(i int) string {
  var buffer bytes.Buffer
  writer := bufio.NewWriter(&buffer)

  p := 1.0
  if progress.N > 0 {
    p = float64(i)/float64(progress.N)
  }
  fmt.Fprintf(writer, "%s|", __line_del__)

  for j := 1; j < progress.LineWidth-1; j++ {
    if float64(j)/float64(progress.LineWidth) < p {
      fmt.Fprintf(writer, ">")
    } else {
      fmt.Fprintf(writer, " ")
    }
  }
  fmt.Fprintf(writer, "| %6.2f%%", p*100)
  if i >= progress.N {
    fmt.Fprintf(writer, "\n")
  }
  writer.Flush()

  return buffer.String()
}

// Record one finished iteration and redraw the bar if required.
func (progress *Progress) Increment() {
  progress.mutex.Lock()
  defer progress.mutex.Unlock()
  progress.i++
  if progress.i == progress.N || progress.i % progress.K == 0 {
    fmt.Fprint(progress.Writer, progress.Exec(progress.i))
  }
}

// Number of recorded iterations.
func (progress *Progress) Count() int {
  progress.mutex.Lock()
  defer progress.mutex.Unlock()
  return progress.i
}
