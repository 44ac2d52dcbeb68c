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
import   "strings"
import   "testing"
import   "time"

import   "github.com/sirupsen/logrus"

/* -------------------------------------------------------------------------- */

func TestLogging1(t *testing.T) {
  if s := formatDuration(3725*time.Second); s != "01:02:05" {
    t.Errorf("test failed: %s", s)
  }
  var buffer bytes.Buffer
  logger := logrus.New()
  logger.Out = &buffer
  logger.Formatter = &logrus.TextFormatter{DisableTimestamp: true}

  timer(logger, "stage done")()
  if s := buffer.String(); !strings.Contains(s, "stage done") || !strings.Contains(s, "elapsed=") {
    t.Errorf("test failed: %s", s)
  }
  if loggerOrDefault(nil) != logrus.StandardLogger() {
    t.Error("test failed")
  }
}
