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
import "time"

import "github.com/sirupsen/logrus"

/* -------------------------------------------------------------------------- */

func loggerOrDefault(logger logrus.FieldLogger) logrus.FieldLogger {
  if logger == nil {
    return logrus.StandardLogger()
  }
  return logger
}

// Format a duration as hh:mm:ss.
func formatDuration(d time.Duration) string {
  s := int(d.Seconds())
  return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60) % 60, s % 60)
}

// Log the time elapsed between the call to timer and the call of the
// returned function, i.e. defer timer(logger, "done")().
func timer(logger logrus.FieldLogger, message string) func() {
  start := time.Now()
  return func() {
    logger.WithField("elapsed", formatDuration(time.Since(start))).Info(message)
  }
}
