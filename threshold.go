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

// Default significance threshold for z-scores.
const DefaultSigma = 2.0

/* -------------------------------------------------------------------------- */

// A value is significant if it is defined and its magnitude exceeds sigma.
func IsSignificant(v, sigma float64) bool {
  return v == v && (v > sigma || v < -sigma)
}

func ClassifySignificant(values []float64, sigma float64) []bool {
  r := make([]bool, len(values))
  for i, v := range values {
    r[i] = IsSignificant(v, sigma)
  }
  return r
}

// Significance labels of all cells of an ectopic array in row-major order.
func (a EctopicArray) Classify(sigma float64) []bool {
  return ClassifySignificant(a.Flatten(), sigma)
}
