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

/* -------------------------------------------------------------------------- */

// Range of genomic positions. By convention the first position in a
// sequence is numbered 0 and [From, To) is a half-open interval.
type Range struct {
  From, To int
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewRange(from, to int) Range {
  if from > to {
    panic("NewRange(): from > to")
  }
  return Range{from, to}
}

/* -------------------------------------------------------------------------- */

func (r Range) Length() int {
  return r.To - r.From
}

func (r Range) Overlaps(s Range) bool {
  return r.From < s.To && s.From < r.To
}

// Test if s is fully contained in r.
func (r Range) Contains(s Range) bool {
  return r.From <= s.From && s.To <= r.To
}

func (r Range) Intersection(s Range) Range {
  from := iMax(r.From, s.From)
  to   := iMin(r.To,   s.To)
  if to < from {
    to = from
  }
  return NewRange(from, to)
}

/* -------------------------------------------------------------------------- */

func (r Range) String() string {
  return fmt.Sprintf("[%d %d)", r.From, r.To)
}

// Region string as used by cooler and juicer, i.e. chr:from-to.
func (r Range) Region(seqname string) string {
  return fmt.Sprintf("%s:%d-%d", seqname, r.From, r.To)
}
