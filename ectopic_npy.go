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

import "github.com/kshedden/gonpy"

/* -------------------------------------------------------------------------- */

// Export the array as a numpy .npy file (row-major float64).
func (a EctopicArray) ExportNpy(filename string) error {
  w, err := gonpy.NewFileWriter(filename)
  if err != nil {
    return err
  }
  w.Shape = []int{a.Size(), a.Size()}
  if err := w.WriteFloat64(a.Flatten()); err != nil {
    return fmt.Errorf("writing `%s' failed: %w", filename, err)
  }
  return nil
}

// Import an array from a numpy .npy file. Only the data is stored in the
// file, all other fields of the array are left empty.
func (a *EctopicArray) ImportNpy(filename string) error {
  r, err := gonpy.NewFileReader(filename)
  if err != nil {
    return err
  }
  if len(r.Shape) != 2 || r.Shape[0] != r.Shape[1] {
    return fmt.Errorf("%w: `%s' does not contain a square matrix", ErrShapeMismatch, filename)
  }
  data, err := r.GetFloat64()
  if err != nil {
    return fmt.Errorf("reading `%s' failed: %w", filename, err)
  }
  if r.ColumnMajor {
    n := r.Shape[0]
    t := make([]float64, len(data))
    for i := 0; i < n; i++ {
      for j := 0; j < n; j++ {
        t[i*n+j] = data[j*n+i]
      }
    }
    data = t
  }
  if tmp, err := NewEctopicArrayFromData(r.Shape[0], data); err != nil {
    return err
  } else {
    *a = tmp
  }
  return nil
}
