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

type SampleType int

const (
  WildType SampleType = iota
  Mutant
)

func (t SampleType) String() string {
  switch t {
  case WildType: return "Wt"
  case Mutant  : return "Mut"
  default:
    panic("invalid sample type")
  }
}

type DataType int

const (
  Experimental DataType = iota
  Predicted
)

func (t DataType) String() string {
  switch t {
  case Experimental: return "Exp"
  case Predicted   : return "Pred"
  default:
    panic("invalid data type")
  }
}

var SampleTypes = []SampleType{WildType, Mutant}
var DataTypes   = []DataType{Experimental, Predicted}

/* -------------------------------------------------------------------------- */

// One of the four inputs of a benchmark, i.e. a combination of sample type
// and data type.
type Variant int

const (
  WtExp Variant = iota
  WtPred
  MutExp
  MutPred
  NVariants
)

var Variants = []Variant{WtExp, WtPred, MutExp, MutPred}

func NewVariant(s SampleType, d DataType) Variant {
  switch {
  case s == WildType && d == Experimental: return WtExp
  case s == WildType && d == Predicted   : return WtPred
  case s == Mutant   && d == Experimental: return MutExp
  case s == Mutant   && d == Predicted   : return MutPred
  default:
    panic("invalid variant")
  }
}

func (v Variant) SampleType() SampleType {
  switch v {
  case WtExp,  WtPred : return WildType
  case MutExp, MutPred: return Mutant
  default:
    panic("invalid variant")
  }
}

func (v Variant) DataType() DataType {
  switch v {
  case WtExp,  MutExp : return Experimental
  case WtPred, MutPred: return Predicted
  default:
    panic("invalid variant")
  }
}

// Short name such as `Wt-Exp'.
func (v Variant) String() string {
  return fmt.Sprintf("%v-%v", v.SampleType(), v.DataType())
}

/* -------------------------------------------------------------------------- */

// Contact matrices of all four variants.
type MatrixSet [NVariants]ContactMatrix

func (set *MatrixSet) Get(s SampleType, d DataType) ContactMatrix {
  return set[NewVariant(s, d)]
}

// Insulation tables of all four variants.
type InsulationSet [NVariants]InsulationTable
