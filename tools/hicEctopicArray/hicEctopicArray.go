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


package main

/* -------------------------------------------------------------------------- */

import   "fmt"
import   "log"
import   "os"
import   "strconv"
import   "strings"

import   "github.com/pborman/getopt"
import   "github.com/sirupsen/logrus"
import . "github.com/pbenner/hicbench"

/* -------------------------------------------------------------------------- */

type Config struct {
  Verbose    int
  Resolution int
  Normalize  bool
  Balanced   bool
  Mirror     bool
}

/* i/o
 * -------------------------------------------------------------------------- */

func PrintStderr(config Config, level int, format string, args ...interface{}) {
  if config.Verbose >= level {
    fmt.Fprintf(os.Stderr, format, args...)
  }
}

/* utility
 * -------------------------------------------------------------------------- */

// Parse a region of the form chr:from-to.
func parseRegion(region string) (string, Range) {
  tmp := strings.Split(region, ":")
  if len(tmp) != 2 {
    log.Fatalf("invalid region `%s'", region)
  }
  coord := strings.Split(strings.ReplaceAll(tmp[1], ",", ""), "-")
  if len(coord) != 2 {
    log.Fatalf("invalid region `%s'", region)
  }
  from, err := strconv.ParseInt(coord[0], 10, 64)
  if err != nil {
    log.Fatal(err)
  }
  to, err := strconv.ParseInt(coord[1], 10, 64)
  if err != nil {
    log.Fatal(err)
  }
  if to < from {
    log.Fatalf("invalid region `%s'", region)
  }
  return tmp[0], NewRange(int(from), int(to))
}

/* -------------------------------------------------------------------------- */

func importMatrix(config Config, seqname, filenameBins, filenamePixels string) ContactMatrix {
  m := ContactMatrix{}
  PrintStderr(config, 1, "Reading contact matrix from `%s'... ", filenamePixels)
  if err := m.ImportTable(filenameBins, filenamePixels, seqname, config.Resolution); err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")
  return m
}

func hicEctopicArray(config Config, capture, rearrangement string, filenames []string, filenameOut string) {
  seqname1, r1 := parseRegion(capture)
  seqname2, r2 := parseRegion(rearrangement)
  if seqname1 != seqname2 {
    log.Fatal("capture and rearrangement must be on the same chromosome")
  }
  wt  := importMatrix(config, seqname1, filenames[0], filenames[1])
  mut := importMatrix(config, seqname1, filenames[2], filenames[3])

  logger := logrus.New()
  logger.Out = os.Stderr
  if config.Verbose > 1 {
    logger.SetLevel(logrus.DebugLevel)
  } else if config.Verbose == 0 {
    logger.SetLevel(logrus.WarnLevel)
  }
  a, err := NewEctopicArray(wt, mut, EctopicConfig{
    Capture      : r1,
    Rearrangement: r2,
    Normalize    : config.Normalize,
    Balanced     : config.Balanced,
    Mirror       : config.Mirror,
    Logger       : logger })
  if err != nil {
    log.Fatal(err)
  }
  PrintStderr(config, 1, "Computed ectopic array of size %d (%d diagonals skipped)\n", a.Size(), a.SkippedDiagonals)
  PrintStderr(config, 1, "Writing ectopic array to `%s'... ", filenameOut)
  if err := a.ExportNpy(filenameOut); err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")
}

/* -------------------------------------------------------------------------- */

func main() {
  log.SetFlags(0)

  config  := Config{}
  options := getopt.New()

  optResolution := options.    IntLong("resolution", 'r', 0, "resolution in base pairs [default: size of first bin]")
  optNormalize  := options.   BoolLong("normalize",   0 ,    "scale mutant contacts to the total wild-type signal")
  optBalanced   := options.   BoolLong("balanced",    0 ,    "use balanced contacts")
  optMirror     := options.   BoolLong("mirror",      0 ,    "write z-scores to both triangles")
  optVerbose    := options.CounterLong("verbose",    'v',    "verbose level [-v or -vv]")
  optHelp       := options.   BoolLong("help",       'h',    "print help")

  options.SetParameters("<CAPTURE> <REARRANGEMENT> <WT-BINS> <WT-PIXELS> <MUT-BINS> <MUT-PIXELS> <OUTPUT.npy>")
  options.Parse(os.Args)

  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if len(options.Args()) != 7 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  config.Resolution = *optResolution
  config.Normalize  = *optNormalize
  config.Balanced   = *optBalanced
  config.Mirror     = *optMirror
  config.Verbose    = *optVerbose

  hicEctopicArray(config, options.Args()[0], options.Args()[1], options.Args()[2:6], options.Args()[6])
}
