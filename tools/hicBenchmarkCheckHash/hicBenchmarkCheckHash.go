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

import   "github.com/pborman/getopt"
import . "github.com/pbenner/hicbench"

/* -------------------------------------------------------------------------- */

type Config struct {
  Verbose int
}

/* i/o
 * -------------------------------------------------------------------------- */

func PrintStderr(config Config, level int, format string, args ...interface{}) {
  if config.Verbose >= level {
    fmt.Fprintf(os.Stderr, format, args...)
  }
}

/* -------------------------------------------------------------------------- */

func hicBenchmarkCheckHash(config Config, key string, filenames []string) {
  ok := true
  for _, filename := range filenames {
    record := NewMetricsRecord()
    PrintStderr(config, 1, "Reading metrics record `%s'... ", filename)
    if err := record.Import(filename); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
    valid, err := record.CheckHash(key)
    if err != nil {
      log.Fatal(err)
    }
    if valid {
      fmt.Printf("%s: OK\n", filename)
    } else {
      fmt.Printf("%s: FAILED\n", filename)
      ok = false
    }
  }
  if !ok {
    os.Exit(1)
  }
}

/* -------------------------------------------------------------------------- */

func main() {
  log.SetFlags(0)

  config  := Config{}
  options := getopt.New()

  optVerbose := options.CounterLong("verbose", 'v', "verbose level [-v or -vv]")
  optHelp    := options.   BoolLong("help",    'h', "print help")

  options.SetParameters("<KEY> <RECORD.json>...")
  options.Parse(os.Args)

  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if len(options.Args()) < 2 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  config.Verbose = *optVerbose

  hicBenchmarkCheckHash(config, options.Args()[0], options.Args()[1:])
}
