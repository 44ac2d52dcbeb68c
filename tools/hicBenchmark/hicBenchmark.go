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

import   "context"
import   "fmt"
import   "log"
import   "os"
import   "path/filepath"
import   "strings"

import   "github.com/pborman/getopt"
import   "github.com/pbenner/threadpool"
import   "github.com/sirupsen/logrus"
import . "github.com/pbenner/hicbench"

/* -------------------------------------------------------------------------- */

type Config struct {
  Verbose          int
  UnitID           string
  Resolution       int
  Threads          int
  Permutations     int
  Seed             int64
  Sigma            float64
  Balanced         bool
  Mirror           bool
  Insulation     []string
  InsulationColumn string
  Database         string
  HashKey          string
  PlotDir          string
  ExportDir        string
}

/* i/o
 * -------------------------------------------------------------------------- */

func PrintStderr(config Config, level int, format string, args ...interface{}) {
  if config.Verbose >= level {
    fmt.Fprintf(os.Stderr, format, args...)
  }
}

func newLogger(config Config) *logrus.Logger {
  logger := logrus.New()
  logger.Out = os.Stderr
  switch {
  case config.Verbose >= 2: logger.SetLevel(logrus.DebugLevel)
  case config.Verbose == 1: logger.SetLevel(logrus.InfoLevel)
  default:
    logger.SetLevel(logrus.WarnLevel)
  }
  return logger
}

/* -------------------------------------------------------------------------- */

func importMatrices(config Config, sample Sample, filenameWt, filenameMut string, pool threadpool.ThreadPool) MatrixSet {
  set := MatrixSet{}
  for _, s := range SampleTypes {
    filenameBins, filenamePixels := sample.ExperimentalFiles(s, config.Resolution)
    PrintStderr(config, 1, "Reading %v matrix from `%s'... ", s, filenamePixels)
    if err := set[NewVariant(s, Experimental)].ImportTable(filenameBins, filenamePixels, sample.Seqname, config.Resolution); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
  }
  // predictions are placed on the bins of the experimental wild-type matrix
  template := set[WtExp].Bins
  for _, s := range SampleTypes {
    filename := filenameWt
    if s == Mutant {
      filename = filenameMut
    }
    PrintStderr(config, 1, "Reading %v predictions from `%s'... ", s, filename)
    if err := set[NewVariant(s, Predicted)].ImportPredictions(filename, template, PredictionConfig{Pool: &pool}); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
  }
  return set
}

// Save converted predictions as compressed bin and pixel tables.
func exportPredictions(config Config, set MatrixSet) {
  for _, s := range SampleTypes {
    v := NewVariant(s, Predicted)
    base := filepath.Join(config.ExportDir, fmt.Sprintf("%s-%v-%dkb", config.UnitID, v, config.Resolution/1000))
    PrintStderr(config, 1, "Exporting %v matrix to `%s.pixels.txt.gz'... ", v, base)
    if err := set[v].ExportTable(base+".bins.txt.gz", base+".pixels.txt.gz", true); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
  }
}

func importInsulation(config Config) InsulationSet {
  set := InsulationSet{}
  if len(config.Insulation) == 0 {
    return set
  }
  for i, v := range Variants {
    PrintStderr(config, 1, "Reading %v insulation scores from `%s'... ", v, config.Insulation[i])
    if err := set[v].ImportTable(config.Insulation[i], config.InsulationColumn); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
  }
  return set
}

/* -------------------------------------------------------------------------- */

func hicBenchmark(config Config, filenameTable, sampleName, filenameWt, filenameMut, filenameOut string) {
  logger := newLogger(config).WithField("unit", config.UnitID)
  pool   := threadpool.New(config.Threads, 100*config.Threads)

  table := SampleTable{}
  if err := table.ImportTable(filenameTable); err != nil {
    log.Fatal(err)
  }
  sample, err := table.Get(sampleName)
  if err != nil {
    log.Fatal(err)
  }
  inputs := BenchmarkInputs{}
  inputs.Matrices      = importMatrices(config, sample, filenameWt, filenameMut, pool)
  inputs.Insulation    = importInsulation(config)
  if config.ExportDir != "" {
    exportPredictions(config, inputs.Matrices)
  }
  inputs.Capture       = sample.Capture
  inputs.Rearrangement = sample.Rearrangement

  benchmarkConfig := DefaultBenchmarkConfig()
  benchmarkConfig.Sigma        = config.Sigma
  benchmarkConfig.Permutations = config.Permutations
  benchmarkConfig.Seed         = config.Seed
  benchmarkConfig.Balanced     = config.Balanced
  benchmarkConfig.Mirror       = config.Mirror
  benchmarkConfig.Pool         = &pool
  benchmarkConfig.Logger       = logger
  if config.Verbose > 0 {
    benchmarkConfig.Progress = os.Stderr
  }
  metrics, err := RunBenchmark(inputs, benchmarkConfig)
  if err != nil {
    log.Fatal(err)
  }
  record := metrics.Record()
  if config.HashKey != "" {
    if err := record.AddHash(config.HashKey); err != nil {
      log.Fatal(err)
    }
  }
  PrintStderr(config, 1, "Writing metrics to `%s'... ", filenameOut)
  if err := record.Export(filenameOut); err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")

  if config.PlotDir != "" {
    savePlots(config, metrics)
  }
  if config.Database != "" {
    store, err := NewMetricsStore(config.Database)
    if err != nil {
      log.Fatal(err)
    }
    store.Logger = logger
    if err := store.Update(context.Background(), config.UnitID, record); err != nil {
      log.Fatal(err)
    }
  }
}

/* -------------------------------------------------------------------------- */

func main() {
  log.SetFlags(0)

  config  := Config{}
  options := getopt.New()

  optUnitID       := options. StringLong("id",                0 , "unit",   "unit ID used for database updates and plot names")
  optResolution   := options.    IntLong("resolution",       'r', 0,        "resolution in base pairs")
  optThreads      := options.    IntLong("threads",           0 , 1,        "number of threads [default: 1]")
  optPermutations := options.    IntLong("permutations",      0 , DefaultPermutations, "number of random permutations [default: 5000]")
  optSeed         := options.    IntLong("seed",              0 , 1,        "seed of the random number generator [default: 1]")
  optSigma        := options. StringLong("sigma",             0 , "2",      "significance threshold for ectopic interactions [default: 2]")
  optBalanced     := options.   BoolLong("balanced",          0 ,           "use balanced contacts for ectopic arrays")
  optMirror       := options.   BoolLong("mirror",            0 ,           "write ectopic z-scores to both triangles")
  optInsulation   := options. StringLong("insulation",        0 , "",       "comma separated list of insulation tables (Wt-Exp,Wt-Pred,Mut-Exp,Mut-Pred)")
  optInsColumn    := options. StringLong("insulation-column", 0 , "",       "name of the insulation score column [default: first sum_balanced column]")
  optDatabase     := options. StringLong("db",                0 , "",       "MySQL data source name for storing metrics")
  optHashKey      := options. StringLong("hash-key",          0 , "",       "add integrity hash computed with this key")
  optPlotDir      := options. StringLong("plots",             0 , "",       "save draft plots to this directory")
  optExportDir    := options. StringLong("export",            0 , "",       "save converted prediction matrices to this directory")
  optVerbose      := options.CounterLong("verbose",          'v',           "verbose level [-v or -vv]")
  optHelp         := options.   BoolLong("help",             'h',           "print help")

  options.SetParameters("<SAMPLE-TABLE> <SAMPLE> <WT-PREDICTION.tsv> <MUT-PREDICTION.tsv> <OUTPUT.json>")
  options.Parse(os.Args)

  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if len(options.Args()) != 5 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  if *optResolution <= 0 {
    log.Fatal("option `--resolution' is required")
  }
  if *optThreads < 1 {
    log.Fatal("invalid number of threads")
  }
  if *optInsulation != "" {
    if fields := strings.Split(*optInsulation, ","); len(fields) != int(NVariants) {
      log.Fatal("option `--insulation' requires four tables")
    } else {
      config.Insulation = fields
    }
  }
  if _, err := fmt.Sscan(*optSigma, &config.Sigma); err != nil || config.Sigma <= 0 {
    log.Fatalf("invalid sigma `%s'", *optSigma)
  }
  if *optPlotDir != "" {
    if err := os.MkdirAll(filepath.Clean(*optPlotDir), 0777); err != nil {
      log.Fatal(err)
    }
  }
  if *optExportDir != "" {
    if err := os.MkdirAll(filepath.Clean(*optExportDir), 0777); err != nil {
      log.Fatal(err)
    }
  }
  config.UnitID           = *optUnitID
  config.Resolution       = *optResolution
  config.Threads          = *optThreads
  config.Permutations     = *optPermutations
  config.Seed             = int64(*optSeed)
  config.Balanced         = *optBalanced
  config.Mirror           = *optMirror
  config.InsulationColumn = *optInsColumn
  config.Database         = *optDatabase
  config.HashKey          = *optHashKey
  config.PlotDir          = *optPlotDir
  config.ExportDir        = *optExportDir
  config.Verbose          = *optVerbose

  hicBenchmark(config,
    options.Args()[0],
    options.Args()[1],
    options.Args()[2],
    options.Args()[3],
    options.Args()[4])
}
