//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

var version = "DEV"

func main() {
	conf := DefaultConfig()
	// Arguments: General
	var pathConfig, pathAlignsRaw, columnsRaw string
	var verbose, printVersion bool
	flag.StringVar(&pathConfig, "config", "", "Path to TOML configuration file (options set on the command line take precedence)")
	flag.IntVar(&conf.NumWorker, "num_worker", conf.NumWorker, "Number of worker(s)")
	flag.IntVar(&conf.VerboseLevel, "verbose_level", 0, "Verbose level")
	flag.BoolVar(&verbose, "verbose", false, "Verbose")
	flag.BoolVar(&printVersion, "version", false, "Print version and quit")
	// Arguments: Input
	flag.StringVar(&pathAlignsRaw, "path_align", "", "Path to alignment file(s) (comma separated). Compressed with gz, zst or lz4")
	flag.StringVar(&conf.FormatAlign, "format_align", conf.FormatAlign, "Format of alignment files: 'auto', 'out', 'sam' or 'bam'")
	flag.StringVar(&columnsRaw, "columns", formatColumns(conf.Columns), "Columns (0-based) of match, strand, reference, start, end and residual in 'out' files (comma separated)")
	flag.StringVar(&conf.PathCurated, "path_curated", "", "Path to curated library (FASTA)")
	flag.StringVar(&conf.PathLengths, "path_lengths", "", "Path to reference lengths (tabulated file), replacing lengths estimated from alignments")
	flag.StringVar(&conf.PathMapping, "path_mapping", "", "Path to reference name(s) mapping (tabulated file)")
	// Arguments: Selection
	flag.Float64Var(&conf.MinFraction, "min_fraction", 0., "Minimum fraction of the reference aligned from the alignment start (from 0. to 1.)")
	// Arguments: Output
	flag.StringVar(&conf.PathReport, "path_report", conf.PathReport, "Write report to path (stdout with -)")
	flag.StringVar(&conf.ReportFormat, "report_format", conf.ReportFormat, "Report format: 'json' or 'json+lz4'")
	flag.StringVar(&conf.PathMultiCall, "path_multi_call", "", "Path to output matches selected more than once (tabulated file)")
	flag.StringVar(&conf.PathMissing, "path_missing", "", "Path to output curated names never matched")
	flag.StringVar(&conf.PathOrders, "path_orders", "", "Path to output curated and called families per order (CSV)")
	flag.StringVar(&conf.PathSummary, "path_summary", "", "Path to output coverage summary (CSV)")
	// Arguments: Parse
	flag.Parse()

	// Version
	if printVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Parse raw arguments
	if len(pathAlignsRaw) > 0 {
		conf.PathAligns = strings.Split(pathAlignsRaw, ",")
	}
	cols, err := parseColumns(columnsRaw)
	if err != nil {
		log.Fatal(err)
	}
	conf.Columns = cols
	if verbose && conf.VerboseLevel == 0 {
		conf.VerboseLevel = 1
	}

	// Configuration file
	if pathConfig != "" {
		fileConf, err := LoadConfig(pathConfig)
		if err != nil {
			log.Fatal(err)
		}
		only := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { only[f.Name] = true })
		conf = conf.Merge(fileConf, only)
	}

	// Verbose
	switch {
	case conf.VerboseLevel > 1:
		log.SetLevel(log.DebugLevel)
	case conf.VerboseLevel == 1:
		log.SetLevel(log.InfoLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}
	log.SetOutput(os.Stderr)

	// Check arguments
	if err := conf.CheckInputs(); err != nil {
		log.Fatal(err)
	}
	if conf.NumWorker < 1 {
		conf.NumWorker = 1
	}

	// Max CPU
	runtime.GOMAXPROCS(conf.NumWorker * 2)

	// Time start
	timeStart := time.Now()

	nRecord, err := Run(conf, timeStart)
	if err != nil {
		log.Fatal(err)
	}

	log.Infof("%.1fmin - Done %s align.", time.Since(timeStart).Minutes(), commas(nRecord))
}
