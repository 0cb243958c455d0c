//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"git.sr.ht/~vejnar/RepCover/lib/aln"
)

type Config struct {
	PathAligns    []string `toml:"path_aligns"`
	FormatAlign   string   `toml:"format_align"`
	Columns       []int    `toml:"columns"`
	PathCurated   string   `toml:"path_curated"`
	PathLengths   string   `toml:"path_lengths"`
	PathMapping   string   `toml:"path_mapping"`
	MinFraction   float64  `toml:"min_fraction"`
	NumWorker     int      `toml:"num_worker"`
	PathReport    string   `toml:"path_report"`
	ReportFormat  string   `toml:"report_format"`
	PathMultiCall string   `toml:"path_multi_call"`
	PathMissing   string   `toml:"path_missing"`
	PathOrders    string   `toml:"path_orders"`
	PathSummary   string   `toml:"path_summary"`
	VerboseLevel  int      `toml:"verbose_level"`
}

func DefaultConfig() *Config {
	return &Config{
		FormatAlign:  "auto",
		Columns:      layoutColumns(aln.RepeatMaskerLayout),
		NumWorker:    1,
		PathReport:   "-",
		ReportFormat: "json",
	}
}

// LoadConfig decodes a TOML file on top of the default configuration.
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()
	if _, err := toml.DecodeFile(path, conf); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

// Merge returns flagConf where every option not set on the command line
// (absent from only) is taken from fileConf.
func (flagConf *Config) Merge(fileConf *Config, only map[string]bool) *Config {
	if !only["path_align"] {
		flagConf.PathAligns = fileConf.PathAligns
	}
	if !only["format_align"] {
		flagConf.FormatAlign = fileConf.FormatAlign
	}
	if !only["columns"] {
		flagConf.Columns = fileConf.Columns
	}
	if !only["path_curated"] {
		flagConf.PathCurated = fileConf.PathCurated
	}
	if !only["path_lengths"] {
		flagConf.PathLengths = fileConf.PathLengths
	}
	if !only["path_mapping"] {
		flagConf.PathMapping = fileConf.PathMapping
	}
	if !only["min_fraction"] {
		flagConf.MinFraction = fileConf.MinFraction
	}
	if !only["num_worker"] {
		flagConf.NumWorker = fileConf.NumWorker
	}
	if !only["path_report"] {
		flagConf.PathReport = fileConf.PathReport
	}
	if !only["report_format"] {
		flagConf.ReportFormat = fileConf.ReportFormat
	}
	if !only["path_multi_call"] {
		flagConf.PathMultiCall = fileConf.PathMultiCall
	}
	if !only["path_missing"] {
		flagConf.PathMissing = fileConf.PathMissing
	}
	if !only["path_orders"] {
		flagConf.PathOrders = fileConf.PathOrders
	}
	if !only["path_summary"] {
		flagConf.PathSummary = fileConf.PathSummary
	}
	if !only["verbose_level"] && !only["verbose"] {
		flagConf.VerboseLevel = fileConf.VerboseLevel
	}
	return flagConf
}

// Layout returns the columns as match, strand, reference, start, end and residual.
func (conf *Config) Layout() (aln.Layout, error) {
	if len(conf.Columns) != 6 {
		return aln.Layout{}, fmt.Errorf("6 columns required, found %d", len(conf.Columns))
	}
	for _, c := range conf.Columns {
		if c < 0 {
			return aln.Layout{}, fmt.Errorf("negative column %d", c)
		}
	}
	return aln.Layout{Match: conf.Columns[0], Strand: conf.Columns[1], Reference: conf.Columns[2], Start: conf.Columns[3], End: conf.Columns[4], Residual: conf.Columns[5]}, nil
}

// Inputs returns the alignment files with their format.
func (conf *Config) Inputs() ([]aln.Input, error) {
	var inputs []aln.Input
	for _, p := range conf.PathAligns {
		in := aln.Input{Path: p}
		switch strings.ToLower(conf.FormatAlign) {
		case "auto", "":
			in.Format = aln.DetectFormat(p)
		case "out":
			in.Format = aln.FormatOut
		case "sam":
			in.Format = aln.FormatSAM
		case "bam":
			in.Format = aln.FormatBAM
		default:
			return nil, fmt.Errorf("unknown alignment format %s", conf.FormatAlign)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// CheckInputs checks that alignment inputs are given and exist. "-" reads stdin.
func (conf *Config) CheckInputs() error {
	if len(conf.PathAligns) == 0 {
		return errors.New("No alignment input")
	}
	for _, p := range conf.PathAligns {
		if p == "-" {
			continue
		}
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fmt.Errorf("%s not found", p)
		}
	}
	return nil
}

func layoutColumns(l aln.Layout) []int {
	return []int{l.Match, l.Strand, l.Reference, l.Start, l.End, l.Residual}
}

func parseColumns(raw string) ([]int, error) {
	var cols []int
	for _, m := range strings.Split(raw, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(m))
		if err != nil {
			return nil, err
		}
		cols = append(cols, i)
	}
	return cols, nil
}

func formatColumns(cols []int) string {
	s := make([]string, len(cols))
	for i, c := range cols {
		s[i] = strconv.Itoa(c)
	}
	return strings.Join(s, ",")
}
