//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pierrec/lz4"

	"git.sr.ht/~vejnar/RepCover/lib/cover"
	"git.sr.ht/~vejnar/RepCover/lib/curation"
	"git.sr.ht/~vejnar/RepCover/lib/lineage"
	"git.sr.ht/~vejnar/RepCover/lib/refs"
)

type MatchReport struct {
	Match string `json:"match"`
	lineage.Lineage
	Class         string `json:"class"`
	BasesRemoved  int    `json:"bases_removed"`
	TimesSelected int    `json:"times_selected"`
}

type ReferenceReport struct {
	Name           string              `json:"name"`
	Length         int                 `json:"length"`
	Coverage       float64             `json:"coverage"`
	UnionCoverage  float64             `json:"union_coverage"`
	Matches        []MatchReport       `json:"matches"`
	SelectionOrder []string            `json:"selection_order"`
	Unused         []string            `json:"unused"`
	UnusedOverlaps map[string][]string `json:"unused_overlaps,omitempty"`
}

type Report struct {
	Counts
	References       []ReferenceReport    `json:"references"`
	MultiCall        []curation.Call      `json:"multi_call"`
	MissingCurations []string             `json:"missing_curations,omitempty"`
	Orders           []lineage.OrderCount `json:"orders,omitempty"`
}

// NewReport assembles the report; matches of each reference are sorted by bases removed.
func NewReport(results []*cover.Result, counts Counts, calls []curation.Call, missing []string, orders []lineage.OrderCount, mapping map[string]string) *Report {
	report := &Report{Counts: counts, References: make([]ReferenceReport, len(results)), MultiCall: calls, MissingCurations: missing, Orders: orders}
	for i, res := range results {
		rr := ReferenceReport{
			Name:           refs.MapName(res.Name, mapping),
			Length:         res.TotalLength,
			Coverage:       res.Coverage,
			UnionCoverage:  res.UnionCoverage,
			Matches:        make([]MatchReport, 0, len(res.Usage)),
			SelectionOrder: res.Order,
			Unused:         res.Unused,
			UnusedOverlaps: res.Overlaps,
		}
		for match, u := range res.Usage {
			l := lineage.Parse(match)
			rr.Matches = append(rr.Matches, MatchReport{Match: match, Lineage: l, Class: l.Class(), BasesRemoved: u.Removed, TimesSelected: u.Selected})
		}
		sort.Slice(rr.Matches, func(i, j int) bool {
			if rr.Matches[i].BasesRemoved != rr.Matches[j].BasesRemoved {
				return rr.Matches[i].BasesRemoved > rr.Matches[j].BasesRemoved
			}
			return rr.Matches[i].Match < rr.Matches[j].Match
		})
		report.References[i] = rr
	}
	return report
}

type GenericWriter interface {
	Write(buf []byte) (n int, err error)
	Close() error
}

type nopCloser struct {
	*os.File
}

func (nopCloser) Close() error { return nil }

// WriteReport writes the report in JSON (stdout with "-"). Append "+lz4" or
// "+lz4hc" to the format to compress it.
func WriteReport(report *Report, pathReport string, reportFormat string) error {
	var reportZip string
	if strings.Contains(reportFormat, "+") {
		doubleFormat := strings.Split(reportFormat, "+")
		reportFormat, reportZip = doubleFormat[0], doubleFormat[1]
	}
	if reportFormat != "json" {
		return fmt.Errorf("Unknown report format %s", reportFormat)
	}
	if reportZip != "" && reportZip != "lz4" && reportZip != "lz4hc" {
		return fmt.Errorf("Unknown report compression %s", reportZip)
	}
	f, err := createOutput(pathReport)
	if err != nil {
		return err
	}
	defer closeOutput(f)
	var writer GenericWriter
	switch reportZip {
	case "lz4":
		writer = lz4.NewWriter(f)
	case "lz4hc":
		lzWriter := lz4.NewWriter(f)
		lzWriter.Header = lz4.Header{CompressionLevel: 9}
		writer = lzWriter
	default:
		writer = nopCloser{f}
	}
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if _, err = writer.Write(append(out, '\n')); err != nil {
		return err
	}
	if err = writer.Close(); err != nil {
		return err
	}
	return closeOutput(f)
}

// WriteMultiCall writes one match per line with its number of selections.
func WriteMultiCall(calls []curation.Call, path string) error {
	f, err := createOutput(path)
	if err != nil {
		return err
	}
	defer closeOutput(f)
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "match\tcount\n")
	for _, call := range calls {
		fmt.Fprintf(w, "%s\t%d\n", call.Match, call.Count)
	}
	if err = w.Flush(); err != nil {
		return err
	}
	return closeOutput(f)
}

// WriteMissing writes one curated name per line.
func WriteMissing(missing []string, path string) error {
	f, err := createOutput(path)
	if err != nil {
		return err
	}
	defer closeOutput(f)
	w := bufio.NewWriter(f)
	for _, name := range missing {
		fmt.Fprintln(w, name)
	}
	if err = w.Flush(); err != nil {
		return err
	}
	return closeOutput(f)
}

// WriteSummary writes one CSV row per reference.
func WriteSummary(results []*cover.Result, mapping map[string]string, path string) error {
	n := len(results)
	names := make([]string, n)
	lengths := make([]int, n)
	coverages := make([]float64, n)
	unionCoverages := make([]float64, n)
	nSelected := make([]int, n)
	nUnused := make([]int, n)
	for i, res := range results {
		names[i] = refs.MapName(res.Name, mapping)
		lengths[i] = res.TotalLength
		coverages[i] = res.Coverage
		unionCoverages[i] = res.UnionCoverage
		nSelected[i] = len(res.Order)
		nUnused[i] = len(res.Unused)
	}
	df := dataframe.New(
		series.New(names, series.String, "name"),
		series.New(lengths, series.Int, "length"),
		series.New(coverages, series.Float, "coverage"),
		series.New(unionCoverages, series.Float, "union_coverage"),
		series.New(nSelected, series.Int, "n_selected"),
		series.New(nUnused, series.Int, "n_unused"),
	)
	if df.Err != nil {
		return df.Err
	}
	f, err := createOutput(path)
	if err != nil {
		return err
	}
	defer closeOutput(f)
	if err = df.WriteCSV(f); err != nil {
		return err
	}
	return closeOutput(f)
}

// WriteOrders writes one CSV row per order with the number of curated and called families.
func WriteOrders(orders []lineage.OrderCount, path string) error {
	n := len(orders)
	names := make([]string, n)
	classes := make([]string, n)
	totals := make([]int, n)
	called := make([]int, n)
	for i, oc := range orders {
		names[i] = oc.Order
		classes[i] = oc.Class
		totals[i] = oc.Total
		called[i] = oc.Called
	}
	df := dataframe.New(
		series.New(names, series.String, "order"),
		series.New(classes, series.String, "class"),
		series.New(totals, series.Int, "total"),
		series.New(called, series.Int, "called"),
	)
	if df.Err != nil {
		return df.Err
	}
	f, err := createOutput(path)
	if err != nil {
		return err
	}
	defer closeOutput(f)
	if err = df.WriteCSV(f); err != nil {
		return err
	}
	return closeOutput(f)
}
