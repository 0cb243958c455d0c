//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"git.sr.ht/~vejnar/RepCover/lib/aln"
	"git.sr.ht/~vejnar/RepCover/lib/candidate"
	"git.sr.ht/~vejnar/RepCover/lib/cover"
	"git.sr.ht/~vejnar/RepCover/lib/curation"
	"git.sr.ht/~vejnar/RepCover/lib/lineage"
	"git.sr.ht/~vejnar/RepCover/lib/refs"
)

func commas(n int) string {
	return humanize.Comma(int64(n))
}

// Counts of the aggregation step.
type Counts struct {
	NRecord  int `json:"n_record"`
	NSkipped int `json:"n_skipped"`
	NRef     int `json:"n_reference"`
}

// Cover reads all alignments then computes the coverage of each reference
// with nWorker worker(s). Results are in order of first appearance of the references.
func Cover(inputs []aln.Input, layout aln.Layout, minFraction float64, lengths map[string]int, nWorker int, timeStart time.Time) ([]*cover.Result, Counts, error) {
	var counts Counts
	var names []string
	if nWorker < 1 {
		nWorker = 1
	}

	g, gctx := errgroup.WithContext(context.Background())

	// Start candidate channel
	chSet := make(chan *candidate.Set, nWorker*10)
	// Start receiving channel
	chFinal := make(chan *cover.Result, nWorker*10)

	g.Go(func() error {
		defer close(chSet)
		agg := candidate.NewAggregator(minFraction, lengths)
		for _, in := range inputs {
			log.Infof("%.1fmin - Opening %s", time.Since(timeStart).Minutes(), in.Path)
			src, closer, err := aln.OpenSource(in, layout, nWorker)
			if err != nil {
				return err
			}
			err = agg.ReadAll(src)
			closer.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", in.Path, err)
			}
		}
		sets := agg.Sets()
		counts = Counts{NRecord: agg.NRecord, NSkipped: agg.NSkipped, NRef: len(sets)}
		log.Infof("%.1fmin - %s align. on %s reference(s), %s skipped", time.Since(timeStart).Minutes(), commas(agg.NRecord), commas(len(sets)), commas(agg.NSkipped))
		for _, s := range sets {
			names = append(names, s.Name)
			select {
			case <-gctx.Done():
				return gctx.Err()
			case chSet <- s:
			}
		}
		return nil
	})

	// Spawn worker goroutine(s)
	g.Go(func() error {
		defer close(chFinal)
		wg, wgctx := errgroup.WithContext(gctx)
		for i := 0; i < nWorker; i++ {
			wg.Go(func() error {
				for s := range chSet {
					res := cover.Select(s)
					log.Debugf("%s: %.2f%% covered, %d selection(s), %d unused", res.Name, res.Coverage, len(res.Order), len(res.Unused))
					select {
					case <-wgctx.Done():
						return wgctx.Err()
					case chFinal <- res:
					}
				}
				return nil
			})
		}
		return wg.Wait()
	})

	// Combine results from workers
	var results []*cover.Result
	for res := range chFinal {
		results = append(results, res)
	}
	if err := g.Wait(); err != nil {
		return nil, counts, err
	}

	// Restore reference order
	rank := make(map[string]int, len(names))
	for i, n := range names {
		rank[n] = i
	}
	sort.Slice(results, func(i, j int) bool { return rank[results[i].Name] < rank[results[j].Name] })
	return results, counts, nil
}

// Run computes the coverage of references and writes all outputs.
func Run(conf *Config, timeStart time.Time) (int, error) {
	layout, err := conf.Layout()
	if err != nil {
		return 0, err
	}
	inputs, err := conf.Inputs()
	if err != nil {
		return 0, err
	}

	// Open side tables
	var lengths map[string]int
	if conf.PathLengths != "" {
		if lengths, err = refs.OpenLengths(conf.PathLengths); err != nil {
			return 0, err
		}
	}
	var mapping map[string]string
	if conf.PathMapping != "" {
		if mapping, err = refs.OpenMapping(conf.PathMapping); err != nil {
			return 0, err
		}
	}
	var curated []string
	if conf.PathCurated != "" {
		f, err := aln.Open(conf.PathCurated)
		if err != nil {
			return 0, err
		}
		curated, err = curation.ReadNames(f)
		f.Close()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", conf.PathCurated, err)
		}
		log.Infof("%.1fmin - %s curated name(s)", time.Since(timeStart).Minutes(), commas(len(curated)))
	}

	// Coverage
	results, counts, err := Cover(inputs, layout, conf.MinFraction, lengths, conf.NumWorker, timeStart)
	if err != nil {
		return counts.NRecord, err
	}

	// Cross-reference
	calls := curation.MultiCall(results)
	var missing []string
	var orders []lineage.OrderCount
	if conf.PathCurated != "" {
		missing = curation.Missing(curated, results)
		orders = curation.Orders(curated, results)
		log.Infof("%.1fmin - %s missing curation(s)", time.Since(timeStart).Minutes(), commas(len(missing)))
	}

	// Output: Report
	if conf.PathReport != "" {
		log.Infof("%.1fmin - Writing %s report in %s", time.Since(timeStart).Minutes(), conf.ReportFormat, conf.PathReport)
		report := NewReport(results, counts, calls, missing, orders, mapping)
		if err = WriteReport(report, conf.PathReport, conf.ReportFormat); err != nil {
			return counts.NRecord, err
		}
	}
	// Output: Side files
	if conf.PathMultiCall != "" {
		if err = WriteMultiCall(calls, conf.PathMultiCall); err != nil {
			return counts.NRecord, err
		}
	}
	if conf.PathMissing != "" {
		if conf.PathCurated == "" {
			log.Warn("No curated library: missing curations not written")
		} else if err = WriteMissing(missing, conf.PathMissing); err != nil {
			return counts.NRecord, err
		}
	}
	if conf.PathOrders != "" {
		if conf.PathCurated == "" {
			log.Warn("No curated library: orders not written")
		} else if err = WriteOrders(orders, conf.PathOrders); err != nil {
			return counts.NRecord, err
		}
	}
	if conf.PathSummary != "" {
		if err = WriteSummary(results, mapping, conf.PathSummary); err != nil {
			return counts.NRecord, err
		}
	}
	return counts.NRecord, nil
}

func createOutput(path string) (*os.File, error) {
	if path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

// closeOutput closes f unless it is stdout.
func closeOutput(f *os.File) error {
	if f == os.Stdout {
		return nil
	}
	return f.Close()
}
