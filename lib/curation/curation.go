//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package curation compares a curated library with the matches selected
// to explain the curated references.
package curation

import (
	"io"
	"sort"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"gopkg.in/fatih/set.v0"

	"git.sr.ht/~vejnar/RepCover/lib/cover"
	"git.sr.ht/~vejnar/RepCover/lib/lineage"
)

// ReadNames returns the name of each entry of a FASTA library, i.e. the first
// word of each header.
func ReadNames(r io.Reader) ([]string, error) {
	var names []string
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAredundant)))
	for sc.Next() {
		names = append(names, sc.Seq().Name())
	}
	if err := sc.Error(); err != nil {
		return names, err
	}
	return names, nil
}

// Matched returns the IDs of the references and matches with at least one selection.
func Matched(results []*cover.Result) set.Interface {
	s := set.New(set.NonThreadSafe)
	for _, res := range results {
		if len(res.Order) > 0 {
			s.Add(lineage.ID(res.Name))
		}
		for match, u := range res.Usage {
			if u.Selected > 0 {
				s.Add(lineage.ID(match))
			}
		}
	}
	return s
}

// Missing returns, in library order, the curated names never matched.
func Missing(curated []string, results []*cover.Result) []string {
	matched := Matched(results)
	seen := set.New(set.NonThreadSafe)
	missing := []string{}
	for _, name := range curated {
		id := lineage.ID(name)
		if matched.Has(id) || seen.Has(id) {
			continue
		}
		seen.Add(id)
		missing = append(missing, id)
	}
	return missing
}

// Orders returns, per order, the curated families and those matched.
func Orders(curated []string, results []*cover.Result) []lineage.OrderCount {
	return lineage.Tally(curated, Matched(results))
}

// Call is the number of selections of a match over all references.
type Call struct {
	Match string `json:"match"`
	Count int    `json:"count"`
}

// MultiCall returns the matches selected more than once, most selected first.
func MultiCall(results []*cover.Result) []Call {
	counts := make(map[string]int)
	for _, res := range results {
		for match, u := range res.Usage {
			counts[match] += u.Selected
		}
	}
	calls := []Call{}
	for match, n := range counts {
		if n > 1 {
			calls = append(calls, Call{Match: match, Count: n})
		}
	}
	sort.Slice(calls, func(i, j int) bool {
		if calls[i].Count != calls[j].Count {
			return calls[i].Count > calls[j].Count
		}
		return calls[i].Match < calls[j].Match
	})
	return calls
}
