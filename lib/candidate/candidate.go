//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package candidate groups alignments by curated reference into sets of
// candidate intervals.
package candidate

import (
	"fmt"
	"io"

	"git.sr.ht/~vejnar/RepCover/lib/aln"
)

// Candidate is the interval of one alignment occurrence on a reference.
type Candidate struct {
	ID    string
	Match string
	Low   int
	High  int
}

// Set holds the candidates of a reference in input order.
type Set struct {
	Name        string
	TotalLength int
	Candidates  []Candidate
}

// Aggregator builds one Set per reference. The reference length is set by the
// first alignment seen for the reference unless given in Lengths.
type Aggregator struct {
	MinFraction float64
	Lengths     map[string]int
	sets        map[string]*Set
	names       []string
	counter     int
	NRecord     int
	NSkipped    int
}

func NewAggregator(minFraction float64, lengths map[string]int) *Aggregator {
	return &Aggregator{MinFraction: minFraction, Lengths: lengths, sets: make(map[string]*Set)}
}

// Add adds the interval of r to the set of its reference. It returns false
// if r is below the minimum aligned fraction.
func (a *Aggregator) Add(r aln.Record) bool {
	a.NRecord++
	if a.MinFraction > 0. && r.Fraction() < a.MinFraction {
		a.NSkipped++
		return false
	}
	s, ok := a.sets[r.Reference]
	if !ok {
		s = &Set{Name: r.Reference, TotalLength: r.TotalLength()}
		if l, ok := a.Lengths[r.Reference]; ok {
			s.TotalLength = l
		}
		a.sets[r.Reference] = s
		a.names = append(a.names, r.Reference)
	}
	low, high := r.Interval()
	a.counter++
	s.Candidates = append(s.Candidates, Candidate{ID: fmt.Sprintf("%s:%d", r.Match, a.counter), Match: r.Match, Low: low, High: high})
	return true
}

// Sets returns the sets in order of first appearance of their reference.
func (a *Aggregator) Sets() []*Set {
	sets := make([]*Set, len(a.names))
	for i, name := range a.names {
		sets[i] = a.sets[name]
	}
	return sets
}

// ReadAll adds all the records of src.
func (a *Aggregator) ReadAll(src aln.Source) error {
	for {
		r, err := src.Read()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		a.Add(r)
	}
}

// Aggregate reads all records of src and returns the sets of candidates.
func Aggregate(src aln.Source, minFraction float64, lengths map[string]int) ([]*Set, error) {
	a := NewAggregator(minFraction, lengths)
	if err := a.ReadAll(src); err != nil {
		return nil, err
	}
	return a.Sets(), nil
}
