//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package aln

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrShortLine = errors.New("not enough columns")

// Record is one alignment of a predicted match against a curated reference.
// For reverse alignments, Start holds the bases left after the alignment and
// Residual the alignment begin, as written by RepeatMasker.
type Record struct {
	Reference string
	Match     string
	Strand    int8
	Start     int
	End       int
	Residual  int
}

// Source is implemented by all alignment readers. Read returns io.EOF once exhausted.
type Source interface {
	Read() (Record, error)
}

// ParseStrand returns 1 or -1. ok is false for unknown symbols.
func ParseStrand(strandRaw string) (strand int8, ok bool) {
	switch strandRaw {
	case "+", "1", "+1":
		return 1, true
	case "-", "-1", "C", "c":
		return -1, true
	}
	return 0, false
}

// ParseCoord parses an integer coordinate, removing the enclosing parentheses
// if present (i.e. "(123)").
func ParseCoord(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(raw, "("), ")"))
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q", raw)
	}
	return n, nil
}

// Interval returns the interval covered by the alignment on the reference.
func (r Record) Interval() (low, high int) {
	if r.Strand == -1 {
		low, high = r.Residual, r.End
	} else {
		low, high = r.Start, r.End
	}
	if low > high {
		low, high = high, low
	}
	return
}

// TotalLength returns the reference length estimated from the alignment.
func (r Record) TotalLength() int {
	if r.Strand == -1 {
		return r.End + r.Start
	}
	return r.End + r.Residual
}

// Fraction returns the aligned part of the reference from the alignment start.
func (r Record) Fraction() float64 {
	low, high := r.Interval()
	d := r.TotalLength() - low
	if d <= 0 {
		return 0.
	}
	return float64(high-low) / float64(d)
}
