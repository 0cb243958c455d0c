//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package aln

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Layout gives the 0-based column of each field in a whitespace delimited alignment line.
type Layout struct {
	Match     int
	Strand    int
	Reference int
	Start     int
	End       int
	Residual  int
}

// RepeatMaskerLayout reads RepeatMasker ".out" files: the masked sequence is
// the predicted match and the repeat is the curated reference.
var RepeatMaskerLayout = Layout{Match: 4, Strand: 8, Reference: 9, Start: 11, End: 12, Residual: 13}

func (l Layout) minColumns() int {
	m := 0
	for _, c := range []int{l.Match, l.Strand, l.Reference, l.Start, l.End, l.Residual} {
		if c > m {
			m = c
		}
	}
	return m + 1
}

// Reader reads alignment records from tabulated or space aligned lines.
// Header lines, i.e. lines too short or without a strand symbol, are skipped.
type Reader struct {
	scanner *bufio.Scanner
	layout  Layout
	ncol    int
	line    int
}

func NewReader(r io.Reader, layout Layout) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	return &Reader{scanner: s, layout: layout, ncol: layout.minColumns()}
}

// Read returns the next record.
func (r *Reader) Read() (Record, error) {
	for r.scanner.Scan() {
		r.line++
		fields := strings.Fields(r.scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") || len(fields) < r.ncol {
			continue
		}
		strand, ok := ParseStrand(fields[r.layout.Strand])
		if !ok {
			continue
		}
		rec, err := r.parse(fields, strand)
		if err != nil {
			return rec, fmt.Errorf("line %d: %w", r.line, err)
		}
		return rec, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Record{}, err
	}
	return Record{}, io.EOF
}

func (r *Reader) parse(fields []string, strand int8) (rec Record, err error) {
	rec = Record{Reference: fields[r.layout.Reference], Match: fields[r.layout.Match], Strand: strand}
	if rec.Start, err = ParseCoord(fields[r.layout.Start]); err != nil {
		return
	}
	if rec.End, err = ParseCoord(fields[r.layout.End]); err != nil {
		return
	}
	if rec.Residual, err = ParseCoord(fields[r.layout.Residual]); err != nil {
		return
	}
	return
}

// ParseLine parses a single line with layout. ErrShortLine is returned for
// lines with fewer columns than required.
func ParseLine(line string, layout Layout) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < layout.minColumns() {
		return Record{}, ErrShortLine
	}
	strand, ok := ParseStrand(fields[layout.Strand])
	if !ok {
		return Record{}, fmt.Errorf("unknown strand %q", fields[layout.Strand])
	}
	r := Reader{layout: layout}
	return r.parse(fields, strand)
}
