//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package aln

import (
	"github.com/biogo/hts/sam"
)

type recordReader interface {
	Read() (*sam.Record, error)
}

// SAMReader reads alignment records from a SAM or BAM reader: the read is the
// predicted match and the reference sequence the curated reference.
type SAMReader struct {
	rr recordReader
}

func NewSAMReader(rr recordReader) *SAMReader {
	return &SAMReader{rr: rr}
}

// Read returns the next mapped alignment.
func (r *SAMReader) Read() (Record, error) {
	for {
		aread, err := r.rr.Read()
		if err != nil {
			return Record{}, err
		}
		// Ignore unmapped read
		if aread.Flags&sam.Unmapped != 0 || aread.Ref == nil {
			continue
		}
		return FromSAM(aread), nil
	}
}

// FromSAM converts a SAM record to 1-based coordinates. Reverse alignments are
// stored like RepeatMasker complement matches, with the bases left after the
// alignment first and the alignment begin last.
func FromSAM(r *sam.Record) Record {
	begin := r.Pos + 1
	end := r.End()
	left := r.Ref.Len() - end
	if left < 0 {
		left = 0
	}
	if r.Flags&sam.Reverse != 0 {
		return Record{Reference: r.Ref.Name(), Match: r.Name, Strand: -1, Start: left, End: end, Residual: begin}
	}
	return Record{Reference: r.Ref.Name(), Match: r.Name, Strand: 1, Start: begin, End: end, Residual: left}
}
