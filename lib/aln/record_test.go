//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package aln

import (
	"io"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

const rmOut = `   SW   perc perc perc  query      position in query           matching       repeat              position in  repeat
score   div. del. ins.  sequence    begin     end    (left)    repeat         class/family         begin  end (left)   ID

  463   1.3  0.6  1.7  rnd-1_family-5#LTR/Gypsy      1    310 (1690) +  Copia-1_CE    LTR/Copia         1    305  (95)   1
  342   9.5  3.6  0.9  rnd-1_family-8#DNA/TcMar     20    150  (250) C  Tc1_CE        DNA/TcMar-Tc1  (40)   380    250   2
`

func TestParseCoord(t *testing.T) {
	c := qt.New(t)
	n, err := ParseCoord("(123)")
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, 123)
	n, err = ParseCoord("123")
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, 123)
	_, err = ParseCoord("(12a)")
	c.Assert(err, qt.ErrorMatches, `invalid coordinate "\(12a\)"`)
}

func TestParseStrand(t *testing.T) {
	c := qt.New(t)
	for raw, want := range map[string]int8{"+": 1, "+1": 1, "-": -1, "C": -1} {
		s, ok := ParseStrand(raw)
		c.Assert(ok, qt.IsTrue)
		c.Assert(s, qt.Equals, want)
	}
	_, ok := ParseStrand("repeat")
	c.Assert(ok, qt.IsFalse)
}

func TestRecordInterval(t *testing.T) {
	c := qt.New(t)
	fwd := Record{Strand: 1, Start: 1, End: 305, Residual: 95}
	low, high := fwd.Interval()
	c.Assert([]int{low, high}, qt.DeepEquals, []int{1, 305})
	c.Assert(fwd.TotalLength(), qt.Equals, 400)

	rev := Record{Strand: -1, Start: 40, End: 380, Residual: 250}
	low, high = rev.Interval()
	c.Assert([]int{low, high}, qt.DeepEquals, []int{250, 380})
	c.Assert(rev.TotalLength(), qt.Equals, 420)

	half := Record{Strand: 1, Start: 1, End: 11, Residual: 10}
	c.Assert(half.Fraction(), qt.Equals, 0.5)
}

func TestReader(t *testing.T) {
	c := qt.New(t)
	r := NewReader(strings.NewReader(rmOut), RepeatMaskerLayout)
	var recs []Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		c.Assert(err, qt.IsNil)
		recs = append(recs, rec)
	}
	c.Assert(recs, qt.DeepEquals, []Record{
		{Reference: "Copia-1_CE", Match: "rnd-1_family-5#LTR/Gypsy", Strand: 1, Start: 1, End: 305, Residual: 95},
		{Reference: "Tc1_CE", Match: "rnd-1_family-8#DNA/TcMar", Strand: -1, Start: 40, End: 380, Residual: 250},
	})
}

func TestReaderBadCoord(t *testing.T) {
	c := qt.New(t)
	r := NewReader(strings.NewReader("1 0 0 0 m 1 2 (3) + ref cls 1 x (4)\n"), RepeatMaskerLayout)
	_, err := r.Read()
	c.Assert(err, qt.ErrorMatches, `line 1: invalid coordinate "x"`)
}

func TestParseLine(t *testing.T) {
	c := qt.New(t)
	layout := Layout{Reference: 0, Match: 1, Strand: 2, Start: 3, End: 4, Residual: 5}
	rec, err := ParseLine("ref\tm1\t-\t(7)\t50\t12", layout)
	c.Assert(err, qt.IsNil)
	c.Assert(rec, qt.Equals, Record{Reference: "ref", Match: "m1", Strand: -1, Start: 7, End: 50, Residual: 12})
	_, err = ParseLine("ref\tm1\t-", layout)
	c.Assert(err, qt.Equals, ErrShortLine)
	_, err = ParseLine("ref\tm1\t?\t1\t2\t3", layout)
	c.Assert(err, qt.ErrorMatches, `unknown strand "\?"`)
}
