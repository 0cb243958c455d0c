//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package candidate

import (
	"fmt"
	"sort"

	"github.com/biogo/store/interval"
)

// IntInterval is a half-open interval of a candidate.
type IntInterval struct {
	Start, End int
	UID        uintptr
	Candidate  *Candidate
}

func (i IntInterval) Overlap(b interval.IntRange) bool {
	// Half-open interval indexing.
	return i.End > b.Start && i.Start < b.End
}

func (i IntInterval) ID() uintptr {
	return i.UID
}

func (i IntInterval) Range() interval.IntRange {
	return interval.IntRange{Start: i.Start, End: i.End}
}

func (i IntInterval) String() string {
	return fmt.Sprintf("[%d,%d)#%d-%s", i.Start, i.End, i.UID, i.Candidate.ID)
}

// NewInterval returns the half-open interval of the closed candidate interval.
// Inverted bounds are swapped.
func NewInterval(c *Candidate, uid uintptr) IntInterval {
	low, high := c.Low, c.High
	if low > high {
		low, high = high, low
	}
	return IntInterval{Start: low, End: high + 1, UID: uid, Candidate: c}
}

// BuildTree builds a tree with the interval of each candidate.
func BuildTree(cands []Candidate) (*interval.IntTree, error) {
	tree := &interval.IntTree{}
	for i := range cands {
		if err := tree.Insert(NewInterval(&cands[i], uintptr(i)), false); err != nil {
			return nil, err
		}
	}
	tree.AdjustRanges()
	return tree, nil
}

// Overlapping returns the candidates in tree overlapping c.
func Overlapping(tree *interval.IntTree, c *Candidate) []*Candidate {
	var cands []*Candidate
	for _, iv := range tree.Get(NewInterval(c, 0)) {
		cands = append(cands, iv.(IntInterval).Candidate)
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Low != cands[j].Low {
			return cands[i].Low < cands[j].Low
		}
		return cands[i].ID < cands[j].ID
	})
	return cands
}

// UnionLength returns the number of reference bases covered by at least one interval of tree.
func UnionLength(tree *interval.IntTree) (length int) {
	var ivs []interval.IntRange
	tree.Do(func(e interval.IntInterface) bool {
		ivs = append(ivs, e.Range())
		return false
	})
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start < ivs[j].Start })
	var cur interval.IntRange
	for i, iv := range ivs {
		if i == 0 {
			cur = iv
			continue
		}
		if iv.Start <= cur.End {
			if iv.End > cur.End {
				cur.End = iv.End
			}
		} else {
			length += cur.End - cur.Start
			cur = iv
		}
	}
	if len(ivs) > 0 {
		length += cur.End - cur.Start
	}
	return
}

// UnionCoverage returns the percentage of the reference covered by all candidates of s.
func UnionCoverage(s *Set) (float64, error) {
	if s.TotalLength <= 0 {
		return 0., nil
	}
	tree, err := BuildTree(s.Candidates)
	if err != nil {
		return 0., err
	}
	return float64(UnionLength(tree)) / float64(s.TotalLength) * 100., nil
}
