//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package strip implements the boundary strip of a reference: a sorted list of
// coordinates where each pair (2i, 2i+1) delimits a range not yet covered.
package strip

import (
	"sort"
)

// Strip is a sorted list of boundaries with an even length.
type Strip []int

// Case is the interaction between a candidate interval and a strip.
type Case int

const (
	Unhandled Case = iota
	Missing
	Edge
	PartialLower
	PartialUpper
	Spanning
	Redundant
)

var caseNames = [...]string{"unhandled", "missing", "edge", "partial-lower", "partial-upper", "spanning", "redundant"}

func (c Case) String() string {
	if c < 0 || int(c) >= len(caseNames) {
		return caseNames[Unhandled]
	}
	return caseNames[c]
}

// New returns the strip of a reference of length totalLength with nothing covered.
func New(totalLength int) Strip {
	return Strip{1, totalLength}
}

// Merge returns a copy of s with low and high inserted, and the positions of
// low and high in the merged strip. Equal coordinates resolve to their first
// position.
func Merge(s Strip, low, high int) (merged Strip, lowerIdx, upperIdx int) {
	merged = make(Strip, 0, len(s)+2)
	merged = append(merged, s...)
	merged = append(merged, low, high)
	sort.Ints(merged)
	lowerIdx = sort.SearchInts(merged, low)
	upperIdx = sort.SearchInts(merged, high)
	return
}

// Classify returns the interaction given the positions of a candidate
// interval in a merged strip. Missing is returned for both missing and edge
// pieces: they only differ once the strip is cleaned.
func Classify(lowerIdx, upperIdx, distance int) Case {
	lo := lowerIdx%2 == 1
	up := upperIdx%2 == 0
	switch {
	case lo && up && distance == 1:
		return Missing
	case lo && !up && distance > 1:
		return PartialLower
	case !lo && up && distance > 1:
		return PartialUpper
	case !lo && !up && distance > 1:
		return Spanning
	case !lo && !up && distance == 1:
		return Redundant
	}
	return Unhandled
}

// Resolve computes the length removed from the uncovered ranges by a candidate
// interval and the resolved strip. s is the merged strip returned by Merge and
// is never modified. Unhandled and redundant pieces return s itself.
func Resolve(s Strip, lowerIdx, upperIdx, distance int) (removed int, resolved Strip, c Case) {
	c = Classify(lowerIdx, upperIdx, distance)
	if c != Unhandled && (lowerIdx < 0 || upperIdx >= len(s)) {
		return 0, s, Unhandled
	}
	switch c {
	case Missing:
		removed = s[upperIdx] - s[lowerIdx]
		var cleaned bool
		removed, resolved, cleaned = CleanEdges(removed, s)
		if cleaned {
			c = Edge
		}
	case PartialLower:
		removed = s[lowerIdx+1] - s[lowerIdx]
		resolved = concat(s[:lowerIdx+1], s[upperIdx+1:])
	case PartialUpper:
		removed = s[upperIdx] - s[upperIdx-1]
		resolved = concat(s[:lowerIdx], s[upperIdx:])
	case Spanning:
		removed = s[upperIdx-1] - s[lowerIdx+1] + 1
		resolved = concat(s[:lowerIdx], s[upperIdx+1:])
	default:
		return 0, s, c
	}
	if removed < 0 {
		return 0, s, Unhandled
	}
	return removed, resolved, c
}

// CleanEdges deletes every pair of adjacent equal boundaries from a copy of s.
// A boundary closed and reopened at the same coordinate holds no length, so
// collapsing at least one pair adds one to removed.
func CleanEdges(removed int, s Strip) (int, Strip, bool) {
	cleaned := make(Strip, len(s))
	copy(cleaned, s)
	var collapsed bool
	i := 0
	for i < len(cleaned)-1 {
		if cleaned[i] == cleaned[i+1] {
			cleaned = append(cleaned[:i], cleaned[i+2:]...)
			collapsed = true
			i -= 2
			if i < 0 {
				i = 0
			}
		} else {
			i++
		}
	}
	if collapsed {
		removed++
	}
	return removed, cleaned, collapsed
}

// Coverage returns the percentage of totalLength explained once the strip s
// is final: the length of every remaining uncovered pair is subtracted from
// totalLength.
func Coverage(s Strip, totalLength int) float64 {
	if totalLength <= 0 {
		return 0.
	}
	covered := totalLength
	for i := 0; i+1 < len(s); i += 2 {
		covered += s[i] - s[i+1]
	}
	return float64(covered) / float64(totalLength) * 100.
}

// Valid reports whether s is sorted with an even length.
func Valid(s Strip) bool {
	return len(s)%2 == 0 && sort.IntsAreSorted(s)
}

func concat(a, b Strip) Strip {
	c := make(Strip, 0, len(a)+len(b))
	c = append(c, a...)
	return append(c, b...)
}
