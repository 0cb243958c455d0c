//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package cover selects, for each curated reference, the alignments explaining
// its length and reports how much of the reference they cover.
package cover

import (
	"sort"

	"gopkg.in/fatih/set.v0"

	"git.sr.ht/~vejnar/RepCover/lib/candidate"
	"git.sr.ht/~vejnar/RepCover/lib/strip"
)

// Usage counts the bases removed from the uncovered ranges by a match and how
// many times it was selected.
type Usage struct {
	Removed  int `json:"bases_removed"`
	Selected int `json:"times_selected"`
}

// Result is the coverage of one reference.
type Result struct {
	Name          string                `json:"name"`
	TotalLength   int                   `json:"length"`
	Coverage      float64               `json:"coverage"`
	UnionCoverage float64               `json:"union_coverage"`
	Usage         map[string]*Usage     `json:"usage"`
	Order         []string              `json:"selection_order"`
	Unused        []string              `json:"unused"`
	Overlaps      map[string][]string   `json:"unused_overlaps,omitempty"`
	Strip         strip.Strip           `json:"strip"`
	Selected      []candidate.Candidate `json:"-"`
}

// Select greedily picks, round after round, the candidate of cs removing the
// most uncovered bases. Candidates removing nothing are retired for good since
// the uncovered ranges only shrink. cs is not modified.
func Select(cs *candidate.Set) *Result {
	res := &Result{Name: cs.Name, TotalLength: cs.TotalLength, Usage: make(map[string]*Usage), Order: []string{}}
	remaining := make([]candidate.Candidate, len(cs.Candidates))
	copy(remaining, cs.Candidates)
	openRange := strip.New(cs.TotalLength)
	var retired []candidate.Candidate
	removals := make([]int, len(remaining))
	for len(remaining) > 0 {
		master := -1
		var best int
		var bestStrip strip.Strip
		for i, c := range remaining {
			merged, lowerIdx, upperIdx := strip.Merge(openRange, c.Low, c.High)
			removed, resolved, _ := strip.Resolve(merged, lowerIdx, upperIdx, upperIdx-lowerIdx)
			removals[i] = removed
			if removed > best {
				master, best, bestStrip = i, removed, resolved
			}
		}
		next := remaining[:0]
		var selected candidate.Candidate
		for i, c := range remaining {
			switch {
			case i == master:
				selected = c
			case removals[i] == 0:
				retired = append(retired, c)
			default:
				next = append(next, c)
			}
		}
		remaining = next
		removals = removals[:len(remaining)]
		if master != -1 {
			openRange = bestStrip
			res.Order = append(res.Order, selected.Match)
			res.Selected = append(res.Selected, selected)
			u, ok := res.Usage[selected.Match]
			if !ok {
				u = &Usage{}
				res.Usage[selected.Match] = u
			}
			u.Removed += best
			u.Selected++
		}
	}
	res.Strip = openRange
	res.Coverage = strip.Coverage(openRange, cs.TotalLength)
	res.Unused, res.Overlaps = unused(retired, res.Selected)
	// Intervals are normalized by the tree: no insertion error
	res.UnionCoverage, _ = candidate.UnionCoverage(cs)
	return res
}

// unused returns the retired matches never selected and, for each, the
// selected matches overlapping one of its intervals.
func unused(retired, selected []candidate.Candidate) ([]string, map[string][]string) {
	used := set.New(set.NonThreadSafe)
	for _, c := range selected {
		used.Add(c.Match)
	}
	all := set.New(set.NonThreadSafe)
	for _, c := range retired {
		all.Add(c.Match)
	}
	names := set.StringSlice(set.Difference(all, used))
	if names == nil {
		names = []string{}
	}
	sort.Strings(names)
	if len(names) == 0 || len(selected) == 0 {
		return names, nil
	}
	tree, err := candidate.BuildTree(selected)
	if err != nil {
		return names, nil
	}
	unusedSet := set.New(set.NonThreadSafe)
	for _, n := range names {
		unusedSet.Add(n)
	}
	overlaps := make(map[string][]string)
	for i := range retired {
		if !unusedSet.Has(retired[i].Match) {
			continue
		}
		over := set.New(set.NonThreadSafe)
		for _, o := range overlaps[retired[i].Match] {
			over.Add(o)
		}
		for _, c := range candidate.Overlapping(tree, &retired[i]) {
			over.Add(c.Match)
		}
		if over.Size() > 0 {
			ov := set.StringSlice(over)
			sort.Strings(ov)
			overlaps[retired[i].Match] = ov
		}
	}
	return names, overlaps
}
