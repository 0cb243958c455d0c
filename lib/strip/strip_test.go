//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package strip

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

// Reference '-' = uncovered
// |   ----------------                    -----     -----------|  Current strip
// |     -------  --------    ------     ---------        ------|  Candidates
//         1          2          3           4              5
// 1. Missing  2. Partial  3. Redundant  4. Spanning  5. Edge

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		lower, upper int
		distance     int
		strip        Strip
		removed      int
		resolved     Strip
		c            Case
	}{
		{"missing", 1, 2, 1, Strip{1, 6, 10, 20}, 4, Strip{1, 6, 10, 20}, Missing},
		{"edge", 1, 2, 1, Strip{1, 1, 3, 3, 5, 10}, 3, Strip{5, 10}, Edge},
		{"partial lower", 1, 3, 2, Strip{1, 4, 6, 10, 12, 20}, 2, Strip{1, 4, 12, 20}, PartialLower},
		{"partial upper", 2, 4, 2, Strip{1, 6, 10, 12, 14, 20}, 2, Strip{1, 6, 14, 20}, PartialUpper},
		{"redundant", 2, 3, 1, Strip{1, 4, 6, 10, 12, 20}, 0, Strip{1, 4, 6, 10, 12, 20}, Redundant},
		{"spanning", 2, 5, 3, Strip{1, 4, 5, 6, 10, 11, 12, 20}, 5, Strip{1, 4, 12, 20}, Spanning},
		{"inner double edge", 3, 4, 1, Strip{1, 2, 4, 4, 6, 6, 7, 10}, 3, Strip{1, 2, 7, 10}, Edge},
		{"unhandled", 1, 1, 0, Strip{1, 5, 5, 20}, 0, Strip{1, 5, 5, 20}, Unhandled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			orig := append(Strip(nil), tt.strip...)
			removed, resolved, cs := Resolve(tt.strip, tt.lower, tt.upper, tt.distance)
			c.Assert(removed, qt.Equals, tt.removed)
			c.Assert(resolved, qt.DeepEquals, tt.resolved)
			c.Assert(cs, qt.Equals, tt.c)
			c.Assert(Valid(resolved), qt.IsTrue)
			// Input strip is left untouched
			c.Assert(tt.strip, qt.DeepEquals, orig)
		})
	}
}

func TestResolveGuards(t *testing.T) {
	c := qt.New(t)
	// Indices out of the strip
	s := Strip{1, 20}
	removed, resolved, cs := Resolve(s, 1, 2, 1)
	c.Assert(removed, qt.Equals, 0)
	c.Assert(resolved, qt.DeepEquals, s)
	c.Assert(cs, qt.Equals, Unhandled)
	removed, _, cs = Resolve(s, -1, 1, 2)
	c.Assert(removed, qt.Equals, 0)
	c.Assert(cs, qt.Equals, Unhandled)

	// Unsorted strip giving a negative removal
	s = Strip{1, 10, 5, 20}
	removed, resolved, cs = Resolve(s, 1, 3, 2)
	c.Assert(removed, qt.Equals, 0)
	c.Assert(resolved, qt.DeepEquals, s)
	c.Assert(cs, qt.Equals, Unhandled)
}

func TestClassify(t *testing.T) {
	c := qt.New(t)
	c.Assert(Classify(1, 2, 1), qt.Equals, Missing)
	c.Assert(Classify(1, 3, 2), qt.Equals, PartialLower)
	c.Assert(Classify(2, 4, 2), qt.Equals, PartialUpper)
	c.Assert(Classify(2, 5, 3), qt.Equals, Spanning)
	c.Assert(Classify(2, 3, 1), qt.Equals, Redundant)
	c.Assert(Classify(1, 2, 3), qt.Equals, Unhandled)
	c.Assert(Classify(0, 0, 0), qt.Equals, Unhandled)
	c.Assert(Unhandled.String(), qt.Equals, "unhandled")
	c.Assert(PartialLower.String(), qt.Equals, "partial-lower")
}

func TestCleanEdges(t *testing.T) {
	c := qt.New(t)
	removed, cleaned, collapsed := CleanEdges(5, Strip{1, 1, 5, 10})
	c.Assert(removed, qt.Equals, 6)
	c.Assert(cleaned, qt.DeepEquals, Strip{5, 10})
	c.Assert(collapsed, qt.IsTrue)

	removed, cleaned, collapsed = CleanEdges(5, Strip{1, 4, 5, 10})
	c.Assert(removed, qt.Equals, 5)
	c.Assert(cleaned, qt.DeepEquals, Strip{1, 4, 5, 10})
	c.Assert(collapsed, qt.IsFalse)

	// Nested collapses are counted once
	removed, cleaned, _ = CleanEdges(0, Strip{1, 3, 3, 3, 3, 8})
	c.Assert(removed, qt.Equals, 1)
	c.Assert(cleaned, qt.DeepEquals, Strip{1, 8})
}

func TestMerge(t *testing.T) {
	c := qt.New(t)
	s := New(20)
	merged, lower, upper := Merge(s, 5, 10)
	c.Assert(merged, qt.DeepEquals, Strip{1, 5, 10, 20})
	c.Assert(lower, qt.Equals, 1)
	c.Assert(upper, qt.Equals, 2)
	c.Assert(s, qt.DeepEquals, Strip{1, 20})

	// Equal coordinates take their first position
	merged, lower, upper = Merge(s, 1, 10)
	c.Assert(merged, qt.DeepEquals, Strip{1, 1, 10, 20})
	c.Assert(lower, qt.Equals, 0)
	c.Assert(upper, qt.Equals, 2)
}

func TestResolveMerged(t *testing.T) {
	tests := []struct {
		name      string
		low, high int
		removed   int
		resolved  Strip
	}{
		{"inside", 5, 10, 5, Strip{1, 5, 10, 20}},
		{"from start", 1, 10, 9, Strip{10, 20}},
		{"to end", 5, 20, 16, Strip{1, 5}},
		{"whole", 1, 20, 19, Strip{20, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			merged, lower, upper := Merge(New(20), tt.low, tt.high)
			removed, resolved, _ := Resolve(merged, lower, upper, upper-lower)
			c.Assert(removed, qt.Equals, tt.removed)
			c.Assert(resolved, qt.DeepEquals, tt.resolved)
			c.Assert(Valid(resolved), qt.IsTrue)
		})
	}
}

func TestCoverage(t *testing.T) {
	c := qt.New(t)
	c.Assert(Coverage(Strip{1, 12, 18, 20}, 20), qt.Equals, 35.)
	c.Assert(Coverage(Strip{1, 5, 10, 12, 18, 20}, 20), qt.Equals, 60.)
	c.Assert(Coverage(Strip{}, 20), qt.Equals, 100.)
	c.Assert(Coverage(Strip{1, 20}, 0), qt.Equals, 0.)
}
