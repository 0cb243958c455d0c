//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package lineage

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"gopkg.in/fatih/set.v0"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		want  Lineage
		class string
	}{
		{"rnd-1_family-5#LTR/Gypsy", Lineage{ID: "rnd-1_family-5", Order: "LTR", Superfamily: "Gypsy"}, "ClassI"},
		{"rnd-4_family-2#SINE?", Lineage{ID: "rnd-4_family-2", Order: "SINE", Superfamily: Unknown}, "ClassI"},
		{"Tc1_CE#DNA/TcMar-Tc1", Lineage{ID: "Tc1_CE", Order: "DNA", Superfamily: "TcMar-Tc1"}, "ClassII"},
		{"CeRep1", Lineage{ID: "CeRep1", Order: Unknown, Superfamily: Unknown}, "Other"},
		{"x#Weird/Thing", Lineage{ID: "x", Order: "Weird", Superfamily: "Thing"}, "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			l := Parse(tt.name)
			c.Assert(l, qt.Equals, tt.want)
			c.Assert(l.Class(), qt.Equals, tt.class)
			c.Assert(ID(tt.name), qt.Equals, tt.want.ID)
		})
	}
}

func TestInternal(t *testing.T) {
	c := qt.New(t)
	c.Assert(Internal("Gypsy-1-INT#LTR/Gypsy"), qt.IsTrue)
	c.Assert(Internal("Gypsy-1-LTR#LTR/Gypsy"), qt.IsFalse)
	c.Assert(Internal("INTRON-1#DNA/hAT"), qt.IsFalse)
}

func TestTally(t *testing.T) {
	names := []string{
		"rnd-1_family-5#LTR/Gypsy",
		"rnd-1_family-6-INT#LTR/Gypsy",
		"rnd-1_family-8#DNA/TcMar",
		"rnd-1_family-9#DNA/hAT",
		"rnd-4_family-2#SINE?",
		"rnd-1_family-8#DNA/TcMar",
		"CeRep1",
	}
	tests := []struct {
		name   string
		called []string
		want   []OrderCount
	}{
		{"none called", nil, []OrderCount{
			{Order: "DNA", Class: "ClassII", Total: 2},
			{Order: "LTR", Class: "ClassI", Total: 1},
			{Order: "SINE", Class: "ClassI", Total: 1},
			{Order: "Unknown", Class: "Other", Total: 1},
		}},
		{"some called", []string{"rnd-1_family-8", "rnd-4_family-2", "rnd-1_family-6-INT", "other"}, []OrderCount{
			{Order: "DNA", Class: "ClassII", Total: 2, Called: 1},
			{Order: "LTR", Class: "ClassI", Total: 1},
			{Order: "SINE", Class: "ClassI", Total: 1, Called: 1},
			{Order: "Unknown", Class: "Other", Total: 1},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			called := set.New(set.NonThreadSafe)
			for _, id := range tt.called {
				called.Add(id)
			}
			c.Assert(Tally(names, called), qt.DeepEquals, tt.want)
		})
	}

	c := qt.New(t)
	c.Assert(Tally(nil, nil), qt.DeepEquals, []OrderCount{})
}
