//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package lineage parses the "ID#Order/Superfamily" names of transposable
// element libraries and holds the classification of orders.
package lineage

import (
	"sort"
	"strings"

	"gopkg.in/fatih/set.v0"
)

const Unknown = "Unknown"

// Classes maps each order to its class.
var Classes = map[string]string{
	"DNA":           "ClassII",
	"RC":            "ClassII",
	"RNA":           "ClassI",
	"LINE":          "ClassI",
	"LTR":           "ClassI",
	"SINE":          "ClassI",
	"rRNA":          "ncRNA",
	"snRNA":         "ncRNA",
	"tRNA":          "ncRNA",
	"Satellite":     "Other",
	"Simple_repeat": "Other",
	"Unknown":       "Other",
	"Other":         "Other",
	"ARTEFACT":      "Other",
}

type Lineage struct {
	ID          string `json:"id"`
	Order       string `json:"order"`
	Superfamily string `json:"superfamily"`
}

// Parse splits name into ID, order and superfamily. Missing parts are Unknown.
func Parse(name string) Lineage {
	id, lin, found := strings.Cut(name, "#")
	l := Lineage{ID: id, Order: Unknown, Superfamily: Unknown}
	if !found || lin == "" {
		return l
	}
	order, superfamily, found := strings.Cut(lin, "/")
	l.Order = NormalizeOrder(order)
	if found && superfamily != "" {
		l.Superfamily = superfamily
	}
	return l
}

// ID returns name without lineage.
func ID(name string) string {
	id, _, _ := strings.Cut(name, "#")
	return id
}

// NormalizeOrder removes uncertainty marks (i.e. "SINE?").
func NormalizeOrder(order string) string {
	order = strings.TrimRight(order, "?")
	if order == "" {
		return Unknown
	}
	return order
}

// Class returns the class of the order, Other if unknown.
func (l Lineage) Class() string {
	if c, ok := Classes[l.Order]; ok {
		return c
	}
	return "Other"
}

// Internal returns true for the internal part of LTR elements (i.e.
// "Gypsy-1-INT#LTR/Gypsy"), which is not counted as a family.
func Internal(name string) bool {
	return Parse(name).Order == "LTR" && strings.Contains(name, "INT")
}

// OrderCount is the number of families of an order present in a library
// and how many of them were called.
type OrderCount struct {
	Order  string `json:"order"`
	Class  string `json:"class"`
	Total  int    `json:"total"`
	Called int    `json:"called"`
}

// Tally counts, per order, the families of names and those whose ID is in
// called. Each ID is counted once and LTR internal parts are skipped.
// Orders are sorted by name.
func Tally(names []string, called set.Interface) []OrderCount {
	seen := set.New(set.NonThreadSafe)
	counts := make(map[string]*OrderCount)
	for _, name := range names {
		l := Parse(name)
		if seen.Has(l.ID) || Internal(name) {
			continue
		}
		seen.Add(l.ID)
		oc, ok := counts[l.Order]
		if !ok {
			oc = &OrderCount{Order: l.Order, Class: l.Class()}
			counts[l.Order] = oc
		}
		oc.Total++
		if called != nil && called.Has(l.ID) {
			oc.Called++
		}
	}
	tally := make([]OrderCount, 0, len(counts))
	for _, oc := range counts {
		tally = append(tally, *oc)
	}
	sort.Slice(tally, func(i, j int) bool { return tally[i].Order < tally[j].Order })
	return tally
}
