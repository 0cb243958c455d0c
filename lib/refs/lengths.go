//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package refs reads tabulated side tables about curated references.
package refs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadLengths parses a two column tabulated file with name and length of references.
func ReadLengths(r io.Reader) (map[string]int, error) {
	lengths := make(map[string]int)
	tscanner := bufio.NewScanner(r)
	var iline int
	for tscanner.Scan() {
		iline++
		if len(strings.TrimSpace(tscanner.Text())) == 0 {
			continue
		}
		fields := strings.Split(tscanner.Text(), "\t")
		if len(fields) < 2 {
			return lengths, fmt.Errorf("line %d: expected name and length", iline)
		}
		length, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return lengths, fmt.Errorf("line %d: %w", iline, err)
		}
		lengths[fields[0]] = length
	}
	if err := tscanner.Err(); err != nil {
		return lengths, err
	}
	return lengths, nil
}

// OpenLengths reads the reference lengths at tpath.
func OpenLengths(tpath string) (map[string]int, error) {
	tfos, err := os.Open(tpath)
	if err != nil {
		return nil, err
	}
	defer tfos.Close()
	return ReadLengths(tfos)
}
