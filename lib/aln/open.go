//
// Copyright (C) 2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package aln

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

const (
	FormatOut = iota
	FormatSAM
	FormatBAM
)

// Input stores the path to an alignment file and its format.
type Input struct {
	Path   string
	Format int
}

// DetectFormat guesses the format from the file extension, ignoring compression extensions.
func DetectFormat(path string) int {
	p := strings.ToLower(path)
	for _, ext := range []string{".gz", ".zst", ".lz4"} {
		p = strings.TrimSuffix(p, ext)
	}
	switch filepath.Ext(p) {
	case ".sam":
		return FormatSAM
	case ".bam":
		return FormatBAM
	}
	return FormatOut
}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() (err error) {
	for i := len(m.closers) - 1; i >= 0; i-- {
		if cerr := m.closers[i].Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return
}

// Open opens path (stdin with "-") and decompresses it according to its
// extension: ".gz", ".zst" or ".lz4".
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &multiCloser{Reader: gr, closers: []io.Closer{f, gr}}, nil
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		zrc := zr.IOReadCloser()
		return &multiCloser{Reader: zrc, closers: []io.Closer{f, zrc}}, nil
	case ".lz4":
		return &multiCloser{Reader: lz4.NewReader(f), closers: []io.Closer{f}}, nil
	}
	return f, nil
}

// OpenSource opens an alignment file. BAM files are read with nWorker decompressing goroutines.
func OpenSource(in Input, layout Layout, nWorker int) (Source, io.Closer, error) {
	switch in.Format {
	case FormatBAM:
		rc, err := Open(in.Path)
		if err != nil {
			return nil, nil, err
		}
		br, err := bam.NewReader(rc, nWorker)
		if err != nil {
			rc.Close()
			return nil, nil, fmt.Errorf("%s: %w", in.Path, err)
		}
		return NewSAMReader(br), &multiCloser{closers: []io.Closer{rc, br}}, nil
	case FormatSAM:
		rc, err := Open(in.Path)
		if err != nil {
			return nil, nil, err
		}
		sr, err := sam.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, nil, fmt.Errorf("%s: %w", in.Path, err)
		}
		return NewSAMReader(sr), rc, nil
	default:
		rc, err := Open(in.Path)
		if err != nil {
			return nil, nil, err
		}
		return NewReader(rc, layout), rc, nil
	}
}
