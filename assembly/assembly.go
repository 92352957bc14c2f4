// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assembly loads a query assembly FASTA and provides indexed,
// random-access extraction of contig ranges, the input the typing
// pipeline (spec.md §3, §5) reads once per run and never mutates.
package assembly

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/hts/fai"

	"github.com/klebgenomics/kaptive-go/internal/klog"
	"github.com/klebgenomics/kaptive-go/paf"
	"github.com/klebgenomics/kaptive-go/protein"
)

// ErrEmptyAssembly is returned by Load when the FASTA input has no
// contigs, fatal for that assembly only (spec.md §7).
var ErrEmptyAssembly = errors.New("kaptive: assembly has no contigs")

// Contig is one sequence entry in an assembly, as recorded by its fai
// index: a name and a length, not the sequence itself (ranges are pulled
// from disk on demand by Seq).
type Contig struct {
	Name   string
	Length int
}

// Assembly is a query genome: a name derived from its file path plus
// indexed, random access to its contigs. Built once at pipeline start and
// read-only thereafter (spec.md §5).
type Assembly struct {
	Name    string
	Path    string
	Contigs []Contig

	file *fai.File
}

// Load reads the FASTA file at path (optionally gzip-compressed,
// indicated by a ".gz" suffix) and builds an in-memory fai index over it
// for random-access range extraction, the same indexed-FASTA idiom the
// teacher uses for its BLAST query lookups (cmd/ins/main.go's
// fai.NewIndex / fai.NewFile / SeqRange).
func Load(path string) (*Assembly, error) {
	raw, err := readAll(path)
	if err != nil {
		return nil, fmt.Errorf("kaptive: reading assembly %s: %w", path, err)
	}

	idx, err := fai.NewIndex(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("kaptive: indexing assembly %s: %w", path, err)
	}
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyAssembly, path)
	}

	contigs := make([]Contig, len(idx))
	for i, rec := range idx {
		contigs[i] = Contig{Name: rec.Name, Length: rec.Length}
	}

	return &Assembly{
		Name:    deriveName(path),
		Path:    path,
		Contigs: contigs,
		file:    fai.NewFile(bytes.NewReader(raw), idx),
	}, nil
}

// readAll returns the fully decompressed contents of path.
func readAll(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(r)
}

// deriveName strips a trailing ".gz" then the final remaining extension
// from path's base name, e.g. "sample1.fasta.gz" -> "sample1" (spec.md
// §3's Assembly type, §6).
func deriveName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	if i := strings.LastIndex(base, "."); i >= 0 {
		base = base[:i]
	}
	return base
}

// Seq extracts the [start, end) range of contig ctg, reverse complementing
// it when strand is paf.StrandReverse. It returns the empty string,
// logging a warning, if ctg is unknown or the range cannot be read — a
// per-gene recoverable failure (spec.md §7's NoDna), not one that should
// abort the run. Seq satisfies typing.SeqFunc.
func (a *Assembly) Seq(ctg string, start, end int, strand paf.Strand) string {
	r, err := a.file.SeqRange(ctg, start, end)
	if err != nil {
		klog.Warning("extracting %s:%d-%d from %s: %v", ctg, start, end, a.Name, err)
		return ""
	}
	b, err := io.ReadAll(r)
	if err != nil {
		klog.Warning("reading %s:%d-%d from %s: %v", ctg, start, end, a.Name, err)
		return ""
	}
	seq := string(b)
	if strand == paf.StrandReverse {
		seq = protein.ReverseComplement(seq)
	}
	return seq
}
