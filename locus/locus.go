// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package locus reconstructs the best-match locus as one or more
// contiguous pieces on the assembly's contigs from the locus-vs-assembly
// alignment set (spec.md §4.E).
package locus

import (
	"github.com/klebgenomics/kaptive-go/paf"
	"github.com/klebgenomics/kaptive-go/ranges"
)

// Piece is one contiguous stretch on a contig believed to belong to the
// reconstructed locus. Strand is resolved later, from the expected genes
// that land inside it (spec.md §4.G), so it is not part of this type.
type Piece struct {
	Contig string
	Start  int
	End    int
}

// Reconstruct groups alignments (the best-match locus's reference
// sequence mapped against the assembly) by contig and merges each
// contig's target ranges into pieces, up to maxSpan (the database's
// largest locus length).
func Reconstruct(alignments []paf.Record, maxSpan int) []Piece {
	var pieces []Piece
	for _, g := range paf.GroupBy(alignments, func(r paf.Record) string { return r.Target }) {
		var spans []ranges.Range
		for _, a := range g.Records {
			spans = append(spans, ranges.Range{Start: a.TargetStart, End: a.TargetEnd})
		}
		for _, r := range ranges.Merge(spans, maxSpan) {
			pieces = append(pieces, Piece{Contig: g.Key, Start: r.Start, End: r.End})
		}
	}
	return pieces
}

// BestPerGene picks, for each gene query group in alignments, the single
// alignment with the greatest matching-base count. Used to map the
// extra-loci gene catalog against the assembly when the best-match locus
// declares "Extra…" genes in a phenotype set (spec.md §4.E).
func BestPerGene(alignments []paf.Record) []paf.Record {
	var best []paf.Record
	for _, g := range paf.GroupBy(alignments, func(r paf.Record) string { return r.Query }) {
		b := g.Records[0]
		for _, r := range g.Records[1:] {
			if r.MatchLen > b.MatchLen {
				b = r
			}
		}
		best = append(best, b)
	}
	return best
}
