// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gene classifies every surviving gene alignment against the
// best-match locus's reconstructed pieces: resolving the reference gene
// and its category, locating the enclosing piece, extracting and
// translating its sequence, comparing the translated protein against the
// reference, and deciding truncation/below-threshold flags (spec.md
// §4.F).
package gene

import (
	"github.com/klebgenomics/kaptive-go/cull"
	"github.com/klebgenomics/kaptive-go/db"
	"github.com/klebgenomics/kaptive-go/internal/klog"
	"github.com/klebgenomics/kaptive-go/locus"
	"github.com/klebgenomics/kaptive-go/paf"
	"github.com/klebgenomics/kaptive-go/protein"
	"github.com/klebgenomics/kaptive-go/typing"
)

// Classify runs the full per-gene pipeline over expected (alignments
// whose query gene belongs to best_match) and other (the rest), culling
// conflicts out of other, resolving each surviving alignment's gene
// object/category/piece, translating and comparing its protein, and
// attaching it to result via AddGeneResult, wiring the neighbor chain in
// iteration order (spec.md §4.F).
func Classify(result *typing.Result, expected, other []paf.Record, seq typing.SeqFunc) {
	database := result.Database
	bestMatch := result.BestMatch

	other = cull.All(other)
	for _, a := range expected {
		other = cull.Against(a, other, cull.DefaultOverlapFraction)
	}

	previous := typing.NoNeighbour
	all := make([]paf.Record, 0, len(expected)+len(other))
	all = append(all, expected...)
	all = append(all, other...)

	pieces := locus.NewPieceIndex(len(result.PieceArena),
		func(i int) string { return result.PieceArena[i].Contig },
		func(i int) (int, int) { return result.PieceArena[i].Start, result.PieceArena[i].End },
	)

	for _, a := range all {
		gene, category, ok := resolveGene(database, bestMatch, a.Query)
		if !ok {
			klog.Warning("gene %q not found in database, skipping alignment", a.Query)
			continue
		}

		pieceIndex := locatePiece(pieces, a)
		partial := a.TargetStart <= a.QueryStart || a.TargetEnd <= a.QueryEnd ||
			(a.TargetLen-a.TargetEnd) <= (gene.Len()-a.QueryEnd)

		dna := seq(a.Target, a.TargetStart, a.TargetEnd, a.Strand)

		g := &typing.GeneResult{
			Contig: a.Target, Gene: gene, Start: a.TargetStart, End: a.TargetEnd, Strand: a.Strand,
			PieceIndex: pieceIndex, NeighbourLeft: previous, NeighbourRight: typing.NoNeighbour,
			DNASequence: dna, Partial: partial, Category: category, Phenotype: typing.Present,
		}

		compareTranslation(g, gene, category, pieceIndex)
		g.BelowThreshold = g.PercentIdentity < database.GeneThreshold

		if pieceIndex == typing.NoPiece && g.BelowThreshold {
			// Probably an unrelated homolog elsewhere in the genome.
			continue
		}
		previous = result.AddGeneResult(g)
	}
}

func resolveGene(database *db.Database, bestMatch *db.Locus, query string) (*db.Gene, typing.GeneCategory, bool) {
	if g, ok := bestMatch.Gene(query); ok {
		return g, typing.Expected, true
	}
	if g, ok := database.ExtraGene(query); ok {
		return g, typing.Extra, true
	}
	if g, ok := database.Gene(query); ok {
		return g, typing.Unexpected, true
	}
	return nil, 0, false
}

// locatePiece returns the arena index of the piece overlapping a.Target's
// [TargetStart, TargetEnd) span, or typing.NoPiece.
func locatePiece(pieces *locus.PieceIndex, a paf.Record) int {
	idx, ok := pieces.Locate(a.Target, a.TargetStart, a.TargetEnd)
	if !ok {
		return typing.NoPiece
	}
	return idx
}

// compareTranslation translates g's DNA in the correct frame, aligns it
// to gene's cached reference protein, and sets g's protein sequence,
// percent identity/coverage and phenotype (spec.md §4.F.i).
func compareTranslation(g *typing.GeneResult, gene *db.Gene, category typing.GeneCategory, pieceIndex int) {
	if len(g.DNASequence) == 0 {
		klog.Warning("no DNA sequence for %s", gene.Name)
		return
	}
	refProtein := gene.Protein()

	proteinSeq, frame, ok := protein.BestFrame(g.DNASequence)
	if !ok {
		klog.Warning("no protein sequence for %s", gene.Name)
		return
	}
	g.ProteinSequence = proteinSeq
	g.Start += frame

	if len(refProtein) == 0 {
		return
	}
	alignment := protein.Align(refProtein, proteinSeq)
	g.PercentIdentity = alignment.PercentIdentity()
	g.PercentCoverage = float64(len(proteinSeq)) / float64(len(refProtein)) * 100

	unexpectedOutsideLocus := category == typing.Unexpected && pieceIndex == typing.NoPiece
	if !g.Partial && g.PercentCoverage < 95 && !unexpectedOutsideLocus {
		g.Phenotype = typing.Truncated
	}
}
