// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package typing holds the result of running the typing pipeline against
// one assembly: the reconstructed locus pieces, the per-gene evidence
// attached to them, and the memoised summary verdict (spec.md §3, §4.G,
// §4.H). A Result owns every LocusPiece and GeneResult it references; the
// doubly-linked neighbor chain between gene results is represented as
// indices into the Result's gene arena rather than pointers, so the chain
// can be rehydrated by key without re-threading pointer cycles (spec.md
// §9's arena design note).
package typing

import (
	"fmt"

	"github.com/klebgenomics/kaptive-go/db"
	"github.com/klebgenomics/kaptive-go/paf"
)

// GeneCategory classifies a gene result relative to the best-match locus.
type GeneCategory int

const (
	Expected GeneCategory = iota
	Unexpected
	Extra
)

// String renders the category the way the serialized result's gene_type
// field spells it.
func (c GeneCategory) String() string {
	switch c {
	case Expected:
		return "expected_genes"
	case Unexpected:
		return "unexpected_genes"
	case Extra:
		return "extra_genes"
	default:
		return "unknown"
	}
}

// GenePhenotype is the per-gene presence verdict.
type GenePhenotype string

const (
	Present   GenePhenotype = "present"
	Truncated GenePhenotype = "truncated"
)

// NoNeighbour and NoPiece are the sentinel arena/piece indices meaning
// "absent".
const (
	NoNeighbour = -1
	NoPiece     = -1
)

// GeneResult is the evidence for one surviving gene alignment: its
// reference Gene, its location, its extracted sequence, its translated
// and compared protein, and its place in the locus-reconstruction
// bookkeeping (piece membership, left/right neighbors).
type GeneResult struct {
	Contig string
	Gene   *db.Gene

	Start, End int
	Strand     paf.Strand

	// PieceIndex indexes into Result.PieceArena, or NoPiece if this gene
	// result lies outside the reconstructed locus.
	PieceIndex int

	// NeighbourLeft/NeighbourRight index into the owning Result's gene
	// arena (Result.Genes), or NoNeighbour.
	NeighbourLeft  int
	NeighbourRight int

	DNASequence     string
	ProteinSequence string

	Partial        bool
	BelowThreshold bool
	Phenotype      GenePhenotype
	Category       GeneCategory

	PercentIdentity float64
	PercentCoverage float64
}

// Len reports the reference-contig span of the gene result.
func (g *GeneResult) Len() int { return g.End - g.Start }

// String renders the per-gene detail cell used by the TSV report:
// "<gene name>,<identity>%,<coverage>%[,partial][,truncated][,below_id_threshold]".
func (g *GeneResult) String() string {
	s := fmt.Sprintf("%s,%.2f%%,%.2f%%", g.Gene.Name, g.PercentIdentity, g.PercentCoverage)
	if g.Partial {
		s += ",partial"
	}
	if g.Phenotype == Truncated {
		s += ",truncated"
	}
	if g.BelowThreshold {
		s += ",below_id_threshold"
	}
	return s
}

// LocusPiece is one contiguous stretch on a contig attributed to the
// reconstructed locus, with the gene results (by arena index) that land
// inside it, split by category.
type LocusPiece struct {
	Contig string
	Start  int
	End    int
	Strand paf.Strand // unknown until finalized from its expected genes
	Sequence string

	ExpectedGenes   []int
	UnexpectedGenes []int
	ExtraGenes      []int
}

// Len reports the span of the piece.
func (p *LocusPiece) Len() int { return p.End - p.Start }

// expand grows the piece's extent to include a newly attached gene
// result's interval.
func (p *LocusPiece) expand(g *GeneResult) {
	if g.Start < p.Start {
		p.Start = g.Start
	}
	if g.End > p.End {
		p.End = g.End
	}
}

// attach appends a gene-result arena index to the category list matching
// category.
func (p *LocusPiece) attach(idx int, category GeneCategory) {
	switch category {
	case Expected:
		p.ExpectedGenes = append(p.ExpectedGenes, idx)
	case Unexpected:
		p.UnexpectedGenes = append(p.UnexpectedGenes, idx)
	case Extra:
		p.ExtraGenes = append(p.ExtraGenes, idx)
	}
}

// Result is the outcome of typing one assembly against a database.
type Result struct {
	SampleName string
	Database   *db.Database
	BestMatch  *db.Locus
	ZScore     float64

	// PieceArena holds every candidate piece built during locus
	// reconstruction, at stable indices that GeneResult.PieceIndex
	// refers to. Pieces is the finalized, filtered, sorted projection of
	// it used for rendering (spec.md §4.G): a piece with no expected
	// genes is dropped from Pieces but stays in PieceArena, so gene
	// results that reference it by index are unaffected, matching the
	// source's behavior of keeping a gene result's piece reference even
	// when that piece never makes it into the rendered piece list.
	PieceArena []*LocusPiece
	Pieces     []*LocusPiece

	// Genes is the arena owning every gene result attached to this
	// Result; NeighbourLeft/NeighbourRight and the pieces' category lists
	// index into it (GeneResult.PieceIndex indexes PieceArena instead).
	Genes []*GeneResult

	ExpectedGenesInsideLocus    []int
	ExpectedGenesOutsideLocus   []int
	UnexpectedGenesInsideLocus  []int
	UnexpectedGenesOutsideLocus []int
	ExtraGenesList              []int

	MissingGenes []string

	// Memoised derived fields. nil/empty means "not yet computed"; on
	// rehydration (§4.H) these are set directly from the serialized form
	// and never recomputed.
	percentIdentity *float64
	percentCoverage *float64
	phenotype       *string
	problems        *string
	confidence      string
}

// Len reports the total reconstructed-locus span across all pieces.
func (r *Result) Len() int {
	total := 0
	for _, p := range r.Pieces {
		total += p.Len()
	}
	return total
}

// Gene returns the gene result at arena index idx, or nil if idx is
// NoNeighbour.
func (r *Result) Gene(idx int) *GeneResult {
	if idx == NoNeighbour {
		return nil
	}
	return r.Genes[idx]
}

// Piece returns the piece at arena index idx, or nil if idx is NoPiece.
func (r *Result) Piece(idx int) *LocusPiece {
	if idx == NoPiece {
		return nil
	}
	return r.PieceArena[idx]
}

// All iterates every gene result in the canonical order: expected in,
// unexpected in, expected out, unexpected out, extra — matching
// TypingResult.__iter__.
func (r *Result) All() []*GeneResult {
	var all []*GeneResult
	for _, group := range [][]int{
		r.ExpectedGenesInsideLocus, r.UnexpectedGenesInsideLocus,
		r.ExpectedGenesOutsideLocus, r.UnexpectedGenesOutsideLocus,
		r.ExtraGenesList,
	} {
		for _, idx := range group {
			all = append(all, r.Genes[idx])
		}
	}
	return all
}
