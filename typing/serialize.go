// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typing

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/klebgenomics/kaptive-go/db"
	"github.com/klebgenomics/kaptive-go/paf"
)

// ErrUnknownLocus and ErrUnknownGene are returned by FromDoc when a
// serialized result references a locus or gene absent from the database
// (spec.md §7).
var (
	ErrUnknownLocus = errors.New("kaptive: unknown locus in serialized result")
	ErrUnknownGene  = errors.New("kaptive: unknown gene in serialized result")
)

// PieceDoc is the wire form of a LocusPiece. Start/End are strings for
// historical-compatibility with the source's JSON encoding (spec.md §6).
type PieceDoc struct {
	ID       string `json:"id"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Strand   string `json:"strand"`
	Sequence string `json:"sequence"`
}

// GeneResultDoc is the wire form of a GeneResult.
type GeneResultDoc struct {
	ID              string `json:"id"`
	Start           string `json:"start"`
	End             string `json:"end"`
	Strand          string `json:"strand"`
	DNASeq          string `json:"dna_seq"`
	ProteinSeq      string `json:"protein_seq"`
	Partial         string `json:"partial"`
	BelowThreshold  string `json:"below_threshold"`
	Phenotype       string `json:"phenotype"`
	GeneType        string `json:"gene_type"`
	PercentIdentity string `json:"percent_identity"`
	PercentCoverage string `json:"percent_coverage"`
	Gene            string `json:"gene"`
	Piece           string `json:"piece"`
	NeighbourLeft   string `json:"neighbour_left"`
	NeighbourRight  string `json:"neighbour_right"`
}

// ResultDoc is the wire form of a Result, one JSON object per line
// (spec.md §6).
type ResultDoc struct {
	SampleName      string          `json:"sample_name"`
	BestMatch       string          `json:"best_match"`
	Confidence      string          `json:"confidence"`
	Phenotype       string          `json:"phenotype"`
	Problems        string          `json:"problems"`
	PercentIdentity string          `json:"percent_identity"`
	PercentCoverage string          `json:"percent_coverage"`
	MissingGenes    []string        `json:"missing_genes"`
	Pieces          []PieceDoc      `json:"pieces"`
	ExpectedIn      []GeneResultDoc `json:"expected_genes_inside_locus"`
	UnexpectedIn    []GeneResultDoc `json:"unexpected_genes_inside_locus"`
	ExpectedOut     []GeneResultDoc `json:"expected_genes_outside_locus"`
	UnexpectedOut   []GeneResultDoc `json:"unexpected_genes_outside_locus"`
	ExtraGenes      []GeneResultDoc `json:"extra_genes"`
}

func pieceRepr(contig string, start, end int, strand paf.Strand) string {
	return fmt.Sprintf("%s:%d-%d%s", contig, start, end, strand)
}

func geneResultRepr(geneName, contig string, start, end int, strand paf.Strand) string {
	return fmt.Sprintf("%s %s:%d-%d%s", geneName, contig, start, end, strand)
}

func (p *LocusPiece) repr() string { return pieceRepr(p.Contig, p.Start, p.End, p.Strand) }

func (r *Result) geneRepr(g *GeneResult) string {
	return geneResultRepr(g.Gene.Name, g.Contig, g.Start, g.End, g.Strand)
}

func (p *LocusPiece) toDoc() PieceDoc {
	return PieceDoc{
		ID: p.Contig, Start: strconv.Itoa(p.Start), End: strconv.Itoa(p.End),
		Strand: p.Strand.String(), Sequence: p.Sequence,
	}
}

func (r *Result) geneResultToDoc(g *GeneResult) GeneResultDoc {
	pieceKey := ""
	if g.PieceIndex != NoPiece {
		pieceKey = r.PieceArena[g.PieceIndex].repr()
	}
	leftKey, rightKey := "", ""
	if g.NeighbourLeft != NoNeighbour {
		leftKey = r.geneRepr(r.Genes[g.NeighbourLeft])
	}
	if g.NeighbourRight != NoNeighbour {
		rightKey = r.geneRepr(r.Genes[g.NeighbourRight])
	}
	return GeneResultDoc{
		ID: g.Contig, Start: strconv.Itoa(g.Start), End: strconv.Itoa(g.End), Strand: g.Strand.String(),
		DNASeq: g.DNASequence, ProteinSeq: g.ProteinSequence,
		Partial: strconv.FormatBool(g.Partial), BelowThreshold: strconv.FormatBool(g.BelowThreshold),
		Phenotype: string(g.Phenotype), GeneType: g.Category.String(),
		PercentIdentity: strconv.FormatFloat(g.PercentIdentity, 'f', -1, 64),
		PercentCoverage: strconv.FormatFloat(g.PercentCoverage, 'f', -1, 64),
		Gene:            g.Gene.Name, Piece: pieceKey, NeighbourLeft: leftKey, NeighbourRight: rightKey,
	}
}

// ToDoc renders the result to its serializable wire form.
func (r *Result) ToDoc() ResultDoc {
	docsOf := func(idxs []int) []GeneResultDoc {
		docs := make([]GeneResultDoc, len(idxs))
		for i, idx := range idxs {
			docs[i] = r.geneResultToDoc(r.Genes[idx])
		}
		return docs
	}
	pieceDocs := make([]PieceDoc, len(r.Pieces))
	for i, p := range r.Pieces {
		pieceDocs[i] = p.toDoc()
	}
	return ResultDoc{
		SampleName: r.SampleName, BestMatch: r.BestMatch.Name, Confidence: r.Confidence(),
		Phenotype: r.Phenotype(), Problems: r.Problems(),
		PercentIdentity: strconv.FormatFloat(r.PercentIdentity(), 'f', -1, 64),
		PercentCoverage: strconv.FormatFloat(r.PercentCoverage(), 'f', -1, 64),
		MissingGenes:    r.MissingGenes,
		Pieces:          pieceDocs,
		ExpectedIn:      docsOf(r.ExpectedGenesInsideLocus),
		UnexpectedIn:    docsOf(r.UnexpectedGenesInsideLocus),
		ExpectedOut:     docsOf(r.ExpectedGenesOutsideLocus),
		UnexpectedOut:   docsOf(r.UnexpectedGenesOutsideLocus),
		ExtraGenes:      docsOf(r.ExtraGenesList),
	}
}

// FromDoc rehydrates a Result from its wire form (spec.md §4.H), resolving
// gene references via database.Gene then database.ExtraGene and failing
// with ErrUnknownGene if neither has it, and best_match via database.Locus
// (ErrUnknownLocus). Memoised derived fields are read directly from the
// document and never recomputed (spec.md §9).
func FromDoc(doc ResultDoc, database *db.Database) (*Result, error) {
	bestMatch, ok := database.Locus(doc.BestMatch)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocus, doc.BestMatch)
	}

	r := &Result{SampleName: doc.SampleName, Database: database, BestMatch: bestMatch, MissingGenes: doc.MissingGenes}

	pieceIndex := make(map[string]int, len(doc.Pieces))
	for _, pd := range doc.Pieces {
		start, _ := strconv.Atoi(pd.Start)
		end, _ := strconv.Atoi(pd.End)
		p := &LocusPiece{Contig: pd.ID, Start: start, End: end, Strand: strandOf(pd.Strand), Sequence: pd.Sequence}
		idx := len(r.PieceArena)
		r.PieceArena = append(r.PieceArena, p)
		r.Pieces = append(r.Pieces, p)
		pieceIndex[p.repr()] = idx
	}

	type pending struct {
		doc      GeneResultDoc
		category GeneCategory
	}
	var all []pending
	for _, gd := range doc.ExpectedIn {
		all = append(all, pending{gd, Expected})
	}
	for _, gd := range doc.UnexpectedIn {
		all = append(all, pending{gd, Unexpected})
	}
	for _, gd := range doc.ExpectedOut {
		all = append(all, pending{gd, Expected})
	}
	for _, gd := range doc.UnexpectedOut {
		all = append(all, pending{gd, Unexpected})
	}
	for _, gd := range doc.ExtraGenes {
		all = append(all, pending{gd, Extra})
	}

	byRepr := make(map[string]int, len(all))
	for _, pd := range all {
		gd := pd.doc
		gene, ok := database.Gene(gd.Gene)
		if !ok {
			gene, ok = database.ExtraGene(gd.Gene)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGene, gd.Gene)
		}
		start, _ := strconv.Atoi(gd.Start)
		end, _ := strconv.Atoi(gd.End)
		pieceIdx := NoPiece
		if gd.Piece != "" {
			if i, ok := pieceIndex[gd.Piece]; ok {
				pieceIdx = i
			}
		}
		percentIdentity, _ := strconv.ParseFloat(gd.PercentIdentity, 64)
		percentCoverage, _ := strconv.ParseFloat(gd.PercentCoverage, 64)
		g := &GeneResult{
			Contig: gd.ID, Gene: gene, Start: start, End: end, Strand: strandOf(gd.Strand),
			PieceIndex: pieceIdx, NeighbourLeft: NoNeighbour, NeighbourRight: NoNeighbour,
			DNASequence: gd.DNASeq, ProteinSequence: gd.ProteinSeq,
			Partial: gd.Partial == "True" || gd.Partial == "true",
			BelowThreshold: gd.BelowThreshold == "True" || gd.BelowThreshold == "true",
			Phenotype:       GenePhenotype(gd.Phenotype),
			Category:        pd.category,
			PercentIdentity: percentIdentity, PercentCoverage: percentCoverage,
		}
		idx := len(r.Genes)
		r.Genes = append(r.Genes, g)
		byRepr[r.geneRepr(g)] = idx

		if g.PieceIndex != NoPiece {
			r.PieceArena[g.PieceIndex].attach(idx, g.Category)
		}
		switch {
		case g.Category == Extra:
			r.ExtraGenesList = append(r.ExtraGenesList, idx)
		case g.Category == Expected && g.PieceIndex != NoPiece:
			r.ExpectedGenesInsideLocus = append(r.ExpectedGenesInsideLocus, idx)
		case g.Category == Expected:
			r.ExpectedGenesOutsideLocus = append(r.ExpectedGenesOutsideLocus, idx)
		case g.Category == Unexpected && g.PieceIndex != NoPiece:
			r.UnexpectedGenesInsideLocus = append(r.UnexpectedGenesInsideLocus, idx)
		case g.Category == Unexpected:
			r.UnexpectedGenesOutsideLocus = append(r.UnexpectedGenesOutsideLocus, idx)
		}
	}

	for i, pd := range all {
		g := r.Genes[i]
		if pd.doc.NeighbourLeft != "" {
			if j, ok := byRepr[pd.doc.NeighbourLeft]; ok {
				g.NeighbourLeft = j
			}
		}
		if pd.doc.NeighbourRight != "" {
			if j, ok := byRepr[pd.doc.NeighbourRight]; ok {
				g.NeighbourRight = j
			}
		}
	}

	percentIdentity, _ := strconv.ParseFloat(doc.PercentIdentity, 64)
	percentCoverage, _ := strconv.ParseFloat(doc.PercentCoverage, 64)
	r.SetMemoisedFields(percentIdentity, percentCoverage, doc.Phenotype, doc.Problems, doc.Confidence)
	return r, nil
}

func strandOf(s string) paf.Strand {
	switch s {
	case "+":
		return paf.StrandForward
	case "-":
		return paf.StrandReverse
	default:
		return paf.StrandUnknown
	}
}
