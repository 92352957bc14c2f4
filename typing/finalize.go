// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typing

import (
	"sort"

	"github.com/klebgenomics/kaptive-go/paf"
)

// SeqFunc extracts a contig's nucleotide substring [start,end), reverse
// complementing it if strand is '-'. The assembly package supplies the
// concrete implementation; typing stays independent of it to avoid an
// import cycle.
type SeqFunc func(contig string, start, end int, strand paf.Strand) string

// FinalizePieces computes each piece's consensus strand and extracted
// sequence, appending pieces that contain at least one expected gene to
// Pieces (spec.md §4.G "Piece finalization"). Must run after every gene
// result has been attached via AddGeneResult.
func (r *Result) FinalizePieces(seq SeqFunc) {
	for _, piece := range r.PieceArena {
		if len(piece.ExpectedGenes) == 0 {
			continue
		}
		matching := 0
		for _, idx := range piece.ExpectedGenes {
			g := r.Genes[idx]
			if g.Strand == g.Gene.Strand {
				matching++
			}
		}
		if matching*2 >= len(piece.ExpectedGenes) {
			piece.Strand = paf.StrandForward
		} else {
			piece.Strand = paf.StrandReverse
		}
		piece.Sequence = seq(piece.Contig, piece.Start, piece.End, piece.Strand)
		r.Pieces = append(r.Pieces, piece)
	}
}

// FinalizeOrdering sorts Pieces and the four in/out gene-result lists by
// gene index, and computes MissingGenes (spec.md §4.G "Final ordering").
func (r *Result) FinalizeOrdering() {
	sort.SliceStable(r.Pieces, func(i, j int) bool {
		return minGeneIndex(r, r.Pieces[i].ExpectedGenes) < minGeneIndex(r, r.Pieces[j].ExpectedGenes)
	})
	for _, list := range [][]int{
		r.ExpectedGenesInsideLocus, r.ExpectedGenesOutsideLocus,
		r.UnexpectedGenesInsideLocus, r.UnexpectedGenesOutsideLocus,
	} {
		sort.SliceStable(list, func(i, j int) bool {
			return r.Genes[list[i]].Gene.Index < r.Genes[list[j]].Gene.Index
		})
	}

	found := make(map[string]bool)
	for _, idx := range append(append([]int{}, r.ExpectedGenesInsideLocus...), r.ExpectedGenesOutsideLocus...) {
		found[r.Genes[idx].Gene.Name] = true
	}
	var missing []string
	// r.BestMatch.Genes is already ordered by Gene.Index (db.buildLocus),
	// so the filtered subset below is too.
	for _, g := range r.BestMatch.Genes {
		if !found[g.Name] {
			missing = append(missing, g.Name)
		}
	}
	r.MissingGenes = missing
}

func minGeneIndex(r *Result, idxs []int) int {
	min := -1
	for _, idx := range idxs {
		gi := r.Genes[idx].Gene.Index
		if min == -1 || gi < min {
			min = gi
		}
	}
	return min
}
