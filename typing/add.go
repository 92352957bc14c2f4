// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typing

// AddGeneResult appends g to the result's gene arena and files it into the
// category list its Category/PieceIndex dictate, linking the neighbor
// chain along the way (spec.md §4.G "Attachment"). g.NeighbourLeft must
// already be set to the arena index of the previously accepted gene
// result, or NoNeighbour if this is the first. Returns g's arena index.
func (r *Result) AddGeneResult(g *GeneResult) int {
	idx := len(r.Genes)
	r.Genes = append(r.Genes, g)

	if g.NeighbourLeft != NoNeighbour {
		r.Genes[g.NeighbourLeft].NeighbourRight = idx
	}

	if g.PieceIndex != NoPiece {
		piece := r.PieceArena[g.PieceIndex]
		piece.expand(g)
		piece.attach(idx, g.Category)
		switch g.Category {
		case Expected:
			r.ExpectedGenesInsideLocus = append(r.ExpectedGenesInsideLocus, idx)
		case Unexpected:
			r.UnexpectedGenesInsideLocus = append(r.UnexpectedGenesInsideLocus, idx)
		case Extra:
			r.ExtraGenesList = append(r.ExtraGenesList, idx)
		}
		return idx
	}

	switch g.Category {
	case Expected:
		r.ExpectedGenesOutsideLocus = append(r.ExpectedGenesOutsideLocus, idx)
	case Unexpected:
		r.UnexpectedGenesOutsideLocus = append(r.UnexpectedGenesOutsideLocus, idx)
	case Extra:
		r.ExtraGenesList = append(r.ExtraGenesList, idx)
	}
	return idx
}
