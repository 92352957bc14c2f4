// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package locus

import "github.com/biogo/store/interval"

// PieceIndex answers "which reconstructed piece overlaps this alignment"
// in O(log n) per contig, one github.com/biogo/store/interval.IntTree per
// contig. This is the same package the teacher's cmd/cull uses to find
// GFF features contained inside a higher-scoring feature; here the query
// is containment-by-overlap against a gene alignment's target span rather
// than feature-vs-feature containment.
type PieceIndex struct {
	trees map[string]*interval.IntTree
}

// pieceSpan is the interval.IntInterface value stored in the tree: idx is
// the caller's own arena index, threaded through ID/Range/Overlap so Get
// can report back which piece matched.
type pieceSpan struct {
	idx        int
	start, end int
}

func (s pieceSpan) ID() uintptr                     { return uintptr(s.idx) }
func (s pieceSpan) Range() interval.IntRange        { return interval.IntRange{Start: s.start, End: s.end} }
func (s pieceSpan) Overlap(b interval.IntRange) bool { return s.start < b.End && b.Start < s.end }

// NewPieceIndex builds a PieceIndex over n pieces. contigOf and spanOf
// abstract over the caller's own piece slice (typing.Result.PieceArena
// entries, or this package's own Piece values) so this package need not
// import typing.
func NewPieceIndex(n int, contigOf func(i int) string, spanOf func(i int) (start, end int)) *PieceIndex {
	idx := &PieceIndex{trees: make(map[string]*interval.IntTree)}
	for i := 0; i < n; i++ {
		contig := contigOf(i)
		t, ok := idx.trees[contig]
		if !ok {
			t = &interval.IntTree{}
			idx.trees[contig] = t
		}
		start, end := spanOf(i)
		if err := t.Insert(pieceSpan{idx: i, start: start, end: end}, true); err != nil {
			continue
		}
	}
	for _, t := range idx.trees {
		t.AdjustRanges()
	}
	return idx
}

// Locate returns the arena index of a piece on contig with strictly
// positive overlap against [start, end), or ok=false if none matches.
// Pieces on one contig can overlap each other (Merge emits overlapping
// intervals when maxSpan stops a merge), so several may match; the lowest
// index is returned, to keep the result deterministic.
func (p *PieceIndex) Locate(contig string, start, end int) (index int, ok bool) {
	t, found := p.trees[contig]
	if !found {
		return 0, false
	}
	hits := t.Get(pieceSpan{start: start, end: end})
	if len(hits) == 0 {
		return 0, false
	}
	best := hits[0].(pieceSpan).idx
	for _, h := range hits[1:] {
		if i := h.(pieceSpan).idx; i < best {
			best = i
		}
	}
	return best, true
}
