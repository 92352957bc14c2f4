// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cull resolves conflicting alignments down to a non-conflicting
// subset. It performs the same overlap-pruning job the teacher's cmd/cull
// does with github.com/biogo/store/interval (there, GFF features
// contained one inside another); here the predicate is an
// overlap-fraction test against PAF alignment intervals rather than
// strict containment, so it is expressed directly rather than through an
// interval tree. See locus.PieceIndex for this codebase's own
// containment-style use of that tree, finding which reconstructed piece a
// hit falls in.
package cull

import (
	"sort"

	"github.com/klebgenomics/kaptive-go/paf"
	"github.com/klebgenomics/kaptive-go/ranges"
)

// DefaultOverlapFraction is the overlap-fraction threshold used when a
// caller doesn't supply one explicitly.
const DefaultOverlapFraction = 0.1

// Against yields the subset of candidates that do not conflict with anchor:
// either they land on a different contig, or their overlap with anchor, as
// a fraction of their own block length, is below overlapFraction.
func Against(anchor paf.Record, candidates []paf.Record, overlapFraction float64) []paf.Record {
	var kept []paf.Record
	for _, c := range candidates {
		if !conflicts(anchor, c, overlapFraction) {
			kept = append(kept, c)
		}
	}
	return kept
}

func conflicts(anchor, c paf.Record, overlapFraction float64) bool {
	if c.Target != anchor.Target {
		return false
	}
	if c.BlockLen == 0 {
		return false
	}
	o := ranges.Overlap(
		ranges.Range{Start: c.TargetStart, End: c.TargetEnd},
		ranges.Range{Start: anchor.TargetStart, End: anchor.TargetEnd},
	)
	return float64(o)/float64(c.BlockLen) >= overlapFraction
}

// All sorts candidates by MatchLen descending, then repeatedly takes the
// highest-scoring remaining alignment as the next anchor, keeps it, and
// drops every remaining alignment that conflicts with THAT anchor (not
// with the full kept set so far) before moving on. Ties in MatchLen are
// broken by input order (a stable sort).
func All(candidates []paf.Record) []paf.Record {
	if len(candidates) == 0 {
		return nil
	}
	remaining := make([]paf.Record, len(candidates))
	copy(remaining, candidates)
	sort.SliceStable(remaining, func(i, j int) bool { return remaining[i].MatchLen > remaining[j].MatchLen })

	var kept []paf.Record
	for len(remaining) > 0 {
		anchor := remaining[0]
		kept = append(kept, anchor)
		remaining = Against(anchor, remaining[1:], DefaultOverlapFraction)
	}
	return kept
}
