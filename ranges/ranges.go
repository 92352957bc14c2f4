// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ranges provides the half-open interval arithmetic shared by the
// overlap culler and the locus reconstructor: overlap length and a
// max-span-bounded merge.
package ranges

import "sort"

// Range is a half-open interval [Start, End).
type Range struct {
	Start, End int
}

// Len returns the span of r.
func (r Range) Len() int { return r.End - r.Start }

// Overlap returns the length of the overlap between a and b, 0 if they
// don't overlap.
func Overlap(a, b Range) int {
	o := min(a.End, b.End) - max(a.Start, b.Start)
	if o < 0 {
		return 0
	}
	return o
}

// Merge sorts intervals by start and merges each into a running
// accumulator while the next interval's start falls within (or touches)
// the accumulator's end AND the resulting span does not exceed maxSpan.
// Once either condition fails, the accumulator is emitted and a new one
// starts. The result is ordered by start, and every interval formed by a
// merge has span <= maxSpan. Intervals that overlap but were not merged
// because of maxSpan are emitted as separate, overlapping intervals, and
// an input interval already longer than maxSpan is emitted unchanged.
func Merge(intervals []Range, maxSpan int) []Range {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]Range, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var out []Range
	acc := sorted[0]
	for _, next := range sorted[1:] {
		merged := Range{Start: acc.Start, End: max(acc.End, next.End)}
		if next.Start <= acc.End && merged.Len() <= maxSpan {
			acc = merged
			continue
		}
		out = append(out, acc)
		acc = next
	}
	out = append(out, acc)
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
