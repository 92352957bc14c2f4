// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package score aggregates per-gene alignments into per-locus scores and
// picks the best-match locus (spec.md §4.D), the step between mapping the
// database's gene catalog against an assembly (paf) and reconstructing the
// winning locus (locus).
package score

import (
	"errors"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/klebgenomics/kaptive-go/db"
	"github.com/klebgenomics/kaptive-go/internal/klog"
	"github.com/klebgenomics/kaptive-go/paf"
)

// ErrNoGeneAlignments is returned when no gene alignment group ever cleared
// MinCoverage; the pipeline reports nothing for that assembly.
var ErrNoGeneAlignments = errors.New("kaptive: no gene alignment met the minimum coverage threshold")

// DefaultMinCoverage is the default percent-coverage floor.
const DefaultMinCoverage = 50.0

// Options parameterizes best-match selection.
type Options struct {
	// MinCoverage is checked as q_len / blen * 100 >= MinCoverage. This is
	// the source formula, not the conventional blen/q_len ratio: for a
	// gapless full-length hit blen ≈ q_len so the ratio is ≈100%, but for
	// a partial hit blen < q_len so the ratio exceeds 100%, admitting more
	// hits than a conventional coverage test would. Reproduced exactly
	// (spec.md §9).
	MinCoverage float64
}

// Result is the outcome of best-match selection: the winning locus, its
// z-score among all loci's weighted scores, and the pool of every
// alignment belonging to a gene group whose best alignment cleared
// MinCoverage, across every locus — not just the winner's. The gene
// classifier splits this pool into "expected" (matches best_match) and
// "other" to populate unexpected/outside-locus categories.
type Result struct {
	BestMatch  *db.Locus
	ZScore     float64
	Alignments []paf.Record
}

// Select scores every locus in database from the per-gene alignment groups
// in alignments (the result of mapping database.AllGenesFASTA against an
// assembly), weights each locus's score by its proportion of genes found,
// z-scores the weighted vector, and picks the highest-scoring locus.
func Select(database *db.Database, alignments []paf.Record, opts Options) (*Result, error) {
	minCov := opts.MinCoverage
	if minCov == 0 {
		minCov = DefaultMinCoverage
	}

	n := database.Len()
	scores := make([]float64, n)
	found := make([]float64, n)
	expected := make([]float64, n)
	index := make(map[string]int, n)
	for i, l := range database.Loci {
		index[l.Name] = i
		expected[i] = float64(len(l.Genes))
	}

	var pool []paf.Record
	for _, g := range paf.GroupBy(alignments, func(r paf.Record) string { return r.Query }) {
		best := bestByMatchLen(g.Records)
		if best.BlockLen == 0 {
			continue
		}
		if float64(best.QueryLen)/float64(best.BlockLen)*100 < minCov {
			continue
		}
		i, ok := index[locusNameOf(best.Query)]
		if !ok {
			continue
		}
		scores[i] += float64(best.MatchLen) / float64(best.BlockLen)
		found[i]++
		pool = append(pool, g.Records...)
	}

	if len(pool) == 0 {
		klog.Warning("no gene alignments sufficient for typing")
		return nil, ErrNoGeneAlignments
	}

	for i := range scores {
		if expected[i] > 0 {
			scores[i] *= found[i] / expected[i]
		} else {
			scores[i] = 0
		}
	}

	mean, stddev := stat.PopMeanStdDev(scores, nil)
	zscores := make([]float64, n)
	if stddev != 0 {
		for i, s := range scores {
			zscores[i] = (s - mean) / stddev
		}
	}

	best := argmax(scores)
	return &Result{
		BestMatch:  database.Loci[best],
		ZScore:     zscores[best],
		Alignments: pool,
	}, nil
}

// bestByMatchLen returns the alignment in recs with the greatest MatchLen,
// the first such record breaking ties (stable on input order).
func bestByMatchLen(recs []paf.Record) paf.Record {
	best := recs[0]
	for _, r := range recs[1:] {
		if r.MatchLen > best.MatchLen {
			best = r
		}
	}
	return best
}

// locusNameOf extracts the locus name from a gene query name, the prefix
// before the first underscore.
func locusNameOf(gene string) string {
	if i := strings.IndexByte(gene, '_'); i >= 0 {
		return gene[:i]
	}
	return gene
}

// argmax returns the index of the greatest value in xs, the first such
// index breaking ties — i.e. database iteration (insertion) order.
func argmax(xs []float64) int {
	best := 0
	for i, x := range xs {
		if x > xs[best] {
			best = i
		}
	}
	return best
}
