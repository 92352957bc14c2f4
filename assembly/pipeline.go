// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assembly

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/klebgenomics/kaptive-go/db"
	"github.com/klebgenomics/kaptive-go/gene"
	"github.com/klebgenomics/kaptive-go/internal/klog"
	"github.com/klebgenomics/kaptive-go/locus"
	"github.com/klebgenomics/kaptive-go/paf"
	"github.com/klebgenomics/kaptive-go/score"
	"github.com/klebgenomics/kaptive-go/typing"
)

// PipelineOptions parameterizes one typing run (spec.md §4.D, §4.G).
type PipelineOptions struct {
	Threads              int     // worker threads passed through to the aligner
	MinCoverage          float64 // score.Options.MinCoverage
	AllowBelowThreshold  bool    // GetConfidence's allow_below_threshold
	MaxOtherGenes        int     // GetConfidence's max_other_genes
	PercentExpectedGenes float64 // GetConfidence's percent_expected_genes
}

// DefaultPipelineOptions returns the defaults the source CLI ships with.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Threads:              1,
		MinCoverage:          score.DefaultMinCoverage,
		AllowBelowThreshold:  false,
		MaxOtherGenes:        1,
		PercentExpectedGenes: 50,
	}
}

// Type runs the full typing pipeline against one already-loaded assembly:
// score gene alignments to pick a best-match locus, reconstruct that
// locus's pieces, classify every surviving gene hit, and finalize the
// result (spec.md §4, data-flow diagram in §1). It returns
// score.ErrNoGeneAlignments unchanged when no gene cleared min_cov, for
// the caller to treat as "no result for this assembly" rather than fatal.
func Type(ctx context.Context, a *Assembly, database *db.Database, opts PipelineOptions) (*typing.Result, error) {
	geneHits := Align(ctx, a.Path, opts.Threads, database.AllGenesFASTA())

	sel, err := score.Select(database, geneHits, score.Options{MinCoverage: opts.MinCoverage})
	if err != nil {
		return nil, err
	}
	bestMatch := sel.BestMatch

	result := &typing.Result{SampleName: a.Name, Database: database, BestMatch: bestMatch, ZScore: sel.ZScore}

	locusHits := Align(ctx, a.Path, opts.Threads, bestMatch.FASTA())
	maxSpan := database.LargestLocus.Len()
	for _, p := range locus.Reconstruct(locusHits, maxSpan) {
		result.PieceArena = append(result.PieceArena, &typing.LocusPiece{Contig: p.Contig, Start: p.Start, End: p.End})
	}

	other := splitOther(sel.Alignments, bestMatch)
	if bestMatch.HasExtraGenePhenotype() {
		extraHits := Align(ctx, a.Path, opts.Threads, database.AllExtraGenesFASTA())
		other = append(other, locus.BestPerGene(extraHits)...)
	}

	gene.Classify(result, splitExpected(sel.Alignments, bestMatch), other, a.Seq)

	result.FinalizePieces(a.Seq)
	result.FinalizeOrdering()
	result.GetConfidence(opts.AllowBelowThreshold, opts.MaxOtherGenes, opts.PercentExpectedGenes)

	return result, nil
}

// splitExpected returns the alignments from pool whose query gene belongs
// to bestMatch, in their original relative order (spec.md §4.F's
// "expected" input).
func splitExpected(pool []paf.Record, bestMatch *db.Locus) []paf.Record {
	var out []paf.Record
	for _, a := range pool {
		if _, ok := bestMatch.Gene(a.Query); ok {
			out = append(out, a)
		}
	}
	return out
}

// splitOther is splitExpected's complement: the rest of pool (spec.md
// §4.F's "other" input).
func splitOther(pool []paf.Record, bestMatch *db.Locus) []paf.Record {
	var out []paf.Record
	for _, a := range pool {
		if _, ok := bestMatch.Gene(a.Query); !ok {
			out = append(out, a)
		}
	}
	return out
}

// TypeAll loads and types every assembly path concurrently, one goroutine
// per assembly, sharing database by read-only reference (spec.md §5). A
// per-assembly failure (a missing file, an empty assembly, or no gene
// alignment clearing min_cov) is logged and that assembly's slot is left
// nil; it never aborts the other assemblies. The returned slice is
// index-aligned with paths.
func TypeAll(ctx context.Context, paths []string, database *db.Database, opts PipelineOptions) ([]*typing.Result, error) {
	results := make([]*typing.Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			a, err := Load(path)
			if err != nil {
				klog.Warning("%s: %v", path, err)
				return nil
			}
			r, err := Type(ctx, a, database, opts)
			if err != nil {
				if errors.Is(err, score.ErrNoGeneAlignments) {
					klog.Warning("%s: %v", a.Name, err)
					return nil
				}
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
