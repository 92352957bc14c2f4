// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/klebgenomics/kaptive-go/internal/klog"
)

// ErrUnknownFormat is returned by Format for any format_spec other than
// "fna", "ffn", or "faa". The tabular/JSON reports (spec.md §6) are a
// front-end concern (cmd/kaptive's tsv.go, which reads the Result directly,
// and jsonl.go, which marshals ToDoc); this
// method only covers the FASTA export paths the source's
// TypingResult.format also supports alongside them.
var ErrUnknownFormat = errors.New("kaptive: unknown format specifier")

// Format renders the result as a FASTA blob: "fna" for the reconstructed
// locus's own nucleotide pieces, "ffn"/"faa" for every gene result's
// nucleotide or translated-protein sequence (the supplemented FASTA
// export path). A gene or piece with no extracted sequence is skipped
// with a warning rather than emitting an empty record.
func (r *Result) Format(formatSpec string) (string, error) {
	switch formatSpec {
	case "fna":
		var b strings.Builder
		for _, p := range r.Pieces {
			if p.Sequence == "" {
				klog.Warning("no sequence for piece %s", p.repr())
				continue
			}
			fmt.Fprintf(&b, ">%s|%s\n%s\n", r.SampleName, p.repr(), p.Sequence)
		}
		return b.String(), nil
	case "ffn":
		return r.formatGenes(func(g *GeneResult) string { return g.DNASequence }), nil
	case "faa":
		return r.formatGenes(func(g *GeneResult) string { return g.ProteinSequence }), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, formatSpec)
	}
}

func (r *Result) formatGenes(seqOf func(*GeneResult) string) string {
	var b strings.Builder
	for _, g := range r.All() {
		seq := seqOf(g)
		if seq == "" {
			klog.Warning("no sequence for %s", r.geneRepr(g))
			continue
		}
		fmt.Fprintf(&b, ">%s %s|%s\n%s\n", g.Gene.Name, r.SampleName, pieceRepr(g.Contig, g.Start, g.End, g.Strand), seq)
	}
	return b.String()
}
