// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klebgenomics/kaptive-go/typing"
)

// tsvHeader is the 20-column header row: the 19 report columns of spec.md
// §6 (with "Phenotype" third) plus a trailing "Zscore" column taken from
// the source's own TSV header.
var tsvHeader = []string{
	"Assembly", "Best match locus", "Phenotype", "Confidence", "Problems", "Identity", "Coverage",
	"Length discrepancy", "Expected genes in locus", "Expected genes in locus, details",
	"Missing expected genes", "Other genes in locus", "Other genes in locus, details",
	"Expected genes outside locus", "Expected genes outside locus, details", "Other genes outside locus",
	"Other genes outside locus, details", "Truncated genes, details", "Extra genes", "Zscore",
}

func writeTSVHeader(w io.Writer) {
	fmt.Fprintln(w, strings.Join(tsvHeader, "\t"))
}

// writeTSVRow renders one typing result as a tab-separated row matching
// tsvHeader's column order.
func writeTSVRow(w io.Writer, r *typing.Result) {
	expectedTotal := len(r.BestMatch.Genes)

	lengthDiscrepancy := "n/a"
	if len(r.Pieces) == 1 {
		lengthDiscrepancy = fmt.Sprintf("%d bp", r.Len()-r.BestMatch.Len())
	}

	fields := []string{
		r.SampleName,
		r.BestMatch.Name,
		r.Phenotype(),
		r.Confidence(),
		r.Problems(),
		fmt.Sprintf("%.2f%%", r.PercentIdentity()),
		fmt.Sprintf("%.2f%%", r.PercentCoverage()),
		lengthDiscrepancy,
		countRatio(uniqueGeneNames(r, r.ExpectedGenesInsideLocus), expectedTotal),
		joinGeneDetails(r, r.ExpectedGenesInsideLocus),
		strings.Join(r.MissingGenes, ";"),
		strconv.Itoa(len(r.UnexpectedGenesInsideLocus)),
		joinGeneDetails(r, r.UnexpectedGenesInsideLocus),
		countRatio(len(r.ExpectedGenesOutsideLocus), expectedTotal),
		joinGeneDetails(r, r.ExpectedGenesOutsideLocus),
		strconv.Itoa(len(r.UnexpectedGenesOutsideLocus)),
		joinGeneDetails(r, r.UnexpectedGenesOutsideLocus),
		truncatedDetails(r),
		joinGeneDetails(r, r.ExtraGenesList),
		strconv.FormatFloat(r.ZScore, 'f', -1, 64),
	}
	fmt.Fprintln(w, strings.Join(fields, "\t"))
}

func countRatio(n, total int) string {
	pct := 0.0
	if total > 0 {
		pct = 100 * float64(n) / float64(total)
	}
	return fmt.Sprintf("%d / %d (%.2f%%)", n, total, pct)
}

func joinGeneDetails(r *typing.Result, idxs []int) string {
	details := make([]string, len(idxs))
	for i, idx := range idxs {
		details[i] = r.Genes[idx].String()
	}
	return strings.Join(details, ";")
}

// uniqueGeneNames counts the distinct biological gene names (not full gene
// ids, which may repeat across paralogs) among the gene results at idxs.
func uniqueGeneNames(r *typing.Result, idxs []int) int {
	seen := make(map[string]bool, len(idxs))
	for _, idx := range idxs {
		seen[r.Genes[idx].Gene.GeneName] = true
	}
	return len(seen)
}

func truncatedDetails(r *typing.Result) string {
	var details []string
	for _, g := range r.All() {
		if g.Phenotype == typing.Truncated {
			details = append(details, g.String())
		}
	}
	return strings.Join(details, ";")
}
