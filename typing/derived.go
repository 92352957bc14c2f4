// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typing

import (
	"fmt"

	"github.com/klebgenomics/kaptive-go/db"
)

// PercentIdentity is the mean protein percent identity across
// ExpectedGenesInsideLocus, or 0 if that list is empty. Memoised; on
// rehydration it is set directly via SetMemoisedFields and never
// recomputed here.
func (r *Result) PercentIdentity() float64 {
	if r.percentIdentity != nil {
		return *r.percentIdentity
	}
	v := 0.0
	if n := len(r.ExpectedGenesInsideLocus); n > 0 {
		sum := 0.0
		for _, idx := range r.ExpectedGenesInsideLocus {
			sum += r.Genes[idx].PercentIdentity
		}
		v = sum / float64(n)
	}
	r.percentIdentity = &v
	return v
}

// PercentCoverage sums the contig span of every ExpectedGenesInsideLocus
// hit over the summed reference length of every best-match gene, times
// 100 — a ratio of alignment spans, not protein coverage, that can exceed
// 100% for expanded hits (spec.md §9, preserved as-is).
func (r *Result) PercentCoverage() float64 {
	if r.percentCoverage != nil {
		return *r.percentCoverage
	}
	v := 0.0
	if len(r.ExpectedGenesInsideLocus) > 0 {
		sum := 0
		for _, idx := range r.ExpectedGenesInsideLocus {
			sum += r.Genes[idx].Len()
		}
		total := 0
		for _, g := range r.BestMatch.Genes {
			total += g.Len()
		}
		if total > 0 {
			v = float64(sum) / float64(total) * 100
		}
	}
	r.percentCoverage = &v
	return v
}

// Phenotype matches the set of present expected/extra genes against
// BestMatch's phenotype catalog, walking it largest-gene-set-first, and
// falls back to BestMatch.TypeLabel if nothing matches (spec.md §4.G,
// GLOSSARY "Phenotype").
func (r *Result) Phenotype() string {
	if r.phenotype != nil {
		return *r.phenotype
	}
	observed := make(map[db.PhenotypeGene]bool)
	for _, g := range r.All() {
		if g.Category == Expected || g.Category == Extra {
			observed[db.PhenotypeGene{Gene: g.Gene.Name, Phenotype: string(g.Phenotype)}] = true
		}
	}
	label := r.BestMatch.TypeLabel
	for _, p := range r.BestMatch.Phenotypes {
		if p.IsSubsetOf(observed) {
			label = p.Label
			break
		}
	}
	r.phenotype = &label
	return label
}

// Problems concatenates, in order, the structural-problem flags defined
// in spec.md §4.G.
func (r *Result) Problems() string {
	if r.problems != nil {
		return *r.problems
	}
	s := ""
	if n := len(r.Pieces); n != 1 {
		s += fmt.Sprintf("?%d", n)
	}
	if len(r.MissingGenes) > 0 {
		s += "-"
	}
	if len(r.UnexpectedGenesInsideLocus) > 0 {
		s += "+"
	}
	for _, idx := range r.ExpectedGenesInsideLocus {
		g := r.Genes[idx]
		if g.PercentCoverage >= 90 && g.BelowThreshold {
			s += "*"
			break
		}
	}
	for _, g := range r.All() {
		if g.Phenotype == Truncated {
			s += "!"
			break
		}
	}
	r.problems = &s
	return s
}

// Confidence returns the last confidence verdict computed by
// GetConfidence, or "Not calculated" if it has never run.
func (r *Result) Confidence() string {
	if r.confidence == "" {
		return "Not calculated"
	}
	return r.confidence
}

// GetConfidence computes and caches the Typeable/Untypeable verdict from
// the problems string and gene-count heuristics (spec.md §4.G).
func (r *Result) GetConfidence(allowBelowThreshold bool, maxOtherGenes int, percentExpectedGenes float64) {
	p := float64(len(r.ExpectedGenesInsideLocus)) / float64(len(r.BestMatch.Genes)) * 100
	other := 0
	for _, idx := range r.UnexpectedGenesInsideLocus {
		if r.Genes[idx].Phenotype != Truncated {
			other++
		}
	}

	switch {
	case !allowBelowThreshold && containsRune(r.Problems(), '*'):
		r.confidence = "Untypeable"
	case len(r.Pieces) == 1 && len(r.MissingGenes) == 0 && other == 0:
		r.confidence = "Typeable"
	case other <= maxOtherGenes && p >= percentExpectedGenes:
		r.confidence = "Typeable"
	default:
		r.confidence = "Untypeable"
	}
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

// SetMemoisedFields sets the five memoised derived fields directly,
// bypassing computation — used by rehydration (§4.H) to preserve
// round-trip equality for results written by older versions (spec.md §9).
func (r *Result) SetMemoisedFields(percentIdentity, percentCoverage float64, phenotype, problems, confidence string) {
	r.percentIdentity = &percentIdentity
	r.percentCoverage = &percentCoverage
	r.phenotype = &phenotype
	r.problems = &problems
	r.confidence = confidence
}
