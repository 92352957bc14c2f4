// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db is the in-memory data model the typing pipeline is coupled
// to: Database, Locus and Gene, with the accessors spec.md §3 lists as
// belonging to an external, pre-parsed database. Parsing the curated
// GenBank source this data is normally distilled from is explicitly out
// of scope (spec.md §1); Load reads a small JSON document instead, which
// is enough to make the pipeline and its tests runnable standalone.
package db

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/klebgenomics/kaptive-go/paf"
	"github.com/klebgenomics/kaptive-go/protein"
)

// Gene is one reference gene belonging to a Locus (or to the extra-genes /
// extra-loci catalog).
type Gene struct {
	Name     string     // <locus>_<index>[_suffix]; Index is derived from this
	GeneName string     // biological identifier, may repeat across paralogs
	Strand   paf.Strand // strand on its locus
	Sequence string     // reference nucleotide sequence
	Index    int        // the integer after the first '_' in Name

	proteinOnce sync.Once
	proteinSeq  string
}

// Len reports the reference nucleotide length of the gene.
func (g *Gene) Len() int { return len(g.Sequence) }

// Protein returns the gene's reference protein sequence, translating it
// from Sequence (NCBI table 11, stopping at the first stop codon) on first
// use and caching the result, matching Gene.extract_translation's
// memoised-on-first-call contract.
func (g *Gene) Protein() string {
	g.proteinOnce.Do(func() {
		g.proteinSeq = protein.Translate(g.Sequence, 11, true)
	})
	return g.proteinSeq
}

// ParseGeneIndex extracts the ordering integer from a gene name of the
// form <locus>_<index>[_suffix], validating the shape at load time instead
// of panicking on malformed names deep in sort comparators (spec.md §9's
// open design note).
func ParseGeneIndex(name string) (int, error) {
	parts := strings.SplitN(name, "_", 3)
	if len(parts) < 2 {
		return 0, fmt.Errorf("gene name %q does not have the <locus>_<index> form", name)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("gene name %q has a non-integer index segment %q: %w", name, parts[1], err)
	}
	return n, nil
}

// PhenotypeGene is one (gene name, presence phenotype) member of a
// phenotype set's gene_set, e.g. ("K1_3", "present").
type PhenotypeGene struct {
	Gene      string
	Phenotype string
}

// PhenotypeSet is one (gene_set, label) entry from a Locus's phenotype
// catalog: Label applies when every member of Genes is observed present
// (or truncated, as declared) in a typing result (spec.md §4.G).
type PhenotypeSet struct {
	Genes []PhenotypeGene
	Label string
}

// IsSubsetOf reports whether every member of the phenotype set's gene_set
// is present in observed, the (gene name, phenotype) pairs collected from
// a typing result.
func (p PhenotypeSet) IsSubsetOf(observed map[PhenotypeGene]bool) bool {
	for _, g := range p.Genes {
		if !observed[g] {
			return false
		}
	}
	return true
}

// Locus is a named cluster of co-located reference genes.
type Locus struct {
	Name       string
	Genes      []*Gene // ordered by Gene.Index
	Phenotypes []PhenotypeSet // MUST be sorted largest gene set first
	TypeLabel  string
	Sequence   string // reference nucleotide sequence of the whole locus

	geneByName map[string]*Gene
}

// Gene looks up a gene belonging to this locus by name.
func (l *Locus) Gene(name string) (*Gene, bool) {
	g, ok := l.geneByName[name]
	return g, ok
}

// Len reports the reference nucleotide length of the locus.
func (l *Locus) Len() int { return len(l.Sequence) }

// FASTA renders the locus's reference sequence as a single FASTA record,
// the blob mapped against an assembly to reconstruct locus pieces (§4.E).
func (l *Locus) FASTA() string { return formatFASTA(l.Name, l.Sequence) }

// GenesFASTA renders every gene belonging to this locus as one FASTA blob.
func (l *Locus) GenesFASTA() string {
	var sb strings.Builder
	for _, g := range l.Genes {
		sb.WriteString(formatFASTA(g.Name, g.Sequence))
	}
	return sb.String()
}

// HasExtraGenePhenotype reports whether any phenotype set on this locus
// references a gene name with the "Extra" naming convention, the trigger
// for mapping the extra-loci catalog against the assembly (§4.E).
func (l *Locus) HasExtraGenePhenotype() bool {
	for _, p := range l.Phenotypes {
		for _, g := range p.Genes {
			if strings.HasPrefix(g.Gene, "Extra") {
				return true
			}
		}
	}
	return false
}

// Database is the curated reference collection the typing pipeline scores
// an assembly against.
type Database struct {
	Loci          []*Locus // ordered; iteration order is the tie-break order for best-match selection
	ExtraLoci     []*Locus // loci whose genes are "extra" (phenotype-only) rather than locus-defining
	GeneThreshold float64  // percent identity floor for "species-level"
	LargestLocus  *Locus   // the locus with the greatest Len(), used as a merge max-span

	lociByName      map[string]*Locus
	genes           map[string]*Gene // aggregated across all Loci
	extraGenes      map[string]*Gene // aggregated across all ExtraLoci
}

// Len reports the number of loci in the database.
func (d *Database) Len() int { return len(d.Loci) }

// Locus looks up a locus by name.
func (d *Database) Locus(name string) (*Locus, bool) {
	l, ok := d.lociByName[name]
	return l, ok
}

// Gene looks up a gene from any locus by its full name.
func (d *Database) Gene(name string) (*Gene, bool) {
	g, ok := d.genes[name]
	return g, ok
}

// ExtraGene looks up a gene from the extra-loci catalog by its full name.
func (d *Database) ExtraGene(name string) (*Gene, bool) {
	g, ok := d.extraGenes[name]
	return g, ok
}

// AllGenesFASTA renders every gene in every locus as a single FASTA blob,
// the query stream mapped against an assembly for gene-level scoring
// (§4.D).
func (d *Database) AllGenesFASTA() string {
	var sb strings.Builder
	for _, l := range d.Loci {
		for _, g := range l.Genes {
			sb.WriteString(formatFASTA(g.Name, g.Sequence))
		}
	}
	return sb.String()
}

// AllExtraGenesFASTA renders every gene in the extra-loci catalog as a
// single FASTA blob (§4.E).
func (d *Database) AllExtraGenesFASTA() string {
	var sb strings.Builder
	for _, l := range d.ExtraLoci {
		for _, g := range l.Genes {
			sb.WriteString(formatFASTA(g.Name, g.Sequence))
		}
	}
	return sb.String()
}
