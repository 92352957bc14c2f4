// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/klebgenomics/kaptive-go/paf"
)

// geneDoc/locusDoc/databaseDoc are the JSON-document shapes Load reads.
// This is a stand-in for the GenBank-derived database format, which is
// out of this module's scope; it carries exactly the fields §3 requires.
type geneDoc struct {
	Name     string `json:"name"`
	GeneName string `json:"gene_name"`
	Strand   string `json:"strand"`
	Sequence string `json:"sequence"`
}

type phenotypeGeneDoc struct {
	Gene      string `json:"gene"`
	Phenotype string `json:"phenotype"`
}

type phenotypeDoc struct {
	Genes []phenotypeGeneDoc `json:"genes"`
	Label string             `json:"label"`
}

type locusDoc struct {
	Name       string         `json:"name"`
	Sequence   string         `json:"sequence"`
	TypeLabel  string         `json:"type_label"`
	Genes      []geneDoc      `json:"genes"`
	Phenotypes []phenotypeDoc `json:"phenotypes"`
}

type databaseDoc struct {
	Loci          []locusDoc `json:"loci"`
	ExtraLoci     []locusDoc `json:"extra_loci"`
	GeneThreshold float64    `json:"gene_threshold"`
}

// Load parses a Database from its JSON document form, validating gene name
// shape up front (spec.md §9) and normalizing each locus's phenotype list
// to be sorted largest-gene-set-first, an invariant the phenotype resolver
// in the typing package relies on.
func Load(r io.Reader) (*Database, error) {
	var doc databaseDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding database: %w", err)
	}

	d := &Database{
		GeneThreshold: doc.GeneThreshold,
		lociByName:    map[string]*Locus{},
		genes:         map[string]*Gene{},
		extraGenes:    map[string]*Gene{},
	}

	for _, ld := range doc.Loci {
		l, err := buildLocus(ld)
		if err != nil {
			return nil, fmt.Errorf("locus %q: %w", ld.Name, err)
		}
		d.Loci = append(d.Loci, l)
		d.lociByName[l.Name] = l
		for _, g := range l.Genes {
			d.genes[g.Name] = g
		}
		if d.LargestLocus == nil || l.Len() > d.LargestLocus.Len() {
			d.LargestLocus = l
		}
	}
	for _, ld := range doc.ExtraLoci {
		l, err := buildLocus(ld)
		if err != nil {
			return nil, fmt.Errorf("extra locus %q: %w", ld.Name, err)
		}
		d.ExtraLoci = append(d.ExtraLoci, l)
		for _, g := range l.Genes {
			d.extraGenes[g.Name] = g
		}
	}
	return d, nil
}

func buildLocus(ld locusDoc) (*Locus, error) {
	l := &Locus{
		Name:       ld.Name,
		Sequence:   ld.Sequence,
		TypeLabel:  ld.TypeLabel,
		geneByName: map[string]*Gene{},
	}
	for _, gd := range ld.Genes {
		idx, err := ParseGeneIndex(gd.Name)
		if err != nil {
			return nil, err
		}
		g := &Gene{
			Name:     gd.Name,
			GeneName: gd.GeneName,
			Strand:   strandOf(gd.Strand),
			Sequence: gd.Sequence,
			Index:    idx,
		}
		l.Genes = append(l.Genes, g)
		l.geneByName[g.Name] = g
	}
	sort.Slice(l.Genes, func(i, j int) bool { return l.Genes[i].Index < l.Genes[j].Index })

	for _, pd := range ld.Phenotypes {
		genes := make([]PhenotypeGene, len(pd.Genes))
		for i, g := range pd.Genes {
			genes[i] = PhenotypeGene{Gene: g.Gene, Phenotype: g.Phenotype}
		}
		l.Phenotypes = append(l.Phenotypes, PhenotypeSet{Genes: genes, Label: pd.Label})
	}
	// Largest gene set first, the invariant the phenotype resolver relies on.
	sort.SliceStable(l.Phenotypes, func(i, j int) bool {
		return len(l.Phenotypes[i].Genes) > len(l.Phenotypes[j].Genes)
	})
	return l, nil
}

func strandOf(s string) paf.Strand {
	switch s {
	case "+":
		return paf.StrandForward
	case "-":
		return paf.StrandReverse
	default:
		return paf.StrandUnknown
	}
}
