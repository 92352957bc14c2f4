// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typing

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klebgenomics/kaptive-go/db"
	"github.com/klebgenomics/kaptive-go/paf"
)

func oneLocusDatabase(t *testing.T) (*db.Database, *db.Locus) {
	t.Helper()
	d, err := db.Load(strings.NewReader(`{
      "gene_threshold": 90,
      "loci": [{
        "name": "K1", "sequence": "ATGGCTTAAATGGCTTAA", "type_label": "K1",
        "genes": [{"name": "K1_1", "gene_name": "wzx", "strand": "+", "sequence": "ATGGCTTAA"}],
        "phenotypes": []
      }]
    }`))
	require.NoError(t, err)
	l, ok := d.Locus("K1")
	require.True(t, ok)
	return d, l
}

func cleanResult(t *testing.T) (*Result, *db.Database) {
	t.Helper()
	database, locus := oneLocusDatabase(t)
	gene := locus.Genes[0]
	r := &Result{SampleName: "sample1", Database: database, BestMatch: locus}
	r.PieceArena = append(r.PieceArena, &LocusPiece{Contig: "ctg1", Start: 0, End: 9})

	g := &GeneResult{
		Contig: "ctg1", Gene: gene, Start: 0, End: 9, Strand: paf.StrandForward,
		PieceIndex: 0, NeighbourLeft: NoNeighbour, Category: Expected,
		PercentIdentity: 100, PercentCoverage: 100, Phenotype: Present,
		DNASequence: "ATGGCTTAA", ProteinSequence: "MA",
	}
	r.AddGeneResult(g)
	r.FinalizePieces(func(contig string, start, end int, strand paf.Strand) string { return "SEQ" })
	r.FinalizeOrdering()
	r.GetConfidence(false, 1, 50)
	return r, database
}

func TestAddGeneResultFilesExpectedInside(t *testing.T) {
	r, _ := cleanResult(t)
	assert.Len(t, r.ExpectedGenesInsideLocus, 1)
	assert.Empty(t, r.ExpectedGenesOutsideLocus)
	assert.Len(t, r.Pieces, 1)
	assert.Equal(t, 0, r.Pieces[0].Start)
	assert.Equal(t, 9, r.Pieces[0].End)
}

func TestFinalizeOrderingNoMissingGenes(t *testing.T) {
	r, _ := cleanResult(t)
	assert.Empty(t, r.MissingGenes)
}

func TestProblemsEmptyForCleanMatch(t *testing.T) {
	r, _ := cleanResult(t)
	assert.Equal(t, "", r.Problems())
}

func TestPhenotypeFallsBackToTypeLabel(t *testing.T) {
	r, _ := cleanResult(t)
	assert.Equal(t, "K1", r.Phenotype())
}

func TestConfidenceTypeableForCleanMatch(t *testing.T) {
	r, _ := cleanResult(t)
	assert.Equal(t, "Typeable", r.Confidence())
}

func TestProblemsFragmentedLocus(t *testing.T) {
	r, _ := cleanResult(t)
	r.Pieces = append(r.Pieces, &LocusPiece{Contig: "ctg2", Start: 0, End: 5})
	r.problems = nil
	assert.Equal(t, "?2", r.Problems())
}

func TestProblemsMissingGeneAndTruncated(t *testing.T) {
	database, locus := oneLocusDatabase(t)
	// Add a second gene so one can be "missing".
	locus.Genes = append(locus.Genes, &db.Gene{Name: "K1_2", GeneName: "wzy", Strand: paf.StrandForward, Sequence: "ATGGCTTAA", Index: 2})

	r := &Result{SampleName: "s", Database: database, BestMatch: locus}
	r.PieceArena = append(r.PieceArena, &LocusPiece{Contig: "ctg1", Start: 0, End: 9})
	g := &GeneResult{
		Contig: "ctg1", Gene: locus.Genes[0], Start: 0, End: 9, Strand: paf.StrandForward,
		PieceIndex: 0, NeighbourLeft: NoNeighbour, Category: Expected,
		PercentIdentity: 95, PercentCoverage: 80, Phenotype: Truncated,
	}
	r.AddGeneResult(g)
	r.FinalizePieces(func(string, int, int, paf.Strand) string { return "" })
	r.FinalizeOrdering()

	assert.Equal(t, []string{"K1_2"}, r.MissingGenes)
	problems := r.Problems()
	assert.Contains(t, problems, "-")
	assert.Contains(t, problems, "!")
}

func TestRoundTripPreservesTopLevelFields(t *testing.T) {
	r, database := cleanResult(t)
	doc := r.ToDoc()

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	var doc2 ResultDoc
	require.NoError(t, json.Unmarshal(raw, &doc2))

	r2, err := FromDoc(doc2, database)
	require.NoError(t, err)

	assert.Equal(t, r.SampleName, r2.SampleName)
	assert.Equal(t, r.BestMatch.Name, r2.BestMatch.Name)
	assert.Equal(t, r.Phenotype(), r2.Phenotype())
	assert.Equal(t, r.Problems(), r2.Problems())
	assert.Equal(t, r.Confidence(), r2.Confidence())
	assert.Equal(t, r.PercentIdentity(), r2.PercentIdentity())
	assert.Equal(t, r.PercentCoverage(), r2.PercentCoverage())
	assert.Equal(t, r.MissingGenes, r2.MissingGenes)
	require.Len(t, r2.Pieces, len(r.Pieces))
	require.Len(t, r2.ExpectedGenesInsideLocus, len(r.ExpectedGenesInsideLocus))
}

func TestFromDocUnknownLocus(t *testing.T) {
	_, database := cleanResult(t)
	_, err := FromDoc(ResultDoc{BestMatch: "nope"}, database)
	assert.ErrorIs(t, err, ErrUnknownLocus)
}
