// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klebgenomics/kaptive-go/db"
	"github.com/klebgenomics/kaptive-go/paf"
)

const twoLocusDB = `{
  "gene_threshold": 90,
  "loci": [
    {"name": "K1", "sequence": "AAAAAAAAAA", "type_label": "K1", "genes": [
      {"name": "K1_1", "gene_name": "wzx", "strand": "+", "sequence": "ATGGCTTAA"},
      {"name": "K1_2", "gene_name": "wzy", "strand": "+", "sequence": "ATGGCTTAA"}
    ], "phenotypes": []},
    {"name": "K2", "sequence": "CCCCCCCCCC", "type_label": "K2", "genes": [
      {"name": "K2_1", "gene_name": "wzx", "strand": "+", "sequence": "ATGGCTTAA"}
    ], "phenotypes": []}
  ]
}`

func loadTwoLocusDB(t *testing.T) *db.Database {
	t.Helper()
	d, err := db.Load(strings.NewReader(twoLocusDB))
	require.NoError(t, err)
	return d
}

func rec(query string, qLen, blockLen, matchLen int) paf.Record {
	return paf.Record{Query: query, QueryLen: qLen, BlockLen: blockLen, MatchLen: matchLen, Target: "ctg1"}
}

func TestSelectPicksHighestWeightedLocus(t *testing.T) {
	d := loadTwoLocusDB(t)
	alignments := []paf.Record{
		rec("K1_1", 9, 9, 9),
		rec("K1_2", 9, 9, 9),
		rec("K2_1", 9, 9, 5),
	}
	result, err := Select(d, alignments, Options{})
	require.NoError(t, err)
	assert.Equal(t, "K1", result.BestMatch.Name)
}

func TestSelectDiscardsBelowMinCoverage(t *testing.T) {
	d := loadTwoLocusDB(t)
	// q_len/blen*100 = 9/100*100 = 9, well under the default 50 floor.
	alignments := []paf.Record{rec("K1_1", 9, 100, 9)}
	_, err := Select(d, alignments, Options{})
	assert.ErrorIs(t, err, ErrNoGeneAlignments)
}

func TestSelectZeroStddevGivesZeroZscore(t *testing.T) {
	d := loadTwoLocusDB(t)
	alignments := []paf.Record{
		rec("K1_1", 10, 10, 5),
		rec("K1_2", 10, 10, 5),
		rec("K2_1", 10, 10, 10),
	}
	result, err := Select(d, alignments, Options{})
	require.NoError(t, err)
	// K1 scores (5/10 + 5/10) * 2/2 = 1 and K2 scores 10/10 * 1/1 = 1, so
	// the weighted scores have zero standard deviation; the tie goes to K1,
	// first in database order.
	assert.NotNil(t, result)
	assert.Equal(t, 0.0, result.ZScore)
	assert.Equal(t, "K1", result.BestMatch.Name)
}

func TestSelectAlignmentPoolIncludesEveryGroupMember(t *testing.T) {
	d := loadTwoLocusDB(t)
	alignments := []paf.Record{
		rec("K1_1", 9, 9, 9),
		rec("K1_1", 9, 9, 3),
		rec("K1_2", 9, 9, 9),
	}
	result, err := Select(d, alignments, Options{})
	require.NoError(t, err)
	assert.Len(t, result.Alignments, 3)
}

func TestArgmaxTieBreaksFirst(t *testing.T) {
	assert.Equal(t, 0, argmax([]float64{1, 1, 1}))
	assert.Equal(t, 2, argmax([]float64{0, 1, 2}))
}

func TestLocusNameOf(t *testing.T) {
	assert.Equal(t, "K1", locusNameOf("K1_2"))
	assert.Equal(t, "K1", locusNameOf("K1_2_suffix"))
	assert.Equal(t, "solo", locusNameOf("solo"))
}
