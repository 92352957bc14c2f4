// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package locus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/klebgenomics/kaptive-go/paf"
)

func rec(target string, start, end, matchLen int, query string) paf.Record {
	return paf.Record{Target: target, TargetStart: start, TargetEnd: end, MatchLen: matchLen, Query: query}
}

func TestReconstructMergesPerContig(t *testing.T) {
	alignments := []paf.Record{
		rec("ctg1", 0, 100, 90, "locus"),
		rec("ctg1", 90, 200, 90, "locus"),
		rec("ctg2", 0, 50, 40, "locus"),
	}
	pieces := Reconstruct(alignments, 1000)
	assert.Len(t, pieces, 2)
	assert.Equal(t, Piece{Contig: "ctg1", Start: 0, End: 200}, pieces[0])
	assert.Equal(t, Piece{Contig: "ctg2", Start: 0, End: 50}, pieces[1])
}

func TestReconstructRespectsMaxSpan(t *testing.T) {
	alignments := []paf.Record{
		rec("ctg1", 0, 100, 90, "locus"),
		rec("ctg1", 90, 5000, 90, "locus"),
	}
	pieces := Reconstruct(alignments, 1000)
	assert.Len(t, pieces, 2)
}

func TestBestPerGenePicksMaxMatchLen(t *testing.T) {
	alignments := []paf.Record{
		rec("ctg1", 0, 100, 40, "geneA"),
		rec("ctg1", 200, 300, 90, "geneA"),
		rec("ctg2", 0, 100, 50, "geneB"),
	}
	best := BestPerGene(alignments)
	assert.Len(t, best, 2)
	byQuery := map[string]paf.Record{}
	for _, b := range best {
		byQuery[b.Query] = b
	}
	assert.Equal(t, 90, byQuery["geneA"].MatchLen)
	assert.Equal(t, 50, byQuery["geneB"].MatchLen)
}

func TestReconstructEmpty(t *testing.T) {
	assert.Nil(t, Reconstruct(nil, 1000))
}
