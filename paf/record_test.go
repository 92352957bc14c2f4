// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineValid(t *testing.T) {
	line := "geneA\t300\t0\t300\t+\tcontig1\t50000\t1000\t1300\t295\t300\t60\tAS:i:290\tde:f:0.01\ttp:A:P"
	r, err := ParseLine(line)
	require.NoError(t, err)
	assert.Equal(t, "geneA", r.Query)
	assert.Equal(t, 300, r.QueryLen)
	assert.Equal(t, 0, r.QueryStart)
	assert.Equal(t, 300, r.QueryEnd)
	assert.Equal(t, StrandForward, r.Strand)
	assert.Equal(t, "contig1", r.Target)
	assert.Equal(t, 1000, r.TargetStart)
	assert.Equal(t, 1300, r.TargetEnd)
	assert.Equal(t, 295, r.MatchLen)
	assert.Equal(t, 300, r.BlockLen)
	assert.Equal(t, 60, r.MapQ)

	require.Contains(t, r.Tags, "AS")
	assert.True(t, r.Tags["AS"].IsInt)
	assert.EqualValues(t, 290, r.Tags["AS"].Int)

	require.Contains(t, r.Tags, "de")
	assert.True(t, r.Tags["de"].IsFlt)
	assert.InDelta(t, 0.01, r.Tags["de"].Float, 1e-9)

	require.Contains(t, r.Tags, "tp")
	assert.False(t, r.Tags["tp"].IsInt || r.Tags["tp"].IsFlt)
	assert.Equal(t, "P", r.Tags["tp"].Str)
}

func TestParseLineTooFewFields(t *testing.T) {
	_, err := ParseLine("geneA\t300\t0")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedAlignment)
}

func TestAllSkipsMalformedLines(t *testing.T) {
	good := "geneA\t300\t0\t300\t+\tcontig1\t50000\t1000\t1300\t295\t300\t60"
	blob := strings.Join([]string{"bad line", good, "", "also bad"}, "\n")
	recs := All([]byte(blob))
	require.Len(t, recs, 1)
	assert.Equal(t, "geneA", recs[0].Query)
}

func TestGroupByStableOrder(t *testing.T) {
	recs := []Record{
		{Query: "b", QueryStart: 1},
		{Query: "a", QueryStart: 2},
		{Query: "b", QueryStart: 3},
		{Query: "a", QueryStart: 4},
	}
	groups := ByQuery(recs)
	require.Len(t, groups, 2)
	assert.Equal(t, "a", groups[0].Key)
	require.Len(t, groups[0].Records, 2)
	assert.Equal(t, 2, groups[0].Records[0].QueryStart)
	assert.Equal(t, 4, groups[0].Records[1].QueryStart)

	assert.Equal(t, "b", groups[1].Key)
	require.Len(t, groups[1].Records, 2)
	assert.Equal(t, 1, groups[1].Records[0].QueryStart)
	assert.Equal(t, 3, groups[1].Records[1].QueryStart)
}
