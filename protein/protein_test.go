// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protein

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateStopsAtStop(t *testing.T) {
	// ATG GCT TAA -> Met Ala Stop
	got := Translate("ATGGCTTAA", 11, true)
	assert.Equal(t, "MA", got)
}

func TestTranslateKeepsStopWhenNotToStop(t *testing.T) {
	got := Translate("ATGGCTTAAGGT", 11, false)
	assert.Equal(t, "MA*G", got)
}

func TestTranslateUnknownCodonIsX(t *testing.T) {
	got := Translate("ATGNNNGCT", 11, false)
	assert.Equal(t, "MXA", got)
}

func TestTranslateIgnoresTrailingPartialCodon(t *testing.T) {
	got := Translate("ATGGCTT", 11, false)
	assert.Equal(t, "MA", got)
}

func TestReverseComplement(t *testing.T) {
	assert.Equal(t, "ACGT", ReverseComplement("ACGT"))
	assert.Equal(t, "TTTT", ReverseComplement("AAAA"))
	assert.Equal(t, "NACGT", ReverseComplement("ACGTN"))
}

func TestBestFrameFindsInFrameTranslation(t *testing.T) {
	// Frame 0 reads TAA, an immediate stop; frame 1 reads
	// AAT GGC TGG TTA and translates cleanly.
	dna := "TAATGGCTGGTTAA"
	protein, frame, ok := BestFrame(dna)
	require.True(t, ok)
	assert.Equal(t, 1, frame)
	assert.Equal(t, "NGWL", protein)
}

func TestBestFrameAllStopImmediately(t *testing.T) {
	// Frame 0 is a stop codon; frames 1 and 2 are too short to hold a codon.
	_, _, ok := BestFrame("TAA")
	assert.False(t, ok)
}

func TestAlignIdenticalSequencesAreFullyIdentical(t *testing.T) {
	a := Align("MAGKT", "MAGKT")
	assert.Equal(t, 5, a.Length)
	assert.Equal(t, 5, a.Identities)
	assert.Equal(t, 100.0, a.PercentIdentity())
}

func TestAlignSingleMismatch(t *testing.T) {
	a := Align("MAGKT", "MAGQT")
	assert.Equal(t, 5, a.Length)
	assert.Equal(t, 4, a.Identities)
	assert.InDelta(t, 80.0, a.PercentIdentity(), 0.01)
}

func TestAlignFindsLocalSubstringMatch(t *testing.T) {
	a := Align("MAGKTPQRS", "XXXMAGKTPQRSXXX")
	assert.Equal(t, 9, a.Length)
	assert.Equal(t, 9, a.Identities)
}

func TestAlignEmptyInputs(t *testing.T) {
	a := Align("", "MAGKT")
	assert.Equal(t, Alignment{}, a)
	assert.Equal(t, 0.0, a.PercentIdentity())
}

func TestAlignNoSimilarity(t *testing.T) {
	a := Align("WWWWW", "DDDDD")
	assert.Equal(t, 0, a.Length)
}
