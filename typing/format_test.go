// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFnaRendersPieceFASTA(t *testing.T) {
	r, _ := cleanResult(t)
	out, err := r.Format("fna")
	require.NoError(t, err)
	assert.Equal(t, ">sample1|ctg1:0-9+\nSEQ\n", out)
}

func TestFormatFfnRendersGeneDNAFASTA(t *testing.T) {
	r, _ := cleanResult(t)
	out, err := r.Format("ffn")
	require.NoError(t, err)
	assert.Equal(t, ">K1_1 sample1|ctg1:0-9+\nATGGCTTAA\n", out)
}

func TestFormatFaaRendersGeneProteinFASTA(t *testing.T) {
	r, _ := cleanResult(t)
	out, err := r.Format("faa")
	require.NoError(t, err)
	assert.Equal(t, ">K1_1 sample1|ctg1:0-9+\nMA\n", out)
}

func TestFormatSkipsEmptySequence(t *testing.T) {
	r, _ := cleanResult(t)
	r.Genes[0].DNASequence = ""
	out, err := r.Format("ffn")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFormatUnknownSpecifierReturnsError(t *testing.T) {
	r, _ := cleanResult(t)
	_, err := r.Format("png")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
