// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ranges

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlap(t *testing.T) {
	assert.Equal(t, 5, Overlap(Range{0, 10}, Range{5, 20}))
	assert.Equal(t, 0, Overlap(Range{0, 5}, Range{5, 10}))
	assert.Equal(t, 0, Overlap(Range{10, 20}, Range{0, 5}))
	assert.Equal(t, 10, Overlap(Range{0, 10}, Range{0, 10}))
}

func TestMergeDisjointAndSpanBound(t *testing.T) {
	in := []Range{{0, 100}, {90, 200}, {500, 600}, {190, 210}}
	out := Merge(in, 1000)
	require := assert.New(t)
	require.Equal([]Range{{0, 210}, {500, 600}}, out)
	for _, r := range out {
		require.LessOrEqual(r.Len(), 1000)
	}
}

func TestMergeRespectsMaxSpan(t *testing.T) {
	in := []Range{{0, 50}, {40, 90}, {80, 130}}
	out := Merge(in, 60)
	// Each candidate merge would produce a span > 60, so none merge.
	assert.Equal(t, []Range{{0, 50}, {40, 90}, {80, 130}}, out)
}

func TestMergeEmpty(t *testing.T) {
	assert.Nil(t, Merge(nil, 100))
}

func TestMergeOutputIsOrderedAndDisjoint(t *testing.T) {
	in := []Range{{300, 400}, {0, 10}, {20, 30}, {5, 25}}
	out := Merge(in, 1000)
	for i := 1; i < len(out); i++ {
		assert.LessOrEqual(t, out[i-1].End, out[i].Start)
		assert.Less(t, out[i-1].Start, out[i].Start)
	}
}
