// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protein

// Gap penalties matching BLASTP's default affine-gap scheme for BLOSUM62.
const (
	gapOpen   = 11
	gapExtend = 1
)

// Alignment is the result of locally aligning two protein sequences: the
// highest-scoring local alignment's length (including internal gaps) and
// the count of identical columns within it, from which the gene classifier
// derives percent_identity (§4.F.i).
type Alignment struct {
	Score      int
	Length     int
	Identities int
}

// PercentIdentity reports identical columns over alignment length, 0 if
// the alignment is empty.
func (a Alignment) PercentIdentity() float64 {
	if a.Length == 0 {
		return 0
	}
	return float64(a.Identities) / float64(a.Length) * 100
}

// Align locally aligns ref against query with a BLOSUM62 substitution
// matrix and affine gap penalties (Gotoh's algorithm), keeping the single
// highest-scoring alignment as spec.md §4.F.i requires.
func Align(ref, query string) Alignment {
	n, m := len(ref), len(query)
	if n == 0 || m == 0 {
		return Alignment{}
	}

	neg := -1 << 30
	h := make([][]int, n+1)
	e := make([][]int, n+1)
	f := make([][]int, n+1)
	for i := range h {
		h[i] = make([]int, m+1)
		e[i] = make([]int, m+1)
		f[i] = make([]int, m+1)
		if i > 0 {
			e[i][0] = neg
		}
	}
	for j := range f[0] {
		f[0][j] = neg
	}

	best, bi, bj := 0, 0, 0
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			e[i][j] = max2(h[i][j-1]-gapOpen, e[i][j-1]-gapExtend)
			f[i][j] = max2(h[i-1][j]-gapOpen, f[i-1][j]-gapExtend)
			diag := h[i-1][j-1] + blosum62(ref[i-1], query[j-1])
			v := max3(0, diag, max2(e[i][j], f[i][j]))
			h[i][j] = v
			if v > best {
				best, bi, bj = v, i, j
			}
		}
	}
	if best == 0 {
		return Alignment{}
	}

	length, identities := 0, 0
	i, j := bi, bj
	for i > 0 && j > 0 && h[i][j] > 0 {
		diag := h[i-1][j-1] + blosum62(ref[i-1], query[j-1])
		switch {
		case h[i][j] == diag:
			length++
			if ref[i-1] == query[j-1] {
				identities++
			}
			i--
			j--
		case h[i][j] == e[i][j]:
			length++
			j--
		case h[i][j] == f[i][j]:
			length++
			i--
		default:
			i--
			j--
		}
	}

	return Alignment{Score: best, Length: length, Identities: identities}
}

func max2(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func max3(a, b, c int) int {
	return max2(a, max2(b, c))
}
