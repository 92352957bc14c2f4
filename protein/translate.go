// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protein translates nucleotide sequence using the NCBI genetic
// code tables and locally aligns two protein sequences with a BLASTP-style
// affine-gap scoring scheme, the two primitives the gene classifier (§4.F)
// needs to compare a hit's translated protein against its reference gene.
//
// No pack example exposes a bare NCBI-table codon lookup or a BLOSUM62
// local aligner with a small, directly reusable API: the codon-table
// libraries in the pack (e.g. poly/transform/codon, seen in
// other_examples/*poly*synthesis*.go) are built around CDS synthesis
// fixing, a different concern with its own SQL-backed weighting machinery,
// and the only local/global aligners in the pack (biogo/biogo's align
// package, code.google.com/p/biogo/align/nw in other_examples) are tied to
// older biogo type hierarchies not otherwise used by this module. Both
// primitives here are small, well-defined textbook algorithms (a codon
// lookup table, Smith-Waterman dynamic programming), implemented directly
// rather than adopting either.
package protein

import "strings"

// codonTable11 is the NCBI genetic code table 11 (bacterial, archaeal and
// plant plastid), expressed as codon -> single-letter amino acid, '*' for
// stop. Table 11 differs from the standard table only in its additional
// start codons, which do not affect mid-sequence translation.
var codonTable11 = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

var complement = map[byte]byte{'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C', 'N': 'N', 'a': 't', 't': 'a', 'c': 'g', 'g': 'c', 'n': 'n'}

// ReverseComplement returns the reverse complement of a nucleotide
// sequence.
func ReverseComplement(seq string) string {
	b := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		c, ok := complement[seq[len(seq)-1-i]]
		if !ok {
			c = 'N'
		}
		b[i] = c
	}
	return string(b)
}

// Translate translates dna using NCBI table (only table 11 is implemented,
// matching this module's bacterial-genome domain), stopping at the first
// in-frame stop codon when toStop is true, otherwise rendering stop codons
// as '*'. Trailing bases that don't form a full codon are ignored.
func Translate(dna string, table int, toStop bool) string {
	_ = table // only table 11 is supported; kept for call-site parity with spec.md §4.F.i
	var sb strings.Builder
	for i := 0; i+3 <= len(dna); i += 3 {
		codon := strings.ToUpper(dna[i : i+3])
		aa, ok := codonTable11[codon]
		if !ok {
			aa = 'X'
		}
		if aa == '*' {
			if toStop {
				break
			}
			sb.WriteByte('*')
			continue
		}
		sb.WriteByte(aa)
	}
	return sb.String()
}

// BestFrame tries translating dna from frames 0, 1 and 2 in order, using
// table 11 and stopping at the first stop codon, and returns the first
// frame that yields a non-empty protein. ok is false if all three frames
// translate to nothing.
func BestFrame(dna string) (proteinSeq string, frame int, ok bool) {
	for f := 0; f < 3; f++ {
		if f >= len(dna) {
			break
		}
		p := Translate(dna[f:], 11, true)
		if len(p) > 0 {
			return p, f, true
		}
	}
	return "", 0, false
}
