// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"fmt"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

// formatFASTA renders one FASTA record, 60 columns wide, the same way the
// teacher builds BLAST query streams in cmd/ins (linear.NewSeq +
// alphabet.BytesToLetters + the "%60a" format verb).
func formatFASTA(id string, sequence string) string {
	s := linear.NewSeq(id, alphabet.BytesToLetters([]byte(sequence)), alphabet.DNAredundant)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%60a\n", s)
	return sb.String()
}
