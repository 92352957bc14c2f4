// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assembly

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klebgenomics/kaptive-go/paf"
)

func writeFASTA(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDerivesNameAndContigs(t *testing.T) {
	dir := t.TempDir()
	path := writeFASTA(t, dir, "sample1.fasta", ">ctg1\nACGTACGTAC\n")

	a, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sample1", a.Name)
	require.Len(t, a.Contigs, 1)
	assert.Equal(t, "ctg1", a.Contigs[0].Name)
	assert.Equal(t, 10, a.Contigs[0].Length)
}

func TestLoadSupportsGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample2.fasta.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(">ctg1\nACGT\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	a, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sample2", a.Name)
	assert.Equal(t, "ACGT", a.Seq("ctg1", 0, 4, paf.StrandForward))
}

func TestLoadEmptyAssembly(t *testing.T) {
	dir := t.TempDir()
	path := writeFASTA(t, dir, "empty.fasta", "")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrEmptyAssembly)
}

func TestSeqExtractsForwardRange(t *testing.T) {
	dir := t.TempDir()
	path := writeFASTA(t, dir, "sample3.fasta", ">ctg1\nACGTACGTAC\n")

	a, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ACGT", a.Seq("ctg1", 0, 4, paf.StrandForward))
}

func TestSeqReverseComplementsPalindrome(t *testing.T) {
	dir := t.TempDir()
	path := writeFASTA(t, dir, "sample4.fasta", ">ctg1\nACGTACGTAC\n")

	a, err := Load(path)
	require.NoError(t, err)
	// bytes [6:10) are "GTAC", a self-complementary palindrome.
	assert.Equal(t, "GTAC", a.Seq("ctg1", 6, 10, paf.StrandReverse))
}

func TestSeqUnknownContigWarnsAndReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeFASTA(t, dir, "sample5.fasta", ">ctg1\nACGT\n")

	a, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "", a.Seq("nope", 0, 4, paf.StrandForward))
}

func TestDeriveNameStripsGzThenExtension(t *testing.T) {
	assert.Equal(t, "sample1", deriveName("/data/sample1.fasta.gz"))
	assert.Equal(t, "sample1", deriveName("/data/sample1.fasta"))
	assert.Equal(t, "sample1.chromosome", deriveName("/data/sample1.chromosome.fna.gz"))
}
