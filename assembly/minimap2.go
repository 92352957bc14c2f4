// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assembly

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"github.com/biogo/external"

	"github.com/klebgenomics/kaptive-go/internal/klog"
	"github.com/klebgenomics/kaptive-go/paf"
)

// Minimap2 builds a "minimap2 -c -t <threads> <reference> -" command line,
// a reference-vs-stdin-query invocation (spec.md §5, §6), the same
// buildarg-tag struct idiom the teacher uses for blastn/makeblastdb
// (blast.Nucleic, blast.MakeDB).
type Minimap2 struct {
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}minimap2{{end}}"` // minimap2

	PAF     bool `buildarg:"{{if .}}-c{{end}}"`               // -c: output PAF with CIGAR
	Threads int  `buildarg:"{{if .}}-t{{split}}{{.}}{{end}}"` // -t <n>

	Reference string `buildarg:"{{.}}"` // positional: the assembly file
	Query     string `buildarg:"{{.}}"` // positional: "-" reads the query FASTA from stdin
}

// BuildCommand renders m into an *exec.Cmd tied to ctx, so that cancelling
// ctx terminates the child process (spec.md §5's cancellation contract;
// the teacher's own blast.Nucleic.BuildCommand predates this requirement
// and so has no ctx parameter).
func (m Minimap2) BuildCommand(ctx context.Context) (*exec.Cmd, error) {
	if m.Reference == "" {
		return nil, errors.New("minimap2: missing reference assembly path")
	}
	cl := external.Must(external.Build(m))
	return exec.CommandContext(ctx, cl[0], cl[1:]...), nil
}

// Align maps queryFASTA (a FASTA blob, e.g. a gene catalog or a single
// locus sequence) against the assembly at path with the given worker
// thread count, and returns the resulting PAF records. The child process
// exchange is a single blocking write-all then read-all: standard error
// is discarded, and a failed exit is only logged as a warning while the
// PAF written so far is still parsed, since downstream correctness only
// relies on the validity of individual PAF lines, not on the aligner's
// reported success (spec.md §5).
func Align(ctx context.Context, path string, threads int, queryFASTA string) []paf.Record {
	cmd, err := Minimap2{PAF: true, Threads: threads, Reference: path, Query: "-"}.BuildCommand(ctx)
	if err != nil {
		klog.Warning("building minimap2 command: %v", err)
		return nil
	}
	cmd.Stdin = strings.NewReader(queryFASTA)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		klog.Warning("minimap2 exited with an error, continuing with whatever PAF it produced: %v", err)
	}
	return paf.All(stdout.Bytes())
}
