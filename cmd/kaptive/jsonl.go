// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/klebgenomics/kaptive-go/internal/klog"
	"github.com/klebgenomics/kaptive-go/typing"
)

// writeJSONLine appends one result as a single JSON object line, the
// serialized-result form spec.md §6 and §4.H define.
func writeJSONLine(w io.Writer, r *typing.Result) {
	raw, err := json.Marshal(r.ToDoc())
	if err != nil {
		klog.Warning("marshalling result for %s: %v", r.SampleName, err)
		return
	}
	w.Write(raw)
	fmt.Fprintln(w)
}
