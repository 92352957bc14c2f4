// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paf

import (
	"bufio"
	"bytes"
	"sort"

	"github.com/klebgenomics/kaptive-go/internal/klog"
)

// All parses every line in data, a PAF blob as produced on an aligner's
// standard output. Malformed lines are skipped with a warning, matching the
// source aligner's tolerance of occasional bad records; a caller wanting a
// one-pass lazy sequence should use an *Iterator instead.
func All(data []byte) []Record {
	var out []Record
	it := NewIterator(data)
	for it.Next() {
		out = append(out, it.Record())
	}
	return out
}

// Iterator yields PAF records one line at a time without materializing the
// whole blob into a slice.
type Iterator struct {
	sc  *bufio.Scanner
	rec Record
}

// NewIterator returns an Iterator over the lines in data.
func NewIterator(data []byte) *Iterator {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Iterator{sc: sc}
}

// Next advances to the next well-formed record, skipping malformed lines
// with a warning. It returns false once the underlying data is exhausted.
func (it *Iterator) Next() bool {
	for it.sc.Scan() {
		line := it.sc.Text()
		if line == "" {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			klog.Warning("skipping invalid alignment line: %v", err)
			continue
		}
		it.rec = rec
		return true
	}
	return false
}

// Record returns the record most recently produced by Next.
func (it *Iterator) Record() Record { return it.rec }

// Group is one key's worth of records from a GroupBy call.
type Group struct {
	Key     string
	Records []Record
}

// GroupBy groups records by key(record), sorting by key first so that all
// records sharing a key are contiguous, then preserving each record's
// original relative (insertion) order within its group — a stable sort.
func GroupBy(records []Record, key func(Record) string) []Group {
	type indexed struct {
		rec Record
		idx int
	}
	tagged := make([]indexed, len(records))
	for i, r := range records {
		tagged[i] = indexed{r, i}
	}
	sort.SliceStable(tagged, func(i, j int) bool {
		return key(tagged[i].rec) < key(tagged[j].rec)
	})

	var groups []Group
	for _, t := range tagged {
		k := key(t.rec)
		if n := len(groups); n > 0 && groups[n-1].Key == k {
			groups[n-1].Records = append(groups[n-1].Records, t.rec)
		} else {
			groups = append(groups, Group{Key: k, Records: []Record{t.rec}})
		}
	}
	return groups
}

// ByQuery groups records by their query name (the "q" key in spec terms).
func ByQuery(records []Record) []Group {
	return GroupBy(records, func(r Record) string { return r.Query })
}

// ByTarget groups records by their target (contig) name (the "ctg" key).
func ByTarget(records []Record) []Group {
	return GroupBy(records, func(r Record) string { return r.Target })
}
