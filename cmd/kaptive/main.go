// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// kaptive types a set of bacterial genome assemblies against a curated
// locus database, reporting the best-match locus, its reconstructed
// pieces and per-gene evidence, and a typeable/untypeable confidence
// verdict for each assembly.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/klebgenomics/kaptive-go/assembly"
	"github.com/klebgenomics/kaptive-go/db"
	"github.com/klebgenomics/kaptive-go/internal/klog"
)

func main() {
	dbPath := flag.String("db", "", "specify the locus database JSON file (required)")
	outTSV := flag.String("out-tsv", "", "specify the TSV output file (default stdout)")
	outJSON := flag.String("out-json", "", "specify the JSON-lines output file (none by default)")
	noHeader := flag.Bool("no-header", false, "specify to omit the TSV header row")
	threads := flag.Int("threads", 1, "specify the number of worker threads passed to the aligner")
	minCov := flag.Float64("min-cov", 50, "specify the minimum percent gene coverage to admit an alignment")
	maxOtherGenes := flag.Int("max-other-genes", 1, "specify the number of non-truncated other genes tolerated for a Typeable verdict")
	percentExpectedGenes := flag.Float64("percent-expected-genes", 50, "specify the minimum percent of expected genes found for a Typeable verdict")
	allowBelowThreshold := flag.Bool("allow-below-threshold", false, "specify to allow a Typeable verdict despite a below-identity-threshold expected gene")
	verbose := flag.Bool("verbose", false, "specify verbose logging")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -db <database.json> [options] <assembly.fasta> [assembly.fasta ...]

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	klog.Verbose = *verbose

	if *dbPath == "" || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	dbFile, err := os.Open(*dbPath)
	if err != nil {
		fatalf("opening database: %v", err)
	}
	database, err := db.Load(dbFile)
	dbFile.Close()
	if err != nil {
		fatalf("parsing database: %v", err)
	}

	tsv := os.Stdout
	if *outTSV != "" {
		f, err := os.Create(*outTSV)
		if err != nil {
			fatalf("creating %s: %v", *outTSV, err)
		}
		defer f.Close()
		tsv = f
	}
	if !*noHeader {
		writeTSVHeader(tsv)
	}

	var jsonOut *os.File
	if *outJSON != "" {
		f, err := os.Create(*outJSON)
		if err != nil {
			fatalf("creating %s: %v", *outJSON, err)
		}
		defer f.Close()
		jsonOut = f
	}

	opts := assembly.PipelineOptions{
		Threads:              *threads,
		MinCoverage:          *minCov,
		AllowBelowThreshold:  *allowBelowThreshold,
		MaxOtherGenes:        *maxOtherGenes,
		PercentExpectedGenes: *percentExpectedGenes,
	}

	results, err := assembly.TypeAll(context.Background(), flag.Args(), database, opts)
	if err != nil {
		fatalf("typing: %v", err)
	}

	for i, r := range results {
		if r == nil {
			klog.Warning("%s: no result", flag.Args()[i])
			continue
		}
		writeTSVRow(tsv, r)
		if jsonOut != nil {
			writeJSONLine(jsonOut, r)
		}
	}
}

func fatalf(format string, args ...any) {
	klog.Warning(format, args...)
	os.Exit(1)
}
