// Copyright ©2024 The Kaptive Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package klog provides the warn-and-continue logging convention used
// throughout the typing pipeline: per-alignment and per-gene failures are
// recoverable and should not abort a run, so they are reported through the
// standard logger rather than returned as errors.
package klog

import "log"

// Verbose, when true, makes Info emit messages. Warning always emits.
var Verbose bool

// Warning logs a recoverable problem that does not abort the current
// operation.
func Warning(format string, args ...any) {
	log.Printf("warning: "+format, args...)
}

// Info logs a progress message, only when Verbose is set.
func Info(format string, args ...any) {
	if Verbose {
		log.Printf(format, args...)
	}
}
