// SPDX-License-Identifier: EPL-2.0

// Package library keeps the ordered list of decoded files a front end works
// with, and loads batches of paths into it.
//
// A Loader decodes with any decode.Decoder under one explicit batch policy:
// FailFast stops at the first bad file and returns its error, while
// SkipAndReport keeps the good files and lists the failures. Results are
// always in input order, however many files are decoded in parallel.
package library
