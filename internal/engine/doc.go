// Package engine contains the core scanning logic for Docsentry. It runs the
// format adapter for a document, evaluates the detection rules over the run
// stream, and folds the results into one ScanResult per document. This
// package is internal; external consumers should use the stable facade in
// pkg/core.
package engine
