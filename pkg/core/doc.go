// Package core provides a small, stable facade over Docsentry's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so embedders can depend on a stable import path without exposing
// internal implementation packages.
//
// Example:
//
//	res, err := core.ScanBytes("report.docx", data, core.FormatDOCX, core.DefaultConfig())
//	if err != nil { /* handle */ }
//	_ = core.MarshalResult(os.Stdout, res)
package core
