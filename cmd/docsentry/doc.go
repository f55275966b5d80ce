// Package docsentry provides the command-line interface for the Docsentry
// tool. It configures subcommands (scan, rules, history, config), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/docsentry/docsentry/cmd/docsentry"
//	func main() { docsentry.Execute() }
package docsentry
