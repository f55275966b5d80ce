package main

import "github.com/docsentry/docsentry/cmd/docsentry"

func main() { docsentry.Execute() }
