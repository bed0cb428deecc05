// Package web holds the embedded templates and static assets so the binary
// is self-contained and handlers work from any working directory.
package web

import "embed"

//go:embed templates/*.html static/*
var FS embed.FS
