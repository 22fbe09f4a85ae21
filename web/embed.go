// Package web holds the page templates and stylesheet compiled into the
// drivelog binary.
package web

import "embed"

//go:embed templates/*.html
var TemplatesFS embed.FS

//go:embed static/*
var StaticFS embed.FS
