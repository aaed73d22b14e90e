// Package pdfdoc supplies the default Analyzer and Writer implementations
// that the composition root (package main, pipeline.go) wires into the core pipeline
// packages. Nothing in selector, scrape, rename, or extract imports this
// package directly — they depend only on the small interfaces they define
// themselves, so they stay testable against fakes.
package pdfdoc

import "errors"

// ErrPDFDisabled is returned by every exported function or method in this
// package that returns an error, when built without the "pdfcpu" tag.
var ErrPDFDisabled = errors.New("pdfdoc: built without pdfcpu support")
