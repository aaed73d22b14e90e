//go:build !pdfcpu
// +build !pdfcpu

package pdfdoc

import "pagecarve/selector"

// Analyzer is a no-op stand-in used for default builds without the
// "pdfcpu" tag. It exists to keep the codebase compiling while PDF support
// is disabled; see analyzer.go for the real implementation.
type Analyzer struct{}

// Open always fails without the "pdfcpu" build tag.
func Open(path string) (*Analyzer, error) {
	return nil, ErrPDFDisabled
}

func (a *Analyzer) PageCount() int { return 0 }

func (a *Analyzer) PageText(page int) (string, error) { return "", ErrPDFDisabled }

func (a *Analyzer) PageKind(page int) (selector.PageKind, error) { return "", ErrPDFDisabled }

func (a *Analyzer) PageSize(page int) (uint64, error) { return 0, ErrPDFDisabled }
