//go:build !pdfcpu
// +build !pdfcpu

package pdfdoc

// Writer is a no-op stand-in used for default builds without the "pdfcpu"
// build tag; see writer.go for the real implementation.
type Writer struct{}

func (Writer) WritePages(src string, pages []int, dest string) error {
	return ErrPDFDisabled
}
