//go:build pdfcpu
// +build pdfcpu

package pdfdoc

import (
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Writer is the default extract.Writer, backed by pdfcpu's page-collection
// command, which (unlike Trim) accepts pages in the exact order given,
// including repeats.
type Writer struct{}

func (Writer) WritePages(src string, pages []int, dest string) error {
	if len(pages) == 0 {
		return fmt.Errorf("pdfdoc: no pages to write")
	}
	selection := make([]string, len(pages))
	for i, p := range pages {
		selection[i] = strconv.Itoa(p)
	}
	if err := api.CollectFile(src, dest, selection, model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("pdfdoc: collect pages: %w", err)
	}
	return nil
}
