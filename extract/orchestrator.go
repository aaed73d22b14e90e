// Package extract implements the Extraction Orchestrator: the sole writer
// of output PDFs, driving single/separate/grouped writes from a resolved
// filename plan.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"pagecarve/config"
	"pagecarve/rename"
	"pagecarve/selector"
)

// Writer produces one output PDF containing the given 1-indexed pages of
// src, in the order given. Implemented outside this package (see pdfdoc)
// so the orchestrator stays testable against a fake.
type Writer interface {
	WritePages(src string, pages []int, dest string) error
}

// Result reports the outcome of one planned write.
type Result struct {
	Path  string
	Pages []int
	Bytes int64
}

// Run drives writer across every planned output, honoring dry_run (compute
// paths and sizes, write nothing). Each write goes to a temporary name in
// the destination directory first and is renamed into place only on
// success, so an interrupt never leaves a partially written file at its
// final name.
func Run(planned []rename.Planned, srcPath string, mode config.ExtractionMode, writer Writer, dryRun bool, sizeOf func(pages []int) (int64, error)) ([]Result, error) {
	var results []Result
	for _, p := range planned {
		pages := orderedPages(p.Group, mode)
		if len(pages) == 0 {
			continue
		}

		if dryRun {
			size, err := sizeOf(pages)
			if err != nil {
				return nil, err
			}
			results = append(results, Result{Path: p.Path, Pages: pages, Bytes: size})
			continue
		}

		size, err := writeOne(writer, srcPath, pages, p.Path)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{Path: p.Path, Pages: pages, Bytes: size})
	}
	return results, nil
}

func writeOne(writer Writer, srcPath string, pages []int, destPath string) (int64, error) {
	dir := filepath.Dir(destPath)
	tmp := filepath.Join(dir, fmt.Sprintf(".pagecarve-tmp-%d-%s", os.Getpid(), filepath.Base(destPath)))

	if err := writer.WritePages(srcPath, pages, tmp); err != nil {
		os.Remove(tmp)
		return 0, err
	}
	info, err := os.Stat(tmp)
	if err != nil {
		os.Remove(tmp)
		return 0, err
	}
	if err := os.Rename(tmp, destPath); err != nil {
		os.Remove(tmp)
		return 0, err
	}
	return info.Size(), nil
}

// orderedPages applies the union ordering rule: respect a group's own
// PreserveOrder flag; otherwise emit that group's pages ascending. In
// single mode, planSingle already applied that rule group by group while
// concatenating every group's pages into one synthetic group in group-list
// order, and marks that group PreserveOrder whenever any source group was,
// so the concatenated order is kept.
func orderedPages(g selector.Group, mode config.ExtractionMode) []int {
	pages := append([]int(nil), g.Pages...)
	if g.PreserveOrder {
		return pages
	}
	sort.Ints(pages)
	return pages
}
