// Package selector implements the page-selection pipeline: lexing and
// parsing selector strings, matching predicates against page content,
// resolving range patterns, evaluating boolean expressions, and the
// boundary-detection / filtering / deduplication passes that turn a raw
// parse into a final ordered list of page groups.
package selector

import "fmt"

// PageKind classifies a page's content, as reported by an Analyzer.
type PageKind string

const (
	KindText  PageKind = "text"
	KindImage PageKind = "image"
	KindMixed PageKind = "mixed"
	KindEmpty PageKind = "empty"
)

// Analyzer answers content questions about one page of the current
// document. Implementations are supplied by the composition root (see
// package pdfdoc) and cached per (document, page) for the lifetime of one
// command invocation, per the analyzer-cache design note.
type Analyzer interface {
	// PageCount returns the total number of pages, N.
	PageCount() int
	// PageText returns the page's extracted text.
	PageText(page int) (string, error)
	// PageKind classifies the page.
	PageKind(page int) (PageKind, error)
	// PageSize returns the page's approximate byte contribution.
	PageSize(page int) (uint64, error)
}

// Group is an ordered sequence of pages together with its provenance.
type Group struct {
	Pages         []int
	IsRange       bool
	OriginalSpec  string
	PreserveOrder bool
}

// Clone returns a deep copy of g, so callers can mutate the page slice of
// the copy without aliasing the original.
func (g Group) Clone() Group {
	pages := make([]int, len(g.Pages))
	copy(pages, g.Pages)
	return Group{Pages: pages, IsRange: g.IsRange, OriginalSpec: g.OriginalSpec, PreserveOrder: g.PreserveOrder}
}

// Result is the output of the Selector Parser (and, after mutation, of the
// Group Transformer and Deduplicator): the page set, a human description,
// and the ordered group list it was derived from.
type Result struct {
	Pages       map[int]struct{}
	Description string
	Groups      []Group
}

// PagesUnion recomputes the page set as the union of all group pages. Used
// to check the Selection Result invariant pages == union(group.pages).
func (r *Result) PagesUnion() map[int]struct{} {
	out := make(map[int]struct{})
	for _, g := range r.Groups {
		for _, p := range g.Pages {
			out[p] = struct{}{}
		}
	}
	return out
}

// SortedPages returns r.Pages as an ascending slice.
func (r *Result) SortedPages() []int {
	out := make([]int, 0, len(r.Pages))
	for p := range r.Pages {
		out = append(out, p)
	}
	sortInts(out)
	return out
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// validatePageBounds checks that p lies in [1,N], returning a RangeError-class
// message via fmt for the caller to wrap.
func validatePageBounds(p, n int) error {
	if p < 1 || p > n {
		return fmt.Errorf("page %d out of range [1,%d]", p, n)
	}
	return nil
}

func clip(p, n int) int {
	if p < 1 {
		return 1
	}
	if p > n {
		return n
	}
	return p
}
