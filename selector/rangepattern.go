package selector

import (
	"fmt"
	"strconv"
	"strings"

	"pagecarve/pcerr"
)

// IsRangePattern reports whether s contains an unquoted " to " token, the
// detector for Selector Parser step 5.c.
func IsRangePattern(s string) bool {
	return ContainsUnquotedToken(s, "to")
}

// SplitRangePattern splits "LEFT to RIGHT" on the first unquoted " to "
// token.
func SplitRangePattern(s string) (left, right string, ok bool) {
	idx := findUnquotedToken(s, "to")
	if idx < 0 {
		return "", "", false
	}
	left = strings.TrimSpace(s[:idx])
	right = strings.TrimSpace(s[idx+len("to"):])
	return left, right, true
}

// matchRangeSide resolves one side of a range pattern (a literal page
// number or a Pattern Matcher predicate) to its sorted list of matching
// pages.
func matchRangeSide(side string, doc Analyzer) ([]int, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(side)); err == nil {
		if n < 1 || n > doc.PageCount() {
			return nil, pcerr.Rangef("page %d out of range [1,%d]", n, doc.PageCount())
		}
		return []int{n}, nil
	}
	pred, err := ParsePredicate(side)
	if err != nil {
		return nil, err
	}
	return MatchPages(pred, doc)
}

// Section is one resolved [start,end] pairing from a range pattern.
type Section struct {
	Start, End int
	Index      int
}

// ResolveRangePattern expands "LEFT to RIGHT" into sections by pairing each
// ascending match of LEFT with the smallest match of RIGHT that is >= it.
// An `a` with no valid `b` contributes no section. No error is raised for
// an overall-empty result.
func ResolveRangePattern(expr string, doc Analyzer) ([]Section, error) {
	left, right, ok := SplitRangePattern(expr)
	if !ok {
		return nil, pcerr.Inputf("not a range pattern: %q", expr)
	}
	lefts, err := matchRangeSide(left, doc)
	if err != nil {
		return nil, pcerr.WrapInput(fmt.Sprintf("range pattern %q left side", expr), err)
	}
	rights, err := matchRangeSide(right, doc)
	if err != nil {
		return nil, pcerr.WrapInput(fmt.Sprintf("range pattern %q right side", expr), err)
	}

	var sections []Section
	idx := 0
	for _, a := range lefts {
		b, found := smallestAtLeast(rights, a)
		if !found {
			continue
		}
		idx++
		sections = append(sections, Section{Start: a, End: b, Index: idx})
	}
	return sections, nil
}

func smallestAtLeast(sorted []int, min int) (int, bool) {
	best := -1
	for _, v := range sorted {
		if v >= min && (best == -1 || v < best) {
			best = v
		}
	}
	return best, best != -1
}

// SectionGroups converts resolved sections into Page Groups, one per
// section, each spanning [Start,End] inclusive in ascending order.
func SectionGroups(expr string, sections []Section) []Group {
	groups := make([]Group, 0, len(sections))
	for _, sec := range sections {
		pages := make([]int, 0, sec.End-sec.Start+1)
		for p := sec.Start; p <= sec.End; p++ {
			pages = append(pages, p)
		}
		groups = append(groups, Group{
			Pages:        pages,
			IsRange:      true,
			OriginalSpec: fmt.Sprintf("%s#%d", expr, sec.Index),
		})
	}
	return groups
}
