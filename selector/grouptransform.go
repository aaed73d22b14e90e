package selector

import (
	"regexp"
	"strconv"
	"strings"

	"pagecarve/pcerr"
)

// ApplyBoundaries recomputes groups by walking each group's pages in
// ascending order and splitting wherever start/end predicates fire: a page
// matching end closes the current run (inclusive); a page matching start
// opens a new run, closing any current run first; a page matching both is
// emitted as its own singleton. A nil predicate never matches.
func ApplyBoundaries(groups []Group, start, end *Predicate, doc Analyzer) ([]Group, error) {
	if start == nil && end == nil {
		return groups, nil
	}

	var out []Group
	for _, g := range groups {
		pages := make([]int, len(g.Pages))
		copy(pages, g.Pages)
		sortInts(pages)

		var run []int
		flush := func() {
			if len(run) == 0 {
				return
			}
			out = append(out, Group{
				Pages:        append([]int(nil), run...),
				IsRange:      len(run) > 1,
				OriginalSpec: g.OriginalSpec + "+boundary",
			})
			run = nil
		}

		for _, p := range pages {
			matchesStart, err := matchesOrFalse(start, doc, p)
			if err != nil {
				return nil, err
			}
			matchesEnd, err := matchesOrFalse(end, doc, p)
			if err != nil {
				return nil, err
			}

			switch {
			case matchesStart && matchesEnd:
				flush()
				out = append(out, Group{Pages: []int{p}, IsRange: false, OriginalSpec: g.OriginalSpec + "+boundary"})
			case matchesStart:
				flush()
				run = append(run, p)
			case matchesEnd:
				run = append(run, p)
				flush()
			default:
				run = append(run, p)
			}
		}
		flush()
	}
	return out, nil
}

func matchesOrFalse(p *Predicate, doc Analyzer, page int) (bool, error) {
	if p == nil {
		return false, nil
	}
	return p.Evaluate(doc, page)
}

var groupIndexListRe = regexp.MustCompile(`^[0-9,\-]+$`)

// FilterGroups applies a filter criterion to groups: a purely numeric/comma/
// dash criterion is a 1-indexed group selection; otherwise the criterion is
// evaluated as a boolean expression and a group survives iff its pages
// intersect the resulting page set.
func FilterGroups(groups []Group, criterion string, doc Analyzer) ([]Group, []string, error) {
	criterion = strings.TrimSpace(criterion)
	if criterion == "" {
		return groups, nil, nil
	}

	if groupIndexListRe.MatchString(criterion) {
		indices, warnings, err := parseGroupIndexList(criterion, len(groups))
		if err != nil {
			return nil, nil, err
		}
		var out []Group
		for _, idx := range indices {
			out = append(out, groups[idx-1])
		}
		return out, warnings, nil
	}

	result, err := EvaluateBoolean(criterion, doc)
	if err != nil {
		return nil, nil, err
	}
	var out []Group
	for _, g := range groups {
		if groupIntersects(g, result.Pages) {
			out = append(out, g)
		}
	}
	return out, nil, nil
}

func groupIntersects(g Group, pages map[int]struct{}) bool {
	for _, p := range g.Pages {
		if _, ok := pages[p]; ok {
			return true
		}
	}
	return false
}

// parseGroupIndexList parses a "1,3-5" style 1-indexed group selector,
// ignoring (with a warning) any index outside [1,total]. An "A-B" segment
// with A > B is a reversed range, not a descending selection, and is
// rejected.
func parseGroupIndexList(s string, total int) ([]int, []string, error) {
	var indices []int
	var warnings []string
	seen := make(map[int]struct{})
	add := func(i int) {
		if i < 1 || i > total {
			warnings = append(warnings, "group index out of range, ignored: "+strconv.Itoa(i))
			return
		}
		if _, ok := seen[i]; ok {
			return
		}
		seen[i] = struct{}{}
		indices = append(indices, i)
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if dashIdx := strings.Index(part, "-"); dashIdx > 0 {
			a, errA := strconv.Atoi(part[:dashIdx])
			b, errB := strconv.Atoi(part[dashIdx+1:])
			if errA == nil && errB == nil {
				if a > b {
					return nil, nil, pcerr.Rangef("group index range %q has start greater than end", part)
				}
				for i := a; i <= b; i++ {
					add(i)
				}
				continue
			}
		}
		if v, err := strconv.Atoi(part); err == nil {
			add(v)
		}
	}
	return indices, warnings, nil
}
