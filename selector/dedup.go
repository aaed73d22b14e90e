package selector

import (
	"fmt"
	"sort"
	"strings"

	"pagecarve/config"
	"pagecarve/pcerr"
)

// DedupOutcome carries the deduplicated groups plus any warning produced
// (from the "warn" strategy).
type DedupOutcome struct {
	Groups   []Group
	Warnings []string
}

// Deduplicate applies one of {none, strict, groups, warn, fail} to groups,
// per the policy.
func Deduplicate(groups []Group, strategy config.DedupStrategy) (*DedupOutcome, error) {
	switch strategy {
	case config.DedupNone:
		return &DedupOutcome{Groups: groups}, nil
	case config.DedupGroups:
		return &DedupOutcome{Groups: dedupWithinGroups(groups)}, nil
	case config.DedupStrict:
		return &DedupOutcome{Groups: dedupStrict(groups)}, nil
	case config.DedupWarn:
		summary := duplicateSummary(groups)
		out := dedupStrict(groups)
		var warnings []string
		if summary != "" {
			warnings = append(warnings, summary)
		}
		return &DedupOutcome{Groups: out, Warnings: warnings}, nil
	case config.DedupFail:
		if summary := duplicateSummary(groups); summary != "" {
			return nil, pcerr.Deduplication(summary)
		}
		return &DedupOutcome{Groups: groups}, nil
	default:
		return nil, pcerr.Inputf("unknown dedup strategy %q", strategy)
	}
}

// dedupWithinGroups removes duplicate pages within each individual group,
// keeping first occurrence order, but allows the same page to reappear in a
// different group.
func dedupWithinGroups(groups []Group) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		seen := make(map[int]struct{})
		var pages []int
		for _, p := range g.Pages {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			pages = append(pages, p)
		}
		if len(pages) == 0 {
			continue
		}
		ng := g.Clone()
		ng.Pages = pages
		out = append(out, ng)
	}
	return out
}

// dedupStrict removes, in group order, any page already seen in an earlier
// group or earlier within the same group; groups that become empty are
// dropped.
func dedupStrict(groups []Group) []Group {
	seen := make(map[int]struct{})
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		var pages []int
		for _, p := range g.Pages {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			pages = append(pages, p)
		}
		if len(pages) == 0 {
			continue
		}
		ng := g.Clone()
		ng.Pages = pages
		out = append(out, ng)
	}
	return out
}

// duplicateSummary names every page that occurs in more than one group,
// together with the original_spec of every group it appears in. Returns ""
// if there are no cross-group (or within-group) duplicates.
func duplicateSummary(groups []Group) string {
	membership := make(map[int][]string)
	for _, g := range groups {
		already := make(map[int]struct{})
		for _, p := range g.Pages {
			if _, dup := already[p]; dup {
				membership[p] = append(membership[p], g.OriginalSpec)
				continue
			}
			already[p] = struct{}{}
			membership[p] = append(membership[p], g.OriginalSpec)
		}
	}

	var dupPages []int
	for p, specs := range membership {
		if len(specs) > 1 {
			dupPages = append(dupPages, p)
		}
	}
	if len(dupPages) == 0 {
		return ""
	}
	sort.Ints(dupPages)

	var lines []string
	for _, p := range dupPages {
		lines = append(lines, fmt.Sprintf("page %d appears in: %s", p, strings.Join(membership[p], ", ")))
	}
	return strings.Join(lines, "; ")
}
