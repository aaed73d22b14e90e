package selector

import (
	"strings"

	"pagecarve/pcerr"
)

// ParseOptions configures the Selector Parser's one filesystem-touching
// step, file: expansion.
type ParseOptions struct {
	FS      FS
	BaseDir string
}

// Parse is the Selector Parser's top-level orchestrator: strip one pair of
// outer quotes, expand file: selectors, split on top-level commas, decide
// order preservation, and dispatch each argument to the first matching
// kind. Returns the combined Result plus any non-fatal warnings collected
// along the way (these come only from file: expansion; ranges and slices
// are clipped to the document silently, and a single page outside it is a
// RangeError).
func Parse(raw string, doc Analyzer, opts ParseOptions) (*Result, []string, error) {
	s := stripOuterQuotes(strings.TrimSpace(raw))

	var warnings []string
	if opts.FS != nil {
		expanded, w, err := ExpandFileSelectors(s, opts.FS, opts.BaseDir)
		if err != nil {
			return nil, warnings, err
		}
		s = expanded
		warnings = append(warnings, w...)
	}

	args := SplitTopLevel(s)
	if len(args) == 0 || (len(args) == 1 && args[0] == "") {
		return nil, warnings, pcerr.Input("empty selector")
	}

	n := doc.PageCount()
	preserveOrder := decidePreserveOrder(args, n)

	var allGroups []Group
	var descriptions []string

	for _, arg := range args {
		groups, desc, err := parseArgument(arg, doc, n)
		if err != nil {
			return nil, warnings, pcerr.WrapInput("selector argument \""+arg+"\"", err)
		}
		for i := range groups {
			groups[i].PreserveOrder = preserveOrder
		}
		allGroups = append(allGroups, groups...)
		if desc != "" {
			descriptions = append(descriptions, desc)
		}
	}

	pages := make(map[int]struct{})
	for _, g := range allGroups {
		for _, p := range g.Pages {
			pages[p] = struct{}{}
		}
	}

	return &Result{
		Pages:       pages,
		Description: strings.Join(descriptions, "_"),
		Groups:      allGroups,
	}, warnings, nil
}

// decidePreserveOrder implements step 4: true iff any argument is
// non-numeric, or the numeric arguments (concatenated in argument order) do
// not form a strictly ascending page sequence.
func decidePreserveOrder(args []string, n int) bool {
	lastSeen := 0
	for _, a := range args {
		trimmed := strings.TrimSpace(a)
		if !looksLikeNumericArgument(trimmed) {
			return true
		}
		form, err := parseNumeric(trimmed, n)
		if err != nil {
			// A genuine parse error surfaces later from parseArgument;
			// here we only need a conservative order decision.
			return true
		}
		if !form.ascending || len(form.pages) == 0 {
			return true
		}
		if form.pages[0] <= lastSeen {
			return true
		}
		lastSeen = form.pages[len(form.pages)-1]
	}
	return false
}

// parseArgument dispatches one top-level argument to the first matching
// kind per step 5.
func parseArgument(arg string, doc Analyzer, n int) ([]Group, string, error) {
	trimmed := strings.TrimSpace(arg)
	lower := strings.ToLower(trimmed)

	switch lower {
	case "all":
		return []Group{{Pages: seqRange(1, n), IsRange: n > 1, OriginalSpec: "all"}}, "all", nil
	case "odd":
		return []Group{{Pages: filterParity(n, 1), IsRange: true, OriginalSpec: "odd"}}, "odd", nil
	case "even":
		return []Group{{Pages: filterParity(n, 0), IsRange: true, OriginalSpec: "even"}}, "even", nil
	}

	if ContainsUnquotedBooleanOperator(trimmed) {
		result, err := EvaluateBoolean(trimmed, doc)
		if err != nil {
			return nil, "", err
		}
		return result.Groups, booleanDescription(trimmed), nil
	}

	if IsRangePattern(trimmed) {
		sections, err := ResolveRangePattern(trimmed, doc)
		if err != nil {
			return nil, "", err
		}
		return SectionGroups(trimmed, sections), trimmed, nil
	}

	if LooksLikePredicate(trimmed) {
		pred, err := ParsePredicate(trimmed)
		if err != nil {
			return nil, "", err
		}
		pages, err := MatchPages(pred, doc)
		if err != nil {
			return nil, "", err
		}
		if len(pages) == 0 {
			return nil, trimmed, nil
		}
		return consecutiveRunGroups(pages, trimmed), trimmed, nil
	}

	if looksLikeNumericArgument(trimmed) {
		form, err := parseNumeric(trimmed, n)
		if err != nil {
			return nil, "", err
		}
		if len(form.pages) == 0 {
			return nil, form.description, nil
		}
		isRange := len(form.pages) > 1
		return []Group{{Pages: form.pages, IsRange: isRange, OriginalSpec: form.description}}, form.description, nil
	}

	return nil, "", pcerr.Inputf("unrecognized selector argument %q", trimmed)
}

func filterParity(n, remainder int) []int {
	var out []int
	for p := 1; p <= n; p++ {
		if p%2 == remainder {
			out = append(out, p)
		}
	}
	return out
}

func booleanDescription(expr string) string {
	return "bool(" + expr + ")"
}
