package selector

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"pagecarve/pcerr"
)

var firstLastRe = regexp.MustCompile(`(?i)^(first|last)[\s-]?(\d+)$`)

// numericForm is one parsed numeric-style argument (plain page, A-B range,
// first/last K, or a start:stop:step slice).
type numericForm struct {
	pages       []int
	description string
	ascending   bool // true iff pages is already sorted ascending
}

// looksLikeNumericArgument reports whether s should be routed to numeric
// parsing (Selector Parser step 5.e), before actually attempting the parse.
func looksLikeNumericArgument(s string) bool {
	if _, err := strconv.Atoi(s); err == nil {
		return true
	}
	if firstLastRe.MatchString(s) {
		return true
	}
	if sliceShapeRe.MatchString(s) {
		return true
	}
	if dashRangeRe.MatchString(s) {
		return true
	}
	return false
}

var dashRangeRe = regexp.MustCompile(`^\d*-\d*$`)
var sliceShapeRe = regexp.MustCompile(`^-?\d*:-?\d*(?::-?\d*)?$`)

// parseNumeric parses a numeric-form argument against a document of n
// pages.
func parseNumeric(s string, n int) (*numericForm, error) {
	s = strings.TrimSpace(s)

	if m := firstLastRe.FindStringSubmatch(s); m != nil {
		k, _ := strconv.Atoi(m[2])
		if strings.EqualFold(m[1], "first") {
			if k > n {
				k = n
			}
			pages := seqRange(1, k)
			return &numericForm{pages: pages, description: fmt.Sprintf("first%d", k), ascending: true}, nil
		}
		if k > n {
			k = n
		}
		pages := seqRange(n-k+1, n)
		return &numericForm{pages: pages, description: fmt.Sprintf("last%d", k), ascending: true}, nil
	}

	if strings.Contains(s, ":") {
		return parseSlice(s, n)
	}

	if dashRangeRe.MatchString(s) && strings.Contains(s, "-") {
		return parseDashRange(s, n)
	}

	if v, err := strconv.Atoi(s); err == nil {
		if v < 1 || v > n {
			return nil, pcerr.Rangef("page %d out of range [1,%d]", v, n)
		}
		return &numericForm{pages: []int{v}, description: strconv.Itoa(v), ascending: true}, nil
	}

	return nil, pcerr.Inputf("%q looks numeric but does not parse", s)
}

// parseDashRange parses "A-B" (either side may be omitted, meaning "from 1"
// / "to N"). A > B yields a descending page list.
func parseDashRange(s string, n int) (*numericForm, error) {
	idx := strings.Index(s, "-")
	leftStr, rightStr := s[:idx], s[idx+1:]

	a := 1
	if leftStr != "" {
		v, err := strconv.Atoi(leftStr)
		if err != nil {
			return nil, pcerr.WrapInput(fmt.Sprintf("range %q", s), err)
		}
		a = v
	}
	b := n
	if rightStr != "" {
		v, err := strconv.Atoi(rightStr)
		if err != nil {
			return nil, pcerr.WrapInput(fmt.Sprintf("range %q", s), err)
		}
		b = v
	}
	a = clip(a, n)
	b = clip(b, n)

	var pages []int
	ascending := true
	if a <= b {
		pages = seqRange(a, b)
	} else {
		ascending = false
		for p := a; p >= b; p-- {
			pages = append(pages, p)
		}
	}
	return &numericForm{pages: pages, description: fmt.Sprintf("%d-%d", a, b), ascending: ascending}, nil
}

// parseSlice parses "start:stop:step", "::step", or "start::step" (1-based,
// inclusive of stop, default start=1, stop=N, step=1).
func parseSlice(s string, n int) (*numericForm, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, pcerr.Inputf("invalid slice %q", s)
	}
	start := 1
	if parts[0] != "" {
		v, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, pcerr.WrapInput(fmt.Sprintf("slice %q", s), err)
		}
		start = v
	}
	stop := n
	if parts[1] != "" {
		v, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, pcerr.WrapInput(fmt.Sprintf("slice %q", s), err)
		}
		stop = v
	}
	step := 1
	if len(parts) == 3 && parts[2] != "" {
		v, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, pcerr.WrapInput(fmt.Sprintf("slice %q", s), err)
		}
		step = v
	}
	if step == 0 {
		return nil, pcerr.Inputf("slice %q has zero step", s)
	}
	start = clip(start, n)
	stop = clip(stop, n)

	var pages []int
	if step > 0 {
		for p := start; p <= stop; p += step {
			pages = append(pages, p)
		}
	} else {
		for p := start; p >= stop; p += step {
			pages = append(pages, p)
		}
	}
	desc := fmt.Sprintf("%d-%d-step%d", start, stop, step)
	if parts[0] == "" && parts[1] == "" && step == 2 {
		desc = "every-2"
	}
	return &numericForm{pages: pages, description: desc, ascending: step > 0}, nil
}

func seqRange(a, b int) []int {
	if a > b {
		return nil
	}
	out := make([]int, 0, b-a+1)
	for p := a; p <= b; p++ {
		out = append(out, p)
	}
	return out
}
