package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"pagecarve/config"
	"pagecarve/pcerr"
)

var (
	identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	movementRe   = regexp.MustCompile(`[udlr]\d{1,2}`)
	trimTokenRe  = regexp.MustCompile(`(wd|ln|nb|ch)(\d+)`)
	suffixRe     = regexp.MustCompile(
		`^((?:[udlr]\d{1,2}){0,2})(wd|ln|nb)(\d{1,2})(-)?(?:\^((?:(?:wd|ln|nb|ch)\d+)+))?(?:\$((?:(?:wd|ln|nb|ch)\d+)+))?(?:pg([\d-]+))?(?:mt([\d-]+))?$`)
)

// ParsePattern parses one scrape pattern string:
//
//	[VAR=]KEYWORD:MOVEMENT[MOVEMENT]TYPE COUNT[-][^START_TRIMS][$END_TRIMS][pgRANGE][mtRANGE]
func ParsePattern(raw string) (*Pattern, error) {
	s := strings.TrimSpace(raw)

	p := &Pattern{Raw: raw}

	body := s
	if eq := strings.Index(s, "="); eq > 0 {
		candidate := s[:eq]
		if identifierRe.MatchString(candidate) {
			p.VariableName = candidate
			p.ExplicitVar = true
			body = s[eq+1:]
		}
	}

	colon := strings.LastIndex(body, ":")
	if colon < 0 {
		return nil, pcerr.Inputf("scrape pattern %q missing ':'", raw)
	}
	keyword := strings.TrimSpace(body[:colon])
	if keyword == "" {
		return nil, pcerr.Inputf("scrape pattern %q has empty keyword", raw)
	}
	p.Keyword = keyword
	// Spaces within the compact movement/extract/trim suffix are cosmetic
	// and never appear there in practice; only the keyword itself may
	// legitimately contain internal spaces (e.g. "Invoice Number"), so
	// whitespace is collapsed here, after the keyword has already been cut
	// off, rather than across the whole pattern up front.
	suffix := strings.ReplaceAll(body[colon+1:], " ", "")

	m := suffixRe.FindStringSubmatch(suffix)
	if m == nil {
		return nil, pcerr.Inputf("scrape pattern %q has malformed movement/extract suffix %q", raw, suffix)
	}

	movements, err := parseMovements(m[1])
	if err != nil {
		return nil, pcerr.WrapInput(fmt.Sprintf("scrape pattern %q", raw), err)
	}
	p.Movements = movements
	p.Type = ExtractType(m[2])

	count, err := strconv.Atoi(m[3])
	if err != nil || count < 0 || count > 99 {
		return nil, pcerr.Inputf("scrape pattern %q has invalid count %q", raw, m[3])
	}
	p.Count = count
	p.Flexible = m[4] == "-"

	if m[5] != "" {
		trims, err := parseTrimBlock(m[5])
		if err != nil {
			return nil, pcerr.WrapInput(fmt.Sprintf("scrape pattern %q start trim", raw), err)
		}
		p.StartTrim = trims
	}
	if m[6] != "" {
		trims, err := parseTrimBlock(m[6])
		if err != nil {
			return nil, pcerr.WrapInput(fmt.Sprintf("scrape pattern %q end trim", raw), err)
		}
		p.EndTrim = trims
	}
	if m[7] != "" {
		spec, err := parseSpec(m[7])
		if err != nil {
			return nil, pcerr.WrapInput(fmt.Sprintf("scrape pattern %q page range", raw), err)
		}
		p.PageSpec = spec
	}
	if m[8] != "" {
		spec, err := parseSpec(m[8])
		if err != nil {
			return nil, pcerr.WrapInput(fmt.Sprintf("scrape pattern %q match range", raw), err)
		}
		p.MatchSpec = spec
	}

	if !p.ExplicitVar {
		p.VariableName = DeriveVariableName(p.Keyword)
	} else if !identifierRe.MatchString(p.VariableName) {
		return nil, pcerr.Inputf("scrape pattern %q has invalid variable name %q", raw, p.VariableName)
	}

	return p, nil
}

// parseMovements parses up to two concatenated "[udlr]\d{1,2}" tokens,
// rejecting conflicting directions (u+d together, or l+r together).
func parseMovements(s string) ([]Movement, error) {
	if s == "" {
		return nil, nil
	}
	toks := movementRe.FindAllString(s, -1)
	if strings.Join(toks, "") != s {
		return nil, pcerr.Inputf("malformed movement chain %q", s)
	}
	var moves []Movement
	haveVertical, haveHorizontal := false, false
	for _, t := range toks {
		dir := Direction(t[0])
		dist, _ := strconv.Atoi(t[1:])
		switch dir {
		case DirUp, DirDown:
			if haveVertical {
				return nil, pcerr.Inputf("conflicting vertical movements in %q", s)
			}
			haveVertical = true
		case DirLeft, DirRight:
			if haveHorizontal {
				return nil, pcerr.Inputf("conflicting horizontal movements in %q", s)
			}
			haveHorizontal = true
		}
		moves = append(moves, Movement{Direction: dir, Distance: dist})
	}
	return moves, nil
}

// parseTrimBlock parses a concatenation of "(wd|ln|nb|ch)N" tokens.
func parseTrimBlock(s string) ([]Trim, error) {
	matches := trimTokenRe.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return nil, pcerr.Inputf("malformed trim block %q", s)
	}
	var trims []Trim
	consumed := 0
	for _, m := range matches {
		if m[0] != consumed {
			return nil, pcerr.Inputf("malformed trim block %q", s)
		}
		kind := TrimKind(s[m[2]:m[3]])
		count, _ := strconv.Atoi(s[m[4]:m[5]])
		if count < 1 {
			return nil, pcerr.Inputf("trim block %q has zero count", s)
		}
		trims = append(trims, Trim{Kind: kind, Count: count})
		consumed = m[1]
	}
	if consumed != len(s) {
		return nil, pcerr.Inputf("malformed trim block %q", s)
	}
	return trims, nil
}

// parseSpec parses a RANGE token: N, A-B, A-, -K, or 0 ("all").
func parseSpec(s string) (*PageOrMatchSpec, error) {
	if s == "0" {
		return &PageOrMatchSpec{Kind: SpecAll}, nil
	}
	if strings.HasPrefix(s, "-") {
		k, err := strconv.Atoi(s[1:])
		if err != nil {
			return nil, pcerr.Inputf("invalid range %q", s)
		}
		return &PageOrMatchSpec{Kind: SpecLast, A: k}, nil
	}
	if strings.HasSuffix(s, "-") {
		a, err := strconv.Atoi(s[:len(s)-1])
		if err != nil {
			return nil, pcerr.Inputf("invalid range %q", s)
		}
		return &PageOrMatchSpec{Kind: SpecFrom, A: a}, nil
	}
	if idx := strings.Index(s, "-"); idx > 0 {
		a, errA := strconv.Atoi(s[:idx])
		b, errB := strconv.Atoi(s[idx+1:])
		if errA != nil || errB != nil {
			return nil, pcerr.Inputf("invalid range %q", s)
		}
		return &PageOrMatchSpec{Kind: SpecRange, A: a, B: b}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, pcerr.Inputf("invalid range %q", s)
	}
	return &PageOrMatchSpec{Kind: SpecSingle, A: n}, nil
}

// DeriveVariableName lowercases the keyword, replaces non-alphanumeric runs
// with a single underscore, collapses repeats, and truncates at a word
// boundary to the configured maximum.
func DeriveVariableName(keyword string) string {
	lower := strings.ToLower(keyword)
	var b strings.Builder
	lastUnderscore := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	name := strings.Trim(b.String(), "_")
	if len(name) <= config.MaxVariableNameLength {
		return name
	}
	truncated := name[:config.MaxVariableNameLength]
	if idx := strings.LastIndexByte(truncated, '_'); idx > 0 {
		truncated = truncated[:idx]
	}
	return truncated
}

// ParsePatternSet parses a set of patterns and validates that no two share
// a variable name.
func ParsePatternSet(raws []string) ([]*Pattern, error) {
	var patterns []*Pattern
	seen := make(map[string]struct{})
	for _, raw := range raws {
		p, err := ParsePattern(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[p.VariableName]; dup {
			return nil, pcerr.Inputf("duplicate scrape variable %q", p.VariableName)
		}
		seen[p.VariableName] = struct{}{}
		patterns = append(patterns, p)
	}
	return patterns, nil
}
