package selector

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"pagecarve/pcerr"
)

var foldCaser = cases.Fold()

// PredicateKind is the tag of the Pattern Matcher's single evaluation
// variant, per the design notes' "tagged variant with one evaluation
// function" guidance.
type PredicateKind string

const (
	PredContains    PredicateKind = "contains"
	PredRegex       PredicateKind = "regex"
	PredLineStarts  PredicateKind = "line-starts"
	PredType        PredicateKind = "type"
	PredSize        PredicateKind = "size"
)

var predicatePrefixes = []PredicateKind{PredContains, PredRegex, PredLineStarts, PredType, PredSize}

// Predicate is a single parsed content or structural test on one page.
type Predicate struct {
	Kind            PredicateKind
	CaseInsensitive bool
	Text            string // contains / regex / line-starts value
	TypeValue       PageKind
	SizeOp          string
	SizeBytes       uint64
	Offset          int
	Raw             string

	compiledRegex *regexp.Regexp
}

// LooksLikePredicate reports whether s starts with a known predicate prefix
// (optionally followed by "/i") and a colon, the detector the Selector
// Parser uses for step 5.d.
func LooksLikePredicate(s string) bool {
	_, _, ok := splitPredicatePrefix(s)
	return ok
}

func splitPredicatePrefix(s string) (PredicateKind, bool, bool) {
	for _, kind := range predicatePrefixes {
		p := string(kind)
		if strings.HasPrefix(s, p+"/i:") {
			return kind, true, true
		}
		if strings.HasPrefix(s, p+":") {
			return kind, false, true
		}
	}
	return "", false, false
}

// ParsePredicate parses a single predicate expression, including its
// trailing +N/-N page-shift suffix if present.
func ParsePredicate(raw string) (*Predicate, error) {
	s := strings.TrimSpace(raw)
	kind, ci, ok := splitPredicatePrefix(s)
	if !ok {
		return nil, pcerr.Inputf("not a predicate: %q", raw)
	}
	prefixLen := len(string(kind)) + 1
	if ci {
		prefixLen++
	}
	rest := s[prefixLen:]

	rest, offset, err := extractTrailingShift(rest)
	if err != nil {
		return nil, err
	}

	p := &Predicate{Kind: kind, CaseInsensitive: ci, Offset: offset, Raw: s}

	switch kind {
	case PredContains, PredRegex, PredLineStarts:
		val, err := unquoteValue(rest)
		if err != nil {
			return nil, pcerr.WrapInput(fmt.Sprintf("predicate %q", raw), err)
		}
		if val == "" {
			return nil, pcerr.Inputf("empty predicate value in %q", raw)
		}
		p.Text = val
		if kind == PredRegex {
			pattern := val
			if ci {
				pattern = "(?i)" + pattern
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, pcerr.WrapEvaluation(fmt.Sprintf("regex predicate %q", raw), err)
			}
			p.compiledRegex = re
		}
	case PredType:
		val := strings.TrimSpace(rest)
		switch PageKind(val) {
		case KindText, KindImage, KindMixed, KindEmpty:
			p.TypeValue = PageKind(val)
		default:
			return nil, pcerr.Inputf("unknown page type %q in %q", val, raw)
		}
	case PredSize:
		op, bytes, err := parseSizeSpec(rest)
		if err != nil {
			return nil, pcerr.WrapInput(fmt.Sprintf("size predicate %q", raw), err)
		}
		p.SizeOp = op
		p.SizeBytes = bytes
	}
	return p, nil
}

// extractTrailingShift strips a trailing "+N" or "-N" outside any quoted
// region and returns the remainder plus the shift (0 if absent).
func extractTrailingShift(s string) (string, int, error) {
	trimmed := strings.TrimRight(s, " ")
	i := len(trimmed)
	j := i
	for j > 0 && trimmed[j-1] >= '0' && trimmed[j-1] <= '9' {
		j--
	}
	if j == i || j == 0 {
		return s, 0, nil
	}
	sign := trimmed[j-1]
	if sign != '+' && sign != '-' {
		return s, 0, nil
	}
	// Make sure this sign isn't inside a quoted region by checking quote
	// balance of the prefix up to the sign.
	prefix := trimmed[:j-1]
	if quoteBalanceOdd(prefix) {
		return s, 0, nil
	}
	n, err := strconv.Atoi(trimmed[j-1:])
	if err != nil {
		return s, 0, nil
	}
	return strings.TrimSpace(prefix), n, nil
}

// quoteBalanceOdd reports whether s ends inside an unterminated quoted
// region (an odd number of unescaped quote characters opened but not yet
// closed).
func quoteBalanceOdd(s string) bool {
	escape := false
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escape {
			escape = false
			continue
		}
		if c == '\\' {
			escape = true
			continue
		}
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		if c == '\'' || c == '"' {
			quote = c
		}
	}
	return quote != 0
}

// unquoteValue strips one matching pair of surrounding quotes, honoring
// backslash escapes inside.
func unquoteValue(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		inner := s[1 : len(s)-1]
		var out strings.Builder
		escape := false
		for i := 0; i < len(inner); i++ {
			c := inner[i]
			if escape {
				out.WriteByte(c)
				escape = false
				continue
			}
			if c == '\\' {
				escape = true
				continue
			}
			out.WriteByte(c)
		}
		return out.String(), nil
	}
	return s, nil
}

// parseSizeSpec parses "OP VALUE" where OP in {<,<=,>,>=,=} and VALUE is a
// number with an optional KB|MB|GB suffix (powers of 1024).
func parseSizeSpec(s string) (string, uint64, error) {
	s = strings.TrimSpace(s)
	ops := []string{"<=", ">=", "<", ">", "="}
	var op string
	for _, candidate := range ops {
		if strings.HasPrefix(s, candidate) {
			op = candidate
			s = strings.TrimSpace(s[len(candidate):])
			break
		}
	}
	if op == "" {
		return "", 0, pcerr.Inputf("missing comparison operator in size spec %q", s)
	}
	mult := uint64(1)
	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, "KB"):
		mult = 1024
		s = s[:len(s)-2]
	case strings.HasSuffix(upper, "MB"):
		mult = 1024 * 1024
		s = s[:len(s)-2]
	case strings.HasSuffix(upper, "GB"):
		mult = 1024 * 1024 * 1024
		s = s[:len(s)-2]
	}
	s = strings.TrimSpace(s)
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", 0, pcerr.WrapInput(fmt.Sprintf("size value %q", s), err)
	}
	return op, uint64(val * float64(mult)), nil
}

// Evaluate reports whether p matches the given page.
func (p *Predicate) Evaluate(doc Analyzer, page int) (bool, error) {
	switch p.Kind {
	case PredContains:
		text, err := doc.PageText(page)
		if err != nil {
			return false, err
		}
		if p.CaseInsensitive {
			return strings.Contains(foldCaser.String(text), foldCaser.String(p.Text)), nil
		}
		return strings.Contains(text, p.Text), nil
	case PredRegex:
		text, err := doc.PageText(page)
		if err != nil {
			return false, err
		}
		return p.compiledRegex.MatchString(text), nil
	case PredLineStarts:
		text, err := doc.PageText(page)
		if err != nil {
			return false, err
		}
		needle := p.Text
		if p.CaseInsensitive {
			needle = foldCaser.String(needle)
		}
		for _, line := range strings.Split(text, "\n") {
			trimmed := strings.TrimSpace(line)
			if p.CaseInsensitive {
				trimmed = foldCaser.String(trimmed)
			}
			if strings.HasPrefix(trimmed, needle) {
				return true, nil
			}
		}
		return false, nil
	case PredType:
		kind, err := doc.PageKind(page)
		if err != nil {
			return false, err
		}
		return kind == p.TypeValue, nil
	case PredSize:
		size, err := doc.PageSize(page)
		if err != nil {
			return false, err
		}
		return compareSize(size, p.SizeOp, p.SizeBytes), nil
	default:
		return false, pcerr.Evaluation("unknown predicate kind")
	}
}

func compareSize(actual uint64, op string, want uint64) bool {
	switch op {
	case "<":
		return actual < want
	case "<=":
		return actual <= want
	case ">":
		return actual > want
	case ">=":
		return actual >= want
	case "=":
		return actual == want
	default:
		return false
	}
}

// MatchPages evaluates p against every page of doc, applying the trailing
// page-shift offset and clipping, returning a sorted, deduplicated page
// list.
func MatchPages(p *Predicate, doc Analyzer) ([]int, error) {
	n := doc.PageCount()
	seen := make(map[int]struct{})
	var out []int
	for page := 1; page <= n; page++ {
		ok, err := p.Evaluate(doc, page)
		if err != nil {
			return nil, pcerr.WrapEvaluation(fmt.Sprintf("evaluating %q on page %d", p.Raw, page), err)
		}
		if !ok {
			continue
		}
		shifted := page + p.Offset
		if shifted < 1 || shifted > n {
			continue
		}
		if _, dup := seen[shifted]; dup {
			continue
		}
		seen[shifted] = struct{}{}
		out = append(out, shifted)
	}
	sortInts(out)
	return out, nil
}
