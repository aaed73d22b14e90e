package scrape

import (
	"regexp"
	"strings"
)

// numberSubstringRe matches a signed decimal number, used to pull the
// numeric substring out of a word in non-flexible mode (e.g. "$42.00" ->
// "42.00", leaving the currency sign behind).
var numberSubstringRe = regexp.MustCompile(`-?\d+(?:[.,]\d+)*`)

// TextSource supplies the text of a page for keyword scanning. Implemented
// outside this package (by the document analyzer) so the engine stays
// testable against plain strings.
type TextSource interface {
	PageText(page int) (string, error)
}

type cursor struct {
	line, word int
}

// Extract locates a pattern's keyword among selectedPages (filtered first
// by the pattern's page_spec, if any), applies its movement chain, and
// extracts and trims the resulting value. ok is false when the keyword is
// not found, a movement leaves the document, or an extraction otherwise has
// nothing to return — callers fall back to the template engine's default
// substitution in that case.
func Extract(p *Pattern, src TextSource, selectedPages []int) (string, bool, error) {
	pages := selectedPages
	if p.PageSpec != nil {
		pages = selectByPositionalSpec(selectedPages, p.PageSpec)
	}

	type match struct {
		page, line, word int
		lines            []string
	}
	var matches []match
	for _, pg := range pages {
		text, err := src.PageText(pg)
		if err != nil {
			return "", false, err
		}
		lines := strings.Split(text, "\n")
		li, wi, found := locateKeyword(lines, p.Keyword)
		if found {
			matches = append(matches, match{page: pg, line: li, word: wi, lines: lines})
		}
	}
	if len(matches) == 0 {
		return "", false, nil
	}

	chosen := matches
	if p.MatchSpec != nil {
		idxs := positionalIndices(p.MatchSpec, len(matches))
		chosen = nil
		for _, i := range idxs {
			chosen = append(chosen, matches[i])
		}
	}
	if len(chosen) == 0 {
		return "", false, nil
	}

	m := chosen[0]
	cur := cursor{line: m.line, word: m.word}
	keywordLine := m.line

	for _, mv := range p.Movements {
		var ok bool
		cur, ok = applyMovement(m.lines, cur, mv)
		if !ok {
			return "", false, nil
		}
	}

	value, ok := extractValue(m.lines, keywordLine, p.Keyword, cur, p)
	if !ok {
		return "", false, nil
	}
	return ApplyTrims(value, p.StartTrim, p.EndTrim), true, nil
}

// locateKeyword finds the first case-insensitive occurrence of keyword,
// scanning lines top to bottom, and returns the word index whose span first
// reaches past the keyword's end offset. Word offsets are reconstructed by
// walking whitespace-delimited fields and assuming a single separating
// space between them, matching how the original scraper computes them.
func locateKeyword(lines []string, keyword string) (line, word int, ok bool) {
	lowerKeyword := strings.ToLower(keyword)
	for li, l := range lines {
		idx := strings.Index(strings.ToLower(l), lowerKeyword)
		if idx < 0 {
			continue
		}
		endPos := idx + len(keyword)
		words := strings.Fields(l)
		if len(words) == 0 {
			continue
		}
		charPos := 0
		for wi, w := range words {
			wordEnd := charPos + len(w)
			if endPos <= wordEnd {
				return li, wi, true
			}
			charPos = wordEnd + 1
		}
		return li, len(words) - 1, true
	}
	return 0, 0, false
}

// applyMovement advances cur by one movement step. Vertical movement (u/d)
// clamps to the document's line bounds rather than failing: a label whose
// value sits alongside it on the same line can still be reached with a u/d
// hop that would otherwise run off either edge of the page. Horizontal
// movement (l/r) fails outright if it would step before the first word or
// past the last word of the current line, since within a single line there
// is no sensible clamp target.
func applyMovement(lines []string, cur cursor, m Movement) (cursor, bool) {
	switch m.Direction {
	case DirUp:
		line := clampLine(cur.line-m.Distance, len(lines))
		return cursor{line: line, word: 0}, true
	case DirDown:
		line := clampLine(cur.line+m.Distance, len(lines))
		return cursor{line: line, word: 0}, true
	case DirLeft:
		w := cur.word - m.Distance
		if w < 0 {
			return cur, false
		}
		return cursor{line: cur.line, word: w}, true
	case DirRight:
		words := strings.Fields(lines[cur.line])
		w := cur.word + m.Distance
		if w >= len(words) {
			return cur, false
		}
		return cursor{line: cur.line, word: w}, true
	default:
		return cur, false
	}
}

func clampLine(line, n int) int {
	if n == 0 {
		return 0
	}
	if line < 0 {
		return 0
	}
	if line >= n {
		return n - 1
	}
	return line
}

// extractValue reads the value selected by cur per the pattern's extract
// type and count. When a "ln" extraction lands back on the keyword's own
// line, the label (the keyword plus any immediately following punctuation
// and whitespace) is stripped from that line before it contributes text,
// so a same-line "Label: value" pattern yields just the value.
func extractValue(lines []string, keywordLine int, keyword string, cur cursor, p *Pattern) (string, bool) {
	switch p.Type {
	case ExtractWords:
		return extractWords(lines, cur, p)
	case ExtractLines:
		return extractLines(lines, keywordLine, keyword, cur, p)
	case ExtractNumbers:
		return extractNumbers(lines, cur, p)
	default:
		return "", false
	}
}

func extractWords(lines []string, cur cursor, p *Pattern) (string, bool) {
	words := strings.Fields(lines[cur.line])
	if cur.word >= len(words) {
		return "", false
	}
	end := len(words)
	if p.Count > 0 {
		end = cur.word + p.Count
		if end > len(words) {
			end = len(words)
		}
	}
	return strings.Join(words[cur.word:end], " "), true
}

func extractLines(lines []string, keywordLine int, keyword string, cur cursor, p *Pattern) (string, bool) {
	if cur.line >= len(lines) {
		return "", false
	}
	end := len(lines) - 1
	if p.Count > 0 {
		end = cur.line + p.Count - 1
		if end > len(lines)-1 {
			end = len(lines) - 1
		}
	}

	var parts []string
	for i := cur.line; i <= end; i++ {
		line := lines[i]
		if i == keywordLine {
			line = stripLabelPrefix(line, keyword)
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, "\n"), true
}

func stripLabelPrefix(line, keyword string) string {
	idx := strings.Index(strings.ToLower(line), strings.ToLower(keyword))
	if idx < 0 {
		return line
	}
	rest := line[idx+len(keyword):]
	return strings.TrimSpace(strings.TrimLeft(rest, ":;,- \t"))
}

func extractNumbers(lines []string, cur cursor, p *Pattern) (string, bool) {
	words := strings.Fields(lines[cur.line])
	if cur.word >= len(words) {
		return "", false
	}

	if p.Count == 0 {
		var collected []string
		for i := cur.word; i < len(words); i++ {
			if !containsDigit(words[i]) {
				break
			}
			collected = append(collected, numericToken(words[i], p.Flexible))
		}
		return strings.Join(collected, " "), true
	}

	var collected []string
	for i := cur.word; i < len(words) && len(collected) < p.Count; i++ {
		if containsDigit(words[i]) {
			collected = append(collected, numericToken(words[i], p.Flexible))
		}
	}
	if len(collected) < p.Count {
		return "", false
	}
	return strings.Join(collected, " "), true
}

func containsDigit(s string) bool {
	return strings.IndexAny(s, "0123456789") >= 0
}

func numericToken(word string, flexible bool) string {
	if !flexible {
		return numberSubstringRe.FindString(word)
	}
	loc := numericTokenRe.FindAllString(word, -1)
	return strings.Join(loc, "-")
}

// selectByPositionalSpec narrows pages to those in the positions a
// page_spec names within that same list.
func selectByPositionalSpec(pages []int, spec *PageOrMatchSpec) []int {
	idxs := positionalIndices(spec, len(pages))
	out := make([]int, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, pages[i])
	}
	return out
}

// positionalIndices resolves a spec against a list of length n into
// 0-based indices into that list.
func positionalIndices(spec *PageOrMatchSpec, n int) []int {
	switch spec.Kind {
	case SpecAll:
		idxs := make([]int, n)
		for i := range idxs {
			idxs[i] = i
		}
		return idxs
	case SpecSingle:
		if spec.A < 1 || spec.A > n {
			return nil
		}
		return []int{spec.A - 1}
	case SpecRange:
		a, b := spec.A, spec.B
		if a < 1 {
			a = 1
		}
		if b > n {
			b = n
		}
		if a > b {
			return nil
		}
		var idxs []int
		for i := a; i <= b; i++ {
			idxs = append(idxs, i-1)
		}
		return idxs
	case SpecFrom:
		a := spec.A
		if a < 1 {
			a = 1
		}
		var idxs []int
		for i := a; i <= n; i++ {
			idxs = append(idxs, i-1)
		}
		return idxs
	case SpecLast:
		start := n - spec.A
		if start < 0 {
			start = 0
		}
		var idxs []int
		for i := start; i < n; i++ {
			idxs = append(idxs, i)
		}
		return idxs
	default:
		return nil
	}
}
