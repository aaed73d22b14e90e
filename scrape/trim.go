package scrape

import (
	"regexp"
	"strings"
)

var numericTokenRe = regexp.MustCompile(`\d+(?:[.,]\d+)*`)

// ApplyTrims applies start trimmers in list order, then end trimmers in
// list order, to value. Each trim operates on the respective boundary; if a
// trim exceeds the remaining content, the result becomes the empty string
// and subsequent trims are no-ops.
func ApplyTrims(value string, start, end []Trim) string {
	for _, t := range start {
		value = trimStart(value, t)
		if value == "" {
			return ""
		}
	}
	for _, t := range end {
		value = trimEnd(value, t)
		if value == "" {
			return ""
		}
	}
	return value
}

func trimStart(value string, t Trim) string {
	switch t.Kind {
	case TrimChars:
		if t.Count >= len(value) {
			return ""
		}
		return value[t.Count:]
	case TrimWords:
		words := strings.Fields(value)
		if t.Count >= len(words) {
			return ""
		}
		return strings.Join(words[t.Count:], " ")
	case TrimLines:
		lines := strings.Split(value, "\n")
		if t.Count >= len(lines) {
			return ""
		}
		return strings.Join(lines[t.Count:], "\n")
	case TrimNumbers:
		return trimNumericTokensStart(value, t.Count)
	default:
		return value
	}
}

func trimEnd(value string, t Trim) string {
	switch t.Kind {
	case TrimChars:
		if t.Count >= len(value) {
			return ""
		}
		return value[:len(value)-t.Count]
	case TrimWords:
		words := strings.Fields(value)
		if t.Count >= len(words) {
			return ""
		}
		return strings.Join(words[:len(words)-t.Count], " ")
	case TrimLines:
		lines := strings.Split(value, "\n")
		if t.Count >= len(lines) {
			return ""
		}
		return strings.Join(lines[:len(lines)-t.Count], "\n")
	case TrimNumbers:
		return trimNumericTokensEnd(value, t.Count)
	default:
		return value
	}
}

func trimNumericTokensStart(value string, count int) string {
	removed := 0
	cursor := 0
	for removed < count {
		loc := numericTokenRe.FindStringIndex(value[cursor:])
		if loc == nil {
			return ""
		}
		cursor += loc[1]
		removed++
	}
	return value[cursor:]
}

func trimNumericTokensEnd(value string, count int) string {
	matches := numericTokenRe.FindAllStringIndex(value, -1)
	if len(matches) < count {
		return ""
	}
	cut := matches[len(matches)-count][0]
	return value[:cut]
}
