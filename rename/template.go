// Package rename implements the Template Engine, Filename Planner, and
// Conflict Resolver: turning scraped variables and selection groups into
// concrete output paths.
package rename

import (
	"strings"

	"pagecarve/pcerr"
	"pagecarve/scrape"
)

// Placeholder is one parsed "{name}" or "{name|fallback}" template slot.
type Placeholder struct {
	Start, End int // byte offsets in the original template, End exclusive
	Name       string
	Fallback   string
	HasFallback bool
}

// ParseTemplate scans raw for "{name}" / "{name|fallback}" placeholders.
// Braces do not nest; an unbalanced '{' or '}' is an error.
func ParseTemplate(raw string) ([]Placeholder, error) {
	var out []Placeholder
	depth := 0
	start := -1
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			if depth > 0 {
				return nil, pcerr.Inputf("template %q has nested '{'", raw)
			}
			depth = 1
			start = i
		case '}':
			if depth == 0 {
				return nil, pcerr.Inputf("template %q has unmatched '}'", raw)
			}
			depth = 0
			body := raw[start+1 : i]
			if body == "" {
				return nil, pcerr.Inputf("template %q has empty placeholder", raw)
			}
			p := Placeholder{Start: start, End: i + 1}
			if bar := strings.IndexByte(body, '|'); bar >= 0 {
				p.Name = body[:bar]
				p.Fallback = body[bar+1:]
				p.HasFallback = true
			} else {
				p.Name = body
			}
			if p.Name == "" {
				return nil, pcerr.Inputf("template %q has an unnamed placeholder", raw)
			}
			out = append(out, p)
		}
	}
	if depth != 0 {
		return nil, pcerr.Inputf("template %q has unmatched '{'", raw)
	}
	return out, nil
}

// Render substitutes every placeholder in raw using values, falling back in
// order to: the variable's own value, the placeholder's literal fallback
// text, or the "NO-<NAME>" sentinel. Every substituted value is sanitized
// independently before insertion. ".pdf" is appended if the rendered name
// doesn't already end with it (case-insensitively).
func Render(raw string, values map[string]string) (string, error) {
	placeholders, err := ParseTemplate(raw)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	cursor := 0
	for _, p := range placeholders {
		b.WriteString(raw[cursor:p.Start])

		var resolved string
		if v, ok := values[p.Name]; ok && v != "" {
			resolved = scrape.SanitizeForFilename(v)
		} else if p.HasFallback {
			resolved = scrape.SanitizeForFilename(p.Fallback)
		} else {
			resolved = "NO-" + strings.ToUpper(p.Name)
		}
		b.WriteString(resolved)
		cursor = p.End
	}
	b.WriteString(raw[cursor:])

	name := b.String()
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name, nil
}
