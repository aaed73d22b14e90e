package selector

import (
	"bufio"
	"path/filepath"
	"strconv"
	"strings"

	"pagecarve/pcerr"
)

// FS is the narrow filesystem collaborator the core pipeline needs: reading
// a pattern file's bytes. The composition root supplies an os-backed
// implementation; tests supply an in-memory fake.
type FS interface {
	ReadFile(path string) ([]byte, error)
}

var specKeywords = map[string]struct{}{"all": {}, "odd": {}, "even": {}}

// looksLikeSpecLine reports whether a line from a pattern file is a
// recognizable selector fragment: numeric, a keyword, a predicate, a range
// pattern, or a boolean expression.
func looksLikeSpecLine(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if _, ok := specKeywords[strings.ToLower(s)]; ok {
		return true
	}
	if LooksLikePredicate(s) {
		return true
	}
	if IsRangePattern(s) {
		return true
	}
	if ContainsUnquotedBooleanOperator(s) {
		return true
	}
	if looksNumericForm(s) {
		return true
	}
	return false
}

func looksNumericForm(s string) bool {
	if _, err := strconv.Atoi(s); err == nil {
		return true
	}
	if strings.Contains(s, "-") || strings.Contains(s, ":") {
		return true
	}
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "first ") || strings.HasPrefix(lower, "last ")
}

// ExpandFileSelectors replaces every unquoted "file:PATH" token in s with
// the comma-joined, validated contents of PATH. Relative paths resolve
// against baseDir. Returns the expanded string and any warnings produced by
// skipped invalid lines.
func ExpandFileSelectors(s string, fsys FS, baseDir string) (string, []string, error) {
	var warnings []string
	out, found, err := replaceFileTokens(s, func(path string) (string, error) {
		resolved := path
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(baseDir, resolved)
		}
		data, err := fsys.ReadFile(resolved)
		if err != nil {
			return "", pcerr.IO(resolved, err)
		}
		var valid []string
		scanner := bufio.NewScanner(strings.NewReader(string(data)))
		for scanner.Scan() {
			line := scanner.Text()
			if idx := strings.Index(line, "#"); idx >= 0 {
				line = line[:idx]
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !looksLikeSpecLine(line) {
				warnings = append(warnings, "skipping invalid pattern-file line: "+line)
				continue
			}
			valid = append(valid, line)
		}
		if len(valid) == 0 {
			return "", pcerr.Inputf("no valid selector lines found in %s", resolved)
		}
		return strings.Join(valid, ","), nil
	})
	if err != nil {
		return "", warnings, err
	}
	if !found {
		return s, warnings, nil
	}
	return out, warnings, nil
}

// replaceFileTokens scans s outside quoted regions for "file:" and replaces
// the following non-whitespace, non-comma run (the path) using replacer.
func replaceFileTokens(s string, replacer func(path string) (string, error)) (string, bool, error) {
	var out strings.Builder
	quote := byte(0)
	escape := false
	found := false
	i := 0
	for i < len(s) {
		c := s[i]
		if escape {
			out.WriteByte(c)
			escape = false
			i++
			continue
		}
		if quote != 0 {
			out.WriteByte(c)
			if c == quote {
				quote = 0
			} else if c == '\\' {
				escape = true
			}
			i++
			continue
		}
		if c == '\'' || c == '"' {
			quote = c
			out.WriteByte(c)
			i++
			continue
		}
		if c == '\\' {
			escape = true
			out.WriteByte(c)
			i++
			continue
		}
		if strings.HasPrefix(s[i:], "file:") {
			j := i + len("file:")
			start := j
			for j < len(s) && s[j] != ',' && s[j] != ' ' && s[j] != '\t' {
				j++
			}
			path := s[start:j]
			if path == "" {
				out.WriteString(s[i:j])
				i = j
				continue
			}
			found = true
			replacement, err := replacer(path)
			if err != nil {
				return "", true, err
			}
			out.WriteString(replacement)
			i = j
			continue
		}
		out.WriteByte(c)
		i++
	}
	return out.String(), found, nil
}
