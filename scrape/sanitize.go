package scrape

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pagecarve/config"
)

var (
	monetaryLeadRe  = regexp.MustCompile(`^[$£€¥]?[\d,]+\.?\d*`)
	currencySignsRe = regexp.MustCompile(`[$£€¥,]`)
	reservedCharsRe = regexp.MustCompile(`[<>:"/\\|?*]`)
	unsafeRunRe     = regexp.MustCompile(`[^\w.\-]`)
	dashRunRe       = regexp.MustCompile(`-+`)
)

// SanitizeForFilename converts scraped or templated text into a
// filesystem-safe filename component. Values that begin with a monetary
// amount or a plain number first have currency symbols and thousands
// separators dropped and every decimal point turned into a dash. Then every
// value has filesystem-reserved characters and other punctuation replaced
// with a dash, runs of dashes collapsed, and leading/trailing dashes and
// dots trimmed.
func SanitizeForFilename(text string) string {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return "unknown"
	}

	if monetaryLeadRe.MatchString(clean) {
		clean = currencySignsRe.ReplaceAllString(clean, "")
		clean = strings.ReplaceAll(clean, ".", "-")
	}
	clean = reservedCharsRe.ReplaceAllString(clean, "-")
	clean = unsafeRunRe.ReplaceAllString(clean, "-")

	clean = dashRunRe.ReplaceAllString(clean, "-")
	clean = strings.Trim(clean, "-.")

	if len(clean) > config.MaxScrapedValueLength {
		clean = strings.TrimRight(clean[:config.MaxScrapedValueLength], "-.")
	}
	if clean == "" {
		return "unknown"
	}
	return clean
}

var caseFolder = cases.Lower(language.Und)

// SanitizeVariableName converts free text (typically a pattern keyword)
// into a lowercase identifier: punctuation is stripped, whitespace runs
// become a single underscore, and the result is truncated on a word
// boundary to maxLength.
func SanitizeVariableName(text string, maxLength int) string {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return "unknown"
	}
	clean = caseFolder.String(clean)

	var b strings.Builder
	for _, r := range clean {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || isSpace(r) {
			b.WriteRune(r)
		}
	}
	fields := strings.Fields(b.String())
	clean = strings.Join(fields, "_")
	clean = dashToUnderscoreRuns(clean)
	clean = strings.Trim(clean, "_")

	if clean != "" && clean[0] >= '0' && clean[0] <= '9' {
		clean = "var_" + clean
	}

	if len(clean) <= maxLength {
		if clean == "" {
			return "unknown"
		}
		return clean
	}

	var truncated string
	for _, part := range strings.Split(clean, "_") {
		candidate := part
		if truncated != "" {
			candidate = truncated + "_" + part
		}
		if len(candidate) > maxLength {
			break
		}
		truncated = candidate
	}
	if truncated == "" {
		truncated = strings.TrimRight(clean[:maxLength], "_")
	}
	if truncated == "" {
		return "unknown"
	}
	return truncated
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

var underscoreRunRe = regexp.MustCompile(`_+`)

func dashToUnderscoreRuns(s string) string {
	return underscoreRunRe.ReplaceAllString(s, "_")
}
