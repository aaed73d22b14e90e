package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pagecarve/config"
)

func TestParseArguments_PathOnly(t *testing.T) {
	a, err := parseArguments([]string{"doc.pdf"})
	require.NoError(t, err)
	require.Equal(t, "doc.pdf", a.Path)
	require.Empty(t, a.Selector)
	require.Equal(t, 1, a.Workers)
	require.Equal(t, config.GSDefault, a.GSQuality)
}

func TestParseArguments_PathAndSelector(t *testing.T) {
	a, err := parseArguments([]string{"doc.pdf", "1-5"})
	require.NoError(t, err)
	require.Equal(t, "doc.pdf", a.Path)
	require.Equal(t, "1-5", a.Selector)
}

func TestParseArguments_ExtraPositionalArgumentErrors(t *testing.T) {
	_, err := parseArguments([]string{"doc.pdf", "1-5", "extra"})
	require.Error(t, err)
}

func TestParseArguments_ExtractPagesWithEqualsForm(t *testing.T) {
	a, err := parseArguments([]string{"doc.pdf", "--extract-pages=2-4"})
	require.NoError(t, err)
	require.True(t, a.ExtractPages)
	require.Equal(t, "2-4", a.ExtractPagesSpec)
}

func TestParseArguments_ExtractPagesWithSeparateValue(t *testing.T) {
	a, err := parseArguments([]string{"doc.pdf", "--extract-pages", "2-4"})
	require.NoError(t, err)
	require.True(t, a.ExtractPages)
	require.Equal(t, "2-4", a.ExtractPagesSpec)
}

func TestParseArguments_FlagMissingValueErrors(t *testing.T) {
	_, err := parseArguments([]string{"doc.pdf", "--extract-pages"})
	require.Error(t, err)
}

func TestParseArguments_NoPathErrors(t *testing.T) {
	_, err := parseArguments([]string{"--dry-run"})
	require.Error(t, err)
}

func TestParseArguments_UnknownFlagErrors(t *testing.T) {
	_, err := parseArguments([]string{"doc.pdf", "--bogus-flag"})
	require.Error(t, err)
}

func TestParseArguments_DedupAndConflictsEquals(t *testing.T) {
	a, err := parseArguments([]string{"doc.pdf", "--dedup=warn", "--conflicts=skip"})
	require.NoError(t, err)
	require.Equal(t, config.DedupWarn, a.Dedup)
	require.True(t, a.DedupSet)
	require.Equal(t, config.ConflictSkip, a.Conflicts)
	require.True(t, a.ConflictsSet)
}

func TestParseArguments_InvalidDedupValueErrors(t *testing.T) {
	_, err := parseArguments([]string{"doc.pdf", "--dedup=bogus"})
	require.Error(t, err)
}

func TestParseArguments_WorkersRequiresPositiveInt(t *testing.T) {
	_, err := parseArguments([]string{"doc.pdf", "--workers", "0"})
	require.Error(t, err)

	a, err := parseArguments([]string{"doc.pdf", "--workers", "4"})
	require.NoError(t, err)
	require.Equal(t, 4, a.Workers)
}

func TestParseArguments_PatternSourcePageRequiresPositiveInt(t *testing.T) {
	_, err := parseArguments([]string{"doc.pdf", "--pattern-source-page", "0"})
	require.Error(t, err)
}

func TestParseArguments_ScrapePatternAccumulates(t *testing.T) {
	a, err := parseArguments([]string{
		"doc.pdf",
		"--scrape-pattern", "Invoice:r1wd1",
		"--scrape-pattern", "Total:r1wd1",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Invoice:r1wd1", "Total:r1wd1"}, a.ScrapePatterns)
}

func TestParseArguments_BooleanFlagsSetIndependently(t *testing.T) {
	a, err := parseArguments([]string{
		"doc.pdf",
		"--separate-files", "--respect-groups", "--recursive", "--batch",
		"--smart-names", "--no-timestamp", "--dry-run",
	})
	require.NoError(t, err)
	require.True(t, a.SeparateFiles)
	require.True(t, a.RespectGroups)
	require.True(t, a.Recursive)
	require.True(t, a.Batch)
	require.True(t, a.SmartNames)
	require.True(t, a.NoTimestamp)
	require.True(t, a.DryRun)
}

func TestParseArguments_GSQualityEqualsForm(t *testing.T) {
	a, err := parseArguments([]string{"doc.pdf", "--gs-quality=prepress"})
	require.NoError(t, err)
	require.Equal(t, config.GSPrepress, a.GSQuality)
}
