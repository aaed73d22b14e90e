package scrape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePattern_Basic(t *testing.T) {
	p, err := ParsePattern("Total:d1wd2")
	require.NoError(t, err)
	require.Equal(t, "Total", p.Keyword)
	require.Equal(t, []Movement{{Direction: DirDown, Distance: 1}}, p.Movements)
	require.Equal(t, ExtractWords, p.Type)
	require.Equal(t, 2, p.Count)
	require.Equal(t, "total", p.VariableName)
}

func TestParsePattern_KeywordInternalSpacesPreserved(t *testing.T) {
	p, err := ParsePattern("Invoice Number:r1wd1")
	require.NoError(t, err)
	require.Equal(t, "Invoice Number", p.Keyword)
	require.Equal(t, "invoice_number", p.VariableName)
}

func TestParsePattern_ExplicitVariableWithSpacedKeyword(t *testing.T) {
	p, err := ParsePattern("invoice=Invoice Number:r1wd1")
	require.NoError(t, err)
	require.Equal(t, "invoice", p.VariableName)
	require.True(t, p.ExplicitVar)
	require.Equal(t, "Invoice Number", p.Keyword)
}

func TestParsePattern_ExplicitVariable(t *testing.T) {
	p, err := ParsePattern("amount=Total:wd1")
	require.NoError(t, err)
	require.Equal(t, "amount", p.VariableName)
	require.True(t, p.ExplicitVar)
}

func TestParsePattern_InvalidExplicitVariable(t *testing.T) {
	p, err := ParsePattern("1bad=Total:wd1")
	// "1bad" is not a valid identifier so it's treated as part of the
	// keyword instead of a variable assignment, and should parse fine.
	require.NoError(t, err)
	require.Equal(t, "1bad=Total", p.Keyword)
}

func TestParsePattern_ConflictingVerticalMovement(t *testing.T) {
	_, err := ParsePattern("Total:u1d1wd1")
	require.Error(t, err)
}

func TestParsePattern_ConflictingHorizontalMovement(t *testing.T) {
	_, err := ParsePattern("Total:l1r1wd1")
	require.Error(t, err)
}

func TestParsePattern_FlexibleNumberExtraction(t *testing.T) {
	p, err := ParsePattern("Total:nb1-")
	require.NoError(t, err)
	require.Equal(t, ExtractNumbers, p.Type)
	require.True(t, p.Flexible)
}

func TestParsePattern_StartAndEndTrims(t *testing.T) {
	p, err := ParsePattern("Total:wd0^ch2$wd1")
	require.NoError(t, err)
	require.Equal(t, []Trim{{Kind: TrimChars, Count: 2}}, p.StartTrim)
	require.Equal(t, []Trim{{Kind: TrimWords, Count: 1}}, p.EndTrim)
}

func TestParsePattern_PageAndMatchRange(t *testing.T) {
	p, err := ParsePattern("Total:wd1pg1-3mt2")
	require.NoError(t, err)
	require.Equal(t, &PageOrMatchSpec{Kind: SpecRange, A: 1, B: 3}, p.PageSpec)
	require.Equal(t, &PageOrMatchSpec{Kind: SpecSingle, A: 2}, p.MatchSpec)
}

func TestParsePattern_MissingColon(t *testing.T) {
	_, err := ParsePattern("Total")
	require.Error(t, err)
}

func TestParsePattern_EmptyKeyword(t *testing.T) {
	_, err := ParsePattern(":wd1")
	require.Error(t, err)
}

func TestParsePattern_MalformedSuffix(t *testing.T) {
	_, err := ParsePattern("Total:zz1")
	require.Error(t, err)
}

func TestParsePatternSet_DuplicateVariableNameErrors(t *testing.T) {
	_, err := ParsePatternSet([]string{"Total:wd1", "total:wd2"})
	require.Error(t, err)
}

func TestDeriveVariableName(t *testing.T) {
	require.Equal(t, "invoice_number", DeriveVariableName("Invoice Number:"))
	require.Equal(t, "total", DeriveVariableName("Total"))
}

func TestParseSpec_LastK(t *testing.T) {
	p, err := ParsePattern("Total:wd1pg-2")
	require.NoError(t, err)
	require.Equal(t, &PageOrMatchSpec{Kind: SpecLast, A: 2}, p.PageSpec)
}

func TestParseSpec_FromA(t *testing.T) {
	p, err := ParsePattern("Total:wd1pg3-")
	require.NoError(t, err)
	require.Equal(t, &PageOrMatchSpec{Kind: SpecFrom, A: 3}, p.PageSpec)
}

func TestParseSpec_AllIsZero(t *testing.T) {
	p, err := ParsePattern("Total:wd1pg0")
	require.NoError(t, err)
	require.Equal(t, &PageOrMatchSpec{Kind: SpecAll}, p.PageSpec)
}
