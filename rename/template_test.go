package rename

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTemplate_Basic(t *testing.T) {
	placeholders, err := ParseTemplate("{name}_{year}.pdf")
	require.NoError(t, err)
	require.Len(t, placeholders, 2)
	require.Equal(t, "name", placeholders[0].Name)
	require.Equal(t, "year", placeholders[1].Name)
}

func TestParseTemplate_Fallback(t *testing.T) {
	placeholders, err := ParseTemplate("{name|unknown}.pdf")
	require.NoError(t, err)
	require.True(t, placeholders[0].HasFallback)
	require.Equal(t, "unknown", placeholders[0].Fallback)
}

func TestParseTemplate_UnmatchedBrace(t *testing.T) {
	_, err := ParseTemplate("{name.pdf")
	require.Error(t, err)

	_, err = ParseTemplate("name}.pdf")
	require.Error(t, err)
}

func TestParseTemplate_NestedBraceIsError(t *testing.T) {
	_, err := ParseTemplate("{a{b}}.pdf")
	require.Error(t, err)
}

func TestParseTemplate_EmptyPlaceholder(t *testing.T) {
	_, err := ParseTemplate("{}.pdf")
	require.Error(t, err)
}

func TestRender_SubstitutesValues(t *testing.T) {
	name, err := Render("{customer}_{year}", map[string]string{"customer": "Acme Corp", "year": "2024"})
	require.NoError(t, err)
	require.Equal(t, "Acme-Corp_2024.pdf", name)
}

func TestRender_FallsBackToLiteral(t *testing.T) {
	name, err := Render("{customer|unknown-customer}", map[string]string{})
	require.NoError(t, err)
	require.Equal(t, "unknown-customer.pdf", name)
}

func TestRender_UnresolvedPlaceholderUsesSentinel(t *testing.T) {
	name, err := Render("{customer}", map[string]string{})
	require.NoError(t, err)
	require.Equal(t, "NO-CUSTOMER.pdf", name)
}

func TestRender_DoesNotDoublePdfSuffix(t *testing.T) {
	name, err := Render("{name}.PDF", map[string]string{"name": "report"})
	require.NoError(t, err)
	require.Equal(t, "report.PDF", name)
}
