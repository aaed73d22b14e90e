package selector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pagecarve/pcerr"
)

func TestParseNumeric_SinglePage(t *testing.T) {
	form, err := parseNumeric("3", 10)
	require.NoError(t, err)
	require.Equal(t, []int{3}, form.pages)
	require.True(t, form.ascending)
}

func TestParseNumeric_OutOfRange(t *testing.T) {
	_, err := parseNumeric("20", 10)
	require.Error(t, err)
	require.IsType(t, &pcerr.RangeError{}, err)
}

func TestParseNumeric_DashRangeOpenEnded(t *testing.T) {
	form, err := parseNumeric("2-", 10)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9, 10}, form.pages)
}

func TestParseNumeric_DashRangeOpenStart(t *testing.T) {
	form, err := parseNumeric("-3", 10)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, form.pages)
}

func TestParseNumeric_DashRangeDescending(t *testing.T) {
	form, err := parseNumeric("5-2", 10)
	require.NoError(t, err)
	require.Equal(t, []int{5, 4, 3, 2}, form.pages)
	require.False(t, form.ascending)
}

func TestParseNumeric_FirstLast(t *testing.T) {
	first, err := parseNumeric("first3", 10)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, first.pages)

	last, err := parseNumeric("last3", 10)
	require.NoError(t, err)
	require.Equal(t, []int{8, 9, 10}, last.pages)
}

func TestParseNumeric_FirstLastClampedToPageCount(t *testing.T) {
	form, err := parseNumeric("first100", 4)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 4}, form.pages)
}

func TestParseNumeric_Slice(t *testing.T) {
	form, err := parseNumeric("2:8:2", 10)
	require.NoError(t, err)
	require.Equal(t, []int{2, 4, 6, 8}, form.pages)
}

func TestParseNumeric_SliceDefaultsDescribedAsEveryTwo(t *testing.T) {
	form, err := parseNumeric("::2", 10)
	require.NoError(t, err)
	require.Equal(t, "every-2", form.description)
	require.Equal(t, []int{1, 3, 5, 7, 9}, form.pages)
}

func TestParseNumeric_ZeroStepIsInvalid(t *testing.T) {
	_, err := parseNumeric("1:5:0", 10)
	require.Error(t, err)
}

func TestLooksLikeNumericArgument(t *testing.T) {
	require.True(t, looksLikeNumericArgument("5"))
	require.True(t, looksLikeNumericArgument("2-5"))
	require.True(t, looksLikeNumericArgument("first5"))
	require.True(t, looksLikeNumericArgument("1:5:2"))
	require.False(t, looksLikeNumericArgument("contains:foo"))
}
