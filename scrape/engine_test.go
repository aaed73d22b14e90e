package scrape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	pages map[int]string
}

func (f *fakeSource) PageText(page int) (string, error) {
	return f.pages[page], nil
}

func TestExtract_SameLineLabelValue(t *testing.T) {
	p, err := ParsePattern("Total:ln1")
	require.NoError(t, err)
	src := &fakeSource{pages: map[int]string{1: "Invoice\nTotal: $42.00\nThanks"}}

	value, ok, err := Extract(p, src, []int{1})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "$42.00", value)
}

func TestExtract_WordsAfterKeyword(t *testing.T) {
	p, err := ParsePattern("Name:r1wd2")
	require.NoError(t, err)
	src := &fakeSource{pages: map[int]string{1: "Name: John Smith Jr"}}

	value, ok, err := Extract(p, src, []int{1})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "John Smith", value)
}

func TestExtract_MultiWordKeywordMatchesAcrossInternalSpace(t *testing.T) {
	p, err := ParsePattern("invoice=Invoice Number:r1wd1")
	require.NoError(t, err)
	src := &fakeSource{pages: map[int]string{1: "Invoice Number: INV-001"}}

	value, ok, err := Extract(p, src, []int{1})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "INV-001", value)
}

func TestExtract_NonFlexibleNumberExtractsSignedDecimalSubstring(t *testing.T) {
	p, err := ParsePattern("Total:r1nb1")
	require.NoError(t, err)
	src := &fakeSource{pages: map[int]string{1: "Total: $42.00"}}

	value, ok, err := Extract(p, src, []int{1})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "42.00", value)
}

func TestExtract_DownMovementClampsAtLastLine(t *testing.T) {
	p, err := ParsePattern("Total:d5ln1")
	require.NoError(t, err)
	src := &fakeSource{pages: map[int]string{1: "Total: 1\nline2\nline3 final"}}

	value, ok, err := Extract(p, src, []int{1})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "line3 final", value)
}

func TestExtract_UpMovementClampsAtFirstLine(t *testing.T) {
	p, err := ParsePattern("Total:u9ln1")
	require.NoError(t, err)
	src := &fakeSource{pages: map[int]string{1: "first\nsecond\nTotal: 3"}}

	value, ok, err := Extract(p, src, []int{1})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "first", value)
}

func TestExtract_RightMovementOutOfBoundsFails(t *testing.T) {
	p, err := ParsePattern("Total:r5wd1")
	require.NoError(t, err)
	src := &fakeSource{pages: map[int]string{1: "Total: 42"}}

	_, ok, err := Extract(p, src, []int{1})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestExtract_LeftMovementOutOfBoundsFails(t *testing.T) {
	p, err := ParsePattern("Total:l5wd1")
	require.NoError(t, err)
	src := &fakeSource{pages: map[int]string{1: "Total: 42"}}

	_, ok, err := Extract(p, src, []int{1})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestExtract_KeywordNotFound(t *testing.T) {
	p, err := ParsePattern("Missing:wd1")
	require.NoError(t, err)
	src := &fakeSource{pages: map[int]string{1: "nothing here"}}

	_, ok, err := Extract(p, src, []int{1})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestExtract_NumberExtractionFlexible(t *testing.T) {
	p, err := ParsePattern("Total:nb2-")
	require.NoError(t, err)
	src := &fakeSource{pages: map[int]string{1: "Total: $1,234.56 2024 extra"}}

	value, ok, err := Extract(p, src, []int{1})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1,234.56 2024", value)
}

func TestExtract_PageSpecNarrowsSearch(t *testing.T) {
	p, err := ParsePattern("Total:r1wd1pg2")
	require.NoError(t, err)
	src := &fakeSource{pages: map[int]string{
		1: "Total: 1",
		2: "Total: 2",
		3: "Total: 3",
	}}

	value, ok, err := Extract(p, src, []int{1, 2, 3})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2", value)
}

func TestExtract_TrimsApplyToExtractedValue(t *testing.T) {
	p, err := ParsePattern("Total:r1wd0^ch1")
	require.NoError(t, err)
	src := &fakeSource{pages: map[int]string{1: "Total: $42"}}

	value, ok, err := Extract(p, src, []int{1})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "42", value)
}
