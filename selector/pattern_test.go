package selector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePredicate_Contains(t *testing.T) {
	p, err := ParsePredicate(`contains:"Invoice"`)
	require.NoError(t, err)
	require.Equal(t, PredContains, p.Kind)
	require.Equal(t, "Invoice", p.Text)

	doc := newTextDoc("Invoice #100", "no match here")
	pages, err := MatchPages(p, doc)
	require.NoError(t, err)
	require.Equal(t, []int{1}, pages)
}

func TestParsePredicate_ContainsCaseInsensitive(t *testing.T) {
	p, err := ParsePredicate(`contains/i:"invoice"`)
	require.NoError(t, err)
	require.True(t, p.CaseInsensitive)

	doc := newTextDoc("INVOICE total due")
	pages, err := MatchPages(p, doc)
	require.NoError(t, err)
	require.Equal(t, []int{1}, pages)
}

func TestParsePredicate_TrailingShift(t *testing.T) {
	p, err := ParsePredicate(`contains:"Invoice"+1`)
	require.NoError(t, err)
	require.Equal(t, 1, p.Offset)

	doc := newTextDoc("Invoice", "attachment")
	pages, err := MatchPages(p, doc)
	require.NoError(t, err)
	require.Equal(t, []int{2}, pages)
}

func TestParsePredicate_ShiftOutOfBoundsIsClipped(t *testing.T) {
	p, err := ParsePredicate(`contains:"Invoice"+5`)
	require.NoError(t, err)

	doc := newTextDoc("Invoice")
	pages, err := MatchPages(p, doc)
	require.NoError(t, err)
	require.Empty(t, pages)
}

func TestParsePredicate_ShiftInsideQuoteIsNotConsumed(t *testing.T) {
	p, err := ParsePredicate(`contains:"total +1"`)
	require.NoError(t, err)
	require.Equal(t, "total +1", p.Text)
	require.Equal(t, 0, p.Offset)
}

func TestParsePredicate_Regex(t *testing.T) {
	p, err := ParsePredicate(`regex:"^Chapter \d+"`)
	require.NoError(t, err)

	doc := newTextDoc("Chapter 1\nIntro", "random text")
	pages, err := MatchPages(p, doc)
	require.NoError(t, err)
	require.Equal(t, []int{1}, pages)
}

func TestParsePredicate_LineStarts(t *testing.T) {
	p, err := ParsePredicate(`line-starts:"Total:"`)
	require.NoError(t, err)

	doc := newTextDoc("Name: Bob\nTotal: $5\n", "Name: Alice")
	pages, err := MatchPages(p, doc)
	require.NoError(t, err)
	require.Equal(t, []int{1}, pages)
}

func TestParsePredicate_Type(t *testing.T) {
	p, err := ParsePredicate("type:image")
	require.NoError(t, err)

	doc := &fakeDoc{texts: []string{"a", "b"}, kinds: []PageKind{KindText, KindImage}}
	pages, err := MatchPages(p, doc)
	require.NoError(t, err)
	require.Equal(t, []int{2}, pages)
}

func TestParsePredicate_TypeUnknown(t *testing.T) {
	_, err := ParsePredicate("type:vector")
	require.Error(t, err)
}

func TestParsePredicate_Size(t *testing.T) {
	p, err := ParsePredicate("size:>500KB")
	require.NoError(t, err)
	require.Equal(t, uint64(500*1024), p.SizeBytes)

	doc := &fakeDoc{texts: []string{"a", "b"}, sizes: []uint64{100, 600 * 1024}}
	pages, err := MatchPages(p, doc)
	require.NoError(t, err)
	require.Equal(t, []int{2}, pages)
}

func TestParsePredicate_NotAPredicate(t *testing.T) {
	require.False(t, LooksLikePredicate("3-5"))
	_, err := ParsePredicate("3-5")
	require.Error(t, err)
}

func TestParsePredicate_EmptyValue(t *testing.T) {
	_, err := ParsePredicate(`contains:""`)
	require.Error(t, err)
}
