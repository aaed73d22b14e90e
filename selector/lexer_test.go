package selector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitTopLevel_BasicComma(t *testing.T) {
	require.Equal(t, []string{"1-3", "5", "7-9"}, SplitTopLevel("1-3, 5, 7-9"))
}

func TestSplitTopLevel_CommaInsideQuotesIsNotASeparator(t *testing.T) {
	got := SplitTopLevel(`contains:"a, b", 5`)
	require.Equal(t, []string{`contains:"a, b"`, "5"}, got)
}

func TestSplitTopLevel_StripsOuterQuotes(t *testing.T) {
	require.Equal(t, []string{"1-3", "5"}, SplitTopLevel(`"1-3, 5"`))
}

func TestSplitTopLevel_EscapedCommaPassesThrough(t *testing.T) {
	got := SplitTopLevel(`a\,b, c`)
	require.Equal(t, []string{`a\,b`, "c"}, got)
}

func TestTokenizeBoolean_StrictlySpacedOperators(t *testing.T) {
	toks := TokenizeBoolean("a & b | c")
	require.Equal(t, []Token{
		{Kind: TokOperand, Value: "a"},
		{Kind: TokAnd},
		{Kind: TokOperand, Value: "b"},
		{Kind: TokOr},
		{Kind: TokOperand, Value: "c"},
	}, toks)
}

func TestTokenizeBoolean_AmpersandWithoutSpacingIsLiteral(t *testing.T) {
	toks := TokenizeBoolean("a&b")
	require.Len(t, toks, 1)
	require.Equal(t, TokOperand, toks[0].Kind)
	require.Equal(t, "a&b", toks[0].Value)
}

func TestTokenizeBoolean_AndNotCombo(t *testing.T) {
	toks := TokenizeBoolean("a & !b")
	require.Equal(t, []Token{
		{Kind: TokOperand, Value: "a"},
		{Kind: TokAndNot},
		{Kind: TokOperand, Value: "b"},
	}, toks)
}

func TestTokenizeBoolean_BangOnlyAtWordStart(t *testing.T) {
	toks := TokenizeBoolean("!a")
	require.Equal(t, []Token{
		{Kind: TokNot},
		{Kind: TokOperand, Value: "a"},
	}, toks)
}

func TestTokenizeBoolean_ExclamationMidWordIsLiteral(t *testing.T) {
	toks := TokenizeBoolean("ab!cd")
	require.Len(t, toks, 1)
	require.Equal(t, "ab!cd", toks[0].Value)
}

func TestTokenizeBoolean_Parentheses(t *testing.T) {
	toks := TokenizeBoolean("(a | b)")
	require.Equal(t, []Token{
		{Kind: TokLParen},
		{Kind: TokOperand, Value: "a"},
		{Kind: TokOr},
		{Kind: TokOperand, Value: "b"},
		{Kind: TokRParen},
	}, toks)
}

func TestContainsUnquotedBooleanOperator(t *testing.T) {
	require.True(t, ContainsUnquotedBooleanOperator("a & b"))
	require.False(t, ContainsUnquotedBooleanOperator(`contains:"a & b"`))
	require.False(t, ContainsUnquotedBooleanOperator("plain text"))
}

func TestContainsUnquotedToken(t *testing.T) {
	require.True(t, ContainsUnquotedToken("3 to 5", "to"))
	require.False(t, ContainsUnquotedToken(`contains:"a to b"`, "to"))
	require.False(t, ContainsUnquotedToken("tomorrow", "to"))
}
