package pcerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInputError_WrapsCauseInMessageAndUnwrap(t *testing.T) {
	cause := errors.New("bad token")
	err := WrapInput("parsing selector", cause)
	require.ErrorContains(t, err, "bad token")
	require.ErrorContains(t, err, "parsing selector")
	require.ErrorIs(t, err, cause)
}

func TestInputf_FormatsMessage(t *testing.T) {
	err := Inputf("unknown predicate %q", "xyz")
	require.ErrorContains(t, err, `unknown predicate "xyz"`)
}

func TestRangeError(t *testing.T) {
	err := Rangef("page %d out of bounds", 99)
	var re *RangeError
	require.ErrorAs(t, err, &re)
	require.Contains(t, err.Error(), "99")
}

func TestEvaluationError_Unwrap(t *testing.T) {
	cause := errors.New("bad regex")
	err := WrapEvaluation("compiling pattern", cause)
	require.ErrorIs(t, err, cause)
}

func TestDeduplicationError(t *testing.T) {
	err := Deduplication("page 3 appears twice")
	var de *DeduplicationError
	require.ErrorAs(t, err, &de)
}

func TestConflictError(t *testing.T) {
	err := Conflict("a.pdf already exists")
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
}

func TestIOError_IncludesPathAndUnwraps(t *testing.T) {
	cause := errors.New("permission denied")
	err := IO("/tmp/a.pdf", cause)
	require.ErrorContains(t, err, "/tmp/a.pdf")
	require.ErrorIs(t, err, cause)
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, ExitCode(nil))
	require.Equal(t, 1, ExitCode(Input("bad")))
	require.Equal(t, 1, ExitCode(errors.New("generic")))
}
