package rename

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pagecarve/config"
	"pagecarve/pcerr"
)

func noneExist(string) bool { return false }

func TestResolve_NoConflictsPassThrough(t *testing.T) {
	planned := []Planned{{Path: "a.pdf"}, {Path: "b.pdf"}}
	outcome, err := Resolve(planned, config.ConflictOverwrite, false, noneExist, nil)
	require.NoError(t, err)
	require.Equal(t, planned, outcome.Resolved)
	require.Empty(t, outcome.Skipped)
}

func TestResolve_OverwriteStrategy(t *testing.T) {
	exists := func(p string) bool { return p == "a.pdf" }
	planned := []Planned{{Path: "a.pdf"}}
	outcome, err := Resolve(planned, config.ConflictOverwrite, false, exists, nil)
	require.NoError(t, err)
	require.Equal(t, "a.pdf", outcome.Resolved[0].Path)
}

func TestResolve_SkipStrategy(t *testing.T) {
	exists := func(p string) bool { return p == "a.pdf" }
	planned := []Planned{{Path: "a.pdf"}, {Path: "b.pdf"}}
	outcome, err := Resolve(planned, config.ConflictSkip, false, exists, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a.pdf"}, outcome.Skipped)
	require.Len(t, outcome.Resolved, 1)
	require.Equal(t, "b.pdf", outcome.Resolved[0].Path)
}

func TestResolve_RenameStrategy(t *testing.T) {
	exists := func(p string) bool { return p == "a.pdf" || p == "a_1.pdf" }
	planned := []Planned{{Path: "a.pdf"}}
	outcome, err := Resolve(planned, config.ConflictRename, false, exists, nil)
	require.NoError(t, err)
	require.Equal(t, "a_2.pdf", outcome.Resolved[0].Path)
}

func TestResolve_FailStrategyReturnsConflictError(t *testing.T) {
	exists := func(p string) bool { return true }
	planned := []Planned{{Path: "a.pdf"}}
	_, err := Resolve(planned, config.ConflictFail, false, exists, nil)
	require.Error(t, err)
	require.IsType(t, &pcerr.ConflictError{}, err)
}

func TestResolve_AskDegradesToRenameWhenNonInteractive(t *testing.T) {
	exists := func(p string) bool { return p == "a.pdf" }
	planned := []Planned{{Path: "a.pdf"}}
	outcome, err := Resolve(planned, config.ConflictAsk, false, exists, nil)
	require.NoError(t, err)
	require.Equal(t, "a_1.pdf", outcome.Resolved[0].Path)
}

func TestResolve_AskInvokesCallbackWhenInteractive(t *testing.T) {
	exists := func(p string) bool { return p == "a.pdf" }
	calls := 0
	ask := func(path string) (config.ConflictStrategy, error) {
		calls++
		return config.ConflictSkip, nil
	}
	planned := []Planned{{Path: "a.pdf"}}
	outcome, err := Resolve(planned, config.ConflictAsk, true, exists, ask)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, []string{"a.pdf"}, outcome.Skipped)
}

func TestResolve_DuplicatePlannedPathsConflict(t *testing.T) {
	planned := []Planned{{Path: "a.pdf"}, {Path: "a.pdf"}}
	outcome, err := Resolve(planned, config.ConflictRename, false, noneExist, nil)
	require.NoError(t, err)
	require.Len(t, outcome.Resolved, 2)
	require.NotEqual(t, outcome.Resolved[0].Path, outcome.Resolved[1].Path)
}

func TestSplitExt(t *testing.T) {
	stem, ext := splitExt("/tmp/dir.name/file.pdf")
	require.Equal(t, "/tmp/dir.name/file", stem)
	require.Equal(t, ".pdf", ext)
}

func TestSplitExt_NoExtension(t *testing.T) {
	stem, ext := splitExt("/tmp/dir.name/file")
	require.Equal(t, "/tmp/dir.name/file", stem)
	require.Empty(t, ext)
}
