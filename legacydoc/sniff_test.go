package legacydoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsCompoundFile_PlainPDFHeaderIsNotCFB(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n%...rest of file"), 0o644))

	isCFB, err := IsCompoundFile(path)
	require.NoError(t, err)
	require.False(t, isCFB)
}

func TestIsCompoundFile_MissingFileErrors(t *testing.T) {
	_, err := IsCompoundFile("/nonexistent/path/doc.pdf")
	require.Error(t, err)
}
