// Package legacydoc detects files that claim a .pdf extension but are
// actually OLE/CFB compound documents (a common symptom of a broken export
// pipeline producing, say, a renamed .doc). This is a pre-flight check for
// the Ghostscript repair wrapper: handing such a file to gs wastes time on
// an error it cannot explain.
package legacydoc

import (
	"os"

	"github.com/richardlehane/mscfb"
)

// IsCompoundFile reports whether path is parseable as an OLE/CFB container.
// A false result with a non-nil error means the file could not be read at
// all; a false result with a nil error means it opened fine but is not a
// CFB container (the common, non-error case for a genuine PDF).
func IsCompoundFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = mscfb.New(f)
	if err != nil {
		return false, nil
	}
	return true, nil
}
