// Package gsfix wraps Ghostscript's "distill and rewrite" trick for
// repairing structurally damaged PDFs, checking that the gs binary is on
// PATH before relying on it.
package gsfix

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"pagecarve/config"
	"pagecarve/legacydoc"
	"pagecarve/pcerr"
)

// Available reports whether the "gs" binary can be found on PATH.
func Available() bool {
	_, err := exec.LookPath("gs")
	return err == nil
}

// Repair runs Ghostscript over src at the given quality preset, writing
// the repaired PDF to dest. It writes to a temporary path first and
// renames on success, matching the Extraction Orchestrator's crash-safety
// rule. Before invoking gs it sniffs src for an OLE/CFB container and
// fails fast with a distinct error rather than handing gs a file it can't
// possibly parse as a PDF.
func Repair(src, dest string, quality config.GSQuality) error {
	if !Available() {
		return pcerr.IO(src, fmt.Errorf("ghostscript (gs) not found on PATH"))
	}

	isCFB, err := legacydoc.IsCompoundFile(src)
	if err != nil {
		return pcerr.IO(src, err)
	}
	if isCFB {
		return pcerr.Inputf("%s is an OLE/compound-file document, not a PDF Ghostscript can repair", src)
	}

	dir := filepath.Dir(dest)
	tmp := filepath.Join(dir, fmt.Sprintf(".pagecarve-gsfix-%d-%s", os.Getpid(), filepath.Base(dest)))

	args := []string{
		"-dPDFSETTINGS=/" + string(quality),
		"-dNOPAUSE",
		"-dBATCH",
		"-dSAFER",
		"-sDEVICE=pdfwrite",
		"-sOutputFile=" + tmp,
		src,
	}
	cmd := exec.Command("gs", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(tmp)
		return pcerr.IO(src, fmt.Errorf("ghostscript failed: %w: %s", err, out))
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return pcerr.IO(dest, err)
	}
	return nil
}

// RepairKeepingTemp behaves like Repair but preserves the temporary output
// on failure, for --keep-gs-temp debugging.
func RepairKeepingTemp(src, dest string, quality config.GSQuality) (tempPath string, err error) {
	if !Available() {
		return "", pcerr.IO(src, fmt.Errorf("ghostscript (gs) not found on PATH"))
	}

	isCFB, err := legacydoc.IsCompoundFile(src)
	if err != nil {
		return "", pcerr.IO(src, err)
	}
	if isCFB {
		return "", pcerr.Inputf("%s is an OLE/compound-file document, not a PDF Ghostscript can repair", src)
	}

	dir := filepath.Dir(dest)
	tmp := filepath.Join(dir, fmt.Sprintf(".pagecarve-gsfix-%d-%s", os.Getpid(), filepath.Base(dest)))
	args := []string{
		"-dPDFSETTINGS=/" + string(quality),
		"-dNOPAUSE",
		"-dBATCH",
		"-dSAFER",
		"-sDEVICE=pdfwrite",
		"-sOutputFile=" + tmp,
		src,
	}
	cmd := exec.Command("gs", args...)
	out, runErr := cmd.CombinedOutput()
	if runErr != nil {
		return tmp, pcerr.IO(src, fmt.Errorf("ghostscript failed: %w: %s", runErr, out))
	}
	if err := os.Rename(tmp, dest); err != nil {
		return tmp, pcerr.IO(dest, err)
	}
	return "", nil
}
