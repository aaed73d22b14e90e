// Package config holds the typed enumerations and default tables pagecarve's
// CLI is built from, the way find-words' config package held its document
// and code extension tables.
package config

import "fmt"

// DedupStrategy selects how the Deduplicator treats overlapping pages.
type DedupStrategy string

const (
	DedupNone   DedupStrategy = "none"
	DedupStrict DedupStrategy = "strict"
	DedupGroups DedupStrategy = "groups"
	DedupWarn   DedupStrategy = "warn"
	DedupFail   DedupStrategy = "fail"
)

func ParseDedupStrategy(s string) (DedupStrategy, error) {
	switch DedupStrategy(s) {
	case DedupNone, DedupStrict, DedupGroups, DedupWarn, DedupFail:
		return DedupStrategy(s), nil
	}
	return "", fmt.Errorf("unknown dedup strategy %q", s)
}

// ConflictStrategy selects how the Conflict Resolver treats an already
// existing output path.
type ConflictStrategy string

const (
	ConflictAsk       ConflictStrategy = "ask"
	ConflictOverwrite ConflictStrategy = "overwrite"
	ConflictSkip      ConflictStrategy = "skip"
	ConflictRename    ConflictStrategy = "rename"
	ConflictFail      ConflictStrategy = "fail"
)

func ParseConflictStrategy(s string) (ConflictStrategy, error) {
	switch ConflictStrategy(s) {
	case ConflictAsk, ConflictOverwrite, ConflictSkip, ConflictRename, ConflictFail:
		return ConflictStrategy(s), nil
	}
	return "", fmt.Errorf("unknown conflict strategy %q", s)
}

// ExtractionMode selects how the Orchestrator partitions output files.
type ExtractionMode string

const (
	ModeSingle   ExtractionMode = "single"
	ModeSeparate ExtractionMode = "separate"
	ModeGrouped  ExtractionMode = "grouped"
)

// DefaultDedupFor returns the mode-dependent default dedup strategy,
// matching the CLI contract: separate/single -> strict, grouped -> groups.
func DefaultDedupFor(mode ExtractionMode) DedupStrategy {
	if mode == ModeGrouped {
		return DedupGroups
	}
	return DedupStrict
}

// GSQuality is one of Ghostscript's -dPDFSETTINGS presets.
type GSQuality string

const (
	GSScreen   GSQuality = "screen"
	GSEbook    GSQuality = "ebook"
	GSPrinter  GSQuality = "printer"
	GSPrepress GSQuality = "prepress"
	GSDefault  GSQuality = "default"
)

func ParseGSQuality(s string) (GSQuality, error) {
	switch GSQuality(s) {
	case GSScreen, GSEbook, GSPrinter, GSPrepress, GSDefault:
		return GSQuality(s), nil
	}
	return "", fmt.Errorf("unknown gs quality %q", s)
}

// RenameAttemptLimit bounds how many "_N" suffixes the Conflict Resolver
// will try before failing.
const RenameAttemptLimit = 1000

// MaxScrapedValueLength clamps a sanitized scrape/template value.
const MaxScrapedValueLength = 80

// MaxVariableNameLength clamps a derived scrape variable name.
const MaxVariableNameLength = 40
