package rename

import (
	"fmt"
	"strings"

	"pagecarve/config"
	"pagecarve/pcerr"
)

// AskFunc resolves a single conflicting path interactively, returning one
// of overwrite/skip/rename/fail (never ask again for the same path).
type AskFunc func(path string) (config.ConflictStrategy, error)

// Outcome is the result of resolving conflicts across a batch of planned
// paths.
type Outcome struct {
	Resolved []Planned
	Skipped  []string
}

// Resolve compares every planned path against the filesystem (and against
// paths already claimed earlier in this same batch) and applies strategy.
// In non-interactive mode (interactive=false), "ask" degrades to "rename".
// The returned path list never contains a duplicate name, and never names
// an existing file unless strategy is "overwrite".
func Resolve(planned []Planned, strategy config.ConflictStrategy, interactive bool, exists func(string) bool, ask AskFunc) (*Outcome, error) {
	effective := strategy
	if effective == config.ConflictAsk && !interactive {
		effective = config.ConflictRename
	}

	used := make(map[string]struct{}, len(planned))
	var out Outcome
	var failures []string

	for _, p := range planned {
		conflict := exists(p.Path)
		if !conflict {
			if _, taken := used[p.Path]; taken {
				conflict = true
			}
		}
		if !conflict {
			used[p.Path] = struct{}{}
			out.Resolved = append(out.Resolved, p)
			continue
		}

		resolution := effective
		if strategy == config.ConflictAsk && interactive {
			chosen, err := ask(p.Path)
			if err != nil {
				return nil, err
			}
			resolution = chosen
		}

		switch resolution {
		case config.ConflictFail:
			failures = append(failures, p.Path)
		case config.ConflictOverwrite:
			used[p.Path] = struct{}{}
			out.Resolved = append(out.Resolved, p)
		case config.ConflictSkip:
			out.Skipped = append(out.Skipped, p.Path)
		case config.ConflictRename:
			renamed, err := nextFreeName(p.Path, exists, used)
			if err != nil {
				return nil, err
			}
			used[renamed] = struct{}{}
			p.Path = renamed
			out.Resolved = append(out.Resolved, p)
		default:
			return nil, pcerr.Inputf("unknown conflict strategy %q", resolution)
		}
	}

	if len(failures) > 0 {
		return nil, pcerr.Conflict(fmt.Sprintf("conflicting paths: %s", strings.Join(failures, ", ")))
	}
	return &out, nil
}

// nextFreeName appends "_1", "_2", ... before the extension until a path
// exists that is neither on disk nor already claimed this batch.
func nextFreeName(path string, exists func(string) bool, used map[string]struct{}) (string, error) {
	stem, ext := splitExt(path)
	for i := 1; i <= config.RenameAttemptLimit; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if exists(candidate) {
			continue
		}
		if _, taken := used[candidate]; taken {
			continue
		}
		return candidate, nil
	}
	return "", pcerr.Conflict(fmt.Sprintf("exhausted %d rename attempts for %q", config.RenameAttemptLimit, path))
}

func splitExt(path string) (stem, ext string) {
	idx := strings.LastIndexByte(path, '.')
	if idx <= strings.LastIndexByte(path, '/') {
		return path, ""
	}
	return path[:idx], path[idx:]
}
