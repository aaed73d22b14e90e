package rename

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"pagecarve/config"
	"pagecarve/selector"
)

// DefaultTemplate is used whenever the caller supplies no explicit
// --filename-template.
const DefaultTemplate = "{original_name}_pages{range}.pdf"

// Options carries the naming knobs that apply across every path the
// Planner produces for one source document.
type Options struct {
	Template   string // empty means DefaultTemplate
	NamePrefix string
	NoTimestamp bool
	Timestamp  string // pre-formatted; ignored when NoTimestamp is set
}

// Planned is one path the Planner produced, paired with the group (or
// single page, for separate mode) it came from.
type Planned struct {
	Path   string
	Group  selector.Group
	Page   int // set only in separate mode; 0 otherwise
}

// Plan builds output paths for one source document according to mode.
// values supplies the scraped template variables; originalName is the
// source file's base name without extension.
func Plan(mode config.ExtractionMode, groups []selector.Group, values map[string]string, originalName string, rangeDescription string, opts Options) ([]Planned, error) {
	switch mode {
	case config.ModeSingle:
		return planSingle(groups, values, originalName, rangeDescription, opts)
	case config.ModeSeparate:
		return planSeparate(groups, values, originalName, opts)
	case config.ModeGrouped:
		return planGrouped(groups, values, originalName, opts)
	default:
		return nil, fmt.Errorf("unknown extraction mode %v", mode)
	}
}

func planSingle(groups []selector.Group, values map[string]string, originalName, rangeDescription string, opts Options) ([]Planned, error) {
	name, err := renderName(values, originalName, rangeDescription, opts)
	if err != nil {
		return nil, err
	}
	union := Planned{Path: name}
	var all []int
	preserve := false
	for _, g := range groups {
		pages := append([]int(nil), g.Pages...)
		if g.PreserveOrder {
			preserve = true
		} else {
			sort.Ints(pages)
		}
		all = append(all, pages...)
	}
	union.Group = selector.Group{Pages: all, OriginalSpec: rangeDescription, PreserveOrder: preserve}
	return []Planned{union}, nil
}

func planSeparate(groups []selector.Group, values map[string]string, originalName string, opts Options) ([]Planned, error) {
	var pages []int
	for _, g := range groups {
		pages = append(pages, g.Pages...)
	}
	width := digitWidth(maxOf(pages))

	var out []Planned
	for _, p := range pages {
		pageStr := fmt.Sprintf("%0*d", width, p)
		name, err := renderName(values, originalName, pageStr, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, Planned{Path: name, Page: p, Group: selector.Group{Pages: []int{p}}})
	}
	return out, nil
}

func planGrouped(groups []selector.Group, values map[string]string, originalName string, opts Options) ([]Planned, error) {
	var out []Planned
	for _, g := range groups {
		if len(g.Pages) == 0 {
			continue
		}
		desc := g.OriginalSpec
		if desc == "" {
			desc = rangeDescriptionForGroup(g)
		}
		name, err := renderName(values, originalName, desc, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, Planned{Path: name, Group: g})
	}
	return out, nil
}

func renderName(values map[string]string, originalName, rangeDescription string, opts Options) (string, error) {
	tmpl := opts.Template
	if tmpl == "" {
		tmpl = DefaultTemplate
	}

	merged := make(map[string]string, len(values)+2)
	for k, v := range values {
		merged[k] = v
	}
	merged["original_name"] = originalName
	merged["range"] = rangeDescription

	name, err := Render(tmpl, merged)
	if err != nil {
		return "", err
	}

	var prefix strings.Builder
	if opts.NamePrefix != "" {
		prefix.WriteString(opts.NamePrefix)
		prefix.WriteByte('_')
	}
	if !opts.NoTimestamp && opts.Timestamp != "" {
		prefix.WriteString(opts.Timestamp)
		prefix.WriteByte('_')
	}
	if prefix.Len() > 0 {
		name = prefix.String() + name
	}
	return name, nil
}

func rangeDescriptionForGroup(g selector.Group) string {
	if len(g.Pages) == 1 {
		return strconv.Itoa(g.Pages[0])
	}
	return fmt.Sprintf("%d-%d", g.Pages[0], g.Pages[len(g.Pages)-1])
}

func digitWidth(n int) int {
	if n < 1 {
		return 1
	}
	w := 0
	for n > 0 {
		w++
		n /= 10
	}
	return w
}

func maxOf(xs []int) int {
	m := 0
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}

// WithDir joins a planned filename onto a destination directory.
func WithDir(dir string, p Planned) Planned {
	p.Path = filepath.Join(dir, p.Path)
	return p
}
