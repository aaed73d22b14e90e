package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pagecarve/app"
	"pagecarve/config"
	"pagecarve/extract"
	"pagecarve/fsutil"
	"pagecarve/gsfix"
	"pagecarve/pcerr"
	"pagecarve/pdfdoc"
	"pagecarve/rename"
	"pagecarve/scrape"
	"pagecarve/selector"
)

// osFS adapts os.ReadFile to selector.FS, the only filesystem collaborator
// the core selection pipeline needs.
type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// run is the composition root: it resolves the target document set, then
// drives each one through processDocument, continuing past a single
// document's failure in batch mode the way the original command line tool
// keeps going after one directory entry fails.
func run(args *Arguments) error {
	if args.GSBatchFix {
		return runGSBatchFix(args)
	}

	if !args.Batch {
		return processDocument(args, args.Path)
	}

	paths, err := fsutil.FindPDFs(args.Path, args.Recursive)
	if err != nil {
		return pcerr.IO(args.Path, err)
	}
	if len(paths) == 0 {
		fmt.Println(warningStyle.Render("no PDF files found under " + args.Path))
		return nil
	}

	results := fsutil.Dispatch(context.Background(), paths, args.Workers, func(_ context.Context, path string) (any, error) {
		return nil, processDocument(args, path)
	})

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("%s: %v", r.Path, r.Err)))
		}
	}
	if failed > 0 {
		return pcerr.Inputf("%d of %d documents failed", failed, len(paths))
	}
	return nil
}

func runGSBatchFix(args *Arguments) error {
	paths, err := fsutil.FindPDFs(args.Path, args.Recursive)
	if err != nil {
		return pcerr.IO(args.Path, err)
	}
	if !gsfix.Available() {
		return pcerr.Input("ghostscript (gs) not found on PATH")
	}

	var failed int
	for _, path := range paths {
		dest := gsFixDestination(path)
		if err := gsfix.Repair(path, dest, args.GSQuality); err != nil {
			failed++
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("%s: %v", path, err)))
			continue
		}
		fmt.Println(successStyle.Render("repaired: ") + dest)
	}
	if failed > 0 {
		return pcerr.Inputf("%d of %d documents failed repair", failed, len(paths))
	}
	return nil
}

func gsFixDestination(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + "_fixed" + ext
}

// processDocument handles one PDF end to end: standalone inspection
// operations short-circuit before touching the selection pipeline; anything
// else flows through select -> scrape -> plan -> resolve -> extract.
func processDocument(args *Arguments, path string) error {
	if args.GSFix {
		dest := args.Output
		if dest == "" {
			dest = gsFixDestination(path)
		}
		if args.KeepGSTemp {
			tmp, err := gsfix.RepairKeepingTemp(path, dest, args.GSQuality)
			if err != nil {
				if tmp != "" {
					fmt.Fprintln(os.Stderr, warningStyle.Render("kept temp file: "+tmp))
				}
				return err
			}
			fmt.Println(successStyle.Render("repaired: ") + dest)
			return nil
		}
		if err := gsfix.Repair(path, dest, args.GSQuality); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("repaired: ") + dest)
		return nil
	}

	analyzer, cleanup, err := openAnalyzer(path, args)
	if err != nil {
		return err
	}
	defer cleanup()

	if args.Analyze || args.AnalyzeDetailed {
		return printAnalysis(analyzer, path, args.AnalyzeDetailed)
	}
	if args.DumpText {
		return dumpText(analyzer, path)
	}

	sel, mode, err := resolveSelector(args, analyzer)
	if err != nil {
		return err
	}

	result, warnings, err := selector.Parse(sel, analyzer, selector.ParseOptions{FS: osFS{}, BaseDir: filepath.Dir(path)})
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, warningStyle.Render("warning: "+w))
	}

	groups := result.Groups
	if args.GroupStart != "" || args.GroupEnd != "" {
		groups, err = applyGroupBoundaries(groups, args, analyzer)
		if err != nil {
			return err
		}
	}
	if args.FilterMatches != "" {
		var fw []string
		groups, fw, err = selector.FilterGroups(groups, args.FilterMatches, analyzer)
		if err != nil {
			return err
		}
		for _, w := range fw {
			fmt.Fprintln(os.Stderr, warningStyle.Render("warning: "+w))
		}
	}

	dedupStrategy := args.Dedup
	if !args.DedupSet {
		dedupStrategy = config.DefaultDedupFor(mode)
	}
	dedupOutcome, err := selector.Deduplicate(groups, dedupStrategy)
	if err != nil {
		return err
	}
	for _, w := range dedupOutcome.Warnings {
		fmt.Fprintln(os.Stderr, warningStyle.Render("warning: "+w))
	}
	groups = dedupOutcome.Groups

	if len(groups) == 0 {
		fmt.Println(warningStyle.Render("selection produced no pages: " + path))
		return nil
	}

	if args.Preview {
		cont, err := app.Preview(groups)
		if err != nil {
			return err
		}
		if !cont {
			fmt.Println(warningStyle.Render("cancelled: " + path))
			return nil
		}
	}

	if args.ScrapeText {
		return printScraped(args, analyzer, result)
	}

	values, err := runScrapePatterns(args, analyzer, result, path)
	if err != nil {
		return err
	}

	originalName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	opts := rename.Options{
		Template:    args.FilenameTemplate,
		NamePrefix:  args.NamePrefix,
		NoTimestamp: args.NoTimestamp,
		Timestamp:   time.Now().Format("20060102-150405"),
	}
	if opts.Template == "" && args.SmartNames && len(values) > 0 {
		opts.Template = smartTemplate(values)
	}

	planned, err := rename.Plan(mode, groups, values, originalName, result.Description, opts)
	if err != nil {
		return err
	}

	destDir := filepath.Dir(path)
	for i := range planned {
		if args.Output != "" && mode == config.ModeSingle {
			planned[i].Path = args.Output
			continue
		}
		planned[i] = rename.WithDir(destDir, planned[i])
	}

	conflictStrategy := args.Conflicts
	if !args.ConflictsSet {
		conflictStrategy = config.ConflictAsk
	}
	interactive := !args.Batch
	outcome, err := rename.Resolve(planned, conflictStrategy, interactive, fileExists, app.AskConflict)
	if err != nil {
		return err
	}
	for _, s := range outcome.Skipped {
		fmt.Println(warningStyle.Render("skipped: " + s))
	}

	writer := pdfdoc.Writer{}
	sizeOf := func(pages []int) (int64, error) {
		var total int64
		for _, p := range pages {
			n, err := analyzer.PageSize(p)
			if err != nil {
				return 0, err
			}
			total += int64(n)
		}
		return total, nil
	}

	results, err := extract.Run(outcome.Resolved, path, mode, writer, args.DryRun, sizeOf)
	if err != nil {
		return err
	}
	for _, r := range results {
		verb := "wrote"
		if args.DryRun {
			verb = "would write"
		}
		fmt.Printf("%s %s (%d pages, %d bytes)\n", successStyle.Render(verb+":"), r.Path, len(r.Pages), r.Bytes)
	}

	if (args.Replace || args.ReplaceOriginals) && !args.DryRun && mode == config.ModeSingle && len(results) == 1 {
		if err := os.Rename(results[0].Path, path); err != nil {
			return pcerr.IO(path, err)
		}
		fmt.Println(successStyle.Render("replaced: ") + path)
	}

	return nil
}

// openAnalyzer opens path for analysis, attempting a Ghostscript repair and
// retrying once if the first open fails and --no-auto-fix was not given.
// The returned cleanup removes any repaired temporary copy; callers must
// defer it for as long as the analyzer is in use.
func openAnalyzer(path string, args *Arguments) (*pdfdoc.Analyzer, func(), error) {
	noop := func() {}

	analyzer, err := pdfdoc.Open(path)
	if err == nil {
		return analyzer, noop, nil
	}
	if args.NoAutoFix || !gsfix.Available() {
		return nil, noop, err
	}

	repaired := path + ".pagecarve-repaired.pdf"
	if repairErr := gsfix.Repair(path, repaired, args.GSQuality); repairErr != nil {
		return nil, noop, err
	}

	fmt.Fprintln(os.Stderr, warningStyle.Render("auto-repaired malformed PDF: "+path))
	repairedAnalyzer, openErr := pdfdoc.Open(repaired)
	if openErr != nil {
		os.Remove(repaired)
		return nil, noop, openErr
	}
	return repairedAnalyzer, func() { os.Remove(repaired) }, nil
}

// resolveSelector turns the operation flags and optional positional
// selector into one selector string plus the extraction mode it implies.
func resolveSelector(args *Arguments, analyzer *pdfdoc.Analyzer) (string, config.ExtractionMode, error) {
	mode := config.ModeSingle
	switch {
	case args.SeparateFiles:
		mode = config.ModeSeparate
	case args.RespectGroups:
		mode = config.ModeGrouped
	}

	switch {
	case args.StripFirst:
		return "2-", mode, nil
	case args.ExtractPages:
		sel := args.ExtractPagesSpec
		if sel == "" {
			sel = "all"
		}
		return sel, mode, nil
	case args.SplitPages:
		return "all", config.ModeSeparate, nil
	case args.Optimize:
		return "all", config.ModeSingle, nil
	case args.Selector != "":
		return args.Selector, mode, nil
	default:
		return "all", mode, nil
	}
}

func applyGroupBoundaries(groups []selector.Group, args *Arguments, analyzer *pdfdoc.Analyzer) ([]selector.Group, error) {
	var start, end *selector.Predicate
	var err error
	if args.GroupStart != "" {
		start, err = selector.ParsePredicate(args.GroupStart)
		if err != nil {
			return nil, err
		}
	}
	if args.GroupEnd != "" {
		end, err = selector.ParsePredicate(args.GroupEnd)
		if err != nil {
			return nil, err
		}
	}
	return selector.ApplyBoundaries(groups, start, end, analyzer)
}

func runScrapePatterns(args *Arguments, analyzer *pdfdoc.Analyzer, result *selector.Result, path string) (map[string]string, error) {
	raws := append([]string(nil), args.ScrapePatterns...)
	if args.ScrapePatternFile != "" {
		fileRaws, err := readPatternFile(args.ScrapePatternFile)
		if err != nil {
			return nil, err
		}
		raws = append(raws, fileRaws...)
	}
	if len(raws) == 0 {
		return nil, nil
	}

	patterns, err := scrape.ParsePatternSet(raws)
	if err != nil {
		return nil, err
	}

	selectedPages := []int{args.PatternSourcePage}
	if args.PatternSourcePage <= 0 {
		selectedPages = result.SortedPages()
	}

	values := make(map[string]string, len(patterns))
	for _, p := range patterns {
		value, ok, err := scrape.Extract(p, analyzer, selectedPages)
		if err != nil {
			return nil, err
		}
		if ok {
			values[p.VariableName] = value
		}
	}
	return values, nil
}

func readPatternFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pcerr.IO(path, err)
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

func smartTemplate(values map[string]string) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sortStrings(names)
	var b strings.Builder
	for _, n := range names {
		b.WriteString("{" + n + "}_")
	}
	b.WriteString("{original_name}")
	return b.String()
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func printAnalysis(analyzer *pdfdoc.Analyzer, path string, detailed bool) error {
	fmt.Println(headerStyle.Render(path))
	n := analyzer.PageCount()
	fmt.Printf("pages: %d\n", n)
	if !detailed {
		return nil
	}
	for p := 1; p <= n; p++ {
		kind, err := analyzer.PageKind(p)
		if err != nil {
			return err
		}
		size, err := analyzer.PageSize(p)
		if err != nil {
			return err
		}
		fmt.Printf("  page %d: %s, %d bytes\n", p, kind, size)
	}
	return nil
}

func dumpText(analyzer *pdfdoc.Analyzer, path string) error {
	n := analyzer.PageCount()
	for p := 1; p <= n; p++ {
		text, err := analyzer.PageText(p)
		if err != nil {
			return err
		}
		fmt.Printf("--- %s page %d ---\n%s\n", path, p, text)
	}
	return nil
}

func printScraped(args *Arguments, analyzer *pdfdoc.Analyzer, result *selector.Result) error {
	values, err := runScrapePatterns(args, analyzer, result, "")
	if err != nil {
		return err
	}
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for name, value := range values {
		fmt.Fprintf(w, "%s=%s\n", name, value)
	}
	return nil
}
