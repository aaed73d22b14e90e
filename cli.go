package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"pagecarve/config"
)

var version = "0.1"

// Arguments is the parsed command line, mirroring the flag groups from the
// external interface: operations, selection, scraping, naming, extraction
// mode, policies, run modes, safety, and meta flags.
type Arguments struct {
	Path     string
	Selector string

	// Operations (mutually exclusive)
	StripFirst       bool
	ExtractPages     bool
	ExtractPagesSpec string
	SplitPages       bool
	Optimize         bool
	Analyze          bool
	AnalyzeDetailed  bool
	ScrapeText       bool
	DumpText         bool
	GSFix            bool
	GSBatchFix       bool
	GSQuality        config.GSQuality

	// Selection
	FilterMatches string
	GroupStart    string
	GroupEnd      string

	// Scraping
	ScrapePatterns    []string
	ScrapePatternFile string
	PatternSourcePage int

	// Naming
	FilenameTemplate string
	SmartNames       bool
	NamePrefix       string
	NoTimestamp      bool

	// Extraction mode
	SeparateFiles bool
	RespectGroups bool

	// Policies
	Dedup        config.DedupStrategy
	DedupSet     bool
	Conflicts    config.ConflictStrategy
	ConflictsSet bool

	// Modes
	Batch     bool
	Recursive bool
	DryRun    bool
	Preview   bool
	Workers   int

	// Safety
	NoAutoFix        bool
	Replace          bool
	ReplaceOriginals bool
	KeepGSTemp       bool

	// Meta
	Output string
}

func defaultArguments() *Arguments {
	return &Arguments{
		GSQuality:         config.GSDefault,
		PatternSourcePage: 1,
		Workers:           1,
	}
}

// parseArguments parses the command line in the teacher's hand-rolled
// style: a single pass over args with boolean lookaheads for flags that
// take a following value.
func parseArguments(args []string) (*Arguments, error) {
	a := defaultArguments()

	expectExtractPages := false
	expectFilterMatches := false
	expectGroupStart := false
	expectGroupEnd := false
	expectScrapePattern := false
	expectScrapePatternsFile := false
	expectPatternSourcePage := false
	expectFilenameTemplate := false
	expectNamePrefix := false
	expectDedup := false
	expectConflicts := false
	expectWorkers := false
	expectGSQuality := false
	expectOutput := false

	havePath := false

	for _, arg := range args {
		switch {
		case expectExtractPages:
			a.ExtractPagesSpec = arg
			expectExtractPages = false
			continue
		case expectFilterMatches:
			a.FilterMatches = arg
			expectFilterMatches = false
			continue
		case expectGroupStart:
			a.GroupStart = arg
			expectGroupStart = false
			continue
		case expectGroupEnd:
			a.GroupEnd = arg
			expectGroupEnd = false
			continue
		case expectScrapePattern:
			a.ScrapePatterns = append(a.ScrapePatterns, arg)
			expectScrapePattern = false
			continue
		case expectScrapePatternsFile:
			a.ScrapePatternFile = arg
			expectScrapePatternsFile = false
			continue
		case expectPatternSourcePage:
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("--pattern-source-page requires a positive integer, got %q", arg)
			}
			a.PatternSourcePage = n
			expectPatternSourcePage = false
			continue
		case expectFilenameTemplate:
			a.FilenameTemplate = arg
			expectFilenameTemplate = false
			continue
		case expectNamePrefix:
			a.NamePrefix = arg
			expectNamePrefix = false
			continue
		case expectDedup:
			s, err := config.ParseDedupStrategy(arg)
			if err != nil {
				return nil, err
			}
			a.Dedup = s
			a.DedupSet = true
			expectDedup = false
			continue
		case expectConflicts:
			s, err := config.ParseConflictStrategy(arg)
			if err != nil {
				return nil, err
			}
			a.Conflicts = s
			a.ConflictsSet = true
			expectConflicts = false
			continue
		case expectWorkers:
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("--workers requires a positive integer, got %q", arg)
			}
			a.Workers = n
			expectWorkers = false
			continue
		case expectGSQuality:
			q, err := config.ParseGSQuality(arg)
			if err != nil {
				return nil, err
			}
			a.GSQuality = q
			expectGSQuality = false
			continue
		case expectOutput:
			a.Output = arg
			expectOutput = false
			continue
		}

		switch {
		case arg == "--version":
			showVersion()
			os.Exit(0)
		case arg == "--help" || arg == "-h":
			showUsage()
			os.Exit(0)
		case arg == "--strip-first":
			a.StripFirst = true
		case arg == "--extract-pages":
			a.ExtractPages = true
			expectExtractPages = true
		case strings.HasPrefix(arg, "--extract-pages="):
			a.ExtractPages = true
			a.ExtractPagesSpec = strings.TrimPrefix(arg, "--extract-pages=")
		case arg == "--split-pages":
			a.SplitPages = true
		case arg == "--optimize":
			a.Optimize = true
		case arg == "--analyze":
			a.Analyze = true
		case arg == "--analyze-detailed":
			a.AnalyzeDetailed = true
		case arg == "--scrape-text":
			a.ScrapeText = true
		case arg == "--dump-text":
			a.DumpText = true
		case arg == "--gs-fix":
			a.GSFix = true
		case arg == "--gs-batch-fix":
			a.GSBatchFix = true
		case arg == "--gs-quality":
			expectGSQuality = true
		case strings.HasPrefix(arg, "--gs-quality="):
			q, err := config.ParseGSQuality(strings.TrimPrefix(arg, "--gs-quality="))
			if err != nil {
				return nil, err
			}
			a.GSQuality = q
		case arg == "--filter-matches":
			expectFilterMatches = true
		case arg == "--group-start":
			expectGroupStart = true
		case arg == "--group-end":
			expectGroupEnd = true
		case arg == "--scrape-pattern":
			expectScrapePattern = true
		case arg == "--scrape-patterns-file":
			expectScrapePatternsFile = true
		case arg == "--pattern-source-page":
			expectPatternSourcePage = true
		case arg == "--filename-template":
			expectFilenameTemplate = true
		case arg == "--smart-names":
			a.SmartNames = true
		case arg == "--name-prefix":
			expectNamePrefix = true
		case arg == "--no-timestamp":
			a.NoTimestamp = true
		case arg == "--separate-files":
			a.SeparateFiles = true
		case arg == "--respect-groups":
			a.RespectGroups = true
		case arg == "--dedup":
			expectDedup = true
		case strings.HasPrefix(arg, "--dedup="):
			s, err := config.ParseDedupStrategy(strings.TrimPrefix(arg, "--dedup="))
			if err != nil {
				return nil, err
			}
			a.Dedup = s
			a.DedupSet = true
		case arg == "--conflicts":
			expectConflicts = true
		case strings.HasPrefix(arg, "--conflicts="):
			s, err := config.ParseConflictStrategy(strings.TrimPrefix(arg, "--conflicts="))
			if err != nil {
				return nil, err
			}
			a.Conflicts = s
			a.ConflictsSet = true
		case arg == "--batch":
			a.Batch = true
		case arg == "--recursive":
			a.Recursive = true
		case arg == "--dry-run":
			a.DryRun = true
		case arg == "--preview":
			a.Preview = true
		case arg == "--workers":
			expectWorkers = true
		case arg == "--no-auto-fix":
			a.NoAutoFix = true
		case arg == "--replace":
			a.Replace = true
		case arg == "--replace-originals":
			a.ReplaceOriginals = true
		case arg == "--keep-gs-temp":
			a.KeepGSTemp = true
		case arg == "--output":
			expectOutput = true
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown flag %q", arg)
		default:
			if !havePath {
				a.Path = arg
				havePath = true
			} else if a.Selector == "" {
				a.Selector = arg
			} else {
				return nil, fmt.Errorf("unexpected extra argument %q", arg)
			}
		}
	}

	if expectExtractPages || expectFilterMatches || expectGroupStart || expectGroupEnd ||
		expectScrapePattern || expectScrapePatternsFile || expectPatternSourcePage ||
		expectFilenameTemplate || expectNamePrefix || expectDedup || expectConflicts ||
		expectWorkers || expectGSQuality || expectOutput {
		return nil, fmt.Errorf("flag requires a value")
	}
	if !havePath {
		return nil, fmt.Errorf("no PATH given")
	}
	return a, nil
}

func showUsage() {
	fmt.Println(headerStyle.Render("pagecarve - select, rename, and repair PDF pages"))
	fmt.Println()
	fmt.Println("Usage: pagecarve PATH [SELECTOR] [flags]")
	fmt.Println()
	fmt.Println(subHeaderStyle.Render("Operations:") + " --strip-first --extract-pages[=RANGE] --split-pages --optimize")
	fmt.Println("            --analyze --analyze-detailed --scrape-text --dump-text")
	fmt.Println("            --gs-fix --gs-batch-fix --gs-quality={screen,ebook,printer,prepress,default}")
	fmt.Println(subHeaderStyle.Render("Selection:") + "  --filter-matches CRITERIA --group-start PATTERN --group-end PATTERN")
	fmt.Println(subHeaderStyle.Render("Scraping:") + "   --scrape-pattern PATTERN --scrape-patterns-file FILE --pattern-source-page N")
	fmt.Println(subHeaderStyle.Render("Naming:") + "     --filename-template TEMPLATE --smart-names --name-prefix PREFIX --no-timestamp")
	fmt.Println(subHeaderStyle.Render("Modes:") + "      --separate-files --respect-groups --batch --recursive --dry-run --preview --workers N")
	fmt.Println(subHeaderStyle.Render("Policies:") + "   --dedup={none,strict,groups,warn,fail} --conflicts={ask,overwrite,skip,rename,fail}")
	fmt.Println(subHeaderStyle.Render("Safety:") + "     --no-auto-fix --replace --replace-originals --keep-gs-temp")
	fmt.Println(subHeaderStyle.Render("Meta:") + "       --version --output FILE")
}

func showVersion() {
	fmt.Println(successStyle.Render("pagecarve v" + version))
}
