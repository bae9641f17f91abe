package main

import (
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds the site wrapped around every guide.
type siteFlags struct {
	name             string
	language         string
	footer           string
	hubHref          string
	presentationHref string
	noDownload       bool
}

// assetFlags holds style and template selection.
type assetFlags struct {
	style     string
	template  string
	assetPath string
}

// passFlags holds post-processing selection.
type passFlags struct {
	passes          string // comma-separated
	navigation      string
	groupByCategory bool
}

// exportFlags holds the optional side outputs.
type exportFlags struct {
	markdown bool
	pdf      bool
}

// convertFlags holds all flags for the convert and watch commands.
type convertFlags struct {
	common   commonFlags
	output   string
	pattern  string
	timeout  string
	debounce string // watch only
	site     siteFlags
	assets   assetFlags
	passes   passFlags
	exports  exportFlags
}

// restyleFlags holds flags for the restyle command.
type restyleFlags struct {
	common  commonFlags
	pattern string
	dryRun  bool
	assets  assetFlags
	passes  passFlags
}

// reviewFlags holds flags for the review command.
type reviewFlags struct {
	common      commonFlags
	sources     string
	pattern     string
	minSize     int64
	minSections int
	showAll     bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.name, "site-name", "", "site name shown in page titles")
	fs.StringVarP(&f.language, "lang", "l", "", "interface language: pt, en")
	fs.StringVar(&f.footer, "footer", "", "footer text ({year}, {date}, {date:FORMAT})")
	fs.StringVar(&f.hubHref, "hub-href", "", "back link to the site hub")
	fs.StringVar(&f.presentationHref, "presentation-href", "", "presentation link ({M} module, {N} session)")
	fs.BoolVar(&f.noDownload, "no-download", false, "omit the link to the source document")
}

func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVarP(&f.style, "style", "s", "", "CSS style name or file path")
	fs.StringVar(&f.template, "template", "", "page template name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

func addPassFlags(fs *flag.FlagSet, f *passFlags) {
	fs.StringVar(&f.passes, "passes", "", "comma-separated post-processing passes (default: all)")
	fs.StringVar(&f.navigation, "nav", "", "sidebar navigation: grouped, flat")
	fs.BoolVar(&f.groupByCategory, "group", false, "regroup the guide body by category")
}

func addExportFlags(fs *flag.FlagSet, f *exportFlags) {
	fs.BoolVar(&f.markdown, "markdown", false, "also write a Markdown export")
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF export (needs Chrome)")
}

func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

func registerConvertFlags(fs *flag.FlagSet, f *convertFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.pattern, "pattern", "", "guide file name pattern ({N} session, {M} module)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	addAssetFlags(fs, &f.assets)
	addPassFlags(fs, &f.passes)
	addExportFlags(fs, &f.exports)
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newFlagSet("convert", printConvertUsage, stderr)
	registerConvertFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func registerWatchFlags(fs *flag.FlagSet, f *convertFlags) {
	registerConvertFlags(fs, f)
	fs.StringVar(&f.debounce, "debounce", "", "delay before rebuilding (default 500ms)")
}

// parseWatchFlags accepts the convert flags plus --debounce.
func parseWatchFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newFlagSet("watch", printWatchUsage, stderr)
	registerWatchFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func registerRestyleFlags(fs *flag.FlagSet, f *restyleFlags) {
	fs.StringVar(&f.pattern, "pattern", "", "guide file name pattern ({N} session, {M} module)")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "report changes without writing")
	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addPassFlags(fs, &f.passes)
}

func parseRestyleFlags(args []string, stderr io.Writer) (*restyleFlags, []string, error) {
	f := &restyleFlags{}
	fs := newFlagSet("restyle", printRestyleUsage, stderr)
	registerRestyleFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func registerReviewFlags(fs *flag.FlagSet, f *reviewFlags) {
	fs.StringVar(&f.sources, "sources", "", "session documents directory (checks missing guides)")
	fs.StringVar(&f.pattern, "pattern", "", "guide file name pattern ({N} session, {M} module)")
	fs.Int64Var(&f.minSize, "min-size", 0, "minimum guide size in bytes")
	fs.IntVar(&f.minSections, "min-sections", 0, "minimum number of h2 sections")
	fs.BoolVarP(&f.showAll, "all", "a", false, "also list successful checks")
	addCommonFlags(fs, &f.common)
}

func parseReviewFlags(args []string, stderr io.Writer) (*reviewFlags, []string, error) {
	f := &reviewFlags{}
	fs := newFlagSet("review", printReviewUsage, stderr)
	registerReviewFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
