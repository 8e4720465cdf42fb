package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	plain   bool
}

// endpointFlags holds Apps Script endpoint flags.
type endpointFlags struct {
	apiURL  string
	sheetID string
	timeout string
}

// reportFlags holds report output flags.
type reportFlags struct {
	output   string
	title    string
	notes    string
	style    string
	date     string
	dumpJSON string
	preview  string
}

// assetFlags holds asset override flags.
type assetFlags struct {
	assetPath string
}

// gitFlags holds publish pipeline flags.
type gitFlags struct {
	repo    string
	remote  string
	branch  string
	message string
	noPull  bool
	noPush  bool
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common   commonFlags
	endpoint endpointFlags
	report   reportFlags
	assets   assetFlags
}

// publishFlags holds all flags for the publish command.
type publishFlags struct {
	generateFlags
	git gitFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
	fs.BoolVar(&f.plain, "plain", false, "plain progress output (no bars)")
}

// addEndpointFlags adds endpoint flags to a FlagSet.
func addEndpointFlags(fs *flag.FlagSet, f *endpointFlags) {
	fs.StringVar(&f.apiURL, "api-url", "", "Apps Script web app URL (.../exec)")
	fs.StringVar(&f.sheetID, "id", "", "spreadsheet ID (passed as ?id=)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "endpoint timeout (e.g., 30s, 2m)")
}

// addReportFlags adds report flags to a FlagSet.
func addReportFlags(fs *flag.FlagSet, f *reportFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output HTML path")
	fs.StringVar(&f.title, "title", "", "document title")
	fs.StringVar(&f.notes, "notes", "", "markdown file for the notes panel")
	fs.StringVar(&f.style, "style", "", "CSS style name")
	fs.StringVar(&f.date, "date", "", "footer date: \"auto\", \"auto:FORMAT\", or literal")
	fs.StringVar(&f.dumpJSON, "dump-json", "", "also write the raw payload JSON to this path")
	fs.StringVar(&f.preview, "preview", "", "also capture a PNG preview to this path")
}

// addAssetFlags adds asset flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addGitFlags adds publish pipeline flags to a FlagSet.
func addGitFlags(fs *flag.FlagSet, f *gitFlags) {
	fs.StringVar(&f.repo, "repo", "", "repository directory (default: current)")
	fs.StringVar(&f.remote, "remote", "", "git remote")
	fs.StringVar(&f.branch, "branch", "", "git branch")
	fs.StringVarP(&f.message, "message", "m", "", "commit message")
	fs.BoolVar(&f.noPull, "no-pull", false, "skip git pull")
	fs.BoolVar(&f.noPush, "no-push", false, "skip git push")
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	f := &generateFlags{}

	addCommonFlags(fs, &f.common)
	addEndpointFlags(fs, &f.endpoint)
	addReportFlags(fs, &f.report)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printGenerateUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parsePublishFlags parses publish command flags and returns positional args.
func parsePublishFlags(args []string) (*publishFlags, []string, error) {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	f := &publishFlags{}

	addCommonFlags(fs, &f.common)
	addEndpointFlags(fs, &f.endpoint)
	addReportFlags(fs, &f.report)
	addAssetFlags(fs, &f.assets)
	addGitFlags(fs, &f.git)

	fs.Usage = func() { printPublishUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
