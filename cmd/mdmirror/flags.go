package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// renderFlags holds rendering flags.
type renderFlags struct {
	engineConfig  string
	theme         string
	codeTheme     string
	noBackground  bool
	noScripts     bool
	settleDelay   string
	diagramServer string
}

// browserFlags holds headless browser flags.
type browserFlags struct {
	bin     string
	sandbox bool
	args    []string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	docs    string
	output  string
	timeout string
	render  renderFlags
	page    pageFlags
	browser browserFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show diagnostics and timing")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.engineConfig, "engine-config", "", "engine config directory (default $TMPDIR/.mdmirror)")
	fs.StringVar(&f.theme, "theme", "", "preview theme: github-light, github-dark, plain")
	fs.StringVar(&f.codeTheme, "code-theme", "", "code block theme (chroma style name)")
	fs.BoolVar(&f.noBackground, "no-background", false, "do not print background colors")
	fs.BoolVar(&f.noScripts, "no-scripts", false, "strip raw HTML and disable page scripts")
	fs.StringVar(&f.settleDelay, "settle-delay", "", "extra wait after page load (e.g., 500ms)")
	fs.StringVar(&f.diagramServer, "diagram-server", "", "PlantUML server URL")
}

// addBrowserFlags adds browser flags to a FlagSet.
func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVar(&f.bin, "browser-bin", "", "Chrome/Chromium executable")
	fs.BoolVar(&f.sandbox, "sandbox", false, "keep the Chrome sandbox enabled")
	// StringArray, not StringSlice: flag values like --window-size=800,600 contain commas.
	fs.StringArrayVar(&f.args, "browser-arg", nil, "extra Chrome flag --name[=value] (repeatable)")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.docs, "docs", "d", "", "input directory of .md documents")
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default <docs>-pdf)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout (e.g., 30s, 2m)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addBrowserFlags(fs, &f.browser)
	addPageFlags(fs, &f.page)

	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
