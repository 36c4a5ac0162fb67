package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdmirror"
	"github.com/alnah/go-mdmirror/internal/config"
	"github.com/alnah/go-mdmirror/internal/fileutil"
	"github.com/alnah/go-mdmirror/internal/hints"
)

// ErrUsage marks command line mistakes: bad flags or extra arguments.
var ErrUsage = errors.New("invalid usage")

// hintContext carries what hintFor needs to know about the current run.
type hintContext struct {
	configName string
	configDir  string
	sandboxed  bool
}

// hintedError appends an actionable hint to a wrapped error's message.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

// runConvert parses flags, resolves configuration and runs one pipeline.
func runConvert(ctx context.Context, args []string, env *Environment) (err error) {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one input directory, got %d", ErrUsage, len(positional))
	}

	hc := &hintContext{}
	defer func() {
		if err != nil {
			err = withHint(err, hc)
		}
	}()

	warnUnknownEnvVars(env.Stderr, env.Environ())
	envCfg := loadEnvConfig(env.Getenv)

	// Load configuration: --config wins over MDMIRROR_CONFIG
	hc.configName = flags.common.config
	if hc.configName == "" {
		hc.configName = envCfg.ConfigPath
	}
	cfg := config.DefaultConfig()
	if hc.configName != "" {
		cfg, err = config.LoadConfig(hc.configName)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, positional, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := buildRenderOptions(cfg)
	hc.configDir = opts.ConfigDir
	hc.sandboxed = !opts.NoSandbox
	if err != nil {
		return err
	}

	if cfg.Input.Dir == "" {
		return mdmirror.ErrNoInput
	}

	conv, err := env.NewConverter(opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conv.Close(); cerr != nil {
			fmt.Fprintf(env.Stderr, "warning: closing browser: %v\n", cerr)
		}
	}()

	logger := newLogger(env.Stderr, flags.common)
	pipeline := mdmirror.NewPipeline(conv,
		mdmirror.WithLogger(logger),
		mdmirror.WithProgress(progressPrinter(env.Stdout, flags.common)),
	)

	start := env.Now()
	report, err := pipeline.Run(ctx, cfg.Input.Dir, cfg.Output.Dir)
	if err != nil {
		if n := len(report.Results); n > 0 && !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "\n%d document(s) placed in %s before the failure\n", n, report.Destination)
		}
		return err
	}

	if !flags.common.quiet {
		printSummary(env.Stdout, report, env.Now().Sub(start))
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
// A positional input directory is used when -d is not given.
func mergeFlags(flags *convertFlags, positional []string, cfg *config.Config) {
	// I/O flags
	switch {
	case flags.docs != "":
		cfg.Input.Dir = flags.docs
	case len(positional) > 0:
		cfg.Input.Dir = positional[0]
	}
	setString(&cfg.Output.Dir, flags.output)
	setString(&cfg.Render.Timeout, flags.timeout)

	// Render flags
	setString(&cfg.Engine.ConfigDir, flags.render.engineConfig)
	setString(&cfg.Render.PreviewTheme, flags.render.theme)
	setString(&cfg.Render.CodeBlockTheme, flags.render.codeTheme)
	setString(&cfg.Render.SettleDelay, flags.render.settleDelay)
	setString(&cfg.Render.DiagramServer, flags.render.diagramServer)
	if flags.render.noBackground {
		cfg.Render.PrintBackground = false
	}
	if flags.render.noScripts {
		cfg.Render.EvaluateScripts = false
	}

	// Browser flags
	setString(&cfg.Browser.Bin, flags.browser.bin)
	if flags.browser.sandbox {
		cfg.Browser.NoSandbox = false
	}
	if len(flags.browser.args) > 0 {
		cfg.Browser.Args = append(cfg.Browser.Args, flags.browser.args...)
	}

	// Page flags
	setString(&cfg.Page.Size, flags.page.size)
	setString(&cfg.Page.Orientation, flags.page.orientation)
	if flags.page.margin > 0 {
		cfg.Page.Margin = flags.page.margin
	}
}

// buildRenderOptions maps resolved configuration onto engine options.
// Empty values keep the engine defaults.
func buildRenderOptions(cfg *config.Config) (mdmirror.RenderOptions, error) {
	opts := mdmirror.DefaultRenderOptions()

	settle, timeout, err := cfg.Render.Durations()
	if err != nil {
		return opts, err
	}

	if cfg.Engine.ConfigDir != "" {
		opts.ConfigDir = cfg.Engine.ConfigDir
	}
	if cfg.Render.PreviewTheme != "" {
		opts.PreviewTheme = cfg.Render.PreviewTheme
	}
	if cfg.Render.CodeBlockTheme != "" {
		opts.CodeBlockTheme = cfg.Render.CodeBlockTheme
	}
	opts.PrintBackground = cfg.Render.PrintBackground
	opts.EvaluateScripts = cfg.Render.EvaluateScripts
	opts.SettleDelay = settle
	opts.DiagramServer = cfg.Render.DiagramServer
	if timeout > 0 {
		opts.Timeout = timeout
	}

	opts.BrowserBin = cfg.Browser.Bin
	opts.NoSandbox = cfg.Browser.NoSandbox
	opts.BrowserArgs = slices.Clone(cfg.Browser.Args)

	if cfg.Page.Size != "" {
		opts.Page.Size = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		opts.Page.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin > 0 {
		opts.Page.Margin = cfg.Page.Margin
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// newLogger returns the pipeline diagnostics logger: warnings by default,
// everything with --verbose, errors only with --quiet.
func newLogger(w io.Writer, common commonFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case common.verbose:
		level = slog.LevelDebug
	case common.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// progressPrinter reports each placed artifact unless quiet.
func progressPrinter(w io.Writer, common commonFlags) func(mdmirror.DocumentResult) {
	return func(r mdmirror.DocumentResult) {
		switch {
		case common.quiet:
		case common.verbose:
			fmt.Fprintf(w, "%s -> %s (%v)\n", r.Source, r.Artifact, r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(w, "Created %s\n", r.Artifact)
		}
	}
}

// printSummary writes the closing line of a successful run.
func printSummary(w io.Writer, report *mdmirror.Report, elapsed time.Duration) {
	if report.Discovered == 0 {
		fmt.Fprintf(w, "No %s documents found in %s\n", mdmirror.DocumentExt, report.Source)
		return
	}
	fmt.Fprintf(w, "\n%d document(s) converted into %s in %v\n",
		len(report.Results), report.Destination, elapsed.Round(time.Millisecond))
}

// withHint wraps err with the hint matching its cause, if any.
func withHint(err error, hc *hintContext) error {
	hint := hintFor(err, hc)
	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// hintFor picks the hint for the most specific known cause of err.
func hintFor(err error, hc *hintContext) string {
	switch {
	case errors.Is(err, mdmirror.ErrBrowserConnect):
		return hints.ForBrowserConnect(hc.sandboxed)
	case errors.Is(err, mdmirror.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		if fileutil.IsFilePath(hc.configName) {
			return hints.ForConfigNotFound(nil)
		}
		return hints.ForConfigNotFound(config.SearchPaths(hc.configName))
	case errors.Is(err, mdmirror.ErrNoInput),
		errors.Is(err, mdmirror.ErrSourceNotFound),
		errors.Is(err, mdmirror.ErrSourceNotDir):
		return hints.ForSourceNotFound()
	case errors.Is(err, mdmirror.ErrCreateDestination):
		return hints.ForOutputDirectory()
	case errors.Is(err, mdmirror.ErrStyleNotFound):
		return hints.ForStyleNotFound(hc.configDir)
	case errors.Is(err, mdmirror.ErrCodeThemeNotFound):
		return hints.ForCodeTheme()
	case errors.Is(err, mdmirror.ErrInvalidDiagramURL):
		return hints.ForDiagramServer()
	}
	return ""
}

// isHelpRequest reports whether err is pflag's -h/--help signal.
func isHelpRequest(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
