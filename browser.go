package mdmirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdmirror/internal/process"
)

// printOptions carries the per-export settings the browser needs.
type printOptions struct {
	Page            PageSettings
	PrintBackground bool
	EvaluateScripts bool
	SettleDelay     time.Duration
	Timeout         time.Duration
}

// pageExporter loads a local HTML file and prints it to PDF.
type pageExporter interface {
	PrintToPDF(ctx context.Context, htmlPath string, opts printOptions) ([]byte, error)
	Close() error
}

// rodBrowser drives headless Chrome via go-rod. The browser is launched on
// first use and reused for every document until Close.
type rodBrowser struct {
	bin       string
	noSandbox bool
	args      []string

	launcher *launcher.Launcher
	browser  *rod.Browser
}

func newRodBrowser(opts RenderOptions) *rodBrowser {
	return &rodBrowser{
		bin:       opts.BrowserBin,
		noSandbox: opts.NoSandbox,
		args:      opts.BrowserArgs,
	}
}

// newLauncher configures, but does not start, the Chrome launcher.
func (b *rodBrowser) newLauncher() *launcher.Launcher {
	l := launcher.New().Headless(true)
	if b.bin != "" {
		l = l.Bin(b.bin)
	}
	l = l.NoSandbox(b.noSandbox)
	for _, arg := range b.args {
		name, value, err := splitBrowserArg(arg)
		if err != nil {
			continue // rejected by RenderOptions.Validate
		}
		if value == "" {
			l = l.Set(flags.Flag(name))
		} else {
			l = l.Set(flags.Flag(name), value)
		}
	}
	return l
}

// ensureBrowser lazily launches and connects to the browser.
func (b *rodBrowser) ensureBrowser() error {
	if b.browser != nil {
		return nil
	}

	l := b.newLauncher()
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBrowserConnect, err)
	}
	b.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		_ = b.kill()
		return fmt.Errorf("%w: %w", ErrBrowserConnect, err)
	}
	b.browser = browser
	return nil
}

// Close releases the browser and any child processes it spawned.
func (b *rodBrowser) Close() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	return errors.Join(err, b.kill())
}

// kill stops the launched Chrome process tree and removes its profile directory.
func (b *rodBrowser) kill() error {
	if b.launcher == nil {
		return nil
	}
	var err error
	if pid := b.launcher.PID(); pid > 0 {
		err = process.KillTree(pid)
	}
	b.launcher.Kill()
	b.launcher.Cleanup()
	b.launcher = nil
	return err
}

// PrintToPDF opens htmlPath in a fresh tab, waits until it is ready and
// returns the printed PDF bytes.
func (b *rodBrowser) PrintToPDF(ctx context.Context, htmlPath string, opts printOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := b.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	if !opts.EvaluateScripts {
		if err := (proto.EmulationSetScriptExecutionDisabled{Value: true}).Call(page); err != nil {
			return nil, fmt.Errorf("%w: disabling scripts: %w", ErrPageCreate, err)
		}
	}

	timeout := opts.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	loader := page.Context(ctx).Timeout(timeout)
	defer loader.CancelTimeout()

	if err := loader.Navigate(fileURL(htmlPath)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}
	if err := loader.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}
	if opts.EvaluateScripts {
		if err := loader.WaitIdle(timeout); err != nil {
			return nil, fmt.Errorf("%w: waiting for scripts: %w", ErrPageLoad, err)
		}
	}

	if err := settle(ctx, opts.SettleDelay); err != nil {
		return nil, err
	}

	reader, err := page.Context(ctx).PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	}
	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %w", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// buildPDFOptions maps page settings onto Chrome's print parameters.
func buildPDFOptions(opts printOptions) *proto.PagePrintToPDF {
	width, height := opts.Page.dimensions()
	margin := opts.Page.Margin
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(margin),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: opts.PrintBackground,
	}
}

// settle waits d, returning early if ctx is done.
func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// fileURL converts an absolute filesystem path to a file:// URL.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

func floatPtr(v float64) *float64 {
	return &v
}

// Compile-time interface check.
var _ pageExporter = (*rodBrowser)(nil)
