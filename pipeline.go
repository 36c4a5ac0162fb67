package mdmirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-mdmirror/internal/fileutil"
)

// DocumentConverter converts one document and returns the artifact path.
// *Engine satisfies it.
type DocumentConverter interface {
	Convert(ctx context.Context, documentPath string) (string, error)
}

// State is the pipeline's progress marker.
type State int

const (
	StateInit State = iota
	StateMirroring
	StateDiscovering
	StateConverting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateMirroring:
		return "mirroring"
	case StateDiscovering:
		return "discovering"
	case StateConverting:
		return "converting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// DocumentResult records one placed artifact.
type DocumentResult struct {
	Source   string // path relative to the source root
	Artifact string // absolute path under the destination root
	Duration time.Duration
}

// Report summarizes a run. It is returned even when Run fails.
type Report struct {
	RunID       string
	Source      string
	Destination string
	State       State
	Discovered  int
	Results     []DocumentResult
}

// Pipeline mirrors a source tree to scratch space, converts every document
// found there and places the artifacts into the destination tree.
type Pipeline struct {
	conv          DocumentConverter
	logger        *slog.Logger
	scratchParent string
	extension     string
	onDocument    func(DocumentResult)
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithScratchParent sets the directory scratch space is created in.
// Empty means the system temp directory.
func WithScratchParent(dir string) PipelineOption {
	return func(p *Pipeline) {
		p.scratchParent = dir
	}
}

// WithProgress registers a callback invoked after each artifact is placed.
func WithProgress(fn func(DocumentResult)) PipelineOption {
	return func(p *Pipeline) {
		p.onDocument = fn
	}
}

// NewPipeline creates a pipeline around conv.
func NewPipeline(conv DocumentConverter, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		conv:      conv,
		logger:    slog.New(slog.DiscardHandler),
		extension: DocumentExt,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one conversion run. An empty destinationRoot selects
// DefaultDestination(sourceRoot). The first failing document stops the run;
// artifacts already placed are kept. Scratch space is removed on every path.
func (p *Pipeline) Run(ctx context.Context, sourceRoot, destinationRoot string) (*Report, error) {
	report := &Report{
		RunID: uuid.NewString(),
		State: StateInit,
	}
	log := p.logger.With("run", report.RunID)

	if err := p.run(ctx, report, log, sourceRoot, destinationRoot); err != nil {
		log.Info("run failed", "state", report.State, "error", err)
		report.State = StateFailed
		return report, err
	}
	report.State = StateDone
	log.Info("run complete", "documents", len(report.Results))
	return report, nil
}

func (p *Pipeline) run(ctx context.Context, report *Report, log *slog.Logger, sourceRoot, destinationRoot string) error {
	source, err := resolveSource(sourceRoot)
	if err != nil {
		return err
	}
	report.Source = source

	if destinationRoot == "" {
		destinationRoot = DefaultDestination(source)
	}
	destination, err := filepath.Abs(destinationRoot)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDestination, err)
	}
	if err := os.MkdirAll(destination, fileutil.DirPermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDestination, err)
	}
	report.Destination = destination
	log.Debug("resolved roots", "source", source, "destination", destination)

	// Discovery returns absolute paths, so the mirror root must be too.
	scratchParent := p.scratchParent
	if scratchParent == "" {
		scratchParent = os.TempDir()
	}
	if scratchParent, err = filepath.Abs(scratchParent); err != nil {
		return fmt.Errorf("%w: %w", ErrScratch, err)
	}
	scratch, err := os.MkdirTemp(scratchParent, "mdmirror-")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScratch, err)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			log.Warn("removing scratch directory", "path", scratch, "error", err)
		}
	}()

	report.State = StateMirroring
	mirrorRoot, err := Mirror(source, scratch)
	if err != nil {
		return err
	}
	log.Debug("mirrored source", "scratch", mirrorRoot)

	report.State = StateDiscovering
	docs, err := FindDocuments(mirrorRoot, p.extension)
	if err != nil {
		return err
	}
	report.Discovered = len(docs)
	log.Debug("discovered documents", "count", len(docs))

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.State = StateConverting

		rel, err := filepath.Rel(mirrorRoot, doc)
		if err != nil {
			rel = doc
		}
		target := ResolveArtifactPath(mirrorRoot, doc, destination, ArtifactExt)
		log.Debug("converting", "document", rel, "target", target)

		start := time.Now()
		artifact, err := p.conv.Convert(ctx, doc)
		if err != nil {
			return fmt.Errorf("%s: %w", rel, err)
		}

		if err := os.MkdirAll(filepath.Dir(target), fileutil.DirPermissions); err != nil {
			return fmt.Errorf("%w: %w", ErrCreateDestination, err)
		}
		if _, err := fileutil.CopyFile(artifact, target); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrPlaceArtifact, rel, err)
		}

		result := DocumentResult{Source: rel, Artifact: target, Duration: time.Since(start)}
		report.Results = append(report.Results, result)
		if p.onDocument != nil {
			p.onDocument(result)
		}
	}
	return nil
}

// resolveSource returns the absolute source root, checking it is a directory.
func resolveSource(sourceRoot string) (string, error) {
	if sourceRoot == "" {
		return "", ErrNoInput
	}
	source, err := filepath.Abs(sourceRoot)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}
	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSourceNotFound, source)
		}
		return "", fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrSourceNotDir, source)
	}
	return source, nil
}
