package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-mdmirror"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake converter and environment
// ---------------------------------------------------------------------------

// fakeConverter writes "PDF:<content>" beside each document.
type fakeConverter struct {
	mu     sync.Mutex
	calls  int
	closed bool
	err    error // returned by every Convert when set
}

func (f *fakeConverter) Convert(_ context.Context, documentPath string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	content, err := os.ReadFile(documentPath)
	if err != nil {
		return "", err
	}
	artifact := strings.TrimSuffix(documentPath, filepath.Ext(documentPath)) + mdmirror.ArtifactExt
	if err := os.WriteFile(artifact, append([]byte("PDF:"), content...), 0o644); err != nil {
		return "", err
	}
	return artifact, nil
}

func (f *fakeConverter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// testEnv bundles an Environment with its captured output and converter.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	conv   *fakeConverter
	opts   *mdmirror.RenderOptions // options the converter was built with
}

// newTestEnv returns an environment whose process variables are vars only.
func newTestEnv(vars map[string]string) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		conv:   &fakeConverter{},
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			sort.Strings(out)
			return out
		},
		NewConverter: func(opts mdmirror.RenderOptions) (Converter, error) {
			te.opts = &opts
			return te.conv, nil
		},
	}
	return te
}

// errConverterFactory fails converter construction.
var errConverterFactory = errors.New("factory failed")

// writeDocs creates files under root from a rel-path -> content map.
func writeDocs(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// listTree returns slash-separated relative paths of regular files under root.
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, _ := filepath.Rel(root, path)
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(out)
	return out
}
