package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-mdmirror"
)

// Converter is the conversion service the CLI drives: one document in, one
// artifact path out, closed once the run ends.
type Converter interface {
	mdmirror.DocumentConverter
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*mdmirror.Engine)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment, and the converter factory.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	Getenv       func(string) string
	Environ      func() []string
	NewConverter func(mdmirror.RenderOptions) (Converter, error)
}

// DefaultEnv returns the production environment backed by the real engine.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Getenv:       os.Getenv,
		Environ:      os.Environ,
		NewConverter: newEngine,
	}
}

func newEngine(opts mdmirror.RenderOptions) (Converter, error) {
	engine, err := mdmirror.NewEngine(opts)
	if err != nil {
		return nil, err
	}
	return engine, nil
}
