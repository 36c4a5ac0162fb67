// Package mdmirror converts a directory tree of Markdown documents to PDF
// and mirrors the artifacts into a destination tree with the same layout.
//
// # Quick Start
//
// Start an engine once, run the pipeline, and close the engine when done:
//
//	engine, err := mdmirror.NewEngine(mdmirror.DefaultRenderOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	report, err := mdmirror.NewPipeline(engine).Run(ctx, "docs", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(report.Results), "documents converted to", report.Destination)
//
// An empty destination selects the sibling directory "<source>-pdf".
//
// # Pipeline
//
// A run goes through these stages, strictly in order:
//
//  1. Mirror the source tree into a fresh scratch directory
//  2. Find every .md file in the mirror
//  3. For each document: convert it, then copy the PDF to the same relative
//     path under the destination root
//
// The first failing document stops the run. Artifacts already placed are
// kept, and the scratch directory is removed on every exit path.
//
// # Engine
//
// The engine renders Markdown with goldmark (GFM, footnotes, chroma
// highlighting), writes a standalone HTML page next to the document so
// relative images resolve, and prints it with headless Chrome via go-rod.
// RenderOptions is fixed at NewEngine: themes, script evaluation, PlantUML
// server, browser binary and flags, page size and margins.
//
// Preview themes are embedded and can be overridden by
// <ConfigDir>/styles/<name>.css. <ConfigDir>/style.css, when present, is
// appended to every page.
//
// # Errors
//
// Every error wraps one of ErrIO, ErrDiscovery, ErrRender or ErrConfig:
//
//	if errors.Is(err, mdmirror.ErrRender) {
//	    // browser or conversion problem
//	}
package mdmirror
