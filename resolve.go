package mdmirror

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveArtifactPath maps a document inside mirrorRoot to its artifact path
// under destinationRoot: the mirrorRoot prefix and one separator are removed,
// the remainder is joined onto destinationRoot and its extension replaced by
// artifactExt. It performs no I/O.
//
// documentPath must lie under mirrorRoot. FindDocuments guarantees this for
// every path it returns, so a violation is a programming error and panics.
func ResolveArtifactPath(mirrorRoot, documentPath, destinationRoot, artifactExt string) string {
	prefix := filepath.Clean(mirrorRoot) + string(filepath.Separator)
	if !strings.HasPrefix(documentPath, prefix) || len(documentPath) == len(prefix) {
		panic(fmt.Sprintf("mdmirror: document %q is not under mirror root %q", documentPath, mirrorRoot))
	}

	if !strings.HasPrefix(artifactExt, ".") {
		artifactExt = "." + artifactExt
	}

	rel := documentPath[len(prefix):]
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + artifactExt
	return filepath.Join(destinationRoot, rel)
}

// DefaultDestination returns the sibling output directory used when none is
// given: the input directory path with DestinationSuffix appended.
func DefaultDestination(sourceRoot string) string {
	return filepath.Clean(sourceRoot) + DestinationSuffix
}
