package mdmirror

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestErrorCategories - Every sentinel wraps exactly one category
// ---------------------------------------------------------------------------

func TestErrorCategories(t *testing.T) {
	t.Parallel()

	categories := []error{ErrIO, ErrDiscovery, ErrRender, ErrConfig}

	tests := []struct {
		err      error
		category error
	}{
		{ErrNoInput, ErrConfig},
		{ErrSourceNotDir, ErrConfig},
		{ErrInvalidExtension, ErrConfig},
		{ErrInvalidPageSize, ErrConfig},
		{ErrInvalidOrientation, ErrConfig},
		{ErrInvalidMargin, ErrConfig},
		{ErrInvalidTimeout, ErrConfig},
		{ErrInvalidSettleDelay, ErrConfig},
		{ErrInvalidDiagramURL, ErrConfig},
		{ErrInvalidBrowserArg, ErrConfig},
		{ErrStyleNotFound, ErrConfig},
		{ErrCodeThemeNotFound, ErrConfig},
		{ErrEngineConfigDir, ErrConfig},
		{ErrSourceNotFound, ErrIO},
		{ErrMirror, ErrIO},
		{ErrScratch, ErrIO},
		{ErrCreateDestination, ErrIO},
		{ErrPlaceArtifact, ErrIO},
		{ErrSessionOpen, ErrRender},
		{ErrUnsupportedFileType, ErrRender},
		{ErrHTMLConversion, ErrRender},
		{ErrBrowserConnect, ErrRender},
		{ErrPageCreate, ErrRender},
		{ErrPageLoad, ErrRender},
		{ErrPDFGeneration, ErrRender},
		{ErrExport, ErrRender},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			t.Parallel()

			for _, c := range categories {
				want := c == tt.category
				if got := errors.Is(tt.err, c); got != want {
					t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, c, got, want)
				}
			}
		})
	}
}
