package viewer

import (
	"github.com/p-blackswan/arkide-viewer/internal/arkide"
	verrors "github.com/p-blackswan/arkide-viewer/internal/errors"
)

// Outcome discriminates the three shapes a load can produce.
type Outcome string

const (
	// OutcomeIdle means no project ID was supplied; the client may still
	// resolve one from the URL hash.
	OutcomeIdle   Outcome = "idle"
	OutcomeLoaded Outcome = "loaded"
	OutcomeFailed Outcome = "failed"
)

// LoadResult is the page data handed to the rendering layer.
//
// The four core fields are always serialized, as null when unset. The page
// meta fields are only present on a successful load.
type LoadResult struct {
	ProjectData  *arkide.ProjectMetadata `json:"projectData"`
	ProjectID    *string                 `json:"projectId"`
	ThumbnailURL *string                 `json:"thumbnailUrl"`
	Error        *string                 `json:"error"`

	PageTitle       string `json:"pageTitle,omitempty"`
	PageDescription string `json:"pageDescription,omitempty"`
	PageImage       string `json:"pageImage,omitempty"`

	Outcome Outcome            `json:"-"`
	Err     *verrors.LoadError `json:"-"`
}

func idle() *LoadResult {
	return &LoadResult{Outcome: OutcomeIdle}
}

func failed(le *verrors.LoadError) *LoadResult {
	msg := le.Message
	return &LoadResult{Outcome: OutcomeFailed, Error: &msg, Err: le}
}
