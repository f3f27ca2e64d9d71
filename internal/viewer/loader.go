// Package viewer implements the data loader behind the project viewer page.
package viewer

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/p-blackswan/arkide-viewer/internal/arkide"
	verrors "github.com/p-blackswan/arkide-viewer/internal/errors"
)

const (
	// QueryProjectID is the query parameter carrying the project ID.
	QueryProjectID = "id"

	// DefaultCacheControl lets link-preview crawlers cache a loaded page.
	DefaultCacheControl = "public, max-age=3600"

	// DefaultDescription is used when a project has no instructions.
	DefaultDescription = "View this ArkIDE project"

	titleSuffix = " - ArkIDE Project"
)

// RequestContext is the slice of a page request the loader needs.
// Query returns "" for an absent parameter.
type RequestContext interface {
	Query(key string) string
	SetHeader(key, value string)
}

// MetadataSource fetches project metadata and builds project URLs.
type MetadataSource interface {
	GetMetadata(ctx context.Context, projectID string) (*arkide.ProjectMetadata, error)
	ThumbnailURL(projectID string) string
}

// Recorder receives the outcome of every load.
type Recorder interface {
	RecordLoad(outcome string)
}

// Options configures a Loader.
type Options struct {
	CacheControl string
	Recorder     Recorder
}

// Loader produces LoadResults. It keeps no state between calls.
type Loader struct {
	source       MetadataSource
	cacheControl string
	recorder     Recorder
	logger       zerolog.Logger
}

// NewLoader creates a loader backed by source.
func NewLoader(source MetadataSource, opts Options, logger zerolog.Logger) *Loader {
	if opts.CacheControl == "" {
		opts.CacheControl = DefaultCacheControl
	}
	return &Loader{
		source:       source,
		cacheControl: opts.CacheControl,
		recorder:     opts.Recorder,
		logger:       logger.With().Str("component", "viewer_loader").Logger(),
	}
}

// Load resolves the page data for rc. It never fails; fetch failures are
// reported through the result's Error and Err fields.
func (l *Loader) Load(ctx context.Context, rc RequestContext) *LoadResult {
	res := l.load(ctx, rc)
	if l.recorder != nil {
		l.recorder.RecordLoad(string(res.Outcome))
	}
	return res
}

func (l *Loader) load(ctx context.Context, rc RequestContext) *LoadResult {
	projectID := rc.Query(QueryProjectID)
	if projectID == "" {
		return idle()
	}

	start := time.Now()
	meta, err := l.source.GetMetadata(ctx, projectID)
	if err != nil {
		le := verrors.Classify(projectID, err)
		l.logger.Warn().
			Err(err).
			Str("project_id", projectID).
			Str("kind", string(le.Kind)).
			Int("status", le.StatusCode).
			Msg("project metadata fetch failed")
		// The failed page does not echo the ID back; it stays on le.ProjectID.
		return failed(le)
	}

	thumbnail := l.source.ThumbnailURL(projectID)
	rc.SetHeader("Cache-Control", l.cacheControl)

	l.logger.Debug().
		Str("project_id", projectID).
		Dur("elapsed", time.Since(start)).
		Msg("project metadata loaded")

	return &LoadResult{
		ProjectData:     meta,
		ProjectID:       &projectID,
		ThumbnailURL:    &thumbnail,
		PageTitle:       meta.TitleText() + titleSuffix,
		PageDescription: meta.Description(DefaultDescription),
		PageImage:       thumbnail,
		Outcome:         OutcomeLoaded,
	}
}
