package retrieval

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/emmanuelgonz/irods-data-downloader/internal/archive"
	"github.com/emmanuelgonz/irods-data-downloader/internal/catalog"
	"github.com/emmanuelgonz/irods-data-downloader/internal/model"
)

// Request contains input parameters for one retrieval run.
type Request struct {
	Coordinate model.Coordinate
	Sequence   string // substring the remote file name must contain
	OutDir     string
	Form       catalog.ListingForm
	DryRun     bool
}

// CatalogLister lists remote files matching a catalog wildcard pattern.
type CatalogLister interface {
	Locate(ctx context.Context, pattern string) ([]string, error)
}

// CatalogFetcher copies one remote file into dir and returns the local path.
type CatalogFetcher interface {
	Fetch(ctx context.Context, remotePath, dir string) (string, error)
}

// ArchiveExtractor unpacks a local archive into dir.
type ArchiveExtractor interface {
	Extract(ctx context.Context, archivePath, dir string, mode archive.Mode) error
}

// ObjectStorage writes data streams to object storage.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data io.Reader) error
}

// Service orchestrates retrieval: resolve, locate, then fetch and unpack
// each file into its partition directory.
type Service struct {
	resolver      *catalog.Resolver
	lister        CatalogLister
	fetcher       CatalogFetcher
	extractor     ArchiveExtractor
	objectStorage ObjectStorage // optional mirror target
}

// NewService wires a Service. objectStorage may be nil to disable mirroring.
func NewService(resolver *catalog.Resolver, lister CatalogLister, fetcher CatalogFetcher, extractor ArchiveExtractor, objectStorage ObjectStorage) *Service {
	return &Service{
		resolver:      resolver,
		lister:        lister,
		fetcher:       fetcher,
		extractor:     extractor,
		objectStorage: objectStorage,
	}
}

// Run retrieves every file matching req. Per-file failures are recorded in
// the returned Summary and never abort the run. An error is returned only for
// an invalid coordinate, an unusable output directory, a failed mirror, or
// cancellation.
func (s *Service) Run(ctx context.Context, req Request) (*Summary, error) {
	prefix, err := s.resolver.Resolve(req.Coordinate)
	if err != nil {
		return nil, fmt.Errorf("resolve coordinate: %w", err)
	}

	layout, err := NewLayout(req.OutDir, req.Coordinate)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "retrieval started", "coordinate", req.Coordinate.String(), "prefix", prefix, "out", layout.Root(), "dry_run", req.DryRun)

	files, err := s.locate(ctx, prefix, req.Sequence, req.Form)
	if err != nil {
		slog.WarnContext(ctx, "retrieval cancelled during listing", "error", err)
		return NewSummary(0), err
	}

	summary := NewSummary(len(files))
	if !req.DryRun {
		if err := layout.Ensure(); err != nil {
			return summary, err
		}
	}

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			slog.WarnContext(ctx, "retrieval cancelled", "processed", i, "remaining", len(files)-i)
			summary.Log(ctx)
			return summary, err
		}

		slog.InfoContext(ctx, "processing file", "path", file, "index", i+1, "total", len(files))
		outcome := s.retrieve(ctx, layout, file, req.DryRun)
		summary.Add(outcome)
		logOutcome(ctx, outcome)
	}

	summary.Log(ctx)

	// Cancellation during the final fetch.
	if err := ctx.Err(); err != nil {
		slog.WarnContext(ctx, "retrieval cancelled", "processed", len(files), "remaining", 0)
		return summary, err
	}

	if s.objectStorage != nil && !req.DryRun {
		if err := s.mirror(ctx, layout); err != nil {
			return summary, &MirrorError{Err: err}
		}
	}

	return summary, nil
}

func logOutcome(ctx context.Context, o model.Outcome) {
	attrs := []any{"path", o.Path, "partition", o.Partition, "status", o.Status}
	if o.Err != nil {
		slog.ErrorContext(ctx, "file failed", append(attrs, "error", o.Err)...)
		return
	}
	slog.InfoContext(ctx, "file done", attrs...)
}
