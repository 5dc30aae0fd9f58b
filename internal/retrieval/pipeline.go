package retrieval

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/emmanuelgonz/irods-data-downloader/internal/archive"
	"github.com/emmanuelgonz/irods-data-downloader/internal/model"
	"github.com/emmanuelgonz/irods-data-downloader/internal/partition"
)

const deprecatedMarker = "deprecated"

// retrieve runs the per-file sequence for one located path. Every failure
// is captured in the returned Outcome.
func (s *Service) retrieve(ctx context.Context, layout *Layout, raw string, dryRun bool) model.Outcome {
	p := path.Clean(raw)
	outcome := model.Outcome{Path: p}

	if strings.Contains(p, deprecatedMarker) {
		outcome.Status = model.StatusSkippedDeprecated
		return outcome
	}

	key, err := partition.Key(p)
	if err != nil {
		return failed(outcome, err)
	}
	outcome.Partition = key

	if dryRun {
		outcome.Status = model.StatusPlanned
		return outcome
	}

	dir, err := layout.EnsurePartition(key)
	if err != nil {
		return failed(outcome, err)
	}

	switch archive.KindOf(p) {
	case archive.KindGzipTar:
		err = s.fetchAndExtract(ctx, p, layout.Root(), dir, archive.ModeGzip)
	case archive.KindTar:
		err = s.fetchAndExtract(ctx, p, layout.Root(), dir, archive.ModePlain)
	default:
		if _, ferr := s.fetcher.Fetch(ctx, p, dir); ferr != nil {
			return failed(outcome, &TransferError{Path: p, Err: ferr})
		}
		outcome.Status = model.StatusDownloaded
		return outcome
	}
	if err != nil {
		return failed(outcome, err)
	}

	outcome.Status = model.StatusExtracted
	return outcome
}

// fetchAndExtract downloads an archive into workDir and unpacks it into dir.
// A failed gzip extraction is retried once in plain mode. Once fetched, the
// archive is removed whatever the extraction result.
func (s *Service) fetchAndExtract(ctx context.Context, remotePath, workDir, dir string, mode archive.Mode) error {
	local, err := s.fetcher.Fetch(ctx, remotePath, workDir)
	if err != nil {
		return &TransferError{Path: remotePath, Err: err}
	}
	defer removeArchive(ctx, local)

	err = s.extractor.Extract(ctx, local, dir, mode)
	if err != nil && mode == archive.ModeGzip {
		slog.WarnContext(ctx, "gzip extraction failed, retrying as plain tar", "archive", local, "error", err)
		if perr := s.extractor.Extract(ctx, local, dir, archive.ModePlain); perr != nil {
			err = errors.Join(err, perr)
		} else {
			err = nil
		}
	}
	if err != nil {
		return &ExtractionError{Archive: local, Err: err}
	}
	return nil
}

func removeArchive(ctx context.Context, local string) {
	if err := os.Remove(local); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.WarnContext(ctx, "failed to remove fetched archive", "archive", local, "error", err)
	}
}

func failed(o model.Outcome, err error) model.Outcome {
	o.Status = model.StatusFailed
	o.Err = err
	return o
}
