package retrieval

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/emmanuelgonz/irods-data-downloader/internal/catalog"
)

// locate lists every remote file under prefix matching sequence. A failed
// listing is logged and yields no files, unless ctx is done, in which case
// the context error is returned. Blank and duplicate lines are dropped;
// order is preserved.
func (s *Service) locate(ctx context.Context, prefix, sequence string, form catalog.ListingForm) ([]string, error) {
	pattern := form.Pattern(prefix, sequence)
	slog.InfoContext(ctx, "searching catalog, this may take several minutes", "pattern", pattern, "sequence", sequence)

	start := time.Now()
	lines, err := s.lister.Locate(ctx, pattern)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		err = &ListingError{Pattern: pattern, Err: err}
		slog.WarnContext(ctx, "catalog listing failed, treating as zero matches", "error", err, "matches", 0)
		return nil, nil
	}

	seen := make(map[string]struct{}, len(lines))
	files := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		files = append(files, line)
	}

	slog.InfoContext(ctx, "matches obtained", "matches", len(files), "elapsed", time.Since(start).Round(time.Millisecond).String())
	return files, nil
}
