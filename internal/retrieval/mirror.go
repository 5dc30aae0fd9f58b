package retrieval

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/emmanuelgonz/irods-data-downloader/internal/storage"
)

// mirror uploads every file below the layout root to object storage.
// Files directly under the root (archives left by an interrupted run) are
// not partitioned and are skipped.
func (s *Service) mirror(ctx context.Context, layout *Layout) error {
	var uploaded int
	err := filepath.WalkDir(layout.Root(), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(layout.Root(), p)
		if err != nil {
			return err
		}
		partitionKey, name, ok := strings.Cut(filepath.ToSlash(rel), "/")
		if !ok {
			return nil
		}

		key := storage.ObjectKey{
			Season:    layout.SeasonFolder(),
			Sensor:    layout.SensorFolder(),
			Partition: partitionKey,
			Name:      name,
		}

		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := s.objectStorage.Put(ctx, key.Key(), f); err != nil {
			return fmt.Errorf("put %s: %w", key.Key(), err)
		}
		uploaded++
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "mirror complete", "objects", uploaded)
	return nil
}
