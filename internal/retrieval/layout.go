package retrieval

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emmanuelgonz/irods-data-downloader/internal/catalog"
	"github.com/emmanuelgonz/irods-data-downloader/internal/model"
)

// Layout owns the local output tree <outdir>/<season>/<sensor>/<partition>/.
type Layout struct {
	root   string
	season string
	sensor string
}

// NewLayout computes the season/sensor root under outDir. Nothing is created.
func NewLayout(outDir string, c model.Coordinate) (*Layout, error) {
	season, ok := catalog.SeasonFolder(c.Season)
	if !ok {
		return nil, &catalog.UnknownCoordinateValueError{Field: "season", Value: string(c.Season)}
	}
	sensor, ok := catalog.SensorFolder(c.Sensor)
	if !ok {
		return nil, &catalog.UnknownCoordinateValueError{Field: "sensor", Value: string(c.Sensor)}
	}
	return &Layout{
		root:   filepath.Join(outDir, season, sensor),
		season: season,
		sensor: sensor,
	}, nil
}

// Root is the season/sensor directory. Archives are fetched here before extraction.
func (l *Layout) Root() string { return l.root }

// SeasonFolder returns the season directory name.
func (l *Layout) SeasonFolder() string { return l.season }

// SensorFolder returns the sensor directory name.
func (l *Layout) SensorFolder() string { return l.sensor }

// Ensure creates the season/sensor root. Calling it again is a no-op.
func (l *Layout) Ensure() error {
	if err := os.MkdirAll(l.root, 0o755); err != nil {
		return fmt.Errorf("create output root: %w", err)
	}
	return nil
}

// PartitionDir returns the directory for partition key.
func (l *Layout) PartitionDir(key string) string {
	return filepath.Join(l.root, key)
}

// EnsurePartition creates the directory for key if needed and returns it.
func (l *Layout) EnsurePartition(key string) (string, error) {
	dir := l.PartitionDir(key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create partition %s: %w", key, err)
	}
	return dir, nil
}
