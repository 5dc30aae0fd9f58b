package catalog

import (
	"errors"
	"path"
	"slices"

	"github.com/emmanuelgonz/irods-data-downloader/internal/model"
)

// DefaultServerRoot is the shared collection holding all gantry seasons.
const DefaultServerRoot = "/iplant/home/shared/phytooracle/"

var seasons = map[model.Season]string{
	model.Season10: "season_10_lettuce_yr_2020",
	model.Season11: "season_11_sorghum_yr_2020",
	model.Season12: "season_12_sorghum_soybean_sunflower_tepary_yr_2021",
}

var levels = map[model.Level]string{
	model.Level0: "level_0",
	model.Level1: "level_1",
	model.Level2: "level_2",
	model.Level3: "level_3",
	model.Level4: "level_4",
}

var sensors = map[model.Sensor]string{
	model.SensorFLIR: "flirIrCamera",
	model.SensorPS2:  "ps2Top",
	model.SensorRGB:  "stereoTop",
	model.Sensor3D:   "scanner3DTop",
}

var crops = map[model.Crop]string{
	"lettuce":   "lettuce",
	"sorghum":   "sorghum",
	"soybean":   "soybean",
	"sunflower": "sunflower",
	"tepary":    "tepary",
}

// Resolver maps catalog coordinates to remote path prefixes under a fixed
// server root.
type Resolver struct {
	root string
}

// NewResolver returns a Resolver rooted at root, or at DefaultServerRoot
// when root is empty.
func NewResolver(root string) *Resolver {
	if root == "" {
		root = DefaultServerRoot
	}
	return &Resolver{root: root}
}

// Root returns the server root the resolver joins prefixes under.
func (r *Resolver) Root() string {
	return r.root
}

// Validate checks every field of c against its lookup table. All unknown
// fields are reported together.
func Validate(c model.Coordinate) error {
	var errs []error
	if _, ok := seasons[c.Season]; !ok {
		errs = append(errs, &UnknownCoordinateValueError{Field: "season", Value: string(c.Season)})
	}
	if _, ok := sensors[c.Sensor]; !ok {
		errs = append(errs, &UnknownCoordinateValueError{Field: "sensor", Value: string(c.Sensor)})
	}
	if _, ok := levels[c.Level]; !ok {
		errs = append(errs, &UnknownCoordinateValueError{Field: "level", Value: string(c.Level)})
	}
	if c.Crop != "" {
		if _, ok := crops[c.Crop]; !ok {
			errs = append(errs, &UnknownCoordinateValueError{Field: "crop", Value: string(c.Crop)})
		}
	}
	return errors.Join(errs...)
}

// Resolve composes the remote prefix root/season/level/sensor[/crop].
func (r *Resolver) Resolve(c model.Coordinate) (string, error) {
	if err := Validate(c); err != nil {
		return "", err
	}
	segments := []string{r.root, seasons[c.Season], levels[c.Level], sensors[c.Sensor]}
	if c.Crop != "" {
		segments = append(segments, crops[c.Crop])
	}
	return path.Join(segments...), nil
}

// SeasonFolder returns the catalog folder name for s.
func SeasonFolder(s model.Season) (string, bool) {
	name, ok := seasons[s]
	return name, ok
}

// SensorFolder returns the catalog folder name for s.
func SensorFolder(s model.Sensor) (string, bool) {
	name, ok := sensors[s]
	return name, ok
}

// Seasons lists the accepted season values in sorted order.
func Seasons() []string { return sortedKeys(seasons) }

// Sensors lists the accepted sensor values in sorted order.
func Sensors() []string { return sortedKeys(sensors) }

// Levels lists the accepted level values in sorted order.
func Levels() []string { return sortedKeys(levels) }

// Crops lists the accepted crop values in sorted order.
func Crops() []string { return sortedKeys(crops) }

func sortedKeys[K ~string, V any](m map[K]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	slices.Sort(keys)
	return keys
}
