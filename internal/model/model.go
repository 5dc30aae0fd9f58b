package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Season identifies a field season by its short number (e.g. "11").
type Season string

// Sensor identifies a gantry sensor by its short name (e.g. "RGB").
type Sensor string

// Level identifies a processing level (e.g. "2").
type Level string

// Crop is an optional crop qualifier appended to the catalog path.
type Crop string

const (
	Season10 Season = "10"
	Season11 Season = "11"
	Season12 Season = "12"
)

const (
	SensorFLIR Sensor = "FLIR"
	SensorPS2  Sensor = "PS2"
	SensorRGB  Sensor = "RGB"
	Sensor3D   Sensor = "3D"
)

const (
	Level0 Level = "0"
	Level1 Level = "1"
	Level2 Level = "2"
	Level3 Level = "3"
	Level4 Level = "4"
)

// Coordinate is the (season, sensor, level, crop) tuple identifying a
// dataset subtree in the catalog. Crop may be empty.
type Coordinate struct {
	Season Season
	Sensor Sensor
	Level  Level
	Crop   Crop
}

func (c Coordinate) String() string {
	if c.Crop == "" {
		return fmt.Sprintf("season=%s sensor=%s level=%s", c.Season, c.Sensor, c.Level)
	}
	return fmt.Sprintf("season=%s sensor=%s level=%s crop=%s", c.Season, c.Sensor, c.Level, c.Crop)
}

// RunID represents a UUIDv7 identifier for one invocation.
type RunID string

// NewRunID generates a fresh UUIDv7 run identifier.
func NewRunID() (RunID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate run-id: %w", err)
	}
	return RunID(id.String()), nil
}

// Validate checks that the RunID is a valid UUIDv7.
func (r RunID) Validate() error {
	if r == "" {
		return fmt.Errorf("run-id cannot be empty")
	}
	id, err := uuid.Parse(string(r))
	if err != nil {
		return fmt.Errorf("run-id must be a valid UUID: %w", err)
	}
	if id.Version() != uuid.Version(7) {
		return fmt.Errorf("run-id must be a UUIDv7, got v%d", id.Version())
	}
	return nil
}

// String returns the run ID as a string.
func (r RunID) String() string {
	return string(r)
}
