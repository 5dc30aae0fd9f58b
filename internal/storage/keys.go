package storage

import (
	"fmt"
)

// ObjectKey addresses one mirrored file. It mirrors the local layout.
type ObjectKey struct {
	Season    string // season folder, e.g. season_11_sorghum_yr_2020
	Sensor    string // sensor folder, e.g. stereoTop
	Partition string // in YYYY-MM-DD or YYYY-MM-DD__HH-MM-SS-mmm format
	Name      string // slash-separated path below the partition
}

func (k ObjectKey) Key() string {
	return fmt.Sprintf("%s/%s/%s/%s", k.Season, k.Sensor, k.Partition, k.Name)
}
