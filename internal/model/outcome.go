package model

// Status is the fate of one located file.
type Status string

const (
	StatusExtracted         Status = "downloaded-and-extracted"
	StatusDownloaded        Status = "downloaded-only"
	StatusSkippedDeprecated Status = "skipped-deprecated"
	StatusFailed            Status = "failed"

	// StatusPlanned marks a file that would be retrieved in a dry run.
	StatusPlanned Status = "planned"
)

// Outcome records what happened to a single remote file.
type Outcome struct {
	Path      string // normalized remote path
	Partition string // empty when no key could be derived
	Status    Status
	Err       error // set only when Status is StatusFailed
}
