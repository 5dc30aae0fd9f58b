package exitcode

// Exit codes for the irodsget CLI.
// Wrapping schedulers can use these to decide whether to rerun.
const (
	// Success - every located file was processed
	Success = 0

	// ConfigError - missing or invalid configuration or flags
	// Don't retry: fix the invocation first
	ConfigError = 1

	// CatalogUnavailable - icommands or tar not installed, or not on PATH
	// Don't retry: fix the host first
	CatalogUnavailable = 2

	// ApplicationError - unexpected failure (output directory, cancellation)
	ApplicationError = 3

	// StorageError - failed to mirror to MinIO/S3
	// Retry with backoff
	StorageError = 4

	// PartialFailure - at least one file failed (reported only with -strict)
	// Check logs, rerun to pick up the failed files
	PartialFailure = 6
)
