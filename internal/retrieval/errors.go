package retrieval

import "fmt"

// ListingError wraps a failed catalog listing. The locator degrades it to
// zero matches unless the run was cancelled.
type ListingError struct {
	Pattern string
	Err     error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("listing %s: %v", e.Pattern, e.Err)
}

func (e *ListingError) Unwrap() error { return e.Err }

// TransferError wraps a failed fetch of one remote file.
type TransferError struct {
	Path string
	Err  error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer %s: %v", e.Path, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// ExtractionError is returned when every extraction attempt of an archive failed.
type ExtractionError struct {
	Archive string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Archive, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// MirrorError wraps a failed upload of the output tree.
type MirrorError struct {
	Err error
}

func (e *MirrorError) Error() string {
	return fmt.Sprintf("mirror: %v", e.Err)
}

func (e *MirrorError) Unwrap() error { return e.Err }
