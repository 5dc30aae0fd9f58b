package catalog

import "fmt"

// UnknownCoordinateValueError reports a coordinate field whose value is not
// present in its lookup table.
type UnknownCoordinateValueError struct {
	Field string
	Value string
}

func (e *UnknownCoordinateValueError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Field, e.Value)
}

// UnknownListingFormError is returned for a listing form other than
// FormSubstring or FormExact.
type UnknownListingFormError struct {
	Form string
}

func (e *UnknownListingFormError) Error() string {
	return fmt.Sprintf("unknown listing form %q (want %q or %q)", e.Form, FormSubstring, FormExact)
}
