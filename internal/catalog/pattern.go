package catalog

import (
	"path"
	"strings"
)

// ListingForm selects how the sequence filter is turned into a catalog
// wildcard. "%" matches within a single path segment.
type ListingForm string

const (
	// FormSubstring matches the sequence anywhere in the file name: prefix/%/%seq.
	FormSubstring ListingForm = "substring"
	// FormExact matches the sequence as the whole file name: prefix/%/seq.
	FormExact ListingForm = "exact"
)

// ParseListingForm accepts the names of the listing forms, case-insensitively.
// An empty string yields FormSubstring.
func ParseListingForm(s string) (ListingForm, error) {
	switch ListingForm(strings.ToLower(s)) {
	case "", FormSubstring:
		return FormSubstring, nil
	case FormExact:
		return FormExact, nil
	}
	return "", &UnknownListingFormError{Form: s}
}

// Pattern builds the catalog locate pattern for files under prefix, one
// intermediate directory deep, whose name matches sequence.
func (f ListingForm) Pattern(prefix, sequence string) string {
	name := sequence
	if f != FormExact {
		name = "%" + sequence
	}
	return path.Join(prefix, "%", name)
}
