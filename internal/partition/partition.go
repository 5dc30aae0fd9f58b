// Package partition derives the local partition key (a capture date or
// timestamp) from a remote file path.
package partition

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrNoDateToken is returned when a path carries neither a timestamp nor a date.
var ErrNoDateToken = errors.New("no date token in path")

var (
	timestampPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}__\d{2}-\d{2}-\d{2}-\d{3}`)
	datePattern      = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

const dateLayout = "2006-01-02"

// Key returns the partition key for p. A full scan timestamp
// (YYYY-MM-DD__HH-MM-SS-mmm) is used verbatim and always wins over a plain
// date. Otherwise the leftmost date-shaped token that is a real calendar date
// is re-rendered as YYYY-MM-DD; tokens such as 2020-13-45 are passed over.
func Key(p string) (string, error) {
	if ts := timestampPattern.FindString(p); ts != "" {
		return ts, nil
	}
	tokens := datePattern.FindAllString(p, -1)
	if len(tokens) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoDateToken, p)
	}
	for _, d := range tokens {
		if date, err := time.Parse(dateLayout, d); err == nil {
			return date.Format(dateLayout), nil
		}
	}
	return "", fmt.Errorf("%w: no valid date among %q in %s", ErrNoDateToken, tokens, p)
}
