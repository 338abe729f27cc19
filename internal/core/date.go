package core

import (
	"errors"
	"fmt"
	"time"
)

// TimestampLayout is the only accepted textual form of a transaction date.
// Range containment compares these strings lexicographically, which matches
// chronological order only because the layout is fixed width and zero padded.
const TimestampLayout = "2006-01-02 15:04:05"

var ErrInvalidTimestamp = errors.New("incorrect date format, should be YYYY-MM-DD HH:mm:ss")

// ValidateTimestamp checks that s is a real instant written exactly in
// TimestampLayout.
func ValidateTimestamp(s string) error {
	if len(s) != len(TimestampLayout) {
		return fmt.Errorf("%q: %w", s, ErrInvalidTimestamp)
	}
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return fmt.Errorf("%q: %w", s, ErrInvalidTimestamp)
	}
	// Parse accepts a single digit hour; the round trip does not.
	if t.Format(TimestampLayout) != s {
		return fmt.Errorf("%q: %w", s, ErrInvalidTimestamp)
	}
	return nil
}

// Contains reports whether date lies in [Start, End], both inclusive.
func (r DateRange) Contains(date string) bool {
	return r.Start <= date && date <= r.End
}
