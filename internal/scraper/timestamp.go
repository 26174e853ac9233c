package scraper

import (
	"errors"
	"fmt"
	"time"
)

// TimeFormat is the layout of the "generated" line below the war status.
const TimeFormat = "Generated on Mon Jan 2 15:04:05 2006"

var ErrInvalidTimestamp = errors.New("invalid generated timestamp")

type TimestampError struct {
	Text string
	Err  error
}

func (e *TimestampError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v %q", ErrInvalidTimestamp, e.Text)
	}
	return fmt.Sprintf("%v %q: %v", ErrInvalidTimestamp, e.Text, e.Err)
}

func (e *TimestampError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidTimestamp}
	}
	return []error{ErrInvalidTimestamp, e.Err}
}

// ParseTimestamp reads a "Generated on ..." line as UTC and returns Unix seconds.
func ParseTimestamp(text string) (int64, error) {
	t, err := time.ParseInLocation(TimeFormat, text, time.UTC)
	if err != nil {
		return 0, &TimestampError{Text: text, Err: err}
	}
	return t.Unix(), nil
}
