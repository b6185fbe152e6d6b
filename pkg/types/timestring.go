package types

import (
	"errors"
	"fmt"
	"time"
)

// timeFormat is the wire format for times of day: 24h "HH:MM"
const timeFormat = "15:04"

// ErrInvalidTimeString is returned when a string is not a valid "HH:MM" time
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString represents a time of day as an "HH:MM" string.
// Used for availability template entries, where only the time of day
// matters and the date is supplied separately.
type TimeString string

// NewTimeString creates a TimeString from the time-of-day part of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeFormat))
}

// NewTimeStringFromString parses and validates an "HH:MM" string
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := parseStrict(s); err != nil {
		return "", err
	}
	return TimeString(s), nil
}

// parseStrict parses an "HH:MM" string, requiring zero-padded components.
// time.Parse alone would accept "9:00", which breaks the lexicographic
// ordering the comparison helpers rely on.
func parseStrict(s string) (time.Time, error) {
	if len(s) != 5 || s[2] != ':' {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	parsed, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return parsed, nil
}

// String returns the underlying "HH:MM" representation
func (t TimeString) String() string {
	return string(t)
}

// IsZero returns true if the value is empty
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks that the value is a well-formed "HH:MM" time
func (t TimeString) Validate() error {
	_, err := parseStrict(string(t))
	return err
}

// parse returns the parsed clock time; the date part is the zero date
func (t TimeString) parse() (time.Time, error) {
	return parseStrict(string(t))
}

// AddMinutes returns a new TimeString shifted forward by the given
// number of minutes. Wraps past midnight.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	parsed, err := t.parse()
	if err != nil {
		return "", err
	}
	return TimeString(parsed.Add(time.Duration(minutes) * time.Minute).Format(timeFormat)), nil
}

// IsBefore reports whether t is strictly earlier in the day than other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later in the day than other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// At anchors the time of day to the given date in the date's location,
// producing an absolute timestamp
func (t TimeString) At(date time.Time) (time.Time, error) {
	parsed, err := t.parse()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		date.Location(),
	), nil
}
