package common

import (
	"fmt"
	"time"
)

// DateLayout
const (
	DateFormatYYYYMMDD                  = "2006-01-02"
	DateFormatYYYYMMDDWithTime          = "2006-01-02 15:04:05"
	DateFormatYYYYMMDDWithTimeAndOffset = "2006-01-02T15:04:05-07:00" // same as RFC3339/ISO8601
)

func ParseStringToDatetime(layout, value string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidFormatDate, value)
	}
	return t, nil
}

// NowUTC truncates to microseconds to match postgres timestamp precision.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
