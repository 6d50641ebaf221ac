package pagination

import (
	"fmt"
)

const (
	DefaultLimit = 50

	// OverFetchOffset fetches one extra row to know whether a next page exists.
	OverFetchOffset = 1
)

// Options contains pagination parameters
type Options struct {
	Limit      int
	NextCursor string
}

// BuildCursorAndLimit validates the limit against maxLimit and returns the
// decoded cursor with the over-fetch limit.
func (o *Options) BuildCursorAndLimit(maxLimit int) (*Cursor, int, error) {
	limit := o.Limit

	if limit == 0 {
		limit = DefaultLimit
	}

	if limit < 0 {
		return nil, 0, fmt.Errorf("the limit must be greater than zero")
	}

	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	if o.NextCursor == "" {
		return nil, limit + OverFetchOffset, nil
	}

	cursor, err := DecodeCursor(o.NextCursor)
	if err != nil {
		return nil, 0, err
	}

	return cursor, limit + OverFetchOffset, nil
}
