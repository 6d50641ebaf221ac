package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cursor points at the last row of a page ordered by (timestamp, id).
type Cursor struct {
	At time.Time
	ID string
}

func NewCursor(at time.Time, id string) *Cursor {
	return &Cursor{At: at, ID: id}
}

func (c *Cursor) Encode() string {
	raw := strconv.FormatInt(c.At.UnixNano(), 10) + "|" + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func (c *Cursor) String() string {
	return c.Encode()
}

// DecodeCursor decodes a cursor produced by Encode.
func DecodeCursor(cursor string) (*Cursor, error) {
	if cursor == "" {
		return nil, fmt.Errorf("cursor is empty")
	}

	decoded, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cursor string: %w", err)
	}

	nanos, id, ok := strings.Cut(string(decoded), "|")
	if !ok || id == "" {
		return nil, fmt.Errorf("failed to parse cursor string: invalid format")
	}

	n, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cursor string: %w", err)
	}

	return &Cursor{At: time.Unix(0, n).UTC(), ID: id}, nil
}
