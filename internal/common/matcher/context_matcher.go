package matcher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/mock/gomock"
)

// deadlineWithin matches a context whose deadline is between lo and hi from
// the moment of the call.
type deadlineWithin struct {
	lo, hi time.Duration
}

func (m deadlineWithin) Matches(x any) bool {
	ctx, ok := x.(context.Context)
	if !ok {
		return false
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return false
	}
	left := time.Until(deadline)
	return left > 0 && left >= m.lo && left <= m.hi
}

func (m deadlineWithin) String() string {
	return fmt.Sprintf("context expiring in %s..%s", m.lo, m.hi)
}

// ContextWithTimeoutRange asserts that a handler bounded the context it passed
// down, e.g. with the consumer handler timeout.
func ContextWithTimeoutRange(lo, hi time.Duration) gomock.Matcher {
	return deadlineWithin{lo: lo, hi: hi}
}
