package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

const velocityBucket = time.Hour

// checkDatabaseError keeps not-found as is and hides anything else behind
// ErrInternalServerError while logging the cause.
func checkDatabaseError(ctx context.Context, err error, op string) error {
	if errors.Is(err, common.ErrDataNotFound) {
		return err
	}

	xlog.Error(ctx, "[DATABASE-ERROR]", xlog.String("operation", op), xlog.Err(err))
	return fmt.Errorf("%w: %s", common.ErrInternalServerError, op)
}

// toMinorUnits converts a major-unit amount to an integer count of the
// ledger's smallest unit; fractions beyond the scale are rejected.
func toMinorUnits(amount decimal.Decimal, scale int32) (int64, error) {
	shifted := amount.Shift(scale)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s has more than %d decimals", common.ErrInvalidAmount, amount, scale)
	}
	return shifted.IntPart(), nil
}

func fromMinorUnits(units int64, scale int32) decimal.Decimal {
	return decimal.New(units, -scale)
}

// velocityKeys returns the bucket keys covering window up to now, newest first.
func velocityKeys(ledger, recipientID string, now time.Time, window time.Duration) []string {
	current := now.Truncate(velocityBucket).Unix()
	buckets := int(window / velocityBucket)
	if buckets < 1 {
		buckets = 1
	}

	keys := make([]string, 0, buckets)
	for i := 0; i < buckets; i++ {
		keys = append(keys, models.VelocityKey(ledger, recipientID, current-int64(i)*int64(velocityBucket.Seconds())))
	}
	return keys
}

func isPendingKind(pendingKinds []string, kind models.IntentKind) bool {
	return slices.Contains(pendingKinds, string(kind))
}

// velocityRecipient is the recipient whose rolling window an intent counts
// against: the destination when external, else the source.
func velocityRecipient(intent models.Intent) string {
	parties := intent.ExternalParties()
	if len(parties) == 0 {
		return ""
	}
	if intent.Destination.IsExternal() {
		return intent.Destination.RecipientID
	}
	return parties[0].RecipientID
}
