package models

import (
	"fmt"
	"time"
)

type GetOrSetCacheOptions[T any] struct {
	Key string
	TTL time.Duration
	Fn  func() (T, error)
}

type SetCacheOptions[T any] struct {
	Key string
	TTL time.Duration
	Val T
}

// Cache keys owned by the clearing domain.
func IntentDedupKey(idempotencyKey string) string {
	return "intent:dedup:" + idempotencyKey
}

func AttestationConsumedKey(attestationID string) string {
	return "attestation:consumed:" + attestationID
}

func VelocityKey(ledger, recipientID string, bucket int64) string {
	return fmt.Sprintf("velocity:%s:%s:%d", ledger, recipientID, bucket)
}
