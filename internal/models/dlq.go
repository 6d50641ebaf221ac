package models

import (
	"time"
)

// DLQ stages name the consumer a failed clearing event came from.
const (
	DLQStageMirror   = "mirror"
	DLQStageHonoring = "honoring"

	DefaultDLQMaxRetry = 5
)

type FailedMessage struct {
	Payload    []byte    `json:"payload"`
	Topic      string    `json:"topic"`
	Partition  int32     `json:"partition"`
	Offset     int64     `json:"offset"`
	Timestamp  time.Time `json:"timestamp"`
	Stage      string    `json:"stage,omitempty"`
	CauseError error     `json:"-"`

	// Error is a string representation of CauseError
	Error string `json:"error"`
}

// DLQRetryStatus counts redeliveries of one failed message.
type DLQRetryStatus struct {
	ProcessID string `json:"processId"`
	Stage     string `json:"stage"`
	Attempts  int    `json:"attempts"`
	MaxRetry  int    `json:"maxRetry"`
	LastError string `json:"lastError,omitempty"`
}

func (s DLQRetryStatus) Exhausted() bool {
	return s.Attempts >= s.MaxRetry
}

func DLQRetryStatusKey(processID string) string {
	return "dlq:retry:" + processID
}
