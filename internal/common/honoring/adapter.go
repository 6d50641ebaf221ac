package honoring

import (
	"context"
	"errors"

	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/shopspring/decimal"
)

// Adapter executes a cleared obligation on one external rail. Implementations
// must collapse calls sharing an idempotency key into one execution.
type Adapter interface {
	Execute(ctx context.Context, idempotencyKey string, destination *models.ExternalAccountDescriptor, amount Amount, metadata map[string]string) (Result, error)
}

type Amount struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

type Status string

const (
	StatusAccepted Status = "ACCEPTED"
	StatusDeclined Status = "DECLINED"
	StatusPending  Status = "PENDING"
)

type Result struct {
	Status    Status `json:"status"`
	Reference string `json:"reference,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

var (
	// ErrAdapterUnavailable is transient, the same key may be sent again.
	ErrAdapterUnavailable = errors.New("honoring adapter unavailable")
	// ErrAdapterRequest means the rail refused the request itself.
	ErrAdapterRequest = errors.New("honoring adapter refused request")
)

func IsTransient(err error) bool {
	return errors.Is(err, ErrAdapterUnavailable)
}
