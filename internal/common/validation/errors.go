package validation

import (
	"fmt"
)

// ErrorValidateResponse is one failed field. It implements error so the
// failures can be collected with multierror.
type ErrorValidateResponse struct {
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e ErrorValidateResponse) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// fieldCodes maps "<field>_<tag>" to a stable error code.
var fieldCodes = map[string]ErrorValidateResponse{
	"kind_required":           {Code: "KIND_REQUIRED", Message: "kind is required"},
	"kind_intent_kind":        {Code: "UNKNOWN_INTENT_KIND", Message: "kind is not a supported intent kind"},
	"amount_required":         {Code: "AMOUNT_REQUIRED", Message: "amount is required"},
	"amount_positive_amount":  {Code: "INVALID_AMOUNT", Message: "amount must be a positive decimal"},
	"amounts_positive_amount": {Code: "INVALID_AMOUNT", Message: "micro-deposit amounts must be positive decimals"},
	"ledger_required":         {Code: "LEDGER_REQUIRED", Message: "ledger is required"},
	"ledger_ledger_code":      {Code: "INVALID_LEDGER", Message: "ledger must be an upper-case ledger code"},
	"idempotencyKey_required": {Code: "IDEMPOTENCY_KEY_REQUIRED", Message: "idempotencyKey is required"},
	"idempotencyKey_max":      {Code: "IDEMPOTENCY_KEY_TOO_LONG", Message: "idempotencyKey must not exceed 128 characters"},
	"accountId_required_without_all": {
		Code:    "PARTY_REQUIRED",
		Message: "one of accountId, recipientId or alias is required",
	},
}
