package models

import (
	"net/http"
)

// RetryableHTTPCodes are upstream statuses treated as transient.
var RetryableHTTPCodes = map[int]struct{}{
	http.StatusRequestTimeout:      {},
	http.StatusTooManyRequests:     {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
	http.StatusInternalServerError: {},
}

func IsRetryableHTTPCode(code int) bool {
	_, ok := RetryableHTTPCodes[code]
	return ok
}
