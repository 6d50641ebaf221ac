package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const (
	IdempotencyStatusProcessFinished = "finished"
	IdempotencyStatusProcessPending  = "pending"

	TTLIdempotency = 24 * time.Hour

	idempotencyKeyPrefix = "clearing:http:idempotency:"
)

// Idempotency is the cached outcome of a mutation request sent with an
// X-Idempotency-Key header.
type Idempotency struct {
	CacheKey      string `json:"cacheKey"`
	StatusProcess string `json:"status"`

	// Fingerprint binds the key to one route and one body.
	Fingerprint     string            `json:"fingerprint"`
	HTTPStatusCode  int               `json:"httpStatusCode"`
	ResponseBody    string            `json:"responseBody"`
	ResponseHeaders map[string]string `json:"responseHeaders"`
}

// NewIdempotency starts a pending record. The same key replayed against a
// different route, e.g. confirm then cancel, produces another fingerprint.
func NewIdempotency(key, route string, requestBody []byte) *Idempotency {
	h := sha256.New()
	h.Write([]byte(route))
	h.Write([]byte{0})
	h.Write(requestBody)

	return &Idempotency{
		CacheKey:      idempotencyKeyPrefix + key,
		StatusProcess: IdempotencyStatusProcessPending,
		Fingerprint:   hex.EncodeToString(h.Sum(nil)),
	}
}

func (i *Idempotency) SetResponse(httpStatusCode int, responseHeaders map[string]string, responseBody string) {
	i.HTTPStatusCode = httpStatusCode
	i.ResponseHeaders = responseHeaders
	i.ResponseBody = responseBody
	i.StatusProcess = IdempotencyStatusProcessFinished
}
