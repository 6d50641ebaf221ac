// Package idgenerator issues sortable opaque ids: an optional prefix, the
// creation time in epoch milliseconds and a url-safe encoded uuid.
package idgenerator

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	PrefixIntent      = "INT"
	PrefixBinding     = "BND"
	PrefixAttestation = "ATT"
	PrefixObservation = "OBS"
	PrefixHonoring    = "HON"
)

//go:generate mockgen -source id_generator.go -destination mock/id_generator_mock.go -package mock
type Generator interface {
	Generate(prefixes ...string) string
}

type IDGenerator struct {
	now func() time.Time
}

func New() Generator {
	return &IDGenerator{now: time.Now}
}

func (g *IDGenerator) Generate(prefixes ...string) string {
	var b strings.Builder

	if prefix := strings.Join(prefixes, "-"); prefix != "" {
		b.WriteString(prefix)
		b.WriteByte('-')
	}

	b.WriteString(strconv.FormatInt(g.now().UnixMilli(), 10))

	id := uuid.New()
	b.WriteString(base64.RawURLEncoding.EncodeToString(id[:]))

	return b.String()
}
