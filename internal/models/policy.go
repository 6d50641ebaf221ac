package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PolicyRuleSet is the versioned document the attestation gate evaluates.
// It is replaced as a whole when a new version is published.
type PolicyRuleSet struct {
	Version   string                 `json:"version"`
	Limits    map[string]LedgerLimit `json:"limits"`
	Denylist  []DenylistEntry        `json:"denylist"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

type LedgerLimit struct {
	PerIntentMax decimal.Decimal `json:"perIntentMax"`
	VelocityMax  decimal.Decimal `json:"velocityMax"`
}

// DenylistEntry matches one identity field. Value comparison is
// case-insensitive after trimming.
type DenylistEntry struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Source string `json:"source,omitempty"`
}

func (e DenylistEntry) Matches(fields map[string]string) bool {
	v, ok := fields[e.Field]
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(e.Value))
}

// PolicyInput is what the rules see for one intent.
type PolicyInput struct {
	Intent         Intent
	IdentityFields []map[string]string
	// WindowTotal is the amount already attested for the recipient in the
	// rolling velocity window, excluding this intent.
	WindowTotal decimal.Decimal
}

type PolicyDecision struct {
	RuleSetVersion string   `json:"ruleSetVersion"`
	Passed         []string `json:"passed"`
	Violations     []string `json:"violations"`
}

func (d PolicyDecision) Allowed() bool {
	return len(d.Violations) == 0
}
