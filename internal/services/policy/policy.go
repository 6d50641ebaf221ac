// Package policy evaluates an intent against a PolicyRuleSet. Rules are plain
// functions over the rule set and the input, so a new rule set version only
// swaps data, never code.
package policy

import (
	"fmt"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/hashicorp/go-multierror"
)

const (
	CheckPositiveAmount = "positive_amount"
	CheckPerIntentMax   = "per_intent_max"
	CheckVelocityMax    = "velocity_max"
	CheckDenylist       = "denylist"
)

// Rule returns nil when the input passes.
type Rule func(ruleSet models.PolicyRuleSet, in models.PolicyInput) error

type namedRule struct {
	name  string
	check Rule
}

type options struct {
	skip map[string]bool
}

type Option func(o *options)

// WithoutCheck disables one named check, e.g. velocity when its flag is off.
func WithoutCheck(name string) Option {
	return func(o *options) {
		o.skip[name] = true
	}
}

var rules = []namedRule{
	{name: CheckPositiveAmount, check: positiveAmount},
	{name: CheckPerIntentMax, check: perIntentMax},
	{name: CheckVelocityMax, check: velocityMax},
	{name: CheckDenylist, check: denylist},
}

// Names lists every check in evaluation order.
func Names() []string {
	res := make([]string, 0, len(rules))
	for _, r := range rules {
		res = append(res, r.name)
	}
	return res
}

// Evaluate runs every enabled rule. The returned error aggregates all
// violations and wraps common.ErrPolicyViolation; it is nil when the decision
// allows the intent.
func Evaluate(ruleSet models.PolicyRuleSet, in models.PolicyInput, opts ...Option) (models.PolicyDecision, error) {
	o := options{skip: map[string]bool{}}
	for _, opt := range opts {
		opt(&o)
	}

	decision := models.PolicyDecision{RuleSetVersion: ruleSet.Version}

	var errs *multierror.Error
	for _, r := range rules {
		if o.skip[r.name] {
			continue
		}
		if err := r.check(ruleSet, in); err != nil {
			decision.Violations = append(decision.Violations, r.name)
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", r.name, err))
			continue
		}
		decision.Passed = append(decision.Passed, r.name)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return decision, fmt.Errorf("%w: %v", common.ErrPolicyViolation, err)
	}

	return decision, nil
}

func positiveAmount(_ models.PolicyRuleSet, in models.PolicyInput) error {
	if !in.Intent.Amount.IsPositive() {
		return fmt.Errorf("amount %s is not positive", in.Intent.Amount)
	}
	return nil
}

func perIntentMax(ruleSet models.PolicyRuleSet, in models.PolicyInput) error {
	limit, ok := ruleSet.Limits[in.Intent.Ledger]
	if !ok || !limit.PerIntentMax.IsPositive() {
		return nil
	}

	if in.Intent.Amount.GreaterThan(limit.PerIntentMax) {
		return fmt.Errorf("amount %s exceeds %s on ledger %s", in.Intent.Amount, limit.PerIntentMax, in.Intent.Ledger)
	}
	return nil
}

// velocityMax only applies to intents with an external recipient.
func velocityMax(ruleSet models.PolicyRuleSet, in models.PolicyInput) error {
	if len(in.Intent.ExternalParties()) == 0 {
		return nil
	}

	limit, ok := ruleSet.Limits[in.Intent.Ledger]
	if !ok || !limit.VelocityMax.IsPositive() {
		return nil
	}

	total := in.WindowTotal.Add(in.Intent.Amount)
	if total.GreaterThan(limit.VelocityMax) {
		return fmt.Errorf("window total %s exceeds %s on ledger %s", total, limit.VelocityMax, in.Intent.Ledger)
	}
	return nil
}

func denylist(ruleSet models.PolicyRuleSet, in models.PolicyInput) error {
	for _, fields := range in.IdentityFields {
		for _, entry := range ruleSet.Denylist {
			if entry.Matches(fields) {
				return fmt.Errorf("identity field %s is denied", entry.Field)
			}
		}
	}
	return nil
}
