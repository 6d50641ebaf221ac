package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/common/safeaccess"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/monitoring"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// RuleSetRepository serves the policy rule set and the chart of accounts.
// Both documents are published to object storage and reloaded in place.
type RuleSetRepository interface {
	GetPolicy(ctx context.Context) (models.PolicyRuleSet, error)
	GetChart(ctx context.Context) (models.ChartOfAccounts, error)
	PublishPolicy(ctx context.Context, ruleSet models.PolicyRuleSet) error
	Reload(ctx context.Context) error
	RefreshDataPeriodically(ctx context.Context, interval time.Duration)
}

type gcsRuleSetRepository struct {
	policy safeaccess.ObjectStorageClient[models.PolicyRuleSet]
	chart  safeaccess.ObjectStorageClient[models.ChartOfAccounts]
}

func NewGCSRuleSetRepository(cfg *config.Config, opts ...option.ClientOption) (RuleSetRepository, error) {
	if cfg.RuleSet.BucketName == "" {
		return nil, fmt.Errorf("failed to init rule set, bucket name not set")
	}

	if cfg.RuleSet.PolicyFilePath == "" {
		return nil, fmt.Errorf("failed to init rule set, policy file path not set")
	}

	if cfg.RuleSet.ChartFilePath == "" {
		return nil, fmt.Errorf("failed to init rule set, chart file path not set")
	}

	client, err := storage.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	bucket := client.Bucket(cfg.RuleSet.BucketName)

	return newRuleSetRepository(
		safeaccess.NewGCSJson[models.PolicyRuleSet](bucket.Object(cfg.RuleSet.PolicyFilePath)),
		safeaccess.NewGCSJson[models.ChartOfAccounts](bucket.Object(cfg.RuleSet.ChartFilePath)),
	), nil
}

func newRuleSetRepository(
	policy safeaccess.ObjectStorageClient[models.PolicyRuleSet],
	chart safeaccess.ObjectStorageClient[models.ChartOfAccounts],
) *gcsRuleSetRepository {
	return &gcsRuleSetRepository{policy: policy, chart: chart}
}

func (g *gcsRuleSetRepository) Reload(ctx context.Context) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	prevPolicy := g.policy.Value().Load().Version
	prevChart := g.chart.Value().Load().Version

	if err = g.policy.LoadFile(ctx); err != nil {
		return fmt.Errorf("failed to read policy rule set: %w", err)
	}

	if err = g.chart.LoadFile(ctx); err != nil {
		return fmt.Errorf("failed to read chart of accounts: %w", err)
	}

	if v := g.policy.Value().Load().Version; v != prevPolicy {
		xlog.Info(ctx, "[RULE-SET] policy loaded", xlog.String("version", v), xlog.String("previous", prevPolicy))
	}
	if v := g.chart.Value().Load().Version; v != prevChart {
		xlog.Info(ctx, "[RULE-SET] chart loaded", xlog.String("version", v), xlog.String("previous", prevChart))
	}

	return nil
}

func (g *gcsRuleSetRepository) RefreshDataPeriodically(ctx context.Context, interval time.Duration) {
	err := g.Reload(ctx)
	if err != nil {
		xlog.Warn(ctx, "failed to load rule set", xlog.Err(err))
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := g.Reload(ctx); err != nil {
					xlog.Warn(ctx, "failed to reload rule set", xlog.Err(err))
				}
			}
		}
	}()
}

func (g *gcsRuleSetRepository) GetPolicy(_ context.Context) (models.PolicyRuleSet, error) {
	if !g.policy.Loaded() {
		return models.PolicyRuleSet{}, fmt.Errorf("%w: policy", common.ErrRuleSetNotLoaded)
	}
	return g.policy.Value().Load(), nil
}

func (g *gcsRuleSetRepository) GetChart(_ context.Context) (models.ChartOfAccounts, error) {
	if !g.chart.Loaded() {
		return models.ChartOfAccounts{}, fmt.Errorf("%w: chart of accounts", common.ErrRuleSetNotLoaded)
	}
	return g.chart.Value().Load(), nil
}

// PublishPolicy replaces the whole rule set. Attestations already issued keep
// the version they were evaluated against.
func (g *gcsRuleSetRepository) PublishPolicy(ctx context.Context, ruleSet models.PolicyRuleSet) (err error) {
	monitor := monitoring.New(ctx, monitoring.WithAttribute("version", ruleSet.Version))
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	if ruleSet.Version == "" {
		return fmt.Errorf("%w: rule set version is required", common.ErrValidation)
	}

	prev := g.policy.Value().Swap(ruleSet)
	if err = g.policy.UpdateFile(ctx); err != nil {
		g.policy.Value().Store(prev)
		return fmt.Errorf("failed to publish policy rule set: %w", err)
	}

	return nil
}
