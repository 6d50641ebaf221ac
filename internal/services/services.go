package services

import (
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common/cache"
	"github.com/sovr-labs/go-fp-clearing/internal/common/clearingengine"
	"github.com/sovr-labs/go-fp-clearing/internal/common/flag"
	"github.com/sovr-labs/go-fp-clearing/internal/common/honoring"
	"github.com/sovr-labs/go-fp-clearing/internal/common/idgenerator"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/common/publisher"
	"github.com/sovr-labs/go-fp-clearing/internal/common/retry"
	"github.com/sovr-labs/go-fp-clearing/internal/common/verification"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/repositories"
)

type service struct {
	srv *Services
}

type Services struct {
	conf config.Config

	sqlRepo     repositories.SQLRepository
	cacheRepo   repositories.CacheRepository
	ruleSetRepo repositories.RuleSetRepository
	reportRepo  repositories.ReportStorageRepository

	engine      clearingengine.Client
	registry    honoring.Registry
	verifier    verification.Provider
	resultCache cache.Client[models.ClearingResult]

	clearingPub   publisher.Publisher
	alertPub      publisher.Publisher
	correctivePub publisher.Publisher

	idgenerator idgenerator.Generator
	flag        flag.Client
	metrics     metrics.Metrics

	clearingRetry retry.Retryer
	honoringRetry retry.Retryer
	casRetry      retry.Retryer

	now func() time.Time

	common service

	Identity     *identity
	Attestation  *attestation
	Clearing     *clearing
	Intent       *intent
	Observation  *observation
	Honoring     *honoringDispatcher
	Recon        *recon
	DLQProcessor *dlqProcessor
}

type Option func(s *Services)

// WithClock replaces time.Now, used by tests that cross expiry windows.
func WithClock(now func() time.Time) Option {
	return func(s *Services) {
		s.now = now
	}
}

// WithResultCache replaces the in-memory cache of finalized clearing results.
func WithResultCache(c cache.Client[models.ClearingResult]) Option {
	return func(s *Services) {
		s.resultCache = c
	}
}

func New(
	conf config.Config,
	sqlRepo repositories.SQLRepository,
	cacheRepo repositories.CacheRepository,
	ruleSetRepo repositories.RuleSetRepository,
	reportRepo repositories.ReportStorageRepository,
	engine clearingengine.Client,
	registry honoring.Registry,
	verifier verification.Provider,
	clearingPub publisher.Publisher,
	alertPub publisher.Publisher,
	correctivePub publisher.Publisher,
	idgenerator idgenerator.Generator,
	flag flag.Client,
	metrics metrics.Metrics,
	opts ...Option,
) *Services {
	srv := &Services{
		conf:          conf,
		sqlRepo:       sqlRepo,
		cacheRepo:     cacheRepo,
		ruleSetRepo:   ruleSetRepo,
		reportRepo:    reportRepo,
		engine:        engine,
		registry:      registry,
		verifier:      verifier,
		clearingPub:   clearingPub,
		alertPub:      alertPub,
		correctivePub: correctivePub,
		idgenerator:   idgenerator,
		flag:          flag,
		metrics:       metrics,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(srv)
	}
	if srv.resultCache == nil {
		srv.resultCache = cache.NewInMemoryClient[models.ClearingResult]()
	}

	srv.clearingRetry = retry.NewExponentialBackOff(conf.Clearing.Retry)
	srv.honoringRetry = retry.NewExponentialBackOff(conf.Honoring.Retry)
	srv.casRetry = retry.NewExponentialBackOff(config.ExponentialBackOffConfig{
		MaxRetries:      conf.Identity.DefaultCASRetries,
		InitialInterval: 10 * time.Millisecond,
		MaxBackoffTime:  time.Second,
	})

	srv.common.srv = srv
	srv.Identity = (*identity)(&srv.common)
	srv.Attestation = (*attestation)(&srv.common)
	srv.Clearing = (*clearing)(&srv.common)
	srv.Intent = (*intent)(&srv.common)
	srv.Observation = (*observation)(&srv.common)
	srv.Honoring = (*honoringDispatcher)(&srv.common)
	srv.Recon = (*recon)(&srv.common)
	srv.DLQProcessor = (*dlqProcessor)(&srv.common)

	return srv
}
