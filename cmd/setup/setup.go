package setup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common/cache"
	"github.com/sovr-labs/go-fp-clearing/internal/common/clearingengine"
	dlqpublisher "github.com/sovr-labs/go-fp-clearing/internal/common/dlq_publisher"
	"github.com/sovr-labs/go-fp-clearing/internal/common/flag"
	"github.com/sovr-labs/go-fp-clearing/internal/common/graceful"
	"github.com/sovr-labs/go-fp-clearing/internal/common/honoring"
	"github.com/sovr-labs/go-fp-clearing/internal/common/idgenerator"
	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	cMetrics "github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/common/publisher"
	"github.com/sovr-labs/go-fp-clearing/internal/common/verification"
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/repositories"
	"github.com/sovr-labs/go-fp-clearing/internal/services"

	"cloud.google.com/go/compute/metadata"
	"github.com/newrelic/go-agent/v3/integrations/nrzap"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	_ "github.com/newrelic/go-agent/v3/integrations/nrpgx"
)

type Setup struct {
	Config          config.Config
	NewRelic        *newrelic.Application
	WriteDB         *sql.DB
	ReadDB          *sql.DB
	Cache           *redis.Client
	RepoCache       repositories.CacheRepository
	RepoRuleSet     repositories.RuleSetRepository
	RepoReport      repositories.ReportStorageRepository
	Service         *services.Services
	PublisherClient *PublisherClient
	Metrics         cMetrics.Metrics
}

func Init(command string) (setup *Setup, stopper []graceful.ProcessStopper, err error) {
	ctx, cancel := context.WithCancel(context.Background())
	stopper = append(stopper, func(context.Context) error {
		cancel()
		return nil
	})

	cfg, err := config.Load()
	if err != nil {
		return
	}

	setup = &Setup{
		Config: cfg,
	}

	logLevel := xlog.DebugLogLevel()
	excludedDebugLevelOnEnvs := []config.Environment{
		config.DEV_ENV,
		config.UAT_ENV,
		config.PROD_ENV,
	}

	if slices.Contains(excludedDebugLevelOnEnvs, config.StringToEnvironment(cfg.App.Env)) {
		logLevel = xlog.ParseLevel(cfg.App.LogLevel)
	}

	xlog.Init(cfg.App.Name,
		xlog.WithLogToOption(cfg.App.LogOption),
		xlog.WithLogEnvOption(cfg.App.Env),
		xlog.WithCaller(true),
		xlog.AddCallerSkip(2),
		logLevel)

	stopper = append(stopper, func(ctx context.Context) error {
		xlog.Sync()
		return nil
	})

	if cfg.GcloudProjectID == "" {
		cfg.GcloudProjectID, _ = metadata.ProjectID()
		xlog.Info(ctx, "can not determine google cloud project, for local use set the gcloud_project_id in config yaml")
	}

	newRelic := setupNR(ctx, cfg)

	mtc := cMetrics.New()

	writeDB, readDB, err := setupPostgres(cfg)
	if err != nil {
		err = fmt.Errorf("failed connect to database: %w", err)
		return
	}
	stopper = append(stopper, func(ctx context.Context) error {
		var errs error

		if err := writeDB.Close(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("failed to close writeDB: %w", err))
		}
		if err := readDB.Close(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("failed to close readDB: %w", err))
		}

		return errs
	})

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Db,
	})
	if _, err = rdb.Ping(ctx).Result(); err != nil {
		err = fmt.Errorf("failed connect to redis: %w", err)
		return
	}
	stopper = append(stopper, func(ctx context.Context) error { return rdb.Close() })

	flagClient, err := flag.New(&cfg)
	if err != nil {
		err = fmt.Errorf("failed to create flag client: %w", err)
		return
	}
	stopper = append(stopper, func(ctx context.Context) error { return flagClient.Close() })

	if err = mtc.RegisterDB(writeDB, cfg.App.Name+"-"+command+"-write", cfg.Postgres.Write.DbName); err != nil {
		err = fmt.Errorf("failed register DB stat prometheus: %w", err)
		return
	}
	if err = mtc.RegisterDB(readDB, cfg.App.Name+"-"+command+"-read", cfg.Postgres.Read.DbName); err != nil {
		err = fmt.Errorf("failed register DB stat prometheus: %w", err)
		return
	}
	if err = mtc.RegisterRedis(rdb, cfg.App.Name, command); err != nil {
		err = fmt.Errorf("failed register redis prometheus: %w", err)
		return
	}

	// register repository
	sqlRepo := repositories.NewSQLRepository(writeDB, readDB, cfg)
	cacheRepo := repositories.NewCacheRepository(rdb)

	ruleSetRepo, err := repositories.NewGCSRuleSetRepository(&cfg)
	if err != nil {
		err = fmt.Errorf("failed connect to gcs rule set: %w", err)
		return
	}
	ruleSetRepo.RefreshDataPeriodically(ctx, cfg.RuleSet.RefreshInterval)

	reportRepo, err := repositories.NewReportStorageRepository(&cfg)
	if err != nil {
		err = fmt.Errorf("failed connect to gcs report bucket: %w", err)
		return
	}
	stopper = append(stopper, func(ctx context.Context) error { return reportRepo.Close() })

	engine, err := setupEngine(ctx, cfg, ruleSetRepo, mtc)
	if err != nil {
		return
	}

	registry, err := honoring.NewRegistryFromConfig(cfg.Honoring, mtc)
	if err != nil {
		err = fmt.Errorf("failed to create honoring adapters: %w", err)
		return
	}

	verifier := verification.New(cfg.VerificationProvider, mtc)

	// fnv keeps one message key on one partition
	producer, err := publisher.NewKafkaSyncProducer(
		cfg.MessageBroker.KafkaConsumer.Brokers,
		publisher.WithCustomHasher(fnv.New32a),
	)
	if err != nil {
		err = fmt.Errorf("unable to create client kafka sync producer: %w", err)
		return
	}
	stopper = append(stopper, func(ctx context.Context) error { return producer.Close() })

	kafkaCfg := cfg.MessageBroker.KafkaConsumer
	publisherClient := PublisherClient{
		ClearingEvent:    publisher.NewPublisher(producer, kafkaCfg.TopicClearingEvent, mtc),
		ObservationAlert: publisher.NewPublisher(producer, kafkaCfg.TopicObservationAlert, mtc),
		CorrectiveIntent: publisher.NewPublisher(producer, kafkaCfg.TopicCorrectiveIntent, mtc),
		ClearingEventDLQ: dlqpublisher.New(producer, kafkaCfg.TopicClearingEventDLQ, mtc),
	}

	// register service
	srv := services.New(
		cfg,
		sqlRepo,
		cacheRepo,
		ruleSetRepo,
		reportRepo,
		engine,
		registry,
		verifier,
		publisherClient.ClearingEvent,
		publisherClient.ObservationAlert,
		publisherClient.CorrectiveIntent,
		idgenerator.New(),
		flagClient,
		mtc,
		services.WithResultCache(cache.NewRedisClient[models.ClearingResult](rdb)),
	)

	return &Setup{
		Config:          cfg,
		NewRelic:        newRelic,
		WriteDB:         writeDB,
		ReadDB:          readDB,
		Cache:           rdb,
		RepoCache:       cacheRepo,
		RepoRuleSet:     ruleSetRepo,
		RepoReport:      reportRepo,
		Service:         srv,
		PublisherClient: &publisherClient,
		Metrics:         mtc,
	}, stopper, nil
}

// setupEngine picks the clearing engine driver. The memory driver is seeded
// with the chart accounts and is meant for local runs only.
func setupEngine(ctx context.Context, cfg config.Config, ruleSetRepo repositories.RuleSetRepository, mtc cMetrics.Metrics) (clearingengine.Client, error) {
	switch cfg.ClearingEngine.Driver {
	case "", "http":
		return clearingengine.NewHTTPClient(cfg.ClearingEngine.HTTP, mtc), nil
	case "memory":
		if config.StringToEnvironment(cfg.App.Env).IsDeployed() {
			return nil, fmt.Errorf("clearing engine driver memory is not allowed on %s", cfg.App.Env)
		}
		chart, err := ruleSetRepo.GetChart(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to seed memory clearing engine: %w", err)
		}
		return clearingengine.NewInMemory(chart.Accounts), nil
	default:
		return nil, fmt.Errorf("unknown clearing engine driver %q", cfg.ClearingEngine.Driver)
	}
}

func setupPostgres(conf config.Config) (*sql.DB, *sql.DB, error) {
	writeDB, err := initDB(conf.Postgres.Write)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init write DB: %w", err)
	}

	readDB, err := initDB(conf.Postgres.Read)
	if err != nil {
		writeDB.Close()
		return nil, nil, fmt.Errorf("failed to init read DB: %w", err)
	}

	return writeDB, readDB, nil
}

func initDB(pgConf config.Database) (*sql.DB, error) {
	const (
		DefaultMaxOpen     = 10
		DefaultMaxIdle     = 10
		DefaultMaxLifetime = 3 // minutes
	)

	dsName := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s search_path=%s sslmode=disable",
		pgConf.DbHost, pgConf.DbPort, pgConf.DbUser, pgConf.DbPass, pgConf.DbName, pgConf.DbSchema,
	)

	db, err := sql.Open("nrpgx", dsName)
	if err != nil {
		return nil, err
	}

	if pgConf.MaxOpenConnection > 0 {
		db.SetMaxOpenConns(pgConf.MaxOpenConnection)
	} else {
		db.SetMaxOpenConns(DefaultMaxOpen)
	}

	if pgConf.MaxIdleConnection > 0 {
		db.SetMaxIdleConns(pgConf.MaxIdleConnection)
	} else {
		db.SetMaxIdleConns(DefaultMaxIdle)
	}

	if pgConf.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(pgConf.ConnMaxLifetime) * time.Minute)
	} else {
		db.SetConnMaxLifetime(time.Duration(DefaultMaxLifetime) * time.Minute)
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func setupNR(ctx context.Context, cfg config.Config) *newrelic.Application {
	if env := config.StringToEnvironment(cfg.App.Env); env == config.PROD_ENV {
		logger, ok := xlog.Loggers.Load(xlog.DefaultLogger)
		if !ok {
			return nil
		}
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.App.Name),
			newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
			func(config *newrelic.Config) {
				config.Logger = nrzap.Transform(logger.(*zap.Logger))
			},
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			xlog.Errorf(ctx, "setupNR.NewApplication - %v", err)
			return nil
		}
		if err = app.WaitForConnection(15 * time.Second); nil != err {
			xlog.Errorf(ctx, "setupNR.WaitForConnection - %v", err)
		}
		return app
	}
	return nil
}
