package config

import (
	"time"
)

type (
	Config struct {
		App                App      `json:"app"`
		Postgres           Postgres `json:"postgres"`
		Redis              Redis    `json:"redis"`
		SecretKey          string   `json:"secret_key"`
		GcloudProjectID    string   `json:"gcloud_project_id"`
		NewRelicLicenseKey string   `json:"new_relic_license_key"`

		MessageBroker      MessageBroker            `json:"message_broker"`
		CloudStorageConfig CloudStorageConfig       `json:"cloud_storage"`
		RuleSet            RuleSetConfig            `json:"rule_set"`
		ExponentialBackoff ExponentialBackOffConfig `json:"exponential_backoff"`

		Attestation AttestationConfig `json:"attestation"`
		Clearing    ClearingConfig    `json:"clearing"`
		Identity    IdentityConfig    `json:"identity"`
		Honoring    HonoringConfig    `json:"honoring"`
		Observation ObservationConfig `json:"observation"`

		ClearingEngine       ClearingEngineConfig `json:"clearing_engine"`
		VerificationProvider HTTPConfiguration    `json:"verification_provider"`

		FeatureFlagSDKConfig FeatureFlagSDKConfig `json:"feature_flag_sdk"`
		FeatureFlagKeyLookup FeatureFlagKeyLookup `json:"feature_flag_key_lookup"`
	}

	App struct {
		Env             string        `json:"env"`
		HTTPPort        int           `json:"http_port"`
		HTTPTimeout     time.Duration `json:"http_timeout"`
		GracefulTimeout time.Duration `json:"graceful_timeout"`
		Name            string        `json:"name"`
		LogOption       string        `json:"log_option"`
		LogLevel        string        `json:"log_level"`
		LocalStorageDir string        `json:"local_storage_dir"`
	}

	Postgres struct {
		Write Database `json:"write"`
		Read  Database `json:"read"`
	}

	Database struct {
		DbHost            string `json:"db_host"`
		DbPort            string `json:"db_port"`
		DbUser            string `json:"db_user"`
		DbPass            string `json:"db_pass"`
		DbName            string `json:"db_name"`
		DbSchema          string `json:"db_schema"`
		MaxOpenConnection int    `json:"maxOpenConnections"`
		MaxIdleConnection int    `json:"maxIdleConnections"`
		ConnMaxLifetime   int    `json:"connMaxLifetime"`
	}

	Redis struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		Password string `json:"password"`
		Db       int    `json:"db"`
	}

	MessageBroker struct {
		HTTPPort      int            `json:"http_port"`
		KafkaConsumer ConsumerConfig `json:"kafka_consumer"`
	}

	ConsumerConfig struct {
		Brokers               []string      `json:"brokers"`
		ConsumerGroupMirror   string        `json:"consumer_group_mirror"`
		ConsumerGroupHonoring string        `json:"consumer_group_honoring"`
		ConsumerGroupDLQ      string        `json:"consumer_group_dlq"`
		TopicClearingEvent    string        `json:"topic_clearing_event"`
		TopicClearingEventDLQ string        `json:"topic_clearing_event_dlq"`
		TopicObservationAlert string        `json:"topic_observation_alert"`
		TopicCorrectiveIntent string        `json:"topic_corrective_intent"`
		Assignor              string        `json:"assignor"`
		IsOldest              bool          `json:"is_oldest"`
		IsVerbose             bool          `json:"is_verbose"`
		HandlerTimeout        time.Duration `json:"handler_timeout"`
	}

	CloudStorageConfig struct {
		BaseURL    string `json:"base_url"`
		BucketName string `json:"bucket_name"`
	}

	// RuleSetConfig points to the versioned JSON documents that drive the
	// attestation policy and the observation chart of accounts.
	RuleSetConfig struct {
		BucketName      string        `json:"bucket_name"`
		PolicyFilePath  string        `json:"policy_file_path"`
		ChartFilePath   string        `json:"chart_file_path"`
		RefreshInterval time.Duration `json:"refresh_interval"`
	}

	ExponentialBackOffConfig struct {
		MaxRetries        uint64        `json:"max_retries"`
		InitialInterval   time.Duration `json:"initial_interval"`
		MaxBackoffTime    time.Duration `json:"max_backoff_time"`
		BackoffMultiplier float64       `json:"backoff_multiplier"`
	}

	AttestationConfig struct {
		TTL            time.Duration `json:"ttl"`
		DedupWindow    time.Duration `json:"dedup_window"`
		VelocityWindow time.Duration `json:"velocity_window"`
	}

	ClearingConfig struct {
		// PendingKinds lists intent kinds that always go through the
		// pending -> post/void flow regardless of the request flag.
		PendingKinds []string                 `json:"pending_kinds"`
		Retry        ExponentialBackOffConfig `json:"retry"`
	}

	IdentityConfig struct {
		MaxBindingsPerRecipient int           `json:"max_bindings_per_recipient"`
		MicroDepositWindow      time.Duration `json:"micro_deposit_window"`
		MicroDepositMaxAttempts int           `json:"micro_deposit_max_attempts"`
		DefaultCASRetries       uint64        `json:"default_cas_retries"`
	}

	HonoringConfig struct {
		Retry    ExponentialBackOffConfig     `json:"retry"`
		Adapters map[string]HTTPConfiguration `json:"adapters"`
		// MemoTemplates are sprig templates keyed by rail.
		MemoTemplates map[string]string `json:"memo_templates"`
		RetryBatch    int               `json:"retry_batch"`
		// MaxAttempts turns a RETRYING outcome into FAILED.
		MaxAttempts int `json:"max_attempts"`
	}

	ObservationConfig struct {
		HistoryMaxLimit int `json:"history_max_limit"`
		ReconBatch      int `json:"recon_batch"`
	}

	ClearingEngineConfig struct {
		// Driver is either "http" or "memory".
		Driver string            `json:"driver"`
		HTTP   HTTPConfiguration `json:"http"`
	}

	HTTPConfiguration struct {
		BaseURL       string        `json:"base_url"`
		SecretKey     string        `json:"secret_key"`
		RetryCount    int           `json:"retry_count"`
		RetryWaitTime time.Duration `json:"retry_wait_time"`
		Timeout       time.Duration `json:"timeout"`
	}

	FeatureFlagSDKConfig struct {
		URL             string        `json:"url"`
		Token           string        `json:"token"`
		Env             string        `json:"env"`
		RefreshInterval time.Duration `json:"refresh_interval"`
	}

	FeatureFlagKeyLookup struct {
		PendingFlow      string `json:"pending_flow"`
		HonoringDispatch string `json:"honoring_dispatch"`
		VelocityCheck    string `json:"velocity_check"`
	}
)
