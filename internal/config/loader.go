package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "GO_FP_CLEARING"
	ConfigFileName = "config"
)

var defaultSearchPaths = []string{"/config", ".", "./config"}

type loaderOptions struct {
	fileName    string
	searchPaths []string
}

type LoaderOption func(*loaderOptions)

func WithConfigFileName(name string) LoaderOption {
	return func(o *loaderOptions) { o.fileName = name }
}

func WithConfigFileSearchPaths(paths ...string) LoaderOption {
	return func(o *loaderOptions) { o.searchPaths = append(o.searchPaths, paths...) }
}

// Load reads the config file (when present), overlays GO_FP_CLEARING_*
// environment variables and decodes into Config using the json tags.
func Load(opts ...LoaderOption) (Config, error) {
	o := loaderOptions{fileName: ConfigFileName}
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.searchPaths) == 0 {
		o.searchPaths = defaultSearchPaths
	}

	v := viper.New()
	v.SetConfigName(o.fileName)
	for _, p := range o.searchPaths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "local")
	v.SetDefault("app.name", "go-fp-clearing")
	v.SetDefault("app.http_port", 9567)
	v.SetDefault("app.http_timeout", 30*time.Second)
	v.SetDefault("app.graceful_timeout", 15*time.Second)
	v.SetDefault("app.log_option", "stdout")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.local_storage_dir", "/tmp/go-fp-clearing")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")

	v.SetDefault("message_broker.http_port", 9568)
	v.SetDefault("message_broker.kafka_consumer.brokers", []string{"localhost:9092"})
	v.SetDefault("message_broker.kafka_consumer.consumer_group_mirror", "go-fp-clearing-mirror")
	v.SetDefault("message_broker.kafka_consumer.consumer_group_honoring", "go-fp-clearing-honoring")
	v.SetDefault("message_broker.kafka_consumer.consumer_group_dlq", "go-fp-clearing-dlq")
	v.SetDefault("message_broker.kafka_consumer.topic_clearing_event", "clearing.event")
	v.SetDefault("message_broker.kafka_consumer.topic_clearing_event_dlq", "clearing.event.dlq")
	v.SetDefault("message_broker.kafka_consumer.topic_observation_alert", "clearing.observation.alert")
	v.SetDefault("message_broker.kafka_consumer.topic_corrective_intent", "clearing.corrective.intent")
	v.SetDefault("message_broker.kafka_consumer.assignor", "roundrobin")
	v.SetDefault("message_broker.kafka_consumer.handler_timeout", 30*time.Second)

	v.SetDefault("rule_set.policy_file_path", "clearing/policy.json")
	v.SetDefault("rule_set.chart_file_path", "clearing/chart_of_accounts.json")
	v.SetDefault("rule_set.refresh_interval", time.Minute)

	v.SetDefault("exponential_backoff.max_retries", 3)
	v.SetDefault("exponential_backoff.max_backoff_time", 10*time.Second)
	v.SetDefault("exponential_backoff.backoff_multiplier", 2.0)

	v.SetDefault("attestation.ttl", 15*time.Minute)
	v.SetDefault("attestation.dedup_window", 48*time.Hour)
	v.SetDefault("attestation.velocity_window", 24*time.Hour)

	v.SetDefault("clearing.pending_kinds", []string{"bridge_withdrawal"})
	v.SetDefault("clearing.retry.max_retries", 5)
	v.SetDefault("clearing.retry.initial_interval", 200*time.Millisecond)
	v.SetDefault("clearing.retry.max_backoff_time", 5*time.Second)
	v.SetDefault("clearing.retry.backoff_multiplier", 2.0)

	v.SetDefault("identity.max_bindings_per_recipient", 5)
	v.SetDefault("identity.micro_deposit_window", 72*time.Hour)
	v.SetDefault("identity.micro_deposit_max_attempts", 3)
	v.SetDefault("identity.default_cas_retries", 3)

	v.SetDefault("honoring.retry.max_retries", 3)
	v.SetDefault("honoring.retry.initial_interval", 500*time.Millisecond)
	v.SetDefault("honoring.retry.max_backoff_time", 30*time.Second)
	v.SetDefault("honoring.retry.backoff_multiplier", 2.0)
	v.SetDefault("honoring.retry_batch", 100)
	v.SetDefault("honoring.max_attempts", 10)

	v.SetDefault("observation.history_max_limit", 500)
	v.SetDefault("observation.recon_batch", 1000)

	v.SetDefault("clearing_engine.driver", "http")
	v.SetDefault("clearing_engine.http.timeout", 10*time.Second)

	v.SetDefault("feature_flag_sdk.refresh_interval", 15*time.Second)
	v.SetDefault("feature_flag_key_lookup.pending_flow", "clearing.pending-flow")
	v.SetDefault("feature_flag_key_lookup.honoring_dispatch", "honoring.dispatch")
	v.SetDefault("feature_flag_key_lookup.velocity_check", "attestation.velocity")
}
