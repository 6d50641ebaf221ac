package flag

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sovr-labs/go-fp-clearing/internal/config"

	unleash "github.com/Unleash/unleash-client-go/v3"
	"github.com/Unleash/unleash-client-go/v3/api"
)

var ErrVariantNotFound = errors.New("variant not found")

// Job carries the worker command line flags into a job handler.
type Job struct {
	JobName string
	Version string
	Date    string
}

//go:generate mockgen -source flag.go -destination mock/flag_mock.go -package mock
type Client interface {
	IsEnabled(key string) bool
	GetVariant(key string) *api.Variant
	Close() error
}

type Variant[T any] struct {
	Enabled bool
	Value   T
}

type unleashClient struct {
	client *unleash.Client
}

func New(cfg *config.Config) (Client, error) {
	c, err := unleash.NewClient(
		unleash.WithAppName(cfg.App.Name),
		unleash.WithUrl(cfg.FeatureFlagSDKConfig.URL),
		unleash.WithEnvironment(cfg.FeatureFlagSDKConfig.Env),
		unleash.WithRefreshInterval(cfg.FeatureFlagSDKConfig.RefreshInterval),
		unleash.WithCustomHeaders(http.Header{"Authorization": {cfg.FeatureFlagSDKConfig.Token}}),
		unleash.WithListener(&unleash.DebugListener{}),
		unleash.WithHttpClient(http.DefaultClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init feature flag client: %w", err)
	}
	c.WaitForReady()

	return &unleashClient{client: c}, nil
}

func (u *unleashClient) IsEnabled(key string) bool {
	return u.client.IsEnabled(key)
}

func (u *unleashClient) GetVariant(key string) *api.Variant {
	return u.client.GetVariant(key)
}

func (u *unleashClient) Close() error {
	return u.client.Close()
}

// GetVariant decodes the JSON payload of a variant. Methods cannot take type
// parameters, so this lives outside Client.
func GetVariant[T any](c Client, key string) (*Variant[T], error) {
	variant := c.GetVariant(key)
	if variant == nil {
		return nil, fmt.Errorf("%w: variant for key %s not found", ErrVariantNotFound, key)
	}

	var res T
	if !variant.Enabled {
		return &Variant[T]{Enabled: false, Value: res}, nil
	}

	if err := json.Unmarshal([]byte(variant.Payload.Value), &res); err != nil {
		return nil, fmt.Errorf("unmarshal variant for key %s failed: %w", key, err)
	}

	return &Variant[T]{Enabled: true, Value: res}, nil
}

// Static is a Client with fixed answers. It backs the in-memory profile
// where no flag service is reachable.
type Static struct {
	Enabled  map[string]bool
	Variants map[string]*api.Variant
}

func (s Static) IsEnabled(key string) bool {
	return s.Enabled[key]
}

func (s Static) GetVariant(key string) *api.Variant {
	if v, ok := s.Variants[key]; ok {
		return v
	}
	return api.GetDefaultVariant()
}

func (s Static) Close() error { return nil }
