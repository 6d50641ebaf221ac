package honoring

import (
	"fmt"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/common/metrics"
	"github.com/sovr-labs/go-fp-clearing/internal/config"

	"golang.org/x/exp/slices"
)

// Registry resolves the adapter for a rail.
type Registry interface {
	Get(rail string) (Adapter, error)
	Rails() []string
}

type registry struct {
	adapters map[string]Adapter
}

func NewRegistry(adapters map[string]Adapter) Registry {
	return &registry{adapters: adapters}
}

// NewRegistryFromConfig builds one HTTP adapter per configured rail.
func NewRegistryFromConfig(cfg config.HonoringConfig, mtc metrics.Metrics) (Registry, error) {
	adapters := make(map[string]Adapter, len(cfg.Adapters))
	for rail, httpCfg := range cfg.Adapters {
		adapter, err := NewHTTPAdapter(rail, httpCfg, cfg.MemoTemplates[rail], mtc)
		if err != nil {
			return nil, err
		}
		adapters[rail] = adapter
	}
	return NewRegistry(adapters), nil
}

func (r *registry) Get(rail string) (Adapter, error) {
	adapter, ok := r.adapters[rail]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownHonoringRail, rail)
	}
	return adapter, nil
}

func (r *registry) Rails() []string {
	rails := make([]string, 0, len(r.adapters))
	for rail := range r.adapters {
		rails = append(rails, rail)
	}
	slices.Sort(rails)
	return rails
}
