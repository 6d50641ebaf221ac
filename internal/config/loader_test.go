package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults only", func(t *testing.T) {
		cfg, err := Load(WithConfigFileSearchPaths(t.TempDir()))
		require.NoError(t, err)

		assert.Equal(t, "go-fp-clearing", cfg.App.Name)
		assert.Equal(t, 5, cfg.Identity.MaxBindingsPerRecipient)
		assert.Equal(t, 3, cfg.Identity.MicroDepositMaxAttempts)
		assert.Equal(t, 48*time.Hour, cfg.Attestation.DedupWindow)
		assert.Equal(t, []string{"bridge_withdrawal"}, cfg.Clearing.PendingKinds)
	})

	t.Run("file and env override", func(t *testing.T) {
		dir := t.TempDir()
		content := []byte(`
app:
  env: uat
  http_port: 8080
attestation:
  ttl: 5m
honoring:
  adapters:
    ach:
      base_url: http://ach.local
`)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))
		t.Setenv("GO_FP_CLEARING_APP_NAME", "clearing-test")

		cfg, err := Load(WithConfigFileSearchPaths(dir))
		require.NoError(t, err)

		assert.Equal(t, "uat", cfg.App.Env)
		assert.Equal(t, 8080, cfg.App.HTTPPort)
		assert.Equal(t, "clearing-test", cfg.App.Name)
		assert.Equal(t, 5*time.Minute, cfg.Attestation.TTL)
		assert.Equal(t, "http://ach.local", cfg.Honoring.Adapters["ach"].BaseURL)
	})
}

func TestStringToEnvironment(t *testing.T) {
	assert.Equal(t, PROD_ENV, StringToEnvironment("Production"))
	assert.Equal(t, LOCAL_ENV, StringToEnvironment("local"))
	assert.Equal(t, UNDEFINED_ENV, StringToEnvironment("mars"))
	assert.True(t, UAT_ENV.IsDeployed())
	assert.False(t, LOCAL_ENV.IsDeployed())
	assert.Equal(t, "dev", EnvironmentToString(DEV_ENV))
}
