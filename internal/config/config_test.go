package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-web3/restaurant-api/internal/config"
)

const sample = `
server:
  addr: ":9090"
database:
  driver: memory
auth:
  jwt_key: from-file
authz:
  policies:
    - name: IsAdult
      requirements:
        - kind: minimum_age
          threshold: 21
    - name: HasNationality
      requirements:
        - kind: claim_in
          claim_type: nationality
          values: [Polish, Czech]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeConfig(t, sample)
	t.Setenv("RESTAURANT_API_AUTH_JWT_KEY", "from-env")

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 4*time.Second, cfg.Server.SlowRequestThreshold)
	assert.Equal(t, "from-env", cfg.Auth.JWTKey)
	assert.Equal(t, 15, cfg.Auth.JWTExpireDays)

	require.Len(t, cfg.Authz.Policies, 2)
	assert.Equal(t, "IsAdult", cfg.Authz.Policies[0].Name)
	assert.Equal(t, 21, cfg.Authz.Policies[0].Requirements[0].Threshold)
	assert.Equal(t, []string{"Polish", "Czech"}, cfg.Authz.Policies[1].Requirements[0].Values)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("RESTAURANT_API_AUTH_JWT_KEY", "k")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Empty(t, cfg.Authz.Policies)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing jwt key", body: "database:\n  driver: memory\n"},
		{name: "postgres without dsn", body: "database:\n  driver: postgres\nauth:\n  jwt_key: k\n"},
		{name: "unknown driver", body: "database:\n  driver: sqlite\nauth:\n  jwt_key: k\n"},
		{name: "redis without url", body: "auth:\n  jwt_key: k\nredis:\n  enabled: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}
