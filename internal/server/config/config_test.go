package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, 24*time.Hour, c.TokenValidityDuration)
	assert.NotEmpty(t, c.DatabaseDSN)
}

func Test_parseJson_Overlay(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(map[string]any{
		"addr":                    ":9090",
		"database_dsn":            "postgres://other/db",
		"secret_key":              "prod-secret",
		"token_validity_duration": "12h",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	os.Args = []string{"testbin", "-config", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "postgres://other/db", cfg.DatabaseDSN)
	assert.Equal(t, "prod-secret", cfg.SecretKey)
	assert.Equal(t, 12*time.Hour, cfg.TokenValidityDuration)
}

func Test_parseJson_NoFlagNoChanges(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := &Config{Addr: ":1234", SecretKey: "keep"}
	parseJson(cfg)

	assert.Equal(t, ":1234", cfg.Addr)
	assert.Equal(t, "keep", cfg.SecretKey)
}
