package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
name: "wacc-calculator"
host: "127.0.0.1"
port: 8010
log_level: "INFO"

storage:
  db_type: "sqlite"
  db_path: "wacc_calculator.db"
  retention_days: 90

network:
  enabled: false
  timeout: 15
  retries: 0

data_source:
  name: "yahoo"
  history_days: 5

cache:
  ttl_seconds: 300

assumptions:
  risk_free_rate_pct: 4.0
  market_risk_premium_pct: 5.0
  cost_of_debt_pct: 4.0
  tax_rate_pct: 25.0
`

// -----------------------------------------------------------------------------

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// -----------------------------------------------------------------------------

func TestNewConfig_Valid(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "wacc-calculator", cfg.Name)
	assert.Equal(t, 8010, cfg.Port)
	assert.Equal(t, "sqlite", cfg.Storage.DBType)
	assert.Equal(t, 0, cfg.Network.MaxRetries)
	assert.Equal(t, 300, cfg.Cache.TTLSeconds)
	assert.Equal(t, 25.0, cfg.Assumptions.TaxRatePct)
}

func TestNewConfig_MissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestNewConfig_InvalidYAML(t *testing.T) {
	_, err := NewConfig(writeConfig(t, "name: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  string
		wantErr string
	}{
		{"empty name", `name: ""`, "application name"},
		{"privileged port", "port: 80", "invalid server port"},
		{"port too high", "port: 70000", "invalid server port"},
		{"zero timeout", "timeout: 0", "request timeout"},
		{"negative retries", "retries: -1", "max retries"},
		{"negative ttl", "ttl_seconds: -5", "cache TTL"},
		{"negative history", "history_days: -1", "history days"},
		{"tax rate above 100", "tax_rate_pct: 120.0", "tax rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := validYAML
			// Patch one line of the valid document to break it
			switch tt.name {
			case "empty name":
				content = replaceLine(content, `name: "wacc-calculator"`, tt.mutate)
			case "privileged port", "port too high":
				content = replaceLine(content, "port: 8010", tt.mutate)
			case "zero timeout":
				content = replaceLine(content, "  timeout: 15", "  "+tt.mutate)
			case "negative retries":
				content = replaceLine(content, "  retries: 0", "  "+tt.mutate)
			case "negative ttl":
				content = replaceLine(content, "  ttl_seconds: 300", "  "+tt.mutate)
			case "negative history":
				content = replaceLine(content, "  history_days: 5", "  "+tt.mutate)
			case "tax rate above 100":
				content = replaceLine(content, "  tax_rate_pct: 25.0", "  "+tt.mutate)
			}

			_, err := NewConfig(writeConfig(t, content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_SQLiteNeedsPath(t *testing.T) {
	content := replaceLine(validYAML, `  db_path: "wacc_calculator.db"`, `  db_path: ""`)

	_, err := NewConfig(writeConfig(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database path")
}

func TestValidate_PostgresNeedsConnectionString(t *testing.T) {
	content := replaceLine(validYAML, `  db_type: "sqlite"`, `  db_type: "postgres"`)

	_, err := NewConfig(writeConfig(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection string")
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, validYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.Save(path))

	reloaded, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.MConfig, reloaded.MConfig)
}

// -----------------------------------------------------------------------------

func replaceLine(doc, old, new string) string {
	return strings.Replace(doc, old, new, 1)
}
