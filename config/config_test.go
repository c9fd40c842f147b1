package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	// Without a config file everything comes from built-in defaults.
	provider := NewFileConfigProvider("nonexistent.yaml")
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)
	assert.NotNil(t, config)

	assert.Equal(t, "skycast-api", config.App.Name)
	assert.Equal(t, "1.0.0", config.App.Version)
	assert.Equal(t, "development", config.App.Env)
	assert.Equal(t, "8080", config.Server.Port)

	assert.Equal(t, "https://opendata-download-metfcst.smhi.se", config.Forecast.BaseURL)
	assert.Equal(t, "pmp3g", config.Forecast.Category)
	assert.Equal(t, "2", config.Forecast.Version)
	assert.Equal(t, 30, config.Forecast.Timeout)

	assert.Equal(t, "https://nominatim.openstreetmap.org", config.Geocoder.BaseURL)
	assert.Equal(t, "skycast-api/1.0", config.Geocoder.UserAgent)
	assert.Equal(t, 15, config.Geocoder.Timeout)
	assert.Equal(t, 5, config.Geocoder.MaxResults)

	assert.True(t, config.Patterns.Enabled)
	assert.Empty(t, config.Patterns.WeightsPath)
	assert.Empty(t, config.Sentry.DSN)
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	os.Setenv("APP_NAME", "test-app")
	os.Setenv("APP_ENV", "production")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("FORECAST_BASE_URL", "https://forecast.test")
	os.Setenv("GEOCODER_MAX_RESULTS", "3")
	os.Setenv("SENTRY_DSN", "https://key@sentry.test/1")

	defer func() {
		os.Unsetenv("APP_NAME")
		os.Unsetenv("APP_ENV")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("FORECAST_BASE_URL")
		os.Unsetenv("GEOCODER_MAX_RESULTS")
		os.Unsetenv("SENTRY_DSN")
	}()

	provider := NewFileConfigProvider("nonexistent.yaml")
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)

	assert.Equal(t, "test-app", config.App.Name)
	assert.Equal(t, "production", config.App.Env)
	assert.Equal(t, "9090", config.Server.Port)
	assert.Equal(t, "https://forecast.test", config.Forecast.BaseURL)
	assert.Equal(t, 3, config.Geocoder.MaxResults)
	assert.Equal(t, "https://key@sentry.test/1", config.Sentry.DSN)

	// Fields without env overrides keep their defaults.
	assert.Equal(t, "pmp3g", config.Forecast.Category)
	assert.Equal(t, "skycast-api/1.0", config.Geocoder.UserAgent)
}

func TestConfigFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yamlContent := `
app:
  name: yaml-app
  env: staging
forecast:
  base_url: https://forecast.yaml.test
  timeout: 10
geocoder:
  user_agent: yaml-agent/2.0
patterns:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	provider := NewFileConfigProvider(path)
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)

	assert.Equal(t, "yaml-app", config.App.Name)
	assert.Equal(t, "staging", config.App.Env)
	assert.Equal(t, "https://forecast.yaml.test", config.Forecast.BaseURL)
	assert.Equal(t, 10, config.Forecast.Timeout)
	assert.Equal(t, "yaml-agent/2.0", config.Geocoder.UserAgent)
	assert.False(t, config.Patterns.Enabled)

	// Fields the file leaves out fall back to defaults.
	assert.Equal(t, "1.0.0", config.App.Version)
	assert.Equal(t, "pmp3g", config.Forecast.Category)
	assert.Equal(t, 5, config.Geocoder.MaxResults)
}

func TestConfigValidation(t *testing.T) {
	provider := NewFileConfigProvider("nonexistent.yaml")

	valid := defaultConfig()
	assert.NoError(t, provider.Validate(valid))

	missingName := defaultConfig()
	missingName.App.Name = ""
	err := provider.Validate(missingName)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "app.name is required")

	missingUserAgent := defaultConfig()
	missingUserAgent.Geocoder.UserAgent = ""
	err = provider.Validate(missingUserAgent)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "geocoder.user_agent is required")

	badTimeout := defaultConfig()
	badTimeout.Forecast.Timeout = 0
	err = provider.Validate(badTimeout)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "forecast.timeout must be positive")

	badLimit := defaultConfig()
	badLimit.Geocoder.MaxResults = -1
	err = provider.Validate(badLimit)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "geocoder.max_results must be positive")
}

func TestConfigHelperMethods(t *testing.T) {
	config := &Config{
		App: AppConfig{
			Env: "development",
		},
	}

	assert.True(t, config.IsDevelopment())
	assert.False(t, config.IsProduction())

	config.App.Env = "production"
	assert.False(t, config.IsDevelopment())
	assert.True(t, config.IsProduction())
}

func TestFileConfigProvider_LoadFromFile(t *testing.T) {
	provider := NewFileConfigProvider("nonexistent.yaml")
	config := &Config{}

	// Loading from a non-existent file should not error.
	err := provider.loadFromFile(config)
	assert.NoError(t, err)
}

func TestNewConfigWithProvider(t *testing.T) {
	mockProvider := &MockConfigProvider{
		config: defaultConfig(),
	}

	config, err := NewConfigWithProvider(mockProvider)
	require.NoError(t, err)
	assert.Equal(t, "skycast-api", config.App.Name)
}

// MockConfigProvider for testing
type MockConfigProvider struct {
	config *Config
	err    error
}

func (m *MockConfigProvider) Load() (*Config, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.config, nil
}

func (m *MockConfigProvider) Validate(config *Config) error {
	return nil
}
