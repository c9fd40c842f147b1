package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Forecast ForecastConfig `yaml:"forecast"`
	Geocoder GeocoderConfig `yaml:"geocoder"`
	Patterns PatternsConfig `yaml:"patterns"`
	Sentry   SentryConfig   `yaml:"-"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"APP_NAME"`
	Version string `yaml:"version" envconfig:"APP_VERSION"`
	Env     string `yaml:"env" envconfig:"APP_ENV"`
}

type ServerConfig struct {
	Port string `yaml:"port" envconfig:"SERVER_PORT"`
}

// ForecastConfig points at the grid-based forecast provider. Category and
// Version are URL path segments of the point endpoint; Timeout is in seconds.
type ForecastConfig struct {
	BaseURL  string `yaml:"base_url" envconfig:"FORECAST_BASE_URL"`
	Category string `yaml:"category" envconfig:"FORECAST_CATEGORY"`
	Version  string `yaml:"version" envconfig:"FORECAST_VERSION"`
	Timeout  int    `yaml:"timeout" envconfig:"FORECAST_TIMEOUT"`
}

// GeocoderConfig points at the free-text search endpoint. UserAgent is
// mandatory: the endpoint rejects anonymous clients.
type GeocoderConfig struct {
	BaseURL    string `yaml:"base_url" envconfig:"GEOCODER_BASE_URL"`
	UserAgent  string `yaml:"user_agent" envconfig:"GEOCODER_USER_AGENT"`
	Timeout    int    `yaml:"timeout" envconfig:"GEOCODER_TIMEOUT"`
	MaxResults int    `yaml:"max_results" envconfig:"GEOCODER_MAX_RESULTS"`
}

type PatternsConfig struct {
	Enabled     bool   `yaml:"enabled" envconfig:"PATTERNS_ENABLED"`
	WeightsPath string `yaml:"weights_path" envconfig:"PATTERNS_WEIGHTS_PATH"`
}

type SentryConfig struct {
	DSN string `envconfig:"SENTRY_DSN"`
}

// ConfigProvider abstracts where configuration comes from so tests can
// substitute a canned source.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

// Load layers configuration: built-in defaults, then the YAML file (if it
// exists), then environment variables on top.
func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := defaultConfig()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := p.Validate(cnf); err != nil {
		return nil, err
	}

	return cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		// A missing config file is fine; defaults and env cover everything.
		return nil
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(cnf *Config) error {
	if cnf.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if cnf.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if cnf.Forecast.BaseURL == "" {
		return fmt.Errorf("forecast.base_url is required")
	}
	if cnf.Forecast.Category == "" {
		return fmt.Errorf("forecast.category is required")
	}
	if cnf.Forecast.Version == "" {
		return fmt.Errorf("forecast.version is required")
	}
	if cnf.Forecast.Timeout <= 0 {
		return fmt.Errorf("forecast.timeout must be positive")
	}
	if cnf.Geocoder.BaseURL == "" {
		return fmt.Errorf("geocoder.base_url is required")
	}
	if cnf.Geocoder.UserAgent == "" {
		return fmt.Errorf("geocoder.user_agent is required")
	}
	if cnf.Geocoder.Timeout <= 0 {
		return fmt.Errorf("geocoder.timeout must be positive")
	}
	if cnf.Geocoder.MaxResults <= 0 {
		return fmt.Errorf("geocoder.max_results must be positive")
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "skycast-api",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port: "8080",
		},
		Forecast: ForecastConfig{
			BaseURL:  "https://opendata-download-metfcst.smhi.se",
			Category: "pmp3g",
			Version:  "2",
			Timeout:  30,
		},
		Geocoder: GeocoderConfig{
			BaseURL:    "https://nominatim.openstreetmap.org",
			UserAgent:  "skycast-api/1.0",
			Timeout:    15,
			MaxResults: 5,
		},
		Patterns: PatternsConfig{
			Enabled: true,
		},
	}
}

func NewConfig() (*Config, error) {
	// Populate the process environment from .env before envconfig runs;
	// a missing file is not an error.
	_ = godotenv.Load()

	return NewConfigWithProvider(NewFileConfigProvider("config/config.yaml"))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	return provider.Load()
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
