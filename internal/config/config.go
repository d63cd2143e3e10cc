// Package config loads and exposes the application configuration.
// Configuration is read from a YAML file when present, then overridden by
// environment variables using the `env` struct tags, matching how the
// service is deployed (file for defaults, environment for secrets).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/etbank-analytics/bankreviews-backend/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App      AppSettings      `yaml:"app"`
	Database DatabaseSettings `yaml:"database"`
	Server   ServerSettings   `yaml:"server"`
	Auth     AuthSettings     `yaml:"auth"`
	Logging  LoggingSettings  `yaml:"logging"`
	Insights InsightSettings  `yaml:"insights"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// DatabaseSettings contains database connection settings
type DatabaseSettings struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Name     string `yaml:"name" env:"DB_NAME"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE"`
	MaxConns int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	MinConns int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// AuthSettings contains service token settings. The raw-review loader and
// the sentiment classifier authenticate to mutating endpoints with HS256
// tokens signed with this secret.
type AuthSettings struct {
	ServiceTokenSecret string `yaml:"service_token_secret" env:"SERVICE_TOKEN_SECRET"`
	Issuer             string `yaml:"issuer" env:"SERVICE_TOKEN_ISSUER"`
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// InsightSettings contains the aggregation policy knobs. The driver and
// pain-point classification rule is a policy choice, so its thresholds live
// in configuration rather than in the aggregation code.
type InsightSettings struct {
	MinThemeSample  int `yaml:"min_theme_sample" env:"INSIGHTS_MIN_THEME_SAMPLE"`
	TopK            int `yaml:"top_k" env:"INSIGHTS_TOP_K"`
	EvidenceLimit   int `yaml:"evidence_limit" env:"INSIGHTS_EVIDENCE_LIMIT"`
	MaxSnippetChars int `yaml:"max_snippet_chars" env:"INSIGHTS_MAX_SNIPPET_CHARS"`
}

// ConnectionString returns the PostgreSQL connection string
func (dbs *DatabaseSettings) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbs.Host, dbs.Port, dbs.User, dbs.Password, dbs.Name, dbs.SSLMode,
	)
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

// Load loads the configuration from a config file and environment variables
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// Load configuration from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Override with environment variables
	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	applyDefaults(config)

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyDefaults fills unset settings with their default values.
func applyDefaults(config *AppConfig) {
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = "bankreviews-backend"
	}
	if config.App.Version == "" {
		config.App.Version = "dev"
	}

	if config.Database.Host == "" {
		config.Database.Host = constants.DefaultDBHost
	}
	if config.Database.Port == 0 {
		config.Database.Port = constants.DefaultDBPort
	}
	if config.Database.Name == "" {
		config.Database.Name = constants.DefaultDBName
	}
	if config.Database.SSLMode == "" {
		config.Database.SSLMode = constants.DefaultDBSSLMode
	}
	if config.Database.MaxConns == 0 {
		config.Database.MaxConns = constants.DefaultDBMaxConns
	}
	if config.Database.MinConns == 0 {
		config.Database.MinConns = constants.DefaultDBMinConns
	}

	if config.Server.Host == "" {
		config.Server.Host = constants.DefaultServerHost
	}
	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "json"
	}

	if config.Insights.MinThemeSample == 0 {
		config.Insights.MinThemeSample = constants.DefaultMinThemeSample
	}
	if config.Insights.TopK == 0 {
		config.Insights.TopK = constants.DefaultInsightTopK
	}
	if config.Insights.EvidenceLimit == 0 {
		config.Insights.EvidenceLimit = constants.DefaultEvidenceLimit
	}
	if config.Insights.MaxSnippetChars == 0 {
		config.Insights.MaxSnippetChars = constants.DefaultMaxSnippetChars
	}
}

// validate rejects configurations the server cannot start with.
func validate(config *AppConfig) error {
	if config.Database.User == "" {
		return fmt.Errorf("database user is required (set DB_USER)")
	}
	if config.Auth.ServiceTokenSecret == "" && config.App.IsProduction() {
		return fmt.Errorf("service token secret is required in production (set SERVICE_TOKEN_SECRET)")
	}
	return nil
}
