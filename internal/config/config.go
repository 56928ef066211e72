package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the searchview configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Backend    BackendConfig    `yaml:"backend"`
	References ReferencesConfig `yaml:"references"`
	Summary    SummaryConfig    `yaml:"summary"`
	UI         UIConfig         `yaml:"ui"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string        `yaml:"level"` // debug, info, warn, error (default: determined by env)
	File  LogFileConfig `yaml:"file"`
}

// LogFileConfig enables a rotating log file. Empty path disables it.
type LogFileConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int   `yaml:"port"`
	ReadTimeoutSec  int   `yaml:"read_timeout_sec"`
	WriteTimeoutSec int   `yaml:"write_timeout_sec"`
	ShutdownSec     int   `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes    int64 `yaml:"max_body_bytes"`
}

// BackendConfig holds search backend connection settings.
type BackendConfig struct {
	Endpoint      string  `yaml:"endpoint"`
	RawEndpoint   bool    `yaml:"raw_endpoint"` // POST to endpoint verbatim (proxy setups)
	Project       string  `yaml:"project"`
	Location      string  `yaml:"location"`
	Collection    string  `yaml:"collection"`
	Engine        string  `yaml:"engine"`
	ServingConfig string  `yaml:"serving_config"`
	TimeoutSec    int     `yaml:"timeout_sec"`
	RateLimit     float64 `yaml:"rate_limit"` // requests per second, 0 = unlimited
	UserAgent     string  `yaml:"user_agent"`
}

// Timeout returns the per-request backend timeout.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSec) * time.Second
}

// ReferencesConfig selects how summary references are attached to results.
type ReferencesConfig struct {
	Policy string `yaml:"policy"` // first_group (default), per_document
}

// SummaryConfig holds summary display settings.
type SummaryConfig struct {
	Placeholder string `yaml:"placeholder"`
}

// UIConfig holds HTML page settings.
type UIConfig struct {
	Title string `yaml:"title"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 8 << 20
	}
	if c.Backend.Endpoint == "" {
		c.Backend.Endpoint = "https://discoveryengine.googleapis.com"
	}
	if c.Backend.Location == "" {
		c.Backend.Location = "global"
	}
	if c.Backend.Collection == "" {
		c.Backend.Collection = "default_collection"
	}
	if c.Backend.ServingConfig == "" {
		c.Backend.ServingConfig = "default_search"
	}
	if c.Backend.TimeoutSec <= 0 {
		c.Backend.TimeoutSec = 20
	}
	if c.Backend.UserAgent == "" {
		c.Backend.UserAgent = "searchview"
	}
	if c.References.Policy == "" {
		c.References.Policy = "first_group"
	}
	if c.UI.Title == "" {
		c.UI.Title = "Document Search"
	}
	if c.Logging.File.Path != "" {
		if c.Logging.File.MaxSizeMB <= 0 {
			c.Logging.File.MaxSizeMB = 100
		}
		if c.Logging.File.MaxBackups <= 0 {
			c.Logging.File.MaxBackups = 5
		}
		if c.Logging.File.MaxAgeDays <= 0 {
			c.Logging.File.MaxAgeDays = 30
		}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if !strings.HasPrefix(c.Backend.Endpoint, "http://") && !strings.HasPrefix(c.Backend.Endpoint, "https://") {
		return fmt.Errorf("backend.endpoint must be an http(s) URL, got %q", c.Backend.Endpoint)
	}
	if !c.Backend.RawEndpoint {
		if c.Backend.Project == "" {
			return fmt.Errorf("backend.project is required")
		}
		if c.Backend.Engine == "" {
			return fmt.Errorf("backend.engine is required")
		}
	}
	if c.Backend.RateLimit < 0 {
		return fmt.Errorf("backend.rate_limit must not be negative, got %v", c.Backend.RateLimit)
	}
	switch c.References.Policy {
	case "first_group", "per_document":
		// ok
	default:
		return fmt.Errorf(
			"references.policy must be \"first_group\" or \"per_document\", got %q",
			c.References.Policy,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
