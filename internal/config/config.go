package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"

	// DefaultStorageKey names the persistence slot; the suffix versions the blob layout
	DefaultStorageKey = "mediaLibraryItems.v1"
)

// Config holds application configuration
type Config struct {
	StorePath     string `mapstructure:"store_path"`
	Backend       string `mapstructure:"backend"`
	StorageKey    string `mapstructure:"storage_key"`
	MaxImageWidth int    `mapstructure:"max_image_width"`
	JPEGQuality   int    `mapstructure:"jpeg_quality"`
	Locale        string `mapstructure:"locale"`
	EditPolicy    string `mapstructure:"edit_policy"`
	LogLevel      string `mapstructure:"log_level"`
	LogFile       string `mapstructure:"log_file"`
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		StorePath:     getDefaultStorePath(),
		Backend:       BackendSQLite,
		StorageKey:    DefaultStorageKey,
		MaxImageWidth: 1200,
		JPEGQuality:   85,
		Locale:        "en",
		EditPolicy:    "preserve",
		LogLevel:      "info",
	}
}

// Load reads configuration from defaults, an optional YAML file and MEDIACAT_* env vars.
// An empty path looks for config.yaml in ~/.mediacat; a missing file there is not an error.
func Load(path string) (*Config, error) {
	def := NewConfig()

	v := viper.New()
	v.SetDefault("store_path", def.StorePath)
	v.SetDefault("backend", def.Backend)
	v.SetDefault("storage_key", def.StorageKey)
	v.SetDefault("max_image_width", def.MaxImageWidth)
	v.SetDefault("jpeg_quality", def.JPEGQuality)
	v.SetDefault("locale", def.Locale)
	v.SetDefault("edit_policy", def.EditPolicy)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)

	v.SetEnvPrefix("MEDIACAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if dir := appDir(); dir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WithStorePath sets a custom store path
func (c *Config) WithStorePath(path string) *Config {
	c.StorePath = path
	return c
}

// Validate checks values that would otherwise fail deep inside the app
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFile:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendSQLite, BackendFile)
	}
	if c.StorageKey == "" {
		return errors.New("storage_key must not be empty")
	}
	if c.MaxImageWidth <= 0 {
		return fmt.Errorf("max_image_width must be positive, got %d", c.MaxImageWidth)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be within 1..100, got %d", c.JPEGQuality)
	}
	return nil
}

func appDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".mediacat")
}

func getDefaultStorePath() string {
	dir := appDir()
	if dir == "" {
		return "mediacat.db"
	}
	return filepath.Join(dir, "mediacat.db")
}
