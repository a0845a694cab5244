package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/omnipathdb/resctl/internal/logging"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. RESCTL_REGISTRY_PATH for registry.path.
const EnvPrefix = "RESCTL"

// Config represents the resctl configuration
type Config struct {
	Registry RegistryConfig `mapstructure:"registry"`
	Log      LogConfig      `mapstructure:"log"`
	Watch    WatchConfig    `mapstructure:"watch"`

	// File is the config file that was read, empty when defaults were used.
	File string `mapstructure:"-"`
}

// RegistryConfig locates the resource information files
type RegistryConfig struct {
	Path           string   `mapstructure:"path"`
	UsePackagePath bool     `mapstructure:"use_package_path"`
	ExtraPaths     []string `mapstructure:"extra_paths"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// WatchConfig represents file watching configuration
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// PathElements splits Registry.Path into the elements understood by
// resources.WithPath.
func (c *Config) PathElements() []string {
	path := filepath.FromSlash(c.Registry.Path)
	if filepath.IsAbs(path) {
		return []string{path}
	}
	return strings.Split(path, string(filepath.Separator))
}

// Load loads the configuration from resctl.yml or resctl.yaml in the
// current directory
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads the configuration from file, or from resctl.yml/resctl.yaml
// in the current directory when file is empty. An explicitly named file
// must exist.
func LoadFile(file string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("registry.path", "resources/data/resources.json")
	v.SetDefault("registry.use_package_path", false)
	v.SetDefault("registry.extra_paths", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("watch.debounce", "200ms")

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("resctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Enable environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.File = v.ConfigFileUsed()

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Registry.Path) == "" {
		return fmt.Errorf("registry.path must not be empty")
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if cfg.Watch.Debounce <= 0 {
		return fmt.Errorf("watch.debounce must be positive, got: %s", cfg.Watch.Debounce)
	}
	return nil
}
