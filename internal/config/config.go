package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"mealplan/internal/storage"
)

// AppName names the directory under the user config dir.
const AppName = "mealplan"

// Config holds all mealplan configuration.
type Config struct {
	// Where persisted state and logs live
	DataDir string `yaml:"data_dir"`

	// Storage backend: file, sqlite or memory
	Storage string `yaml:"storage"`

	// Glamour style for the overview intro: dark, light, notty
	Theme string `yaml:"theme"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // relative paths resolve against DataDir
}

var (
	themes    = []string{"dark", "light", "notty"}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// DefaultDir is <UserConfigDir>/mealplan, falling back to the working
// directory when no config dir is available.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(dir, AppName)
}

// DefaultPath is the config file location when --config is not given.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDir(),
		Storage: storage.KindFile,
		Theme:   "dark",
		Logging: LoggingConfig{
			Level: "info",
			File:  "mealplan.log",
		},
	}
}

// Load reads the config at path. A missing file yields the defaults.
// Environment overrides are applied last; a .env file in the working
// directory is read first if present.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	// .env is optional
	_ = godotenv.Load(".env")
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MEALPLAN_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("MEALPLAN_STORAGE"); v != "" {
		c.Storage = strings.ToLower(v)
	}
	if v := os.Getenv("MEALPLAN_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("MEALPLAN_THEME"); v != "" {
		c.Theme = strings.ToLower(v)
	}
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if !slices.Contains(storage.Kinds, c.Storage) {
		return fmt.Errorf("unknown storage %q (want one of %s)", c.Storage, strings.Join(storage.Kinds, ", "))
	}
	if !slices.Contains(themes, c.Theme) {
		return fmt.Errorf("unknown theme %q (want one of %s)", c.Theme, strings.Join(themes, ", "))
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

// LogPath resolves Logging.File against DataDir. Empty means no log file.
func (c *Config) LogPath() string {
	if c.Logging.File == "" || filepath.IsAbs(c.Logging.File) {
		return c.Logging.File
	}
	return filepath.Join(c.DataDir, c.Logging.File)
}
