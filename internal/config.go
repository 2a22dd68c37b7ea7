package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultConfigFile is the dotenv-style settings file read from the
// working directory when no --config flag is given
const DefaultConfigFile = "config.env"

var (
	// ErrUnsupportedStore indicates DB_TYPE names a backend other than
	// sqlite.
	ErrUnsupportedStore = errors.New("unsupported database type")

	// ErrInvalidConfig indicates a required configuration value is empty.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds every setting the pipeline consumes. It is loaded once,
// validated, and then passed read-only into the stage constructors; no
// stage reads the environment on its own.
type Config struct {
	AppName        string `mapstructure:"app_name"`
	OutputDir      string `mapstructure:"output_dir"`
	OutputFilename string `mapstructure:"output_filename"`

	DBType     string `mapstructure:"db_type"`
	DBPath     string `mapstructure:"db_path"`
	DBFilename string `mapstructure:"db_filename"`

	WorkspaceID   string `mapstructure:"workspace_id"`
	ProjectName   string `mapstructure:"project_name"`
	ProjectBranch string `mapstructure:"project_branch"`
	ProjectPath   string `mapstructure:"project_path"`

	ComposerDataKey string `mapstructure:"composer_data_key"`
	GenerationsKey  string `mapstructure:"generations_key"`
	PromptsKey      string `mapstructure:"prompts_key"`

	IncludeSecrets       bool `mapstructure:"include_secrets"`
	IncludeAbsolutePaths bool `mapstructure:"include_absolute_paths"`
	IncludeSystemInfo    bool `mapstructure:"include_system_info"`
}

// LoadConfig reads configuration with the priority: environment variables,
// then the config file, then defaults. A missing config file is not an
// error; the defaults describe a standard installation.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	if configFile == "" {
		configFile = DefaultConfigFile
	}
	v.SetConfigFile(configFile)
	v.SetConfigType("env")

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
		LogDebug("config file %s not found, using defaults", configFile)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "cursor-chronicle")
	v.SetDefault("output_dir", ".knowledge")
	v.SetDefault("output_filename", "chat-history-consolidated.md")

	v.SetDefault("db_type", "sqlite")
	v.SetDefault("db_path", "")
	v.SetDefault("db_filename", "state.vscdb")

	v.SetDefault("workspace_id", "")
	v.SetDefault("project_name", "unknown-project")
	v.SetDefault("project_branch", "main")
	v.SetDefault("project_path", "")

	v.SetDefault("composer_data_key", "composer.composerData")
	v.SetDefault("generations_key", "aiService.generations")
	v.SetDefault("prompts_key", "aiService.prompts")

	v.SetDefault("include_secrets", false)
	v.SetDefault("include_absolute_paths", false)
	v.SetDefault("include_system_info", true)
}

// Validate fails fast on configuration the pipeline cannot run with
func (c *Config) Validate() error {
	if c.DBType != "sqlite" {
		return fmt.Errorf("%w: %s", ErrUnsupportedStore, c.DBType)
	}
	if c.OutputFilename == "" {
		return fmt.Errorf("%w: OUTPUT_FILENAME is empty", ErrInvalidConfig)
	}
	if c.ComposerDataKey == "" || c.GenerationsKey == "" || c.PromptsKey == "" {
		return fmt.Errorf("%w: keyspace keys must not be empty", ErrInvalidConfig)
	}
	return nil
}

// StorageBase returns the directory holding per-workspace storage,
// falling back to the platform default when DB_PATH is unset
func (c *Config) StorageBase() string {
	if c.DBPath != "" {
		return expandTilde(c.DBPath)
	}
	return defaultStorageBase()
}

// DatabasePath builds the full path of the state database for the
// configured workspace
func (c *Config) DatabasePath() string {
	return filepath.Join(c.StorageBase(), c.WorkspaceID, c.DBFilename)
}

// OutputPath builds the destination path of the consolidated document
func (c *Config) OutputPath() string {
	return filepath.Join(c.OutputDir, c.OutputFilename)
}

// expandTilde resolves a leading ~ to the user's home directory
func expandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
