package internal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// missingConfigPath points LoadConfig at a file that does not exist, so
// only defaults and environment variables apply
func missingConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.env")
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(missingConfigPath(t))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.AppName != "cursor-chronicle" {
		t.Errorf("AppName = %q", cfg.AppName)
	}
	if cfg.OutputDir != ".knowledge" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.OutputFilename != "chat-history-consolidated.md" {
		t.Errorf("OutputFilename = %q", cfg.OutputFilename)
	}
	if cfg.DBType != "sqlite" {
		t.Errorf("DBType = %q", cfg.DBType)
	}
	if cfg.DBFilename != "state.vscdb" {
		t.Errorf("DBFilename = %q", cfg.DBFilename)
	}
	if cfg.ProjectName != "unknown-project" {
		t.Errorf("ProjectName = %q", cfg.ProjectName)
	}
	if cfg.ProjectBranch != "main" {
		t.Errorf("ProjectBranch = %q", cfg.ProjectBranch)
	}
	if cfg.ComposerDataKey != "composer.composerData" {
		t.Errorf("ComposerDataKey = %q", cfg.ComposerDataKey)
	}
	if cfg.GenerationsKey != "aiService.generations" {
		t.Errorf("GenerationsKey = %q", cfg.GenerationsKey)
	}
	if cfg.PromptsKey != "aiService.prompts" {
		t.Errorf("PromptsKey = %q", cfg.PromptsKey)
	}
	if cfg.IncludeSecrets || cfg.IncludeAbsolutePaths {
		t.Error("privacy flags should default to off")
	}
	if !cfg.IncludeSystemInfo {
		t.Error("IncludeSystemInfo should default to on")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.env")
	content := strings.Join([]string{
		"PROJECT_NAME=file-project",
		"PROJECT_BRANCH=develop",
		"WORKSPACE_ID=abc123",
		"INCLUDE_SECRETS=true",
	}, "\n")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ProjectName != "file-project" {
		t.Errorf("ProjectName = %q, want file value", cfg.ProjectName)
	}
	if cfg.ProjectBranch != "develop" {
		t.Errorf("ProjectBranch = %q", cfg.ProjectBranch)
	}
	if cfg.WorkspaceID != "abc123" {
		t.Errorf("WorkspaceID = %q", cfg.WorkspaceID)
	}
	if !cfg.IncludeSecrets {
		t.Error("IncludeSecrets not read from file")
	}
	// Untouched keys keep their defaults.
	if cfg.AppName != "cursor-chronicle" {
		t.Errorf("AppName = %q, want default", cfg.AppName)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.env")
	if err := os.WriteFile(configPath, []byte("PROJECT_NAME=file-project\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("PROJECT_NAME", "env-project")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ProjectName != "env-project" {
		t.Errorf("ProjectName = %q, want the environment to win", cfg.ProjectName)
	}
}

func TestLoadConfigEnvOnly(t *testing.T) {
	t.Setenv("WORKSPACE_ID", "deadbeef")
	t.Setenv("INCLUDE_SYSTEM_INFO", "false")

	cfg, err := LoadConfig(missingConfigPath(t))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.WorkspaceID != "deadbeef" {
		t.Errorf("WorkspaceID = %q", cfg.WorkspaceID)
	}
	if cfg.IncludeSystemInfo {
		t.Error("INCLUDE_SYSTEM_INFO=false not applied")
	}
}

func TestLoadConfigRejectsUnsupportedStore(t *testing.T) {
	t.Setenv("DB_TYPE", "postgres")

	_, err := LoadConfig(missingConfigPath(t))
	if !errors.Is(err, ErrUnsupportedStore) {
		t.Errorf("LoadConfig() error = %v, want ErrUnsupportedStore", err)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		DBType:          "sqlite",
		OutputFilename:  "out.md",
		ComposerDataKey: "composer.composerData",
		GenerationsKey:  "aiService.generations",
		PromptsKey:      "aiService.prompts",
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "wrong store type",
			mutate:  func(c *Config) { c.DBType = "mysql" },
			wantErr: ErrUnsupportedStore,
		},
		{
			name:    "empty output filename",
			mutate:  func(c *Config) { c.OutputFilename = "" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "empty keyspace key",
			mutate:  func(c *Config) { c.PromptsKey = "" },
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := Config{
		OutputDir:      ".knowledge",
		OutputFilename: "chat-history-consolidated.md",
		DBPath:         "/custom/storage",
		DBFilename:     "state.vscdb",
		WorkspaceID:    "abc123",
	}

	if got := cfg.StorageBase(); got != "/custom/storage" {
		t.Errorf("StorageBase() = %q", got)
	}
	if got := cfg.DatabasePath(); got != filepath.Join("/custom/storage", "abc123", "state.vscdb") {
		t.Errorf("DatabasePath() = %q", got)
	}
	if got := cfg.OutputPath(); got != filepath.Join(".knowledge", "chat-history-consolidated.md") {
		t.Errorf("OutputPath() = %q", got)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/storage", filepath.Join(home, "storage")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		if got := expandTilde(tt.in); got != tt.want {
			t.Errorf("expandTilde(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
