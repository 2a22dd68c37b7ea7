package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DetectStorageBase returns the per-user workspace storage directory for
// the current platform. This is where the editor keeps one subdirectory
// per workspace, each holding a state database.
func DetectStorageBase() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library/Application Support/Cursor/User/workspaceStorage"), nil
	case "linux":
		return filepath.Join(home, ".config/Cursor/User/workspaceStorage"), nil
	default:
		return "", fmt.Errorf("unsupported OS: %s (only macOS and Linux are supported)", runtime.GOOS)
	}
}

// defaultStorageBase is the non-failing form used when building paths
// from configuration; resolution errors surface later as a store-open
// failure with the partial path in the message.
func defaultStorageBase() string {
	base, err := DetectStorageBase()
	if err != nil {
		LogDebug("storage base detection failed: %v", err)
		return ""
	}
	return base
}
