package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WorkspaceInfo describes one workspace storage directory
type WorkspaceInfo struct {
	ID        string
	Folder    string
	Name      string
	StorePath string
}

// HasStore reports whether the workspace carries a state database
func (w *WorkspaceInfo) HasStore() bool {
	return w.StorePath != ""
}

// DiscoverWorkspaces scans the storage base directory for per-workspace
// subdirectories, reading each workspace.json for the project folder and
// noting whether a state database is present. A missing base directory
// yields an empty result, not an error. Results are sorted by ID so
// repeated runs list workspaces in the same order.
func DiscoverWorkspaces(base string) ([]WorkspaceInfo, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	workspaces := make([]WorkspaceInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		id := entry.Name()
		info := WorkspaceInfo{ID: id}

		if data, err := os.ReadFile(filepath.Join(base, id, "workspace.json")); err == nil {
			var meta struct {
				Folder string `json:"folder"`
			}
			if err := json.Unmarshal(data, &meta); err == nil && meta.Folder != "" {
				info.Folder = strings.TrimPrefix(meta.Folder, "file://")
				info.Name = filepath.Base(info.Folder)
			}
		}

		storePath := filepath.Join(base, id, "state.vscdb")
		if _, err := os.Stat(storePath); err == nil {
			info.StorePath = storePath
		}

		workspaces = append(workspaces, info)
	}

	sort.Slice(workspaces, func(i, j int) bool {
		return workspaces[i].ID < workspaces[j].ID
	})

	return workspaces, nil
}
