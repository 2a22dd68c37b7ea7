package cmd

import (
	"bytes"
	"testing"

	"github.com/iksnae/cursor-chronicle/testutil"
)

func TestHealthcheckCommandHelp(t *testing.T) {
	rootCmd.SetArgs([]string{"healthcheck", "--help"})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("healthcheck --help failed: %v", err)
	}
	if buf.String() == "" {
		t.Error("healthcheck --help should produce output")
	}
}

func TestHealthcheckCommandExists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "healthcheck" {
			found = true
			break
		}
	}
	if !found {
		t.Error("healthcheck command not found in root command")
	}
}

func TestHealthcheckCommand(t *testing.T) {
	originalFlag := dbPathFlag
	defer func() { dbPathFlag = originalFlag }()

	base := t.TempDir()
	dbPath := testutil.CreateWorkspaceTree(t, base, "ws-1", "file:///Users/alice/demo")

	// A healthy store passes every step; failures exit the process, so
	// only the passing path is exercised here.
	rootCmd.SetArgs([]string{"healthcheck", "--db", dbPath})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("healthcheck failed: %v", err)
	}
}
