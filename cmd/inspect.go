package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/iksnae/cursor-chronicle/internal"
	"github.com/spf13/cobra"
)

var inspectFormat string

// storeReport is the JSON shape of the inspect output
type storeReport struct {
	Path      string      `json:"path"`
	Tables    []string    `json:"tables"`
	ItemCount int64       `json:"itemCount"`
	Keyspaces []keyReport `json:"keyspaces"`
}

type keyReport struct {
	Key     string `json:"key"`
	Present bool   `json:"present"`
	Bytes   int    `json:"bytes"`
}

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [database-path]",
	Short: "Inspect the state database schema and well-known keys",
	Long: `Inspect a workspace state database without assembling sessions.

Reports the tables present, the ItemTable row count, and the presence and
size of the three well-known chat keyspaces. Useful when a consolidation
produced fewer sessions than expected.

Examples:
  cursor-chronicle inspect
  cursor-chronicle inspect /path/to/state.vscdb
  cursor-chronicle inspect --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := internal.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		dbPath := resolveDBPath(cfg)
		if len(args) > 0 {
			dbPath = args[0]
		}

		store, err := internal.OpenStore(dbPath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		report, err := buildStoreReport(cfg, store)
		if err != nil {
			return err
		}

		if inspectFormat == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printStoreReport(report)
		return nil
	},
}

func buildStoreReport(cfg *internal.Config, store *internal.Store) (*storeReport, error) {
	tables, err := store.Tables()
	if err != nil {
		return nil, err
	}

	count, err := store.ItemCount()
	if err != nil {
		return nil, err
	}

	report := &storeReport{
		Path:      store.Path(),
		Tables:    tables,
		ItemCount: count,
	}

	for _, key := range []string{cfg.ComposerDataKey, cfg.GenerationsKey, cfg.PromptsKey} {
		entry := keyReport{Key: key}
		raw, err := store.Get(key)
		switch {
		case err == nil:
			entry.Present = true
			entry.Bytes = len(raw)
		case errors.Is(err, internal.ErrKeyMissing):
			// absent is a finding, not a failure
		default:
			return nil, err
		}
		report.Keyspaces = append(report.Keyspaces, entry)
	}

	return report, nil
}

func printStoreReport(report *storeReport) {
	fmt.Printf("📋 Database: %s\n", report.Path)
	fmt.Printf("📊 Found %d table(s), %d ItemTable row(s)\n\n", len(report.Tables), report.ItemCount)

	for _, table := range report.Tables {
		fmt.Printf("  • %s\n", table)
	}
	fmt.Println()

	fmt.Println("Well-known keyspaces:")
	for _, entry := range report.Keyspaces {
		if entry.Present {
			fmt.Printf("  ✅ %s (%d bytes)\n", entry.Key, entry.Bytes)
		} else {
			fmt.Printf("  ⚠️  %s (missing)\n", entry.Key)
		}
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "text", "Output format: text or json")
}
