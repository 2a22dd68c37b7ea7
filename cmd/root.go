package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/cursor-chronicle/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configFile string
	dbPathFlag string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cursor-chronicle",
	Short: "Consolidate Cursor IDE chat history into a knowledge base document",
	Long: `A CLI tool that extracts chat sessions from a Cursor workspace state
database and consolidates them into one chronological markdown document.

The tool reads the composer, generations and prompts keyspaces from the
workspace's state.vscdb, reassembles them into ordered conversations,
applies privacy filtering, and writes a consolidated knowledge base file.

Features:
  • Consolidate all chat sessions into a single markdown document
  • List and show individual sessions from the workspace store
  • Redact secrets and absolute paths before anything is written
  • Export in multiple formats (Markdown, JSON, JSONL, YAML)
  • Discover workspaces that hold chat data

Quick Start:
  cursor-chronicle discover               # Find workspaces with chat data
  cursor-chronicle consolidate            # Write the consolidated document
  cursor-chronicle list                   # List assembled sessions
  cursor-chronicle show <session-id>      # View a specific session

Configuration is read from config.env (or --config) with environment
variables taking precedence.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file to load (default config.env)")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Path to a state database, overriding the configured location")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// resolveDBPath picks the database path: the --db flag wins over the
// configured workspace location
func resolveDBPath(cfg *internal.Config) string {
	if dbPathFlag != "" {
		return dbPathFlag
	}
	return cfg.DatabasePath()
}

// openConfiguredStore loads configuration and opens the state database it
// points at. The caller owns the returned store and must close it.
func openConfiguredStore() (*internal.Config, *internal.Store, error) {
	cfg, err := internal.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := internal.OpenStore(resolveDBPath(cfg))
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}
