package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/cursor-chronicle/internal"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check whether a consolidation run can succeed",
	Long: `Verify the whole chain the consolidate command depends on:
  • Configuration loads and validates
  • The state database file exists and opens
  • The well-known keyspaces are present
  • Sessions assemble from the stored data

This command is useful for debugging configuration and storage issues,
especially in CI environments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("🔍 cursor-chronicle Health Check"))
		fmt.Println()

		// Step 1: configuration
		fmt.Println(infoStyle.Render("Step 1: Loading configuration..."))
		cfg, err := internal.LoadConfig(configFile)
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Configuration failed:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✅ Configuration loaded"))
		if verbose {
			fmt.Printf("   Project: %s (%s)\n", cfg.ProjectName, cfg.ProjectBranch)
			fmt.Printf("   Workspace ID: %s\n", cfg.WorkspaceID)
		}
		fmt.Println()

		// Step 2: database file
		dbPath := resolveDBPath(cfg)
		fmt.Println(infoStyle.Render("Step 2: Checking state database..."))
		store, err := internal.OpenStore(dbPath)
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Cannot open state database:"), err)
			fmt.Printf("   Expected: %s\n", dbPath)
			fmt.Println("   Set DB_PATH / WORKSPACE_ID or pass --db, or run `cursor-chronicle discover`.")
			os.Exit(1)
		}
		defer func() { _ = store.Close() }()
		fmt.Println(successStyle.Render("✅ State database opened"))
		if verbose {
			fmt.Printf("   Database: %s\n", store.Path())
		}
		fmt.Println()

		// Step 3: well-known keys
		fmt.Println(infoStyle.Render("Step 3: Checking chat keyspaces..."))
		present := 0
		for _, key := range []string{cfg.ComposerDataKey, cfg.GenerationsKey, cfg.PromptsKey} {
			ok, err := store.HasKey(key)
			switch {
			case err != nil:
				fmt.Println(errorStyle.Render("❌ Key lookup failed:"), err)
				os.Exit(1)
			case ok:
				present++
				fmt.Println(successStyle.Render("✅ " + key))
			default:
				fmt.Println(warningStyle.Render("⚠️  " + key + " (missing)"))
			}
		}
		if present == 0 {
			fmt.Println(warningStyle.Render("⚠️  No chat keyspaces found; the document will be empty"))
		}
		fmt.Println()

		// Step 4: assembly
		fmt.Println(infoStyle.Render("Step 4: Assembling sessions..."))
		doc, diags, err := internal.NewConsolidator(cfg, store).BuildDocument()
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Assembly failed:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✅ Assembled %d session(s), %d message(s)", doc.SessionCount(), doc.TotalMessages())))
		if len(diags.Skipped) > 0 {
			fmt.Println(warningStyle.Render("⚠️  " + diags.Summary()))
		}
		fmt.Println()

		fmt.Println(successStyle.Render("All checks passed. Run `cursor-chronicle consolidate` to write the document."))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
