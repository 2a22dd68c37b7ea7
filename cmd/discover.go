package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/cursor-chronicle/internal"
	"github.com/spf13/cobra"
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find workspaces that hold chat data",
	Long: `Scan the workspace storage directory for per-workspace state databases
and report which of them contain chat keyspaces.

The scan base comes from DB_PATH, falling back to the platform's default
storage location. Use the reported workspace ID as WORKSPACE_ID (or in
config.env) to consolidate that workspace.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := internal.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		base := cfg.StorageBase()
		if base == "" {
			detected, err := internal.DetectStorageBase()
			if err != nil {
				return fmt.Errorf("cannot determine storage base: %w", err)
			}
			base = detected
		}

		fmt.Println(sectionStyle.Render("📂 Scanning " + base))
		fmt.Println()

		workspaces, err := internal.DiscoverWorkspaces(base)
		if err != nil {
			return fmt.Errorf("failed to scan workspace storage: %w", err)
		}
		if len(workspaces) == 0 {
			fmt.Println(warningStyle.Render("⚠️  No workspaces found"))
			return nil
		}

		displayWorkspaces(cfg, workspaces)
		return nil
	},
}

func displayWorkspaces(cfg *internal.Config, workspaces []internal.WorkspaceInfo) {
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(w, titleStyle.Render("Workspace ID")+"\t"+titleStyle.Render("Project")+"\t"+titleStyle.Render("Chat Data")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 90))

	withChat := 0
	var firstChatID string
	for i := range workspaces {
		ws := &workspaces[i]

		name := ws.Name
		if name == "" {
			name = "—"
		}
		if len(name) > 35 {
			name = name[:32] + "..."
		}

		chat := dateStyle.Render("—")
		if ws.HasStore() {
			if hasChatData(cfg, ws.StorePath) {
				chat = countStyle.Render("yes")
				withChat++
				if firstChatID == "" {
					firstChatID = ws.ID
				}
			} else {
				chat = dateStyle.Render("no")
			}
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n", idStyle.Render(shortSessionID(ws.ID)), name, chat)
	}
	_ = w.Flush()

	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d workspace(s), %d with chat data", len(workspaces), withChat)))
	if firstChatID != "" {
		fmt.Println(idStyle.Render("💡 Tip: consolidate one with WORKSPACE_ID=") +
			lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(firstChatID))
	}
}

// hasChatData opens a workspace store just long enough to check for the
// composer keyspace
func hasChatData(cfg *internal.Config, storePath string) bool {
	store, err := internal.OpenStore(storePath)
	if err != nil {
		internal.LogDebug("skipping %s: %v", storePath, err)
		return false
	}
	defer func() { _ = store.Close() }()

	ok, err := store.HasKey(cfg.ComposerDataKey)
	return err == nil && ok
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}
