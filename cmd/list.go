package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/cursor-chronicle/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List assembled chat sessions",
	Long: `List every chat session assembled from the workspace state database,
in the chronological order they will appear in the consolidated document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, err := openConfiguredStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		doc, _, err := internal.NewConsolidator(cfg, store).BuildDocument()
		if err != nil {
			return err
		}

		displaySessions(doc.Sessions)
		return nil
	},
}

func displaySessions(sessions []internal.ChatSession) {
	if len(sessions) == 0 {
		fmt.Println(headerStyle.Render("📋 No sessions found"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("📋 Found %d session(s)", len(sessions)))
	fmt.Println(header)
	fmt.Println()

	// Use tabwriter for aligned columns with better spacing
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)

	// Header row
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Created")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	for i := range sessions {
		s := &sessions[i]

		title := s.EffectiveTitle()
		if len(title) > 50 {
			title = title[:47] + "..."
		}

		id := idStyle.Render(shortSessionID(s.SessionID))
		msgCount := countStyle.Render(strconv.Itoa(s.MessageCount()))
		created := dateStyle.Render(relativeDate(s.CreatedTime()))

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", id, nameStyle.Render(title), msgCount, created)
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("💡 Tip: Use the full ID (e.g., ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(sessions[0].SessionID) +
		idStyle.Render(") with `cursor-chronicle show <id>`"))
}

// relativeDate renders recent dates compactly and older ones as plain
// calendar dates
func relativeDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

// shortSessionID abbreviates an ID to its first 8 characters for display
func shortSessionID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(listCmd)
}
