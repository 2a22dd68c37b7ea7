package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/cursor-chronicle/internal"
	"github.com/spf13/cobra"
)

var showLimit int

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show messages for a specific session",
	Long: `Display one assembled chat session in the terminal, with privacy
filtering applied the same way the consolidated document would.

The session ID may be abbreviated to any unambiguous prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]

		cfg, store, err := openConfiguredStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		doc, _, err := internal.NewConsolidator(cfg, store).BuildDocument()
		if err != nil {
			return err
		}

		session := doc.FindSession(sessionID)
		if session == nil {
			return fmt.Errorf("no session matches %q (try `cursor-chronicle list`)", sessionID)
		}

		displaySession(session)
		return nil
	},
}

func displaySession(s *internal.ChatSession) {
	fmt.Println(sessionHeaderStyle.Render("💬 " + s.EffectiveTitle()))

	meta := fmt.Sprintf("ID: %s", s.SessionID)
	if !s.CreatedTime().IsZero() {
		meta += "  •  " + s.CreatedTime().Format("2006-01-02 15:04:05 MST")
	}
	if d := s.Duration(); d > 0 {
		meta += fmt.Sprintf("  •  %s", d.Round(time.Second))
	}
	fmt.Println(sessionMetaStyle.Render(meta))
	fmt.Println(sessionMetaStyle.Render("Context: " + s.ContextDescription()))
	fmt.Println()

	messages := s.Messages
	if showLimit > 0 && len(messages) > showLimit {
		fmt.Println(timestampStyle.Render(fmt.Sprintf("(showing last %d of %d messages)", showLimit, len(messages))))
		fmt.Println()
		messages = messages[len(messages)-showLimit:]
	}

	for i := range messages {
		m := &messages[i]

		label := userMessageStyle.Render("You")
		if m.Role == internal.RoleAssistant {
			label = assistantMessageStyle.Render("Assistant")
			if m.Model != "" {
				label = assistantMessageStyle.Render("Assistant (" + m.Model + ")")
			}
		}
		if !m.CreatedTime().IsZero() {
			label += " " + timestampStyle.Render(m.CreatedTime().Format("15:04:05"))
		}

		fmt.Println(label)
		fmt.Println(messageContentStyle.Render(m.Text))
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "Show only the last N messages")
}
