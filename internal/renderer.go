package internal

import (
	"fmt"
	"strings"
)

// metaDateLayout matches the document's long-form date style
const metaDateLayout = "January 2, 2006, 15:04 MST"

// sessionDateLayout is the long-form style used in session headers
const sessionDateLayout = "January 2, 2006, 15:04:05 MST"

// RenderMarkdown renders the consolidated document. It is a pure
// formatting pass: identical documents produce byte-identical output, all
// timestamps come from the document itself, and privacy filtering has
// already happened upstream.
func RenderMarkdown(doc *Document) string {
	var b strings.Builder

	b.WriteString("# Chat History - Consolidated\n")
	b.WriteString("\n")

	renderMetadata(&b, doc)
	b.WriteString("\n")

	renderSessions(&b, doc)
	b.WriteString("\n")

	renderTopics(&b, doc)
	b.WriteString("\n")

	renderDataSources(&b, doc)
	b.WriteString("\n")

	renderNotes(&b)
	b.WriteString("\n")

	fmt.Fprintf(&b, "---\n*This file was automatically generated by %s and includes all historical chat sessions from the %s project workspace.*\n",
		doc.Metadata.AppName, doc.Metadata.ProjectName)

	return b.String()
}

func renderMetadata(b *strings.Builder, doc *Document) {
	meta := doc.Metadata
	b.WriteString("## Metadata\n")
	fmt.Fprintf(b, "- **Created**: %s\n", meta.GeneratedAt.Format(metaDateLayout))
	fmt.Fprintf(b, "- **Project**: %s\n", meta.ProjectName)
	fmt.Fprintf(b, "- **Branch**: %s\n", meta.ProjectBranch)
	fmt.Fprintf(b, "- **Workspace**: %s\n", meta.ProjectPath)
	if meta.WorkspaceID != "" {
		fmt.Fprintf(b, "- **Workspace ID**: %s\n", meta.WorkspaceID)
	}
	b.WriteString("- **File Type**: Consolidated Chat History\n")
	b.WriteString("- **Purpose**: Knowledge base storage for chat interactions\n")
	fmt.Fprintf(b, "- **Total Chat Sessions**: %d historical sessions\n", doc.SessionCount())
	fmt.Fprintf(b, "- **Total Messages**: %d\n", doc.TotalMessages())
	if meta.ExtractionID != "" {
		fmt.Fprintf(b, "- **Extraction ID**: %s\n", meta.ExtractionID)
	}
	if meta.Platform != "" {
		fmt.Fprintf(b, "- **OS**: %s\n", meta.Platform)
	}
	if meta.Hostname != "" {
		fmt.Fprintf(b, "- **Host**: %s\n", meta.Hostname)
	}
}

func renderSessions(b *strings.Builder, doc *Document) {
	b.WriteString("## Historical Chat Sessions\n")
	if len(doc.Sessions) == 0 {
		b.WriteString("\nNo chat sessions were found in the workspace storage.\n")
		return
	}

	for i := range doc.Sessions {
		s := &doc.Sessions[i]
		b.WriteString("\n")
		fmt.Fprintf(b, "### Session %d: %s\n", i+1, sessionHeading(s))
		fmt.Fprintf(b, "**Date**: %s\n", sessionDate(s))
		fmt.Fprintf(b, "**Session ID**: %s\n", s.SessionID)
		fmt.Fprintf(b, "**Context**: %s\n", s.ContextDescription())

		for j := range s.Messages {
			m := &s.Messages[j]
			b.WriteString("\n")
			b.WriteString(messageHeading(m))
			b.WriteString("\n\n")
			b.WriteString(strings.TrimRight(m.Text, "\n"))
			b.WriteString("\n")
		}
	}
}

// sessionHeading prefers the recorded title; untitled sessions fall back
// to a heading built from the session ID and creation date
func sessionHeading(s *ChatSession) string {
	if s.Title != "" {
		return s.Title
	}
	if s.CreatedAt != UnknownTime {
		return fmt.Sprintf("%s (%s)", shortID(s.SessionID), s.CreatedTime().Format("January 2, 2006"))
	}
	return shortID(s.SessionID)
}

func sessionDate(s *ChatSession) string {
	if s.CreatedAt == UnknownTime {
		return "unknown"
	}
	return s.CreatedTime().Format(sessionDateLayout)
}

func messageHeading(m *Message) string {
	role := "**User**"
	if m.Role == RoleAssistant {
		role = "**Assistant**"
		if m.Model != "" {
			role = fmt.Sprintf("**Assistant** (%s)", m.Model)
		}
	}
	if m.CreatedAt != UnknownTime {
		return fmt.Sprintf("%s, %s:", role, formatTimestamp(m.CreatedAt))
	}
	return role + ":"
}

func renderTopics(b *strings.Builder, doc *Document) {
	b.WriteString("## Key Chat Topics and Themes\n")
	if len(doc.Topics) == 0 {
		b.WriteString("\nNo recurring topics were detected across the recorded sessions.\n")
		return
	}
	b.WriteString("\n")
	for i, topic := range doc.Topics {
		fmt.Fprintf(b, "%d. **%s** (%d mentions)\n", i+1, topic.Keyword, topic.Count)
	}
}

func renderDataSources(b *strings.Builder, doc *Document) {
	b.WriteString("## Chat Data Sources\n")
	fmt.Fprintf(b, "- **Workspace Storage**: %s\n", doc.Metadata.StorePath)
	b.WriteString("- **Database**: SQLite state.vscdb containing chat sessions and AI service data\n")
	b.WriteString("- **Composer Data**: JSON data containing session metadata and conversation history\n")
	b.WriteString("- **AI Service Data**: Prompts and generations stored in workspace-specific database\n")
}

func renderNotes(b *strings.Builder) {
	b.WriteString("## Notes\n")
	b.WriteString("- This file serves as a consolidated knowledge base for all chat interactions\n")
	b.WriteString("- Metadata includes timestamps, project context, and technical details\n")
	b.WriteString("- Historical data extracted from workspace-specific SQLite database\n")
	b.WriteString("- Redacted placeholders mark content withheld by the privacy settings\n")
	b.WriteString("- All timestamps converted to ISO format for consistency\n")
}

// shortID abbreviates a session ID for headings and tables
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
