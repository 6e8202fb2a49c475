// Package render formats reconstructed conversations for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hweber/raglog/internal/conversation"
	"github.com/hweber/raglog/internal/refdoc"
)

// Renderer holds presentation settings for one session.
type Renderer struct {
	// FirstMessageWidth truncates first-message previews in the overview.
	FirstMessageWidth int

	title  lipgloss.Style
	header lipgloss.Style
	dim    lipgloss.Style
	role   lipgloss.Style
}

// New returns a Renderer. With color off, every style degrades to plain
// text.
func New(firstMessageWidth int, color bool) *Renderer {
	r := &Renderer{FirstMessageWidth: firstMessageWidth}
	if color {
		r.title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
		r.header = lipgloss.NewStyle().Bold(true)
		r.dim = lipgloss.NewStyle().Faint(true)
		r.role = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	} else {
		plain := lipgloss.NewStyle()
		r.title, r.header, r.dim, r.role = plain, plain, plain, plain
	}
	return r
}

const rule = "================================================================================"

// Overview renders the numbered conversation list, ordered by start time.
func (r *Renderer) Overview(set *conversation.Set) string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString(r.title.Render("CONVERSATIONS") + "\n")
	b.WriteString(rule + "\n")

	if set.Len() == 0 {
		b.WriteString("No conversations found.\n")
		return b.String()
	}

	for i, c := range set.List() {
		fmt.Fprintf(&b, "%2d. [%s] (%d messages)\n",
			i+1, c.StartTime.Format("2006-01-02 15:04:05"), c.MessageCount)
		fmt.Fprintf(&b, "    %s %s\n", r.dim.Render("first message:"), truncate(c.FirstMessage, r.FirstMessageWidth))
		fmt.Fprintf(&b, "    %s %s\n", r.dim.Render("id:"), c.ID)
		b.WriteString("\n")
	}

	return b.String()
}

// Detail renders one conversation's message list.
func (r *Renderer) Detail(c conversation.Conversation) string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString(r.title.Render("CONVERSATION "+c.ID) + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Start:    %s\n", c.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Messages: %d\n\n", c.MessageCount)

	for i, m := range c.Messages {
		fmt.Fprintf(&b, "%2d. [%s] %s\n", i+1, m.Timestamp.Format("15:04:05"), r.role.Render("USER:"))
		fmt.Fprintf(&b, "    %s\n", m.UserMessage)
		if len(m.Documents) > 0 {
			fmt.Fprintf(&b, "    %s %d\n", r.dim.Render("context documents:"), len(m.Documents))
			for _, d := range m.Documents {
				fmt.Fprintf(&b, "      - %s (ID: %s)\n", d.Title, d.ID)
			}
		}
		b.WriteString(strings.Repeat("-", 60) + "\n")
	}

	return b.String()
}

// MessageContext renders one message with its reply and document list.
func (r *Renderer) MessageContext(m conversation.Message) string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString(r.title.Render("MESSAGE CONTEXT") + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Time:      %s\n", m.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%s %s\n", r.role.Render("User:"), m.UserMessage)
	fmt.Fprintf(&b, "%s %s\n\n", r.role.Render("Assistant:"), m.Response)

	if len(m.Documents) == 0 {
		b.WriteString("No context documents found.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Context documents (%d):\n", len(m.Documents))
	for i, d := range m.Documents {
		fmt.Fprintf(&b, "%2d. %s (ID: %s)\n", i+1, d.Title, d.ID)
	}

	return b.String()
}

// Document renders one context document's full content.
func (r *Renderer) Document(d refdoc.Document) string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString(r.title.Render("DOCUMENT: "+d.Title) + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "ID: %s\n\n", d.ID)
	b.WriteString(d.Content + "\n")

	return b.String()
}

// EmptyHints explains the probable causes when a pass reconstructs nothing.
func EmptyHints() string {
	return strings.Join([]string{
		"No conversations could be reconstructed.",
		"Probable causes:",
		"  - history blocks and requests are too far apart in time",
		"  - JSON inside history blocks is malformed",
		"  - unexpected log format",
	}, "\n") + "\n"
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	return string(r[:width]) + "..."
}
