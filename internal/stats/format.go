package stats

import (
	"fmt"
	"strings"
)

// Format renders a Summary as aligned terminal output.
func Format(s Summary) string {
	if s.Conversations == 0 {
		return "raglog stats\n\n  No conversations found in this log.\n"
	}

	var b strings.Builder
	b.WriteString("raglog stats\n")

	b.WriteString("\nOverview\n")
	fmt.Fprintf(&b, "  %-22s %d\n", "conversations", s.Conversations)
	fmt.Fprintf(&b, "  %-22s %d\n", "messages", s.Messages)
	fmt.Fprintf(&b, "  %-22s %d\n", "context documents", s.Documents)
	fmt.Fprintf(&b, "  %-22s %d\n", "unanswered messages", s.Unanswered)
	fmt.Fprintf(&b, "  %-22s %.1f\n", "messages/conversation", s.AvgMessages)
	fmt.Fprintf(&b, "  %-22s %s — %s\n", "time span",
		s.First.Format("2006-01-02 15:04:05"), s.Last.Format("2006-01-02 15:04:05"))

	if s.LongestID != "" {
		b.WriteString("\nLongest conversation\n")
		fmt.Fprintf(&b, "  %-22s %d messages\n", s.LongestID, s.LongestMessages)
	}

	if len(s.Daily) > 0 {
		b.WriteString("\nPer day\n")
		for _, d := range s.Daily {
			fmt.Fprintf(&b, "  %s   %3d conversations   %4d messages\n", d.Day, d.Conversations, d.Messages)
		}
	}

	return b.String()
}
