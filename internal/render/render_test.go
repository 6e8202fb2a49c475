package render

import (
	"strings"
	"testing"

	"github.com/hweber/raglog/internal/block"
	"github.com/hweber/raglog/internal/conversation"
	"github.com/hweber/raglog/internal/refdoc"
)

func buildSet(t *testing.T) *conversation.Set {
	t.Helper()

	blocks := []block.Block{
		{
			Timestamp: block.ParseTimestamp("2025-01-15 10:00:00,000"),
			Text:      `2025-01-15 10:00:00,000 [HISTORY][[{"role":"user","content":"a question that is quite long and will be truncated in the overview for brevity"},{"role":"assistant","content":"an answer"}]`,
			Line:      0,
		},
	}
	return conversation.Reconstruct(blocks, conversation.Options{
		Marker:     "[HISTORY][",
		NoResponse: "[no response found]",
	})
}

func TestOverview(t *testing.T) {
	r := New(20, false)
	out := r.Overview(buildSet(t))

	if !strings.Contains(out, "CONVERSATIONS") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "conversation_1") {
		t.Errorf("missing id:\n%s", out)
	}
	if !strings.Contains(out, "a question that is q...") {
		t.Errorf("first message not truncated to width:\n%s", out)
	}
	if !strings.Contains(out, "(1 messages)") {
		t.Errorf("missing message count:\n%s", out)
	}
}

func TestOverview_Empty(t *testing.T) {
	r := New(80, false)
	set := conversation.Reconstruct(nil, conversation.Options{})
	if out := r.Overview(set); !strings.Contains(out, "No conversations found.") {
		t.Errorf("output = %q", out)
	}
}

func TestDetail(t *testing.T) {
	r := New(80, false)
	c := buildSet(t).List()[0]
	out := r.Detail(c)

	for _, want := range []string{"CONVERSATION conversation_1", "Messages: 1", "USER:", "10:00:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}
}

func TestMessageContext(t *testing.T) {
	r := New(80, false)
	m := buildSet(t).List()[0].Messages[0]
	out := r.MessageContext(m)

	if !strings.Contains(out, "an answer") {
		t.Errorf("missing response:\n%s", out)
	}
	if !strings.Contains(out, "No context documents found.") {
		t.Errorf("missing empty-documents notice:\n%s", out)
	}
}

func TestDocument(t *testing.T) {
	r := New(80, false)
	out := r.Document(refdoc.Document{ID: "7", Title: "Title here", Content: "full body"})

	for _, want := range []string{"DOCUMENT: Title here", "ID: 7", "full body"} {
		if !strings.Contains(out, want) {
			t.Errorf("document missing %q:\n%s", want, out)
		}
	}
}

func TestEmptyHints(t *testing.T) {
	out := EmptyHints()
	if !strings.Contains(out, "Probable causes") {
		t.Errorf("hints = %q", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("exactly ten", 0); got != "exactly ten" {
		t.Errorf("zero width should not truncate, got %q", got)
	}
	if got := truncate("ünïcödé text", 7); got != "ünïcödé..." {
		t.Errorf("rune truncation = %q", got)
	}
}
