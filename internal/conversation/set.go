package conversation

import (
	"strings"
	"time"

	"github.com/hweber/raglog/internal/refdoc"
)

// Set is the immutable result of one reconstruction pass. A new pass
// builds a new Set; nothing updates one in place.
type Set struct {
	conversations []Conversation // ascending by start time
	byID          map[string]int
	skipped       int
	decoded       int
}

// Len returns the number of reconstructed conversations.
func (s *Set) Len() int {
	return len(s.conversations)
}

// DecodedBlocks returns how many history blocks decoded cleanly.
func (s *Set) DecodedBlocks() int {
	return s.decoded
}

// SkippedBlocks returns how many history blocks were discarded as
// unparseable.
func (s *Set) SkippedBlocks() int {
	return s.skipped
}

// List returns all conversations ordered by start time.
func (s *Set) List() []Conversation {
	return s.conversations
}

// Get returns the conversation with the given id.
func (s *Set) Get(id string) (Conversation, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Conversation{}, false
	}
	return s.conversations[i], true
}

// Messages returns the full message list of one conversation.
func (s *Set) Messages(id string) ([]Message, bool) {
	c, ok := s.Get(id)
	if !ok {
		return nil, false
	}
	return c.Messages, true
}

// Documents returns the context documents of one message, addressed by
// conversation id and 0-based message index.
func (s *Set) Documents(id string, msg int) ([]refdoc.Document, bool) {
	msgs, ok := s.Messages(id)
	if !ok || msg < 0 || msg >= len(msgs) {
		return nil, false
	}
	return msgs[msg].Documents, true
}

// DocumentContent returns the content of one context document.
func (s *Set) DocumentContent(id string, msg, doc int) (string, bool) {
	docs, ok := s.Documents(id, msg)
	if !ok || doc < 0 || doc >= len(docs) {
		return "", false
	}
	return docs[doc].Content, true
}

// FilterKeyword returns the conversations containing the keyword in any
// user or assistant text, case-insensitively, preserving start-time order.
func (s *Set) FilterKeyword(keyword string) []Conversation {
	q := strings.ToLower(keyword)
	var out []Conversation
	for _, c := range s.conversations {
		for _, m := range c.Messages {
			if strings.Contains(strings.ToLower(m.UserMessage), q) ||
				strings.Contains(strings.ToLower(m.Response), q) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// FilterRange returns the conversations whose start time falls in
// [from, to). A zero bound is open.
func (s *Set) FilterRange(from, to time.Time) []Conversation {
	var out []Conversation
	for _, c := range s.conversations {
		if !from.IsZero() && c.StartTime.Before(from) {
			continue
		}
		if !to.IsZero() && !c.StartTime.Before(to) {
			continue
		}
		out = append(out, c)
	}
	return out
}
