// Package conversation reconstructs distinct multi-turn conversations from
// the overlapping history snapshots found in a server log.
//
// Every conversation shows up in the log as a growing sequence of
// snapshots: each later snapshot is a strict extension of the earlier ones.
// The longest snapshot therefore contains every shorter one as a prefix,
// and walking snapshots newest-first lets shorter duplicates be discarded
// against the maximal conversations claimed so far.
package conversation

import (
	"fmt"
	"sort"
	"time"

	"github.com/hweber/raglog/internal/block"
	"github.com/hweber/raglog/internal/history"
	"github.com/hweber/raglog/internal/refdoc"
)

// Message is one user turn of a reconstructed conversation, paired with the
// assistant reply that followed it and the reference documents retrieved
// for it. Response carries the configured no-response sentinel when the
// snapshot ends on the user turn; it is never an empty string standing in
// for "no data".
type Message struct {
	Timestamp   time.Time
	UserMessage string
	Response    string
	Documents   []refdoc.Document
}

// Conversation is one distinct dialogue with its full ordered history.
// MessageCount always equals len(Messages). StartTime is the capture time
// of the conversation's earliest snapshot; all messages share the claiming
// (newest) snapshot's capture timestamp, as the log records no per-turn
// times.
type Conversation struct {
	ID           string
	FirstMessage string
	StartTime    time.Time
	MessageCount int
	Messages     []Message
}

// Options configures one reconstruction pass.
type Options struct {
	// Marker identifies snapshot payloads in block text.
	Marker string

	// NoResponse is the sentinel stored on messages without an assistant
	// reply.
	NoResponse string
}

// decoded pairs a segmented block with its decoded snapshot.
type decoded struct {
	blk   block.Block
	turns []history.Turn
	users []string
}

// claim is a snapshot accepted as a previously-unseen, maximal conversation.
type claim struct {
	users []string
	blk   block.Block
	conv  Conversation
}

// Reconstruct runs one full pass over the segmented blocks and returns the
// immutable result set. Blocks that fail to decode are skipped, never
// fatal; their count is available on the set.
func Reconstruct(blocks []block.Block, opts Options) *Set {
	if opts.Marker == "" {
		opts.Marker = "[HISTORY]["
	}
	if opts.NoResponse == "" {
		opts.NoResponse = "[no response found]"
	}

	skipped := 0
	snaps := make([]decoded, 0, len(blocks))
	for _, b := range blocks {
		turns, err := history.DecodeTurns(b.Text, opts.Marker)
		if err != nil {
			skipped++
			continue
		}
		snaps = append(snaps, decoded{blk: b, turns: turns, users: history.UserContents(turns)})
	}

	// Newest first. Identical timestamps break deterministically by line
	// offset, later in the file first.
	sort.SliceStable(snaps, func(i, j int) bool {
		return laterBlock(snaps[i].blk, snaps[j].blk)
	})

	var claimed []claim
	for _, d := range snaps {
		if len(d.users) == 0 {
			continue
		}
		if isSubset(d.users, claimed) {
			continue
		}

		msgs := make([]Message, 0, len(d.users))
		for i, userMsg := range d.users {
			resp, ok := history.ResponseAfter(d.turns, userTurnIndex(d.turns, i))
			if !ok {
				resp = opts.NoResponse
			}
			msgs = append(msgs, Message{
				Timestamp:   d.blk.Timestamp,
				UserMessage: userMsg,
				Response:    resp,
				Documents:   documentsFor(snaps, i+1, userMsg),
			})
		}

		start := earliestSnapshot(snaps, d)
		claimed = append(claimed, claim{
			users: d.users,
			blk:   start,
			conv: Conversation{
				FirstMessage: d.users[0],
				StartTime:    start.Timestamp,
				MessageCount: len(d.users),
				Messages:     msgs,
			},
		})
	}

	// Oldest first for the final ordering, then sequential ids replace the
	// claim order.
	sort.SliceStable(claimed, func(i, j int) bool {
		return laterBlock(claimed[j].blk, claimed[i].blk)
	})

	convs := make([]Conversation, len(claimed))
	byID := make(map[string]int, len(claimed))
	for i, c := range claimed {
		c.conv.ID = fmt.Sprintf("conversation_%d", i+1)
		convs[i] = c.conv
		byID[c.conv.ID] = i
	}

	return &Set{conversations: convs, byID: byID, skipped: skipped, decoded: len(snaps)}
}

// isSubset reports whether users is a prefix of any claimed conversation's
// user-turn sequence, i.e. a duplicate of work already captured.
func isSubset(users []string, claimed []claim) bool {
	for _, c := range claimed {
		if len(users) > len(c.users) {
			continue
		}
		match := true
		for i, u := range users {
			if c.users[i] != u {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// earliestSnapshot returns the block of the oldest snapshot belonging to
// the claimed conversation d, i.e. whose user turns are a prefix of d's.
// The claiming snapshot is the newest one; the conversation started when
// its first snapshot was logged.
func earliestSnapshot(snaps []decoded, d decoded) block.Block {
	start := d.blk
	for _, s := range snaps {
		if len(s.users) == 0 || len(s.users) > len(d.users) {
			continue
		}
		prefix := true
		for i, u := range s.users {
			if d.users[i] != u {
				prefix = false
				break
			}
		}
		if prefix && laterBlock(start, s.blk) {
			start = s.blk
		}
	}
	return start
}

// userTurnIndex returns the index in turns of the n-th user turn (0-based).
func userTurnIndex(turns []history.Turn, n int) int {
	seen := 0
	for i, t := range turns {
		if t.Role == history.RoleUser {
			if seen == n {
				return i
			}
			seen++
		}
	}
	return len(turns)
}

// documentsFor finds the snapshot produced when userMsg was the most recent
// turn: the one whose user-turn count equals the turn's 1-based position
// and whose last user turn matches textually. That is generally a shorter
// block than the claiming one; its raw text carries the documents retrieved
// for the turn.
func documentsFor(snaps []decoded, count int, userMsg string) []refdoc.Document {
	for _, s := range snaps {
		if len(s.users) == count && s.users[count-1] == userMsg {
			return refdoc.Extract(s.blk.Text)
		}
	}
	return nil
}

// laterBlock reports whether a is strictly later than b, falling back to
// line offset on identical timestamps.
func laterBlock(a, b block.Block) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.Line > b.Line
}
