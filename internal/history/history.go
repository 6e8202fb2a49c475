// Package history decodes the conversation snapshot embedded in a log
// block: a JSON array of role-tagged turns that follows the history marker,
// usually with log noise wrapped around it.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Roles recognized in snapshot turns. Matching is exact and case-sensitive;
// anything else is carried through untouched.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Turn is one role-tagged message inside a snapshot.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ErrNoPayload reports that no JSON array or object follows the marker.
var ErrNoPayload = errors.New("no JSON payload after marker")

// ExtractArray locates the marker in the block text and recovers the
// syntactically complete JSON array that follows it. The scan counts only
// brackets outside string literals and stops at the first point depth
// returns to zero, dropping any malformed trailer after the logical end.
// A payload that opens with `{` is wrapped into a one-element array.
func ExtractArray(text, marker string) (string, error) {
	idx := strings.Index(text, marker)
	if idx == -1 {
		return "", ErrNoPayload
	}

	payload := strings.TrimSpace(text[idx+len(marker):])
	if !strings.HasPrefix(payload, "[") {
		if strings.HasPrefix(payload, "{") {
			payload = "[" + payload
		} else {
			return "", ErrNoPayload
		}
	}

	depth := 0
	inString := false
	escaped := false
	end := len(payload)

	for i := 0; i < len(payload); i++ {
		c := payload[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
		}
		if inString {
			continue
		}
		switch c {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				end = i + 1
				return payload[:end], nil
			}
		}
	}

	// No closing bracket: hand back the full payload and let the JSON
	// decoder produce the failure, mirroring how truncated snapshots
	// surface as unparseable blocks.
	return payload[:end], nil
}

// DecodeTurns extracts and decodes the snapshot of one block. Failures are
// per-block: the caller skips the block and continues.
func DecodeTurns(text, marker string) ([]Turn, error) {
	raw, err := ExtractArray(text, marker)
	if err != nil {
		return nil, err
	}

	var turns []Turn
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		return nil, fmt.Errorf("unparseable block: %w", err)
	}
	return turns, nil
}

// UserContents returns the trimmed contents of the user turns, in order.
func UserContents(turns []Turn) []string {
	var out []string
	for _, t := range turns {
		if t.Role == RoleUser {
			out = append(out, strings.TrimSpace(t.Content))
		}
	}
	return out
}

// ResponseAfter returns the trimmed content of the first assistant turn
// after index from, and whether one exists.
func ResponseAfter(turns []Turn, from int) (string, bool) {
	for i := from + 1; i < len(turns); i++ {
		if turns[i].Role == RoleAssistant {
			return strings.TrimSpace(turns[i].Content), true
		}
	}
	return "", false
}
