// Package block segments raw log text into timestamped history blocks.
//
// A block opens at a line that carries the history marker and a leading
// timestamp, and runs until the next line that starts a new log entry
// (leading timestamp) or end of file. Lines outside blocks are discarded.
package block

import (
	"regexp"
	"strings"
	"time"
)

// Block is one history snapshot region of the log.
type Block struct {
	Timestamp    time.Time
	RawTimestamp string
	Text         string
	Line         int // 0-based offset of the marker line
}

var (
	// Marker lines carry a full timestamp with milliseconds.
	markerTimestampRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3})`)

	// Any leading timestamp starts the next log entry and ends the block.
	entryStartRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)
)

// ParseTimestamp parses a log timestamp in either `2006-01-02 15:04:05,000`
// or plain `2006-01-02 15:04:05` form (first 19 characters). Unparseable
// input falls back to the current time rather than failing; callers must
// tolerate an unreliable timestamp in that case.
func ParseTimestamp(s string) time.Time {
	// The ".000" layout accepts a comma separator in the input.
	if t, err := time.Parse("2006-01-02 15:04:05.000", s); err == nil {
		return t
	}
	if len(s) >= 19 {
		if t, err := time.Parse("2006-01-02 15:04:05", s[:19]); err == nil {
			return t
		}
	}
	return time.Now()
}

// Segment scans the log text and collects every history block. A marker
// line without a parseable leading timestamp is skipped; the scan itself
// never aborts. A block with no downstream entry start extends to EOF.
func Segment(text, marker string) []Block {
	lines := strings.Split(text, "\n")

	var blocks []Block
	i := 0
	for i < len(lines) {
		line := lines[i]
		if !strings.Contains(line, marker) {
			i++
			continue
		}

		m := markerTimestampRe.FindStringSubmatch(line)
		if m == nil {
			i++
			continue
		}

		blockLines := []string{line}
		j := i + 1
		for j < len(lines) {
			if entryStartRe.MatchString(lines[j]) {
				break
			}
			blockLines = append(blockLines, lines[j])
			j++
		}

		blocks = append(blocks, Block{
			Timestamp:    ParseTimestamp(m[1]),
			RawTimestamp: m[1],
			Text:         strings.Join(blockLines, "\n"),
			Line:         i,
		})
		i = j
	}

	return blocks
}
