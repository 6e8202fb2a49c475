// Package refdoc extracts retrieved reference documents from a log block.
//
// Documents appear as a repeating text fragment, independent of the JSON
// snapshot in the same block:
//
//	ID: 42
//	├── Title: Some document
//	└── Content: body text ...
//
// The tree glyphs are literal characters of the format, not decoration.
package refdoc

import (
	"regexp"
	"strings"
)

// Document is one retrieved reference record.
type Document struct {
	ID      string
	Title   string
	Content string
}

var (
	headerRe = regexp.MustCompile(`ID:\s*(\d+)\s*├──\s*Title:\s*([^\n]+)\s*└──\s*Content:\s*`)

	// A content run ends at a separator line, the next record, or the
	// JSON-closing tail of the surrounding log entry.
	terminatorRe = regexp.MustCompile(`\n\s*------|\nID:|\n\s*\}\s*,|\n\s*\]\s*\}`)

	trailingCloserRe = regexp.MustCompile(`\s*\}\s*,?\s*\]\s*\}?\s*$`)
)

// Extract returns all reference documents found in the block text, in
// textual order. No match yields an empty result, not an error.
func Extract(text string) []Document {
	// Snapshot regions often arrive with escaped newlines.
	if strings.Contains(text, `\n`) {
		text = strings.ReplaceAll(text, `\n`, "\n")
	}

	headers := headerRe.FindAllStringSubmatchIndex(text, -1)
	if headers == nil {
		return nil
	}

	docs := make([]Document, 0, len(headers))
	for _, h := range headers {
		id := text[h[2]:h[3]]
		title := strings.TrimSpace(text[h[4]:h[5]])

		content := text[h[1]:]
		if loc := terminatorRe.FindStringIndex(content); loc != nil {
			content = content[:loc[0]]
		}
		content = strings.TrimSpace(content)
		content = trailingCloserRe.ReplaceAllString(content, "")

		docs = append(docs, Document{
			ID:      strings.TrimSpace(id),
			Title:   title,
			Content: content,
		})
	}

	return docs
}
