package refdoc

import "testing"

func TestExtract_TwoRecords(t *testing.T) {
	text := `some log noise
ID: 12
├── Title: Coverdale basics
└── Content: First document body
spanning two lines
------
ID: 34
├── Title: Advanced topics
└── Content: Second document body`

	docs := Extract(text)
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	if docs[0].ID != "12" || docs[0].Title != "Coverdale basics" {
		t.Errorf("doc[0] = %+v", docs[0])
	}
	if docs[0].Content != "First document body\nspanning two lines" {
		t.Errorf("doc[0] content = %q", docs[0].Content)
	}
	if docs[1].ID != "34" || docs[1].Content != "Second document body" {
		t.Errorf("doc[1] = %+v", docs[1])
	}
}

func TestExtract_EscapedNewlines(t *testing.T) {
	text := `ID: 7\n├── Title: Escaped\n└── Content: body text\nmore body`

	docs := Extract(text)
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].Title != "Escaped" {
		t.Errorf("title = %q", docs[0].Title)
	}
	if docs[0].Content != "body text\nmore body" {
		t.Errorf("content = %q", docs[0].Content)
	}
}

func TestExtract_StripsJSONTail(t *testing.T) {
	text := "ID: 5\n├── Title: Tail\n└── Content: useful text } , ] }"

	docs := Extract(text)
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].Content != "useful text" {
		t.Errorf("content = %q", docs[0].Content)
	}
}

func TestExtract_StopsAtClosingSequence(t *testing.T) {
	text := "ID: 9\n├── Title: Cut\n└── Content: kept text\n  ] }\nnot part of the document"

	docs := Extract(text)
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].Content != "kept text" {
		t.Errorf("content = %q", docs[0].Content)
	}
}

func TestExtract_NoMatch(t *testing.T) {
	if docs := Extract("plain log line without documents"); docs != nil {
		t.Errorf("expected nil, got %v", docs)
	}
}
