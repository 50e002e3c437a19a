package markdown

import (
	"testing"

	"github.com/yuin/goldmark/ast"
)

func TestSpanCoversBlockSource(t *testing.T) {
	source := []byte("# Title\n\nfirst paragraph\nwith a second line\n")
	doc := NewEngine().Parse(source)

	heading := doc.FirstChild()
	start, stop, ok := Span(heading)
	if !ok {
		t.Fatalf("expected heading span")
	}
	if string(source[start:stop]) != "Title" {
		t.Fatalf("heading span mismatch: %q", source[start:stop])
	}

	para := heading.NextSibling()
	start, stop, ok = Span(para)
	if !ok {
		t.Fatalf("expected paragraph span")
	}
	if start != len("# Title\n\n") {
		t.Fatalf("paragraph start mismatch: %d", start)
	}
	if string(source[start:stop]) != "first paragraph\nwith a second line" {
		t.Fatalf("paragraph span mismatch: %q", source[start:stop])
	}
}

func TestSpanThematicBreakHasNoPosition(t *testing.T) {
	source := []byte("---\n")
	doc := NewEngine().Parse(source)

	if _, ok := doc.FirstChild().(*ast.ThematicBreak); !ok {
		t.Fatalf("expected a thematic break, got %T", doc.FirstChild())
	}
	if _, _, ok := Span(doc.FirstChild()); ok {
		t.Fatalf("thematic break should not carry a span")
	}
}

func TestBlockText(t *testing.T) {
	source := []byte("# A *Spicy* Title\n\nfirst line\nsecond line\n")
	doc := NewEngine().Parse(source)

	heading := doc.FirstChild()
	if got := BlockText(heading, source); got != "A *Spicy* Title" {
		t.Fatalf("heading source mismatch: %q", got)
	}

	para := heading.NextSibling()
	if got := BlockText(para, source); got != "first line\nsecond line" {
		t.Fatalf("paragraph source mismatch: %q", got)
	}
}

func TestPlainText(t *testing.T) {
	source := []byte("some *emphasized text* and a [link](target.md)\n")
	doc := NewEngine().Parse(source)

	para := doc.FirstChild()
	if got := PlainText(para, source); got != "some emphasized text and a link" {
		t.Fatalf("PlainText mismatch: %q", got)
	}
}

func TestLineIndex(t *testing.T) {
	source := []byte("one\ntwo\r\n\nfour")
	index := NewLineIndex(source)

	if index.Count() != 4 {
		t.Fatalf("expected 4 lines, got %d", index.Count())
	}
	if index.LineText(1) != "two" {
		t.Fatalf("carriage return not stripped: %q", index.LineText(1))
	}
	if index.LineOf(0) != 0 {
		t.Fatalf("offset 0 should be line 0")
	}
	if got := index.LineOf(len("one\ntwo\r\n\n")); got != 3 {
		t.Fatalf("expected line 3, got %d", got)
	}
	if got := index.Slice(1, 4); got != "two\n\nfour" {
		t.Fatalf("Slice mismatch: %q", got)
	}
	if got := index.Slice(2, 2); got != "" {
		t.Fatalf("empty range should be empty, got %q", got)
	}
}
