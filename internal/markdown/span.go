package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Span reports the byte range [start, stop) covered by the subtree rooted at
// n. Nodes without source segments (thematic breaks, empty containers)
// contribute nothing; ok is false when the whole subtree is position-less.
func Span(n ast.Node) (start, stop int, ok bool) {
	start, stop = -1, -1
	var visit func(node ast.Node)
	visit = func(node ast.Node) {
		if node.Type() == ast.TypeBlock {
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				start, stop = extendSpan(start, stop, seg.Start, seg.Stop)
			}
		}
		if t, isText := node.(*ast.Text); isText {
			start, stop = extendSpan(start, stop, t.Segment.Start, t.Segment.Stop)
		}
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			visit(c)
		}
	}
	visit(n)
	return start, stop, start >= 0
}

func extendSpan(start, stop, from, to int) (int, int) {
	if from == to {
		return start, stop
	}
	if start < 0 || from < start {
		start = from
	}
	if to > stop {
		stop = to
	}
	return start, stop
}

// PlainText concatenates the text content of n's inline subtree. Soft and
// hard line breaks become newlines, mirroring how the source reads.
func PlainText(n ast.Node, source []byte) string {
	var b strings.Builder
	var visit func(node ast.Node)
	visit = func(node ast.Node) {
		switch t := node.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			visit(c)
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		visit(c)
	}
	return b.String()
}

// BlockText joins the raw source lines attached to a block node, e.g. the
// inline source of a heading.
func BlockText(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

// LineIndex maps byte offsets of a source document to line numbers and
// exposes line-exact slicing, so parsed regions keep their original layout.
type LineIndex struct {
	starts []int
	lines  []string
}

// NewLineIndex builds an index over source. Lines are split on "\n" with a
// trailing "\r" stripped.
func NewLineIndex(source []byte) *LineIndex {
	ix := &LineIndex{}
	start := 0
	for i, c := range source {
		if c == '\n' {
			ix.starts = append(ix.starts, start)
			ix.lines = append(ix.lines, strings.TrimSuffix(string(source[start:i]), "\r"))
			start = i + 1
		}
	}
	if start < len(source) {
		ix.starts = append(ix.starts, start)
		ix.lines = append(ix.lines, strings.TrimSuffix(string(source[start:]), "\r"))
	}
	return ix
}

// Count returns the number of lines.
func (ix *LineIndex) Count() int {
	return len(ix.lines)
}

// LineOf returns the 0-based line containing the byte offset.
func (ix *LineIndex) LineOf(offset int) int {
	lo, hi := 0, len(ix.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if ix.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// LineText returns the text of the 0-based line i without its line ending.
func (ix *LineIndex) LineText(i int) string {
	if i < 0 || i >= len(ix.lines) {
		return ""
	}
	return ix.lines[i]
}

// Slice joins lines [startLine, endLine) with newlines, preserving blank
// lines inside the range.
func (ix *LineIndex) Slice(startLine, endLine int) string {
	if startLine < 0 {
		startLine = 0
	}
	if endLine > len(ix.lines) {
		endLine = len(ix.lines)
	}
	if startLine >= endLine {
		return ""
	}
	return strings.Join(ix.lines[startLine:endLine], "\n")
}
