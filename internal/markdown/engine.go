package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Engine parses markdown source into a goldmark block tree. The engine is
// stateless so callers can reuse a single instance across documents without
// additional locking.
type Engine struct {
	md goldmark.Markdown
}

// NewEngine constructs an engine with CommonMark defaults. Reference-style
// links resolve to regular links in the resulting tree, which is all the
// recipe grammar requires.
func NewEngine() *Engine {
	return &Engine{md: goldmark.New()}
}

// Parse turns source into a block tree rooted at the document node.
func (e *Engine) Parse(source []byte) ast.Node {
	return e.md.Parser().Parse(text.NewReader(source))
}
