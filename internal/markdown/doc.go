// Package markdown wraps the goldmark engine behind the small block-tree
// surface the recipe parser consumes: parsing source into an AST, byte and
// line spans for blocks, plain-text extraction for inline content, and a
// filesystem loader that discovers recipe documents and strips optional
// frontmatter before parsing.
package markdown
