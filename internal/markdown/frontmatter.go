package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// StripFrontMatter separates an optional YAML/TOML frontmatter block from the
// markdown body. Recipe documents managed alongside static-site content often
// carry frontmatter the recipe grammar knows nothing about; it is surfaced as
// loose metadata and the body is what gets parsed as a recipe.
func StripFrontMatter(source []byte) (map[string]any, []byte, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}
