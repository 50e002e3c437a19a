package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	recipemd "github.com/goliatone/go-recipemd"
	"github.com/goliatone/go-recipemd/internal/markdown"
)

// fileResolver loads linked recipes from the local filesystem. Links are
// resolved relative to the directory of the root document; remote URLs are
// refused so flattening a local file never performs network I/O.
type fileResolver struct {
	dir    string
	parser *recipemd.Parser
}

func (f *fileResolver) Resolve(ctx context.Context, link string) (*recipemd.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("invalid link %q: %w", link, err)
	}
	if parsed.Scheme != "" || parsed.Host != "" {
		return nil, fmt.Errorf("only local links can be resolved, got %q", link)
	}

	target := filepath.Join(f.dir, filepath.FromSlash(parsed.Path))
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, err
	}

	_, body, err := markdown.StripFrontMatter(data)
	if err != nil {
		return nil, err
	}
	return f.parser.Parse(body)
}
