package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// LoaderConfig configures how recipe documents are discovered within a base
// directory.
type LoaderConfig struct {
	// Pattern limits discovered files to those matching the supplied
	// doublestar glob (defaults to "**/*.md").
	Pattern string
}

// Loader turns filesystem paths into recipe document sources with their
// frontmatter stripped.
type Loader struct {
	fs      fs.FS
	pattern string
}

// Document carries a discovered markdown source ready for recipe parsing.
type Document struct {
	// Path is the slash-separated path relative to the loader's filesystem.
	Path string
	// Body is the markdown source with any frontmatter removed.
	Body []byte
	// Meta holds the raw frontmatter fields, empty when none were present.
	Meta map[string]any
}

// NewLoader constructs a Loader over the provided filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "**/*.md"
	}
	return &Loader{fs: filesystem, pattern: pattern}
}

// LoadFile reads a single document and strips its frontmatter.
func (l *Loader) LoadFile(ctx context.Context, filePath string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filePath = path.Clean(strings.TrimPrefix(filePath, "./"))
	data, err := fs.ReadFile(l.fs, filePath)
	if err != nil {
		return nil, fmt.Errorf("recipe loader read %s: %w", filePath, err)
	}

	meta, body, err := StripFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("recipe loader %s: %w", filePath, err)
	}

	return &Document{Path: filePath, Body: body, Meta: meta}, nil
}

// LoadDirectory discovers documents under dir matching the loader's glob and
// returns them sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pattern := l.pattern
	dir = path.Clean(strings.TrimPrefix(dir, "./"))
	if dir != "." && dir != "" {
		pattern = path.Join(dir, pattern)
	}

	matches, err := doublestar.Glob(l.fs, pattern)
	if err != nil {
		return nil, fmt.Errorf("recipe loader glob %s: %w", pattern, err)
	}

	var docs []*Document
	for _, match := range matches {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		doc, err := l.LoadFile(ctx, match)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Path < docs[j].Path
	})

	return docs, nil
}
