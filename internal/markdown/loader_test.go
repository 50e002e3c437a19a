package markdown

import (
	"context"
	"testing"
	"testing/fstest"
)

func TestLoadFileStripsFrontMatter(t *testing.T) {
	fsys := fstest.MapFS{
		"salad.md": &fstest.MapFile{
			Data: []byte("---\nauthor: jo\n---\n# Salad\n"),
		},
	}

	loader := NewLoader(fsys, LoaderConfig{})
	doc, err := loader.LoadFile(context.Background(), "salad.md")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if doc.Meta["author"] != "jo" {
		t.Fatalf("frontmatter not captured: %#v", doc.Meta)
	}
	if string(doc.Body) != "# Salad\n" {
		t.Fatalf("frontmatter not stripped from body: %q", doc.Body)
	}
}

func TestLoadDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"b.md":        &fstest.MapFile{Data: []byte("# B\n")},
		"sub/a.md":    &fstest.MapFile{Data: []byte("# A\n")},
		"notes.txt":   &fstest.MapFile{Data: []byte("not a recipe")},
		"sub/deep.md": &fstest.MapFile{Data: []byte("# Deep\n")},
	}

	loader := NewLoader(fsys, LoaderConfig{})
	docs, err := loader.LoadDirectory(context.Background(), ".")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	var paths []string
	for _, doc := range docs {
		paths = append(paths, doc.Path)
	}
	want := []string{"b.md", "sub/a.md", "sub/deep.md"}
	if len(paths) != len(want) {
		t.Fatalf("paths mismatch: %#v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("paths mismatch: %#v, want %#v", paths, want)
		}
	}
}

func TestLoadDirectoryHonorsPattern(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md":          &fstest.MapFile{Data: []byte("# A\n")},
		"drafts/b.md":   &fstest.MapFile{Data: []byte("# B\n")},
		"drafts/c.txt":  &fstest.MapFile{Data: []byte("plain")},
		"published.txt": &fstest.MapFile{Data: []byte("plain")},
	}

	loader := NewLoader(fsys, LoaderConfig{Pattern: "drafts/*.md"})
	docs, err := loader.LoadDirectory(context.Background(), ".")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(docs) != 1 || docs[0].Path != "drafts/b.md" {
		t.Fatalf("pattern not honored: %#v", docs)
	}
}

func TestLoadFileCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewLoader(fstest.MapFS{}, LoaderConfig{})
	if _, err := loader.LoadFile(ctx, "missing.md"); err == nil {
		t.Fatalf("expected context error")
	}
}
