package markdown

import (
	"strings"
	"testing"
)

func TestBlocks(t *testing.T) {
	doc := strings.Join([]string{
		"# Reading list",
		"",
		"```cardview",
		`[{"content":{"title":{"text":"A"}}}]`,
		"```",
		"",
		"```go",
		"package main",
		"```",
		"",
		"- item",
		"",
		"  ```cardview",
		"  []",
		"  ```",
		"",
		"```CardView",
		"```",
		"",
	}, "\n")

	blocks := Blocks([]byte(doc))
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3: %+v", len(blocks), blocks)
	}

	first := blocks[0]
	if first.Index != 0 || first.Line != 4 {
		t.Errorf("first block index/line = %d/%d, want 0/4", first.Index, first.Line)
	}
	if want := `[{"content":{"title":{"text":"A"}}}]` + "\n"; first.Source != want {
		t.Errorf("first block source = %q, want %q", first.Source, want)
	}

	nested := blocks[1]
	if strings.TrimSpace(nested.Source) != "[]" {
		t.Errorf("nested block source = %q", nested.Source)
	}
	if nested.Line != 14 {
		t.Errorf("nested block line = %d, want 14", nested.Line)
	}

	empty := blocks[2]
	if empty.Source != "" || empty.Index != 2 {
		t.Errorf("empty block = %+v", empty)
	}
	if empty.Line != 18 {
		t.Errorf("empty block line = %d, want 18", empty.Line)
	}
}

func TestBlocks_None(t *testing.T) {
	if got := Blocks([]byte("just text\n\n    indented code\n")); len(got) != 0 {
		t.Errorf("Blocks() = %+v, want none", got)
	}
}
