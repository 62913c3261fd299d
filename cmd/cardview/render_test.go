package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/cardview/internal/output"
)

const note = "# Books\n\n" +
	"```cardview\n" +
	`{"template": "compact", "cards": [{"content": {"title": {"text": "Dune"}, "link": "Books/Dune.md"}, "image": {"src": "covers/dune.png"}}]}` +
	"\n```\n\n" +
	"```cardview\n[{\"content\": {\"title\": {\"text\": \"Emma\"}}}]\n```\n"

func TestRender_JSON(t *testing.T) {
	isolate(t)
	vaultDir := filepath.Join(t.TempDir(), "Library")
	writeFile(t, filepath.Join(vaultDir, "covers", "dune.png"), "png")
	file := writeFile(t, filepath.Join(vaultDir, "Books.md"), note)

	out, _, err := execute(t, "", "--vault", vaultDir, "render", file, "--format", "json")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}

	var blocks []blockJSON
	if err := json.Unmarshal([]byte(out), &blocks); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}

	first := blocks[0]
	if first.Block != 1 || first.Line != 4 || first.View.Template != "compact" {
		t.Errorf("first block = %+v", first)
	}
	c := first.View.Cards[0]
	if !strings.HasPrefix(c.Image.Src, "app://local/") {
		t.Errorf("image src = %q, want resource URL", c.Image.Src)
	}
	if c.Content.Link != "obsidian://open?vault=Library&file=Books%2FDune.md" {
		t.Errorf("link = %q", c.Content.Link)
	}
	if blocks[1].View.Cards[0].Content.Title.Text != "Emma" {
		t.Errorf("second block = %+v", blocks[1])
	}
}

func TestRender_Terminal(t *testing.T) {
	isolate(t)
	file := writeFile(t, filepath.Join(t.TempDir(), "Books.md"), note)

	out, _, err := execute(t, "", "render", file, "--width", "60")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	for _, want := range []string{"Block 1 · line 4 · compact", "Dune", "Block 2 · line 8", "Emma"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, _, err = execute(t, "", "render", file, "--block", "2")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "Dune") || !strings.Contains(out, "Emma") {
		t.Errorf("--block 2 output:\n%s", out)
	}
}

func TestRender_HTML(t *testing.T) {
	isolate(t)
	file := writeFile(t, filepath.Join(t.TempDir(), "Books.md"), note)

	out, _, err := execute(t, "", "render", file, "--format", "html")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(out, "<title>Books</title>") || strings.Count(out, `class="cardview"`) != 2 {
		t.Errorf("html output:\n%s", out)
	}
}

func TestRender_Stdin(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, `[{"content": {"title": {"text": "Piped"}}}]`, "--json", "render", "-")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	var blocks []blockJSON
	if err := json.Unmarshal([]byte(out), &blocks); err != nil || len(blocks) != 1 {
		t.Fatalf("output = %s (%v)", out, err)
	}
	if blocks[0].View.Cards[0].Content.Title.Text != "Piped" {
		t.Errorf("block = %+v", blocks[0])
	}
}

func TestRender_FailedBlock(t *testing.T) {
	isolate(t)
	file := writeFile(t, filepath.Join(t.TempDir(), "Bad.md"),
		"```cardview\n[{\"content\": {\"title\": {\"text\": \"Fine\"}}}]\n```\n\n```cardview\n[\"nope\"]\n```\n")

	out, stderr, err := execute(t, "", "render", file)
	if output.GetExitCode(err) != output.ExitRenderError {
		t.Fatalf("exit code = %d, want %d", output.GetExitCode(err), output.ExitRenderError)
	}
	if !strings.Contains(out, "Fine") {
		t.Errorf("good block should still render:\n%s", out)
	}
	if !strings.Contains(out, "Failed to render cards. Please check your syntax. Error: card at index 0 is not an object") {
		t.Errorf("error state missing:\n%s", out)
	}
	if !strings.Contains(stderr, "1 of 2 blocks failed to render") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRender_Errors(t *testing.T) {
	isolate(t)
	file := writeFile(t, filepath.Join(t.TempDir(), "Books.md"), note)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "none.md")}, output.ExitUserError},
		{"bad format", []string{"render", file, "--format", "pdf"}, output.ExitUserError},
		{"block out of range", []string{"render", file, "--block", "3"}, output.ExitUserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			if got := output.GetExitCode(err); got != tt.code {
				t.Errorf("exit code = %d, want %d (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	isolate(t)
	file := writeFile(t, filepath.Join(t.TempDir(), "Books.md"), note)

	out, _, err := execute(t, "", "resolve", file, "--block", "1")
	if err != nil {
		t.Fatalf("resolve error = %v", err)
	}
	var blocks []blockJSON
	if err := json.Unmarshal([]byte(out), &blocks); err != nil || len(blocks) != 1 {
		t.Fatalf("output = %s (%v)", out, err)
	}
	if blocks[0].View.Cards[0].Style.Width == nil {
		t.Error("resolved card should carry every style field")
	}
}
