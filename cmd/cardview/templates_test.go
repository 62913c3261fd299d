package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/cardview/internal/output"
	"github.com/gorewood/cardview/internal/template"
)

func TestTemplates(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "templates", "compact.json"),
		`{"description": "My compact", "cardStyle": {"width": "120px"}}`)
	vaultDir := filepath.Join(t.TempDir(), "Notes")
	writeFile(t, filepath.Join(vaultDir, ".cardview", "templates", "shelf.json"),
		`{"description": "Bookshelf", "horizontalScroll": true}`)

	out, _, err := execute(t, "", "--json", "--vault", vaultDir, "templates", "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	var infos []template.Info
	if err := json.Unmarshal([]byte(out), &infos); err != nil {
		t.Fatal(err)
	}
	byName := make(map[string]template.Info)
	for _, info := range infos {
		byName[info.Name] = info
	}
	if got := byName["shelf"]; got.Source != template.SourceVault {
		t.Errorf("shelf = %+v", got)
	}
	if got := byName["compact"]; got.Source != template.SourceGlobal || got.Overrides != template.SourceBuiltin {
		t.Errorf("compact = %+v", got)
	}

	out, _, err = execute(t, "", "templates", "list")
	if err != nil || !strings.Contains(out, "global (overrides built-in)") {
		t.Errorf("human list = %q, %v", out, err)
	}

	out, _, err = execute(t, "", "--json", "templates", "show", "compact")
	if err != nil {
		t.Fatal(err)
	}
	var shown templateJSON
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatal(err)
	}
	if shown.Description != "My compact" || !strings.Contains(out, `"width": "120px"`) {
		t.Errorf("show = %s", out)
	}

	_, stderr, err := execute(t, "", "templates", "show", "missing")
	if output.GetExitCode(err) != output.ExitUserError || !strings.Contains(stderr, "template not found: missing") {
		t.Errorf("show missing = %q, %v", stderr, err)
	}
}

func TestConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.yaml"), "logging:\n  level: normal\nrender:\n  format: html\n")

	out, _, err := execute(t, "", "config", "show", "--vault", "/notes")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"vault: /notes", "level: normal", "format: html", "backend: file"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}

	out, _, err = execute(t, "", "--json", "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	var paths map[string]string
	if err := json.Unmarshal([]byte(out), &paths); err != nil {
		t.Fatal(err)
	}
	if paths["config"] != filepath.Join(dir, "config.yaml") || paths["templates"] != filepath.Join(dir, "templates") {
		t.Errorf("paths = %v", paths)
	}

	writeFile(t, filepath.Join(dir, "config.yaml"), "colour: red\n")
	if _, _, err := execute(t, "", "config", "show"); output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("unknown config key should be a user error, got %v", err)
	}
}
