package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/cardview/internal/output"
)

// isolate points the configuration directory at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CARDVIEW_CONFIG_HOME", dir)
	t.Setenv("NO_COLOR", "1")
	return dir
}

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"
	defer func() { version = "dev" }()

	out, _, err := execute(t, "", "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "1.2.3") || !strings.Contains(out, "cardview") {
		t.Errorf("--version output = %q", out)
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, _, err := execute(t, "", "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"cardview", "Usage:", "--json", "--vault", "render", "settings", "serve"} {
		if !strings.Contains(out, want) {
			t.Errorf("--help output should contain %q", want)
		}
	}
}

func TestRootCommand_JSONWithoutCommand(t *testing.T) {
	out, _, err := execute(t, "", "--json")
	if output.GetExitCode(err) != output.ExitUserError {
		t.Fatalf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %q", out)
	}
	if !strings.Contains(result["error"].(string), "no command specified") {
		t.Errorf("error = %v", result["error"])
	}
}

func TestRootCommand_InvalidFlags(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"color", []string{"--color", "rainbow", "settings", "show"}, "invalid --color"},
		{"log level", []string{"--log-level", "loud", "settings", "show"}, "invalid --log-level"},
		{"vault", []string{"--vault", filepath.Join(t.TempDir(), "missing"), "settings", "show"}, "invalid vault"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execute(t, "", tt.args...)
			if output.GetExitCode(err) != output.ExitUserError {
				t.Errorf("exit code = %d, want %d (err %v)", output.GetExitCode(err), output.ExitUserError, err)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want %q", stderr, tt.want)
			}
		})
	}
}

func TestBuildVersion(t *testing.T) {
	version, commit, date = "1.0.0", "abcdef1234567", "2026-10-01"
	defer func() { version, commit, date = "dev", "none", "unknown" }()

	if got := buildVersion(); got != "1.0.0 (abcdef1, 2026-10-01)" {
		t.Errorf("buildVersion() = %q", got)
	}
}
