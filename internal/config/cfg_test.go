package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Setenv("CARDVIEW_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() of explicit missing file expected error")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    *Config
		wantErr string
	}{
		{
			name:    "empty file keeps defaults",
			content: "",
			want:    Default(),
		},
		{
			name: "overrides",
			content: `vault: /notes
settings:
  backend: sqlite
  path: /tmp/s.db
logging:
  level: debug
`,
			want: &Config{
				Vault:    "/notes",
				Settings: SettingsConfig{Backend: BackendSQLite, Path: "/tmp/s.db"},
				Logging:  LoggingConfig{Level: LevelDebug},
				Render:   RenderConfig{Format: "term"},
			},
		},
		{
			name:    "unknown field",
			content: "colour: red\n",
			wantErr: "field colour not found",
		},
		{
			name:    "bad backend",
			content: "settings:\n  backend: redis\n",
			wantErr: "unknown backend",
		},
		{
			name:    "bad level",
			content: "logging:\n  level: loud\n",
			wantErr: "unknown level",
		},
		{
			name:    "negative width",
			content: "render:\n  width: -1\n",
			wantErr: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, cfg); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSettingsPath(t *testing.T) {
	t.Setenv("CARDVIEW_CONFIG_HOME", "/cfg")

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"file default", Config{Settings: SettingsConfig{Backend: BackendFile}}, "/cfg"},
		{"sqlite default", Config{Settings: SettingsConfig{Backend: BackendSQLite}}, filepath.Join("/cfg", "settings.db")},
		{"explicit", Config{Settings: SettingsConfig{Backend: BackendSQLite, Path: "/x.db"}}, "/x.db"},
	}
	for _, tt := range tests {
		if got := tt.cfg.SettingsPath(); got != tt.want {
			t.Errorf("%s: SettingsPath() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDump_RoundTrip(t *testing.T) {
	data, err := Dump(Default())
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	cfg := Default()
	cfg.Logging.Level = LevelDebug
	if err := unmarshalConfig(data, cfg); err != nil {
		t.Fatalf("unmarshalConfig() error = %v", err)
	}
	if cfg.Logging.Level != LevelNone {
		t.Errorf("dumped level not restored: %q", cfg.Logging.Level)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level     string
		wantInfo  bool
		wantDebug bool
	}{
		{LevelNone, false, false},
		{LevelNormal, true, false},
		{LevelDebug, true, true},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewLogger(tt.level, &buf)
			log.Info("info-line")
			log.Debug("debug-line")
			_ = log.Sync()

			out := buf.String()
			if got := strings.Contains(out, "info-line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v: %q", got, tt.wantInfo, out)
			}
			if got := strings.Contains(out, "debug-line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v: %q", got, tt.wantDebug, out)
			}
		})
	}
}
