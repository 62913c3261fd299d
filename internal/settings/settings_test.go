package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gorewood/cardview/internal/style"
)

// stores returns one fresh instance of every backend.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "settings.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return map[string]Store{
		"file":   NewFileStore(filepath.Join(t.TempDir(), "cfg")),
		"sqlite": db,
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			data, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("Load() on empty store error = %v", err)
			}
			if data != nil {
				t.Errorf("Load() on empty store = %q, want nil", data)
			}

			for _, want := range []string{`{"a":1}`, `{"b":2}`} {
				if err := store.Save(ctx, []byte(want)); err != nil {
					t.Fatalf("Save() error = %v", err)
				}
				got, err := store.Load(ctx)
				if err != nil {
					t.Fatalf("Load() error = %v", err)
				}
				if string(got) != want {
					t.Errorf("Load() = %q, want %q", got, want)
				}
			}
		})
	}
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Save(ctx, []byte(`{}`)); err == nil {
				t.Error("Save() with cancelled context expected error")
			}
		})
	}
}

func TestFileStore_Path(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	if err := s.Save(context.Background(), []byte("{}")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "data.json")); err != nil {
		t.Errorf("data.json not written: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only data.json", len(entries))
	}
}

func TestManager_SetGetUnset(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			m := NewManager(store, nil)
			if err := m.Load(ctx); err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			v, userSet, err := m.Get("cardStyle.height")
			if err != nil || v != "200px" || userSet {
				t.Errorf("Get() before Set = %v, %v, %v; want default", v, userSet, err)
			}

			if err := m.Set(ctx, "cardStyle.height", "320px"); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := m.Set(ctx, "cardStyle.resizable", "false"); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			// A second manager sees the saved values.
			other := NewManager(store, nil)
			if err := other.Load(ctx); err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			v, userSet, err = other.Get("cardStyle.height")
			if err != nil || v != "320px" || !userSet {
				t.Errorf("Get() after Set = %v, %v, %v", v, userSet, err)
			}
			if v, _, _ := other.Get("cardStyle.resizable"); v != false {
				t.Errorf("resizable = %v, want explicit false", v)
			}
			if diff := cmp.Diff([]string{"cardStyle.height", "cardStyle.resizable"}, other.Overrides()); diff != "" {
				t.Errorf("Overrides() mismatch (-want +got):\n%s", diff)
			}

			if err := other.Unset(ctx, "cardStyle.height"); err != nil {
				t.Fatalf("Unset() error = %v", err)
			}
			if v, userSet, _ := other.Get("cardStyle.height"); v != "200px" || userSet {
				t.Errorf("Get() after Unset = %v, %v; want default", v, userSet)
			}

			if err := other.Reset(ctx); err != nil {
				t.Fatalf("Reset() error = %v", err)
			}
			if len(other.Overrides()) != 0 {
				t.Errorf("Overrides() after Reset = %v", other.Overrides())
			}
		})
	}
}

func TestManager_SetRejects(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		raw     string
		unknown bool
	}{
		{name: "bad length", path: "cardStyle.height", raw: "tall"},
		{name: "bad enum", path: "imageStyle.fit", raw: "stretch"},
		{name: "bad bool", path: "horizontalScroll", raw: "sometimes"},
		{name: "unknown", path: "cardStyle.depth", raw: "1px", unknown: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewFileStore(t.TempDir())
			m := NewManager(store, nil)

			err := m.Set(context.Background(), tt.path, tt.raw)
			if err == nil {
				t.Fatal("Set() expected error")
			}
			if got := errors.Is(err, style.ErrUnknownField); got != tt.unknown {
				t.Errorf("errors.Is(ErrUnknownField) = %v, want %v", got, tt.unknown)
			}
			if len(m.Overrides()) != 0 {
				t.Errorf("rejected value was kept: %v", m.Overrides())
			}
			if data, _ := store.Load(context.Background()); data != nil {
				t.Errorf("rejected value was saved: %s", data)
			}
		})
	}
}

func TestManager_GetUnknown(t *testing.T) {
	m := NewManager(NewFileStore(t.TempDir()), nil)
	if _, _, err := m.Get("nope.field"); !errors.Is(err, style.ErrUnknownField) {
		t.Errorf("Get(unknown) error = %v", err)
	}
	if err := m.Unset(context.Background(), "nope"); !errors.Is(err, style.ErrUnknownField) {
		t.Errorf("Unset(unknown) error = %v", err)
	}
}

func TestManager_EffectiveIsComplete(t *testing.T) {
	m := NewManager(NewFileStore(t.TempDir()), nil)
	if err := m.Set(context.Background(), "contentStyle.title.color", "#123456"); err != nil {
		t.Fatal(err)
	}
	eff := m.Effective()
	if missing := style.Missing(&eff); len(missing) != 0 {
		t.Errorf("Effective() has unset fields: %v", missing)
	}
	if got := style.Deref(eff.ContentStyle.Title.Color); got != "#123456" {
		t.Errorf("title color = %q", got)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		check   func(t *testing.T, got *style.Template)
		wantErr string
	}{
		{
			name: "empty",
			data: "  ",
			check: func(t *testing.T, got *style.Template) {
				if len(setPaths(got)) != 0 {
					t.Errorf("empty blob set %v", setPaths(got))
				}
			},
		},
		{
			name: "legacy typography",
			data: `{"typography":{"title":{"color":"#111111","font":"Old"}},"contentStyle":{"title":{"font":"New"}}}`,
			check: func(t *testing.T, got *style.Template) {
				title := got.ContentStyle.Title
				if style.Deref(title.Color) != "#111111" || style.Deref(title.Font) != "New" {
					t.Errorf("title = %+v, want legacy colour with new font", title)
				}
			},
		},
		{
			name: "explicit false kept",
			data: `{"horizontalScroll":false}`,
			check: func(t *testing.T, got *style.Template) {
				if got.HorizontalScroll == nil || *got.HorizontalScroll {
					t.Error("horizontalScroll:false lost")
				}
			},
		},
		{name: "bad json", data: `{`, wantErr: "invalid settings JSON"},
		{name: "bad value", data: `{"cardStyle":{"width":"big"}}`, wantErr: "cardStyle.width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.data))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Decode() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestEncode_Sparse(t *testing.T) {
	data, err := Encode(&style.Template{CardStyle: &style.CardStyle{Width: style.Ptr("1px")}})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "height") || strings.Contains(string(data), "imageStyle") {
		t.Errorf("Encode() wrote unset fields: %s", data)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"cardStyle.cornerRadius.topLeft", "Card Style › Corner Radius › Top Left"},
		{"horizontalScroll", "Horizontal Scroll"},
		{"imageStyle.padding.paddingTop", "Image Style › Padding › Padding Top"},
	}
	for _, tt := range tests {
		if got := Label(tt.path); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
	if !slices.Contains(style.Paths(&style.Template{}), "contentStyle.links.fontSize") {
		t.Error("expected links fontSize path")
	}
}

func TestLabel_Concurrent(t *testing.T) {
	paths := style.Paths(&style.Template{})
	want := make([]string, len(paths))
	for i, p := range paths {
		want[i] = Label(p)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, p := range paths {
				if got := Label(p); got != want[i] {
					t.Errorf("Label(%q) = %q, want %q", p, got, want[i])
				}
			}
		}()
	}
	wg.Wait()
}

// brokenStore fails every save.
type brokenStore struct {
	saves int
}

func (s *brokenStore) Load(context.Context) ([]byte, error) { return nil, nil }

func (s *brokenStore) Save(context.Context, []byte) error {
	s.saves++
	return errors.New("disk full")
}

func TestManager_FailedSaveKeepsTier(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())
	m := NewManager(store, nil)
	if err := m.Set(ctx, "cardStyle.width", "240px"); err != nil {
		t.Fatal(err)
	}
	before := m.Global()

	broken := &brokenStore{}
	m.store = broken
	ops := map[string]func() error{
		"set":   func() error { return m.Set(ctx, "cardStyle.height", "90px") },
		"unset": func() error { return m.Unset(ctx, "cardStyle.width") },
		"reset": func() error { return m.Reset(ctx) },
	}
	for name, op := range ops {
		if err := op(); err == nil {
			t.Errorf("%s: expected error from failing store", name)
		}
		if diff := cmp.Diff(before, m.Global()); diff != "" {
			t.Errorf("%s changed the tier after a failed save (-want +got):\n%s", name, diff)
		}
	}
	if broken.saves != len(ops) {
		t.Errorf("saves = %d, want %d", broken.saves, len(ops))
	}
}
