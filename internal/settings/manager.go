package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/gorewood/cardview/internal/style"
)

// blob is the stored form. typography is the key older releases used for
// contentStyle.
type blob struct {
	style.Template
	Typography *style.ContentStyle `json:"typography,omitempty"`
}

// Manager loads, edits and saves the global tier. Only fields the user set
// are kept, so the default tier keeps showing through everything else.
// A Manager is safe for concurrent use.
type Manager struct {
	store Store
	log   *zap.Logger

	mu     sync.Mutex
	global *style.Template
}

// NewManager returns a Manager over store with an empty global tier.
func NewManager(store Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, global: &style.Template{}, log: log}
}

// Load replaces the in-memory tier with the stored one. Nothing stored
// means no user overrides.
func (m *Manager) Load(ctx context.Context) error {
	data, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	global, err := Decode(data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.global = global
	m.log.Debug("Loaded settings", zap.Int("fields", len(setPaths(global))))
	return nil
}

// Save writes the in-memory tier to the store.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(ctx, m.global)
}

// save persists t. The caller holds m.mu.
func (m *Manager) save(ctx context.Context, t *style.Template) error {
	data, err := Encode(t)
	if err != nil {
		return err
	}
	return m.store.Save(ctx, data)
}

// Global returns a copy of the user's tier.
func (m *Manager) Global() *style.Template {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := style.Merge(m.global)
	return &g
}

// Effective returns the global tier merged over the built-in default.
func (m *Manager) Effective() style.Template {
	m.mu.Lock()
	defer m.mu.Unlock()
	return style.Merge(style.Default(), m.global)
}

// Get returns the effective value at path and whether the user set it.
func (m *Manager) Get(path string) (value any, userSet bool, err error) {
	eff := m.Effective()
	value, ok := style.Get(&eff, path)
	if !ok {
		if _, known := style.Get(style.Default(), path); !known {
			return nil, false, fmt.Errorf("%w: %s", style.ErrUnknownField, path)
		}
	}
	_, userSet = style.Get(m.Global(), path)
	return value, userSet, nil
}

// Set validates raw for the field at path, stores it and saves.
func (m *Manager) Set(ctx context.Context, path, raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := style.Merge(m.global)
	if err := style.Set(&next, path, raw); err != nil {
		return err
	}
	if err := style.Validate(&next, ""); err != nil {
		return err
	}
	if err := m.save(ctx, &next); err != nil {
		return err
	}
	m.global = &next
	m.log.Info("Setting changed", zap.String("path", path), zap.String("value", raw))
	return nil
}

// Unset removes the user's value at path and saves.
func (m *Manager) Unset(ctx context.Context, path string) error {
	if _, known := style.Get(style.Default(), path); !known {
		return fmt.Errorf("%w: %s", style.ErrUnknownField, path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	next := style.Merge(m.global)
	if err := style.Unset(&next, path); err != nil {
		return err
	}
	if err := m.save(ctx, &next); err != nil {
		return err
	}
	m.global = &next
	return nil
}

// Reset drops every user value and saves.
func (m *Manager) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := &style.Template{}
	if err := m.save(ctx, next); err != nil {
		return err
	}
	m.global = next
	m.log.Info("Settings reset")
	return nil
}

// Overrides lists the paths the user has set.
func (m *Manager) Overrides() []string {
	return setPaths(m.Global())
}

// Decode parses a stored blob. Empty data is an empty tier.
func Decode(data []byte) (*style.Template, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &style.Template{}, nil
	}
	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("invalid settings JSON: %w", err)
	}
	if b.Typography != nil {
		merged := style.Merge(b.Typography, b.ContentStyle)
		b.ContentStyle = &merged
	}
	if err := style.Validate(&b.Template, ""); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &b.Template, nil
}

// Encode renders a tier as a stored blob.
func Encode(t *style.Template) ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return append(data, '\n'), nil
}

// setPaths lists the set leaves of t.
func setPaths(t *style.Template) []string {
	var out []string
	for _, p := range style.Paths(t) {
		if _, ok := style.Get(t, p); ok {
			out = append(out, p)
		}
	}
	return out
}
