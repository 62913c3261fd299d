// Package vault is the host storage that cardview reads templates, images
// and linked notes from.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// ErrNotFound is returned when a vault path does not name a file.
var ErrNotFound = errors.New("file not found in vault")

// ErrOutsideVault is returned for paths that escape the vault root.
var ErrOutsideVault = errors.New("path escapes the vault")

// Vault is the storage a note-taking host exposes to cardview.
// Paths are slash-separated and relative to the vault root.
type Vault interface {
	// Name is the vault's display name, used in note URIs.
	Name() string
	// Read returns the content of the file at p.
	Read(ctx context.Context, p string) ([]byte, error)
	// Exists reports whether p names a regular file.
	Exists(p string) bool
	// ResourcePath maps p to a URL the renderer can load the file from.
	ResourcePath(p string) (string, error)
	// List returns the file names directly inside dir, sorted.
	List(dir string) ([]string, error)
}

// Dir is a Vault backed by a directory on disk.
type Dir struct {
	root string
	name string
}

// NewDir opens the directory at root as a vault. The vault name is the
// directory's base name.
func NewDir(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving vault root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening vault %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening vault %s: not a directory", abs)
	}
	return &Dir{root: abs, name: filepath.Base(abs)}, nil
}

// Root returns the absolute vault directory.
func (d *Dir) Root() string {
	return d.root
}

// Name implements Vault.
func (d *Dir) Name() string {
	return d.name
}

// Read implements Vault.
func (d *Dir) Read(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := d.resolve(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	return data, nil
}

// Exists implements Vault.
func (d *Dir) Exists(p string) bool {
	full, err := d.resolve(p)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && info.Mode().IsRegular()
}

// ResourcePath implements Vault. Resources are addressed as
// app://local/<absolute path>, the scheme desktop note hosts serve vault
// files under.
func (d *Dir) ResourcePath(p string) (string, error) {
	if !d.Exists(p) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	full, err := d.resolve(p)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "app", Host: "local", Path: filepath.ToSlash(full)}
	return u.String(), nil
}

// List implements Vault. A missing directory lists as empty.
func (d *Dir) List(dir string) ([]string, error) {
	full, err := d.resolve(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)
	return names, nil
}

// resolve maps a vault path to an absolute file path inside the root.
func (d *Dir) resolve(p string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %s", ErrOutsideVault, p)
	}
	return filepath.Join(d.root, filepath.FromSlash(clean)), nil
}

// NoteURI returns the URI that opens the note at p in the named vault.
func NoteURI(vaultName, p string) string {
	return "obsidian://open?vault=" + escapeComponent(vaultName) + "&file=" + escapeComponent(p)
}

// escapeComponent percent-encodes s for a query value, spaces as %20.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
