// Package template finds named card templates.
//
// A reference resolves, in order, against the vault (the path as given, the
// path with .json appended, then .cardview/templates/<name>.json), the
// user's global templates directory, and the templates built into the
// binary. The first hit wins.
package template

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gorewood/cardview/internal/style"
	"github.com/gorewood/cardview/internal/vault"
)

// ErrNotFound is returned when no source has the named template.
var ErrNotFound = errors.New("template not found")

// Sources, from highest to lowest precedence.
const (
	SourceVault   = "vault"
	SourceGlobal  = "global"
	SourceBuiltin = "built-in"
)

// VaultDir is the vault-relative directory searched for named templates.
const VaultDir = ".cardview/templates"

const ext = ".json"

// Template is a loaded template file.
type Template struct {
	Name        string
	Description string
	// Source is one of the Source constants.
	Source string
	// Path locates the file within its source.
	Path  string
	Style *style.Template
}

// Info describes a template for listing.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	Overrides   string `json:"overrides,omitempty"`
}

// file is the on-disk form: a style tier plus optional metadata.
type file struct {
	Description string `json:"description,omitempty"`
	style.Template
}

// Loader resolves template references. A nil vault or an empty global
// directory skips that source.
type Loader struct {
	vault     vault.Vault
	globalDir string
}

// NewLoader returns a Loader searching v, then globalDir, then built-ins.
func NewLoader(v vault.Vault, globalDir string) *Loader {
	return &Loader{vault: v, globalDir: globalDir}
}

// Load finds and parses the template named by ref.
func (l *Loader) Load(ctx context.Context, ref string) (*Template, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrNotFound)
	}

	if l.vault != nil {
		for _, p := range vaultCandidates(ref) {
			if !l.vault.Exists(p) {
				continue
			}
			data, err := l.vault.Read(ctx, p)
			if err != nil {
				if errors.Is(err, vault.ErrNotFound) || errors.Is(err, vault.ErrOutsideVault) {
					continue
				}
				return nil, fmt.Errorf("reading template %s: %w", p, err)
			}
			return parseAs(data, ref, SourceVault, p)
		}
	}

	name, ok := plainName(ref)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}

	if l.globalDir != "" {
		p := filepath.Join(l.globalDir, name+ext)
		data, err := os.ReadFile(p)
		if err == nil {
			return parseAs(data, name, SourceGlobal, p)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading template %s: %w", p, err)
		}
	}

	if data, err := readBuiltin(name); err == nil {
		return parseAs(data, name, SourceBuiltin, "templates/"+name+ext)
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// List returns every named template, highest source first. A template that
// shadows one from a lower source carries that source in Overrides.
func (l *Loader) List() ([]Info, error) {
	type source struct {
		name  string
		infos []Info
	}
	var sources []source

	if l.vault != nil {
		names, err := l.vault.List(VaultDir)
		if err != nil {
			return nil, fmt.Errorf("listing vault templates: %w", err)
		}
		var infos []Info
		for _, n := range names {
			if !strings.HasSuffix(n, ext) {
				continue
			}
			data, err := l.vault.Read(context.Background(), path.Join(VaultDir, n))
			if err != nil {
				continue
			}
			infos = appendInfo(infos, n, data, SourceVault)
		}
		sources = append(sources, source{SourceVault, infos})
	}

	if l.globalDir != "" {
		infos, err := listDir(l.globalDir)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{SourceGlobal, infos})
	}
	sources = append(sources, source{SourceBuiltin, listBuiltins()})

	seen := make(map[string]int)
	var out []Info
	for _, src := range sources {
		for _, info := range src.infos {
			if i, ok := seen[info.Name]; ok {
				if out[i].Overrides == "" {
					out[i].Overrides = src.name
				}
				continue
			}
			seen[info.Name] = len(out)
			out = append(out, info)
		}
	}
	return out, nil
}

// Parse decodes a template file.
func Parse(data []byte) (*Template, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid template JSON: %w", err)
	}
	if err := style.Validate(&f.Template, ""); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	return &Template{Description: f.Description, Style: &f.Template}, nil
}

func parseAs(data []byte, name, source, p string) (*Template, error) {
	tmpl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("template %s (%s): %w", name, p, err)
	}
	tmpl.Name = name
	tmpl.Source = source
	tmpl.Path = p
	return tmpl, nil
}

// vaultCandidates lists the vault paths tried for ref.
func vaultCandidates(ref string) []string {
	candidates := []string{ref}
	if !strings.HasSuffix(ref, ext) {
		candidates = append(candidates, ref+ext)
	}
	if name, ok := plainName(ref); ok {
		candidates = append(candidates, path.Join(VaultDir, name+ext))
	}
	return candidates
}

// plainName reports the bare template name for references that are not
// paths.
func plainName(ref string) (string, bool) {
	if strings.ContainsAny(ref, `/\`) {
		return "", false
	}
	name := strings.TrimSuffix(ref, ext)
	return name, name != ""
}

func listDir(dir string) ([]Info, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		infos = appendInfo(infos, entry.Name(), data, SourceGlobal)
	}
	return infos, nil
}

// appendInfo adds the listing entry for one file, skipping unparsable ones.
func appendInfo(infos []Info, fileName string, data []byte, source string) []Info {
	tmpl, err := Parse(data)
	if err != nil {
		return infos
	}
	return append(infos, Info{
		Name:        strings.TrimSuffix(fileName, ext),
		Description: tmpl.Description,
		Source:      source,
	})
}
