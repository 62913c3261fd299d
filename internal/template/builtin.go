package template

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed templates/*.json
var builtinFS embed.FS

// readBuiltin returns the raw built-in template with the given name.
func readBuiltin(name string) ([]byte, error) {
	p := "templates/" + name + ext
	data, err := builtinFS.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading builtin template %s: %w", p, err)
	}
	return data, nil
}

// listBuiltins returns info for all built-in templates.
func listBuiltins() []Info {
	entries, err := builtinFS.ReadDir("templates")
	if err != nil {
		return nil
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		data, err := builtinFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			continue
		}
		infos = appendInfo(infos, entry.Name(), data, SourceBuiltin)
	}
	return infos
}
