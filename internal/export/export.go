package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/gorewood/cardview/internal/card"
	"github.com/gorewood/cardview/internal/output"
	"github.com/gorewood/cardview/internal/render"
)

// Format is an export file format.
type Format string

// Export formats.
const (
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// ParseFormat checks a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatHTML, FormatJSON:
		return f, nil
	}
	return "", output.NewUserError(fmt.Sprintf("invalid format %q: must be html or json", s))
}

// File describes one written export file.
type File struct {
	Block int    `json:"block"`
	Line  int    `json:"line"`
	Path  string `json:"path"`
	Error string `json:"error,omitempty"`
}

// Options configures Export.
type Options struct {
	// Name is the document name; its slug prefixes every file.
	Name   string
	Dir    string
	Format Format
	Logger *zap.Logger
}

// Export resolves every block of source and writes one file per block to
// opts.Dir, creating it if needed.
func Export(ctx context.Context, r *card.Resolver, source []byte, opts Options) ([]File, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	results, err := ResolveDocument(ctx, r, source)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, output.NewSystemErrorWithCause("creating "+opts.Dir, err)
	}

	base := FileBase(opts.Name)
	files := make([]File, 0, len(results))
	for i, res := range results {
		var buf bytes.Buffer
		if err := encode(&buf, res, opts.Format, fmt.Sprintf("%s %d", opts.Name, i+1)); err != nil {
			return files, err
		}

		path := filepath.Join(opts.Dir, fmt.Sprintf("%s-%d.%s", base, i+1, opts.Format))
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return files, output.NewSystemErrorWithCause("writing "+path, err)
		}

		f := File{Block: i + 1, Line: res.Block.Line, Path: path}
		if res.Err != nil {
			f.Error = res.Err.Error()
			log.Warn("Block failed to render", zap.Int("block", i+1), zap.Int("line", res.Block.Line), zap.Error(res.Err))
		}
		log.Debug("Exported block", zap.String("path", path))
		files = append(files, f)
	}
	return files, nil
}

// FileBase is the file name prefix for a document: the slug of its base
// name without extension.
func FileBase(name string) string {
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if s := slug.Make(name); s != "" {
		return s
	}
	return "cards"
}

func encode(buf *bytes.Buffer, res Result, format Format, title string) error {
	switch format {
	case FormatJSON:
		return WriteJSON(buf, res)
	case FormatHTML:
		return render.HTMLDocument(buf, title, []render.Page{res.Page()})
	}
	return output.NewUserError(fmt.Sprintf("invalid format %q: must be html or json", format))
}
