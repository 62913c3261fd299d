package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/cardview/internal/card"
	"github.com/gorewood/cardview/internal/export"
	"github.com/gorewood/cardview/internal/markdown"
	"github.com/gorewood/cardview/internal/output"
)

// readInput reads the named file, or stdin for "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, output.NewSystemErrorWithCause("reading stdin", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, output.NewUserError("file not found: " + name)
		}
		return nil, output.NewSystemErrorWithCause("reading "+name, err)
	}
	return data, nil
}

// resolveInput resolves the cardview blocks of a markdown document. Input
// without any cardview fence is taken as the body of a single block.
func resolveInput(ctx context.Context, r *card.Resolver, data []byte) ([]export.Result, error) {
	if len(markdown.Blocks(data)) == 0 && looksLikeBlock(data) {
		view, err := r.Resolve(ctx, string(data))
		return []export.Result{{Block: markdown.Block{Line: 1, Source: string(data)}, View: view, Err: err}}, nil
	}
	return export.ResolveDocument(ctx, r, data)
}

func looksLikeBlock(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && (data[0] == '[' || data[0] == '{')
}

// selectBlock narrows results to the 1-based block n; 0 keeps every block.
func selectBlock(results []export.Result, n int) ([]export.Result, error) {
	if n == 0 {
		return results, nil
	}
	if n < 0 || n > len(results) {
		return nil, output.NewUserError(fmt.Sprintf("--block %d out of range: document has %d cardview blocks", n, len(results)))
	}
	return results[n-1 : n], nil
}

// blockJSON is the JSON form of one resolved block.
type blockJSON struct {
	Block int        `json:"block"`
	Line  int        `json:"line"`
	View  *card.View `json:"view,omitempty"`
	Error string     `json:"error,omitempty"`
}

func toJSON(results []export.Result) []blockJSON {
	out := make([]blockJSON, 0, len(results))
	for _, r := range results {
		b := blockJSON{Block: r.Block.Index + 1, Line: r.Block.Line, View: r.View}
		if r.Err != nil {
			b.Error = r.Err.Error()
		}
		out = append(out, b)
	}
	return out
}
