package export

import (
	"context"

	"github.com/gorewood/cardview/internal/card"
	"github.com/gorewood/cardview/internal/markdown"
	"github.com/gorewood/cardview/internal/render"
)

// Result is one resolved block of a document. Exactly one of View and Err
// is set.
type Result struct {
	Block markdown.Block
	View  *card.View
	Err   error
}

// Page returns the result as a page of an HTML document.
func (r Result) Page() render.Page {
	return render.Page{View: r.View, Err: r.Err}
}

// ResolveDocument resolves every cardview block in source, in document
// order. Blocks are independent: a malformed block does not affect the
// others.
func ResolveDocument(ctx context.Context, r *card.Resolver, source []byte) ([]Result, error) {
	blocks := markdown.Blocks(source)
	results := make([]Result, 0, len(blocks))
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		view, err := r.Resolve(ctx, b.Source)
		results = append(results, Result{Block: b, View: view, Err: err})
	}
	return results, nil
}

// Failed counts the results that rendered their error state.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
