package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gorewood/cardview/internal/render"
)

// blockError is the JSON form of a block that failed to render.
type blockError struct {
	Error string `json:"error"`
	Line  int    `json:"line"`
}

// WriteJSON writes the resolved view of r, or its error state.
func WriteJSON(w io.Writer, r Result) error {
	if r.Err == nil {
		return r.View.WriteJSON(w)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(blockError{Error: render.ErrorState(r.Err), Line: r.Block.Line}); err != nil {
		return fmt.Errorf("encoding block error: %w", err)
	}
	return nil
}
