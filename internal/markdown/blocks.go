// Package markdown finds cardview blocks in markdown documents.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Language is the fenced code block info string that marks a cardview block.
const Language = "cardview"

// Block is one cardview block of a document.
type Block struct {
	// Index is the block's position among the document's cardview blocks.
	Index int
	// Line is the 1-based line of the block's first content line.
	Line int
	// Source is the block body without the fence.
	Source string
}

// Blocks returns every cardview block of source in document order.
func Blocks(source []byte) []Block {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var blocks []Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if !isCardview(fence.Language(source)) {
			return ast.WalkSkipChildren, nil
		}

		var body strings.Builder
		lines := fence.Lines()
		for i := range lines.Len() {
			seg := lines.At(i)
			body.Write(seg.Value(source))
		}
		line := 0
		if lines.Len() > 0 {
			line = 1 + bytes.Count(source[:lines.At(0).Start], []byte("\n"))
		} else if fence.Info != nil {
			line = 2 + bytes.Count(source[:fence.Info.Segment.Start], []byte("\n"))
		}
		blocks = append(blocks, Block{Index: len(blocks), Line: line, Source: body.String()})
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

func isCardview(lang []byte) bool {
	return strings.EqualFold(string(lang), Language)
}
