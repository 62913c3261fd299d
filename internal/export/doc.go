// Package export resolves every cardview block of a markdown document and
// writes the results to files.
//
// Each block becomes one file in the output directory, named after the
// document and the block's position:
//
//	notes/Reading List.md  ->  out/reading-list-1.html
//	                           out/reading-list-2.html
//
// A block that fails to parse or validate still gets a file holding its
// error state, so the numbering always matches the document.
//
// # Formats
//
//   - html: a standalone page with the card container and its cards
//   - json: the resolved view, or {"error": "...", "line": N}
package export
