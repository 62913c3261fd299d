package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/cardview/internal/export"
	"github.com/gorewood/cardview/internal/output"
	"github.com/gorewood/cardview/internal/render"
)

type renderFlags struct {
	format string
	block  int
	width  int
}

func newRenderCmd() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <file.md|->",
		Short: "Render the cardview blocks of a note",
		Long: `Render every cardview block of a markdown note.

Input that contains no cardview fence is rendered as a single block, so a
bare JSON array can be piped in.

Examples:
  cardview render notes/reading.md                  # Cards as terminal boxes
  cardview render notes/reading.md --format html    # Standalone HTML page
  cardview render notes/reading.md --block 2        # Only the second block
  echo '[{"content":{"title":{"text":"Hi"}}}]' | cardview render -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: term, html or json (default from config)")
	cmd.Flags().IntVar(&flags.block, "block", 0, "Render only the Nth cardview block (1-based)")
	cmd.Flags().IntVar(&flags.width, "width", 0, "Terminal width in cells (default: detected)")
	return cmd
}

func runRender(cmd *cobra.Command, name string, flags renderFlags) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	format := strings.ToLower(flags.format)
	if format == "" {
		format = a.cfg.Render.Format
	}
	if a.printer.IsJSON() {
		format = "json"
	}
	if format != "term" && format != "html" && format != "json" {
		err := output.NewUserError(fmt.Sprintf("invalid --format %q: must be term, html or json", flags.format))
		a.printer.Error(err)
		return err
	}

	results, err := loadResults(cmd, a, name, flags.block)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		a.printer.Warn("no cardview blocks in %s", name)
		return nil
	}

	switch format {
	case "json":
		if err := a.printer.WriteJSON(toJSON(results)); err != nil {
			return err
		}
	case "html":
		pages := make([]render.Page, 0, len(results))
		for _, r := range results {
			pages = append(pages, r.Page())
		}
		if err := render.HTMLDocument(a.printer.Writer(), documentTitle(name), pages); err != nil {
			return output.NewSystemErrorWithCause("writing html", err)
		}
	default:
		writeTerminal(a, results, a.terminalWidth(flags.width, cmd.OutOrStdout()))
	}

	return reportFailures(a.printer, results)
}

// loadResults reads and resolves the input, narrowed to --block.
func loadResults(cmd *cobra.Command, a *app, name string, block int) ([]export.Result, error) {
	data, err := readInput(cmd, name)
	if err != nil {
		a.printer.Error(err)
		return nil, err
	}
	results, err := resolveInput(cmd.Context(), a.resolver(), data)
	if err != nil {
		err = output.NewSystemErrorWithCause("resolving blocks", err)
		a.printer.Error(err)
		return nil, err
	}
	results, err = selectBlock(results, block)
	if err != nil {
		a.printer.Error(err)
		return nil, err
	}
	return results, nil
}

func writeTerminal(a *app, results []export.Result, width int) {
	opts := render.TerminalOptions{Width: width, Color: a.printer.Color()}
	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				a.printer.Println()
			}
			title := fmt.Sprintf("Block %d · line %d", r.Block.Index+1, r.Block.Line)
			if r.View != nil && r.View.Template != "" {
				title += " · " + r.View.Template
			}
			a.printer.Muted(title)
		}
		if r.Err != nil {
			a.printer.Println(render.TerminalError(r.Err, opts.Color))
			continue
		}
		a.printer.Println(render.TerminalString(r.View, opts))
	}
}

// reportFailures turns blocks that rendered their error state into the
// render exit code.
func reportFailures(printer *output.Printer, results []export.Result) error {
	failed := export.Failed(results)
	if failed == 0 {
		return nil
	}
	err := output.NewRenderError(failed, len(results))
	if !printer.IsJSON() {
		printer.Error(err)
	}
	return err
}

func documentTitle(name string) string {
	if name == "-" {
		return "cardview"
	}
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}
