package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/cardview/internal/export"
	"github.com/gorewood/cardview/internal/output"
)

func newExportCmd() *cobra.Command {
	var formatFlag, outFlag string

	cmd := &cobra.Command{
		Use:   "export <file.md>",
		Short: "Write every cardview block of a note to files",
		Long: `Write every cardview block of a note to its own file.

Files are named after the note and the block's position, for example
reading-list-1.html. Blocks that fail to render are written with their
error state so the numbering matches the note.

Examples:
  cardview export notes/reading.md --out ./cards
  cardview export notes/reading.md --out ./cards --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], formatFlag, outFlag)
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "html", "File format: html or json")
	cmd.Flags().StringVar(&outFlag, "out", ".", "Output directory")
	return cmd
}

func runExport(cmd *cobra.Command, name, formatFlag, outFlag string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	format, err := export.ParseFormat(formatFlag)
	if err != nil {
		a.printer.Error(err)
		return err
	}
	data, err := readInput(cmd, name)
	if err != nil {
		a.printer.Error(err)
		return err
	}

	files, err := export.Export(cmd.Context(), a.resolver(), data, export.Options{
		Name:   name,
		Dir:    outFlag,
		Format: format,
		Logger: a.log,
	})
	if err != nil {
		a.printer.Error(err)
		return err
	}

	if a.printer.IsJSON() {
		if err := a.printer.WriteJSON(files); err != nil {
			return err
		}
	} else if len(files) == 0 {
		a.printer.Warn("no cardview blocks in %s", name)
	} else {
		rows := make([][]string, 0, len(files))
		for _, f := range files {
			status := "ok"
			if f.Error != "" {
				status = "error: " + f.Error
			}
			rows = append(rows, []string{strconv.Itoa(f.Block), strconv.Itoa(f.Line), f.Path, status})
		}
		a.printer.Table([]string{"BLOCK", "LINE", "FILE", "STATUS"}, rows)
	}

	failed := 0
	for _, f := range files {
		if f.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		err := output.NewRenderError(failed, len(files))
		if !a.printer.IsJSON() {
			a.printer.Error(err)
		}
		return err
	}
	return nil
}
