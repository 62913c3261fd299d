package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/cardview/internal/config"
	"github.com/gorewood/cardview/internal/output"
	"github.com/gorewood/cardview/internal/template"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List and inspect card templates",
		Long: `List and inspect the templates a block can name with "template".

Templates are looked up in the vault (.cardview/templates/<name>.json or a
vault path), then in the global templates directory, then among the
templates built into cardview. The first match wins.`,
	}
	cmd.AddCommand(newTemplatesListCmd(), newTemplatesShowCmd())
	return cmd
}

func newTemplatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			infos, err := a.templates.List()
			if err != nil {
				err = output.NewSystemErrorWithCause("listing templates", err)
				a.printer.Error(err)
				return err
			}
			if a.printer.IsJSON() {
				if infos == nil {
					infos = []template.Info{}
				}
				return a.printer.WriteJSON(infos)
			}

			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				source := info.Source
				if info.Overrides != "" {
					source += " (overrides " + info.Overrides + ")"
				}
				rows = append(rows, []string{info.Name, source, info.Description})
			}
			a.printer.Table([]string{"NAME", "SOURCE", "DESCRIPTION"}, rows)
			if dir := config.TemplatesDir(); dir != "" {
				a.printer.Println()
				a.printer.Muted("Global templates: " + dir)
			}
			return nil
		},
	}
}

// templateJSON is the JSON form of a loaded template.
type templateJSON struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	Path        string `json:"path"`
	Style       any    `json:"style"`
}

func newTemplatesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print the style values a template sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.templates.Load(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, template.ErrNotFound) {
					err = output.NewUserError(fmt.Sprintf("template not found: %s", args[0]))
				} else {
					err = output.NewUserErrorWithCause("loading template", err)
				}
				a.printer.Error(err)
				return err
			}

			out := templateJSON{Name: t.Name, Description: t.Description, Source: t.Source, Path: t.Path, Style: t.Style}
			if a.printer.IsJSON() {
				return a.printer.WriteJSON(out)
			}
			a.printer.KeyValue("Name", t.Name)
			if t.Description != "" {
				a.printer.KeyValue("Description", t.Description)
			}
			a.printer.KeyValue("Source", t.Source)
			a.printer.KeyValue("Path", t.Path)
			a.printer.Section("Style")
			return a.printer.WriteJSON(t.Style)
		},
	}
}
