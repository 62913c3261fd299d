package main

import (
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	var block int

	cmd := &cobra.Command{
		Use:   "resolve <file.md|->",
		Short: "Print the fully resolved cards of a note as JSON",
		Long: `Print every cardview block of a note with each card's style fully
resolved: defaults, global settings, template and inline values merged.

Malformed blocks carry an "error" field instead of a "view".

Examples:
  cardview resolve notes/reading.md
  cardview resolve notes/reading.md --block 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			results, err := loadResults(cmd, a, args[0], block)
			if err != nil {
				return err
			}
			if err := a.printer.WriteJSON(toJSON(results)); err != nil {
				return err
			}
			return reportFailures(a.printer, results)
		},
	}

	cmd.Flags().IntVar(&block, "block", 0, "Resolve only the Nth cardview block (1-based)")
	return cmd
}
