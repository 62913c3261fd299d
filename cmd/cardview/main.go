// Package main provides the entry point for the cardview CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/cardview/internal/output"
)

// Build info set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// persistentFlag reads a root persistent flag from anywhere in the command
// tree.
func persistentFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

func isJSONMode(cmd *cobra.Command) bool {
	return persistentFlag(cmd, "json") == "true"
}

// newPrinter returns the printer for cmd's output, honouring --json and
// --color.
func newPrinter(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	color := output.UseColor(persistentFlag(cmd, "color"), out)
	return output.NewPrinter(out, isJSONMode(cmd), color).WithStderr(cmd.ErrOrStderr())
}

func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cardview",
		Short: "Render cardview blocks from markdown notes",
		Long: `cardview renders the cardview code blocks of markdown notes as styled cards.

Every card field is resolved through four tiers, later tiers winning per field:
  - built-in defaults
  - global settings (cardview settings)
  - the block's template (a name or an inline object)
  - values written on the card itself

A malformed block renders a single error message instead of its cards.
All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := output.CheckColorMode(persistentFlag(cmd, "color")); err != nil {
				newPrinter(cmd).Error(err)
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				err := output.NewUserError("no command specified. Run 'cardview --help' for usage")
				newPrinter(cmd).Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.Bool("json", false, "Output in JSON format")
	flags.String("vault", "", "Vault directory for images, note links and templates (overrides config)")
	flags.String("config", "", "Configuration file (default: config.yaml in the cardview config directory)")
	flags.String("color", "auto", "Colour output: auto, always or never")
	flags.String("log-level", "", "Log level: none, normal or debug (overrides config)")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)
	return cmd
}

func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "cards", Title: "Card Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "config", Title: "Configuration Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newRenderCmd(), "cards")
	addGroupedCommand(cmd, newResolveCmd(), "cards")
	addGroupedCommand(cmd, newExportCmd(), "cards")

	addGroupedCommand(cmd, newSettingsCmd(), "config")
	addGroupedCommand(cmd, newTemplatesCmd(), "config")
	addGroupedCommand(cmd, newConfigCmd(), "config")

	addGroupedCommand(cmd, newServeCmd(), "agent")
}

func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
