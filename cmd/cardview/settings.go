package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/cardview/internal/output"
	"github.com/gorewood/cardview/internal/settings"
	"github.com/gorewood/cardview/internal/style"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change global card settings",
		Long: `View and change the global settings tier.

Global settings sit between the built-in defaults and templates: a value set
here applies to every card unless a template or the card itself sets it.
Fields are addressed by dotted path, for example cardStyle.cornerRadius.topLeft.`,
	}
	cmd.AddCommand(newSettingsShowCmd(), newSettingsGetCmd(), newSettingsSetCmd(),
		newSettingsUnsetCmd(), newSettingsResetCmd())
	return cmd
}

// settingJSON is the JSON form of one setting.
type settingJSON struct {
	Path    string `json:"path"`
	Label   string `json:"label"`
	Value   any    `json:"value"`
	UserSet bool   `json:"user_set"`
}

func getSetting(m *settings.Manager, path string) (settingJSON, error) {
	value, userSet, err := m.Get(path)
	if err != nil {
		return settingJSON{}, settingError(err)
	}
	return settingJSON{Path: path, Label: settings.Label(path), Value: value, UserSet: userSet}, nil
}

// settingError maps settings failures to exit codes: bad paths and values
// are the user's, anything else is the store's.
func settingError(err error) error {
	var fieldErr *style.FieldError
	switch {
	case errors.Is(err, style.ErrUnknownField):
		return output.NewUserErrorWithCause("unknown setting", err)
	case errors.As(err, &fieldErr):
		return output.NewUserErrorWithCause("invalid value", err)
	}
	return output.NewSystemErrorWithCause("saving settings", err)
}

func newSettingsShowCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List settings you have changed, or every setting with --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			paths := a.settings.Overrides()
			if all {
				paths = style.Paths(style.Default())
			}
			rows := make([]settingJSON, 0, len(paths))
			for _, p := range paths {
				s, err := getSetting(a.settings, p)
				if err != nil {
					a.printer.Error(err)
					return err
				}
				rows = append(rows, s)
			}

			if a.printer.IsJSON() {
				return a.printer.WriteJSON(rows)
			}
			if len(rows) == 0 {
				a.printer.Muted("No settings changed; every card uses the built-in defaults.")
				return nil
			}
			table := make([][]string, 0, len(rows))
			for _, s := range rows {
				source := "default"
				if s.UserSet {
					source = "set"
				}
				table = append(table, []string{s.Label, s.Path, fmt.Sprint(s.Value), source})
			}
			a.printer.Table([]string{"SETTING", "PATH", "VALUE", "SOURCE"}, table)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include settings left at their default")
	return cmd
}

func newSettingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Print the effective value of one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := getSetting(a.settings, args[0])
			if err != nil {
				a.printer.Error(err)
				return err
			}
			if a.printer.IsJSON() {
				return a.printer.WriteJSON(s)
			}
			a.printer.Println(fmt.Sprint(s.Value))
			return nil
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Change one setting",
		Long: `Change one setting. The value is checked before it is saved.

Examples:
  cardview settings set cardStyle.width 240px
  cardview settings set cardStyle.resizable false
  cardview settings set contentStyle.title.color "#333333"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.settings.Set(cmd.Context(), args[0], args[1]); err != nil {
				err = settingError(err)
				a.printer.Error(err)
				return err
			}
			return printChange(a, args[0], "Set %s to %v")
		},
	}
}

func newSettingsUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <path>",
		Short: "Return one setting to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.settings.Unset(cmd.Context(), args[0]); err != nil {
				err = settingError(err)
				a.printer.Error(err)
				return err
			}
			return printChange(a, args[0], "Reset %s to the default %v")
		},
	}
}

func printChange(a *app, path, format string) error {
	s, err := getSetting(a.settings, path)
	if err != nil {
		a.printer.Error(err)
		return err
	}
	if a.printer.IsJSON() {
		return a.printer.WriteJSON(s)
	}
	return a.printer.Success(map[string]any{"message": fmt.Sprintf(format, s.Label, s.Value)})
}

func newSettingsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Return every setting to its default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			n := len(a.settings.Overrides())
			if err := a.settings.Reset(cmd.Context()); err != nil {
				err = settingError(err)
				a.printer.Error(err)
				return err
			}
			return a.printer.Success(map[string]any{
				"message": fmt.Sprintf("Reset %d %s", n, plural(n, "setting", "settings")),
				"reset":   n,
			})
		},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
