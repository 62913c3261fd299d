package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/cardview/internal/config"
	"github.com/gorewood/cardview/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigPathCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the configuration after flags are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			cfg, err := loadConfig(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}
			if printer.IsJSON() {
				return printer.WriteJSON(cfg)
			}
			data, err := config.Dump(cfg)
			if err != nil {
				err = output.NewSystemErrorWithCause("rendering configuration", err)
				printer.Error(err)
				return err
			}
			printer.Print("%s", data)
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cardview keeps its files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			cfg, err := loadConfig(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}
			file := persistentFlag(cmd, "config")
			if file == "" {
				file = config.File()
			}
			paths := map[string]any{
				"config":    file,
				"templates": config.TemplatesDir(),
				"settings":  cfg.SettingsPath(),
				"backend":   cfg.Settings.Backend,
			}
			if printer.IsJSON() {
				return printer.WriteJSON(paths)
			}
			printer.KeyValue("Config", file)
			printer.KeyValue("Templates", config.TemplatesDir())
			printer.KeyValue("Settings", cfg.SettingsPath()+" ("+cfg.Settings.Backend+")")
			return nil
		},
	}
}
