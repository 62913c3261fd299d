package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/gorewood/cardview/internal/card"
	"github.com/gorewood/cardview/internal/config"
	"github.com/gorewood/cardview/internal/output"
	"github.com/gorewood/cardview/internal/settings"
	"github.com/gorewood/cardview/internal/template"
	"github.com/gorewood/cardview/internal/vault"
)

// app holds what a command needs after configuration is applied.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	printer   *output.Printer
	vault     vault.Vault
	templates *template.Loader
	settings  *settings.Manager
	closers   []io.Closer
}

// newApp loads configuration, applies the global flags over it and opens
// the vault and the settings store. Errors are reported on the printer.
func newApp(cmd *cobra.Command) (*app, error) {
	printer := newPrinter(cmd)
	a, err := openApp(cmd, printer)
	if err != nil {
		printer.Error(err)
		return nil, err
	}
	return a, nil
}

func openApp(cmd *cobra.Command, printer *output.Printer) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		log:     config.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()),
		printer: printer,
	}
	if cfg.Vault != "" {
		dir, err := vault.NewDir(cfg.Vault)
		if err != nil {
			return nil, output.NewUserErrorWithCause("invalid vault", err)
		}
		a.vault = dir
		a.log.Debug("Using vault", zap.String("root", dir.Root()))
	}
	a.templates = template.NewLoader(a.vault, config.TemplatesDir())

	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	a.settings = settings.NewManager(store, a.log)
	if err := a.settings.Load(cmd.Context()); err != nil {
		a.Close()
		return nil, output.NewSystemErrorWithCause("loading settings", err)
	}
	return a, nil
}

// loadConfig reads the configuration file and applies --vault and
// --log-level over it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(persistentFlag(cmd, "config"))
	if err != nil {
		return nil, output.NewUserErrorWithCause("loading configuration", err)
	}
	if v := persistentFlag(cmd, "vault"); v != "" {
		cfg.Vault = v
	}
	if level := persistentFlag(cmd, "log-level"); level != "" {
		if !slices.Contains([]string{config.LevelNone, config.LevelNormal, config.LevelDebug}, level) {
			return nil, output.NewUserError(fmt.Sprintf("invalid --log-level %q: must be none, normal or debug", level))
		}
		cfg.Logging.Level = level
	}
	return cfg, nil
}

func (a *app) openStore() (settings.Store, error) {
	path := a.cfg.SettingsPath()
	if path == "" {
		return nil, output.NewSystemError("cannot locate the configuration directory; set CARDVIEW_CONFIG_HOME or settings.path")
	}
	switch a.cfg.Settings.Backend {
	case config.BackendSQLite:
		store, err := settings.OpenSQLite(path)
		if err != nil {
			return nil, output.NewSystemErrorWithCause("opening settings database", err)
		}
		a.closers = append(a.closers, store)
		return store, nil
	default:
		return settings.NewFileStore(path), nil
	}
}

// resolver builds a card resolver over the current settings.
func (a *app) resolver() *card.Resolver {
	return card.NewResolver(card.Options{
		Vault:     a.vault,
		Templates: a.templates,
		Global:    a.settings.Global(),
		Logger:    a.log,
	})
}

// Close releases the settings store and flushes the logger.
func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Warn("Closing resource", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

// terminalWidth picks the width for terminal rendering: the flag, then the
// configuration, then the size of stdout, then 80 cells.
func (a *app) terminalWidth(flag int, w io.Writer) int {
	if flag > 0 {
		return flag
	}
	if a.cfg.Render.Width > 0 {
		return a.cfg.Render.Width
	}
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}
