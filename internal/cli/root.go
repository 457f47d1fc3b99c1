package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"todolist/internal/config"
	"todolist/internal/logging"
	"todolist/internal/storage"
	"todolist/internal/theme"
	"todolist/internal/todo"
	"todolist/internal/ui"
)

type App struct {
	Config     config.Config
	ConfigPath string
	Logger     *log.Logger
	DB         *storage.Store
	Store      *todo.Store
	ThemeKey   string

	logCloser io.Closer
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "A small todo list for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			notices := ui.NewNotices()
			app, err := initApp(cmd, notices)
			if err != nil {
				return err
			}
			defer app.Close()
			return startTUI(cmd.Context(), app, notices)
		},
	}
	cmd.PersistentFlags().String("config", "", "Path to config.toml (defaults to $XDG_CONFIG_HOME/todolist/config.toml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newDoneCmd())
	cmd.AddCommand(newEditCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newThemeCmd())
	cmd.AddCommand(newResetCmd())

	return cmd
}

// initApp loads the configuration and opens the logger, the database and
// the task store. notifier receives the store's transient messages.
func initApp(cmd *cobra.Command, notifier todo.Notifier) (*App, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, logCloser, err := logging.Open(logging.Options{
		Path:    cfg.LogPath,
		Level:   cfg.LogLevel,
		Verbose: verbose,
	})
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("opened database", "path", cfg.DBPath, "config", cfgPath)

	store := todo.NewStore(db, todo.Options{
		Key:          cfg.StorageKey,
		PersistEmpty: cfg.PersistEmpty,
		Sort:         todo.ParseSortPolicy(cfg.Sort),
		Logger:       logger,
		Notifier:     notifier,
	})
	return &App{
		Config:     cfg,
		ConfigPath: cfgPath,
		Logger:     logger,
		DB:         db,
		Store:      store,
		ThemeKey:   cfg.StorageKey + "Theme",
		logCloser:  logCloser,
	}, nil
}

func (a *App) Close() error {
	return errors.Join(a.DB.Close(), a.logCloser.Close())
}

// Theme returns the stored theme, falling back to the configured one.
func (a *App) Theme(ctx context.Context) theme.Theme {
	t, err := theme.Restore(ctx, a.DB, a.ThemeKey, theme.ParseMode(a.Config.Theme))
	if err != nil {
		a.Logger.Error("Error loading theme", "err", err)
	}
	return t
}

func startTUI(ctx context.Context, app *App, notices *ui.Notices) error {
	return ui.Run(ui.Deps{
		Store:     app.Store,
		Config:    app.Config,
		Theme:     app.Theme(ctx),
		ThemeSlot: app.DB,
		ThemeKey:  app.ThemeKey,
		Logger:    app.Logger,
		Notices:   notices,
		Now:       time.Now,
	})
}

// printer sends store notifications straight to the command's output.
func printer(cmd *cobra.Command) todo.Notifier {
	out := cmd.OutOrStdout()
	return todo.NotifierFunc(func(msg string) {
		fmt.Fprintln(out, msg)
	})
}
