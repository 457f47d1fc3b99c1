package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"todolist/internal/config"
	"todolist/internal/theme"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd, printer(cmd))
			if err != nil {
				return err
			}
			defer app.Close()

			current := app.Theme(cmd.Context())
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), current.Mode)
				return nil
			}
			next := current
			switch strings.ToLower(args[0]) {
			case "toggle":
				next = current.Toggled()
			case string(theme.Light):
				next = theme.New(theme.Light)
			case string(theme.Dark):
				next = theme.New(theme.Dark)
			default:
				return fmt.Errorf("unknown theme %q", args[0])
			}
			if err := theme.Persist(cmd.Context(), app.DB, app.ThemeKey, next); err != nil {
				return fmt.Errorf("save theme: %w", err)
			}
			// The config value is the fallback when the theme slot is gone,
			// for instance after the database is deleted.
			app.Config.Theme = string(next.Mode)
			if err := config.Save(app.ConfigPath, app.Config); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", next.Mode)
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove every stored todo; the example list returns on next start",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := confirm("Remove all todos?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled")
					return nil
				}
			}
			app, err := initApp(cmd, printer(cmd))
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.Store.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Storage cleared")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
