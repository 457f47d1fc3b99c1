package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"todolist/internal/todo"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show pending and completed todos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd, printer(cmd))
			if err != nil {
				return err
			}
			defer app.Close()
			items := app.Store.Load(cmd.Context())
			app.Logger.Debug("listing todos", "key", app.Store.Key(), "sort", app.Store.Policy(), "count", len(items))
			out := cmd.OutOrStdout()
			printSections(out, items, time.Now())

			saved, ok, err := app.DB.UpdatedAt(cmd.Context(), app.Store.Key())
			if err != nil {
				app.Logger.Error("Error reading save time", "key", app.Store.Key(), "err", err)
				return nil
			}
			if ok {
				fmt.Fprintf(out, "\nLast saved %s\n", saved.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	var date, clock string
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a todo, optionally scheduled with --date and --time",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return todo.ErrBlankTitle
			}
			d, c, err := parseSchedule(date, clock, time.Now())
			if err != nil {
				return err
			}
			app, err := initApp(cmd, printer(cmd))
			if err != nil {
				return err
			}
			defer app.Close()
			app.Store.Load(cmd.Context())
			t, err := app.Store.Create(cmd.Context(), title, d, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added todo %d: %s\n", t.ID, t.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Due date (YYYY-MM-DD, tomorrow, next friday)")
	cmd.Flags().StringVar(&clock, "time", "", "Due time (3:30 PM, 15:30, 9am)")
	return cmd
}

func newDoneCmd() *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "done [id]",
		Short: "Mark a todo as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := initApp(cmd, printer(cmd))
			if err != nil {
				return err
			}
			defer app.Close()
			app.Store.Load(cmd.Context())
			t, ok := app.Store.Get(id)
			if !ok {
				return fmt.Errorf("%w: %d", todo.ErrNotFound, id)
			}
			if t.Completed == !undo {
				fmt.Fprintf(cmd.OutOrStdout(), "Todo %d is already %s\n", id, doneLabel(t.Completed))
				return nil
			}
			app.Store.ToggleComplete(cmd.Context(), id)
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the todo as not done instead")
	return cmd
}

func doneLabel(completed bool) string {
	if completed {
		return "done"
	}
	return "not done"
}

func newEditCmd() *cobra.Command {
	var (
		title, date, clock string
		clearSchedule      bool
	)
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change the title or schedule of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("date") && !flags.Changed("time") && !clearSchedule {
				return errors.New("nothing to change: pass --title, --date/--time or --clear-schedule")
			}
			if clearSchedule && (flags.Changed("date") || flags.Changed("time")) {
				return errors.New("--clear-schedule cannot be combined with --date or --time")
			}

			app, err := initApp(cmd, printer(cmd))
			if err != nil {
				return err
			}
			defer app.Close()
			app.Store.Load(cmd.Context())
			t, ok := app.Store.Get(id)
			if !ok {
				return fmt.Errorf("%w: %d", todo.ErrNotFound, id)
			}

			if flags.Changed("title") {
				t.Title = title
			}
			switch {
			case clearSchedule:
				t.Date, t.Time = "", ""
			case flags.Changed("date") || flags.Changed("time"):
				d, c := t.Date, t.Time
				if flags.Changed("date") {
					d = date
				}
				if flags.Changed("time") {
					c = clock
				}
				t.Date, t.Time, err = parseSchedule(d, c, time.Now())
				if err != nil {
					return err
				}
			}
			return app.Store.Update(cmd.Context(), t)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&date, "date", "", "New due date")
	cmd.Flags().StringVar(&clock, "time", "", "New due time")
	cmd.Flags().BoolVar(&clearSchedule, "clear-schedule", false, "Remove the date and time")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"delete"},
		Short:   "Delete a todo after confirmation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := initApp(cmd, printer(cmd))
			if err != nil {
				return err
			}
			defer app.Close()
			app.Store.Load(cmd.Context())
			t, ok := app.Store.Get(id)
			if !ok {
				return fmt.Errorf("%w: %d", todo.ErrNotFound, id)
			}
			if !yes {
				ok, err := confirm(fmt.Sprintf("Delete %q?", t.Title))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Delete cancelled")
					return nil
				}
			}
			app.Store.Remove(cmd.Context(), id)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted todo %d: %s\n", t.ID, t.Title)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
