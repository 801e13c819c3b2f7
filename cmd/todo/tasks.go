package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"todoapp/pkg/task"
	"todoapp/pkg/tasklist"
)

const timeLayout = "2006-01-02 15:04"

func (a *app) listCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := tasklist.ParseFilter(filter)
			if err != nil {
				return err
			}
			return a.runList(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", string(tasklist.All), "all, active or completed")
	return cmd
}

func (a *app) runList(cmd *cobra.Command, f tasklist.Filter) error {
	id, err := a.protect()
	if err != nil {
		return err
	}
	if _, err := a.tasks.List(cmd.Context(), id.UserID); err != nil {
		return a.fail(err, "Failed to load tasks")
	}
	a.render(f)
	return nil
}

func (a *app) addCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.protect()
			if err != nil {
				return err
			}

			if _, err := a.tasks.Create(cmd.Context(), id.UserID, args[0], description); err != nil {
				return a.fail(err, "Failed to create task")
			}
			fmt.Fprintln(a.out, "Task created successfully!")

			return a.runList(cmd, tasklist.All)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Optional description")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.protect()
			if err != nil {
				return err
			}

			t, err := a.tasks.Get(cmd.Context(), id.UserID, args[0])
			if err != nil {
				return a.fail(err, "Failed to load task")
			}
			a.renderTask(t)
			return nil
		},
	}
}

func (a *app) editCmd() *cobra.Command {
	var (
		title, description string
		completed          bool
	)

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Change a task's title, description or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.protect()
			if err != nil {
				return err
			}

			var titleArg, descArg *string
			var doneArg *bool
			if cmd.Flags().Changed("title") {
				titleArg = &title
			}
			if cmd.Flags().Changed("description") {
				descArg = &description
			}
			if cmd.Flags().Changed("completed") {
				doneArg = &completed
			}

			patch, err := task.NewPatch(titleArg, descArg, doneArg)
			if err != nil {
				return a.fail(err, "Failed to update task")
			}
			if patch.Empty() {
				return errors.New("nothing to change: pass --title, --description or --completed")
			}

			t, err := a.tasks.Update(cmd.Context(), id.UserID, args[0], patch)
			if err != nil {
				return a.fail(err, "Failed to update task")
			}
			fmt.Fprintln(a.out, "Task updated successfully!")
			a.renderTask(t)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().BoolVar(&completed, "completed", false, "Mark completed (true) or active (false)")
	return cmd
}

func (a *app) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task-id>",
		Short: "Flip a task between active and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.protect()
			if err != nil {
				return err
			}

			if err := a.tasks.ToggleComplete(cmd.Context(), id.UserID, args[0]); err != nil {
				return a.fail(err, "Failed to update task")
			}
			return a.runList(cmd, tasklist.All)
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.protect()
			if err != nil {
				return err
			}
			if _, err := a.tasks.List(cmd.Context(), id.UserID); err != nil {
				return a.fail(err, "Failed to load tasks")
			}

			confirm := tasklist.ConfirmFunc(a.confirm)
			if yes {
				confirm = func(string) bool { return true }
			}

			err = a.tasks.Delete(cmd.Context(), id.UserID, args[0], confirm)
			switch {
			case errors.Is(err, tasklist.ErrCancelled):
				fmt.Fprintln(a.out, "Cancelled.")
				return nil
			case err != nil:
				reported := a.fail(err, "Failed to delete task")
				if errors.Is(reported, errReported) {
					a.render(tasklist.All)
				}
				return reported
			}

			return a.runList(cmd, tasklist.All)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func (a *app) render(f tasklist.Filter) {
	counts := a.tasks.Counts()
	fmt.Fprintf(a.out, "All (%d)  Active (%d)  Completed (%d)\n", counts.All, counts.Active, counts.Completed)

	tasks := a.tasks.Filter(f)
	if len(tasks) == 0 {
		if f == tasklist.All {
			fmt.Fprintln(a.out, "No tasks yet. Add one with `todo add <title>`.")
		} else {
			fmt.Fprintf(a.out, "No %s tasks.\n", f)
		}
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", checkbox(t), t.ID, t.Title)
	}
	_ = tw.Flush()
}

func (a *app) renderTask(t task.Task) {
	status := "Active"
	if t.Completed {
		status = "Completed"
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", t.Title)
	if t.Description != nil {
		fmt.Fprintf(tw, "Description:\t%s\n", *t.Description)
	}
	fmt.Fprintf(tw, "Status:\t%s\n", status)
	fmt.Fprintf(tw, "Created:\t%s\n", t.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(tw, "Updated:\t%s\n", t.UpdatedAt.Local().Format(timeLayout))
	_ = tw.Flush()
}

func checkbox(t task.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}
