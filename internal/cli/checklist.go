package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/existflow/projectboard/internal/checklist"
	"github.com/existflow/projectboard/internal/model"
	"github.com/spf13/cobra"
)

func newChecklistCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "checklist",
		Aliases: []string{"cl"},
		Short:   "Work with simple checklists",
		Long: `Checklists are projects without members whose tasks are either
completed or not. They are stored apart from the board.

Examples:
  board checklist project new "Groceries"
  board checklist add -P Groceries "Milk"
  board checklist toggle -P Groceries 5e1f9a2b
  board checklist list`,
	}

	cmd.AddCommand(newChecklistProjectCmd(a))
	cmd.AddCommand(newChecklistAddCmd(a))
	cmd.AddCommand(newChecklistEditCmd(a))
	cmd.AddCommand(newChecklistToggleCmd(a))
	cmd.AddCommand(newChecklistDeleteCmd(a))
	cmd.AddCommand(newChecklistListCmd(a))
	return cmd
}

func newChecklistProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage checklist projects",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "new [name]",
		Short: "Create a checklist project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openChecklist(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			name := joinArgs(args)
			id, ok, err := c.AddProject(cmd.Context(), name)
			if err != nil {
				return fmt.Errorf("failed to save project: %w", err)
			}
			if !ok {
				return fmt.Errorf("project name must not be empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created checklist %q (id: %s)\n", strings.TrimSpace(name), id.Short())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "edit [project] [name]",
		Short: "Rename a checklist project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openChecklist(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			p, err := resolveChecklistProject(c.Projects(), args[0])
			if err != nil {
				return err
			}
			ok, err := c.EditProject(cmd.Context(), p.ID, joinArgs(args[1:]))
			if err != nil {
				return fmt.Errorf("failed to save project: %w", err)
			}
			if !ok {
				return fmt.Errorf("project name must not be empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Renamed %q\n", p.Name)
			return nil
		},
	})

	var force bool
	del := &cobra.Command{
		Use:     "delete [project]",
		Aliases: []string{"rm"},
		Short:   "Delete a checklist project and its tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openChecklist(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			p, err := resolveChecklistProject(c.Projects(), args[0])
			if err != nil {
				return err
			}
			if a.cfg.ConfirmDelete && !force {
				question := fmt.Sprintf("Delete checklist %q with %d task(s)?", p.Name, len(p.Tasks))
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), question) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if _, err := c.DeleteProject(cmd.Context(), p.ID); err != nil {
				return fmt.Errorf("failed to delete project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted checklist %q\n", p.Name)
			return nil
		},
	}
	del.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	cmd.AddCommand(del)

	return cmd
}

// checklistTarget opens the checklist and resolves the project flag and task arg
func (a *app) checklistTarget(cmd *cobra.Command, project, taskArg string) (*checklist.Checklist, model.ChecklistProject, model.ChecklistTask, error) {
	c, err := a.openChecklist(cmd.Context())
	if err != nil {
		return nil, model.ChecklistProject{}, model.ChecklistTask{}, err
	}
	p, err := resolveChecklistProject(c.Projects(), project)
	if err != nil {
		_ = c.Close()
		return nil, model.ChecklistProject{}, model.ChecklistTask{}, err
	}
	t, err := resolveChecklistTask(p, taskArg)
	if err != nil {
		_ = c.Close()
		return nil, model.ChecklistProject{}, model.ChecklistTask{}, err
	}
	return c, p, t, nil
}

func newChecklistAddCmd(a *app) *cobra.Command {
	var project, due string

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a checklist task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := model.ChecklistInput{Text: joinArgs(args)}
			if due != "" {
				d, err := model.ParseDate(due)
				if err != nil {
					return err
				}
				in.Deadline = &d
			}

			c, err := a.openChecklist(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			p, err := resolveChecklistProject(c.Projects(), project)
			if err != nil {
				return err
			}
			id, ok, err := c.AddTask(cmd.Context(), p.ID, in)
			if err != nil {
				return fmt.Errorf("failed to save task: %w", err)
			}
			if !ok {
				return fmt.Errorf("task text must not be empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added to [%s]: %q (id: %s)\n", p.Name, in.Text, id.Short())
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "P", "", "Checklist project")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newChecklistEditCmd(a *app) *cobra.Command {
	var (
		project, text, due string
		noDue              bool
	)

	cmd := &cobra.Command{
		Use:   "edit [task-id]",
		Short: "Change a checklist task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.ChecklistPatch
			if cmd.Flags().Changed("text") {
				patch.Text = &text
			}
			if cmd.Flags().Changed("due") {
				d, err := model.ParseDate(due)
				if err != nil {
					return err
				}
				patch.Deadline = &d
			}
			if noDue {
				patch.Deadline = &model.Date{}
			}
			if patch.Text == nil && patch.Deadline == nil {
				return fmt.Errorf("nothing to change: pass --text, --due or --no-due")
			}

			c, p, t, err := a.checklistTarget(cmd, project, args[0])
			if err != nil {
				return err
			}
			defer c.Close()

			ok, err := c.EditTask(cmd.Context(), p.ID, t.ID, patch)
			if err != nil {
				return fmt.Errorf("failed to save task: %w", err)
			}
			if !ok {
				return fmt.Errorf("task text must not be empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated %s\n", t.ID.Short())
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "P", "", "Checklist project")
	cmd.Flags().StringVar(&text, "text", "", "New task text")
	cmd.Flags().StringVarP(&due, "due", "d", "", "New deadline (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&noDue, "no-due", false, "Remove the deadline")
	cmd.MarkFlagsMutuallyExclusive("due", "no-due")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newChecklistToggleCmd(a *app) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "toggle [task-id]",
		Short: "Flip a checklist task between open and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, p, t, err := a.checklistTarget(cmd, project, args[0])
			if err != nil {
				return err
			}
			defer c.Close()

			if _, err := c.ToggleTaskComplete(cmd.Context(), p.ID, t.ID); err != nil {
				return fmt.Errorf("failed to update task: %w", err)
			}
			state := "✓ Completed"
			if t.Completed {
				state = "○ Reopened"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %q (%.1f%% of %s)\n", state, t.Text, c.Progress(p.ID), p.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "P", "", "Checklist project")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newChecklistDeleteCmd(a *app) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:     "delete [task-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a checklist task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, p, t, err := a.checklistTarget(cmd, project, args[0])
			if err != nil {
				return err
			}
			defer c.Close()

			if _, err := c.DeleteTask(cmd.Context(), p.ID, t.ID); err != nil {
				return fmt.Errorf("failed to delete task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted: %q\n", t.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "P", "", "Checklist project")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newChecklistListCmd(a *app) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List checklists and their tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openChecklist(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			projects := c.Projects()
			if project != "" {
				p, err := resolveChecklistProject(projects, project)
				if err != nil {
					return err
				}
				projects = []model.ChecklistProject{p}
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No checklists yet. Create one with: board checklist project new \"Name\"")
				return nil
			}
			for _, p := range projects {
				printChecklist(out, p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "P", "", "Only this checklist")
	return cmd
}

func printChecklist(out io.Writer, p model.ChecklistProject) {
	done, total := p.Counts()
	fmt.Fprintf(out, "\n☑ %s  %s %.0f%% (%d/%d)\n", p.Name, progressBar(p.Progress(), 20), p.Progress(), done, total)
	fmt.Fprintln(out, strings.Repeat("─", 60))
	if len(p.Tasks) == 0 {
		fmt.Fprintln(out, "  (no tasks)")
		return
	}
	for _, t := range p.Tasks {
		icon := "[ ]"
		if t.Completed {
			icon = "[x]"
		}
		due := ""
		if t.Deadline != nil {
			due = t.Deadline.String()
		}
		fmt.Fprintf(out, "  %s  %-8s  %-36s  %s\n", icon, t.ID.Short(), truncate(t.Text, 36), due)
	}
}
