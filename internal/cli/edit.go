package cli

import (
	"fmt"

	"github.com/existflow/projectboard/internal/model"
	"github.com/spf13/cobra"
)

func newEditCmd(a *app) *cobra.Command {
	var (
		project  string
		text     string
		due      string
		noDue    bool
		status   string
		assignee string
		unassign bool
	)

	cmd := &cobra.Command{
		Use:   "edit [task-id]",
		Short: "Change fields of a task",
		Long: `Change some fields of a task. Fields without a flag keep their value.

Examples:
  board edit 5e1f9a2b --status done
  board edit 5e1f9a2b --text "Redesign landing page" --due 2025-06-01
  board edit 5e1f9a2b --no-due --unassign`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.TaskPatch
			flags := cmd.Flags()

			if flags.Changed("text") {
				patch.Text = &text
			}
			if flags.Changed("due") {
				d, err := model.ParseDate(due)
				if err != nil {
					return err
				}
				patch.Deadline = &d
			}
			if noDue {
				patch.Deadline = &model.Date{}
			}
			if flags.Changed("status") {
				st, err := model.ParseStatus(status)
				if err != nil {
					return err
				}
				patch.Status = &st
			}
			if flags.Changed("assign") {
				patch.AssignedTo = &assignee
			}
			if unassign {
				none := ""
				patch.AssignedTo = &none
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to change: pass at least one of --text, --due, --no-due, --status, --assign, --unassign")
			}

			projectArg, err := a.projectArg(project)
			if err != nil {
				return err
			}

			b, err := a.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			p, err := resolveProject(b.Projects(), projectArg)
			if err != nil {
				return err
			}
			t, err := resolveTask(p, args[0])
			if err != nil {
				return err
			}

			ok, err := b.EditTask(cmd.Context(), p.ID, t.ID, patch)
			if err != nil {
				return fmt.Errorf("failed to save task: %w", err)
			}
			if !ok {
				return fmt.Errorf("task text must not be empty")
			}

			out := cmd.OutOrStdout()
			updated, _ := b.Project(p.ID)
			fmt.Fprintf(out, "✓ Updated: ")
			printTask(out, updated.Tasks[updated.FindTask(t.ID)])
			if flags.Changed("assign") {
				warnNonMember(out, p, assignee)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "P", "", "Project of the task")
	cmd.Flags().StringVar(&text, "text", "", "New task text")
	cmd.Flags().StringVarP(&due, "due", "d", "", "New deadline (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&noDue, "no-due", false, "Remove the deadline")
	cmd.Flags().StringVarP(&status, "status", "s", "", "New status (new, in-progress, done)")
	cmd.Flags().StringVarP(&assignee, "assign", "a", "", "Member to assign")
	cmd.Flags().BoolVar(&unassign, "unassign", false, "Remove the assignee")
	cmd.MarkFlagsMutuallyExclusive("due", "no-due")
	cmd.MarkFlagsMutuallyExclusive("assign", "unassign")
	return cmd
}
