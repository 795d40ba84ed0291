package cli

import (
	"fmt"

	"github.com/existflow/projectboard/internal/model"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		project  string
		due      string
		status   string
		assignee string
	)

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a new task",
		Long: `Add a new task to a project.

Without --project the task goes to the current context (see 'board context').
An assignee must be a member of the project; anyone else is ignored.

Examples:
  board add "Design landing page" -P Website
  board add "Fix login" -P Website --due 2025-05-01 --assign Al
  board add "Write docs" -s in-progress`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := model.TaskInput{Text: joinArgs(args), AssignedTo: assignee}

			if due != "" {
				d, err := model.ParseDate(due)
				if err != nil {
					return err
				}
				in.Deadline = &d
			}
			if status != "" {
				st, err := model.ParseStatus(status)
				if err != nil {
					return err
				}
				in.Status = st
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

			id, ok, err := b.AddTask(cmd.Context(), p.ID, in)
			if err != nil {
				return fmt.Errorf("failed to save task: %w", err)
			}
			if !ok {
				return fmt.Errorf("task text must not be empty")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Added to [%s]: %q (id: %s)\n", p.Name, in.Text, id.Short())
			warnNonMember(out, p, assignee)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "P", "", "Project to add the task to")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Status (new, in-progress, done)")
	cmd.Flags().StringVarP(&assignee, "assign", "a", "", "Member to assign")
	return cmd
}
