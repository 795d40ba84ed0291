package cli

import (
	"fmt"

	"github.com/existflow/projectboard/internal/model"
	"github.com/spf13/cobra"
)

func newDoneCmd(a *app) *cobra.Command {
	var (
		project string
		undo    bool
	)

	cmd := &cobra.Command{
		Use:   "done [task-id]",
		Short: "Mark a task as done",
		Long: `Mark a task as done, or back to new with --undo.

Examples:
  board done 5e1f9a2b
  board done 5e1f9a2b --undo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			status := model.StatusDone
			if undo {
				status = model.StatusNew
			}
			if _, err := b.SetStatus(cmd.Context(), p.ID, t.ID, status); err != nil {
				return fmt.Errorf("failed to update task: %w", err)
			}

			out := cmd.OutOrStdout()
			if undo {
				fmt.Fprintf(out, "○ Reopened: %q\n", t.Text)
			} else {
				fmt.Fprintf(out, "✓ Completed: %q\n", t.Text)
			}
			fmt.Fprintf(out, "  %s is %.1f%% done\n", p.Name, b.Progress(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "P", "", "Project of the task")
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark task as new again")
	return cmd
}
