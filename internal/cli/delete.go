package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	var (
		project string
		force   bool
	)

	cmd := &cobra.Command{
		Use:     "delete [task-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Long: `Delete a task by its ID or the short ID shown by list.

Examples:
  board delete 5e1f9a2b
  board rm 9a2b -P Website`,
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

			if a.cfg.ConfirmDelete && !force {
				question := fmt.Sprintf("About to delete: %q (ID: %s). Are you sure?", t.Text, t.ID)
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), question) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if _, err := b.DeleteTask(cmd.Context(), p.ID, t.ID); err != nil {
				return fmt.Errorf("failed to delete task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted: %q\n", t.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "P", "", "Project of the task")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	return cmd
}
