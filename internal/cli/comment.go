package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCommentCmd(a *app) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "comment [task-id] [text]",
		Short: "Add a comment to a task",
		Long: `Append a comment to a task's thread.

Examples:
  board comment 5e1f9a2b "Need to add colors"`,
		Args: cobra.MinimumNArgs(2),
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

			ok, err := b.AddComment(cmd.Context(), p.ID, t.ID, joinArgs(args[1:]))
			if err != nil {
				return fmt.Errorf("failed to save comment: %w", err)
			}
			if !ok {
				return fmt.Errorf("comment must not be empty")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "💬 Commented on %q (%d comments)\n", t.Text, len(t.Comments)+1)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "P", "", "Project of the task")
	return cmd
}
