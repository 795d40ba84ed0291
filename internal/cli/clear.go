package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCmd(a *app) *cobra.Command {
	var (
		project string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the done tasks of a project",
		Long: `Remove every task marked done from a project.

Examples:
  board clear -P Website
  board clear --force`,
		Args: cobra.NoArgs,
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

			out := cmd.OutOrStdout()
			done, _ := p.Counts()
			if done == 0 {
				fmt.Fprintf(out, "Nothing to clear in %s\n", p.Name)
				return nil
			}

			if !force {
				question := fmt.Sprintf("Remove %d done task(s) from %s?", done, p.Name)
				if !confirm(cmd.InOrStdin(), out, question) {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			removed := 0
			for _, t := range p.Tasks {
				if !t.IsDone() {
					continue
				}
				ok, err := b.DeleteTask(cmd.Context(), p.ID, t.ID)
				if err != nil {
					return fmt.Errorf("failed to clear tasks: %w", err)
				}
				if ok {
					removed++
				}
			}

			fmt.Fprintf(out, "🧹 Removed %d done task(s) from %s\n", removed, p.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "P", "", "Project to clear")
	cmd.Flags().BoolVar(&force, "force", false, "Do not ask for confirmation")
	return cmd
}
