package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newContextCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Manage the default project",
		Long: `Set or view the project task commands use when --project is not given.

Examples:
  board context              # Show current context
  board context ls           # List all projects
  board context set Website  # Switch to 'Website'
  board context clear        # Forget the context`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := a.currentContext()
			out := cmd.OutOrStdout()
			if current == "" {
				fmt.Fprintln(out, "📥 No context set")
				return nil
			}

			b, err := a.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			p, err := resolveProject(b.Projects(), current)
			if err != nil {
				fmt.Fprintf(out, "⚠️  Context set to '%s' but project not found\n", current)
				return nil
			}
			done, total := p.Counts()
			fmt.Fprintf(out, "📁 Current context: %s (%d/%d tasks)\n", p.Name, done, total)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			current := a.currentContext()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out)
			for _, p := range b.Projects() {
				marker := "  "
				if current != "" && string(p.ID) == current {
					marker = "❯ "
				}
				done, total := p.Counts()
				fmt.Fprintf(out, "%s%-8s  %-24s  %d/%d\n", marker, p.ID.Short(), truncate(p.Name, 24), done, total)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Use 'board context set <project>' to switch context")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [project]",
		Short: "Set the current project context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			p, err := resolveProject(b.Projects(), args[0])
			if err != nil {
				return err
			}

			if err := os.MkdirAll(a.cfg.DataDir(), 0755); err != nil {
				return fmt.Errorf("failed to set context: %w", err)
			}
			if err := os.WriteFile(a.contextFilePath(), []byte(p.ID), 0644); err != nil {
				return fmt.Errorf("failed to set context: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "📁 Switched to: %s\n", p.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the current context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.Remove(a.contextFilePath()); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to clear context: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "📥 Context cleared")
			return nil
		},
	})

	return cmd
}
