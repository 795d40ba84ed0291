package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/projectboard/internal/model"
	"github.com/spf13/cobra"
)

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
		Long:    `Create, rename, list and delete projects and their members.`,
	}

	cmd.AddCommand(newProjectNewCmd(a))
	cmd.AddCommand(newProjectEditCmd(a))
	cmd.AddCommand(newProjectListCmd(a))
	cmd.AddCommand(newProjectDeleteCmd(a))
	return cmd
}

func newProjectNewCmd(a *app) *cobra.Command {
	var members string

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a new project",
		Long: `Create a new project.

Examples:
  board project new "Website"
  board project new "Website" --members "Al, Mo"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			name := joinArgs(args)
			id, ok, err := b.AddProject(cmd.Context(), name, model.SplitMembers(members))
			if err != nil {
				return fmt.Errorf("failed to save project: %w", err)
			}
			if !ok {
				return fmt.Errorf("project name must not be empty")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created project: %s (id: %s)\n", strings.TrimSpace(name), id.Short())
			return nil
		},
	}

	cmd.Flags().StringVarP(&members, "members", "m", "", "Comma-separated member names")
	return cmd
}

func newProjectEditCmd(a *app) *cobra.Command {
	var members string

	cmd := &cobra.Command{
		Use:   "edit [project-id] [name]",
		Short: "Rename a project and set its members",
		Long: `Rename a project. Members are replaced when --members is given,
otherwise the current members are kept.

Examples:
  board project edit 5e1f9a2b "Website v2"
  board project edit Website Website --members "Al, Mo, Jo"`,
		Args: cobra.MinimumNArgs(2),
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

			newMembers := p.Members
			if cmd.Flags().Changed("members") {
				newMembers = model.SplitMembers(members)
			}

			ok, err := b.EditProject(cmd.Context(), p.ID, joinArgs(args[1:]), newMembers)
			if err != nil {
				return fmt.Errorf("failed to save project: %w", err)
			}
			if !ok {
				return fmt.Errorf("project name must not be empty")
			}

			updated, _ := b.Project(p.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated project: %s\n", updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&members, "members", "m", "", "Comma-separated member names")
	return cmd
}

func newProjectListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all projects with their progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			out := cmd.OutOrStdout()
			projects := b.Projects()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects yet. Add one with: board project new \"Name\"")
				return nil
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "  %-10s  %-20s  %-7s  %s\n", "ID", "Name", "Done", "Progress")
			fmt.Fprintln(out, strings.Repeat("─", 64))

			totalOpen := 0
			for _, p := range projects {
				done, total := p.Counts()
				totalOpen += total - done
				fmt.Fprintf(out, "  %-10s  %-20s  %3d/%-3d  %s %5.1f%%\n",
					p.ID.Short(), truncate(p.Name, 20), done, total, progressBar(p.Progress(), 12), p.Progress())
			}

			fmt.Fprintln(out, strings.Repeat("─", 64))
			fmt.Fprintf(out, "  %d projects, %d open tasks\n\n", len(projects), totalOpen)
			return nil
		},
	}
}

func newProjectDeleteCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete [project-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a project with all its tasks and comments",
		Args:    cobra.ExactArgs(1),
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

			if a.cfg.ConfirmDelete && !force {
				question := fmt.Sprintf("Delete %q and its %d tasks?", p.Name, len(p.Tasks))
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), question) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if _, err := b.DeleteProject(cmd.Context(), p.ID); err != nil {
				return fmt.Errorf("failed to delete project: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted project: %s (%d tasks)\n", p.Name, len(p.Tasks))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	return cmd
}
