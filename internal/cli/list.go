package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/existflow/projectboard/internal/model"
	"github.com/spf13/cobra"
)

// now is the clock used for overdue markers; tests pin it
var now = time.Now

func newListCmd(a *app) *cobra.Command {
	var (
		project string
		status  string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks grouped by project, optionally for one project or one status.

Examples:
  board list
  board list --project Website
  board list --status in-progress`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, project, status)
		},
	}

	cmd.Flags().StringVarP(&project, "project", "P", "", "Only this project")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Only tasks with this status")
	return cmd
}

// runList prints the tasks of one project, or of all when project is empty
// and no context is set
func (a *app) runList(cmd *cobra.Command, project, status string) error {
	var filter model.Status
	if status != "" {
		st, err := model.ParseStatus(status)
		if err != nil {
			return err
		}
		filter = st
	}
	if project == "" {
		project = a.currentContext()
	}

	b, err := a.openBoard(cmd.Context())
	if err != nil {
		return err
	}
	defer b.Close()

	out := cmd.OutOrStdout()
	projects := b.Projects()
	if project != "" {
		p, err := resolveProject(projects, project)
		if err != nil {
			return err
		}
		projects = []model.Project{p}
	}

	if len(projects) == 0 {
		fmt.Fprintln(out, "No projects yet. Create one with: board project new \"Name\"")
		return nil
	}

	for _, p := range projects {
		tasks := p.Tasks
		if filter != "" {
			tasks = p.TasksWithStatus(filter)
		}
		printProject(out, p, tasks)
	}
	return nil
}

func printProject(out io.Writer, p model.Project, tasks []model.Task) {
	done, total := p.Counts()
	fmt.Fprintf(out, "\n📁 %s  %s %.0f%% (%d/%d)\n", p.Name, progressBar(p.Progress(), 20), p.Progress(), done, total)
	if len(p.Members) > 0 {
		fmt.Fprintf(out, "   members: %s\n", strings.Join(p.Members, ", "))
	}
	fmt.Fprintln(out, strings.Repeat("─", 72))

	if len(tasks) == 0 {
		fmt.Fprintln(out, "  (no tasks)")
		return
	}
	for _, t := range tasks {
		fmt.Fprint(out, "  ")
		printTask(out, t)
	}
}

func printTask(out io.Writer, t model.Task) {
	icon := "[ ]"
	switch t.Status {
	case model.StatusDone:
		icon = "[x]"
	case model.StatusInProgress:
		icon = "[~]"
	}

	due := ""
	if t.Deadline != nil {
		due = t.Deadline.String()
		if t.IsOverdue(now()) {
			due += " !"
		}
	}

	who := ""
	if t.AssignedTo != nil {
		who = "@" + *t.AssignedTo
	}

	notes := ""
	if n := len(t.Comments); n > 0 {
		notes = fmt.Sprintf("💬%d", n)
	}

	fmt.Fprintf(out, "%s  %-8s  %-36s  %-12s  %-10s %s\n", icon, t.ID.Short(), truncate(t.Text, 36), due, who, notes)
}
