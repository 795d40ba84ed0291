package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 26

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sidebar := m.renderSidebar()
	taskList := m.renderTaskList()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, taskList)

	switch {
	case m.mode.isInput():
		mainContent = m.place(m.renderModal())
	case m.mode == ModeConfirmDelete:
		mainContent = m.place(m.renderConfirm())
	case m.mode == ModeHelp:
		mainContent = m.place(m.renderHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

// place centers a modal over the main area
func (m Model) place(modal string) string {
	return lipgloss.Place(
		m.width, m.height-2,
		lipgloss.Center, lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (m Model) renderSidebar() string {
	var s strings.Builder

	s.WriteString(HeaderStyle.Render("Projects") + "\n")
	s.WriteString(HelpStyle.Render(m.now().Format("Mon Jan 2 15:04")) + "\n")
	s.WriteString(lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", sidebarWidth-4)) + "\n\n")

	if len(m.projects) == 0 {
		s.WriteString(HelpStyle.Render("No projects.\nPress 'p' to add one.") + "\n")
	}

	for i, p := range m.projects {
		cursor := "  "
		style := ProjectItemStyle
		if i == m.projCursor {
			cursor = "❯ "
			if m.pane == PaneSidebar {
				style = ProjectItemSelectedStyle
			}
		}

		done, total := p.Counts()
		line := fmt.Sprintf("%s%-*s %d/%d", cursor, sidebarWidth-12, truncate(p.Name, sidebarWidth-12), done, total)
		s.WriteString(style.Render(line) + "\n")
		s.WriteString("  " + m.bar.ViewAs(p.Progress()/100) + "\n")
	}

	s.WriteString("\n" + lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", sidebarWidth-4)) + "\n")
	s.WriteString(HelpStyle.Render("p new r rename m members"))

	return SidebarStyle.Width(sidebarWidth).Height(m.height - 2).Render(s.String())
}

func (m Model) renderTaskList() string {
	width := m.width - sidebarWidth - 2
	var s strings.Builder

	proj := m.currentProject()
	if proj == nil {
		return TaskListStyle.Width(width).Height(m.height - 2).Render("No project selected")
	}

	done, total := proj.Counts()
	header := fmt.Sprintf("%s  %.0f%% (%d/%d)", proj.Name, proj.Progress(), done, total)
	if m.filter != "" {
		header += "  " + HelpStyle.Render("filter: "+string(m.filter))
	}
	s.WriteString(HeaderStyle.Render(header) + "\n")
	if len(proj.Members) > 0 {
		s.WriteString(HelpStyle.Render("Members: "+strings.Join(proj.Members, ", ")) + "\n")
	}
	s.WriteString(lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", max(width-4, 1))) + "\n\n")

	if len(m.tasks) == 0 {
		if m.filter != "" {
			s.WriteString(HelpStyle.Render("  No tasks with this status. Press 'f' to change the filter."))
		} else {
			s.WriteString(HelpStyle.Render("  No tasks. Press 'a' to add one."))
		}
	}

	textWidth := max(width-56, 10)
	for i, t := range m.tasks {
		cursor := "  "
		style := TaskItemStyle
		if i == m.taskCursor && m.pane == PaneTaskList {
			cursor = "❯ "
			style = TaskItemSelectedStyle
		}
		if t.IsDone() {
			style = TaskDoneStyle
		}

		due := ""
		if t.Deadline != nil {
			due = t.Deadline.String()
			if t.IsOverdue(m.now()) {
				due = OverdueStyle.Render(due)
			}
		}
		who := ""
		if t.AssignedTo != nil {
			who = "@" + *t.AssignedTo
		}
		notes := ""
		if n := len(t.Comments); n > 0 {
			notes = fmt.Sprintf(" 💬%d", n)
		}

		check := style.Render(cursor + statusIcon(t.Status))
		desc := style.Render(fmt.Sprintf(" %-*s ", textWidth, truncate(t.Text, textWidth)))
		s.WriteString(check + desc + FormatStatus(t.Status) + " " + due + " " + HelpStyle.Render(who+notes) + "\n")
	}

	if t := m.currentTask(); t != nil && m.pane == PaneTaskList && len(t.Comments) > 0 {
		s.WriteString("\n" + HeaderStyle.Render("Comments") + "\n")
		for _, c := range t.Comments {
			s.WriteString(HelpStyle.Render("  • "+truncate(c, max(width-8, 10))) + "\n")
		}
	}

	return TaskListStyle.Width(width).Height(m.height - 2).Render(s.String())
}

func (m Model) renderStatusBar() string {
	if m.message != "" {
		return StatusBarStyle.Width(m.width).Render(m.message)
	}

	parts := make([]string, 0, len(keys.shortHelp()))
	for _, b := range keys.shortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+":"+h.Desc)
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderModal() string {
	title := "Add Task"
	proj := m.currentProject()
	task := m.currentTask()

	switch m.mode {
	case ModeAddTask:
		if proj != nil {
			title = fmt.Sprintf("Add Task to: %s", proj.Name)
		}
	case ModeAddProject:
		title = "New Project"
	case ModeEditTask:
		title = "Edit Task"
	case ModeComment:
		if task != nil {
			title = fmt.Sprintf("Comment on: %s", truncate(task.Text, 30))
		}
	case ModeRenameProject:
		title = "Rename Project"
	case ModeMembers:
		title = "Members (comma separated)"
	case ModeDeadline:
		title = "Deadline"
	case ModeAssign:
		title = "Assign To"
		if proj != nil && len(proj.Members) > 0 {
			title += ": " + strings.Join(proj.Members, ", ")
		}
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += HelpStyle.Render("Enter:save  Esc:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderConfirm() string {
	what := ""
	if p := m.currentProject(); p != nil {
		what = fmt.Sprintf("project %q and its %d task(s)", p.Name, len(p.Tasks))
	}
	if t := m.currentTask(); t != nil && m.pane == PaneTaskList {
		what = fmt.Sprintf("task %q", truncate(t.Text, 40))
	}

	content := lipgloss.NewStyle().Bold(true).Foreground(OverdueColor).Render("Delete "+what+"?") + "\n\n"
	content += HelpStyle.Render("y:delete  any other key:cancel")
	return ModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	return `
╭─── Keyboard Shortcuts ───╮
│                          │
│  Navigation              │
│  ──────────              │
│  j/↓    Move down        │
│  k/↑    Move up          │
│  h/l    Switch pane      │
│  Tab    Switch pane      │
│  G      Go to bottom     │
│                          │
│  Tasks                   │
│  ─────                   │
│  a       Add task        │
│  e       Edit text       │
│  c       Comment         │
│  x/Enter Toggle done     │
│  s       Cycle status    │
│  t       Deadline        │
│  A       Assign          │
│  f       Status filter   │
│  d       Delete          │
│                          │
│  Projects                │
│  ────────                │
│  p       New project     │
│  r       Rename          │
│  m       Members         │
│  d       Delete          │
│                          │
│  ?       Toggle help     │
│  q       Quit            │
│                          │
╰──────────────────────────╯

     Press any key to close
`
}
