package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/projectboard/internal/logger"
	"github.com/existflow/projectboard/internal/model"
)

// tickMsg is sent every second for time updates
type tickMsg time.Time

// Init initializes the model with a tick command
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// Keeps the clock and overdue markers current
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.mode.isInput():
			return m.updateInput(msg)
		case m.mode == ModeConfirmDelete:
			return m.updateConfirm(msg)
		case m.mode == ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneSidebar {
			m.pane = PaneTaskList
		} else {
			m.pane = PaneSidebar
		}

	case key.Matches(msg, keys.Left):
		m.pane = PaneSidebar

	case key.Matches(msg, keys.Right):
		m.pane = PaneTaskList

	case key.Matches(msg, keys.Up):
		m.handleUp()

	case key.Matches(msg, keys.Down):
		m.handleDown()

	case msg.String() == "G":
		m.handleGoBottom()

	case key.Matches(msg, keys.Enter):
		if m.pane == PaneSidebar {
			m.pane = PaneTaskList
		} else {
			m.handleToggleDone()
		}

	case key.Matches(msg, keys.Add):
		if m.currentProject() == nil {
			m.message = "Create a project first (p)"
			return m, nil
		}
		return m.startInput(ModeAddTask, "Enter task...", "")

	case key.Matches(msg, keys.Project):
		return m.startInput(ModeAddProject, "Enter project name...", "")

	case key.Matches(msg, keys.Edit):
		if t := m.currentTask(); t != nil && m.pane == PaneTaskList {
			return m.startInput(ModeEditTask, "Edit task...", t.Text)
		}
		if p := m.currentProject(); p != nil && m.pane == PaneSidebar {
			return m.startInput(ModeRenameProject, "Project name...", p.Name)
		}

	case key.Matches(msg, keys.Rename):
		if p := m.currentProject(); p != nil {
			return m.startInput(ModeRenameProject, "Project name...", p.Name)
		}

	case key.Matches(msg, keys.Members):
		if p := m.currentProject(); p != nil {
			return m.startInput(ModeMembers, "Al, Mo, ...", strings.Join(p.Members, ", "))
		}

	case key.Matches(msg, keys.Comment):
		if m.currentTask() != nil && m.pane == PaneTaskList {
			return m.startInput(ModeComment, "Add a comment...", "")
		}

	case key.Matches(msg, keys.Deadline):
		if t := m.currentTask(); t != nil && m.pane == PaneTaskList {
			value := ""
			if t.Deadline != nil {
				value = t.Deadline.String()
			}
			return m.startInput(ModeDeadline, model.DateLayout+" (empty clears)", value)
		}

	case key.Matches(msg, keys.Assign):
		if t := m.currentTask(); t != nil && m.pane == PaneTaskList {
			return m.startInput(ModeAssign, "Member name (empty unassigns)", t.Assignee())
		}

	case key.Matches(msg, keys.Done):
		m.handleToggleDone()

	case key.Matches(msg, keys.Status):
		m.handleCycleStatus()

	case key.Matches(msg, keys.Filter):
		m.filter = nextFilter(m.filter)
		m.taskCursor = 0
		m.loadData()
		if m.filter == "" {
			m.message = "Showing all tasks"
		} else {
			m.message = fmt.Sprintf("Showing %s tasks", m.filter)
		}

	case key.Matches(msg, keys.Delete):
		if m.pane == PaneTaskList && m.currentTask() != nil {
			m.mode = ModeConfirmDelete
		} else if m.pane == PaneSidebar && m.currentProject() != nil {
			m.mode = ModeConfirmDelete
		}

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m *Model) handleUp() {
	if m.pane == PaneSidebar {
		if m.projCursor > 0 {
			m.projCursor--
			m.taskCursor = 0
			m.loadData()
		}
	} else if m.taskCursor > 0 {
		m.taskCursor--
	}
}

func (m *Model) handleDown() {
	if m.pane == PaneSidebar {
		if m.projCursor < len(m.projects)-1 {
			m.projCursor++
			m.taskCursor = 0
			m.loadData()
		}
	} else if m.taskCursor < len(m.tasks)-1 {
		m.taskCursor++
	}
}

func (m *Model) handleGoBottom() {
	if m.pane == PaneSidebar {
		m.projCursor = len(m.projects) - 1
		m.taskCursor = 0
	} else {
		m.taskCursor = len(m.tasks) - 1
	}
	m.loadData()
}

func (m Model) startInput(mode Mode, placeholder, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.Focus()
	m.input.CursorEnd()
	return m, textinput.Blink
}

func (m *Model) handleToggleDone() {
	p, t := m.currentProject(), m.currentTask()
	if m.pane != PaneTaskList || p == nil || t == nil {
		return
	}
	status := model.StatusDone
	if t.IsDone() {
		status = model.StatusNew
	}
	m.setStatus(p.ID, t.ID, status)
}

func (m *Model) handleCycleStatus() {
	p, t := m.currentProject(), m.currentTask()
	if m.pane != PaneTaskList || p == nil || t == nil {
		return
	}
	m.setStatus(p.ID, t.ID, t.Status.Next())
}

func (m *Model) setStatus(projectID, taskID model.ID, status model.Status) {
	if _, err := m.board.SetStatus(context.Background(), projectID, taskID, status); err != nil {
		m.fail("Error saving", err)
	} else {
		m.message = fmt.Sprintf("Status: %s", status)
	}
	m.loadData()
}

// fail logs err and shows it in the status bar
func (m *Model) fail(what string, err error) {
	m.log.Error(what, logger.F("error", err))
	m.message = fmt.Sprintf("%s: %v", what, err)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	if !key.Matches(msg, keys.Confirm) {
		m.message = "Cancelled"
		return m, nil
	}

	ctx := context.Background()
	p := m.currentProject()
	if p == nil {
		return m, nil
	}

	if m.pane == PaneTaskList {
		t := m.currentTask()
		if t == nil {
			return m, nil
		}
		if _, err := m.board.DeleteTask(ctx, p.ID, t.ID); err != nil {
			m.fail("Error deleting task", err)
		} else {
			m.message = fmt.Sprintf("Deleted: %s", t.Text)
		}
	} else {
		if _, err := m.board.DeleteProject(ctx, p.ID); err != nil {
			m.fail("Error deleting project", err)
		} else {
			m.message = fmt.Sprintf("Deleted project: %s", p.Name)
		}
		m.taskCursor = 0
	}

	m.loadData()
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.submit(m.input.Value())
		m.input.Blur()
		m.mode = ModeNormal
		m.loadData()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit applies the text entered in the current input mode
func (m *Model) submit(value string) {
	ctx := context.Background()
	p, t := m.currentProject(), m.currentTask()

	switch m.mode {
	case ModeDeadline, ModeAssign:
		// empty input clears the field
	default:
		if strings.TrimSpace(value) == "" {
			return
		}
	}
	if m.mode != ModeAddProject && p == nil {
		return
	}
	switch m.mode {
	case ModeEditTask, ModeComment, ModeDeadline, ModeAssign:
		if t == nil {
			return
		}
	}

	switch m.mode {
	case ModeAddProject:
		_, ok, err := m.board.AddProject(ctx, value, nil)
		switch {
		case err != nil:
			m.fail("Error creating project", err)
		case ok:
			m.message = fmt.Sprintf("Created project: %s", strings.TrimSpace(value))
			m.projCursor = len(m.board.Projects()) - 1
			m.taskCursor = 0
		}

	case ModeAddTask:
		_, ok, err := m.board.AddTask(ctx, p.ID, model.TaskInput{Text: value})
		switch {
		case err != nil:
			m.fail("Error adding task", err)
		case ok:
			m.message = fmt.Sprintf("Added: %s", value)
		}

	case ModeRenameProject:
		if _, err := m.board.EditProject(ctx, p.ID, value, p.Members); err != nil {
			m.fail("Error renaming project", err)
		} else {
			m.message = fmt.Sprintf("Renamed to: %s", strings.TrimSpace(value))
		}

	case ModeMembers:
		members := model.SplitMembers(value)
		if _, err := m.board.EditProject(ctx, p.ID, p.Name, members); err != nil {
			m.fail("Error saving members", err)
		} else {
			m.message = fmt.Sprintf("Members: %s", strings.Join(members, ", "))
		}

	case ModeEditTask:
		m.editTask(p.ID, t.ID, model.TaskPatch{Text: &value}, fmt.Sprintf("Updated: %s", value))

	case ModeComment:
		if _, err := m.board.AddComment(ctx, p.ID, t.ID, value); err != nil {
			m.fail("Error saving comment", err)
		} else {
			m.message = "Comment added"
		}

	case ModeDeadline:
		d := model.Date{}
		if strings.TrimSpace(value) != "" {
			parsed, err := model.ParseDate(value)
			if err != nil {
				m.message = fmt.Sprintf("Invalid date %q, want %s", value, model.DateLayout)
				return
			}
			d = parsed
		}
		m.editTask(p.ID, t.ID, model.TaskPatch{Deadline: &d}, "Deadline updated")

	case ModeAssign:
		name := strings.TrimSpace(value)
		if name != "" && !p.HasMember(name) {
			m.message = fmt.Sprintf("%s is not a member of %s", name, p.Name)
			return
		}
		m.editTask(p.ID, t.ID, model.TaskPatch{AssignedTo: &name}, "Assignee updated")
	}
}

func (m *Model) editTask(projectID, taskID model.ID, patch model.TaskPatch, done string) {
	if _, err := m.board.EditTask(context.Background(), projectID, taskID, patch); err != nil {
		m.fail("Error saving task", err)
		return
	}
	m.message = done
}
