package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/projectboard/internal/board"
	"github.com/existflow/projectboard/internal/logger"
	"github.com/existflow/projectboard/internal/model"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneSidebar Pane = iota
	PaneTaskList
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeAddProject
	ModeEditTask
	ModeComment
	ModeRenameProject
	ModeMembers
	ModeDeadline
	ModeAssign
	ModeConfirmDelete
	ModeHelp
)

// isInput reports whether the mode reads a line of text
func (m Mode) isInput() bool {
	switch m {
	case ModeAddTask, ModeAddProject, ModeEditTask, ModeComment,
		ModeRenameProject, ModeMembers, ModeDeadline, ModeAssign:
		return true
	}
	return false
}

// Model is the main TUI model
type Model struct {
	board *board.Board
	log   *logger.Logger
	now   func() time.Time

	projects []model.Project
	tasks    []model.Task // tasks of the current project passing the filter

	// UI state
	width      int
	height     int
	pane       Pane
	mode       Mode
	projCursor int
	taskCursor int
	filter     model.Status // empty shows every status

	// Input
	input textinput.Model
	bar   progress.Model

	message string
}

// NewModel creates a TUI model over b
func NewModel(b *board.Board, log *logger.Logger) Model {
	log = log.WithFields(logger.F("component", "tui"))
	log.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "Enter task..."
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		board: b,
		log:   log,
		now:   time.Now,
		pane:  PaneSidebar,
		mode:  ModeNormal,
		input: ti,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(sidebarWidth-6), progress.WithoutPercentage()),
	}

	m.loadData()
	log.Debug("TUI model initialized",
		logger.F("projects", len(m.projects)),
		logger.F("tasks", len(m.tasks)))
	return m
}

// loadData refreshes the view from the board and keeps cursors in range
func (m *Model) loadData() {
	m.projects = m.board.Projects()
	if m.projCursor >= len(m.projects) {
		m.projCursor = len(m.projects) - 1
	}
	if m.projCursor < 0 {
		m.projCursor = 0
	}

	m.tasks = nil
	if p := m.currentProject(); p != nil {
		if m.filter == "" {
			m.tasks = p.Tasks
		} else {
			m.tasks = p.TasksWithStatus(m.filter)
		}
	}
	if m.taskCursor >= len(m.tasks) {
		m.taskCursor = len(m.tasks) - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}

func (m *Model) currentProject() *model.Project {
	if m.projCursor < len(m.projects) {
		return &m.projects[m.projCursor]
	}
	return nil
}

func (m *Model) currentTask() *model.Task {
	if m.taskCursor < len(m.tasks) {
		return &m.tasks[m.taskCursor]
	}
	return nil
}
