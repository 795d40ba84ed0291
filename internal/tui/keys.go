package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Tab      key.Binding
	Enter    key.Binding
	Add      key.Binding
	Project  key.Binding
	Edit     key.Binding
	Comment  key.Binding
	Done     key.Binding
	Status   key.Binding
	Filter   key.Binding
	Delete   key.Binding
	Rename   key.Binding
	Members  key.Binding
	Deadline key.Binding
	Assign   key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
	Confirm  key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "projects")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "tasks")),
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select/toggle")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Project:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "new project")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Comment:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
	Done:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "done")),
	Status:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
	Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "del")),
	Rename:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename project")),
	Members:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "members")),
	Deadline: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "deadline")),
	Assign:   key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "assign")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Confirm:  key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
}

// shortHelp lists the bindings shown in the status bar
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Comment, k.Done, k.Status, k.Filter, k.Delete, k.Help, k.Quit}
}
