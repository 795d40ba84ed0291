package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status is the workflow state of a board task
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists every status in workflow order
var Statuses = []Status{StatusNew, StatusInProgress, StatusDone}

// legacyStatuses maps the labels written by the first release of the board
var legacyStatuses = map[string]Status{
	"нове":      StatusNew,
	"в процесі": StatusInProgress,
	"завершене": StatusDone,
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Next returns the following status, wrapping from done back to new
func (s Status) Next() Status {
	switch s {
	case StatusNew:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	default:
		return StatusNew
	}
}

// ParseStatus converts user input to a Status
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "new", "todo":
		return StatusNew, nil
	case "in-progress", "in_progress", "inprogress", "progress", "doing":
		return StatusInProgress, nil
	case "done", "complete", "completed":
		return StatusDone, nil
	}
	if st, ok := legacyStatuses[strings.TrimSpace(s)]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q (want new, in-progress or done)", s)
}

// UnmarshalJSON accepts canonical and legacy status labels. Unknown values
// decode as new.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid status %s: %w", data, err)
	}
	st, err := ParseStatus(raw)
	if err != nil {
		st = StatusNew
	}
	*s = st
	return nil
}

// Task is a unit of work on a board project
type Task struct {
	ID         ID       `json:"id"`
	Text       string   `json:"text"`
	Deadline   *Date    `json:"deadline"`
	Status     Status   `json:"status"`
	AssignedTo *string  `json:"assignedTo"`
	Comments   []string `json:"comments"`
}

// UnmarshalJSON decodes a task and fills in absent collections
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Task(p)
	if t.Deadline != nil && t.Deadline.IsZero() {
		t.Deadline = nil
	}
	if t.AssignedTo != nil && *t.AssignedTo == "" {
		t.AssignedTo = nil
	}
	if t.Status == "" {
		t.Status = StatusNew
	}
	if t.Comments == nil {
		t.Comments = []string{}
	}
	return nil
}

// IsDone reports whether the task counts as completed
func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

// Assignee returns the assigned member or an empty string
func (t *Task) Assignee() string {
	if t.AssignedTo == nil {
		return ""
	}
	return *t.AssignedTo
}

// IsOverdue returns true if the deadline day has passed and the task is not done
func (t *Task) IsOverdue(now time.Time) bool {
	if t.IsDone() || t.Deadline == nil {
		return false
	}
	return t.Deadline.Before(Today(now))
}

// Clone returns a copy that shares no mutable state with t
func (t Task) Clone() Task {
	c := t
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	if t.AssignedTo != nil {
		a := *t.AssignedTo
		c.AssignedTo = &a
	}
	c.Comments = append([]string{}, t.Comments...)
	return c
}

// TaskInput carries the fields of a task to be created
type TaskInput struct {
	Text       string
	Deadline   *Date
	Status     Status
	AssignedTo string
}

// TaskPatch lists the fields to change on an existing task. Nil fields are
// left untouched. A non-nil Deadline holding the zero Date clears the
// deadline; a non-nil empty AssignedTo unassigns the task.
type TaskPatch struct {
	Text       *string
	Deadline   *Date
	Status     *Status
	AssignedTo *string
}

// IsEmpty reports whether the patch changes nothing
func (p TaskPatch) IsEmpty() bool {
	return p.Text == nil && p.Deadline == nil && p.Status == nil && p.AssignedTo == nil
}
