// Package board implements the project board: projects with members, tasks
// with a status, an assignee and a comment thread.
//
// Every operation takes the current list of projects and returns a new list
// plus whether anything changed. The input list and everything reachable
// from it is left untouched, so a snapshot held elsewhere stays valid.
// Empty names, empty texts and unknown ids make an operation a no-op.
package board

import (
	"strings"

	"github.com/existflow/projectboard/internal/idgen"
	"github.com/existflow/projectboard/internal/model"
)

// AddProject appends a project with an empty task list
func AddProject(projects []model.Project, gen idgen.Generator, name string, members []string) ([]model.Project, model.ID, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return projects, "", false
	}

	id := idgen.Fresh(gen, func(id model.ID) bool { return model.FindProject(projects, id) >= 0 })
	next := make([]model.Project, 0, len(projects)+1)
	next = append(next, projects...)
	next = append(next, model.Project{
		ID:      id,
		Name:    name,
		Members: model.NormalizeMembers(members),
		Tasks:   []model.Task{},
	})
	return next, id, true
}

// EditProject replaces the name and members of a project. Tasks, including
// their assignees, are not touched.
func EditProject(projects []model.Project, id model.ID, name string, members []string) ([]model.Project, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return projects, false
	}
	return updateProject(projects, id, func(p model.Project) (model.Project, bool) {
		p.Name = name
		p.Members = model.NormalizeMembers(members)
		return p, true
	})
}

// DeleteProject removes a project together with all of its tasks and their
// comments
func DeleteProject(projects []model.Project, id model.ID) ([]model.Project, bool) {
	idx := model.FindProject(projects, id)
	if idx < 0 {
		return projects, false
	}
	next := make([]model.Project, 0, len(projects)-1)
	next = append(next, projects[:idx]...)
	next = append(next, projects[idx+1:]...)
	return next, true
}

// AddTask appends a task to a project. The deadline and assignee are null
// when absent, the status defaults to new, and comments start empty. An
// assignee who is not a member of the project is dropped.
func AddTask(projects []model.Project, gen idgen.Generator, projectID model.ID, in model.TaskInput) ([]model.Project, model.ID, bool) {
	if strings.TrimSpace(in.Text) == "" {
		return projects, "", false
	}

	var taskID model.ID
	next, ok := updateProject(projects, projectID, func(p model.Project) (model.Project, bool) {
		taskID = idgen.Fresh(gen, func(id model.ID) bool { return p.FindTask(id) >= 0 })

		status := in.Status
		if !status.Valid() {
			status = model.StatusNew
		}
		task := model.Task{
			ID:         taskID,
			Text:       in.Text,
			Deadline:   copyDate(in.Deadline),
			Status:     status,
			AssignedTo: memberOrNil(&p, in.AssignedTo),
			Comments:   []string{},
		}

		tasks := make([]model.Task, 0, len(p.Tasks)+1)
		tasks = append(tasks, p.Tasks...)
		p.Tasks = append(tasks, task)
		return p, true
	})
	if !ok {
		return projects, "", false
	}
	return next, taskID, true
}

// EditTask merges patch onto a task, leaving fields the patch does not set
// as they were. Blank text or an unknown status rejects the whole patch.
func EditTask(projects []model.Project, projectID, taskID model.ID, patch model.TaskPatch) ([]model.Project, bool) {
	if patch.Text != nil && strings.TrimSpace(*patch.Text) == "" {
		return projects, false
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return projects, false
	}
	if patch.IsEmpty() {
		return projects, false
	}

	return updateTask(projects, projectID, taskID, func(p *model.Project, t model.Task) (model.Task, bool) {
		if patch.Text != nil {
			t.Text = *patch.Text
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Deadline != nil {
			if patch.Deadline.IsZero() {
				t.Deadline = nil
			} else {
				t.Deadline = copyDate(patch.Deadline)
			}
		}
		if patch.AssignedTo != nil {
			t.AssignedTo = memberOrNil(p, *patch.AssignedTo)
		}
		return t, true
	})
}

// DeleteTask removes a task from a project
func DeleteTask(projects []model.Project, projectID, taskID model.ID) ([]model.Project, bool) {
	return updateProject(projects, projectID, func(p model.Project) (model.Project, bool) {
		idx := p.FindTask(taskID)
		if idx < 0 {
			return p, false
		}
		tasks := make([]model.Task, 0, len(p.Tasks)-1)
		tasks = append(tasks, p.Tasks[:idx]...)
		p.Tasks = append(tasks, p.Tasks[idx+1:]...)
		return p, true
	})
}

// AddComment appends text to a task's comments
func AddComment(projects []model.Project, projectID, taskID model.ID, text string) ([]model.Project, bool) {
	if strings.TrimSpace(text) == "" {
		return projects, false
	}
	return updateTask(projects, projectID, taskID, func(_ *model.Project, t model.Task) (model.Task, bool) {
		comments := make([]string, 0, len(t.Comments)+1)
		comments = append(comments, t.Comments...)
		t.Comments = append(comments, text)
		return t, true
	})
}

// updateProject replaces the project with id by fn's result. The returned
// slice is new; untouched projects are shared with the input.
func updateProject(projects []model.Project, id model.ID, fn func(model.Project) (model.Project, bool)) ([]model.Project, bool) {
	idx := model.FindProject(projects, id)
	if idx < 0 {
		return projects, false
	}
	updated, ok := fn(projects[idx])
	if !ok {
		return projects, false
	}
	next := make([]model.Project, len(projects))
	copy(next, projects)
	next[idx] = updated
	return next, true
}

func updateTask(projects []model.Project, projectID, taskID model.ID, fn func(*model.Project, model.Task) (model.Task, bool)) ([]model.Project, bool) {
	return updateProject(projects, projectID, func(p model.Project) (model.Project, bool) {
		idx := p.FindTask(taskID)
		if idx < 0 {
			return p, false
		}
		updated, ok := fn(&p, p.Tasks[idx])
		if !ok {
			return p, false
		}
		tasks := make([]model.Task, len(p.Tasks))
		copy(tasks, p.Tasks)
		tasks[idx] = updated
		p.Tasks = tasks
		return p, true
	})
}

func memberOrNil(p *model.Project, name string) *string {
	name = strings.TrimSpace(name)
	if name == "" || !p.HasMember(name) {
		return nil
	}
	return &name
}

func copyDate(d *model.Date) *model.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	c := *d
	return &c
}
