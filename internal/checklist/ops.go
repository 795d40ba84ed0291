// Package checklist implements the lightweight tracker variant: projects
// without members whose tasks are simply completed or not.
//
// Operations follow the same rules as the board: they return a new project
// list without touching the input, and blank text or unknown ids make them
// a no-op.
package checklist

import (
	"strings"

	"github.com/existflow/projectboard/internal/idgen"
	"github.com/existflow/projectboard/internal/model"
)

// AddProject appends an empty project
func AddProject(projects []model.ChecklistProject, gen idgen.Generator, name string) ([]model.ChecklistProject, model.ID, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return projects, "", false
	}
	id := idgen.Fresh(gen, func(id model.ID) bool { return model.FindChecklistProject(projects, id) >= 0 })

	next := make([]model.ChecklistProject, 0, len(projects)+1)
	next = append(next, projects...)
	next = append(next, model.ChecklistProject{ID: id, Name: name, Tasks: []model.ChecklistTask{}})
	return next, id, true
}

// EditProject renames a project
func EditProject(projects []model.ChecklistProject, id model.ID, name string) ([]model.ChecklistProject, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return projects, false
	}
	return withProject(projects, id, func(p model.ChecklistProject) (model.ChecklistProject, bool) {
		p.Name = name
		return p, true
	})
}

// DeleteProject removes a project and its tasks
func DeleteProject(projects []model.ChecklistProject, id model.ID) ([]model.ChecklistProject, bool) {
	idx := model.FindChecklistProject(projects, id)
	if idx < 0 {
		return projects, false
	}
	next := make([]model.ChecklistProject, 0, len(projects)-1)
	next = append(next, projects[:idx]...)
	return append(next, projects[idx+1:]...), true
}

// AddTask appends an uncompleted task
func AddTask(projects []model.ChecklistProject, gen idgen.Generator, projectID model.ID, in model.ChecklistInput) ([]model.ChecklistProject, model.ID, bool) {
	if strings.TrimSpace(in.Text) == "" {
		return projects, "", false
	}

	var taskID model.ID
	next, ok := withProject(projects, projectID, func(p model.ChecklistProject) (model.ChecklistProject, bool) {
		taskID = idgen.Fresh(gen, func(id model.ID) bool { return p.FindTask(id) >= 0 })
		task := model.ChecklistTask{ID: taskID, Text: in.Text}
		if in.Deadline != nil && !in.Deadline.IsZero() {
			d := *in.Deadline
			task.Deadline = &d
		}
		tasks := make([]model.ChecklistTask, 0, len(p.Tasks)+1)
		tasks = append(tasks, p.Tasks...)
		p.Tasks = append(tasks, task)
		return p, true
	})
	if !ok {
		return projects, "", false
	}
	return next, taskID, true
}

// EditTask merges patch onto a task
func EditTask(projects []model.ChecklistProject, projectID, taskID model.ID, patch model.ChecklistPatch) ([]model.ChecklistProject, bool) {
	if patch.Text != nil && strings.TrimSpace(*patch.Text) == "" {
		return projects, false
	}
	if patch.Text == nil && patch.Deadline == nil && patch.Completed == nil {
		return projects, false
	}
	return withTask(projects, projectID, taskID, func(t model.ChecklistTask) model.ChecklistTask {
		if patch.Text != nil {
			t.Text = *patch.Text
		}
		if patch.Deadline != nil {
			if patch.Deadline.IsZero() {
				t.Deadline = nil
			} else {
				d := *patch.Deadline
				t.Deadline = &d
			}
		}
		if patch.Completed != nil {
			t.Completed = *patch.Completed
		}
		return t
	})
}

// ToggleTaskComplete flips a task's completed flag
func ToggleTaskComplete(projects []model.ChecklistProject, projectID, taskID model.ID) ([]model.ChecklistProject, bool) {
	return withTask(projects, projectID, taskID, func(t model.ChecklistTask) model.ChecklistTask {
		t.Completed = !t.Completed
		return t
	})
}

// DeleteTask removes a task
func DeleteTask(projects []model.ChecklistProject, projectID, taskID model.ID) ([]model.ChecklistProject, bool) {
	return withProject(projects, projectID, func(p model.ChecklistProject) (model.ChecklistProject, bool) {
		idx := p.FindTask(taskID)
		if idx < 0 {
			return p, false
		}
		tasks := make([]model.ChecklistTask, 0, len(p.Tasks)-1)
		tasks = append(tasks, p.Tasks[:idx]...)
		p.Tasks = append(tasks, p.Tasks[idx+1:]...)
		return p, true
	})
}

func withProject(projects []model.ChecklistProject, id model.ID, fn func(model.ChecklistProject) (model.ChecklistProject, bool)) ([]model.ChecklistProject, bool) {
	idx := model.FindChecklistProject(projects, id)
	if idx < 0 {
		return projects, false
	}
	updated, ok := fn(projects[idx])
	if !ok {
		return projects, false
	}
	next := make([]model.ChecklistProject, len(projects))
	copy(next, projects)
	next[idx] = updated
	return next, true
}

func withTask(projects []model.ChecklistProject, projectID, taskID model.ID, fn func(model.ChecklistTask) model.ChecklistTask) ([]model.ChecklistProject, bool) {
	return withProject(projects, projectID, func(p model.ChecklistProject) (model.ChecklistProject, bool) {
		idx := p.FindTask(taskID)
		if idx < 0 {
			return p, false
		}
		tasks := make([]model.ChecklistTask, len(p.Tasks))
		copy(tasks, p.Tasks)
		tasks[idx] = fn(tasks[idx])
		p.Tasks = tasks
		return p, true
	})
}
