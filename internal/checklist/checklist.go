package checklist

import (
	"context"

	"github.com/existflow/projectboard/internal/idgen"
	"github.com/existflow/projectboard/internal/logger"
	"github.com/existflow/projectboard/internal/model"
	"github.com/existflow/projectboard/internal/storage"
	"github.com/existflow/projectboard/internal/store"
)

// Checklist owns the checklist projects of a session
type Checklist struct {
	st  *store.Store[[]model.ChecklistProject]
	gen idgen.Generator
	log *logger.Logger
}

// Open loads the checklist from slot; nothing saved means no projects
func Open(ctx context.Context, slot storage.Slot, gen idgen.Generator, log *logger.Logger) *Checklist {
	if gen == nil {
		gen = idgen.UUID{}
	}
	log = log.WithFields(logger.F("variant", "checklist"))
	seed := func() []model.ChecklistProject { return []model.ChecklistProject{} }
	return &Checklist{st: store.Open(ctx, slot, seed, log), gen: gen, log: log}
}

// Projects returns the current snapshot. It must not be modified.
func (c *Checklist) Projects() []model.ChecklistProject {
	return c.st.Snapshot()
}

// Project looks up a project by id
func (c *Checklist) Project(id model.ID) (model.ChecklistProject, bool) {
	projects := c.Projects()
	if idx := model.FindChecklistProject(projects, id); idx >= 0 {
		return projects[idx], true
	}
	return model.ChecklistProject{}, false
}

// Progress returns the completed percentage of a project
func (c *Checklist) Progress(id model.ID) float64 {
	p, ok := c.Project(id)
	if !ok {
		return 0
	}
	return p.Progress()
}

// AddProject creates a project and returns its id. ok is false when the
// name is blank.
func (c *Checklist) AddProject(ctx context.Context, name string) (id model.ID, ok bool, err error) {
	_, ok, err = c.st.Apply(ctx, "add_project", func(cur []model.ChecklistProject) ([]model.ChecklistProject, bool) {
		next, newID, changed := AddProject(cur, c.gen, name)
		id = newID
		return next, changed
	})
	return id, ok, err
}

// EditProject renames a project
func (c *Checklist) EditProject(ctx context.Context, id model.ID, name string) (bool, error) {
	return c.apply(ctx, "edit_project", func(cur []model.ChecklistProject) ([]model.ChecklistProject, bool) {
		return EditProject(cur, id, name)
	})
}

// DeleteProject removes a project and its tasks
func (c *Checklist) DeleteProject(ctx context.Context, id model.ID) (bool, error) {
	return c.apply(ctx, "delete_project", func(cur []model.ChecklistProject) ([]model.ChecklistProject, bool) {
		return DeleteProject(cur, id)
	})
}

// AddTask appends an uncompleted task and returns its id
func (c *Checklist) AddTask(ctx context.Context, projectID model.ID, in model.ChecklistInput) (id model.ID, ok bool, err error) {
	_, ok, err = c.st.Apply(ctx, "add_task", func(cur []model.ChecklistProject) ([]model.ChecklistProject, bool) {
		next, newID, changed := AddTask(cur, c.gen, projectID, in)
		id = newID
		return next, changed
	})
	return id, ok, err
}

// EditTask merges patch onto a task
func (c *Checklist) EditTask(ctx context.Context, projectID, taskID model.ID, patch model.ChecklistPatch) (bool, error) {
	return c.apply(ctx, "edit_task", func(cur []model.ChecklistProject) ([]model.ChecklistProject, bool) {
		return EditTask(cur, projectID, taskID, patch)
	})
}

// ToggleTaskComplete flips whether a task is completed
func (c *Checklist) ToggleTaskComplete(ctx context.Context, projectID, taskID model.ID) (bool, error) {
	return c.apply(ctx, "toggle_task", func(cur []model.ChecklistProject) ([]model.ChecklistProject, bool) {
		return ToggleTaskComplete(cur, projectID, taskID)
	})
}

// DeleteTask removes a task
func (c *Checklist) DeleteTask(ctx context.Context, projectID, taskID model.ID) (bool, error) {
	return c.apply(ctx, "delete_task", func(cur []model.ChecklistProject) ([]model.ChecklistProject, bool) {
		return DeleteTask(cur, projectID, taskID)
	})
}

func (c *Checklist) apply(ctx context.Context, op string, m store.Mutation[[]model.ChecklistProject]) (bool, error) {
	_, changed, err := c.st.Apply(ctx, op, m)
	if changed {
		c.log.Debug("Checklist updated", logger.F("op", op))
	}
	return changed, err
}

// Close releases the underlying slot
func (c *Checklist) Close() error {
	return c.st.Close()
}
