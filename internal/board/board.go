package board

import (
	"context"

	"github.com/existflow/projectboard/internal/idgen"
	"github.com/existflow/projectboard/internal/logger"
	"github.com/existflow/projectboard/internal/model"
	"github.com/existflow/projectboard/internal/storage"
	"github.com/existflow/projectboard/internal/store"
)

// Board owns the project list of one session and persists it after every
// change. It is passed explicitly to every view that needs it.
type Board struct {
	st  *store.Store[[]model.Project]
	gen idgen.Generator
	log *logger.Logger
}

// Options configures Open
type Options struct {
	IDs      idgen.Generator // defaults to UUIDv7
	SeedDemo bool            // start with a demo project when nothing is saved
	Logger   *logger.Logger
}

// Open loads the board from slot, falling back to the seed when the slot is
// empty or unreadable. A seed for an empty slot is saved right away, so its
// ids stay the same in the next session.
func Open(ctx context.Context, slot storage.Slot, opts Options) *Board {
	gen := opts.IDs
	if gen == nil {
		gen = idgen.UUID{}
	}
	log := opts.Logger.WithFields(logger.F("variant", "board"))

	seed := func() []model.Project {
		if opts.SeedDemo {
			return DemoProjects(gen)
		}
		return []model.Project{}
	}

	b := &Board{
		st:  store.Open(ctx, slot, seed, log),
		gen: gen,
		log: log,
	}
	log.Info("Board opened",
		logger.F("projects", len(b.Projects())),
		logger.F("source", b.st.Source()))
	return b
}

// Projects returns the current snapshot. It must not be modified.
func (b *Board) Projects() []model.Project {
	return b.st.Snapshot()
}

// Project looks up a project by id
func (b *Board) Project(id model.ID) (model.Project, bool) {
	projects := b.Projects()
	idx := model.FindProject(projects, id)
	if idx < 0 {
		return model.Project{}, false
	}
	return projects[idx], true
}

// Progress returns the done percentage of a project, 0 if it does not exist
func (b *Board) Progress(id model.ID) float64 {
	p, ok := b.Project(id)
	if !ok {
		return 0
	}
	return p.Progress()
}

// Source reports whether the board came from saved state or the seed
func (b *Board) Source() store.Source {
	return b.st.Source()
}

// AddProject creates a project and returns its id. ok is false when the
// name is blank.
func (b *Board) AddProject(ctx context.Context, name string, members []string) (id model.ID, ok bool, err error) {
	_, ok, err = b.st.Apply(ctx, "add_project", func(cur []model.Project) ([]model.Project, bool) {
		next, newID, changed := AddProject(cur, b.gen, name, members)
		id = newID
		return next, changed
	})
	if ok {
		b.log.Info("Project added", logger.F("id", id), logger.F("name", name))
	}
	return id, ok, err
}

// EditProject renames a project and replaces its members
func (b *Board) EditProject(ctx context.Context, id model.ID, name string, members []string) (bool, error) {
	return b.apply(ctx, "edit_project", func(cur []model.Project) ([]model.Project, bool) {
		return EditProject(cur, id, name, members)
	})
}

// DeleteProject removes a project and everything in it
func (b *Board) DeleteProject(ctx context.Context, id model.ID) (bool, error) {
	return b.apply(ctx, "delete_project", func(cur []model.Project) ([]model.Project, bool) {
		return DeleteProject(cur, id)
	})
}

// AddTask appends a task to a project and returns its id
func (b *Board) AddTask(ctx context.Context, projectID model.ID, in model.TaskInput) (id model.ID, ok bool, err error) {
	_, ok, err = b.st.Apply(ctx, "add_task", func(cur []model.Project) ([]model.Project, bool) {
		next, newID, changed := AddTask(cur, b.gen, projectID, in)
		id = newID
		return next, changed
	})
	if ok {
		b.log.Info("Task added", logger.F("project", projectID), logger.F("id", id))
	}
	return id, ok, err
}

// EditTask merges patch onto a task
func (b *Board) EditTask(ctx context.Context, projectID, taskID model.ID, patch model.TaskPatch) (bool, error) {
	return b.apply(ctx, "edit_task", func(cur []model.Project) ([]model.Project, bool) {
		return EditTask(cur, projectID, taskID, patch)
	})
}

// SetStatus is EditTask with only a status
func (b *Board) SetStatus(ctx context.Context, projectID, taskID model.ID, status model.Status) (bool, error) {
	return b.EditTask(ctx, projectID, taskID, model.TaskPatch{Status: &status})
}

// DeleteTask removes a task
func (b *Board) DeleteTask(ctx context.Context, projectID, taskID model.ID) (bool, error) {
	return b.apply(ctx, "delete_task", func(cur []model.Project) ([]model.Project, bool) {
		return DeleteTask(cur, projectID, taskID)
	})
}

// AddComment appends a comment to a task
func (b *Board) AddComment(ctx context.Context, projectID, taskID model.ID, text string) (bool, error) {
	return b.apply(ctx, "add_comment", func(cur []model.Project) ([]model.Project, bool) {
		return AddComment(cur, projectID, taskID, text)
	})
}

func (b *Board) apply(ctx context.Context, op string, m store.Mutation[[]model.Project]) (bool, error) {
	_, changed, err := b.st.Apply(ctx, op, m)
	return changed, err
}

// Close releases the underlying slot
func (b *Board) Close() error {
	return b.st.Close()
}

// DemoProjects returns the board shown on first start
func DemoProjects(gen idgen.Generator) []model.Project {
	deadline := model.NewDate(2025, 5, 1)
	alex := "Alex"
	return []model.Project{
		{
			ID:      gen.NewID(),
			Name:    "Demo project",
			Members: []string{"Alex", "Maria"},
			Tasks: []model.Task{
				{
					ID:         gen.NewID(),
					Text:       "Create design",
					Deadline:   &deadline,
					Status:     model.StatusInProgress,
					AssignedTo: &alex,
					Comments:   []string{"Need to add colors"},
				},
			},
		},
	}
}
