package board

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/existflow/projectboard/internal/idgen"
	"github.com/existflow/projectboard/internal/model"
	"github.com/existflow/projectboard/internal/storage"
	"github.com/existflow/projectboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Scenario(t *testing.T) {
	ctx := context.Background()
	b := Open(ctx, storage.NewMemorySlot(), Options{})

	pid, ok, err := b.AddProject(ctx, "Website", []string{"Al", "Mo"})
	require.NoError(t, err)
	require.True(t, ok)

	tid, ok, err := b.AddTask(ctx, pid, model.TaskInput{Text: "Design", Status: model.StatusNew})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = b.SetStatus(ctx, pid, tid, model.StatusDone)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 100.0, b.Progress(pid))
}

func TestBoard_PersistsAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemorySlot()
	b := Open(ctx, slot, Options{IDs: idgen.Sequence("id")})

	assert.Equal(t, 1, slot.Saves(), "empty seed")

	pid, _, err := b.AddProject(ctx, "Website", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, slot.Saves())

	tid, _, err := b.AddTask(ctx, pid, model.TaskInput{Text: "Design"})
	require.NoError(t, err)
	_, err = b.AddComment(ctx, pid, tid, "note")
	require.NoError(t, err)
	assert.Equal(t, 4, slot.Saves())

	// rejected operations do not write
	_, err = b.AddComment(ctx, pid, tid, " ")
	require.NoError(t, err)
	_, err = b.DeleteTask(ctx, pid, "missing")
	require.NoError(t, err)
	assert.Equal(t, 4, slot.Saves())

	data, err := slot.Load(ctx)
	require.NoError(t, err)
	var saved []model.Project
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, b.Projects(), saved)
}

func TestBoard_ReopenRestoresState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), storage.DefaultDBName)

	slot, err := storage.OpenSQLite(path, "projects")
	require.NoError(t, err)
	b := Open(ctx, slot, Options{SeedDemo: true})
	require.Equal(t, store.FromSeedEmpty, b.Source())

	pid, _, err := b.AddProject(ctx, "Website", []string{"Al"})
	require.NoError(t, err)
	_, _, err = b.AddTask(ctx, pid, model.TaskInput{Text: "Design", AssignedTo: "Al"})
	require.NoError(t, err)
	want := b.Projects()
	require.NoError(t, b.Close())

	slot, err = storage.OpenSQLite(path, "projects")
	require.NoError(t, err)
	reopened := Open(ctx, slot, Options{SeedDemo: true})
	defer reopened.Close()

	assert.Equal(t, store.FromSlot, reopened.Source())
	assert.Equal(t, want, reopened.Projects())
	require.Len(t, reopened.Projects(), 2, "demo project plus the new one")
}

func TestBoard_SeedDemo(t *testing.T) {
	ctx := context.Background()

	empty := Open(ctx, storage.NewMemorySlot(), Options{})
	assert.Empty(t, empty.Projects())

	demo := Open(ctx, storage.NewMemorySlot(), Options{SeedDemo: true})
	require.Len(t, demo.Projects(), 1)
	p := demo.Projects()[0]
	assert.Equal(t, "Demo project", p.Name)
	require.Len(t, p.Tasks, 1)
	assert.Equal(t, "Alex", p.Tasks[0].Assignee())
	assert.True(t, p.HasMember("Alex"))
	assert.NotEqual(t, p.ID, p.Tasks[0].ID)
}

func TestBoard_DemoSeedKeepsIDsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemorySlot()

	b := Open(ctx, slot, Options{SeedDemo: true})
	require.Equal(t, store.FromSeedEmpty, b.Source())
	assert.Equal(t, 1, slot.Saves())
	p := b.Projects()[0]

	reopened := Open(ctx, slot, Options{SeedDemo: true})
	assert.Equal(t, store.FromSlot, reopened.Source())
	assert.Equal(t, b.Projects(), reopened.Projects())

	ok, err := reopened.SetStatus(ctx, p.ID, p.Tasks[0].ID, model.StatusDone)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBoard_CorruptStateFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemorySlotWith([]byte(`[{"id": 1, "name": `))

	b := Open(ctx, slot, Options{SeedDemo: true})
	assert.Equal(t, store.FromSeedCorrupt, b.Source())
	require.Len(t, b.Projects(), 1)
	assert.Equal(t, "Demo project", b.Projects()[0].Name)
}

func TestBoard_LoadsLegacyState(t *testing.T) {
	ctx := context.Background()
	legacy := `[{"id":1714000000000,"name":"Демо проєкт","members":["Олександр","Марія"],
		"tasks":[{"id":1714000000000,"text":"Створити дизайн","deadline":"2025-05-01",
		"status":"в процесі","comments":["Потрібно додати кольори"],"assignedTo":"Олександр"},
		{"id":1714000000001,"text":"Deploy","deadline":"","status":"завершене","assignedTo":null}]}]`

	b := Open(ctx, storage.NewMemorySlotWith([]byte(legacy)), Options{})
	require.Equal(t, store.FromSlot, b.Source())

	p, ok := b.Project("1714000000000")
	require.True(t, ok)
	require.Len(t, p.Tasks, 2)

	first := p.Tasks[0]
	assert.Equal(t, model.StatusInProgress, first.Status)
	assert.Equal(t, "Олександр", first.Assignee())
	assert.Equal(t, "2025-05-01", first.Deadline.String())

	second := p.Tasks[1]
	assert.Equal(t, model.StatusDone, second.Status)
	assert.Nil(t, second.Deadline)
	assert.Equal(t, []string{}, second.Comments)

	assert.Equal(t, 50.0, p.Progress())

	// legacy task ids keep working with the operations
	ok, err := b.AddComment(ctx, p.ID, "1714000000001", "shipped")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBoard_DeleteProjectCascade(t *testing.T) {
	ctx := context.Background()
	b := Open(ctx, storage.NewMemorySlot(), Options{})

	keep, _, _ := b.AddProject(ctx, "Keep", nil)
	drop, _, _ := b.AddProject(ctx, "Drop", nil)
	_, _, _ = b.AddTask(ctx, keep, model.TaskInput{Text: "stays"})
	tid, _, _ := b.AddTask(ctx, drop, model.TaskInput{Text: "goes"})
	_, _ = b.AddComment(ctx, drop, tid, "goes too")

	ok, err := b.DeleteProject(ctx, drop)
	require.NoError(t, err)
	require.True(t, ok)

	require.Len(t, b.Projects(), 1)
	_, found := b.Project(drop)
	assert.False(t, found)
	kept, _ := b.Project(keep)
	require.Len(t, kept.Tasks, 1)
	assert.Equal(t, "stays", kept.Tasks[0].Text)
	assert.Equal(t, 0.0, b.Progress(drop))
}

func TestBoard_CounterIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	gen, err := idgen.New(idgen.SchemeCounter)
	require.NoError(t, err)
	b := Open(ctx, storage.NewMemorySlot(), Options{IDs: gen})

	pid, _, _ := b.AddProject(ctx, "Fast", nil)
	seen := map[model.ID]bool{pid: true}
	for i := 0; i < 50; i++ {
		tid, ok, err := b.AddTask(ctx, pid, model.TaskInput{Text: "rapid"})
		require.NoError(t, err)
		require.True(t, ok)
		require.False(t, seen[tid], "duplicate id %s", tid)
		seen[tid] = true
	}
}
