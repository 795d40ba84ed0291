package board

import (
	"encoding/json"
	"testing"

	"github.com/existflow/projectboard/internal/idgen"
	"github.com/existflow/projectboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func statusPtr(s model.Status) *model.Status { return &s }

// fixture builds two projects: "Website" (members Al, Mo) with two tasks and
// "Backend" with one task
func fixture(t *testing.T) ([]model.Project, idgen.Generator) {
	t.Helper()
	gen := idgen.Sequence("id")

	projects, web, ok := AddProject(nil, gen, "Website", []string{"Al", "Mo"})
	require.True(t, ok)
	projects, _, ok = AddTask(projects, gen, web, model.TaskInput{Text: "Design", Status: model.StatusNew})
	require.True(t, ok)
	projects, _, ok = AddTask(projects, gen, web, model.TaskInput{Text: "Build"})
	require.True(t, ok)

	projects, api, ok := AddProject(projects, gen, "Backend", nil)
	require.True(t, ok)
	projects, _, ok = AddTask(projects, gen, api, model.TaskInput{Text: "Schema"})
	require.True(t, ok)

	return projects, gen
}

func TestAddProject_RejectsBlankName(t *testing.T) {
	projects, gen := fixture(t)

	for _, name := range []string{"", "   ", "\t\n"} {
		next, id, ok := AddProject(projects, gen, name, []string{"Al"})
		assert.False(t, ok, "name %q", name)
		assert.Empty(t, id)
		assert.Equal(t, projects, next)
	}
}

func TestAddProject_NormalizesMembers(t *testing.T) {
	projects, _, ok := AddProject(nil, idgen.Sequence("p"), "  Website ", []string{" Al ", "", "  ", "Mo"})
	require.True(t, ok)

	require.Len(t, projects, 1)
	assert.Equal(t, "Website", projects[0].Name)
	assert.Equal(t, []string{"Al", "Mo"}, projects[0].Members)
	assert.Empty(t, projects[0].Tasks)
	assert.NotNil(t, projects[0].Tasks)
}

func TestAddProject_SkipsTakenIDs(t *testing.T) {
	projects, _, _ := AddProject(nil, idgen.Sequence("p"), "First", nil)
	// A fresh sequence starts again at p-1
	projects, id, ok := AddProject(projects, idgen.Sequence("p"), "Second", nil)
	require.True(t, ok)

	assert.Equal(t, model.ID("p-2"), id)
	assert.NotEqual(t, projects[0].ID, projects[1].ID)
}

func TestEditProject(t *testing.T) {
	projects, _ := fixture(t)
	web := projects[0]

	next, ok := EditProject(projects, web.ID, "Site", []string{"Mo", "Jo"})
	require.True(t, ok)
	assert.Equal(t, "Site", next[0].Name)
	assert.Equal(t, []string{"Mo", "Jo"}, next[0].Members)
	assert.Equal(t, web.ID, next[0].ID)
	assert.Equal(t, web.Tasks, next[0].Tasks)
	assert.Equal(t, projects[1], next[1])

	_, ok = EditProject(projects, web.ID, " ", nil)
	assert.False(t, ok)
	_, ok = EditProject(projects, "missing", "Name", nil)
	assert.False(t, ok)
}

func TestDeleteProject_CascadesAndKeepsOthers(t *testing.T) {
	projects, _ := fixture(t)
	web, api := projects[0], projects[1]

	next, ok := DeleteProject(projects, web.ID)
	require.True(t, ok)
	require.Len(t, next, len(projects)-1)
	assert.Equal(t, api, next[0])
	assert.Equal(t, -1, model.FindProject(next, web.ID))

	same, ok := DeleteProject(next, "missing")
	assert.False(t, ok)
	assert.Equal(t, next, same)
}

func TestAddTask_Defaults(t *testing.T) {
	projects, gen := fixture(t)
	web := projects[0]

	next, id, ok := AddTask(projects, gen, web.ID, model.TaskInput{Text: "Deploy"})
	require.True(t, ok)

	p := next[0]
	idx := p.FindTask(id)
	require.Equal(t, len(p.Tasks)-1, idx, "appended at the end")
	task := p.Tasks[idx]
	assert.Equal(t, "Deploy", task.Text)
	assert.Nil(t, task.Deadline)
	assert.Nil(t, task.AssignedTo)
	assert.Equal(t, model.StatusNew, task.Status)
	assert.Equal(t, []string{}, task.Comments)

	seen := map[model.ID]bool{}
	for _, tk := range p.Tasks {
		assert.False(t, seen[tk.ID], "duplicate task id %s", tk.ID)
		seen[tk.ID] = true
	}
}

func TestAddTask_KeepsTextAsTyped(t *testing.T) {
	projects, gen := fixture(t)
	web := projects[0]

	next, tid, ok := AddTask(projects, gen, web.ID, model.TaskInput{Text: "  padded  "})
	require.True(t, ok)
	next, ok = AddComment(next, web.ID, tid, " note ")
	require.True(t, ok)

	task := next[0].Tasks[next[0].FindTask(tid)]
	assert.Equal(t, "  padded  ", task.Text)
	assert.Equal(t, []string{" note "}, task.Comments)
}

func TestAddTask_Rejections(t *testing.T) {
	projects, gen := fixture(t)

	_, _, ok := AddTask(projects, gen, projects[0].ID, model.TaskInput{Text: "  "})
	assert.False(t, ok)

	_, _, ok = AddTask(projects, gen, "missing", model.TaskInput{Text: "Task"})
	assert.False(t, ok)
}

func TestAddTask_AssigneeMustBeMember(t *testing.T) {
	projects, gen := fixture(t)
	web := projects[0].ID

	next, id, ok := AddTask(projects, gen, web, model.TaskInput{Text: "Review", AssignedTo: "Mo"})
	require.True(t, ok)
	task := next[0].Tasks[next[0].FindTask(id)]
	require.NotNil(t, task.AssignedTo)
	assert.Equal(t, "Mo", *task.AssignedTo)

	next, id, ok = AddTask(projects, gen, web, model.TaskInput{Text: "Review", AssignedTo: "Stranger"})
	require.True(t, ok)
	assert.Nil(t, next[0].Tasks[next[0].FindTask(id)].AssignedTo)
}

func TestEditTask_MergesOnlyPatchedFields(t *testing.T) {
	projects, _ := fixture(t)
	web := projects[0]
	design := web.Tasks[0]

	next, ok := EditTask(projects, web.ID, design.ID, model.TaskPatch{Status: statusPtr(model.StatusDone)})
	require.True(t, ok)

	got := next[0].Tasks[0]
	assert.Equal(t, "Design", got.Text)
	assert.Equal(t, model.StatusDone, got.Status)
	assert.Equal(t, design.ID, got.ID)
	assert.Equal(t, web.Tasks[1], next[0].Tasks[1])
}

func TestEditTask_DeadlineAndAssignee(t *testing.T) {
	projects, _ := fixture(t)
	web := projects[0]
	taskID := web.Tasks[0].ID
	due := model.NewDate(2025, 5, 1)

	next, ok := EditTask(projects, web.ID, taskID, model.TaskPatch{Deadline: &due, AssignedTo: strPtr("Al")})
	require.True(t, ok)
	got := next[0].Tasks[0]
	require.NotNil(t, got.Deadline)
	assert.Equal(t, "2025-05-01", got.Deadline.String())
	assert.Equal(t, "Al", got.Assignee())

	next, ok = EditTask(next, web.ID, taskID, model.TaskPatch{Deadline: &model.Date{}, AssignedTo: strPtr("")})
	require.True(t, ok)
	got = next[0].Tasks[0]
	assert.Nil(t, got.Deadline)
	assert.Nil(t, got.AssignedTo)
}

func TestEditTask_Rejections(t *testing.T) {
	projects, _ := fixture(t)
	web := projects[0]

	tests := []struct {
		name      string
		projectID model.ID
		taskID    model.ID
		patch     model.TaskPatch
	}{
		{"blank text", web.ID, web.Tasks[0].ID, model.TaskPatch{Text: strPtr(" ")}},
		{"empty patch", web.ID, web.Tasks[0].ID, model.TaskPatch{}},
		{"unknown status", web.ID, web.Tasks[0].ID, model.TaskPatch{Status: statusPtr("someday")}},
		{"unknown status with text", web.ID, web.Tasks[0].ID, model.TaskPatch{Text: strPtr("x"), Status: statusPtr("someday")}},
		{"missing project", "missing", web.Tasks[0].ID, model.TaskPatch{Text: strPtr("x")}},
		{"missing task", web.ID, "missing", model.TaskPatch{Text: strPtr("x")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := EditTask(projects, tt.projectID, tt.taskID, tt.patch)
			assert.False(t, ok)
			assert.Equal(t, projects, next)
		})
	}
}

func TestDeleteTask(t *testing.T) {
	projects, _ := fixture(t)
	web := projects[0]

	next, ok := DeleteTask(projects, web.ID, web.Tasks[0].ID)
	require.True(t, ok)
	require.Len(t, next[0].Tasks, 1)
	assert.Equal(t, web.Tasks[1], next[0].Tasks[0])

	_, ok = DeleteTask(projects, web.ID, "missing")
	assert.False(t, ok)
	_, ok = DeleteTask(projects, "missing", web.Tasks[0].ID)
	assert.False(t, ok)
}

func TestAddComment(t *testing.T) {
	projects, _ := fixture(t)
	web := projects[0]
	taskID := web.Tasks[0].ID

	next, ok := AddComment(projects, web.ID, taskID, "first")
	require.True(t, ok)
	next, ok = AddComment(next, web.ID, taskID, "second")
	require.True(t, ok)
	assert.Equal(t, []string{"first", "second"}, next[0].Tasks[0].Comments)

	_, ok = AddComment(next, web.ID, taskID, "   ")
	assert.False(t, ok)
	_, ok = AddComment(next, web.ID, "missing", "text")
	assert.False(t, ok)
}

func TestAddComment_CreatesMissingThread(t *testing.T) {
	projects := []model.Project{{
		ID:    "p",
		Name:  "Legacy",
		Tasks: []model.Task{{ID: "t", Text: "old", Status: model.StatusNew}},
	}}

	next, ok := AddComment(projects, "p", "t", "hello")
	require.True(t, ok)
	assert.Equal(t, []string{"hello"}, next[0].Tasks[0].Comments)
}

func TestOperations_LeavePriorSnapshotUntouched(t *testing.T) {
	projects, gen := fixture(t)
	web := projects[0]
	taskID := web.Tasks[0].ID

	before := make([]model.Project, len(projects))
	for i, p := range projects {
		before[i] = p.Clone()
	}

	next, _ := AddComment(projects, web.ID, taskID, "c1")
	next, _ = EditTask(next, web.ID, taskID, model.TaskPatch{Text: strPtr("Redesign")})
	next, _, _ = AddTask(next, gen, web.ID, model.TaskInput{Text: "More"})
	next, _ = DeleteTask(next, web.ID, web.Tasks[1].ID)
	next, _ = EditProject(next, web.ID, "Renamed", []string{"Zed"})
	_, _ = DeleteProject(next, projects[1].ID)

	assert.Equal(t, before, projects)
}

func TestAddComment_DoesNotShareBackingArray(t *testing.T) {
	comments := make([]string, 1, 8)
	comments[0] = "base"
	projects := []model.Project{{
		ID:    "p",
		Name:  "P",
		Tasks: []model.Task{{ID: "t", Text: "x", Status: model.StatusNew, Comments: comments}},
	}}

	a, _ := AddComment(projects, "p", "t", "a")
	b, _ := AddComment(projects, "p", "t", "b")

	assert.Equal(t, []string{"base", "a"}, a[0].Tasks[0].Comments)
	assert.Equal(t, []string{"base", "b"}, b[0].Tasks[0].Comments)
}

func TestProgress(t *testing.T) {
	projects, _ := fixture(t)
	web := projects[0]

	empty, _, _ := AddProject(nil, idgen.Sequence("e"), "Empty", nil)
	assert.Equal(t, 0.0, empty[0].Progress())

	next, ok := EditTask(projects, web.ID, web.Tasks[0].ID, model.TaskPatch{Status: statusPtr(model.StatusDone)})
	require.True(t, ok)
	assert.Equal(t, 50.0, next[0].Progress())

	next, _ = EditTask(next, web.ID, web.Tasks[1].ID, model.TaskPatch{Status: statusPtr(model.StatusInProgress)})
	assert.Equal(t, 50.0, next[0].Progress(), "in-progress does not count as done")
}

func TestRoundTrip_PreservesOrder(t *testing.T) {
	projects, gen := fixture(t)
	due := model.NewDate(2025, 5, 1)
	projects, _, _ = AddTask(projects, gen, projects[0].ID, model.TaskInput{
		Text: "Ship", Deadline: &due, Status: model.StatusInProgress, AssignedTo: "Al",
	})
	projects, _ = AddComment(projects, projects[0].ID, projects[0].Tasks[0].ID, "looks good")

	data, err := json.Marshal(projects)
	require.NoError(t, err)

	var decoded []model.Project
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, projects, decoded)
}
