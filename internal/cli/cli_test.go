package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/existflow/projectboard/internal/board"
	"github.com/existflow/projectboard/internal/logger"
	"github.com/existflow/projectboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`\(id: ([^)]+)\)`)

// run executes the root command against dir with stdout not a terminal
func run(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()

	origTerminal := isTerminalFunc
	isTerminalFunc = func() bool { return false }
	t.Cleanup(func() { isTerminalFunc = origTerminal })

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--data-dir", dir}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, "", args...)
	require.NoError(t, err, out)
	return out
}

func shortID(t *testing.T, out string) string {
	t.Helper()
	m := idPattern.FindStringSubmatch(out)
	require.Len(t, m, 2, "no id in output: %s", out)
	return m[1]
}

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644))
}

func TestRoot_NotTerminal_ListsBoard(t *testing.T) {
	dir := t.TempDir()

	called := false
	origLaunch := launchTUIFunc
	launchTUIFunc = func(b *board.Board, log *logger.Logger) error {
		called = true
		return nil
	}
	defer func() { launchTUIFunc = origLaunch }()

	out := mustRun(t, dir)

	assert.False(t, called, "TUI must not start without a terminal")
	assert.Contains(t, out, "Demo project")
	assert.Contains(t, out, "Create design")
	assert.Contains(t, out, "@Alex")
}

func TestRoot_Terminal_LaunchesTUI(t *testing.T) {
	dir := t.TempDir()

	origLaunch := launchTUIFunc
	origTerminal := isTerminalFunc
	defer func() {
		launchTUIFunc = origLaunch
		isTerminalFunc = origTerminal
	}()

	var projects []model.Project
	launchTUIFunc = func(b *board.Board, log *logger.Logger) error {
		projects = b.Projects()
		return nil
	}
	isTerminalFunc = func() bool { return true }

	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--data-dir", dir})
	require.NoError(t, root.Execute())

	require.Len(t, projects, 1)
	assert.Equal(t, "Demo project", projects[0].Name)
}

func TestRoot_Help_DoesNotLaunchTUI(t *testing.T) {
	origLaunch := launchTUIFunc
	defer func() { launchTUIFunc = origLaunch }()

	called := false
	launchTUIFunc = func(b *board.Board, log *logger.Logger) error {
		called = true
		return nil
	}

	out := mustRun(t, t.TempDir(), "--help")
	assert.False(t, called)
	assert.Contains(t, out, "checklist")
}

func TestProjectCommands(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "seed_demo: false\n")

	out := mustRun(t, dir, "project", "list")
	assert.Contains(t, out, "No projects yet")

	out = mustRun(t, dir, "project", "new", "Website", "-m", " Al, ,Mo ")
	id := shortID(t, out)

	out = mustRun(t, dir, "project", "list")
	assert.Contains(t, out, "Website")
	assert.Contains(t, out, "1 projects, 0 open tasks")

	mustRun(t, dir, "project", "edit", id, "Website", "v2")
	out = mustRun(t, dir, "list", "-P", id)
	assert.Contains(t, out, "Website v2")
	assert.Contains(t, out, "members: Al, Mo", "members are kept without --members")

	mustRun(t, dir, "project", "edit", id, "Website v2", "--members", "Zoe")
	out = mustRun(t, dir, "list", "-P", id)
	assert.Contains(t, out, "members: Zoe")

	_, err := run(t, dir, "", "project", "new", "   ")
	assert.Error(t, err)

	mustRun(t, dir, "project", "delete", id, "--force")
	out = mustRun(t, dir, "project", "list")
	assert.Contains(t, out, "No projects yet")
}

func TestTaskFlow_WithContext(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "seed_demo: false\n")

	_, err := run(t, dir, "", "add", "Orphan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no project given")

	mustRun(t, dir, "project", "new", "Website", "-m", "Al")
	out := mustRun(t, dir, "context", "set", "website")
	assert.Contains(t, out, "Switched to: Website")

	out = mustRun(t, dir, "add", "Design", "landing", "-d", "2025-05-01", "-a", "Al")
	id := shortID(t, out)
	mustRun(t, dir, "add", "Write copy", "-s", "in-progress")

	out = mustRun(t, dir, "comment", id, "looks", "good")
	assert.Contains(t, out, "1 comments")

	out = mustRun(t, dir, "list")
	assert.Contains(t, out, "Design landing")
	assert.Contains(t, out, "@Al")
	assert.Contains(t, out, "💬1")
	assert.Contains(t, out, "2025-05-01 !", "past deadline is marked overdue")
	assert.Contains(t, out, "0% (0/2)")

	out = mustRun(t, dir, "done", id)
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "50.0% done")

	out = mustRun(t, dir, "list", "-s", "done")
	assert.Contains(t, out, "Design landing")
	assert.NotContains(t, out, "Write copy")
	assert.NotContains(t, out, "2025-05-01 !", "done tasks are never overdue")

	out = mustRun(t, dir, "context")
	assert.Contains(t, out, "Website (1/2 tasks)")

	out = mustRun(t, dir, "clear", "--force")
	assert.Contains(t, out, "Removed 1 done task(s)")
	out = mustRun(t, dir, "list")
	assert.NotContains(t, out, "Design landing")
	assert.Contains(t, out, "Write copy")

	out = mustRun(t, dir, "context", "clear")
	assert.Contains(t, out, "Context cleared")
	_, err = run(t, dir, "", "add", "Orphan")
	assert.Error(t, err)
}

func TestContextSet_DemoProject(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "context", "set", "Demo project")
	out := mustRun(t, dir, "context")
	assert.Contains(t, out, "Current context: Demo project")

	out = mustRun(t, dir, "list")
	assert.Contains(t, out, "Create design")
}

func TestAdd_NonMemberIsLeftUnassigned(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "seed_demo: false\n")
	mustRun(t, dir, "project", "new", "Website", "-m", "Al")

	out := mustRun(t, dir, "add", "Fix login", "-P", "Website", "-a", "Bob")
	assert.Contains(t, out, "Bob is not a member of Website")

	out = mustRun(t, dir, "list", "-P", "Website")
	assert.NotContains(t, out, "@Bob")

	out = mustRun(t, dir, "add", "Fix logout", "-P", "Website", "-a", " Al ")
	assert.NotContains(t, out, "not a member")
	id := shortID(t, out)
	assert.Contains(t, mustRun(t, dir, "list", "-P", "Website"), "@Al")

	out = mustRun(t, dir, "edit", id, "-P", "Website", "-a", "Bob")
	assert.Contains(t, out, "Bob is not a member of Website, task left unassigned")
	assert.NotContains(t, out, "@Al")

	out = mustRun(t, dir, "edit", id, "-P", "Website", "-a", "Al")
	assert.NotContains(t, out, "not a member")
	assert.Contains(t, out, "@Al")
}

func TestList_DemoIDsWorkInTheNextCommand(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "list")
	m := regexp.MustCompile(`\[~\]\s+(\S+)\s+Create design`).FindStringSubmatch(out)
	require.Len(t, m, 2, "demo task not listed: %s", out)

	out = mustRun(t, dir, "done", m[1], "-P", "Demo project")
	assert.Contains(t, out, `Completed: "Create design"`)
	assert.Contains(t, mustRun(t, dir, "list"), "[x]")
}

func TestEdit(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "seed_demo: false\n")
	mustRun(t, dir, "project", "new", "Website", "-m", "Al")
	id := shortID(t, mustRun(t, dir, "add", "Draft", "-P", "Website", "-d", "2030-01-01", "-a", "Al"))

	_, err := run(t, dir, "", "edit", id, "-P", "Website")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")

	out := mustRun(t, dir, "edit", id, "-P", "Website", "--text", "Final", "--no-due", "--unassign", "-s", "doing")
	assert.Contains(t, out, "Final")
	assert.Contains(t, out, "[~]")
	assert.NotContains(t, out, "2030-01-01")
	assert.NotContains(t, out, "@Al")

	_, err = run(t, dir, "", "edit", id, "-P", "Website", "--text", "  ")
	assert.Error(t, err)

	_, err = run(t, dir, "", "edit", id, "-P", "Website", "-s", "someday")
	assert.Error(t, err)
}

func TestDelete_AsksForConfirmation(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "seed_demo: false\nconfirm_delete: true\n")
	mustRun(t, dir, "project", "new", "Website")
	id := shortID(t, mustRun(t, dir, "add", "Keep me", "-P", "Website"))

	out, err := run(t, dir, "n\n", "delete", id, "-P", "Website")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Contains(t, mustRun(t, dir, "list", "-P", "Website"), "Keep me")

	out, err = run(t, dir, "y\n", "rm", id, "-P", "Website")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")
	assert.NotContains(t, mustRun(t, dir, "list", "-P", "Website"), "Keep me")
}

func TestDone_Undo(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "seed_demo: false\n")
	mustRun(t, dir, "project", "new", "Website")
	id := shortID(t, mustRun(t, dir, "add", "Ship", "-P", "Website"))

	mustRun(t, dir, "done", id, "-P", "Website")
	out := mustRun(t, dir, "done", id, "-P", "Website", "--undo")
	assert.Contains(t, out, "Reopened")
	assert.Contains(t, out, "0.0% done")
}

func TestStorageBackends(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "seed_demo: false\nstorage: file\n")

	mustRun(t, dir, "project", "new", "Website")
	data, err := os.ReadFile(filepath.Join(dir, "projects.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"Website"`)

	out := mustRun(t, dir, "--storage", "sqlite", "project", "list")
	assert.Contains(t, out, "No projects yet", "the sqlite store is separate")

	mustRun(t, dir, "--ephemeral", "project", "new", "Scratch")
	out = mustRun(t, dir, "project", "list")
	assert.NotContains(t, out, "Scratch")
	assert.Contains(t, out, "Website")

	_, err = run(t, dir, "", "--storage", "floppy", "project", "list")
	assert.Error(t, err)
}

func TestChecklistCommands(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "checklist", "list")
	assert.Contains(t, out, "No checklists yet")

	mustRun(t, dir, "checklist", "project", "new", "Groceries")
	milk := shortID(t, mustRun(t, dir, "checklist", "add", "-P", "Groceries", "Milk"))
	mustRun(t, dir, "cl", "add", "-P", "Groceries", "Bread", "-d", "2025-05-01")

	out = mustRun(t, dir, "checklist", "toggle", "-P", "Groceries", milk)
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "50.0%")

	out = mustRun(t, dir, "checklist", "list")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "2025-05-01")
	assert.NotContains(t, out, "Demo project", "checklists live apart from the board")

	mustRun(t, dir, "checklist", "edit", "-P", "Groceries", milk, "--text", "Oat milk")
	mustRun(t, dir, "checklist", "delete", "-P", "Groceries", milk)
	out = mustRun(t, dir, "checklist", "list", "-P", "Groceries")
	assert.NotContains(t, out, "milk")
	assert.Contains(t, out, "0% (0/1)")

	mustRun(t, dir, "checklist", "project", "edit", "Groceries", "Shopping")
	mustRun(t, dir, "checklist", "project", "delete", "Shopping")
	out = mustRun(t, dir, "checklist", "list")
	assert.Contains(t, out, "No checklists yet")
}

func TestLogFlagsAreRemembered(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "custom.log")

	mustRun(t, dir, "--log-level", "debug", "--log-file", logFile, "project", "list")

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "log_level: debug")

	logged, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "Board opened")
}

func TestMatchID(t *testing.T) {
	ids := []model.ID{"0191aaaa-1111", "0191bbbb-2222", "42"}

	tests := []struct {
		arg     string
		want    int
		wantErr string
	}{
		{"42", 2, ""},
		{"0191aaaa-1111", 0, ""},
		{"0191b", 1, ""},
		{"2222", 1, ""},
		{"0191", -1, "ambiguous"},
		{"zzz", -1, "not found"},
		{" ", -1, "required"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := matchID(ids, tt.arg, "task")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormattingHelpers(t *testing.T) {
	assert.Equal(t, "[░░░░]", progressBar(0, 4))
	assert.Equal(t, "[██░░]", progressBar(50, 4))
	assert.Equal(t, "[████]", progressBar(100, 4))
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))

	assert.True(t, confirm(strings.NewReader("Yes\n"), &bytes.Buffer{}, "ok?"))
	assert.False(t, confirm(strings.NewReader("\n"), &bytes.Buffer{}, "ok?"))
}

func TestPrintTask_OverdueUsesClock(t *testing.T) {
	orig := now
	now = func() time.Time { return time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC) }
	defer func() { now = orig }()

	d := model.NewDate(2025, 5, 1)
	var buf bytes.Buffer
	printTask(&buf, model.Task{ID: "t-1", Text: "Plan", Deadline: &d, Status: model.StatusNew})
	assert.Contains(t, buf.String(), "2025-05-01")
	assert.NotContains(t, buf.String(), "!")
}
