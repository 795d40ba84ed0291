package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/existflow/projectboard/internal/board"
	"github.com/existflow/projectboard/internal/checklist"
	"github.com/existflow/projectboard/internal/idgen"
	"github.com/existflow/projectboard/internal/model"
	"github.com/existflow/projectboard/internal/storage"
)

func (a *app) generator() (idgen.Generator, error) {
	return idgen.New(idgen.Scheme(a.cfg.IDScheme))
}

// openBoard opens the board slot named in config
func (a *app) openBoard(ctx context.Context) (*board.Board, error) {
	gen, err := a.generator()
	if err != nil {
		return nil, err
	}
	slot, err := storage.Open(storage.Backend(a.cfg.Storage), a.cfg.DataDir(), a.cfg.BoardSlot)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return board.Open(ctx, slot, board.Options{IDs: gen, SeedDemo: a.cfg.SeedDemo, Logger: a.log}), nil
}

// openChecklist opens the checklist slot named in config
func (a *app) openChecklist(ctx context.Context) (*checklist.Checklist, error) {
	gen, err := a.generator()
	if err != nil {
		return nil, err
	}
	slot, err := storage.Open(storage.Backend(a.cfg.Storage), a.cfg.DataDir(), a.cfg.ChecklistSlot)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return checklist.Open(ctx, slot, gen, a.log), nil
}

// matchID picks the one id equal to arg, or else the one id starting or
// ending with it
func matchID(ids []model.ID, arg, kind string) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return -1, fmt.Errorf("%s id is required", kind)
	}
	for i, id := range ids {
		if string(id) == arg {
			return i, nil
		}
	}

	found := -1
	for i, id := range ids {
		if id.Matches(arg) {
			if found >= 0 {
				return -1, fmt.Errorf("%s id %q is ambiguous", kind, arg)
			}
			found = i
		}
	}
	if found < 0 {
		return -1, fmt.Errorf("%s not found: %s", kind, arg)
	}
	return found, nil
}

// resolveProject finds a project by id, id prefix or exact name
func resolveProject(projects []model.Project, arg string) (model.Project, error) {
	ids := make([]model.ID, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	idx, err := matchID(ids, arg, "project")
	if err != nil {
		for _, p := range projects {
			if strings.EqualFold(p.Name, strings.TrimSpace(arg)) {
				return p, nil
			}
		}
		return model.Project{}, err
	}
	return projects[idx], nil
}

func resolveTask(p model.Project, arg string) (model.Task, error) {
	ids := make([]model.ID, len(p.Tasks))
	for i, t := range p.Tasks {
		ids[i] = t.ID
	}
	idx, err := matchID(ids, arg, "task")
	if err != nil {
		return model.Task{}, err
	}
	return p.Tasks[idx], nil
}

func resolveChecklistProject(projects []model.ChecklistProject, arg string) (model.ChecklistProject, error) {
	ids := make([]model.ID, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	idx, err := matchID(ids, arg, "project")
	if err != nil {
		for _, p := range projects {
			if strings.EqualFold(p.Name, strings.TrimSpace(arg)) {
				return p, nil
			}
		}
		return model.ChecklistProject{}, err
	}
	return projects[idx], nil
}

func resolveChecklistTask(p model.ChecklistProject, arg string) (model.ChecklistTask, error) {
	ids := make([]model.ID, len(p.Tasks))
	for i, t := range p.Tasks {
		ids[i] = t.ID
	}
	idx, err := matchID(ids, arg, "task")
	if err != nil {
		return model.ChecklistTask{}, err
	}
	return p.Tasks[idx], nil
}

// projectArg returns the --project flag, or the saved context when unset
func (a *app) projectArg(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if ctx := a.currentContext(); ctx != "" {
		return ctx, nil
	}
	return "", fmt.Errorf("no project given: use --project or 'board context set <project>'")
}

func (a *app) contextFilePath() string {
	return filepath.Join(a.cfg.DataDir(), "context")
}

// currentContext returns the default project for task commands, or ""
func (a *app) currentContext() string {
	data, err := os.ReadFile(a.contextFilePath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// joinArgs turns the remaining words of a command line into one text
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

// warnNonMember tells the user that name was not stored as the assignee
// because p has no such member
func warnNonMember(out io.Writer, p model.Project, name string) {
	name = strings.TrimSpace(name)
	if name == "" || p.HasMember(name) {
		return
	}
	fmt.Fprintf(out, "  %s is not a member of %s, task left unassigned\n", name, p.Name)
}

// confirm asks a yes/no question on in
func confirm(in io.Reader, out io.Writer, question string) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// progressBar renders a fixed-width text bar for pct in [0, 100]
func progressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
