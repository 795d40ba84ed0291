package model

import (
	"encoding/json"
	"strings"
)

// Project is a named collection of tasks with the members who work on them
type Project struct {
	ID      ID       `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
	Tasks   []Task   `json:"tasks"`
}

// UnmarshalJSON decodes a project and fills in absent collections
func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Project(raw)
	if p.Members == nil {
		p.Members = []string{}
	}
	if p.Tasks == nil {
		p.Tasks = []Task{}
	}
	return nil
}

// HasMember reports whether name is one of the project's members
func (p *Project) HasMember(name string) bool {
	for _, m := range p.Members {
		if m == name {
			return true
		}
	}
	return false
}

// FindTask returns the index of the task with id, or -1
func (p *Project) FindTask(id ID) int {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Counts returns how many tasks are done and how many there are in total
func (p *Project) Counts() (done, total int) {
	for i := range p.Tasks {
		if p.Tasks[i].IsDone() {
			done++
		}
	}
	return done, len(p.Tasks)
}

// Progress returns the percentage of done tasks, 0 for an empty project
func (p *Project) Progress() float64 {
	return Percent(p.Counts())
}

// TasksWithStatus returns the tasks in the given status, in display order.
// An empty status returns every task.
func (p *Project) TasksWithStatus(status Status) []Task {
	if status == "" {
		return p.Tasks
	}
	var out []Task
	for _, t := range p.Tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Clone returns a deep copy of the project
func (p Project) Clone() Project {
	c := p
	c.Members = append([]string{}, p.Members...)
	c.Tasks = make([]Task, len(p.Tasks))
	for i, t := range p.Tasks {
		c.Tasks[i] = t.Clone()
	}
	return c
}

// NormalizeMembers trims member names and drops empty ones, keeping order
func NormalizeMembers(members []string) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// SplitMembers parses a comma-separated member list
func SplitMembers(s string) []string {
	return NormalizeMembers(strings.Split(s, ","))
}

// FindProject returns the index of the project with id, or -1
func FindProject(projects []Project, id ID) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}

// Percent returns done/total*100, or 0 when total is 0
func Percent(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}
