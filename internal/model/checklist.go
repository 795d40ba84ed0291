package model

import "encoding/json"

// ChecklistProject is a project of the checklist variant: no members, tasks
// are either completed or not
type ChecklistProject struct {
	ID    ID              `json:"id"`
	Name  string          `json:"name"`
	Tasks []ChecklistTask `json:"tasks"`
}

// ChecklistTask is a task with a completed flag
type ChecklistTask struct {
	ID        ID     `json:"id"`
	Text      string `json:"text"`
	Deadline  *Date  `json:"deadline"`
	Completed bool   `json:"completed"`
}

func (p *ChecklistProject) UnmarshalJSON(data []byte) error {
	type plain ChecklistProject
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = ChecklistProject(raw)
	if p.Tasks == nil {
		p.Tasks = []ChecklistTask{}
	}
	return nil
}

func (t *ChecklistTask) UnmarshalJSON(data []byte) error {
	type plain ChecklistTask
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = ChecklistTask(raw)
	if t.Deadline != nil && t.Deadline.IsZero() {
		t.Deadline = nil
	}
	return nil
}

// FindTask returns the index of the task with id, or -1
func (p *ChecklistProject) FindTask(id ID) int {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Counts returns completed and total task counts
func (p *ChecklistProject) Counts() (done, total int) {
	for i := range p.Tasks {
		if p.Tasks[i].Completed {
			done++
		}
	}
	return done, len(p.Tasks)
}

// Progress returns the percentage of completed tasks, 0 for an empty project
func (p *ChecklistProject) Progress() float64 {
	return Percent(p.Counts())
}

// FindChecklistProject returns the index of the project with id, or -1
func FindChecklistProject(projects []ChecklistProject, id ID) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}

// ChecklistInput carries the fields of a checklist task to be created
type ChecklistInput struct {
	Text     string
	Deadline *Date
}

// ChecklistPatch lists the checklist task fields to change. A non-nil zero
// Deadline clears it.
type ChecklistPatch struct {
	Text      *string
	Deadline  *Date
	Completed *bool
}
