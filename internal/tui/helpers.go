package tui

import "github.com/existflow/projectboard/internal/model"

// truncate shortens a string to max runes with ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// statusIcon returns the checkbox drawn in front of a task
func statusIcon(status model.Status) string {
	switch status {
	case model.StatusDone:
		return "[x]"
	case model.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}

// nextFilter cycles all -> new -> in-progress -> done -> all
func nextFilter(f model.Status) model.Status {
	switch f {
	case "":
		return model.StatusNew
	case model.StatusDone:
		return ""
	default:
		return f.Next()
	}
}
