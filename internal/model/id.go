package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID identifies a project or a task. Ids are opaque strings; older data
// stored millisecond timestamps as JSON numbers, which decode to their
// decimal form.
type ID string

// String returns the id as a plain string
func (id ID) String() string {
	return string(id)
}

// Short returns the last 8 characters. Time-ordered ids share their leading
// digits, the tail is what tells them apart.
func (id ID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[len(id)-8:])
}

// Matches reports whether abbrev is a leading or trailing part of the id
func (id ID) Matches(abbrev string) bool {
	if abbrev == "" {
		return false
	}
	return strings.HasPrefix(string(id), abbrev) || strings.HasSuffix(string(id), abbrev)
}

// UnmarshalJSON accepts both string and numeric ids
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}
