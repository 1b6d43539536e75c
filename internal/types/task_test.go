package types

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestTaskDecode(t *testing.T) {
	line := `{"uuid":"abc-1","id":5,"description":"Fix bug","status":"completed","tags":["ann","work"],"urgency":4.2}`

	var task Task
	if err := json.Unmarshal([]byte(line), &task); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if task.UUID != "abc-1" {
		t.Errorf("UUID = %q, want %q", task.UUID, "abc-1")
	}
	if task.ID != 5 {
		t.Errorf("ID = %d, want 5", task.ID)
	}
	if task.Description != "Fix bug" {
		t.Errorf("Description = %q, want %q", task.Description, "Fix bug")
	}
	if task.Status != StatusCompleted {
		t.Errorf("Status = %q, want %q", task.Status, StatusCompleted)
	}
	if !slices.Equal(task.Tags, []string{"ann", "work"}) {
		t.Errorf("Tags = %v, want [ann work]", task.Tags)
	}
}

func TestTaskDecodeRejectsNonObject(t *testing.T) {
	for _, line := range []string{`["an","array"]`, `"text"`, `42`} {
		var task Task
		if err := json.Unmarshal([]byte(line), &task); err == nil {
			t.Errorf("Unmarshal(%s) error = nil, want error", line)
		}
	}
}

func TestTaskHasTag(t *testing.T) {
	task := &Task{Tags: []string{"ann", "home"}}

	tests := []struct {
		tag  string
		want bool
	}{
		{"ann", true},
		{"home", true},
		{"an", false},
	}
	for _, tt := range tests {
		if got := task.HasTag(tt.tag); got != tt.want {
			t.Errorf("HasTag(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
	if (&Task{}).HasTag("ann") {
		t.Error("HasTag() on untagged task = true, want false")
	}
}

func TestDisplayDescription(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"present", `{"uuid":"u1","description":"Fix bug"}`, "Fix bug"},
		{"missing key", `{"uuid":"u1"}`, "task"},
		{"empty value", `{"uuid":"u1","description":""}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var task Task
			if err := json.Unmarshal([]byte(tt.line), &task); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got := task.DisplayDescription(); got != tt.want {
				t.Errorf("DisplayDescription() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := (&Task{Description: "Fix bug"}).DisplayDescription(); got != "Fix bug" {
		t.Errorf("DisplayDescription() = %q, want %q", got, "Fix bug")
	}
}
