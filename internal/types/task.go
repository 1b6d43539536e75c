// Package types defines the task records exchanged with Taskwarrior hooks.
package types

import (
	"encoding/json"
	"slices"
)

// Status is a Taskwarrior task status
type Status string

// Statuses that can fire the hook
const (
	StatusCompleted Status = "completed"
	StatusDeleted   Status = "deleted"
)

// Event is the lifecycle transition that fires the annotation prompt
type Event string

const (
	EventCompleted Event = "completed"
	EventDeleted   Event = "deleted"
)

// Task is one task object as exported on the hook feed.
// Only the fields the hook consumes are decoded; everything else is dropped.
type Task struct {
	UUID        string   `json:"uuid,omitempty"`
	ID          int      `json:"id,omitempty"` // 0 for completed/deleted tasks
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	// noDescription is set when a decoded task had no description key
	// at all, as opposed to an empty one.
	noDescription bool
}

// UnmarshalJSON decodes a feed object and records whether it carried a
// description.
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	aux := struct {
		*plain
		Description *string `json:"description"`
	}{plain: (*plain)(t)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.noDescription = aux.Description == nil
	if aux.Description != nil {
		t.Description = *aux.Description
	}
	return nil
}

// HasTag reports whether the task carries tag.
func (t *Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// DisplayDescription returns the description, or "task" when the feed
// object had no description key. An empty description is shown as is.
func (t *Task) DisplayDescription() string {
	if t.noDescription {
		return "task"
	}
	return t.Description
}
