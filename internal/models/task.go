package models

import (
	"errors"
	"strings"
)

// ErrInvalidInput is returned when a priority or status token cannot be
// parsed. The store itself never produces it; it belongs to the layers
// that turn raw text into enumeration values.
var ErrInvalidInput = errors.New("invalid input provided")

// TaskStatus defines the workflow status of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// ValidTaskStatuses contains all valid task status values
var ValidTaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
}

// IsValidTaskStatus checks if a status string is a valid TaskStatus
func IsValidTaskStatus(s string) bool {
	for _, status := range ValidTaskStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}

// ParseStatus maps a shell status token to a TaskStatus. The accepted
// tokens are exactly "pending", "progress" and "completed", lowercase
// only with no synonyms. Anything else yields ErrInvalidInput.
func ParseStatus(s string) (TaskStatus, error) {
	switch s {
	case "pending":
		return TaskStatusPending, nil
	case "progress":
		return TaskStatusInProgress, nil
	case "completed":
		return TaskStatusCompleted, nil
	}
	return "", ErrInvalidInput
}

// Label returns the human-readable form of the status.
func (s TaskStatus) Label() string {
	switch s {
	case TaskStatusPending:
		return "Pending"
	case TaskStatusInProgress:
		return "In Progress"
	case TaskStatusCompleted:
		return "Completed"
	}
	return string(s)
}

// Task represents a single tracked unit of work. The ID is assigned by the
// store at insertion time and never changes or gets reused.
type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	Tags        []string     `json:"tags,omitempty"`
}

// AddTag appends tag unless the task already carries it. Comparison is
// case-sensitive; insertion order is preserved.
func (t *Task) AddTag(tag string) {
	for _, existing := range t.Tags {
		if existing == tag {
			return
		}
	}
	t.Tags = append(t.Tags, tag)
}

// MatchesKeyword reports whether keyword appears as a case-insensitive
// substring of the title, the description or any tag.
func (t *Task) MatchesKeyword(keyword string) bool {
	k := strings.ToLower(keyword)
	if strings.Contains(strings.ToLower(t.Title), k) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), k) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), k) {
			return true
		}
	}
	return false
}
