package models

import "strings"

// TaskPriority defines the urgency level of a task
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

// ValidTaskPriorities contains all valid task priority values
var ValidTaskPriorities = []TaskPriority{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
	TaskPriorityCritical,
}

// IsValidTaskPriority checks if a priority string is a valid TaskPriority
func IsValidTaskPriority(s string) bool {
	for _, priority := range ValidTaskPriorities {
		if string(priority) == s {
			return true
		}
	}
	return false
}

// ParsePriority maps a user token to a TaskPriority. Full names and
// single-letter synonyms are accepted, case-insensitively. Unknown tokens
// yield ErrInvalidInput.
func ParsePriority(s string) (TaskPriority, error) {
	switch strings.ToLower(s) {
	case "low", "l":
		return TaskPriorityLow, nil
	case "medium", "m":
		return TaskPriorityMedium, nil
	case "high", "h":
		return TaskPriorityHigh, nil
	case "critical", "c":
		return TaskPriorityCritical, nil
	}
	return "", ErrInvalidInput
}

// Label returns the human-readable form of the priority.
func (p TaskPriority) Label() string {
	switch p {
	case TaskPriorityLow:
		return "Low"
	case TaskPriorityMedium:
		return "Medium"
	case TaskPriorityHigh:
		return "High"
	case TaskPriorityCritical:
		return "Critical"
	}
	return string(p)
}
