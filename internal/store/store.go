// Package store owns task identity, uniqueness and query evaluation.
package store

import (
	"errors"

	"github.com/jthomas/tasktrack/internal/models"
)

var (
	// ErrTaskNotFound is returned when no task exists for the given id.
	ErrTaskNotFound = errors.New("task not found")
	// ErrDuplicateTask is returned by Add when the title collides with an
	// existing task (case-sensitive exact match).
	ErrDuplicateTask = errors.New("task with this title already exists")
)

// Store is the sole authority over task identity, uniqueness and queries.
// Ids are assigned starting at 1 and are never reused, even after Delete.
// Every multi-task query returns tasks in ascending id order; both
// backends guarantee it so callers and tests may rely on it.
type Store interface {
	Add(title, description string, priority models.TaskPriority) (int64, error)
	Get(id int64) (*models.Task, error)
	UpdateStatus(id int64, status models.TaskStatus) error
	AddTag(id int64, tag string) error
	Delete(id int64) error
	List() ([]*models.Task, error)
	ByKeyword(keyword string) ([]*models.Task, error)
	ByPriority(priority models.TaskPriority) ([]*models.Task, error)
	ByStatus(status models.TaskStatus) ([]*models.Task, error)
	Stats() (Statistics, error)
	Close() error
}

// Statistics summarizes the store contents. Every task is in exactly one
// status bucket, so Completed + InProgress + Pending always equals Total.
type Statistics struct {
	Total      int
	Completed  int
	InProgress int
	Pending    int
}

// CompletionRate returns the completed share as a percentage. An empty
// store has a rate of 0.
func (s Statistics) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}
