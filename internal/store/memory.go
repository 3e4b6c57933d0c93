package store

import (
	"sort"
	"sync"

	"github.com/jthomas/tasktrack/internal/models"
)

// MemoryStore keeps all tasks in a map keyed by id, with a monotonically
// increasing next-id counter. This is the default backend.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	tasks  map[int64]*models.Task
}

// NewMemoryStore returns an empty store. The first assigned id is 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		tasks:  make(map[int64]*models.Task),
	}
}

// Add creates a Pending task with no tags and returns its id. Titles must
// be unique across the store.
func (s *MemoryStore) Add(title, description string, priority models.TaskPriority) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.Title == title {
			return 0, ErrDuplicateTask
		}
	}

	id := s.nextID
	s.nextID++
	s.tasks[id] = &models.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      models.TaskStatusPending,
	}
	return id, nil
}

// Get returns the stored task for id. The returned pointer is a borrowed
// view owned by the store.
func (s *MemoryStore) Get(id int64) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// UpdateStatus sets the status unconditionally; any transition is legal.
func (s *MemoryStore) UpdateStatus(id int64, status models.TaskStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	task.Status = status
	return nil
}

// AddTag appends tag to the task; adding an existing tag is a no-op.
func (s *MemoryStore) AddTag(id int64, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	task.AddTag(tag)
	return nil
}

// Delete removes the task. Its id is never handed out again.
func (s *MemoryStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// List returns all tasks in ascending id order.
func (s *MemoryStore) List() ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(*models.Task) bool { return true }), nil
}

// ByKeyword returns tasks whose title, description or any tag contains
// keyword as a case-insensitive substring.
func (s *MemoryStore) ByKeyword(keyword string) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(t *models.Task) bool { return t.MatchesKeyword(keyword) }), nil
}

// ByPriority returns tasks with exactly the given priority.
func (s *MemoryStore) ByPriority(priority models.TaskPriority) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(t *models.Task) bool { return t.Priority == priority }), nil
}

// ByStatus returns tasks with exactly the given status.
func (s *MemoryStore) ByStatus(status models.TaskStatus) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(t *models.Task) bool { return t.Status == status }), nil
}

// Stats counts tasks per status bucket.
func (s *MemoryStore) Stats() (Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Statistics{Total: len(s.tasks)}
	for _, t := range s.tasks {
		switch t.Status {
		case models.TaskStatusCompleted:
			stats.Completed++
		case models.TaskStatusInProgress:
			stats.InProgress++
		default:
			stats.Pending++
		}
	}
	return stats, nil
}

// Close is a no-op; the memory backend holds no external resources.
func (s *MemoryStore) Close() error {
	return nil
}

// collect returns matching tasks sorted by ascending id. Callers must hold
// at least a read lock.
func (s *MemoryStore) collect(match func(*models.Task) bool) []*models.Task {
	tasks := make([]*models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if match(t) {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}
