package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jthomas/tasktrack/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps tasks in an in-memory SQLite database. State still
// lives only for the process lifetime; no file is ever opened. It pins a
// single connection because every new connection to :memory: would get its
// own empty database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens a fresh in-memory database and creates the schema.
func NewSQLiteStore() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	// AUTOINCREMENT guarantees ids are never reused after deletion; the
	// UNIQUE constraint on title is case sensitive (BINARY collation).
	_, err := s.db.Exec(`
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL,
			status TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tags (
			task_id INTEGER NOT NULL,
			tag TEXT NOT NULL,
			PRIMARY KEY (task_id, tag),
			FOREIGN KEY(task_id) REFERENCES tasks(id) ON DELETE CASCADE
		);
	`)
	return err
}

// Add creates a Pending task with no tags and returns its id.
func (s *SQLiteStore) Add(title, description string, priority models.TaskPriority) (int64, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE title = ?`, title).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to check title: %w", err)
	}
	if count > 0 {
		return 0, ErrDuplicateTask
	}

	res, err := s.db.Exec(
		`INSERT INTO tasks (title, description, priority, status) VALUES (?, ?, ?, ?)`,
		title, description, string(priority), string(models.TaskStatusPending),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// Get returns the task for id, including its tags in insertion order.
func (s *SQLiteStore) Get(id int64) (*models.Task, error) {
	var t models.Task
	err := s.db.QueryRow(
		`SELECT id, title, description, priority, status FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	tags, err := s.tagsFor(id)
	if err != nil {
		return nil, err
	}
	t.Tags = tags
	return &t, nil
}

// UpdateStatus sets the status unconditionally; any transition is legal.
func (s *SQLiteStore) UpdateStatus(id int64, status models.TaskStatus) error {
	res, err := s.db.Exec(`UPDATE tasks SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return requireRow(res)
}

// AddTag appends tag to the task; adding an existing tag is a no-op.
func (s *SQLiteStore) AddTag(id int64, tag string) error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE id = ?`, id).Scan(&count); err != nil {
		return fmt.Errorf("failed to check task: %w", err)
	}
	if count == 0 {
		return ErrTaskNotFound
	}

	_, err := s.db.Exec(`INSERT OR IGNORE INTO tags (task_id, tag) VALUES (?, ?)`, id, tag)
	if err != nil {
		return fmt.Errorf("failed to insert tag: %w", err)
	}
	return nil
}

// Delete removes the task and its tags. The id is never handed out again.
func (s *SQLiteStore) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(res)
}

// List returns all tasks in ascending id order.
func (s *SQLiteStore) List() ([]*models.Task, error) {
	return s.selectTasks("")
}

// ByKeyword loads all tasks and filters them through the same matcher the
// memory backend uses, so both backends share one matching semantic.
func (s *SQLiteStore) ByKeyword(keyword string) ([]*models.Task, error) {
	tasks, err := s.selectTasks("")
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.MatchesKeyword(keyword) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// ByPriority returns tasks with exactly the given priority.
func (s *SQLiteStore) ByPriority(priority models.TaskPriority) ([]*models.Task, error) {
	return s.selectTasks("priority = ?", string(priority))
}

// ByStatus returns tasks with exactly the given status.
func (s *SQLiteStore) ByStatus(status models.TaskStatus) ([]*models.Task, error) {
	return s.selectTasks("status = ?", string(status))
}

// Stats counts tasks per status bucket.
func (s *SQLiteStore) Stats() (Statistics, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return Statistics{}, fmt.Errorf("failed to count tasks: %w", err)
	}
	defer rows.Close()

	var stats Statistics
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Statistics{}, fmt.Errorf("failed to scan counts: %w", err)
		}
		stats.Total += count
		switch models.TaskStatus(status) {
		case models.TaskStatusCompleted:
			stats.Completed += count
		case models.TaskStatusInProgress:
			stats.InProgress += count
		default:
			stats.Pending += count
		}
	}
	return stats, rows.Err()
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// selectTasks loads tasks matching the optional WHERE clause, in ascending
// id order, with tags attached in insertion order.
func (s *SQLiteStore) selectTasks(where string, args ...any) ([]*models.Task, error) {
	query := `SELECT id, title, description, priority, status FROM tasks`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range tasks {
		tags, err := s.tagsFor(t.ID)
		if err != nil {
			return nil, err
		}
		t.Tags = tags
	}
	return tasks, nil
}

// tagsFor returns the tags of one task ordered by insertion (rowid).
func (s *SQLiteStore) tagsFor(id int64) ([]string, error) {
	rows, err := s.db.Query(`SELECT tag FROM tags WHERE task_id = ? ORDER BY rowid ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// requireRow translates a zero-row mutation into ErrTaskNotFound.
func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
