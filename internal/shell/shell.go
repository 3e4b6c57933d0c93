// Package shell implements the line-oriented command interface over a task
// store. It holds no domain state of its own; every command parses its
// arguments, calls one store operation and prints the result.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jthomas/tasktrack/internal/models"
	"github.com/jthomas/tasktrack/internal/store"
)

// Shell reads one command per line from in, dispatches it against the
// store and writes human-readable output to out.
type Shell struct {
	store   store.Store
	scanner *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
	prompt  string
	session string
}

// Options tunes the shell. Zero values fall back to defaults.
type Options struct {
	Prompt string
	Logger *slog.Logger
}

// New creates a shell bound to the given store and streams. Each shell
// gets a session id that appears only in structured logs.
func New(s store.Store, in io.Reader, out io.Writer, opts Options) *Shell {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = "> "
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Shell{
		store:   s,
		scanner: bufio.NewScanner(in),
		out:     out,
		logger:  logger,
		prompt:  prompt,
		session: uuid.NewString(),
	}
}

// Run drives the read-dispatch-print loop until a quit command or end of
// input. Command failures are reported to the user and never end the loop.
func (sh *Shell) Run() error {
	sh.logger.Info("session started", "session", sh.session)

	fmt.Fprintln(sh.out, "=== Personal Task Manager ===")
	fmt.Fprintln(sh.out, "Welcome! Type 'help' for available commands.")
	fmt.Fprintln(sh.out)

	for {
		fmt.Fprint(sh.out, sh.prompt)
		line, ok := sh.readLine()
		if !ok {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			fmt.Fprintln(sh.out, "Goodbye!")
			break
		}

		sh.dispatch(line)
	}

	sh.logger.Info("session ended", "session", sh.session)
	return sh.scanner.Err()
}

func (sh *Shell) readLine() (string, bool) {
	if !sh.scanner.Scan() {
		return "", false
	}
	return sh.scanner.Text(), true
}

func (sh *Shell) dispatch(line string) {
	parts := strings.Fields(line)
	command, args := parts[0], parts[1:]
	sh.logger.Debug("dispatching command", "session", sh.session, "command", command)

	switch command {
	case "help":
		sh.printHelp()
	case "add":
		sh.addTask()
	case "list":
		sh.listTasks()
	case "show":
		sh.showTask(args)
	case "update":
		sh.updateStatus(args)
	case "tag":
		sh.addTag(args)
	case "delete":
		sh.deleteTask(args)
	case "filter":
		sh.filterTasks(args)
	case "priority":
		sh.filterByPriority(args)
	case "status":
		sh.filterByStatus(args)
	case "stats":
		sh.showStatistics()
	default:
		fmt.Fprintln(sh.out, "Unknown command. Type 'help' for available commands.")
	}
}

func (sh *Shell) printHelp() {
	fmt.Fprintln(sh.out, "Available commands:")
	fmt.Fprintln(sh.out, "  add                    - Add a new task (interactive)")
	fmt.Fprintln(sh.out, "  list                   - List all tasks")
	fmt.Fprintln(sh.out, "  show <id>              - Show details of a specific task")
	fmt.Fprintln(sh.out, "  update <id> <status>   - Update task status (pending/progress/completed)")
	fmt.Fprintln(sh.out, "  tag <id> <tag>         - Add a tag to a task")
	fmt.Fprintln(sh.out, "  delete <id>            - Delete a task")
	fmt.Fprintln(sh.out, "  filter <keyword>       - Filter tasks by keyword")
	fmt.Fprintln(sh.out, "  priority <level>       - Filter tasks by priority (low/medium/high/critical)")
	fmt.Fprintln(sh.out, "  status <status>        - Filter tasks by status (pending/progress/completed)")
	fmt.Fprintln(sh.out, "  stats                  - Show task statistics")
	fmt.Fprintln(sh.out, "  help                   - Show this help message")
	fmt.Fprintln(sh.out, "  quit/exit              - Exit the application")
}

// addTask prompts for the task fields on separate lines. An unparseable
// priority token warns and falls back to Medium instead of failing the
// add; this leniency is unique to the interactive path.
func (sh *Shell) addTask() {
	fmt.Fprintln(sh.out, "=== Add New Task ===")

	title := sh.promptLine("Enter task title: ")
	description := sh.promptLine("Enter task description: ")

	fmt.Fprintln(sh.out, "Select priority (low/medium/high/critical): ")
	priorityInput := sh.promptLine("Priority: ")

	priority, err := models.ParsePriority(priorityInput)
	if err != nil {
		fmt.Fprintln(sh.out, "Invalid priority. Using 'Medium' as default.")
		priority = models.TaskPriorityMedium
	}

	id, err := sh.store.Add(title, description, priority)
	if err != nil {
		fmt.Fprintf(sh.out, "Error adding task: %v\n", err)
		return
	}
	fmt.Fprintf(sh.out, "Task added successfully with ID: %d\n", id)
}

func (sh *Shell) promptLine(prompt string) string {
	fmt.Fprint(sh.out, prompt)
	line, _ := sh.readLine()
	return strings.TrimSpace(line)
}

func (sh *Shell) listTasks() {
	tasks, err := sh.store.List()
	if err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	if len(tasks) == 0 {
		fmt.Fprintln(sh.out, "No tasks found.")
		return
	}

	fmt.Fprintln(sh.out, "=== All Tasks ===")
	sh.printTaskList(tasks)
}

func (sh *Shell) showTask(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(sh.out, "Usage: show <task_id>")
		return
	}
	id, ok := sh.parseID(args[0])
	if !ok {
		return
	}

	task, err := sh.store.Get(id)
	if err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(sh.out, "=== Task Details ===")
	sh.printTask(task)
}

func (sh *Shell) updateStatus(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(sh.out, "Usage: update <task_id> <status>")
		fmt.Fprintln(sh.out, "Status options: pending, progress, completed")
		return
	}
	id, ok := sh.parseID(args[0])
	if !ok {
		return
	}

	status, err := models.ParseStatus(args[1])
	if err != nil {
		fmt.Fprintln(sh.out, "Invalid status. Use: pending, progress, or completed")
		return
	}

	if err := sh.store.UpdateStatus(id, status); err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(sh.out, "Task status updated successfully.")
}

// addTag joins the remaining tokens with single spaces so multi-word tags
// survive whitespace tokenization.
func (sh *Shell) addTag(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(sh.out, "Usage: tag <task_id> <tag>")
		return
	}
	id, ok := sh.parseID(args[0])
	if !ok {
		return
	}

	tag := strings.Join(args[1:], " ")
	if err := sh.store.AddTag(id, tag); err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(sh.out, "Tag added successfully.")
}

func (sh *Shell) deleteTask(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(sh.out, "Usage: delete <task_id>")
		return
	}
	id, ok := sh.parseID(args[0])
	if !ok {
		return
	}

	if err := sh.store.Delete(id); err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(sh.out, "Task deleted successfully.")
}

func (sh *Shell) filterTasks(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(sh.out, "Usage: filter <keyword>")
		return
	}

	keyword := strings.Join(args, " ")
	tasks, err := sh.store.ByKeyword(keyword)
	if err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	if len(tasks) == 0 {
		fmt.Fprintf(sh.out, "No tasks found matching '%s'.\n", keyword)
		return
	}

	fmt.Fprintln(sh.out, "=== Filtered Tasks ===")
	sh.printTaskList(tasks)
}

// filterByPriority rejects unparseable levels outright; only the
// interactive add path substitutes a default.
func (sh *Shell) filterByPriority(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(sh.out, "Usage: priority <level>")
		fmt.Fprintln(sh.out, "Levels: low, medium, high, critical")
		return
	}

	priority, err := models.ParsePriority(args[0])
	if err != nil {
		fmt.Fprintln(sh.out, "Invalid priority. Use: low, medium, high, or critical")
		return
	}

	tasks, err := sh.store.ByPriority(priority)
	if err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	if len(tasks) == 0 {
		fmt.Fprintf(sh.out, "No tasks found with %s priority.\n", args[0])
		return
	}

	fmt.Fprintf(sh.out, "=== %s Priority Tasks ===\n", strings.ToUpper(args[0]))
	sh.printTaskList(tasks)
}

func (sh *Shell) filterByStatus(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(sh.out, "Usage: status <status>")
		fmt.Fprintln(sh.out, "Status options: pending, progress, completed")
		return
	}

	status, err := models.ParseStatus(args[0])
	if err != nil {
		fmt.Fprintln(sh.out, "Invalid status. Use: pending, progress, or completed")
		return
	}

	tasks, err := sh.store.ByStatus(status)
	if err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	if len(tasks) == 0 {
		fmt.Fprintf(sh.out, "No tasks found with %s status.\n", args[0])
		return
	}

	fmt.Fprintf(sh.out, "=== %s Tasks ===\n", strings.ToUpper(args[0]))
	sh.printTaskList(tasks)
}

func (sh *Shell) showStatistics() {
	stats, err := sh.store.Stats()
	if err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintln(sh.out, "=== Task Statistics ===")
	fmt.Fprintf(sh.out, "Total tasks: %d\n", stats.Total)
	fmt.Fprintf(sh.out, "Completed: %d\n", stats.Completed)
	fmt.Fprintf(sh.out, "In progress: %d\n", stats.InProgress)
	fmt.Fprintf(sh.out, "Pending: %d\n", stats.Pending)

	if stats.Total > 0 {
		fmt.Fprintf(sh.out, "Completion rate: %.1f%%\n", stats.CompletionRate())
	}
}

// parseID parses a task id argument. On failure it reports the problem to
// the user and returns ok=false; the store is never called with bad input.
func (sh *Shell) parseID(arg string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 0 {
		fmt.Fprintln(sh.out, "Invalid task ID. Please provide a number.")
		return 0, false
	}
	return id, true
}

func (sh *Shell) printTask(t *models.Task) {
	fmt.Fprintf(sh.out, "ID: %d | %s | Priority: %s | Status: %s\n",
		t.ID, t.Title, t.Priority.Label(), t.Status.Label())
	fmt.Fprintf(sh.out, "Description: %s\n", t.Description)
	fmt.Fprintf(sh.out, "Tags: [%s]\n", strings.Join(t.Tags, ", "))
}

func (sh *Shell) printTaskList(tasks []*models.Task) {
	for _, t := range tasks {
		sh.printTask(t)
		fmt.Fprintln(sh.out, "---")
	}
}
