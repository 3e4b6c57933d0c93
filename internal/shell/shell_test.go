package shell_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jthomas/tasktrack/internal/shell"
	"github.com/jthomas/tasktrack/internal/store"
)

// runSession feeds the commands (one per line) through a fresh shell over
// a memory store and returns everything it printed.
func runSession(t *testing.T, commands ...string) string {
	t.Helper()

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(commands, "\n") + "\n")
	sh := shell.New(store.NewMemoryStore(), in, &out, shell.Options{})

	if err := sh.Run(); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	return out.String()
}

// addLines returns the input lines the interactive add command consumes.
func addLines(title, description, priority string) []string {
	return []string{"add", title, description, priority}
}

func TestHelp(t *testing.T) {
	out := runSession(t, "help", "quit")

	for _, want := range []string{
		"Available commands:",
		"update <id> <status>",
		"quit/exit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	out := runSession(t, "frobnicate", "quit")

	if !strings.Contains(out, "Unknown command.") {
		t.Errorf("expected unknown command message, got:\n%s", out)
	}
}

func TestQuitAndExit(t *testing.T) {
	for _, command := range []string{"quit", "exit"} {
		out := runSession(t, command)
		if !strings.Contains(out, "Goodbye!") {
			t.Errorf("%s: expected goodbye message, got:\n%s", command, out)
		}
	}
}

func TestEndOfInputEndsSession(t *testing.T) {
	// no quit command; the loop must stop at EOF without error
	out := runSession(t, "list")
	if strings.Contains(out, "Goodbye!") {
		t.Errorf("EOF should not print the quit message:\n%s", out)
	}
}

func TestAddAndShow(t *testing.T) {
	session := addLines("Buy groceries", "Milk and bread", "medium")
	session = append(session, "show 1", "quit")
	out := runSession(t, session...)

	if !strings.Contains(out, "Task added successfully with ID: 1") {
		t.Errorf("expected add confirmation, got:\n%s", out)
	}
	if !strings.Contains(out, "ID: 1 | Buy groceries | Priority: Medium | Status: Pending") {
		t.Errorf("expected task details, got:\n%s", out)
	}
	if !strings.Contains(out, "Description: Milk and bread") {
		t.Errorf("expected description line, got:\n%s", out)
	}
}

func TestAddAcceptsPrioritySynonym(t *testing.T) {
	session := addLines("Walk dog", "Morning walk", "l")
	session = append(session, "show 1", "quit")
	out := runSession(t, session...)

	if !strings.Contains(out, "Priority: Low") {
		t.Errorf("expected single-letter synonym to parse as Low, got:\n%s", out)
	}
}

func TestAddInvalidPriorityDefaultsToMedium(t *testing.T) {
	session := addLines("Walk dog", "Morning walk", "urgent")
	session = append(session, "show 1", "quit")
	out := runSession(t, session...)

	if !strings.Contains(out, "Invalid priority. Using 'Medium' as default.") {
		t.Errorf("expected default-priority warning, got:\n%s", out)
	}
	if !strings.Contains(out, "Task added successfully with ID: 1") {
		t.Errorf("add must still succeed with the default priority, got:\n%s", out)
	}
	if !strings.Contains(out, "Priority: Medium") {
		t.Errorf("expected Medium priority after fallback, got:\n%s", out)
	}
}

func TestAddDuplicateTitle(t *testing.T) {
	session := addLines("Test", "d", "low")
	session = append(session, addLines("Test", "d2", "high")...)
	session = append(session, "quit")
	out := runSession(t, session...)

	if !strings.Contains(out, "Error adding task: task with this title already exists") {
		t.Errorf("expected duplicate title error, got:\n%s", out)
	}
}

func TestUpdateStatusAndStats(t *testing.T) {
	session := addLines("a", "d", "low")
	session = append(session, addLines("b", "d", "low")...)
	session = append(session, "update 1 completed", "stats", "quit")
	out := runSession(t, session...)

	if !strings.Contains(out, "Task status updated successfully.") {
		t.Errorf("expected update confirmation, got:\n%s", out)
	}
	for _, want := range []string{
		"Total tasks: 2",
		"Completed: 1",
		"In progress: 0",
		"Pending: 1",
		"Completion rate: 50.0%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestStatsOnEmptyStoreOmitsRate(t *testing.T) {
	out := runSession(t, "stats", "quit")

	if !strings.Contains(out, "Total tasks: 0") {
		t.Errorf("expected zero totals, got:\n%s", out)
	}
	if strings.Contains(out, "Completion rate") {
		t.Errorf("completion rate must be omitted when there are no tasks:\n%s", out)
	}
}

func TestUpdateRejectsBadStatusToken(t *testing.T) {
	session := addLines("a", "d", "low")
	session = append(session, "update 1 done", "show 1", "quit")
	out := runSession(t, session...)

	if !strings.Contains(out, "Invalid status. Use: pending, progress, or completed") {
		t.Errorf("expected invalid status message, got:\n%s", out)
	}
	// the store must not have been touched
	if !strings.Contains(out, "Status: Pending") {
		t.Errorf("task status must be unchanged after a rejected token:\n%s", out)
	}
}

func TestUpdateUsage(t *testing.T) {
	out := runSession(t, "update 1", "quit")

	if !strings.Contains(out, "Usage: update <task_id> <status>") {
		t.Errorf("expected usage message, got:\n%s", out)
	}
}

func TestShowRejectsNonNumericID(t *testing.T) {
	out := runSession(t, "show abc", "quit")

	if !strings.Contains(out, "Invalid task ID. Please provide a number.") {
		t.Errorf("expected invalid id message, got:\n%s", out)
	}
}

func TestShowMissingTask(t *testing.T) {
	out := runSession(t, "show 5", "quit")

	if !strings.Contains(out, "Error: task not found") {
		t.Errorf("expected not-found error, got:\n%s", out)
	}
}

func TestTagJoinsRemainingWords(t *testing.T) {
	session := addLines("a", "d", "low")
	session = append(session, "tag 1 home improvement", "show 1", "quit")
	out := runSession(t, session...)

	if !strings.Contains(out, "Tag added successfully.") {
		t.Errorf("expected tag confirmation, got:\n%s", out)
	}
	if !strings.Contains(out, "Tags: [home improvement]") {
		t.Errorf("expected joined multi-word tag, got:\n%s", out)
	}
}

func TestDelete(t *testing.T) {
	session := addLines("a", "d", "low")
	session = append(session, "delete 1", "show 1", "quit")
	out := runSession(t, session...)

	if !strings.Contains(out, "Task deleted successfully.") {
		t.Errorf("expected delete confirmation, got:\n%s", out)
	}
	if !strings.Contains(out, "Error: task not found") {
		t.Errorf("expected not-found after delete, got:\n%s", out)
	}
}

func TestFilter(t *testing.T) {
	session := addLines("Buy groceries", "Milk and bread", "medium")
	session = append(session, addLines("Walk dog", "Morning walk", "low")...)
	session = append(session, "filter dog", "filter xyz", "quit")
	out := runSession(t, session...)

	if !strings.Contains(out, "=== Filtered Tasks ===") {
		t.Errorf("expected filter header, got:\n%s", out)
	}
	if !strings.Contains(out, "Walk dog") {
		t.Errorf("expected matching task in filter output, got:\n%s", out)
	}
	if strings.Contains(out, "ID: 1 | Buy groceries") {
		t.Errorf("filter dog must not include task 1:\n%s", out)
	}
	if !strings.Contains(out, "No tasks found matching 'xyz'.") {
		t.Errorf("expected empty filter message, got:\n%s", out)
	}
}

func TestPriorityFilterRejectsUnknownLevel(t *testing.T) {
	out := runSession(t, "priority urgent", "quit")

	if !strings.Contains(out, "Invalid priority. Use: low, medium, high, or critical") {
		t.Errorf("expected invalid priority message, got:\n%s", out)
	}
}

func TestPriorityFilter(t *testing.T) {
	session := addLines("a", "d", "high")
	session = append(session, addLines("b", "d", "low")...)
	session = append(session, "priority h", "quit")
	out := runSession(t, session...)

	if !strings.Contains(out, "=== H Priority Tasks ===") {
		t.Errorf("expected priority header, got:\n%s", out)
	}
	if !strings.Contains(out, "ID: 1 | a") {
		t.Errorf("expected high-priority task, got:\n%s", out)
	}
	if strings.Contains(out, "ID: 2 | b") {
		t.Errorf("low-priority task must not appear, got:\n%s", out)
	}
}

func TestStatusFilter(t *testing.T) {
	session := addLines("a", "d", "low")
	session = append(session, addLines("b", "d", "low")...)
	session = append(session, "update 2 progress", "status progress", "quit")
	out := runSession(t, session...)

	if !strings.Contains(out, "=== PROGRESS Tasks ===") {
		t.Errorf("expected status header, got:\n%s", out)
	}
	if !strings.Contains(out, "ID: 2 | b") {
		t.Errorf("expected in-progress task, got:\n%s", out)
	}
	if strings.Contains(out, "ID: 1 | a") {
		t.Errorf("pending task must not appear, got:\n%s", out)
	}
}

func TestListEmpty(t *testing.T) {
	out := runSession(t, "list", "quit")

	if !strings.Contains(out, "No tasks found.") {
		t.Errorf("expected empty-list message, got:\n%s", out)
	}
}

func TestBlankLinesAreIgnored(t *testing.T) {
	out := runSession(t, "", "   ", "quit")

	if strings.Contains(out, "Unknown command.") {
		t.Errorf("blank lines must not be treated as commands:\n%s", out)
	}
}
