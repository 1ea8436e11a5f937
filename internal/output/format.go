// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"todo/internal/service"
)

// EmptyHint is printed when there are no tasks.
const EmptyHint = "No tasks yet. Create your first task!"

// FormatTask formats a task line.
// Format: "{ID:>4}  [x] {TITLE}  ({COLOR})\n"
func FormatTask(w io.Writer, task service.Task) {
	check := " "
	if task.Completed {
		check = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s  (%s)\n", task.ID, check, NormalizeTitle(task.Title), task.Color.OrGray())
}

// FormatStats formats the summary line.
// The completed part is only shown when there are tasks.
func FormatStats(w io.Writer, total, completed int) {
	fmt.Fprintln(w, Stats(total, completed))
}

// Stats returns the summary text, e.g. "Tasks: 3 • Completed: 1 of 3".
func Stats(total, completed int) string {
	if total == 0 {
		return fmt.Sprintf("Tasks: %d", total)
	}
	return fmt.Sprintf("Tasks: %d • Completed: %d of %d", total, completed, total)
}

// FormatTaskDetail prints every field of a task, one per line.
func FormatTaskDetail(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "id:          %d\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", NormalizeTitle(task.Title))
	if task.Description != "" {
		fmt.Fprintf(w, "description: %s\n", task.Description)
	}
	color := string(task.Color)
	if color == "" {
		color = "(none)"
	}
	fmt.Fprintf(w, "color:       %s\n", color)
	fmt.Fprintf(w, "completed:   %t\n", task.Completed)
	fmt.Fprintf(w, "created:     %s\n", task.CreatedAt)
	fmt.Fprintf(w, "updated:     %s\n", task.UpdatedAt)
}

// FormatColor prints a palette entry, marking the default.
func FormatColor(w io.Writer, c, def service.Color) {
	name := ColorName(c)
	if c == def {
		name += " [default]"
	}
	fmt.Fprintln(w, name)
}

// ColorName returns the display name of a color, e.g. "Blue".
func ColorName(c service.Color) string {
	return cases.Title(language.English).String(string(c))
}

// NormalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
