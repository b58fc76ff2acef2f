// Package ui renders command listings and prompts for the taco CLI.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	aliasStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	commandStyle = lipgloss.NewStyle().Faint(true)
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	countStyle   = lipgloss.NewStyle().Faint(true)
)

// Alias styles a command alias name.
func Alias(name string) string { return aliasStyle.Render(name) }

// PrintCommands writes the listing for a command map, sorted by alias name.
func PrintCommands(w io.Writer, commands map[string]string) {
	fmt.Fprintln(w, "Available commands:")
	fmt.Fprintln(w)

	if len(commands) == 0 {
		fmt.Fprintln(w, emptyStyle.Render(" ∙ There are no commands available."))
		fmt.Fprintln(w)
	}

	names := slices.Sorted(maps.Keys(commands))
	for _, name := range names {
		fmt.Fprintf(w, "  taco %s\n    %s\n\n", aliasStyle.Render(name), commandStyle.Render(commands[name]))
	}

	fmt.Fprintln(w, countStyle.Render(pluralize(len(commands), "command")))
}

// Confirm prints a y/N prompt and reads one line. Empty input and "y"/"Y"
// both confirm, matching the original behavior.
func Confirm(r io.Reader, w io.Writer, message string) bool {
	fmt.Fprintf(w, "%s (y/N) ", message)

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.TrimSpace(line)
	return answer == "" || strings.EqualFold(answer, "y")
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
