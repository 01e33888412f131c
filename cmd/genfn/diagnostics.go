package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	generr "github.com/genfn/genfn/errors"
)

var (
	locStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA"))

	kindStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	caretStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	gutterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))
)

// reportDiagnostics prints every diagnostic in err with a caret-underlined
// source excerpt.
func reportDiagnostics(path, source string, err error) {
	switch e := err.(type) {
	case generr.List:
		for _, d := range e {
			printDiagnostic(path, source, d)
		}
	case *generr.Error:
		printDiagnostic(path, source, e)
	default:
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
	}
}

func printDiagnostic(path, source string, d *generr.Error) {
	fmt.Fprintf(os.Stderr, "%s %s %s\n",
		locStyle.Render(fmt.Sprintf("%s:%d:%d:", path, d.Span.StartLine+1, d.Span.StartCol+1)),
		kindStyle.Render(fmt.Sprintf("[%s] %s:", d.Phase, d.Kind)),
		d.Detail)

	printExcerpt(source, d.Span)

	if d.Help != "" {
		fmt.Fprintf(os.Stderr, "  %s %s\n", hintStyle.Render("help:"), d.Help)
	}
	fmt.Fprintln(os.Stderr)
}

// printExcerpt shows the first source line of the span with the offending
// range underlined.
func printExcerpt(source string, span generr.Span) {
	lines := strings.Split(source, "\n")
	if span.StartLine >= len(lines) {
		return
	}
	line := strings.ReplaceAll(lines[span.StartLine], "\t", "    ")
	extra := strings.Count(lines[span.StartLine][:min(span.StartCol, len(lines[span.StartLine]))], "\t") * 3

	gutter := fmt.Sprintf("%4d | ", span.StartLine+1)
	fmt.Fprintf(os.Stderr, "%s%s\n", gutterStyle.Render(gutter), line)

	width := 1
	if span.EndLine == span.StartLine && span.EndCol > span.StartCol {
		width = span.EndCol - span.StartCol + 1
	}
	pad := strings.Repeat(" ", span.StartCol+extra)
	fmt.Fprintf(os.Stderr, "%s%s%s\n",
		gutterStyle.Render("     | "),
		pad,
		caretStyle.Render(strings.Repeat("^", width)))
}
