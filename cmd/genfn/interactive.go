package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/genfn/genfn"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	savedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// playgroundModel live-edits an iterator source file with the expansion
// shown next to it.
type playgroundModel struct {
	filename string
	input    textarea.Model
	preview  string
	expErr   error
	status   string
	width    int
	height   int
}

func newPlaygroundModel(filename, source string) *playgroundModel {
	ta := textarea.New()
	ta.Placeholder = "fn* name(params) yields T { ... }"
	ta.SetValue(source)
	ta.Focus()

	m := &playgroundModel{filename: filename, input: ta}
	m.expand()
	return m
}

func (m *playgroundModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *playgroundModel) expand() {
	out, err := genfn.Expand(m.input.Value(), genfn.Options{Package: "main"})
	if err != nil {
		m.expErr = err
		return
	}
	m.expErr = nil
	m.preview = string(out)
}

func (m *playgroundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+s":
			if err := os.WriteFile(m.filename, []byte(m.input.Value()), 0o644); err != nil {
				m.status = errorStyle.Render(fmt.Sprintf("save failed: %v", err))
			} else {
				m.status = savedStyle.Render("saved " + m.filename)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width/2 - 4)
		m.input.SetHeight(msg.Height - 6)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.status = ""
	m.expand()
	return m, cmd
}

func (m *playgroundModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("genfn playground"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	if m.status != "" {
		b.WriteString("  ")
		b.WriteString(m.status)
	}
	b.WriteString("\n")

	right := m.preview
	if m.expErr != nil {
		right = errorStyle.Render(m.expErr.Error())
	}

	paneWidth := m.width/2 - 4
	paneHeight := m.height - 6
	if paneWidth < 10 {
		paneWidth = 40
	}
	if paneHeight < 5 {
		paneHeight = 20
	}

	left := paneStyle.Width(paneWidth).Height(paneHeight).Render(m.input.View())
	rightPane := paneStyle.Width(paneWidth).Height(paneHeight).Render(clipPane(right, paneWidth, paneHeight))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, rightPane))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("edit source • ctrl+s save • esc quit"))
	return b.String()
}

// clipPane trims the preview to the pane so long expansions do not push the
// layout apart.
func clipPane(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if len(line) > width {
			lines[i] = line[:width]
		}
	}
	return strings.Join(lines, "\n")
}

func runInteractive(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read file: %w", err)
	}

	p := tea.NewProgram(newPlaygroundModel(filename, string(data)), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
