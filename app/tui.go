// Package app provides the interactive terminal surfaces pagecarve falls
// back to when a conflict needs a human decision, or when --preview is
// passed to inspect a selection before committing to it.
package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pagecarve/config"
	"pagecarve/selector"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7aa2f7")).
			Align(lipgloss.Center)

	subHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a9b1d6"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e")).
			Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	appBox = lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7aa2f7"))
)

// conflictChoice mirrors config.ConflictStrategy but restricted to the
// choices a human can actually make for one path (never "ask" again).
type conflictChoice int

const (
	choiceOverwrite conflictChoice = iota
	choiceSkip
	choiceRename
	choiceFail
)

var conflictLabels = []string{"Overwrite", "Skip", "Rename", "Abort"}
var conflictStrategies = []config.ConflictStrategy{
	config.ConflictOverwrite, config.ConflictSkip, config.ConflictRename, config.ConflictFail,
}

type conflictModel struct {
	path     string
	cursor   int
	chosen   config.ConflictStrategy
	done     bool
}

func (m conflictModel) Init() tea.Cmd { return nil }

func (m conflictModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(conflictLabels)-1 {
			m.cursor++
		}
	case "enter":
		m.chosen = conflictStrategies[m.cursor]
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "q":
		m.chosen = config.ConflictFail
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m conflictModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("pagecarve") + "\n\n")
	b.WriteString(warningStyle.Render("Output already exists:") + "\n")
	b.WriteString(infoStyle.Render(m.path) + "\n\n")

	var buttons []string
	for i, label := range conflictLabels {
		style := infoStyle.Padding(0, 1)
		if i == m.cursor {
			style = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.Color("#1a1b26")).
				Background(lipgloss.Color("#9ece6a")).
				Padding(0, 1)
		}
		buttons = append(buttons, style.Render(label))
	}
	b.WriteString(strings.Join(buttons, "  ") + "\n\n")
	b.WriteString(separatorStyle.Render("←/→ choose  •  enter confirm  •  q abort"))
	return appBox.Render(b.String())
}

// AskConflict runs an interactive prompt for one conflicting path and
// returns the chosen resolution strategy. Suitable as a rename.AskFunc.
func AskConflict(path string) (config.ConflictStrategy, error) {
	m := conflictModel{path: path}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return config.ConflictFail, err
	}
	cm := final.(conflictModel)
	return cm.chosen, nil
}

// previewModel pages through the groups a selection produced, for
// --preview.
type previewModel struct {
	groups    []selector.Group
	current   int
	quit      bool
	cancelled bool
}

func (m previewModel) Init() tea.Cmd { return nil }

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "right", "l", "n", "space":
		if m.current < len(m.groups)-1 {
			m.current++
		}
	case "left", "h", "p":
		if m.current > 0 {
			m.current--
		}
	case "enter":
		m.quit = true
		return m, tea.Quit
	case "q", "ctrl+c":
		m.quit = true
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m previewModel) View() string {
	if m.quit {
		return ""
	}
	if len(m.groups) == 0 {
		return appBox.Render(warningStyle.Render("Selection produced no groups."))
	}

	g := m.groups[m.current]
	var b strings.Builder
	b.WriteString(headerStyle.Render("pagecarve preview") + "\n\n")
	b.WriteString(subHeaderStyle.Render(fmt.Sprintf("Group %d of %d", m.current+1, len(m.groups))) + "\n")
	if g.OriginalSpec != "" {
		b.WriteString(infoStyle.Render("source: "+g.OriginalSpec) + "\n")
	}
	b.WriteString(successStyle.Render(fmt.Sprintf("pages: %s", formatPages(g.Pages))) + "\n\n")
	b.WriteString(separatorStyle.Render("←/→ page through groups  •  enter continue  •  q cancel"))
	return appBox.Render(b.String())
}

func formatPages(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, ", ")
}

// Preview runs an interactive group browser and reports whether the user
// chose to continue (enter) rather than cancel (q/ctrl+c).
func Preview(groups []selector.Group) (bool, error) {
	m := previewModel{groups: groups}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return false, err
	}
	pm := final.(previewModel)
	return !pm.cancelled, nil
}
