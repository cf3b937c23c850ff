package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/pdxmph/todos-tui/internal/todo"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Overlays replace the whole screen
	if m.deleteConfirmMode {
		task, _ := m.store.FindByID(m.deleteTaskID)
		return m.renderConfirmation(fmt.Sprintf("Delete '%s'? (y/n)", truncate(sanitize(task.Text), 40)))
	}
	if m.clearAllConfirmMode {
		return m.renderConfirmation(fmt.Sprintf("Delete all %d %s? (y/n)", m.stats.Total, plural(m.stats.Total, "task")))
	}

	paneHeight := m.height - 4
	listWidth := m.width / 2
	detailWidth := m.width - listWidth - 4 // account for borders

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		borderStyle.Width(listWidth).Height(paneHeight).Render(m.renderList(listWidth, paneHeight)),
		borderStyle.Width(detailWidth).Height(paneHeight).Render(m.renderDetail(detailWidth)),
	)

	status := " " + statusStyle.Render(m.status)
	return lipgloss.JoinVertical(lipgloss.Left, content, status, m.renderHelp())
}

// renderTabs renders the filter selector with per-filter counts
func (m Model) renderTabs() string {
	counts := map[todo.Filter]int{
		todo.FilterAll:       m.stats.Total,
		todo.FilterActive:    m.stats.Active,
		todo.FilterCompleted: m.stats.Completed,
	}

	var tabs []string
	for i, f := range todo.Filters {
		label := fmt.Sprintf("%d:%s (%d)", i+1, f, counts[f])
		if f == m.store.CurrentFilter() {
			tabs = append(tabs, activeTabStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, tabStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(tabs, " ")
}

// renderList renders the task list
func (m Model) renderList(width, height int) string {
	var lines []string

	lines = append(lines, m.renderTabs())
	lines = append(lines, strings.Repeat("─", max(width-2, 0)))
	height -= 2

	if m.addMode {
		lines = append(lines, m.input.View())
		lines = append(lines, "")
		height -= 2
	}

	if len(m.tasks) == 0 {
		lines = append(lines, tabStyle.Render("  Nothing here. Press a to add a task."))
		return strings.Join(lines, "\n")
	}

	// Calculate visible range
	startIdx := 0
	if m.selected >= height {
		startIdx = m.selected - height + 1
	}

	for i := startIdx; i < len(m.tasks) && i < startIdx+height; i++ {
		t := m.tasks[i]

		box := "[ ] "
		if t.Completed {
			box = "[x] "
		}
		text := truncate(sanitize(t.Text), width-8)

		var line string
		switch {
		case i == m.selected:
			line = selectedStyle.Render(box + text)
		case t.Completed:
			line = box + completedStyle.Render(text)
		default:
			line = box + text
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// renderDetail renders the selected task
func (m Model) renderDetail(width int) string {
	t, ok := m.current()
	if !ok {
		return fmt.Sprintf("%d active • %d completed • %d total", m.stats.Active, m.stats.Completed, m.stats.Total)
	}

	var lines []string
	lines = append(lines, wrapText(sanitize(t.Text), width-2)...)
	lines = append(lines, strings.Repeat("─", max(width-2, 0)))
	lines = append(lines, "")

	status := "active"
	if t.Completed {
		status = "completed"
	}
	lines = append(lines, fmt.Sprintf("Status:  %s", status))
	lines = append(lines, fmt.Sprintf("Created: %s", t.CreatedAt.Local().Format("2006-01-02 15:04")))
	lines = append(lines, fmt.Sprintf("ID:      %s", t.ID))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%d active • %d completed • %d total", m.stats.Active, m.stats.Completed, m.stats.Total))

	return strings.Join(lines, "\n")
}

// renderHelp renders the help line
func (m Model) renderHelp() string {
	if m.addMode {
		return " Type task • Enter: save • Esc: cancel"
	}

	help := " j/k: navigate • a: add • space: toggle • d: delete • f/1-3: filter"
	if m.stats.Completed > 0 {
		help += " • c: clear completed"
	}
	if m.stats.Total > 0 {
		help += " • C: clear all"
	}
	help += " • q: quit"

	return help
}

// renderConfirmation renders a centered y/n prompt
func (m Model) renderConfirmation(prompt string) string {
	width := 60
	height := 7

	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-4).
		Align(lipgloss.Center, lipgloss.Center).
		Render(prompt)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(width).
		Height(height).
		Render(content)

	// Center on screen
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}

// sanitize drops control characters so stored text cannot emit terminal
// escape sequences or break the layout
func sanitize(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}

// truncate shortens text to width display cells, marking the cut
func truncate(text string, width int) string {
	if width <= 1 || lipgloss.Width(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{}
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if lipgloss.Width(currentLine)+1+lipgloss.Width(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}
