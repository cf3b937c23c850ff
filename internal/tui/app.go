package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pdxmph/todos-tui/internal/todo"
)

// Model represents the main application state
type Model struct {
	store    *todo.Store
	tasks    []todo.Task // current filtered view, re-read after every mutation
	stats    todo.Stats
	selected int
	width    int
	height   int

	// Add mode
	addMode bool
	input   textinput.Model

	// Delete confirmation mode
	deleteConfirmMode bool
	deleteTaskID      string

	// Clear-all confirmation mode
	clearAllConfirmMode bool

	// One-line feedback shown above the help line
	status string
}

// Styles
var (
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// New creates a new application model
func New(store *todo.Store) Model {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.Width = 40
	ti.Prompt = "> "
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230"))
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	m := Model{
		store: store,
		input: ti,
	}
	m.refresh()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.width > 0 {
			m.input.Width = m.width/2 - 6
		}
		return m, nil

	case tea.KeyMsg:
		if m.deleteConfirmMode {
			return m.updateDeleteConfirm(msg)
		}
		if m.clearAllConfirmMode {
			return m.updateClearAllConfirm(msg)
		}
		if m.addMode {
			return m.updateAdd(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.selected < len(m.tasks)-1 {
			m.selected++
		}

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}

	case "g", "home":
		m.selected = 0

	case "G", "end":
		if len(m.tasks) > 0 {
			m.selected = len(m.tasks) - 1
		}

	case "a", "n":
		m.addMode = true
		m.input.Reset()
		m.input.Focus()
		return m, textinput.Blink

	case " ", "x", "enter":
		if task, ok := m.current(); ok {
			m.store.Toggle(task.ID)
			m.refresh()
		}

	case "d", "delete":
		if task, ok := m.current(); ok {
			m.deleteConfirmMode = true
			m.deleteTaskID = task.ID
		}

	case "f", "tab":
		m.setFilter(m.store.CurrentFilter().Next())

	case "1":
		m.setFilter(todo.FilterAll)
	case "2":
		m.setFilter(todo.FilterActive)
	case "3":
		m.setFilter(todo.FilterCompleted)

	case "c":
		removed := m.store.ClearCompleted()
		m.refresh()
		if removed == 0 {
			m.status = "No completed tasks to clear"
		} else {
			m.status = fmt.Sprintf("Cleared %d completed %s", removed, plural(removed, "task"))
		}

	case "C":
		if m.stats.Total > 0 {
			m.clearAllConfirmMode = true
		}
	}

	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.addMode = false
		m.status = ""
		m.input.Reset()
		m.input.Blur()
		return m, nil

	case "enter":
		value := m.input.Value()
		task, ok := m.store.Create(value)
		if !ok {
			// The store does not say why; classify it here for the message
			_, rejection := todo.ValidateText(value)
			m.status = rejection.String()
			return m, nil
		}

		m.addMode = false
		m.status = ""
		m.input.Reset()
		m.input.Blur()
		m.refresh()
		m.selectTask(task.ID)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.store.Delete(m.deleteTaskID)
		m.refresh()
	}
	// Any other key cancels
	m.deleteConfirmMode = false
	m.deleteTaskID = ""
	return m, nil
}

func (m Model) updateClearAllConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.store.ClearAll()
		m.refresh()
		m.status = "Cleared all tasks"
	}
	m.clearAllConfirmMode = false
	return m, nil
}

func (m *Model) setFilter(f todo.Filter) {
	m.store.SetFilter(f)
	m.refresh()
}

// refresh re-reads the view and counts from the store
func (m *Model) refresh() {
	m.tasks = m.store.List()
	m.stats = m.store.Stats()
	m.selected = m.ensureValidSelection()
}

// selectTask moves the cursor to id when it is visible under the current filter
func (m *Model) selectTask(id string) {
	for i, t := range m.tasks {
		if t.ID == id {
			m.selected = i
			return
		}
	}
}

// current returns the task under the cursor
func (m Model) current() (todo.Task, bool) {
	if len(m.tasks) == 0 || m.selected >= len(m.tasks) {
		return todo.Task{}, false
	}
	return m.tasks[m.selected], true
}

// ensureValidSelection ensures the current selection is within bounds
func (m Model) ensureValidSelection() int {
	if len(m.tasks) == 0 {
		return 0
	}
	if m.selected >= len(m.tasks) {
		return len(m.tasks) - 1
	}
	if m.selected < 0 {
		return 0
	}
	return m.selected
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
