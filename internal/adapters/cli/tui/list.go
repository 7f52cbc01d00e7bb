package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devbush/vidrange/internal/ports"
)

var (
	checkedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	uncheckedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
)

// maxVisible is how many list files are shown at once
const maxVisible = 12

// ListPickerModel is the bubbletea model for choosing a list file
type ListPickerModel struct {
	lists    []ports.ListInfo
	cursor   int
	offset   int
	selected string
}

// NewListPickerModel creates a new list picker
func NewListPickerModel(lists []ports.ListInfo) ListPickerModel {
	return ListPickerModel{lists: lists}
}

func (m ListPickerModel) Init() tea.Cmd {
	return nil
}

func (m ListPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.up):
			if m.cursor > 0 {
				m.cursor--
			}
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		case key.Matches(msg, keys.down):
			if m.cursor < len(m.lists)-1 {
				m.cursor++
			}
			if m.cursor >= m.offset+maxVisible {
				m.offset = m.cursor - maxVisible + 1
			}
		case key.Matches(msg, keys.choose):
			if len(m.lists) > 0 {
				m.selected = m.lists[m.cursor].Name
			}
			return m, tea.Quit
		case key.Matches(msg, keys.quit):
			m.selected = ""
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ListPickerModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Select a file:"))
	sb.WriteString("\n\n")

	end := m.offset + maxVisible
	if end > len(m.lists) {
		end = len(m.lists)
	}
	for i := m.offset; i < end; i++ {
		cursor := "  "
		style := uncheckedStyle
		if i == m.cursor {
			cursor = "> "
			style = checkedStyle
		}
		line := fmt.Sprintf("%s%2d. %s", cursor, i+1, FormatListLine(m.lists[i], 48))
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\n%d files | enter=select, q=cancel\n", len(m.lists)))
	return sb.String()
}

// WithCursorOn moves the cursor to the named list, if present
func (m ListPickerModel) WithCursorOn(name string) ListPickerModel {
	for i, l := range m.lists {
		if l.Name == name {
			m.cursor = i
			if m.cursor >= maxVisible {
				m.offset = m.cursor - maxVisible + 1
			}
			break
		}
	}
	return m
}

// Selected returns the chosen file name, empty when cancelled
func (m ListPickerModel) Selected() string {
	return m.selected
}

// RunListPicker displays the list files and returns the chosen name.
// The cursor starts on current when it is one of the lists.
func RunListPicker(lists []ports.ListInfo, current string) (string, error) {
	if len(lists) == 0 {
		return "", nil
	}

	p := tea.NewProgram(NewListPickerModel(lists).WithCursorOn(current))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	return finalModel.(ListPickerModel).Selected(), nil
}
