package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/eulerdraw/pkg/catalog"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// ExampleListModel is the bubbletea model for picking a catalogue example.
type ExampleListModel struct {
	Examples []catalog.Example
	Cursor   int
	Offset   int
	Height   int
	Selected *catalog.Example
}

// NewExampleListModel returns a model listing examples.
func NewExampleListModel(examples []catalog.Example) ExampleListModel {
	return ExampleListModel{Examples: examples, Height: 15}
}

func (m ExampleListModel) Init() tea.Cmd {
	return nil
}

func (m ExampleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Examples)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.Examples)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		case "enter":
			if len(m.Examples) == 0 {
				return m, nil
			}
			ex := m.Examples[m.Cursor]
			m.Selected = &ex
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m ExampleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Example"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ draw  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Examples))
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		ex := m.Examples[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, ex.Name, ex.Group, ex.Description})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Example", "Group", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle()
			if m.Offset+row == m.Cursor {
				if col == 1 || col == 0 {
					return base.Foreground(colorCyan).Bold(true)
				}
				return base.Foreground(colorWhite)
			}
			if col == 2 {
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Examples))))
	return b.String()
}

// pickExample runs the picker and returns the chosen example, or nil when
// the user quit.
func pickExample(examples []catalog.Example) (*catalog.Example, error) {
	final, err := tea.NewProgram(NewExampleListModel(examples)).Run()
	if err != nil {
		return nil, fmt.Errorf("run picker: %w", err)
	}
	return final.(ExampleListModel).Selected, nil
}
