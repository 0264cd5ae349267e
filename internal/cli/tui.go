package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/isomer/pkg/solid"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// SolidListModel - Interactive solid selection
// =============================================================================

// SolidListModel is the bubbletea model for interactive solid selection.
type SolidListModel struct {
	Solids   []*solid.Solid
	Cursor   int
	Selected *solid.Solid
	Height   int
	Offset   int
}

// NewSolidListModel creates a new solid list model.
func NewSolidListModel(solids []*solid.Solid) SolidListModel {
	return SolidListModel{Solids: solids, Height: 15}
}

func (m SolidListModel) Init() tea.Cmd {
	return nil
}

func (m SolidListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Solids)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Solids) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Solids[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 3)
	}
	return m, nil
}

func (m SolidListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Solid"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Solids))
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, append([]string{cursor}, solidRow(m.Solids[i])...))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(append([]string{""}, solidHeaders...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Solids))))

	return b.String()
}

// =============================================================================
// Solid table
// =============================================================================

var solidHeaders = []string{"Name", "Title", "Vertices", "Generators", "|G|", "Zeros", "Source"}

func solidRow(s *solid.Solid) []string {
	order := "?"
	if s.ExpectedOrder > 0 {
		order = strconv.Itoa(s.ExpectedOrder)
	}
	return []string{
		s.Name,
		s.Title,
		strconv.Itoa(len(s.Labels)),
		strconv.Itoa(len(s.Generators)),
		order,
		fmt.Sprintf("%d-%d", s.ZeroMin, s.ZeroMax),
		s.Source,
	}
}

// solidTable renders solids as a static table.
func solidTable(solids []*solid.Solid) string {
	rows := make([][]string, len(solids))
	for i, s := range solids {
		rows[i] = solidRow(s)
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(solidHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 4:
				return StyleNumber
			}
			return StyleValue
		}).
		Render()
}

// pickSolid runs the interactive picker. It returns nil if the user quits.
func pickSolid(solids []*solid.Solid) (*solid.Solid, error) {
	final, err := tea.NewProgram(NewSolidListModel(solids)).Run()
	if err != nil {
		return nil, err
	}
	return final.(SolidListModel).Selected, nil
}
