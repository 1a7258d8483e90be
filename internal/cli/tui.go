package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/cannon/pkg/plan"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Sorting
// =============================================================================

// sortKey orders the candidate table.
type sortKey int

const (
	sortEnumeration sortKey = iota
	sortError
	sortShots
	sortPropulsion
	sortKeys
)

func (k sortKey) String() string {
	switch k {
	case sortError:
		return "error"
	case sortShots:
		return "shots"
	case sortPropulsion:
		return "propulsion"
	}
	return "candidate"
}

// rank returns the enumeration index of c.
func rank(c plan.Candidate) int {
	dir := 0
	if c.Direction == plan.West {
		dir = 1
	}
	return (c.Phase*len(plan.Directions)+dir)*(plan.Radius+1) + c.Depth
}

// sortSummaries sorts rows in place. Ties keep enumeration order.
func sortSummaries(rows []plan.Summary, key sortKey) {
	slices.SortStableFunc(rows, func(a, b plan.Summary) int {
		var d float64
		switch key {
		case sortError:
			d = a.Error - b.Error
		case sortShots:
			d = float64(a.ShotCount - b.ShotCount)
		case sortPropulsion:
			d = float64(a.Propulsion - b.Propulsion)
		}
		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		}
		return rank(a.Candidate) - rank(b.Candidate)
	})
}

// =============================================================================
// CandidateModel - Interactive candidate table
// =============================================================================

// CandidateModel is the bubbletea model for browsing candidate scores.
type CandidateModel struct {
	Rows   []plan.Summary
	Best   plan.Candidate
	Title  string
	Sort   sortKey
	Cursor int
	Height int
	Offset int
}

// NewCandidateModel creates a model over a copy of rows.
func NewCandidateModel(title string, rows []plan.Summary, best plan.Candidate) CandidateModel {
	m := CandidateModel{
		Rows:   slices.Clone(rows),
		Best:   best,
		Title:  title,
		Height: 15,
	}
	sortSummaries(m.Rows, m.Sort)
	return m
}

func (m CandidateModel) Init() tea.Cmd {
	return nil
}

func (m CandidateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "s":
			m.Sort = (m.Sort + 1) % sortKeys
			sortSummaries(m.Rows, m.Sort)
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m CandidateModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("↑/↓ navigate  s sort (%s)  q quit", m.Sort)))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	b.WriteString(m.table(m.Offset, end, true).Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// table renders rows [start, end). The cursor column is only drawn in
// interactive mode.
func (m CandidateModel) table(start, end int, interactive bool) *table.Table {
	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		s := m.Rows[i]
		marker := "  "
		if interactive && i == m.Cursor {
			marker = "▸ "
		}
		if s.Candidate == m.Best {
			marker = strings.TrimRight(marker, " ") + "★"
		}
		rows = append(rows, []string{
			marker,
			s.Candidate.String(),
			fmt.Sprintf("%d", s.ShotCount),
			fmt.Sprintf("%.2f", s.Accuracy),
			fmt.Sprintf("%.2f", s.Efficiency),
			fmt.Sprintf("%.3f", s.Error),
			fmt.Sprintf("%d", s.Miss),
			s.Orientation.String(),
			fmt.Sprintf("%d", s.Propulsion),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Candidate", "Shots", "Acc %", "Eff %", "Error", "Miss", "Orientation", "Propulsion").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := start + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			s := m.Rows[idx]
			base := lipgloss.NewStyle()
			switch {
			case s.Candidate == m.Best:
				base = base.Foreground(colorGreen)
			case s.Miss > 0:
				base = base.Foreground(colorYellow)
			case col > 1:
				base = base.Foreground(colorGray)
			}
			if interactive && idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})
}

// Static renders every row without interaction.
func (m CandidateModel) Static() string {
	return m.table(0, len(m.Rows), false).Render()
}
