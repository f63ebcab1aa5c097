// Package ui renders trace summaries as an interactive terminal table.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"timetrace/internal/summary"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type viewerModel struct {
	title string
	table table.Model
}

// NewViewerModel returns a Bubble Tea model listing the summary rows.
func NewViewerModel(title string, rows []summary.Row) tea.Model {
	columns := []table.Column{
		{Title: "name", Width: 32},
		{Title: "count", Width: 10},
		{Title: "total ms", Width: 12},
		{Title: "min ms", Width: 10},
		{Title: "max ms", Width: 10},
		{Title: "mean ms", Width: 10},
		{Title: "stddev", Width: 10},
	}

	printer := message.NewPrinter(language.English)
	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, table.Row{
			row.Name,
			printer.Sprintf("%d", row.Count),
			fmt.Sprintf("%.2f", float64(row.Total.Microseconds())/1000.0),
			fmt.Sprintf("%.2f", float64(row.Min.Microseconds())/1000.0),
			fmt.Sprintf("%.2f", float64(row.Max.Microseconds())/1000.0),
			fmt.Sprintf("%.2f", row.MeanMs),
			fmt.Sprintf("%.2f", row.StddevMs),
		})
	}

	height := len(tableRows)
	if height > 20 {
		height = 20
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("6"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	tbl.SetStyles(styles)

	return viewerModel{title: title, table: tbl}
}

func (m viewerModel) Init() tea.Cmd { return nil }

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		height := msg.Height - 6
		if height < 3 {
			height = 3
		}
		m.table.SetHeight(height)
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m viewerModel) View() string {
	return titleStyle.Render(m.title) + "\n" +
		frameStyle.Render(m.table.View()) + "\n" +
		helpStyle.Render("↑/↓ scroll · q quit") + "\n"
}
