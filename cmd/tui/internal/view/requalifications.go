package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmulders/veridose/internal/reclass"
)

type RequalificationsModel struct {
	CommonModel
	reclassService *reclass.Service

	table   table.Model
	impacts []*reclass.CustomerImpact

	loading bool
	err     error
	status  string
}

func NewRequalificationsModel(reclassSvc *reclass.Service) RequalificationsModel {
	columns := []table.Column{
		{Title: "Substance", Width: 14},
		{Title: "Customer", Width: 20},
		{Title: "Licence Gaps", Width: 50},
		{Title: "Flagged", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return RequalificationsModel{
		reclassService: reclassSvc,
		table:          t,
	}
}

func (m RequalificationsModel) Title() string { return "Pending Re-qualifications" }

func (m RequalificationsModel) ShortHelp() string {
	return "Esc: back | m: mark re-qualified | r: refresh"
}

func (m RequalificationsModel) Init() tea.Cmd {
	return m.loadImpactsCmd()
}

func (m RequalificationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadImpactsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.impacts = msg.impacts
		m.refreshTable()

		return m, nil

	case requalifyResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error marking re-qualified: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Re-qualified %s", msg.holder)

		return m, m.loadImpactsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadImpactsCmd()
		case "m":
			return m, m.requalifyCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RequalificationsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading pending re-qualifications...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *RequalificationsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.impacts))

	for _, impact := range m.impacts {
		rows = append(rows, table.Row{
			impact.SubstanceCode,
			FormatHolder(impact.Holder),
			impact.LicenceGapSummary,
			FormatDate(impact.CreatedAt),
		})
	}

	m.table.SetRows(rows)
}

type loadImpactsMsg struct {
	impacts []*reclass.CustomerImpact
	err     error
}

func (m RequalificationsModel) loadImpactsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		impacts, err := m.reclassService.PendingReQualification(ctx)

		return loadImpactsMsg{impacts: impacts, err: err}
	}
}

type requalifyResultMsg struct {
	holder string
	err    error
}

func (m RequalificationsModel) requalifyCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.impacts) {
		return nil
	}

	impact := m.impacts[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.reclassService.MarkReQualified(ctx, impact.ReclassificationID, impact.Holder)

		return requalifyResultMsg{holder: FormatHolder(impact.Holder), err: err}
	}
}
