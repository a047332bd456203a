package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/transaction"
	"github.com/jmulders/veridose/internal/validation"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateCreate
)

type TransactionsModel struct {
	CommonModel
	txService  *transaction.Service
	validation *validation.Service

	state txState
	table table.Model
	txs   []*transaction.Transaction
	form  *huh.Form

	statusFilterIdx int
	filter          transaction.ListFilter

	loading bool
	err     error
	status  string

	// Form field bindings
	formReference    string
	formAccount      string
	formJurisdiction string
	formDirection    string
	formSubstance    string
	formQuantity     string
	formUnit         string
}

func NewTransactionsModel(txSvc *transaction.Service, validationSvc *validation.Service) TransactionsModel {
	columns := []table.Column{
		{Title: "Created", Width: 12},
		{Title: "Reference", Width: 16},
		{Title: "Customer", Width: 20},
		{Title: "Direction", Width: 10},
		{Title: "Validation", Width: 10},
		{Title: "Override", Width: 10},
		{Title: "Violations", Width: 40},
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

	return TransactionsModel{
		txService:  txSvc,
		validation: validationSvc,
		table:      t,
		filter:     transaction.ListFilter{},
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	if m.state == txStateCreate {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | v: validate | s: status filter | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.txs = msg.txs
		m.refreshTable()

		return m, nil

	case validateResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Validation error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("%s: %s", msg.reference, msg.result.Status)

		return m, m.loadTxsCmd()

	case createResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error creating: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Created %s", msg.reference)
		}

		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case txStateBrowse:
		return m.updateBrowse(msg)
	case txStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTxsCmd()
		case "n":
			return m.enterCreateMode()
		case "v":
			return m, m.validateCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 4
			m.applyFilter()

			return m, m.loadTxsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formReference = ""
	m.formAccount = ""
	m.formJurisdiction = ""
	m.formDirection = string(transaction.DirectionOutbound)
	m.formSubstance = ""
	m.formQuantity = ""
	m.formUnit = "g"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("reference").
				Title("Reference").
				Value(&m.formReference).
				Validate(notBlank("reference")),

			huh.NewInput().
				Key("customer_account").
				Title("Customer Account").
				Value(&m.formAccount).
				Validate(notBlank("customer account")),

			huh.NewInput().
				Key("jurisdiction").
				Title("Jurisdiction").
				Placeholder("NL").
				Value(&m.formJurisdiction).
				Validate(notBlank("jurisdiction")),

			huh.NewSelect[string]().
				Key("direction").
				Title("Direction").
				Options(
					huh.NewOption("Outbound", string(transaction.DirectionOutbound)),
					huh.NewOption("Inbound", string(transaction.DirectionInbound)),
				).
				Value(&m.formDirection),

			huh.NewInput().
				Key("substance_code").
				Title("Substance Code").
				Value(&m.formSubstance).
				Validate(notBlank("substance code")),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Value(&m.formQuantity).
				Validate(func(s string) error {
					if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("quantity must be a number")
					}

					return nil
				}),

			huh.NewInput().
				Key("unit").
				Title("Unit").
				Value(&m.formUnit).
				Validate(notBlank("unit")),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = txStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}

func (m TransactionsModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createCmd()
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Pending", "Passed", "Failed"}

	header := fmt.Sprintf("Filter: [s] Validation: %s", activeStyle(statusLabels[m.statusFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == txStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("New Transaction\n\n%s", m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *TransactionsModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		status := transaction.ValidationPending
		m.filter.Status = &status
	case 2:
		status := transaction.ValidationPassed
		m.filter.Status = &status
	case 3:
		status := transaction.ValidationFailed
		m.filter.Status = &status
	default:
		m.filter.Status = nil
	}
}

func (m *TransactionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))

	for _, tx := range m.txs {
		codes := make([]string, 0, len(tx.Violations))
		for _, v := range tx.Violations {
			codes = append(codes, v.Code)
		}

		rows = append(rows, table.Row{
			FormatDate(tx.CreatedAt),
			tx.Reference,
			FormatHolder(tx.Holder),
			string(tx.Direction),
			string(tx.ValidationStatus),
			string(tx.OverrideStatus),
			strings.Join(codes, ", "),
		})
	}

	m.table.SetRows(rows)
}

type loadTxsMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.List(ctx, m.filter)

		return loadTxsMsg{txs: txs, err: err}
	}
}

type createResultMsg struct {
	reference string
	err       error
}

func (m TransactionsModel) createCmd() tea.Cmd {
	params := transaction.CreateParams{
		Reference: strings.TrimSpace(m.formReference),
		Holder: customer.HolderKey{
			Account:      strings.TrimSpace(m.formAccount),
			Jurisdiction: strings.TrimSpace(m.formJurisdiction),
		},
		Direction: transaction.Direction(m.formDirection),
	}

	quantity, err := decimal.NewFromString(strings.TrimSpace(m.formQuantity))
	if err != nil {
		return func() tea.Msg {
			return createResultMsg{reference: params.Reference, err: err}
		}
	}

	params.Lines = []transaction.Line{{
		SubstanceCode: strings.TrimSpace(m.formSubstance),
		Quantity:      quantity,
		Unit:          strings.TrimSpace(m.formUnit),
	}}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.txService.Create(ctx, params)

		return createResultMsg{reference: params.Reference, err: err}
	}
}

type validateResultMsg struct {
	reference string
	result    *validation.Result
	err       error
}

func (m TransactionsModel) validateCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	tx := m.txs[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.validation.Validate(ctx, tx)

		return validateResultMsg{reference: tx.Reference, result: result, err: err}
	}
}
