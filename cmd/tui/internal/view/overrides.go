package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmulders/veridose/internal/override"
	"github.com/jmulders/veridose/internal/transaction"
)

type OverridesModel struct {
	CommonModel
	overrideService *override.Service
	actor           string

	state OverrideState

	queue     []*transaction.Transaction
	currentTx *transaction.Transaction

	// pendingDecision holds the status chosen with a/r while the reason is
	// being typed.
	pendingDecision transaction.OverrideStatus
	reasonInput     textinput.Model

	status     string
	loading    bool
	totalCount int
}

type OverrideState int

const (
	StateDeciding OverrideState = iota
	StateInputReason
)

func NewOverridesModel(overrideSvc *override.Service, actor string) OverridesModel {
	ri := textinput.New()
	ri.Placeholder = "Justification"
	ri.Width = 60

	return OverridesModel{
		overrideService: overrideSvc,
		actor:           actor,
		reasonInput:     ri,
		state:           StateDeciding,
		loading:         true,
		status:          "Loading pending overrides...",
	}
}

func (m OverridesModel) Init() tea.Cmd {
	return m.loadPendingCmd()
}

func (m OverridesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEsc:
			if m.state == StateInputReason {
				m.state = StateDeciding
				m.reasonInput.Blur()
				m.reasonInput.SetValue("")

				return m, nil
			}

			return m, Back

		case tea.KeyEnter:
			if m.state == StateInputReason && m.currentTx != nil {
				reason := strings.TrimSpace(m.reasonInput.Value())
				if reason == "" {
					m.status = "A justification is required"
					return m, nil
				}

				return m, m.decideCmd(m.pendingDecision, reason)
			}
		}

		if m.state == StateDeciding && m.currentTx != nil {
			switch msg.String() {
			case "a":
				m.pendingDecision = transaction.OverrideApproved
				m.state = StateInputReason
				m.reasonInput.Placeholder = "Justification for approval"
				m.reasonInput.Focus()

				return m, textinput.Blink
			case "r":
				m.pendingDecision = transaction.OverrideRejected
				m.state = StateInputReason
				m.reasonInput.Placeholder = "Reason for rejection"
				m.reasonInput.Focus()

				return m, textinput.Blink
			case "s":
				m.nextTx()
				return m, nil
			}
		}

	case loadPendingMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading overrides: %v", msg.err)
			break
		}

		m.queue = msg.txs
		m.totalCount = len(m.queue)

		if len(m.queue) > 0 {
			m.nextTx()
			break
		}

		m.status = "No pending overrides."

	case decideResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving decision: %v", msg.err)
			m.state = StateDeciding
			m.reasonInput.Blur()

			break
		}

		m.state = StateDeciding
		m.reasonInput.Blur()
		m.reasonInput.SetValue("")

		if len(m.queue) > 0 {
			m.nextTx()
			break
		}

		m.currentTx = nil
		m.status = "All pending overrides decided."
	}

	if m.state == StateInputReason {
		m.reasonInput, cmd = m.reasonInput.Update(msg)
	}

	return m, cmd
}

func (m OverridesModel) View() string {
	content := ""

	switch {
	case m.loading:
		content = "Loading pending overrides..."
	case m.currentTx != nil:
		info := fmt.Sprintf(
			"Reference: %s\nCustomer:  %s\nDirection: %s\nCreated:   %s\n\nLines:\n%sViolations:\n%s",
			m.currentTx.Reference,
			FormatHolder(m.currentTx.Holder),
			m.currentTx.Direction,
			FormatDate(m.currentTx.CreatedAt),
			formatLines(m.currentTx.Lines),
			formatViolations(m.currentTx.Violations),
		)

		if m.state == StateInputReason {
			verb := "Approve"
			if m.pendingDecision == transaction.OverrideRejected {
				verb = "Reject"
			}

			content = fmt.Sprintf("%s\n%s\n%s as %s:\n%s\n\n(Enter to confirm, Esc to cancel)",
				m.status, info, verb, m.actor, m.reasonInput.View())
		} else {
			content = fmt.Sprintf("%s\n%s\n(a: approve | r: reject | s: skip | Esc: back)", m.status, info)
		}
	default:
		content = m.status + "\n\n(Esc to back)"
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

func formatLines(lines []transaction.Line) string {
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "  %s  %s\n", l.SubstanceCode, FormatQuantity(l.Quantity, l.Unit))
	}

	return b.String()
}

func formatViolations(violations []transaction.Violation) string {
	var b strings.Builder

	for _, v := range violations {
		marker := lipgloss.NewStyle().Faint(true).Render("[overridable]")
		if !v.Overridable {
			marker = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("[blocking]")
		}

		fmt.Fprintf(&b, "  %s %s: %s\n", marker, v.Code, v.Message)
	}

	return b.String()
}

type loadPendingMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m OverridesModel) loadPendingCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.overrideService.ListPending(ctx)

		return loadPendingMsg{txs: txs, err: err}
	}
}

func (m *OverridesModel) nextTx() {
	if len(m.queue) == 0 {
		m.currentTx = nil
		m.status = "All pending overrides decided."

		return
	}

	tx := m.queue[0]
	m.queue = m.queue[1:]
	m.currentTx = tx

	currentIdx := m.totalCount - len(m.queue)
	m.status = fmt.Sprintf("Override %d/%d", currentIdx, m.totalCount)
}

type decideResultMsg struct {
	err error
}

func (m OverridesModel) decideCmd(decision transaction.OverrideStatus, reason string) tea.Cmd {
	id := m.currentTx.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var err error
		if decision == transaction.OverrideApproved {
			_, err = m.overrideService.Approve(ctx, id, m.actor, reason)
		} else {
			_, err = m.overrideService.Reject(ctx, id, m.actor, reason)
		}

		return decideResultMsg{err: err}
	}
}
