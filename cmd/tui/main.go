package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/jmulders/veridose/cmd/tui/internal/view"
	"github.com/jmulders/veridose/internal/config"
	customerStore "github.com/jmulders/veridose/internal/customer/store"
	"github.com/jmulders/veridose/internal/database"
	"github.com/jmulders/veridose/internal/licence"
	licenceStore "github.com/jmulders/veridose/internal/licence/store"
	"github.com/jmulders/veridose/internal/metrics"
	"github.com/jmulders/veridose/internal/override"
	"github.com/jmulders/veridose/internal/reclass"
	reclassStore "github.com/jmulders/veridose/internal/reclass/store"
	substanceStore "github.com/jmulders/veridose/internal/substance/store"
	"github.com/jmulders/veridose/internal/threshold"
	thresholdStore "github.com/jmulders/veridose/internal/threshold/store"
	"github.com/jmulders/veridose/internal/transaction"
	txStore "github.com/jmulders/veridose/internal/transaction/store"
	"github.com/jmulders/veridose/internal/validation"
)

type model struct {
	txService         *transaction.Service
	validationService *validation.Service
	overrideService   *override.Service
	reclassService    *reclass.Service
	actor             string

	currentView View

	overridesView        view.OverridesModel
	transactionsView     view.TransactionsModel
	requalificationsView view.RequalificationsModel
}

type View int

const (
	ViewMenu             View = 0
	ViewOverrides        View = 1
	ViewTransactions     View = 2
	ViewRequalifications View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	customers := customerStore.New(db)
	substances := substanceStore.New(db)
	licences := licenceStore.New(db)
	txs := txStore.New(db)
	thresholds := thresholdStore.New(db)
	reclasses := reclassStore.New(db)

	txSvc := transaction.NewService(txs)
	coverageSvc := licence.NewCoverageService(licences)
	resolver := reclass.NewResolver(reclasses, substances)
	reclassSvc := reclass.NewService(reclasses, substances, licences, coverageSvc, m)
	thresholdEval := threshold.NewEvaluator(thresholds, txs)
	overrideSvc := override.NewService(txs, m)

	validationSvc := validation.NewService(
		customers,
		substances,
		resolver,
		coverageSvc,
		thresholdEval,
		reclassSvc,
		txs,
		validation.Policy{StrictActivityCheck: cfg.Compliance.StrictActivityCheck},
		m,
	)

	actor := os.Getenv("VERIDOSE_ACTOR")
	if actor == "" {
		actor = os.Getenv("USER")
	}

	return model{
		txService:            txSvc,
		validationService:    validationSvc,
		overrideService:      overrideSvc,
		reclassService:       reclassSvc,
		actor:                actor,
		currentView:          ViewMenu,
		overridesView:        view.NewOverridesModel(overrideSvc, actor),
		transactionsView:     view.NewTransactionsModel(txSvc, validationSvc),
		requalificationsView: view.NewRequalificationsModel(reclassSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewOverrides
				m.overridesView = view.NewOverridesModel(m.overrideService, m.actor)

				return m, m.overridesView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.txService, m.validationService)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewRequalifications
				m.requalificationsView = view.NewRequalificationsModel(m.reclassService)

				return m, m.requalificationsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewOverrides:
		var newModel tea.Model
		newModel, cmd = m.overridesView.Update(msg)
		m.overridesView = newModel.(view.OverridesModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewRequalifications:
		var newModel tea.Model
		newModel, cmd = m.requalificationsView.Update(msg)
		m.requalificationsView = newModel.(view.RequalificationsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Veridose TUI\n\n" +
				"1. Review Pending Overrides\n" +
				"2. Browse Transactions\n" +
				"3. Pending Re-qualifications\n\n" +
				"q. Quit",
		)
	case ViewOverrides:
		return m.overridesView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewRequalifications:
		return m.requalificationsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
