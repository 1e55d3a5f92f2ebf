package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/akablan/wari/cmd/tui/internal/view"
	"github.com/akablan/wari/internal/budget"
	budgetStore "github.com/akablan/wari/internal/budget/store"
	"github.com/akablan/wari/internal/category"
	categoryStore "github.com/akablan/wari/internal/category/store"
	"github.com/akablan/wari/internal/config"
	"github.com/akablan/wari/internal/database"
	"github.com/akablan/wari/internal/expense"
	expenseStore "github.com/akablan/wari/internal/expense/store"
	"github.com/akablan/wari/internal/export"
	"github.com/akablan/wari/internal/importer"
	"github.com/akablan/wari/internal/rules"
	rulesStore "github.com/akablan/wari/internal/rules/store"
	"github.com/akablan/wari/internal/settings"
	settingsStore "github.com/akablan/wari/internal/settings/store"
)

type model struct {
	expenseService  *expense.Service
	categoryService *category.Service
	budgetService   *budget.Service
	settingsService *settings.Service
	rulesService    *rules.Service
	importService   *importer.Service
	exportService   *export.Service

	currentView View

	expensesView view.ExpensesModel
	summaryView  view.SummaryModel
	budgetsView  view.BudgetsModel
	importView   view.ImportModel
	exportView   view.ExportModel
	settingsView view.SettingsModel
}

type View int

const (
	ViewMenu     View = 0
	ViewExpenses View = 1
	ViewSummary  View = 2
	ViewBudgets  View = 3
	ViewImport   View = 4
	ViewExport   View = 5
	ViewSettings View = 6
)

// initialModel wires the stores and services and returns the root model plus
// a registration hook for store-change subscribers (bridged to the running
// program in main).
func initialModel() (model, func(fn func())) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.Data.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	onError := func(err error) {
		slog.Error("failed to persist snapshot", "error", err)
	}

	expSt, err := expenseStore.New(db, onError)
	if err != nil {
		slog.Error("failed to load expenses", "error", err)
		os.Exit(1)
	}

	catSt, err := categoryStore.New(db, onError)
	if err != nil {
		slog.Error("failed to load categories", "error", err)
		os.Exit(1)
	}

	budSt, err := budgetStore.New(db, onError)
	if err != nil {
		slog.Error("failed to load budgets", "error", err)
		os.Exit(1)
	}

	cfgSt, err := settingsStore.New(db, onError)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		os.Exit(1)
	}

	rulSt, err := rulesStore.New(db, onError)
	if err != nil {
		slog.Error("failed to load rules", "error", err)
		os.Exit(1)
	}

	expSvc := expense.NewService(expSt)
	catSvc := category.NewService(catSt)
	budSvc := budget.NewService(budSt)
	cfgSvc := settings.NewService(cfgSt)
	rulSvc := rules.NewService(rulSt)
	impSvc := importer.NewService()
	expoSvc := export.NewService(expSvc, catSvc)

	subscribe := func(fn func()) {
		expSt.Subscribe(fn)
		catSt.Subscribe(fn)
		budSt.Subscribe(fn)
	}

	return model{
		expenseService:  expSvc,
		categoryService: catSvc,
		budgetService:   budSvc,
		settingsService: cfgSvc,
		rulesService:    rulSvc,
		importService:   impSvc,
		exportService:   expoSvc,
		currentView:     ViewMenu,
		expensesView:    view.NewExpensesModel(expSvc, catSvc, cfgSvc),
		summaryView:     view.NewSummaryModel(expSvc, catSvc, cfgSvc),
		budgetsView:     view.NewBudgetsModel(budSvc, expSvc, catSvc, cfgSvc),
		importView:      view.NewImportModel(impSvc, expSvc, catSvc, rulSvc),
		exportView:      view.NewExportModel(expoSvc, cfgSvc),
		settingsView:    view.NewSettingsModel(cfgSvc),
	}, subscribe
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
				m.currentView = ViewExpenses
				m.expensesView = view.NewExpensesModel(m.expenseService, m.categoryService, m.settingsService)

				return m, m.expensesView.Init()
			case "2":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.expenseService, m.categoryService, m.settingsService)

				return m, m.summaryView.Init()
			case "3":
				m.currentView = ViewBudgets
				m.budgetsView = view.NewBudgetsModel(m.budgetService, m.expenseService, m.categoryService, m.settingsService)

				return m, m.budgetsView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService, m.expenseService, m.categoryService, m.rulesService)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.settingsService)

				return m, m.exportView.Init()
			case "6":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.settingsService)

				return m, m.settingsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewBudgets:
		var newModel tea.Model
		newModel, cmd = m.budgetsView.Update(msg)
		m.budgetsView = newModel.(view.BudgetsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Wari\n\n" +
				"1. Expenses\n" +
				"2. Spending Summary\n" +
				"3. Budgets\n" +
				"4. Import CSV\n" +
				"5. Export Expenses\n" +
				"6. Settings\n\n" +
				"q. Quit",
		)
	case ViewExpenses:
		return m.expensesView.View()
	case ViewSummary:
		return m.summaryView.View()
	case ViewBudgets:
		return m.budgetsView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	case ViewSettings:
		return m.settingsView.View()
	}

	return "Unknown View"
}

func main() {
	m, subscribe := initialModel()

	p := tea.NewProgram(m)
	subscribe(func() {
		p.Send(view.RecordsChangedMsg{})
	})

	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
