package view

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/akablan/wari/internal/budget"
	"github.com/akablan/wari/internal/category"
	"github.com/akablan/wari/internal/daterange"
	"github.com/akablan/wari/internal/expense"
	"github.com/akablan/wari/internal/report"
	"github.com/akablan/wari/internal/settings"
)

type budgetsState int

const (
	budgetsStateBrowse budgetsState = iota
	budgetsStateEdit
)

// budgetRow pairs a category with its evaluation for the current month.
type budgetRow struct {
	name string
	eval budget.Evaluation
}

type BudgetsModel struct {
	CommonModel
	budgetService   *budget.Service
	expenseService  *expense.Service
	categoryService *category.Service
	settingsService *settings.Service

	state    budgetsState
	rows     []budgetRow
	cats     []*category.Category
	cfg      settings.Settings
	cursor   int
	form     *huh.Form
	loading  bool
	err      error
	status   string
	formStr  string
	selected string
}

func NewBudgetsModel(
	budSvc *budget.Service,
	expSvc *expense.Service,
	catSvc *category.Service,
	cfgSvc *settings.Service,
) BudgetsModel {
	return BudgetsModel{
		budgetService:   budSvc,
		expenseService:  expSvc,
		categoryService: catSvc,
		settingsService: cfgSvc,
	}
}

func (m BudgetsModel) Title() string { return "Budgets" }

func (m BudgetsModel) ShortHelp() string {
	if m.state == budgetsStateEdit {
		return "Enter: save | Esc: cancel"
	}

	return "Esc: back | e: set limit | r: refresh"
}

func (m BudgetsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBudgetsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.rows = msg.rows
		m.cats = msg.cats
		m.cfg = msg.cfg

		if m.cursor >= len(m.rows) {
			m.cursor = 0
		}

		return m, nil

	case budgetSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Saved."
		}

		m.state = budgetsStateBrowse
		m.form = nil

		return m, m.loadCmd()

	case RecordsChangedMsg:
		if m.state == budgetsStateBrowse {
			return m, m.loadCmd()
		}

		return m, nil
	}

	switch m.state {
	case budgetsStateBrowse:
		return m.updateBrowse(msg)
	case budgetsStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m BudgetsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "r":
		m.loading = true
		return m, m.loadCmd()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "e":
		if m.cursor < 0 || m.cursor >= len(m.rows) {
			return m, nil
		}

		row := m.rows[m.cursor]
		m.selected = row.eval.CategoryID
		m.formStr = ""
		if row.eval.Limit > 0 {
			m.formStr = strconv.FormatFloat(row.eval.Limit, 'f', -1, 64)
		}

		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Key("limit").
					Title(fmt.Sprintf("Monthly limit for %s (0 removes it)", row.name)).
					Value(&m.formStr).
					Validate(func(s string) error {
						v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
						if err != nil {
							return fmt.Errorf("limit must be a number")
						}
						if v < 0 {
							return fmt.Errorf("limit must be non-negative")
						}
						return nil
					}),
			),
		).WithWidth(50).WithShowHelp(false)

		m.state = budgetsStateEdit

		return m, m.form.Init()
	}

	return m, nil
}

func (m BudgetsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = budgetsStateBrowse
			m.form = nil

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

	limit, _ := strconv.ParseFloat(strings.TrimSpace(m.formStr), 64)
	categoryID := m.selected

	return m, func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		return budgetSavedMsg{err: m.budgetService.Set(ctx, categoryID, limit)}
	}
}

func (m BudgetsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading budgets...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	title := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("Budgets — %s", daterange.Label(daterange.Resolve(daterange.ThisMonth, time.Now()), string(m.cfg.Language))),
	)

	lines := []string{title, ""}

	for i, row := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		detail := fmt.Sprintf("%s of %s", FormatAmount(m.cfg, row.eval.Spent), FormatAmount(m.cfg, row.eval.Limit))
		if row.eval.Limit <= 0 {
			lines = append(lines, fmt.Sprintf("%s%-16s %s", cursor, row.name, lipgloss.NewStyle().Faint(true).Render("no budget")))
			continue
		}

		if row.eval.Tier == budget.TierOver {
			detail += fmt.Sprintf(" (over by %s)", FormatAmount(m.cfg, row.eval.Overage))
		} else {
			detail += fmt.Sprintf(" (%s left)", FormatAmount(m.cfg, row.eval.Remaining))
		}

		lines = append(lines, fmt.Sprintf(
			"%s%-16s %s %5.1f%%  %s",
			cursor,
			row.name,
			tierBar(row.eval),
			row.eval.Progress,
			detail,
		))
	}

	if m.state == budgetsStateEdit && m.form != nil {
		lines = append(lines, "", m.form.View())
	}

	if m.status != "" {
		lines = append([]string{lipgloss.NewStyle().Faint(true).Render(m.status)}, lines...)
	}

	return lipgloss.NewStyle().Padding(1).Render(strings.Join(lines, "\n"))
}

func tierBar(ev budget.Evaluation) string {
	color := lipgloss.Color("46") // green
	switch ev.Tier {
	case budget.TierWarning:
		color = lipgloss.Color("220")
	case budget.TierOver:
		color = lipgloss.Color("196")
	}

	filled := int(ev.Progress / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Faint(true).Render(strings.Repeat("░", barWidth-filled))
}

// Messages

type loadBudgetsMsg struct {
	rows []budgetRow
	cats []*category.Category
	cfg  settings.Settings
	err  error
}

func (m BudgetsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		all, err := m.expenseService.List(ctx)
		if err != nil {
			return loadBudgetsMsg{err: err}
		}

		rng := daterange.Normalize(daterange.Resolve(daterange.ThisMonth, time.Now()))
		spent := report.ByCategory(report.Filter(all, rng, ""))

		budgets, err := m.budgetService.All(ctx)
		if err != nil {
			return loadBudgetsMsg{err: err}
		}

		cats, err := m.categoryService.List(ctx)
		if err != nil {
			return loadBudgetsMsg{err: err}
		}

		cfg, err := m.settingsService.Get(ctx)
		if err != nil {
			return loadBudgetsMsg{err: err}
		}

		rows := make([]budgetRow, 0, len(cats))
		for _, c := range cats {
			rows = append(rows, budgetRow{
				name: c.Name,
				eval: budget.Evaluate(c.ID, budgets, spent),
			})
		}

		// Budgeted categories first, largest progress on top.
		sort.SliceStable(rows, func(i, j int) bool {
			if (rows[i].eval.Limit > 0) != (rows[j].eval.Limit > 0) {
				return rows[i].eval.Limit > 0
			}

			return rows[i].eval.Progress > rows[j].eval.Progress
		})

		return loadBudgetsMsg{rows: rows, cats: cats, cfg: cfg}
	}
}

type budgetSavedMsg struct {
	err error
}
