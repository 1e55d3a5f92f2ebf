package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/akablan/wari/internal/category"
	"github.com/akablan/wari/internal/daterange"
	"github.com/akablan/wari/internal/expense"
	"github.com/akablan/wari/internal/report"
	"github.com/akablan/wari/internal/settings"
)

type expensesState int

const (
	expensesStateBrowse expensesState = iota
	expensesStateEdit
	expensesStateAdd
)

type ExpensesModel struct {
	CommonModel
	expenseService  *expense.Service
	categoryService *category.Service
	settingsService *settings.Service

	state    expensesState
	table    table.Model
	expenses []*expense.Expense
	cats     []*category.Category
	cfg      settings.Settings
	form     *huh.Form

	// Filter cycling
	rangeFilterIdx    int
	categoryFilterIdx int

	loading bool
	err     error
	status  string

	// Form bindings
	formAmount   string
	formDesc     string
	formCategory string
	formDate     string
}

func NewExpensesModel(expSvc *expense.Service, catSvc *category.Service, cfgSvc *settings.Service) ExpensesModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Category", Width: 16},
		{Title: "Amount", Width: 14},
		{Title: "Description", Width: 40},
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

	return ExpensesModel{
		expenseService:  expSvc,
		categoryService: catSvc,
		settingsService: cfgSvc,
		table:           t,
	}
}

func (m ExpensesModel) Title() string { return "Expenses" }

func (m ExpensesModel) ShortHelp() string {
	if m.state != expensesStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | e: edit | x: delete | d: date filter | c: category filter | r: refresh"
}

func (m ExpensesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadExpensesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.expenses = msg.expenses
		m.cats = msg.cats
		m.cfg = msg.cfg
		m.refreshTable()

		return m, nil

	case expenseSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Saved."
		}

		m.state = expensesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case RecordsChangedMsg:
		if m.state == expensesStateBrowse {
			return m, m.loadCmd()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case expensesStateBrowse:
		return m.updateBrowse(msg)
	case expensesStateEdit, expensesStateAdd:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m ExpensesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		case "e":
			return m.enterEditMode()
		case "x":
			return m, m.deleteCmd()
		case "d":
			m.rangeFilterIdx = (m.rangeFilterIdx + 1) % 5
			return m, m.loadCmd()
		case "c":
			m.categoryFilterIdx = (m.categoryFilterIdx + 1) % (len(m.cats) + 1)
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formAmount = ""
	m.formDesc = ""
	m.formCategory = category.OtherID
	m.formDate = FormatDate(time.Now())

	m.form = m.buildForm()
	m.state = expensesStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return m, nil
	}

	e := m.expenses[idx]
	m.formAmount = strconv.FormatFloat(e.Amount, 'f', -1, 64)
	m.formDesc = e.Description
	m.formCategory = e.CategoryID
	m.formDate = FormatDate(e.Date)

	m.form = m.buildForm()
	m.state = expensesStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) buildForm() *huh.Form {
	options := make([]huh.Option[string], 0, len(m.cats))
	for _, c := range m.cats {
		options = append(options, huh.NewOption(c.Name, c.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return fmt.Errorf("amount must be a number")
					}
					if v <= 0 {
						return fmt.Errorf("amount must be positive")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(options...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse("2006-01-02", s); err != nil {
						return fmt.Errorf("date must be YYYY-MM-DD")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = expensesStateBrowse
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

	return m, m.saveCmd()
}

func (m ExpensesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf(
		"Filter: [d] Range: %s | [c] Category: %s",
		activeStyle(m.rangeFilterLabel()),
		activeStyle(m.categoryFilterLabel()),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != expensesStateBrowse && m.form != nil {
		title := "Edit Expense"
		if m.state == expensesStateAdd {
			title = "Add Expense"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

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

func (m ExpensesModel) rangeFilterLabel() string {
	if m.rangeFilterIdx == 0 {
		return "All Time"
	}

	return daterange.Preset(m.rangeFilterIdx - 1).String()
}

func (m ExpensesModel) categoryFilterLabel() string {
	if m.categoryFilterIdx == 0 || m.categoryFilterIdx > len(m.cats) {
		return "All"
	}

	return m.cats[m.categoryFilterIdx-1].Name
}

func (m ExpensesModel) categoryFilterID() string {
	if m.categoryFilterIdx == 0 || m.categoryFilterIdx > len(m.cats) {
		return ""
	}

	return m.cats[m.categoryFilterIdx-1].ID
}

func (m *ExpensesModel) refreshTable() {
	names := make(map[string]string, len(m.cats))
	for _, c := range m.cats {
		names[c.ID] = c.Name
	}

	rows := make([]table.Row, 0, len(m.expenses))
	for _, e := range m.expenses {
		name, ok := names[e.CategoryID]
		if !ok {
			name = "Other"
		}

		rows = append(rows, table.Row{
			FormatDate(e.Date),
			name,
			FormatAmount(m.cfg, e.Amount),
			e.Description,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadExpensesMsg struct {
	expenses []*expense.Expense
	cats     []*category.Category
	cfg      settings.Settings
	err      error
}

func (m ExpensesModel) loadCmd() tea.Cmd {
	rangeIdx := m.rangeFilterIdx
	categoryID := m.categoryFilterID()

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		all, err := m.expenseService.List(ctx)
		if err != nil {
			return loadExpensesMsg{err: err}
		}

		if rangeIdx > 0 {
			r := daterange.Resolve(daterange.Preset(rangeIdx-1), time.Now())
			all = report.Filter(all, daterange.Normalize(r), categoryID)
		} else if categoryID != "" {
			r := daterange.Range{End: time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)}
			all = report.Filter(all, r, categoryID)
		}

		cats, err := m.categoryService.List(ctx)
		if err != nil {
			return loadExpensesMsg{err: err}
		}

		cfg, err := m.settingsService.Get(ctx)
		if err != nil {
			return loadExpensesMsg{err: err}
		}

		return loadExpensesMsg{expenses: all, cats: cats, cfg: cfg}
	}
}

type expenseSavedMsg struct {
	err error
}

func (m ExpensesModel) saveCmd() tea.Cmd {
	amount, _ := strconv.ParseFloat(strings.TrimSpace(m.formAmount), 64)
	date, _ := time.Parse("2006-01-02", m.formDate)
	desc := m.formDesc
	categoryID := m.formCategory
	adding := m.state == expensesStateAdd

	var id uuid.UUID
	if !adding {
		idx := m.table.Cursor()
		if idx < 0 || idx >= len(m.expenses) {
			return nil
		}
		id = m.expenses[idx].ID
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if adding {
			_, err := m.expenseService.Create(ctx, expense.CreateParams{
				Amount:      amount,
				Description: desc,
				CategoryID:  categoryID,
				Date:        date,
			})

			return expenseSavedMsg{err: err}
		}

		err := m.expenseService.Update(ctx, id, expense.UpdateParams{
			Amount:      &amount,
			Description: &desc,
			CategoryID:  &categoryID,
			Date:        &date,
		})

		return expenseSavedMsg{err: err}
	}
}

func (m ExpensesModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return nil
	}

	id := m.expenses[idx].ID

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := m.expenseService.Delete(ctx, id); err != nil {
			return expenseSavedMsg{err: err}
		}

		return expenseSavedMsg{}
	}
}
