package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akablan/wari/internal/category"
	"github.com/akablan/wari/internal/daterange"
	"github.com/akablan/wari/internal/expense"
	"github.com/akablan/wari/internal/report"
	"github.com/akablan/wari/internal/settings"
)

type summaryState int

const (
	summaryStateRange summaryState = iota
	summaryStateView
)

const barWidth = 30

type SummaryModel struct {
	CommonModel
	expenseService  *expense.Service
	categoryService *category.Service
	settingsService *settings.Service

	state  summaryState
	picker RangePicker

	rng     daterange.Range
	rows    []report.Row
	total   float64
	names   map[string]string
	cfg     settings.Settings
	loading bool
	err     error
}

func NewSummaryModel(expSvc *expense.Service, catSvc *category.Service, cfgSvc *settings.Service) SummaryModel {
	return SummaryModel{
		expenseService:  expSvc,
		categoryService: catSvc,
		settingsService: cfgSvc,
		picker:          NewRangePicker(),
	}
}

func (m SummaryModel) Title() string { return "Spending Summary" }

func (m SummaryModel) ShortHelp() string {
	if m.state == summaryStateRange {
		return "Esc: back | Enter: select"
	}

	return "Esc: back | d: change range"
}

func (m SummaryModel) Init() tea.Cmd {
	return nil
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RangeSelectedMsg:
		m.rng = msg.Range
		m.state = summaryStateView
		m.loading = true

		return m, m.loadCmd()

	case loadSummaryMsg:
		m.loading = false
		m.err = msg.err
		m.rows = msg.rows
		m.total = msg.total
		m.names = msg.names
		m.cfg = msg.cfg

		return m, nil

	case RecordsChangedMsg:
		if m.state == summaryStateView {
			return m, m.loadCmd()
		}

		return m, nil
	}

	switch m.state {
	case summaryStateRange:
		return m.updateRange(msg)
	case summaryStateView:
		return m.updateView(msg)
	}

	return m, nil
}

func (m SummaryModel) updateRange(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m SummaryModel) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "d":
			m.state = summaryStateRange
			m.picker.Reset()

			return m, nil
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	if m.state == summaryStateRange {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Computing summary...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	title := lipgloss.NewStyle().Bold(true).Render(daterange.Label(m.rng, string(m.cfg.Language)))
	totalLine := fmt.Sprintf("Total: %s", FormatAmount(m.cfg, m.total))

	if len(m.rows) == 0 {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", "No expenses in this range."),
		)
	}

	lines := make([]string, 0, len(m.rows)+2)
	lines = append(lines, title, totalLine, "")

	for _, row := range m.rows {
		name, ok := m.names[row.CategoryID]
		if !ok {
			name = "Other"
		}

		lines = append(lines, fmt.Sprintf(
			"%-16s %s %6.1f%%  %s",
			name,
			bar(row.Share),
			row.Share,
			FormatAmount(m.cfg, row.Amount),
		))
	}

	return lipgloss.NewStyle().Padding(1).Render(strings.Join(lines, "\n"))
}

func bar(share float64) string {
	filled := int(share / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Faint(true).Render(strings.Repeat("░", barWidth-filled))
}

// Messages

type loadSummaryMsg struct {
	rows  []report.Row
	total float64
	names map[string]string
	cfg   settings.Settings
	err   error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	rng := m.rng

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		all, err := m.expenseService.List(ctx)
		if err != nil {
			return loadSummaryMsg{err: err}
		}

		filtered := report.Filter(all, daterange.Normalize(rng), "")

		cats, err := m.categoryService.List(ctx)
		if err != nil {
			return loadSummaryMsg{err: err}
		}

		names := make(map[string]string, len(cats))
		for _, c := range cats {
			names[c.ID] = c.Name
		}

		cfg, err := m.settingsService.Get(ctx)
		if err != nil {
			return loadSummaryMsg{err: err}
		}

		return loadSummaryMsg{
			rows:  report.Breakdown(report.ByCategory(filtered)),
			total: report.Total(filtered),
			names: names,
			cfg:   cfg,
		}
	}
}
