package view

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/akablan/wari/internal/category"
	"github.com/akablan/wari/internal/expense"
	"github.com/akablan/wari/internal/importer"
	"github.com/akablan/wari/internal/rules"
)

type importState int

const (
	importStatePath importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	importService   *importer.Service
	expenseService  *expense.Service
	categoryService *category.Service
	rulesService    *rules.Service

	state   importState
	form    *huh.Form
	spinner spinner.Model
	path    string

	imported int
	err      error
}

func NewImportModel(
	impSvc *importer.Service,
	expSvc *expense.Service,
	catSvc *category.Service,
	rulSvc *rules.Service,
) ImportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ImportModel{
		importService:   impSvc,
		expenseService:  expSvc,
		categoryService: catSvc,
		rulesService:    rulSvc,
		spinner:         s,
	}
	m.form = m.buildForm()

	return m
}

func (m ImportModel) Title() string { return "Import CSV" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateImporting:
		return "Importing..."
	case importStateResult:
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: import"
}

func (m ImportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *ImportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("CSV File Path").
				Placeholder("statement.csv").
				Value(&m.path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case importStatePath:
		return m.updatePath(msg)
	case importStateImporting:
		return m.updateImporting(msg)
	case importStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ImportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.form == nil {
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStateImporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runImportCmd(m.path))
}

func (m ImportModel) updateImporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(importResultMsg); ok {
		m.state = importStateResult
		m.imported = result.imported
		m.err = result.err

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ImportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStatePath:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case importStateImporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Importing expenses...", m.spinner.View()),
		)

	case importStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
			)
		}

		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")).
			Render("Import Complete!")

		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s\n\nImported %d expenses.", header, m.imported),
		)
	}

	return ""
}

type importResultMsg struct {
	imported int
	err      error
}

func (m ImportModel) runImportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		rows, err := m.importService.Import(importer.FormatCSV, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		cats, err := m.categoryService.List(ctx)
		if err != nil {
			return importResultMsg{err: err}
		}

		byName := make(map[string]string, len(cats))
		for _, c := range cats {
			byName[strings.ToLower(c.Name)] = c.ID
		}

		imported := 0

		for _, row := range rows {
			categoryID, ok := byName[strings.ToLower(strings.TrimSpace(row.Category))]
			if !ok {
				suggested, err := m.rulesService.Suggest(ctx, row.Description)
				if err != nil {
					return importResultMsg{imported: imported, err: err}
				}

				categoryID = suggested
				if categoryID == "" {
					categoryID = category.OtherID
				}
			}

			if _, err := m.expenseService.Create(ctx, expense.CreateParams{
				Amount:      row.Amount,
				Description: row.Description,
				CategoryID:  categoryID,
				Date:        row.Date,
			}); err != nil {
				return importResultMsg{imported: imported, err: err}
			}

			imported++
		}

		return importResultMsg{imported: imported}
	}
}
