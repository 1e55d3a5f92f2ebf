package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/akablan/wari/internal/daterange"
	"github.com/akablan/wari/internal/export"
	"github.com/akablan/wari/internal/settings"
)

type exportState int

const (
	exportStateRange exportState = iota
	exportStatePath
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	exportService   *export.Service
	settingsService *settings.Service

	state  exportState
	err    error
	picker RangePicker

	rng daterange.Range

	form    *huh.Form
	path    string
	spinner spinner.Model
	file    string
	summary string
}

func NewExportModel(svc *export.Service, cfgSvc *settings.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService:   svc,
		settingsService: cfgSvc,
		state:           exportStateRange,
		picker:          NewRangePicker(),
		path:            "./exports",
		spinner:         s,
	}
}

func (m ExportModel) Title() string { return "Export Expenses" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if rMsg, ok := msg.(RangeSelectedMsg); ok {
		m.rng = rMsg.Range
		m.form = m.buildPathForm()
		m.state = exportStatePath

		return m, m.form.Init()
	}

	switch m.state {
	case exportStateRange:
		return m.updateRange(msg)
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateRange(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = exportStateRange
			m.picker.Reset()

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

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.rng, m.path))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.file = result.file
		m.summary = result.summary

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&m.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateRange:
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())

	case exportStatePath:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Exporting expenses...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("File: %s", m.file),
			"",
			m.summary,
		),
	)
}

type exportResultMsg struct {
	file    string
	summary string
	err     error
}

func (m ExportModel) runExportCmd(rng daterange.Range, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		file, err := m.exportService.Export(ctx, rng, "", path)
		if err != nil {
			return exportResultMsg{err: err}
		}

		cfg, err := m.settingsService.Get(ctx)
		if err != nil {
			return exportResultMsg{err: err}
		}

		summary, err := m.exportService.Summary(ctx, rng, cfg)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{file: file, summary: summary}
	}
}
