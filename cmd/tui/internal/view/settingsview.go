package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/akablan/wari/internal/settings"
)

type SettingsModel struct {
	CommonModel
	settingsService *settings.Service

	form     *huh.Form
	currency string
	language string

	saved bool
	err   error
}

func NewSettingsModel(cfgSvc *settings.Service) SettingsModel {
	m := SettingsModel{settingsService: cfgSvc}

	ctx, cancel := OpCtx()
	defer cancel()

	cfg, err := cfgSvc.Get(ctx)
	if err != nil {
		cfg = settings.Default()
	}

	m.currency = cfg.Currency.Code
	m.language = string(cfg.Language)

	currencyOptions := make([]huh.Option[string], 0, len(settings.Currencies))
	for _, c := range settings.Currencies {
		label := fmt.Sprintf("%s — %s", c.Code, c.Name)
		if c.Region != "" {
			label = fmt.Sprintf("%s (%s)", label, c.Region)
		}

		currencyOptions = append(currencyOptions, huh.NewOption(label, c.Code))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("currency").
				Title("Currency").
				Options(currencyOptions...).
				Value(&m.currency),

			huh.NewSelect[string]().
				Key("language").
				Title("Language").
				Options(
					huh.NewOption("English", "en"),
					huh.NewOption("Français", "fr"),
				).
				Value(&m.language),
		),
	).WithWidth(50).WithShowHelp(false)

	return m
}

func (m SettingsModel) Title() string { return "Settings" }

func (m SettingsModel) ShortHelp() string {
	if m.saved {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: select"
}

func (m SettingsModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if saveMsg, ok := msg.(settingsSavedMsg); ok {
		m.saved = true
		m.err = saveMsg.err

		return m, nil
	}

	if m.saved {
		return m, nil
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

func (m SettingsModel) View() string {
	if m.saved {
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
			)
		}

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")).Render("Settings saved."),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}

type settingsSavedMsg struct {
	err error
}

func (m SettingsModel) saveCmd() tea.Cmd {
	code := m.currency
	lang := m.language

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		c, ok := settings.CurrencyByCode(code)
		if !ok {
			return settingsSavedMsg{err: fmt.Errorf("unknown currency: %s", code)}
		}

		if err := m.settingsService.SetCurrency(ctx, c); err != nil {
			return settingsSavedMsg{err: err}
		}

		if err := m.settingsService.SetLanguage(ctx, settings.Language(lang)); err != nil {
			return settingsSavedMsg{err: err}
		}

		return settingsSavedMsg{}
	}
}
