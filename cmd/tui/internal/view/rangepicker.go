package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akablan/wari/internal/daterange"
)

// rangeChoice is a preset slot in the picker plus a trailing Custom entry.
type rangeChoice int

const (
	choiceThisMonth rangeChoice = iota
	choiceLastMonth
	choiceLast3Months
	choiceThisYear
	choiceCustom
)

func (c rangeChoice) label() string {
	if c == choiceCustom {
		return "Custom Range"
	}

	return daterange.Preset(c).String()
}

// RangeSelectedMsg is emitted when the user has selected a valid date range.
type RangeSelectedMsg struct {
	Range daterange.Range
}

type rangePickerState int

const (
	rangePickerSelect rangePickerState = iota
	rangePickerCustom
)

// RangePicker is a reusable component for selecting a date range.
type RangePicker struct {
	state    rangePickerState
	selected rangeChoice

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewRangePicker() RangePicker {
	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Start Date: "

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "End Date:   "

	return RangePicker{
		state:      rangePickerSelect,
		selected:   choiceThisMonth,
		startInput: si,
		endInput:   ei,
	}
}

func (m RangePicker) Init() tea.Cmd {
	return nil
}

func (m RangePicker) Update(msg tea.Msg) (RangePicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case rangePickerSelect:
			return m.updateSelect(keyMsg)
		case rangePickerCustom:
			return m.updateCustom(keyMsg)
		}
	}

	if m.state == rangePickerCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m RangePicker) updateSelect(msg tea.KeyMsg) (RangePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > choiceThisMonth {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < choiceCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == choiceCustom {
			m.state = rangePickerCustom
			m.startInput.Focus()
			m.focusIndex = 0

			return m, textinput.Blink
		}

		r := daterange.Resolve(daterange.Preset(m.selected), time.Now())

		return m, func() tea.Msg {
			return RangeSelectedMsg{Range: r}
		}
	}

	return m, nil
}

func (m RangePicker) updateCustom(msg tea.KeyMsg) (RangePicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
			return m, textinput.Blink
		}

		m.endInput.Focus()

		return m, textinput.Blink

	case "enter":
		start, err := time.Parse("2006-01-02", m.startInput.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid start date (YYYY-MM-DD)")
			return m, nil
		}

		end, err := time.Parse("2006-01-02", m.endInput.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid end date (YYYY-MM-DD)")
			return m, nil
		}

		if end.Before(start) {
			m.err = fmt.Errorf("end date before start date")
			return m, nil
		}

		m.err = nil
		r := daterange.Range{Start: start, End: end}

		return m, func() tea.Msg {
			return RangeSelectedMsg{Range: r}
		}

	case "esc":
		m.state = rangePickerSelect
		m.err = nil

		return m, nil
	}

	return m.updateInputs(msg)
}

func (m RangePicker) updateInputs(msg tea.Msg) (RangePicker, tea.Cmd) {
	var cmds []tea.Cmd
	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m RangePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == rangePickerCustom {
		return fmt.Sprintf(
			"Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	s := "Select Range:\n\n"
	for c := choiceThisMonth; c <= choiceCustom; c++ {
		cursor := " "
		if m.selected == c {
			cursor = ">"
		}
		s += fmt.Sprintf("%s %s\n", cursor, c.label())
	}
	s += "\n(Enter to select, Esc to back)"

	return s + errStr
}

// IsSelecting returns true if the picker is in the selection state (not custom input).
func (m RangePicker) IsSelecting() bool {
	return m.state == rangePickerSelect
}

// Reset returns the picker to its initial selection state.
func (m *RangePicker) Reset() {
	m.state = rangePickerSelect
	m.selected = choiceThisMonth
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
