package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel carries the terminal dimensions shared by every screen.
type CommonModel struct {
	Width  int
	Height int
}

// BackMsg asks the root model to return to the menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// RecordsChangedMsg announces that a store mutated outside the current
// screen's own flow. Screens showing derived data reload; screens mid-edit
// ignore it so the change cannot clobber an open form.
type RecordsChangedMsg struct{}
