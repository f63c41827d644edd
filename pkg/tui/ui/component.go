package ui

import tea "github.com/charmbracelet/bubbletea/v2"

// Component is the contract shared by the board's Bubble Tea widgets.
// Update returns the component so implementations can stay value types.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}
