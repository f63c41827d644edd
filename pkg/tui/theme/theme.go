package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Grid      GridTheme
	Detail    DetailTheme
	Assistant AssistantTheme
	Footer    FooterTheme
}

// GridTheme styles the timeline board.
type GridTheme struct {
	Header       lipgloss.Style
	HourTick     lipgloss.Style
	Sidebar      lipgloss.Style
	SidebarCat   lipgloss.Style
	LaneEven     lipgloss.Style
	LaneOdd      lipgloss.Style
	BlockDrag    lipgloss.Style
	BlockFull    lipgloss.Style
	SelectedMark lipgloss.Style
}

// DetailTheme styles the booking detail pane.
type DetailTheme struct {
	Frame    lipgloss.Style
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	SubRow   lipgloss.Style
	SubFocus lipgloss.Style
	Warning  lipgloss.Style
}

// AssistantTheme styles the assistant prompt pane.
type AssistantTheme struct {
	Frame   lipgloss.Style
	Title   lipgloss.Style
	Reply   lipgloss.Style
	Pending lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// neutral picks between a dark-terminal and a light-terminal tone.
func neutral(dark, light string) color.Color {
	if termenv.HasDarkBackground() {
		return lipgloss.Color(dark)
	}
	return lipgloss.Color(light)
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Grid: GridTheme{
			Header:       lipgloss.NewStyle().Bold(true).Foreground(neutral("252", "235")),
			HourTick:     lipgloss.NewStyle().Foreground(neutral("240", "250")),
			Sidebar:      lipgloss.NewStyle().Foreground(neutral("252", "235")),
			SidebarCat:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			LaneEven:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			LaneOdd:      lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
			BlockDrag:    lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("240")).Italic(true),
			BlockFull:    lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("88")),
			SelectedMark: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
		Detail: DetailTheme{
			Frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
			Title:    lipgloss.NewStyle().Bold(true),
			Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Value:    lipgloss.NewStyle(),
			SubRow:   lipgloss.NewStyle(),
			SubFocus: lipgloss.NewStyle().Reverse(true),
			Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Assistant: AssistantTheme{
			Frame:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
			Title:   lipgloss.NewStyle().Bold(true),
			Reply:   lipgloss.NewStyle().Italic(true),
			Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(neutral("245", "241")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
	}
}

// BlockStyle derives the style for a booking block from its lane's hex
// color token, picking a readable foreground for the background.
func BlockStyle(hex string) lipgloss.Style {
	c, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("240"))
	}
	fg := "#ffffff"
	if _, _, l := c.Hsl(); l > 0.6 {
		fg = "#000000"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(hex))
}
