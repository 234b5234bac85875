package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorFgPrimary = lipgloss.Color("#ABB2BF")
	ColorFgMuted   = lipgloss.Color("#636B78")
	ColorRed       = lipgloss.Color("#E06C75")
	ColorGreen     = lipgloss.Color("#98C379")
	ColorYellow    = lipgloss.Color("#E5C07B")
	ColorBlue      = lipgloss.Color("#61AFEF")
	ColorMagenta   = lipgloss.Color("#C678DD")
	ColorBorder    = lipgloss.Color("#3F4451")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true).
			PaddingLeft(1)

	SessionStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(2)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	MetaStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	RowStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			PaddingLeft(2)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true).
				PaddingLeft(1).
				SetString("›")

	// CurrentPageStyle marks the page being shown among the page links.
	CurrentPageStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true).
				Underline(true)

	PageLinkStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	BodyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	UserLineStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	BotLineStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)
)
