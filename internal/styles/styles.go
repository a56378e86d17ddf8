// Package styles centralizes the lipgloss styles shared across panels,
// modal overlays, and the footer/header chrome.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette. A single fixed dark theme, trimmed from a larger configurable
// theme system down to the colors this application actually uses.
var (
	Primary   = lipgloss.Color("#7C3AED")
	Secondary = lipgloss.Color("#3B82F6")
	Accent    = lipgloss.Color("#F59E0B")

	Success = lipgloss.Color("#10B981")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")

	TextPrimary = lipgloss.Color("#F9FAFB")
	TextMuted   = lipgloss.Color("#6B7280")
	TextSubtle  = lipgloss.Color("#4B5563")

	BgSecondary = lipgloss.Color("#1F2937")
	BgTertiary  = lipgloss.Color("#374151")

	BorderNormal = lipgloss.Color("#374151")
	BorderActive = lipgloss.Color("#7C3AED")

	ScrollbarTrackColor = lipgloss.Color("#374151")
	ScrollbarThumbColor = lipgloss.Color("#7C3AED")

	SyntaxTheme   = "monokai"
	MarkdownTheme = "dark"
)

// GetSyntaxTheme returns the chroma theme name used for preview highlighting.
func GetSyntaxTheme() string { return SyntaxTheme }

// GetMarkdownTheme returns the glamour style name used for markdown preview.
func GetMarkdownTheme() string { return MarkdownTheme }

var (
	PanelActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderActive).
			Padding(0, 1)

	PanelInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderNormal).
			Padding(0, 1)

	Title = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Subtle = lipgloss.NewStyle().Foreground(TextSubtle)

	DirEntry = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	FileEntry = lipgloss.NewStyle().Foreground(TextPrimary)
	SymlinkEntry = lipgloss.NewStyle().Foreground(Accent).Italic(true)

	MarkedEntry = lipgloss.NewStyle().Foreground(Warning).Bold(true)

	Selected = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Background(BgTertiary)

	SearchMatch = lipgloss.NewStyle().Background(Warning).Foreground(lipgloss.Color("#000000"))

	Header = lipgloss.NewStyle().Background(BgSecondary).Foreground(TextPrimary)
	Footer = lipgloss.NewStyle().Background(BgSecondary).Foreground(TextMuted)

	FooterInputPrompt = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)

	LogError = lipgloss.NewStyle().Foreground(Error).Bold(true)
	LogWarn  = lipgloss.NewStyle().Foreground(Warning)
	LogInfo  = lipgloss.NewStyle().Foreground(Secondary)
	LogDebug = lipgloss.NewStyle().Foreground(TextMuted)
	LogTrace = lipgloss.NewStyle().Foreground(TextSubtle)

	ConsolePrompt = lipgloss.NewStyle().Foreground(Primary).Bold(true)
)
