package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/sift/internal/config"
	"github.com/pders01/sift/internal/relevance"
)

const AppName = "sift"

// ASCII art logo lines for sift
var LogoLines = []string{
	"▄▀▀▀▀ ▀█▀ █▀▀▀▀ ▀▀█▀▀",
	"▀▀▀▀▄  █  █▀▀▀    █  ",
	"▀▀▀▀  ▀▀▀ ▀       ▀  ",
}

const CompactLogo = `sift ›`

// Banner gradient colors
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#22C55E"),
	lipgloss.Color("#84CC16"),
	lipgloss.Color("#EAB308"),
	lipgloss.Color("#F59E0B"),
	lipgloss.Color("#F97316"),
}

var (
	PrimaryColor   = lipgloss.Color("#FF6B6B")
	SecondaryColor = lipgloss.Color("#4ECDC4")
	AccentColor    = lipgloss.Color("#95E1D3")

	SurfaceColor = lipgloss.Color("#16213E")
	TextColor    = lipgloss.Color("#EAEAEA")
	MutedColor   = lipgloss.Color("#94A3B8")
	ErrorColor   = lipgloss.Color("#F87171")
	SuccessColor = lipgloss.Color("#10B981")
	WarnColor    = lipgloss.Color("#FFE66D")
)

// bucketColors are the 500 shades of the palette named by relevance.Bucket.
var bucketColors = map[relevance.Bucket]lipgloss.Color{
	relevance.Bucket0: lipgloss.Color("#22C55E"), // green-500
	relevance.Bucket1: lipgloss.Color("#84CC16"), // lime-500
	relevance.Bucket2: lipgloss.Color("#EAB308"), // yellow-500
	relevance.Bucket3: lipgloss.Color("#F59E0B"), // amber-500
	relevance.Bucket4: lipgloss.Color("#F97316"), // orange-500
	relevance.Bucket5: lipgloss.Color("#EF4444"), // red-500
}

// BucketColor returns the color for a distance bucket.
func BucketColor(b relevance.Bucket) lipgloss.Color {
	if c, ok := bucketColors[b]; ok {
		return c
	}
	return bucketColors[relevance.Bucket5]
}

// DistanceColor is BucketColor(relevance.Classify(d)).
func DistanceColor(d float64) lipgloss.Color {
	return BucketColor(relevance.Classify(d))
}

var (
	LogoStyle     lipgloss.Style
	TitleStyle    lipgloss.Style
	HeaderStyle   lipgloss.Style
	LabelStyle    lipgloss.Style
	HelpStyle     lipgloss.Style
	TimeStyle     lipgloss.Style
	SelectedStyle lipgloss.Style
	CursorStyle   lipgloss.Style

	ErrorMessageStyle lipgloss.Style
	SeparatorStyle    lipgloss.Style

	StatusInfoStyle    lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	StatusWarnStyle    lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)

func init() {
	buildStyles()
}

// ApplyColors overrides the brand palette from config. Empty values keep
// the built-in color.
func ApplyColors(c config.UIColors) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&PrimaryColor, c.Primary)
	set(&SecondaryColor, c.Secondary)
	set(&AccentColor, c.Accent)
	set(&TextColor, c.Text)
	set(&MutedColor, c.Muted)
	set(&ErrorColor, c.Error)
	buildStyles()
}

func buildStyles() {
	LogoStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	TitleStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Bold(true).
		Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true)

	LabelStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	TimeStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Faint(true)

	SelectedStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true)

	CursorStyle = lipgloss.NewStyle().
		Foreground(AccentColor).
		Bold(true)

	ErrorMessageStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusInfoStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusSuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessColor)

	StatusWarnStyle = lipgloss.NewStyle().
		Foreground(WarnColor)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
}

// StatusStyle picks the status bar style for a severity.
func StatusStyle(kind StatusKind) lipgloss.Style {
	switch kind {
	case StatusSuccess:
		return StatusSuccessStyle
	case StatusWarn:
		return StatusWarnStyle
	case StatusError:
		return StatusErrorStyle
	default:
		return StatusInfoStyle
	}
}

func GetWelcomeMessage() string {
	return GetCompactBanner("Type a query and press enter")
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render(message),
	)
}

// Tagline returns the banner subtitle for a build version.
func Tagline(version string) string {
	if version == "" || version == "dev" {
		return "Semantic News Search"
	}
	if version[0] != 'v' && version[0] != 'V' {
		version = "v" + version
	}
	return fmt.Sprintf("Semantic News Search %s", version)
}

// RenderBanner draws the boxed logo with one gradient color per line.
func RenderBanner(version string) string {
	lines := make([]string, len(LogoLines)+1, len(LogoLines)+2)
	copy(lines, LogoLines)
	lines = append(lines, Tagline(version))

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(BannerColors[i%len(BannerColors)]).
			Bold(i < len(LogoLines))
		coloredLines = append(coloredLines, style.Render(line))
	}

	borderChars := lipgloss.Border{
		Top:         "═",
		Bottom:      "═",
		Left:        "║",
		Right:       "║",
		TopLeft:     "╔",
		TopRight:    "╗",
		BottomLeft:  "╚",
		BottomRight: "╝",
	}

	banner := lipgloss.NewStyle().
		Border(borderChars).
		BorderForeground(SecondaryColor).
		Padding(1, 3).
		MarginTop(1).
		Render(lipgloss.JoinVertical(lipgloss.Center, coloredLines...))

	var swatches []string
	for _, b := range relevance.Buckets {
		swatches = append(swatches, lipgloss.NewStyle().Foreground(BucketColor(b)).Render("◆"))
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		lipgloss.NewStyle().Width(60).Align(lipgloss.Center).Render(banner),
		lipgloss.NewStyle().Width(60).Align(lipgloss.Center).MarginBottom(1).
			Render(lipgloss.JoinHorizontal(lipgloss.Top, joinWithSpaces(swatches)...)),
	)
}

func ShowBanner(version string) {
	fmt.Println(RenderBanner(version))
}

func joinWithSpaces(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}
