package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderInputFrame boxes the query input; contentWidth excludes padding.
func renderInputFrame(inputView string, focused bool, contentWidth int) string {
	borderColor := MutedColor
	if focused {
		borderColor = AccentColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(contentWidth + 2).
		Render(inputView)
}

// renderPane frames a pane body. width and height are the outer size.
func renderPane(body string, width, height int, focused bool) string {
	borderColor := MutedColor
	if focused {
		borderColor = AccentColor
	}
	innerW := max(width-2, 0)
	innerH := max(height-2, 0)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(innerW).
		Height(innerH).
		MaxHeight(height).
		Render(clipLines(body, innerH))
}

func renderCentered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func renderMuted(text string) string {
	return lipgloss.NewStyle().Foreground(MutedColor).Render(text)
}

// renderTabStrip shows every pane name with the focused one highlighted.
func renderTabStrip(focus Pane, width int) string {
	tabs := make([]string, 0, paneCount)
	for p := PaneSearch; p < paneCount; p++ {
		if p == focus {
			tabs = append(tabs, TitleStyle.Render(p.String()))
			continue
		}
		tabs = append(tabs, lipgloss.NewStyle().Foreground(MutedColor).Padding(0, 1).Render(p.String()))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(tabs, " "))
}

func renderSeparator(width int) string {
	return SeparatorStyle.Render(strings.Repeat("─", max(width, 0)))
}
