package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Box drawing characters
const (
	TopLeft     = "╭"
	TopRight    = "╮"
	BottomLeft  = "╰"
	BottomRight = "╯"
	Horizontal  = "─"
	Vertical    = "│"
	LeftT       = "├"
	RightT      = "┤"
	TopT        = "┬"
	BottomT     = "┴"
	Cross       = "┼"
)

// Color palette
const (
	ColorBorder = "240"
	ColorHeader = "252"
	ColorIndex  = "214"
	ColorKey    = "81"
	ColorClass  = "252"
	ColorMuted  = "245"
	ColorWarn   = "214"
	ColorOK     = "82"
)

// Shared styles
var (
	BorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorHeader))
	IndexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorIndex))
	KeyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorKey))
	ClassStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorClass))
	MutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	WarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarn))
	OKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOK))
)

// padRight pads a string to the specified display width using runewidth
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}
