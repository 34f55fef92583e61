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
	ColorBorder      = "240"
	ColorHeader      = "252"
	ColorID          = "214"
	ColorName        = "81"
	ColorIP          = "252"
	ColorType        = "252"
	ColorAMI         = "245"
	ColorRunning     = "82"
	ColorPending     = "214"
	ColorTerminating = "214"
	ColorTerminated  = "245"
	ColorError       = "196"
	ColorMuted       = "240"
	ColorHint        = "245"
)

// Shared styles
var (
	BorderStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))
	HeaderStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorHeader))
	IDStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorID))
	NameStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorName))
	IPStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorIP))
	TypeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorType))
	AMIStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAMI))
	RunningStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRunning))
	PendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPending))
	TerminatingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTerminating))
	TerminatedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTerminated))
	ErrorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	MutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	HintStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHint))
)

// StatusStyle returns the style for a deployment status tag. Unknown tags
// render muted.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "running":
		return RunningStyle
	case "pending":
		return PendingStyle
	case "terminating", "shutting-down":
		return TerminatingStyle
	case "terminated":
		return TerminatedStyle
	default:
		return MutedStyle
	}
}

// StatusIndicator returns the single-rune state indicator.
func StatusIndicator(status string) string {
	switch status {
	case "running":
		return "●"
	case "pending":
		return "◐"
	case "terminating", "shutting-down":
		return "◐"
	case "terminated":
		return "○"
	default:
		return "○"
	}
}

// padRight pads a string to the specified display width using runewidth
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}

func formatOptional(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
