package tui

import (
	"snapdev-task/internal/models"
	"snapdev-task/internal/pomodoro"

	"github.com/charmbracelet/lipgloss"
)

var (
	blue   = lipgloss.Color("#1e88e5")
	orange = lipgloss.Color("#f57c00")
	red    = lipgloss.Color("#e53935")
	green  = lipgloss.Color("#43a047")
	purple = lipgloss.Color("#8e24aa")
	gray   = lipgloss.Color("#9e9e9e")
	border = lipgloss.Color("#e0e0e0")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(blue)

	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(gray)
	activeTabStyle = tabStyle.Foreground(blue).Bold(true).Underline(true)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1)
	activeColumnStyle = columnStyle.BorderForeground(blue)
	columnTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(blue)

	taskStyle         = lipgloss.NewStyle().PaddingLeft(1)
	selectedTaskStyle = taskStyle.Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(blue)
	descStyle         = lipgloss.NewStyle().Foreground(gray).PaddingLeft(3)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(1, 2)
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(blue)

	helpStyle   = lipgloss.NewStyle().Foreground(gray)
	statusStyle = lipgloss.NewStyle().Foreground(green)
	errorStyle  = lipgloss.NewStyle().Foreground(red).Bold(true)

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			Padding(1, 4)
	counterStyle = lipgloss.NewStyle().Foreground(purple)
)

func priorityColor(p models.TaskPriority) lipgloss.Color {
	switch p {
	case models.PriorityHigh:
		return red
	case models.PriorityMedium:
		return orange
	case models.PriorityLow:
		return green
	default:
		return gray
	}
}

func stateColor(s pomodoro.State) lipgloss.Color {
	switch s {
	case pomodoro.ShortBreak:
		return green
	case pomodoro.LongBreak:
		return orange
	default:
		return blue
	}
}
