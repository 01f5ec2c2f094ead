package main

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

const (
	logoColor         = "#ff7eb6"
	selectedItemColor = logoColor
	yellowAccentColor = "#ffd43b"
	blueAccentColor   = "#4dabf7"
	greenAccentColor  = "#51cf66"
	redAccentColor    = "#ff6b6b"
	mutedColor        = "#868e96"
)

var noteBorder = lipgloss.Border{
	Left:  "♪",
	Right: "♪",
}

var listTitleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(yellowAccentColor)).
	Bold(true).
	BorderForeground(lipgloss.Color(logoColor)).
	BorderStyle(noteBorder).
	BorderBottom(false).BorderTop(false).BorderLeft(true).BorderRight(true).
	Padding(0, 1, 0, 1)

var screenTitleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(logoColor)).
	Bold(true).
	Padding(0, 1)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color(blueAccentColor)).
	Padding(0, 2)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(redAccentColor))

var correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(greenAccentColor)).Bold(true)

var wrongStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(redAccentColor)).Bold(true)

var bigNoteStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(yellowAccentColor)).
	Border(lipgloss.DoubleBorder()).
	BorderForeground(lipgloss.Color(logoColor)).
	Bold(true).
	Padding(0, 3)

var buttonStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("#b6b3fc")).
	Foreground(lipgloss.Color("#000000")).
	Padding(0, 3).
	Margin(1, 1, 0, 2).
	Bold(true)

func styleList(list *list.Model) {
	list.Styles.Title = listTitleStyle
}

func createListDd(hasDesc bool) list.DefaultDelegate {
	dd := list.NewDefaultDelegate()
	dd.ShowDescription = hasDesc

	selectedBorder := lipgloss.Border{
		Left: "♫",
	}

	dd.Styles.SelectedTitle = dd.Styles.SelectedTitle.Foreground(lipgloss.Color(selectedItemColor)).
		BorderForeground(lipgloss.Color(selectedItemColor)).
		BorderStyle(selectedBorder)
	dd.Styles.SelectedDesc = dd.Styles.SelectedDesc.Foreground(lipgloss.Color(selectedItemColor)).
		BorderForeground(lipgloss.Color(selectedItemColor)).
		BorderStyle(selectedBorder)

	return dd
}

func screenHeader(title string) string {
	return screenTitleStyle.Render(title) + "\n\n"
}

func helpLine(text string) string {
	return "\n" + helpStyle.Render(text)
}
