package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var performanceHeadlineStyle = lipgloss.NewStyle().
	Bold(true)

var starStyle = lipgloss.NewStyle().Inherit(performanceHeadlineStyle).
	Foreground(lipgloss.Color(yellowAccentColor))
var grayStarStyle = lipgloss.NewStyle().Inherit(performanceHeadlineStyle).
	Foreground(lipgloss.Color("#484a4d"))
var statsListStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color(logoColor)).
	Padding(1, 4, 0, 4)

var resultHeadlines = []string{
	"Keep practicing!",
	"Nice try!",
	"Great job!",
	"Amazing!",
}

func starArtRow(starCount int) string {
	starArt := getAsciiArt("star.txt")
	starArts := []string{}
	for i := 0; i < 3; i++ {
		if i < starCount {
			starArts = append(starArts, starStyle.Render(starArt))
		} else {
			starArts = append(starArts, grayStarStyle.Render(starArt))
		}
		starArts = append(starArts, "  ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, starArts...)
}

// resultsView is shown in place of a game once it is finished. previousBest
// is the best score before this session was saved.
func resultsView(title string, r result, previousBest int) string {
	sb := strings.Builder{}

	sb.WriteString(screenHeader(title))
	sb.WriteString(starArtRow(r.stars) + "\n\n")
	sb.WriteString(performanceHeadlineStyle.Render(resultHeadlines[r.stars%len(resultHeadlines)]) + "\n\n")

	sl := statsList{}
	sl.add("Score", fmt.Sprintf("%d / %d", r.score, r.maxScore))
	sl.add("Percentage", fmt.Sprintf("%.0f", r.percentage()*100)+"%")
	sl.add("Stars", smallStarString(r.stars))
	if r.score > previousBest {
		sl.add("Best", fmt.Sprintf("%d  new best!", r.score))
	} else {
		sl.add("Best", fmt.Sprintf("%d", previousBest))
	}
	sb.WriteString(statsListStyle.Render(sl.View()))

	sb.WriteString(buttonStyle.Render("ENTER play again") + buttonStyle.Render("ESC back"))
	return sb.String()
}

type statsLine struct {
	name  string
	value string
}

type statsList struct {
	lines []statsLine
}

func (l *statsList) add(name string, value string) {
	l.lines = append(l.lines, statsLine{name, value})
}

func (l statsList) View() string {
	sb := strings.Builder{}
	maxWidth := 0
	for _, line := range l.lines {
		width := lipgloss.Width(line.name)
		if width > maxWidth {
			maxWidth = width
		}
	}

	widthStyle := lipgloss.NewStyle().Width(maxWidth + 2)

	for _, line := range l.lines {
		sb.WriteString(widthStyle.Render(line.name+": ") + line.value + "\n")
	}

	return sb.String()
}
