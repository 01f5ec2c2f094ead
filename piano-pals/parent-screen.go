package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

const recentResultsLimit = 5

type parentScreenModel struct {
	progress     progressRecord
	results      []storedResult
	resultsErr   error
	resetErr     error
	confirmReset bool
	services     appServices
	backout      bool
}

func newParentScreen(services appServices) parentScreenModel {
	return parentScreenModel{services: services}.reload()
}

func (m parentScreenModel) reload() parentScreenModel {
	m.progress = m.services.store.getProgress()
	m.results, m.resultsErr = m.services.store.verifiedResults("", recentResultsLimit)
	return m
}

func (m parentScreenModel) Init() tea.Cmd {
	return nil
}

func (m parentScreenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "r":
		m.confirmReset = true
	case "y":
		if m.confirmReset {
			m.confirmReset = false
			m.resetErr = m.services.store.resetProgress()
			if m.resetErr != nil {
				log.Error("Failed to reset progress", "err", m.resetErr)
			} else {
				log.Info("Progress reset from parent dashboard")
			}
			m = m.reload()
		}
	case "esc":
		if m.confirmReset {
			m.confirmReset = false
		} else {
			m.backout = true
		}
	default:
		m.confirmReset = false
	}
	return m, nil
}

func gameTitle(gameID string) string {
	for _, g := range games {
		if g.id == gameID {
			return g.title
		}
	}
	return gameID
}

func (m parentScreenModel) View() string {
	sb := strings.Builder{}
	sb.WriteString(screenHeader("For Parents"))

	p := m.progress
	sl := statsList{}
	sl.add("Level", fmt.Sprintf("%d", p.CurrentLevel))
	sl.add("Total stars", fmt.Sprintf("%d", p.TotalStars))
	sl.add("Lessons done", fmt.Sprintf("%d/%d", len(p.CompletedLessons), len(lessons)))
	sl.add("Play time", formatPlayTime(p.PlayTimeMinutes))
	sl.add("Last played", p.LastPlayDate)
	for _, g := range games {
		sl.add(g.title+" best", fmt.Sprintf("%d", p.bestScore(g.id)))
	}
	sb.WriteString(statsListStyle.Render(sl.View()) + "\n\n")

	sb.WriteString(listTitleStyle.Render("Recent games") + "\n")
	switch {
	case m.resultsErr != nil:
		sb.WriteString(errorStyle.Render("Error loading results: "+m.resultsErr.Error()) + "\n")
	case len(m.results) == 0:
		sb.WriteString(helpStyle.Render("No games played yet") + "\n")
	default:
		for _, r := range m.results {
			played := time.Unix(r.Timestamp, 0).Format("Jan 2 15:04")
			sb.WriteString(fmt.Sprintf("%-12s %-13s %5d  %s\n", played, gameTitle(r.GameID), r.Score, smallStarString(r.Stars)))
		}
	}

	if m.resetErr != nil {
		sb.WriteString(errorStyle.Render("\nError resetting progress: "+m.resetErr.Error()) + "\n")
	}

	if m.confirmReset {
		sb.WriteString(wrongStyle.Render("\nReset all progress? Press Y to confirm, ESC to cancel"))
	} else {
		sb.WriteString(helpLine("R reset progress · ESC back"))
	}
	return sb.String()
}
