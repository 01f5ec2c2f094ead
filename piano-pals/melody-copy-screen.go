package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type melodyCopyScreenModel struct {
	engine       melodyCopyEngine
	piano        pianoModel
	services     appServices
	previousBest int
	backout      bool
}

func newMelodyCopyScreen(services appServices) melodyCopyScreenModel {
	return melodyCopyScreenModel{
		engine:   newMelodyCopyEngine(services.rng),
		services: services,
	}
}

func (m melodyCopyScreenModel) Init() tea.Cmd {
	return nil
}

func (m melodyCopyScreenModel) destroy() melodyCopyScreenModel {
	m.engine = m.engine.destroy()
	m.services.tones.clear()
	return m
}

func (m melodyCopyScreenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var effects []effect
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case timerMsg:
		m.engine, effects = m.engine.handleTimer(msg)
	case keyReleaseMsg:
		m.piano = m.piano.Update(msg)
	case pianoKeyMsg:
		m.piano, cmd = m.piano.press(msg.note, m.services.tones)
		m.engine, effects = m.engine.pressKey(msg.note, m.services.now())
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.engine.state == gameReady || m.engine.state == gameFinished {
				m.previousBest = m.services.store.getProgress().bestScore(melodyCopyGameID)
				m.engine, effects = m.engine.start()
			}
		case "esc":
			m = m.destroy()
			m.backout = true
			return m, nil
		}
	}

	return m, tea.Batch(cmd, m.services.runner.run(effects))
}

// inputDots shows one dot per melody note, filled in as the player goes
func (m melodyCopyScreenModel) inputDots() string {
	dots := make([]string, len(m.engine.melody))
	for i := range dots {
		if i < len(m.engine.playerInput) {
			dots[i] = "●"
		} else {
			dots[i] = "○"
		}
	}
	return strings.Join(dots, " ")
}

func (m melodyCopyScreenModel) View() string {
	if m.engine.state == gameFinished {
		return resultsView("Melody Copy", m.engine.result, m.previousBest)
	}

	sb := strings.Builder{}
	sb.WriteString(screenHeader("Melody Copy"))

	switch m.engine.state {
	case gameReady:
		sb.WriteString("Listen to the melody, then play it back!\n\n")
	default:
		sb.WriteString(fmt.Sprintf("Round %d/%d · Score %d\n\n", m.engine.round+1, melodyCopyRounds, m.engine.score))
	}

	switch m.engine.state {
	case gameDemo:
		sb.WriteString("Listen...\n")
	case gamePlaying:
		sb.WriteString("Your turn!  " + m.inputDots() + "\n")
	case gameBetweenRounds:
		if m.engine.lastCorrect {
			sb.WriteString(correctStyle.Render("Perfect copy!") + "\n")
		} else {
			sb.WriteString(wrongStyle.Render("Not quite, next one!") + "\n")
		}
	}
	sb.WriteString("\n")

	sb.WriteString(m.piano.View(m.engine.highlighted) + "\n")
	if m.engine.state == gameReady {
		sb.WriteString(helpLine("ENTER start · ESC back"))
	} else {
		sb.WriteString(helpLine("ESC back"))
	}
	return sb.String()
}
