package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type noteCatcherScreenModel struct {
	engine       noteCatcherEngine
	piano        pianoModel
	services     appServices
	previousBest int
	backout      bool
}

func newNoteCatcherScreen(services appServices) noteCatcherScreenModel {
	return noteCatcherScreenModel{
		engine:   newNoteCatcherEngine(services.rng),
		services: services,
	}
}

func (m noteCatcherScreenModel) Init() tea.Cmd {
	return nil
}

func (m noteCatcherScreenModel) destroy() noteCatcherScreenModel {
	m.engine = m.engine.destroy()
	m.services.tones.clear()
	return m
}

func (m noteCatcherScreenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
				m.previousBest = m.services.store.getProgress().bestScore(noteCatcherGameID)
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

func (m noteCatcherScreenModel) View() string {
	if m.engine.state == gameFinished {
		return resultsView("Note Catcher", m.engine.result, m.previousBest)
	}

	sb := strings.Builder{}
	sb.WriteString(screenHeader("Note Catcher"))

	if m.engine.state == gameReady {
		sb.WriteString("Catch as many notes as you can in 30 seconds!\n\n")
		sb.WriteString(m.piano.View("") + "\n")
		sb.WriteString(helpLine("ENTER start · ESC back"))
		return sb.String()
	}

	sl := statsList{}
	sl.add("Time", fmt.Sprintf("%ds", m.engine.timeLeft))
	sl.add("Round", fmt.Sprintf("%d/%d", minInt(m.engine.round+1, noteCatcherRounds), noteCatcherRounds))
	sl.add("Score", fmt.Sprintf("%d", m.engine.score))
	if m.engine.combo > 1 {
		sl.add("Combo", fmt.Sprintf("x%d", m.engine.combo))
	}
	sb.WriteString(panelStyle.Render(strings.TrimRight(sl.View(), "\n")) + "\n\n")

	target := "..."
	if m.engine.target != "" {
		target = m.engine.target.label()
	}
	sb.WriteString(bigNoteStyle.Render(target) + "  ")
	switch m.engine.feedback {
	case correctFeedback:
		sb.WriteString(correctStyle.Render("Caught it!"))
	case wrongFeedback:
		sb.WriteString(wrongStyle.Render("Oops, try again"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(m.piano.View(m.engine.target) + "\n")
	sb.WriteString(helpLine("Play the note shown · ESC back"))
	return sb.String()
}
