package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var currentBeatStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(yellowAccentColor)).
	Bold(true)

var restBeatStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))

type rhythmTapScreenModel struct {
	engine       rhythmTapEngine
	piano        pianoModel
	services     appServices
	previousBest int
	backout      bool
}

func newRhythmTapScreen(services appServices) rhythmTapScreenModel {
	return rhythmTapScreenModel{
		engine:   newRhythmTapEngine(services.rng),
		services: services,
	}
}

func (m rhythmTapScreenModel) Init() tea.Cmd {
	return nil
}

func (m rhythmTapScreenModel) destroy() rhythmTapScreenModel {
	m.engine = m.engine.destroy()
	m.services.tones.clear()
	return m
}

func (m rhythmTapScreenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
				m.previousBest = m.services.store.getProgress().bestScore(rhythmTapGameID)
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

// beatRow draws the pattern: a drum for must-hit beats, a dot for rests
func (m rhythmTapScreenModel) beatRow() string {
	cells := make([]string, rhythmBeatsPerRound)
	for i, mustHit := range m.engine.pattern {
		cell := "·"
		if mustHit {
			cell = "🥁"
		}
		switch {
		case m.engine.state == gamePlaying && i == m.engine.beatIndex:
			cells[i] = currentBeatStyle.Render("[" + cell + "]")
		case mustHit:
			cells[i] = " " + cell + " "
		default:
			cells[i] = restBeatStyle.Render(" " + cell + " ")
		}
	}
	return strings.Join(cells, " ")
}

func (m rhythmTapScreenModel) lastHitLine() string {
	hit, ok := m.engine.lastHit()
	if !ok {
		return ""
	}
	switch hit {
	case hitPerfect:
		return correctStyle.Render("Perfect!")
	case hitGood:
		return correctStyle.Render("Good!")
	default:
		return wrongStyle.Render("Miss")
	}
}

func (m rhythmTapScreenModel) View() string {
	if m.engine.state == gameFinished {
		return resultsView("Rhythm Tap", m.engine.result, m.previousBest)
	}

	sb := strings.Builder{}
	sb.WriteString(screenHeader("Rhythm Tap"))

	switch m.engine.state {
	case gameReady:
		sb.WriteString("Tap any key when the drum lights up!\n\n")
		sb.WriteString(m.piano.View("") + "\n")
		sb.WriteString(helpLine("ENTER start · ESC back"))
		return sb.String()
	case gameCountdown:
		sb.WriteString(fmt.Sprintf("Round %d/%d\n\n", m.engine.round+1, rhythmTapRounds))
		sb.WriteString(bigNoteStyle.Render(fmt.Sprintf("%d", m.engine.countdown)) + "\n\n")
	default:
		sb.WriteString(fmt.Sprintf("Round %d/%d · Score %d\n\n", m.engine.round+1, rhythmTapRounds, m.engine.score))
		sb.WriteString(m.beatRow() + "\n\n")
		sb.WriteString(m.lastHitLine() + "\n\n")
	}

	sb.WriteString(m.piano.View(m.engine.highlighted) + "\n")
	sb.WriteString(helpLine("ESC back"))
	return sb.String()
}
