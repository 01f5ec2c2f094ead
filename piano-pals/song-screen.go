package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

type songScreenModel struct {
	engine   songPlayerEngine
	piano    pianoModel
	progress progress.Model
	reached  int // notes started so far
	services appServices
	backout  bool
}

func newSongScreen(id melodyID, services appServices) (songScreenModel, bool) {
	m, ok := getMelody(id)
	if !ok {
		return songScreenModel{}, false
	}
	return songScreenModel{
		engine:   newSongPlayerEngine(m),
		progress: progress.New(progress.WithSolidFill(logoColor), progress.WithWidth(40), progress.WithoutPercentage()),
		services: services,
	}, true
}

func (m songScreenModel) Init() tea.Cmd {
	return nil
}

func (m songScreenModel) destroy() songScreenModel {
	m.engine = m.engine.stop()
	m.services.tones.clear()
	return m
}

func (m songScreenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var effects []effect
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case timerMsg:
		m.engine, effects = m.engine.handleTimer(msg)
	case keyReleaseMsg:
		m.piano = m.piano.Update(msg)
	case pianoKeyMsg:
		// playing along never affects the song
		m.piano, cmd = m.piano.press(msg.note, m.services.tones)
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", " ":
			if m.engine.playing {
				m.engine = m.engine.stop()
			} else {
				m.engine, effects = m.engine.play()
			}
		case "esc":
			m = m.destroy()
			m.backout = true
			return m, nil
		}
	}

	if !m.engine.playing {
		m.reached = 0
	} else if m.engine.currentIndex >= 0 {
		m.reached = m.engine.currentIndex + 1
	}
	return m, tea.Batch(cmd, m.services.runner.run(effects))
}

func (m songScreenModel) played() float64 {
	if len(m.engine.melody.notes) == 0 {
		return 0
	}
	return float64(m.reached) / float64(len(m.engine.melody.notes))
}

func (m songScreenModel) View() string {
	sb := strings.Builder{}
	sb.WriteString(screenHeader(m.engine.melody.name))

	label := "Press ENTER to listen"
	if m.engine.playing {
		label = "♪ Playing..."
	}
	sb.WriteString(label + "\n\n")
	sb.WriteString(m.piano.View(m.engine.highlighted()) + "\n\n")
	sb.WriteString(m.progress.ViewAs(m.played()) + "\n")

	help := "ENTER play · ESC back"
	if m.engine.playing {
		help = "ENTER stop · ESC back"
	}
	sb.WriteString(helpLine(help))
	return sb.String()
}
