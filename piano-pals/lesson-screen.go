package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

type lessonScreenModel struct {
	engine   lessonEngine
	piano    pianoModel
	progress progress.Model
	services appServices
	backout  bool
}

func newLessonScreen(l lesson, services appServices) (lessonScreenModel, bool) {
	engine, ok := newLessonEngine(l)
	if !ok {
		return lessonScreenModel{}, false
	}
	return lessonScreenModel{
		engine:   engine,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		services: services,
	}, true
}

func (m lessonScreenModel) Init() tea.Cmd {
	return nil
}

func (m lessonScreenModel) destroy() lessonScreenModel {
	m.engine = m.engine.destroy()
	m.services.tones.clear()
	return m
}

func (m lessonScreenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var effects []effect
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case timerMsg:
		m.engine, effects = m.engine.handleTimer(msg)
	case keyReleaseMsg:
		m.piano = m.piano.Update(msg)
	case pianoKeyMsg:
		m.piano, cmd = m.piano.press(msg.note, m.services.tones)
		m.engine, effects = m.engine.pressKey(msg.note)
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.engine.state == lessonComplete {
				m.engine = m.engine.startLesson()
			}
			m.engine, effects = m.engine.playDemo()
		case "esc":
			m = m.destroy()
			m.backout = true
			return m, nil
		}
	}

	return m, tea.Batch(cmd, m.services.runner.run(effects))
}

func (m lessonScreenModel) statusLine() string {
	switch m.engine.state {
	case lessonIdle:
		return "Press ENTER to hear the song"
	case lessonDemonstrating:
		return "Listen carefully..."
	case lessonAwaitingInput:
		return fmt.Sprintf("Your turn! Play the glowing key (%d/%d)",
			m.engine.playerIndex+1, len(m.engine.melody.notes))
	case lessonComplete:
		return correctStyle.Render("Lesson complete! " + smallStarString(m.engine.stars))
	}
	return ""
}

func (m lessonScreenModel) View() string {
	sb := strings.Builder{}
	sb.WriteString(screenHeader(m.engine.lesson.title + " · " + m.engine.melody.name))
	sb.WriteString(m.engine.lesson.description + "\n\n")
	sb.WriteString(m.statusLine() + "\n\n")
	sb.WriteString(m.piano.View(m.engine.highlighted) + "\n\n")
	sb.WriteString(m.progress.ViewAs(m.engine.progress()) + "\n")

	help := "ENTER play demo · ESC back"
	if m.engine.state == lessonComplete {
		help = "ENTER try again · ESC back"
	}
	sb.WriteString(helpLine(help))
	return sb.String()
}
