package main

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

const animalLabelDuration = 800 * time.Millisecond

type animalClearMsg struct {
	seq int
}

type freePlayModel struct {
	piano       pianoModel
	settings    settingsRecord
	animal      string
	animalSeq   int
	lastNote    noteName
	services    appServices
	settingsErr error
	backout     bool
}

func newFreePlay(services appServices) freePlayModel {
	return freePlayModel{
		settings: services.store.getSettings(),
		services: services,
	}
}

func (m freePlayModel) Init() tea.Cmd {
	return nil
}

func (m freePlayModel) saveSettings() freePlayModel {
	m.services.tones.applySettings(m.settings)
	m.settingsErr = m.services.store.saveSettings(m.settings)
	if m.settingsErr != nil {
		log.Error("Failed to save settings", "err", m.settingsErr)
	}
	return m
}

func (m freePlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case keyReleaseMsg:
		m.piano = m.piano.Update(msg)
	case animalClearMsg:
		if msg.seq == m.animalSeq {
			m.animal = ""
		}
	case pianoKeyMsg:
		var cmd tea.Cmd
		m.piano, cmd = m.piano.press(msg.note, m.services.tones)
		m.lastNote = msg.note
		if !m.settings.AnimalSoundsEnabled {
			return m, cmd
		}
		m.animal = animalSound(msg.note)
		m.animalSeq++
		seq := m.animalSeq
		return m, tea.Batch(cmd, tea.Tick(animalLabelDuration, func(time.Time) tea.Msg {
			return animalClearMsg{seq}
		}))
	case tea.KeyMsg:
		switch msg.String() {
		case "z":
			m.settings.SoundEnabled = !m.settings.SoundEnabled
			m = m.saveSettings()
		case "x":
			m.settings.AnimalSoundsEnabled = !m.settings.AnimalSoundsEnabled
			m.animal = ""
			m = m.saveSettings()
		case "esc":
			m.services.tones.clear()
			m.backout = true
		}
	}
	return m, nil
}

func onOff(b bool) string {
	if b {
		return correctStyle.Render("on")
	}
	return helpStyle.Render("off")
}

func (m freePlayModel) View() string {
	sb := strings.Builder{}
	sb.WriteString(screenHeader("Free Play"))

	switch {
	case m.animal != "":
		sb.WriteString(bigNoteStyle.Render(m.animal))
	case m.lastNote != "":
		sb.WriteString(bigNoteStyle.Render(m.lastNote.label()))
	default:
		sb.WriteString(bigNoteStyle.Render("♪"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(m.piano.View("") + "\n\n")
	sb.WriteString("Sound " + onOff(m.settings.SoundEnabled) + " · Animal sounds " + onOff(m.settings.AnimalSoundsEnabled) + "\n")
	if m.settingsErr != nil {
		sb.WriteString(errorStyle.Render("Error saving settings: "+m.settingsErr.Error()) + "\n")
	}
	sb.WriteString(helpLine("Z sound · X animal sounds · ESC back"))
	return sb.String()
}
