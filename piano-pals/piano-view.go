package main

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	litDuration       = 150 * time.Millisecond
	whiteKeyTone      = 800 * time.Millisecond
	blackKeyTone      = 600 * time.Millisecond
	whiteKeyWidth     = 5
	blackKeyWidth     = 4
	blackKeyRowOffset = 3
)

var whiteKeyColors = []string{"#ff6b6b", "#ffa94d", "#ffd43b", "#69db7c", "#4dabf7", "#b197fc", "#f783ac", "#ff6b6b"}

var blackKeyStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("#212529")).
	Foreground(lipgloss.Color("#f8f9fa")).
	Width(blackKeyWidth).
	Align(lipgloss.Center)

const (
	highlightedKeyColor = "#fff3bf"
	highlightedKeyText  = "#e8590c"
	pressedKeyColor     = "#f8f9fa"
)

type keyReleaseMsg struct {
	seq int
}

// pianoModel draws the keyboard and lights up the key that was just pressed.
// Highlighted keys come from whatever engine is running.
type pianoModel struct {
	pressed    noteName
	pressedSeq int
}

func isBlackKey(n noteName) bool {
	return strings.Contains(string(n), "#")
}

// press sounds the key like a real piano would and lights it briefly
func (m pianoModel) press(n noteName, tones tonePlayer) (pianoModel, tea.Cmd) {
	duration := whiteKeyTone
	if isBlackKey(n) {
		duration = blackKeyTone
	}
	tones.playNote(n, duration)

	m.pressed = n
	m.pressedSeq++
	seq := m.pressedSeq
	return m, tea.Tick(litDuration, func(time.Time) tea.Msg {
		return keyReleaseMsg{seq}
	})
}

func (m pianoModel) Update(msg tea.Msg) pianoModel {
	if msg, ok := msg.(keyReleaseMsg); ok && msg.seq == m.pressedSeq {
		m.pressed = ""
	}
	return m
}

func (m pianoModel) keyStyle(n noteName, base lipgloss.Style, highlighted noteName) lipgloss.Style {
	if n == m.pressed {
		return base.Background(lipgloss.Color(pressedKeyColor)).
			Foreground(lipgloss.Color("#212529")).
			Bold(true)
	}
	if n == highlighted {
		return base.Background(lipgloss.Color(highlightedKeyColor)).
			Foreground(lipgloss.Color(highlightedKeyText)).
			Bold(true).Blink(true)
	}
	return base
}

func whiteKeyStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(whiteKeyColors[i%len(whiteKeyColors)])).
		Foreground(lipgloss.Color("#212529")).
		Width(whiteKeyWidth).
		Align(lipgloss.Center)
}

func (m pianoModel) blackRow(highlighted noteName, text func(noteName) string) string {
	sb := strings.Builder{}
	sb.WriteString(strings.Repeat(" ", blackKeyRowOffset))
	for i := 0; i < len(whiteKeys)-1; i++ {
		if n, ok := blackKeys[i]; ok {
			sb.WriteString(m.keyStyle(n, blackKeyStyle, highlighted).Render(text(n)))
		} else {
			sb.WriteString(strings.Repeat(" ", blackKeyWidth))
		}
		sb.WriteString(strings.Repeat(" ", whiteKeyWidth-blackKeyWidth))
	}
	return sb.String()
}

func (m pianoModel) whiteRow(highlighted noteName, text func(noteName) string) string {
	sb := strings.Builder{}
	for i, n := range whiteKeys {
		sb.WriteString(m.keyStyle(n, whiteKeyStyle(i), highlighted).Render(text(n)))
	}
	return sb.String()
}

// View renders the keyboard with one highlighted key, or none for "".
func (m pianoModel) View(highlighted noteName) string {
	label := func(n noteName) string { return n.label() }
	key := func(n noteName) string { return keyForNote(n) }
	blank := func(noteName) string { return "" }

	rows := []string{
		m.blackRow(highlighted, label),
		m.blackRow(highlighted, key),
		m.whiteRow(highlighted, blank),
		m.whiteRow(highlighted, label),
		m.whiteRow(highlighted, key),
	}
	return strings.Join(rows, "\n")
}
