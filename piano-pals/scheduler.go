package main

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type timerEvent int

const (
	demoNoteOnEvent timerEvent = iota
	demoNoteOffEvent
	retargetEvent
	clockTickEvent
	roundStartEvent
	nextRoundEvent
	countdownTickEvent
	beatEndEvent
	feedbackClearEvent
	delayedJingleEvent
)

// timerMsg is delivered back into the Update loop when a scheduled delay
// elapses. It is only acted on by the engine instance and generation that
// scheduled it.
type timerMsg struct {
	instance   uint64
	generation int
	event      timerEvent
	index      int
	at         time.Time
}

var lastInstanceID atomic.Uint64

func newInstanceID() uint64 {
	return lastInstanceID.Add(1)
}

// timerOwner is embedded by every engine. Bumping the generation orphans all
// timers scheduled before the bump.
type timerOwner struct {
	instance   uint64
	generation int
}

func newTimerOwner() timerOwner {
	return timerOwner{instance: newInstanceID()}
}

func (o *timerOwner) invalidate() {
	o.generation++
}

func (o timerOwner) owns(msg timerMsg) bool {
	return msg.instance == o.instance && msg.generation == o.generation
}

func (o timerOwner) schedule(after time.Duration, event timerEvent, index int) effect {
	return scheduleEffect{after: after, msg: timerMsg{
		instance:   o.instance,
		generation: o.generation,
		event:      event,
		index:      index,
	}}
}

type effect interface {
	isEffect()
}

type scheduleEffect struct {
	after time.Duration
	msg   timerMsg
}

type playNoteEffect struct {
	note     noteName
	duration time.Duration
}

type playJingleEffect struct {
	jingle jingle
}

type saveGameScoreEffect struct {
	gameID string
	score  int
}

type completeLessonEffect struct {
	lessonID string
	stars    int
}

type recordResultEffect struct {
	result result
}

type addStarsEffect struct {
	count int
}

func (scheduleEffect) isEffect()       {}
func (playNoteEffect) isEffect()       {}
func (playJingleEffect) isEffect()     {}
func (saveGameScoreEffect) isEffect()  {}
func (completeLessonEffect) isEffect() {}
func (recordResultEffect) isEffect()   {}
func (addStarsEffect) isEffect()       {}

// effectRunner turns engine effects into sound, persistence and tea commands.
// Persistence failures are logged and never reach the engines.
type effectRunner struct {
	tones tonePlayer
	store progressStore
}

func (r effectRunner) run(effects []effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch e := eff.(type) {
		case scheduleEffect:
			cmds = append(cmds, timerCmd(e))
		case playNoteEffect:
			r.tones.playNote(e.note, e.duration)
		case playJingleEffect:
			r.tones.playJingle(e.jingle)
		case saveGameScoreEffect:
			if err := r.store.saveGameScore(e.gameID, e.score); err != nil {
				log.Error("Failed to save game score", "game", e.gameID, "score", e.score, "err", err)
			}
		case completeLessonEffect:
			if err := r.store.completeLesson(e.lessonID, e.stars); err != nil {
				log.Error("Failed to save lesson completion", "lesson", e.lessonID, "err", err)
			}
		case recordResultEffect:
			if err := r.store.recordResult(e.result); err != nil {
				log.Error("Failed to record result", "game", e.result.gameID, "err", err)
			}
		case addStarsEffect:
			if _, err := r.store.addStars(e.count); err != nil {
				log.Error("Failed to add stars", "count", e.count, "err", err)
			}
		}
	}
	return tea.Batch(cmds...)
}

func timerCmd(e scheduleEffect) tea.Cmd {
	msg := e.msg
	return tea.Tick(e.after, func(t time.Time) tea.Msg {
		msg.at = t
		return msg
	})
}
