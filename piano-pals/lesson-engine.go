package main

import (
	"time"
)

type lessonState int

const (
	lessonIdle lessonState = iota
	lessonDemonstrating
	lessonAwaitingInput
	lessonComplete
)

const (
	lessonDemoToneDuration = 500 * time.Millisecond
	lessonDemoGap          = 100 * time.Millisecond
	lessonStarJingleDelay  = 500 * time.Millisecond
)

// lessonEngine plays a melody as a demo and then waits for the player to
// repeat it note by note. Wrong notes are never penalized.
type lessonEngine struct {
	timerOwner
	lesson       lesson
	melody       melody
	state        lessonState
	demoIndex    int
	playerIndex  int
	correctCount int
	highlighted  noteName
	stars        int
}

func newLessonEngine(l lesson) (lessonEngine, bool) {
	m, ok := getMelody(l.melody)
	if !ok {
		return lessonEngine{}, false
	}
	e := lessonEngine{
		timerOwner: newTimerOwner(),
		lesson:     l,
		melody:     m,
	}
	return e.startLesson(), true
}

// startLesson resets all transient state. Used for both the first start and
// the "try again" restart.
func (e lessonEngine) startLesson() lessonEngine {
	e.invalidate()
	e.state = lessonIdle
	e.demoIndex = 0
	e.playerIndex = 0
	e.correctCount = 0
	e.highlighted = ""
	e.stars = 0
	return e
}

func (e lessonEngine) playDemo() (lessonEngine, []effect) {
	if e.state == lessonDemonstrating || len(e.melody.notes) == 0 {
		return e, nil
	}
	e.invalidate()
	e.state = lessonDemonstrating
	e.playerIndex = 0
	e.correctCount = 0
	return e.demoNoteOn(0)
}

func (e lessonEngine) demoNoteOn(i int) (lessonEngine, []effect) {
	e.demoIndex = i
	n := e.melody.notes[i]
	e.highlighted = n
	return e, []effect{
		playNoteEffect{note: n, duration: lessonDemoToneDuration},
		e.schedule(e.melody.tempo, demoNoteOffEvent, i),
	}
}

func (e lessonEngine) handleTimer(msg timerMsg) (lessonEngine, []effect) {
	if !e.owns(msg) {
		return e, nil
	}

	switch msg.event {
	case demoNoteOffEvent:
		if e.state != lessonDemonstrating || msg.index != e.demoIndex {
			return e, nil
		}
		e.highlighted = ""
		return e, []effect{e.schedule(lessonDemoGap, demoNoteOnEvent, msg.index+1)}
	case demoNoteOnEvent:
		if e.state != lessonDemonstrating {
			return e, nil
		}
		if msg.index < len(e.melody.notes) {
			return e.demoNoteOn(msg.index)
		}
		e.state = lessonAwaitingInput
		e.playerIndex = 0
		e.correctCount = 0
		e.highlighted = e.melody.notes[0]
		return e, nil
	case delayedJingleEvent:
		return e, []effect{playJingleEffect{jingleStar}}
	}
	return e, nil
}

func (e lessonEngine) pressKey(n noteName) (lessonEngine, []effect) {
	if e.state != lessonAwaitingInput || !n.valid() {
		return e, nil
	}

	expected := e.melody.notes[e.playerIndex]
	if n != expected {
		// keep the expected note lit so the player can try again
		e.highlighted = expected
		return e, nil
	}

	e.correctCount++
	e.playerIndex++
	if e.playerIndex < len(e.melody.notes) {
		e.highlighted = e.melody.notes[e.playerIndex]
		return e, nil
	}

	e.highlighted = ""
	e.state = lessonComplete
	e.stars = lessonStarCount(e.correctCount, len(e.melody.notes))
	e.invalidate()
	return e, []effect{
		completeLessonEffect{lessonID: e.lesson.id, stars: e.stars},
		playJingleEffect{jingleSuccess},
		e.schedule(lessonStarJingleDelay, delayedJingleEvent, 0),
	}
}

func (e lessonEngine) accuracy() float64 {
	if len(e.melody.notes) == 0 {
		return 0
	}
	return float64(e.correctCount) / float64(len(e.melody.notes))
}

// fraction of the melody the player has reproduced so far
func (e lessonEngine) progress() float64 {
	if e.state != lessonAwaitingInput && e.state != lessonComplete {
		return 0
	}
	return e.accuracy()
}

func (e lessonEngine) destroy() lessonEngine {
	e.invalidate()
	e.highlighted = ""
	return e
}
