package main

import (
	"time"
)

const (
	melodyCopyRounds         = 5
	melodyCopyMaxScore       = melodyCopyRounds * 100
	melodyCopyMinLength      = 3
	melodyCopyMaxLength      = 6
	melodyCopyPreDemoDelay   = 500 * time.Millisecond
	melodyCopyDemoNoteTime   = 600 * time.Millisecond
	melodyCopyDemoGap        = 200 * time.Millisecond
	melodyCopyDemoToneLength = 400 * time.Millisecond
	melodyCopyRoundGap       = 1000 * time.Millisecond
)

var melodyCopyNotes = []noteName{noteC4, noteD4, noteE4, noteF4, noteG4}

// melodyCopyEngine is a "Simon" game: listen to a random melody, then play
// it back. Melodies grow by one note each round.
type melodyCopyEngine struct {
	timerOwner
	rng         randomSource
	state       gameState
	round       int
	melody      []noteName
	playerInput []noteName
	demoIndex   int
	highlighted noteName
	score       int
	lastCorrect bool
	result      result
}

func newMelodyCopyEngine(rng randomSource) melodyCopyEngine {
	return melodyCopyEngine{
		timerOwner: newTimerOwner(),
		rng:        rng,
	}
}

func melodyLengthForRound(round int) int {
	return minInt(melodyCopyMinLength+round, melodyCopyMaxLength)
}

func (e melodyCopyEngine) start() (melodyCopyEngine, []effect) {
	e.score = 0
	e.result = result{}
	e.lastCorrect = false
	return e.startRound(0)
}

func (e melodyCopyEngine) startRound(round int) (melodyCopyEngine, []effect) {
	e.invalidate()
	e.round = round
	e.state = gameDemo
	e.playerInput = nil
	e.highlighted = ""
	e.demoIndex = 0

	length := melodyLengthForRound(round)
	e.melody = make([]noteName, length)
	for i := range e.melody {
		e.melody[i] = randomNote(e.rng, melodyCopyNotes)
	}

	return e, []effect{e.schedule(melodyCopyPreDemoDelay, roundStartEvent, round)}
}

func (e melodyCopyEngine) demoNoteOn(i int) (melodyCopyEngine, []effect) {
	e.demoIndex = i
	n := e.melody[i]
	e.highlighted = n
	return e, []effect{
		playNoteEffect{note: n, duration: melodyCopyDemoToneLength},
		e.schedule(melodyCopyDemoNoteTime, demoNoteOffEvent, i),
	}
}

func (e melodyCopyEngine) handleTimer(msg timerMsg) (melodyCopyEngine, []effect) {
	if !e.owns(msg) {
		return e, nil
	}

	switch msg.event {
	case roundStartEvent:
		if e.state != gameDemo || msg.index != e.round {
			return e, nil
		}
		return e.demoNoteOn(0)
	case demoNoteOffEvent:
		if e.state != gameDemo || msg.index != e.demoIndex {
			return e, nil
		}
		e.highlighted = ""
		return e, []effect{e.schedule(melodyCopyDemoGap, demoNoteOnEvent, msg.index+1)}
	case demoNoteOnEvent:
		if e.state != gameDemo {
			return e, nil
		}
		if msg.index < len(e.melody) {
			return e.demoNoteOn(msg.index)
		}
		e.state = gamePlaying
		e.playerInput = nil
		return e, nil
	case nextRoundEvent:
		if e.state != gameBetweenRounds {
			return e, nil
		}
		return e.startRound(msg.index)
	}
	return e, nil
}

func (e melodyCopyEngine) pressKey(n noteName, at time.Time) (melodyCopyEngine, []effect) {
	if e.state != gamePlaying || !n.valid() {
		return e, nil
	}

	e.playerInput = append(append([]noteName(nil), e.playerInput...), n)
	current := len(e.playerInput) - 1

	if n != e.melody[current] {
		// partial credit for the correct prefix, rounded down
		e.score += current * 100 / len(e.melody)
		e.lastCorrect = false
		return e.endRound(at, nil)
	}

	if len(e.playerInput) == len(e.melody) {
		e.score += 100
		e.lastCorrect = true
		return e.endRound(at, []effect{playJingleEffect{jingleSuccess}})
	}

	return e, nil
}

func (e melodyCopyEngine) endRound(at time.Time, effects []effect) (melodyCopyEngine, []effect) {
	if e.round+1 >= melodyCopyRounds {
		var finishEffects []effect
		e, finishEffects = e.finish(at)
		return e, append(effects, finishEffects...)
	}
	e.invalidate()
	e.state = gameBetweenRounds
	return e, append(effects, e.schedule(melodyCopyRoundGap, nextRoundEvent, e.round+1))
}

func (e melodyCopyEngine) finish(at time.Time) (melodyCopyEngine, []effect) {
	e.invalidate()
	e.state = gameFinished
	e.highlighted = ""
	e.result = newResult(melodyCopyGameID, e.score, melodyCopyMaxScore, gameStarThresholds, at)
	return e, finishedGameEffects(e.result)
}

func (e melodyCopyEngine) destroy() melodyCopyEngine {
	e.invalidate()
	e.highlighted = ""
	return e
}
