package main

import (
	"time"
)

const (
	noteCatcherRounds        = 10
	noteCatcherDuration      = 30 // seconds
	noteCatcherMaxScore      = noteCatcherRounds*100 + noteCatcherRounds*10
	noteCatcherRetargetDelay = 300 * time.Millisecond
	noteCatcherFeedbackTime  = 300 * time.Millisecond
	noteCatcherMaxComboBonus = 50
)

var noteCatcherNotes = []noteName{noteC4, noteD4, noteE4, noteF4, noteG4, noteA4, noteB4, noteC5}

type gameState int

const (
	gameReady gameState = iota
	gameCountdown
	gameDemo
	gamePlaying
	gameBetweenRounds
	gameFinished
)

type feedback int

const (
	noFeedback feedback = iota
	correctFeedback
	wrongFeedback
)

// noteCatcherEngine shows a random target note and scores how many the
// player catches before the clock runs out.
type noteCatcherEngine struct {
	timerOwner
	rng      randomSource
	state    gameState
	target   noteName
	round    int
	combo    int
	score    int
	timeLeft int
	feedback feedback
	result   result
}

func newNoteCatcherEngine(rng randomSource) noteCatcherEngine {
	return noteCatcherEngine{
		timerOwner: newTimerOwner(),
		rng:        rng,
		timeLeft:   noteCatcherDuration,
	}
}

func (e noteCatcherEngine) start() (noteCatcherEngine, []effect) {
	e.invalidate()
	e.state = gamePlaying
	e.score = 0
	e.combo = 0
	e.round = 0
	e.timeLeft = noteCatcherDuration
	e.feedback = noFeedback
	e.result = result{}
	e.target = randomNote(e.rng, noteCatcherNotes)
	return e, []effect{e.schedule(time.Second, clockTickEvent, 0)}
}

func (e noteCatcherEngine) handleTimer(msg timerMsg) (noteCatcherEngine, []effect) {
	if !e.owns(msg) || e.state != gamePlaying {
		return e, nil
	}

	switch msg.event {
	case clockTickEvent:
		e.timeLeft--
		if e.timeLeft <= 0 {
			e.timeLeft = 0
			return e.finish(msg.at)
		}
		return e, []effect{e.schedule(time.Second, clockTickEvent, 0)}
	case retargetEvent:
		if msg.index != e.round {
			return e, nil
		}
		e.target = randomNote(e.rng, noteCatcherNotes)
		e.feedback = noFeedback
	case feedbackClearEvent:
		if e.target != "" {
			e.feedback = noFeedback
		}
	}
	return e, nil
}

func (e noteCatcherEngine) pressKey(n noteName, at time.Time) (noteCatcherEngine, []effect) {
	if e.state != gamePlaying || e.target == "" || !n.valid() {
		return e, nil
	}

	if n != e.target {
		e.combo = 0
		e.feedback = wrongFeedback
		return e, []effect{
			playJingleEffect{jingleFail},
			e.schedule(noteCatcherFeedbackTime, feedbackClearEvent, e.round),
		}
	}

	e.score += 100 + minInt(e.combo*10, noteCatcherMaxComboBonus)
	e.combo++
	e.round++
	e.feedback = correctFeedback
	effects := []effect{playJingleEffect{jingleSuccess}}

	if e.round >= noteCatcherRounds {
		var finishEffects []effect
		e, finishEffects = e.finish(at)
		return e, append(effects, finishEffects...)
	}

	// no target while waiting for the next one
	e.target = ""
	effects = append(effects, e.schedule(noteCatcherRetargetDelay, retargetEvent, e.round))
	return e, effects
}

func (e noteCatcherEngine) finish(at time.Time) (noteCatcherEngine, []effect) {
	e.invalidate()
	e.state = gameFinished
	e.target = ""
	e.result = newResult(noteCatcherGameID, e.score, noteCatcherMaxScore, gameStarThresholds, at)
	return e, finishedGameEffects(e.result)
}

func (e noteCatcherEngine) destroy() noteCatcherEngine {
	e.invalidate()
	return e
}
