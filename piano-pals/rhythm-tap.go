package main

import (
	"time"
)

const (
	rhythmTapRounds        = 3
	rhythmBeatsPerRound    = 8
	rhythmBeatInterval     = 600 * time.Millisecond
	rhythmCountdownStart   = 3
	rhythmMustHitChance    = 0.7
	rhythmPerfectWindow    = 150 * time.Millisecond
	rhythmGoodWindow       = 300 * time.Millisecond
	rhythmGoodToneDuration = 300 * time.Millisecond
	rhythmTapMaxScore      = rhythmTapRounds * rhythmBeatsPerRound * 100
)

var rhythmNotes = []noteName{noteC4, noteD4, noteE4, noteF4, noteG4}

type hitResult int

const (
	hitPerfect hitResult = iota
	hitGood
	hitMiss
)

func (h hitResult) String() string {
	switch h {
	case hitPerfect:
		return "perfect"
	case hitGood:
		return "good"
	default:
		return "miss"
	}
}

func (h hitResult) points() int {
	switch h {
	case hitPerfect:
		return 100
	case hitGood:
		return 50
	default:
		return 0
	}
}

func classifyHit(elapsed time.Duration) hitResult {
	if elapsed < rhythmPerfectWindow {
		return hitPerfect
	} else if elapsed < rhythmGoodWindow {
		return hitGood
	}
	return hitMiss
}

// rhythmTapEngine plays a beat pattern and scores how close to the start of
// each must-hit beat the player presses a key.
type rhythmTapEngine struct {
	timerOwner
	rng         randomSource
	state       gameState
	countdown   int
	round       int
	beatIndex   int
	beatStart   time.Time
	pattern     [rhythmBeatsPerRound]bool
	resolved    [rhythmBeatsPerRound]bool
	hitResults  []hitResult
	score       int
	highlighted noteName
	result      result
}

func newRhythmTapEngine(rng randomSource) rhythmTapEngine {
	return rhythmTapEngine{
		timerOwner: newTimerOwner(),
		rng:        rng,
	}
}

func rhythmNoteForBeat(beat int) noteName {
	return rhythmNotes[beat%len(rhythmNotes)]
}

func (e rhythmTapEngine) start() (rhythmTapEngine, []effect) {
	e.score = 0
	e.round = 0
	e.result = result{}
	e.hitResults = nil
	e.pattern = [rhythmBeatsPerRound]bool{}
	e.resolved = [rhythmBeatsPerRound]bool{}
	return e.startCountdown()
}

func (e rhythmTapEngine) startCountdown() (rhythmTapEngine, []effect) {
	e.invalidate()
	e.state = gameCountdown
	e.countdown = rhythmCountdownStart
	e.beatIndex = 0
	e.highlighted = ""
	return e, []effect{e.schedule(time.Second, countdownTickEvent, e.round)}
}

func (e rhythmTapEngine) generatePattern() [rhythmBeatsPerRound]bool {
	var pattern [rhythmBeatsPerRound]bool
	for i := range pattern {
		pattern[i] = e.rng.Float64() > 1-rhythmMustHitChance
	}
	return pattern
}

func (e rhythmTapEngine) startRound(at time.Time) (rhythmTapEngine, []effect) {
	e.invalidate()
	e.state = gamePlaying
	e.beatIndex = 0
	e.hitResults = nil
	e.pattern = e.generatePattern()
	e.resolved = [rhythmBeatsPerRound]bool{}
	return e.beginBeat(at)
}

func (e rhythmTapEngine) beginBeat(at time.Time) (rhythmTapEngine, []effect) {
	e.beatStart = at
	if e.pattern[e.beatIndex] {
		e.highlighted = rhythmNoteForBeat(e.beatIndex)
	} else {
		e.highlighted = ""
	}
	return e, []effect{e.schedule(rhythmBeatInterval, beatEndEvent, e.beatIndex)}
}

func (e rhythmTapEngine) handleTimer(msg timerMsg) (rhythmTapEngine, []effect) {
	if !e.owns(msg) {
		return e, nil
	}

	switch msg.event {
	case countdownTickEvent:
		if e.state != gameCountdown {
			return e, nil
		}
		e.countdown--
		if e.countdown > 0 {
			return e, []effect{e.schedule(time.Second, countdownTickEvent, e.round)}
		}
		return e.startRound(msg.at)
	case beatEndEvent:
		if e.state != gamePlaying || msg.index != e.beatIndex {
			return e, nil
		}
		return e.endBeat(msg.at)
	}
	return e, nil
}

func (e rhythmTapEngine) endBeat(at time.Time) (rhythmTapEngine, []effect) {
	if e.pattern[e.beatIndex] && !e.resolved[e.beatIndex] {
		e.resolved[e.beatIndex] = true
		e.hitResults = append(append([]hitResult(nil), e.hitResults...), hitMiss)
	}
	e.highlighted = ""
	e.beatIndex++

	if e.beatIndex < rhythmBeatsPerRound {
		return e.beginBeat(at)
	}

	if e.round+1 >= rhythmTapRounds {
		return e.finish(at)
	}
	e.round++
	return e.startCountdown()
}

// pressKey only scores on a must-hit beat that has not been resolved yet.
// Any valid note counts as a tap.
func (e rhythmTapEngine) pressKey(n noteName, at time.Time) (rhythmTapEngine, []effect) {
	if e.state != gamePlaying || !n.valid() {
		return e, nil
	}
	if !e.pattern[e.beatIndex] || e.resolved[e.beatIndex] {
		return e, nil
	}

	elapsed := at.Sub(e.beatStart)
	if elapsed < 0 {
		elapsed = 0
	}
	hit := classifyHit(elapsed)

	e.resolved[e.beatIndex] = true
	e.hitResults = append(append([]hitResult(nil), e.hitResults...), hit)
	e.score += hit.points()

	switch hit {
	case hitPerfect:
		return e, []effect{playJingleEffect{jingleSuccess}}
	case hitGood:
		return e, []effect{playNoteEffect{note: n, duration: rhythmGoodToneDuration}}
	}
	return e, nil
}

func (e rhythmTapEngine) lastHit() (hitResult, bool) {
	if len(e.hitResults) == 0 {
		return hitMiss, false
	}
	return e.hitResults[len(e.hitResults)-1], true
}

func (e rhythmTapEngine) finish(at time.Time) (rhythmTapEngine, []effect) {
	e.invalidate()
	e.state = gameFinished
	e.highlighted = ""
	e.result = newResult(rhythmTapGameID, e.score, rhythmTapMaxScore, rhythmStarThresholds, at)
	return e, finishedGameEffects(e.result)
}

func (e rhythmTapEngine) destroy() rhythmTapEngine {
	e.invalidate()
	e.highlighted = ""
	return e
}
