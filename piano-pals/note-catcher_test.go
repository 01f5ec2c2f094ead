package main

import (
	"testing"
	"time"
)

func TestNoteCatcherPerfectGame(t *testing.T) {
	rng := &scriptedRandom{ints: []int{0, 3, 5, 7, 1, 2, 4, 6, 0, 3}}
	e, effects := newNoteCatcherEngine(rng).start()
	if e.state != gamePlaying || e.target == "" {
		t.Fatal("Expected a playing game with a target, got", e.state, e.target)
	}
	if events := scheduledEvents(effects); len(events) != 1 || events[0] != clockTickEvent {
		t.Error("Expected the countdown clock to be scheduled, got", events)
	}

	now := testEpoch
	lastScore := 0
	for round := 0; round < noteCatcherRounds; round++ {
		if e.target == "" {
			t.Fatal("Expected a target in round", round)
		}
		e, effects = e.pressKey(e.target, now)
		if e.score <= lastScore {
			t.Error("Expected score to increase, got", e.score, "after", lastScore)
		}
		lastScore = e.score
		if e.state == gameFinished {
			break
		}
		if e.target != "" {
			t.Error("Expected no target while waiting for the next one")
		}
		msg, ok := scheduled(effects, now)
		if !ok || msg.event != retargetEvent {
			t.Fatal("Expected a retarget timer, got", effects)
		}
		now = msg.at
		e, _ = e.handleTimer(msg)
	}

	if e.state != gameFinished {
		t.Fatal("Expected game to finish after 10 catches, got", e.state)
	}
	// combo bonus 0,10,20,30,40 then capped at 50
	if e.score != 1450 {
		t.Error("Expected score 1450, got", e.score)
	}
	if e.result.stars != 3 {
		t.Error("Expected 3 stars, got", e.result.stars)
	}
	saved, ok := findEffect[saveGameScoreEffect](effects)
	if !ok || saved.gameID != noteCatcherGameID || saved.score != 1450 {
		t.Error("Expected the score to be saved, got", effects)
	}
	if _, ok := findEffect[recordResultEffect](effects); !ok {
		t.Error("Expected the result to be recorded")
	}
	if !hasJingle(effects, jingleStar) {
		t.Error("Expected star jingle, got", effects)
	}
}

func TestNoteCatcherWrongNoteResetsCombo(t *testing.T) {
	rng := &scriptedRandom{ints: []int{0}}
	e, _ := newNoteCatcherEngine(rng).start()
	e.combo = 4

	e, effects := e.pressKey(noteD4, testEpoch)

	if e.combo != 0 {
		t.Error("Expected combo reset, got", e.combo)
	}
	if e.feedback != wrongFeedback {
		t.Error("Expected wrong feedback, got", e.feedback)
	}
	if e.score != 0 || e.round != 0 {
		t.Error("Expected a miss to score nothing, got", e.score, e.round)
	}
	if !hasJingle(effects, jingleFail) {
		t.Error("Expected fail jingle, got", effects)
	}

	msg, ok := scheduled(effects, testEpoch)
	if !ok || msg.event != feedbackClearEvent {
		t.Fatal("Expected feedback to be cleared later, got", effects)
	}
	e, _ = e.handleTimer(msg)
	if e.feedback != noFeedback {
		t.Error("Expected feedback cleared, got", e.feedback)
	}
}

func TestNoteCatcherIgnoresPressesWhileRetargeting(t *testing.T) {
	rng := &scriptedRandom{ints: []int{0}}
	e, _ := newNoteCatcherEngine(rng).start()
	e, _ = e.pressKey(noteC4, testEpoch)

	before := e.score
	e, effects := e.pressKey(noteC4, testEpoch)
	if e.score != before || len(effects) != 0 {
		t.Error("Expected press without a target to be ignored")
	}
}

func TestNoteCatcherTimesOut(t *testing.T) {
	e, effects := newNoteCatcherEngine(&scriptedRandom{}).start()
	now := testEpoch

	for i := 0; i < noteCatcherDuration; i++ {
		msg, ok := scheduled(effects, now)
		if !ok {
			t.Fatal("Expected clock tick", i)
		}
		now = msg.at
		e, effects = e.handleTimer(msg)
	}

	if e.state != gameFinished {
		t.Fatal("Expected game over when time runs out, got", e.state)
	}
	if e.timeLeft != 0 {
		t.Error("Expected no time left, got", e.timeLeft)
	}
	if e.result.stars != 0 {
		t.Error("Expected no stars for zero score, got", e.result.stars)
	}
	if hasJingle(effects, jingleStar) {
		t.Error("Expected no star jingle without stars")
	}
	if !e.result.at.Equal(testEpoch.Add(noteCatcherDuration * time.Second)) {
		t.Error("Expected result time from the last tick, got", e.result.at)
	}
}

func TestNoteCatcherRestartDropsOldTimers(t *testing.T) {
	e, effects := newNoteCatcherEngine(&scriptedRandom{}).start()
	oldTick, _ := scheduled(effects, testEpoch)

	e, _ = e.start()
	e, effects = e.handleTimer(oldTick)

	if e.timeLeft != noteCatcherDuration || len(effects) != 0 {
		t.Error("Expected the old clock to be ignored, got", e.timeLeft)
	}
}

func TestNoteCatcherDestroyStopsClock(t *testing.T) {
	e, effects := newNoteCatcherEngine(&scriptedRandom{}).start()
	tick, _ := scheduled(effects, testEpoch)

	e = e.destroy()
	e, effects = e.handleTimer(tick)
	if e.timeLeft != noteCatcherDuration || len(effects) != 0 {
		t.Error("Expected no clock after destroy")
	}
}
