package main

import (
	"testing"
	"time"
)

func newTestLessonEngine(ns ...noteName) lessonEngine {
	return lessonEngine{
		timerOwner: newTimerOwner(),
		lesson:     lesson{id: "test-lesson", title: "Test"},
		melody:     melody{id: "test", notes: ns, tempo: 100 * time.Millisecond},
	}.startLesson()
}

// runDemo plays the demo to the end by firing every scheduled timer
func runDemo(t *testing.T, e lessonEngine) lessonEngine {
	t.Helper()
	e, effects := e.playDemo()
	now := testEpoch
	for i := 0; i < 100 && e.state == lessonDemonstrating; i++ {
		msg, ok := scheduled(effects, now)
		if !ok {
			t.Fatal("Expected a scheduled timer during the demo, got", effects)
		}
		now = msg.at
		e, effects = e.handleTimer(msg)
	}
	if e.state != lessonAwaitingInput {
		t.Fatal("Expected lesson to await input after the demo, got", e.state)
	}
	return e
}

func TestNewLessonEngineFromTable(t *testing.T) {
	for _, l := range lessons {
		e, ok := newLessonEngine(l)
		if !ok {
			t.Fatal("Expected lesson to have a melody:", l.id)
		}
		if e.state != lessonIdle {
			t.Error("Expected idle lesson, got", e.state)
		}
		if len(e.melody.notes) == 0 {
			t.Error("Expected melody notes for", l.id)
		}
	}

	_, ok := newLessonEngine(lesson{id: "missing", melody: "nope"})
	if ok {
		t.Error("Expected unknown melody to fail")
	}
}

func TestLessonDemoHighlightsEachNote(t *testing.T) {
	e := newTestLessonEngine(noteC4, noteE4, noteG4)

	e, effects := e.playDemo()
	if e.state != lessonDemonstrating {
		t.Fatal("Expected demonstrating, got", e.state)
	}
	if e.highlighted != noteC4 {
		t.Error("Expected C4 highlighted, got", e.highlighted)
	}
	played, ok := findEffect[playNoteEffect](effects)
	if !ok || played.note != noteC4 || played.duration != lessonDemoToneDuration {
		t.Error("Expected C4 to play for the demo tone duration, got", effects)
	}

	var highlights []noteName
	now := testEpoch
	for e.state == lessonDemonstrating {
		if e.highlighted != "" {
			highlights = append(highlights, e.highlighted)
		}
		msg, _ := scheduled(effects, now)
		now = msg.at
		e, effects = e.handleTimer(msg)
	}

	expected := []noteName{noteC4, noteE4, noteG4}
	if len(highlights) != len(expected) {
		t.Fatal("Expected", expected, "got", highlights)
	}
	for i := range expected {
		if highlights[i] != expected[i] {
			t.Error("Expected highlight", expected[i], "got", highlights[i])
		}
	}
	if e.highlighted != noteC4 {
		t.Error("Expected the first note to be highlighted for the player, got", e.highlighted)
	}
}

func TestLessonPerfectRunEarnsThreeStars(t *testing.T) {
	e := runDemo(t, newTestLessonEngine(noteC4, noteC4, noteG4))

	var effects []effect
	e, effects = e.pressKey(noteC4)
	if len(effects) != 0 || e.playerIndex != 1 {
		t.Error("Expected first press to advance silently, got", e.playerIndex, effects)
	}
	e, _ = e.pressKey(noteC4)
	if e.highlighted != noteG4 {
		t.Error("Expected G4 to be next, got", e.highlighted)
	}
	e, effects = e.pressKey(noteG4)

	if e.state != lessonComplete {
		t.Fatal("Expected lesson complete, got", e.state)
	}
	if e.stars != 3 {
		t.Error("Expected 3 stars, got", e.stars)
	}
	completed, ok := findEffect[completeLessonEffect](effects)
	if !ok || completed.lessonID != "test-lesson" || completed.stars != 3 {
		t.Error("Expected completeLesson(test-lesson, 3), got", effects)
	}
	if !hasJingle(effects, jingleSuccess) {
		t.Error("Expected success jingle, got", effects)
	}

	msg, ok := scheduled(effects, testEpoch)
	if !ok || msg.event != delayedJingleEvent {
		t.Fatal("Expected a delayed star jingle, got", effects)
	}
	_, effects = e.handleTimer(msg)
	if !hasJingle(effects, jingleStar) {
		t.Error("Expected star jingle after the delay, got", effects)
	}
}

func TestLessonWrongNoteKeepsExpectedHighlighted(t *testing.T) {
	e := runDemo(t, newTestLessonEngine(noteC4, noteD4, noteE4))

	e, _ = e.pressKey(noteC4)
	e, effects := e.pressKey(noteA4)

	if e.playerIndex != 1 {
		t.Error("Expected wrong note not to advance, got index", e.playerIndex)
	}
	if e.highlighted != noteD4 {
		t.Error("Expected D4 to stay highlighted, got", e.highlighted)
	}
	if len(effects) != 0 {
		t.Error("Expected no effects for a wrong note, got", effects)
	}
}

func TestLessonPartialNeverCompletes(t *testing.T) {
	e := runDemo(t, newTestLessonEngine(noteC4, noteD4, noteE4))

	e, _ = e.pressKey(noteC4)
	e, effects := e.pressKey(noteD4)

	if e.state != lessonAwaitingInput {
		t.Error("Expected lesson to keep waiting, got", e.state)
	}
	if _, ok := findEffect[completeLessonEffect](effects); ok {
		t.Error("Expected no completion for a partial run")
	}
	if e.progress() <= 0 || e.progress() >= 1 {
		t.Error("Expected partial progress, got", e.progress())
	}
}

func TestLessonIgnoresPressesDuringDemo(t *testing.T) {
	e := newTestLessonEngine(noteC4, noteD4)
	e, _ = e.playDemo()

	e2, effects := e.pressKey(noteC4)
	if e2.playerIndex != 0 || e2.correctCount != 0 || len(effects) != 0 {
		t.Error("Expected press during demo to be ignored")
	}

	e2, _ = e.pressKey(noteName("H9"))
	if e2.playerIndex != 0 {
		t.Error("Expected invalid note to be ignored")
	}
}

func TestLessonDestroyDropsPendingTimers(t *testing.T) {
	e := newTestLessonEngine(noteC4, noteD4)
	e, effects := e.playDemo()
	msg, _ := scheduled(effects, testEpoch)

	e = e.destroy()
	after, effects := e.handleTimer(msg)

	if len(effects) != 0 {
		t.Error("Expected no effects from a stale timer, got", effects)
	}
	if after.demoIndex != e.demoIndex || after.highlighted != "" {
		t.Error("Expected a stale timer to leave the lesson untouched")
	}
}

func TestLessonRestartResetsState(t *testing.T) {
	e := runDemo(t, newTestLessonEngine(noteC4, noteD4))
	e, _ = e.pressKey(noteC4)
	e, effects := e.pressKey(noteD4)
	staleJingle, _ := scheduled(effects, testEpoch)

	e = e.startLesson()
	if e.state != lessonIdle || e.playerIndex != 0 || e.correctCount != 0 || e.stars != 0 {
		t.Error("Expected restart to reset the lesson, got", e)
	}
	if _, effects := e.handleTimer(staleJingle); len(effects) != 0 {
		t.Error("Expected the old star jingle to be dropped, got", effects)
	}
}

func TestEmptyLessonDemoIsNoop(t *testing.T) {
	e := newTestLessonEngine()
	e, effects := e.playDemo()
	if e.state != lessonIdle || len(effects) != 0 {
		t.Error("Expected an empty melody to do nothing")
	}
}

func TestLessonStarCount(t *testing.T) {
	cases := []struct {
		correct, total, stars int
	}{
		{3, 3, 3},
		{4, 5, 2},
		{3, 5, 1},
		{0, 5, 1},
		{0, 0, 1},
	}
	for _, c := range cases {
		if got := lessonStarCount(c.correct, c.total); got != c.stars {
			t.Errorf("lessonStarCount(%d, %d) is %d, expected %d", c.correct, c.total, got, c.stars)
		}
	}
}
