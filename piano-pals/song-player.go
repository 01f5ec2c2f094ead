package main

import "time"

const (
	songPlayerGap          = 50 * time.Millisecond
	songPlayerToneDuration = 500 * time.Millisecond
)

type songPlayerEngine struct {
	timerOwner
	melody       melody
	playing      bool
	currentIndex int // -1 when no note is sounding
}

func newSongPlayerEngine(m melody) songPlayerEngine {
	return songPlayerEngine{
		timerOwner:   newTimerOwner(),
		melody:       m,
		currentIndex: -1,
	}
}

func (e songPlayerEngine) play() (songPlayerEngine, []effect) {
	if e.playing || len(e.melody.notes) == 0 {
		return e, nil
	}
	e.invalidate()
	e.playing = true
	return e.noteOn(0)
}

func (e songPlayerEngine) noteOn(i int) (songPlayerEngine, []effect) {
	e.currentIndex = i
	return e, []effect{
		playNoteEffect{note: e.melody.notes[i], duration: songPlayerToneDuration},
		e.schedule(e.melody.tempo, demoNoteOffEvent, i),
	}
}

func (e songPlayerEngine) stop() songPlayerEngine {
	e.invalidate()
	e.playing = false
	e.currentIndex = -1
	return e
}

func (e songPlayerEngine) handleTimer(msg timerMsg) (songPlayerEngine, []effect) {
	if !e.owns(msg) || !e.playing {
		return e, nil
	}

	switch msg.event {
	case demoNoteOffEvent:
		e.currentIndex = -1
		return e, []effect{e.schedule(songPlayerGap, demoNoteOnEvent, msg.index+1)}
	case demoNoteOnEvent:
		if msg.index < len(e.melody.notes) {
			return e.noteOn(msg.index)
		}
		return e.stop(), nil
	}
	return e, nil
}

func (e songPlayerEngine) highlighted() noteName {
	if e.currentIndex < 0 || e.currentIndex >= len(e.melody.notes) {
		return ""
	}
	return e.melody.notes[e.currentIndex]
}
