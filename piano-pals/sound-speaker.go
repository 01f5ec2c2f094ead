package main

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// ppSpeaker plays synthesized tones on the system speaker. The speaker is
// initialized lazily on the first sound.
type ppSpeaker struct {
	initialized bool
	failed      bool
	format      beep.Format
	settings    settingsRecord
	mu          sync.Mutex
}

func newSpeaker(settings settingsRecord) *ppSpeaker {
	return &ppSpeaker{format: toneFormat, settings: settings}
}

func (spkr *ppSpeaker) init() bool {
	if spkr.initialized {
		return true
	}
	if spkr.failed {
		return false
	}
	bufSize := spkr.format.SampleRate.N(time.Second / 10)
	log.Infof("Initializing speaker %d,%d", spkr.format.SampleRate, bufSize)
	if err := speaker.Init(spkr.format.SampleRate, bufSize); err != nil {
		log.Error("Speaker unavailable, continuing without sound", "err", err)
		spkr.failed = true
		return false
	}
	spkr.initialized = true
	return true
}

func (spkr *ppSpeaker) play(stream beep.Streamer) {
	spkr.mu.Lock()
	defer spkr.mu.Unlock()

	if !spkr.settings.SoundEnabled || !spkr.init() {
		return
	}
	speaker.Play(withVolume(stream, spkr.settings))
}

func (spkr *ppSpeaker) playNote(n noteName, duration time.Duration) {
	if !n.valid() {
		return
	}
	spkr.play(noteStreamer(spkr.format.SampleRate, n, duration))
}

func (spkr *ppSpeaker) playJingle(j jingle) {
	spkr.play(jingleStreamer(spkr.format.SampleRate, j))
}

func (spkr *ppSpeaker) applySettings(s settingsRecord) {
	spkr.mu.Lock()
	defer spkr.mu.Unlock()
	spkr.settings = s
}

func (spkr *ppSpeaker) clear() {
	spkr.mu.Lock()
	defer spkr.mu.Unlock()
	if spkr.initialized {
		speaker.Clear()
	}
}
