package main

import (
	"io"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	midiTicksPerQuarter = 480
	midiVelocity        = 100
)

// melodyStreamer strings the melody's notes together the same way the song
// player does.
func melodyStreamer(sr beep.SampleRate, m melody) beep.Streamer {
	var parts []beep.Streamer
	for _, n := range m.notes {
		parts = append(parts,
			beep.Take(sr.N(m.tempo), beep.Seq(noteStreamer(sr, n, songPlayerToneDuration), beep.Silence(-1))),
			beep.Silence(sr.N(songPlayerGap)))
	}
	return beep.Seq(parts...)
}

func renderMelodyWav(w io.WriteSeeker, m melody, settings settingsRecord) error {
	stream := withVolume(melodyStreamer(toneFormat.SampleRate, m), settings)
	return errors.Wrap(wav.Encode(w, stream, toneFormat), "encoding wav")
}

func renderMelodyWavFile(path string, m melody) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	settings := defaultSettingsRecord()
	settings.Volume = 1
	return renderMelodyWav(f, m, settings)
}

func midiKeyForNote(n noteName) (uint8, bool) {
	for key := uint8(48); key < 84; key++ {
		if k, ok := noteForMidiKey(key); ok && k == n {
			return key, true
		}
	}
	return 0, false
}

// melodySMF builds a single track standard MIDI file with the same timing
// as the song player.
func melodySMF(m melody) (*smf.SMF, error) {
	clock := smf.MetricTicks(midiTicksPerQuarter)
	// one quarter note per melody step
	bpm := float64(time.Minute) / float64(m.tempo+songPlayerGap)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(m.name))
	tr.Add(0, smf.MetaTempo(bpm))

	var pending uint32
	stepTicks := uint32(midiTicksPerQuarter)
	holdTicks := uint32(float64(stepTicks) * float64(m.tempo) / float64(m.tempo+songPlayerGap))

	for _, n := range m.notes {
		key, ok := midiKeyForNote(n)
		if !ok {
			return nil, errors.New("note " + string(n) + " has no MIDI key")
		}
		tr.Add(pending, midi.NoteOn(0, key, midiVelocity))
		tr.Add(holdTicks, midi.NoteOff(0, key))
		pending = stepTicks - holdTicks
	}
	tr.Close(pending)

	s := smf.New()
	s.TimeFormat = clock
	if err := s.Add(tr); err != nil {
		return nil, err
	}
	return s, nil
}

func exportMelodyMidiFile(path string, m melody) error {
	s, err := melodySMF(m)
	if err != nil {
		return err
	}
	return errors.Wrap(s.WriteFile(path), "writing "+path)
}
