package main

import (
	"testing"

	"gitlab.com/gomidi/midi/v2"
)

func TestKeyboardLayout(t *testing.T) {
	for key, n := range keyboardNotes {
		if !n.valid() {
			t.Error("Key", key, "maps to an invalid note", n)
		}
	}
	for _, n := range whiteKeys {
		if _, ok := noteForKey(keyForNote(n)); !ok {
			t.Error("Expected a key for", n)
		}
	}
	if n, ok := noteForKey("w"); !ok || n != noteCs4 {
		t.Error("Expected w to play C#4, got", n)
	}
	if _, ok := noteForKey("q"); ok {
		t.Error("Expected q not to be a piano key")
	}
}

func TestNoteLabels(t *testing.T) {
	if noteC4.label() != "C" || noteCs5.label() != "C#" {
		t.Error("Expected labels without the octave, got", noteC4.label(), noteCs5.label())
	}
	if noteA4.frequency() != 440 {
		t.Error("Expected A4 at 440Hz, got", noteA4.frequency())
	}
	if animalSound(noteCs4) != "🎵" {
		t.Error("Expected a plain note for black keys, got", animalSound(noteCs4))
	}
}

func TestNoteForMidiKey(t *testing.T) {
	cases := []struct {
		key  uint8
		note noteName
		ok   bool
	}{
		{60, noteC4, true},
		{61, noteCs4, true},
		{69, noteA4, true},
		{72, noteC5, true},
		{73, noteCs5, true},
		{59, "", false},
		{74, "", false},
		{0, "", false},
	}
	for _, c := range cases {
		n, ok := noteForMidiKey(c.key)
		if n != c.note || ok != c.ok {
			t.Errorf("noteForMidiKey(%d) is %q %v, expected %q %v", c.key, n, ok, c.note, c.ok)
		}
	}
}

func TestMidiNoteFromMessage(t *testing.T) {
	if n, ok := midiNoteFromMessage(midi.NoteOn(0, 64, 100)); !ok || n != noteE4 {
		t.Error("Expected E4 from note on, got", n)
	}
	if _, ok := midiNoteFromMessage(midi.NoteOn(0, 64, 0)); ok {
		t.Error("Expected a zero velocity note on to be ignored")
	}
	if _, ok := midiNoteFromMessage(midi.NoteOff(0, 64)); ok {
		t.Error("Expected note off to be ignored")
	}
	if _, ok := midiNoteFromMessage(midi.NoteOn(3, 30, 100)); ok {
		t.Error("Expected a note outside the piano to be ignored")
	}
}

func TestMidiKeyRoundTrip(t *testing.T) {
	for n := range noteFrequencies {
		key, ok := midiKeyForNote(n)
		if !ok {
			t.Error("Expected a MIDI key for", n)
			continue
		}
		if back, _ := noteForMidiKey(key); back != n {
			t.Error("Expected", n, "back from key", key, "got", back)
		}
	}
}

func TestCloseMidiInputWithoutPort(t *testing.T) {
	var missing *midiInput
	missing.close()

	stopped := false
	mi := &midiInput{stopFn: func() { stopped = true }}
	mi.close()
	if !stopped {
		t.Error("Expected the listener to be stopped")
	}
}
